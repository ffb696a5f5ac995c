package filesystem

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// DefaultMinSentences is how many sentences a paragraph needs before it is closed
const DefaultMinSentences = 4

var sentenceEnd = regexp.MustCompile(`[.!?]+`)

// ParagraphLoader handles splitting text files into paragraphs
type ParagraphLoader struct {
	minSentences int
}

// NewParagraphLoader creates a new paragraph loader
func NewParagraphLoader(minSentences int) *ParagraphLoader {
	if minSentences < 1 {
		minSentences = DefaultMinSentences
	}
	return &ParagraphLoader{minSentences: minSentences}
}

// LoadFromFile reads a text file and splits it into paragraphs
func (pl *ParagraphLoader) LoadFromFile(filename string) ([]string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read text file: %w", err)
	}
	return SplitParagraphs(string(data), pl.minSentences), nil
}

// SplitParagraphs joins consecutive non-empty lines until they hold at least
// minSentences sentences. Whatever is left at the end becomes the last paragraph.
func SplitParagraphs(text string, minSentences int) []string {
	var paragraphs []string
	var current []string

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		current = append(current, line)
		combined := strings.Join(current, " ")
		if countSentences(combined) >= minSentences {
			paragraphs = append(paragraphs, combined)
			current = nil
		}
	}

	if len(current) > 0 {
		paragraphs = append(paragraphs, strings.Join(current, " "))
	}

	return paragraphs
}

func countSentences(s string) int {
	return len(sentenceEnd.FindAllStringIndex(s, -1))
}
