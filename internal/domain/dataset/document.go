package dataset

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/pretty"

	"translation-notebook/internal/domain/meta"
	"translation-notebook/internal/domain/pair"
)

// Document is the full snapshot of the store used for export and import.
// Pair indices are implied by slice position.
type Document struct {
	Pairs []pair.Pair
	Meta  map[meta.Key]int64
}

// NewDocument creates an empty document
func NewDocument() *Document {
	return &Document{
		Pairs: []pair.Pair{},
		Meta:  make(map[meta.Key]int64),
	}
}

// documentJSON is the wire shape of an export document.
// Pointer fields let Parse tell a missing field from a zero value.
type documentJSON struct {
	Pairs *[]*pairJSON       `json:"pairs"`
	Meta  *map[string]*int64 `json:"meta"`
}

type pairJSON struct {
	English *string `json:"english"`
	Spanish *string `json:"spanish"`
}

type exportJSON struct {
	Pairs []exportPairJSON `json:"pairs"`
	Meta  map[string]int64 `json:"meta"`
}

type exportPairJSON struct {
	English string `json:"english"`
	Spanish string `json:"spanish"`
}

// Encode serializes the document as indented JSON
func (d *Document) Encode() ([]byte, error) {
	out := exportJSON{
		Pairs: make([]exportPairJSON, 0, len(d.Pairs)),
		Meta:  make(map[string]int64, len(d.Meta)),
	}
	for _, p := range d.Pairs {
		out.Pairs = append(out.Pairs, exportPairJSON{English: p.English, Spanish: p.Spanish})
	}
	for key, value := range d.Meta {
		out.Meta[string(key)] = value
	}

	raw, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode export document: %w", err)
	}
	return pretty.Pretty(raw), nil
}

// Parse decodes an export document, rejecting anything that does not match
// its shape with ErrImportMalformed
func Parse(data []byte) (*Document, error) {
	var in documentJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImportMalformed, err)
	}
	if in.Pairs == nil {
		return nil, fmt.Errorf("%w: missing pairs array", ErrImportMalformed)
	}
	if in.Meta == nil {
		return nil, fmt.Errorf("%w: missing meta object", ErrImportMalformed)
	}

	doc := &Document{
		Pairs: make([]pair.Pair, 0, len(*in.Pairs)),
		Meta:  make(map[meta.Key]int64, len(*in.Meta)),
	}
	for i, p := range *in.Pairs {
		if p == nil || p.English == nil || p.Spanish == nil {
			return nil, fmt.Errorf("%w: pair %d needs english and spanish strings", ErrImportMalformed, i)
		}
		doc.Pairs = append(doc.Pairs, pair.Pair{English: *p.English, Spanish: *p.Spanish})
	}
	for name, value := range *in.Meta {
		key, err := meta.ParseKey(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrImportMalformed, err)
		}
		if value == nil {
			return nil, fmt.Errorf("%w: meta %s is null", ErrImportMalformed, name)
		}
		doc.Meta[key] = *value
	}

	return doc, nil
}
