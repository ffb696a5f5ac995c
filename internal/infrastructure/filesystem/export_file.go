package filesystem

import (
	"fmt"
	"io"
	"os"

	"github.com/kjk/common/atomicfile"
)

// DefaultExportName is the file name offered for exports
const DefaultExportName = "data.json"

// WriteExport writes data to path atomically: readers see either the old
// file or the complete new one
func WriteExport(path string, data []byte) error {
	w, err := atomicfile.New(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	// calling Close() twice is a no-op
	defer w.Close()

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish export file: %w", err)
	}
	return nil
}

// ReadImport reads an import document from path, or from stdin when path is "-"
func ReadImport(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}
	return data, nil
}
