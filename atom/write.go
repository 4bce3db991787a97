package atom

import (
	"fmt"
	"os"
	"path/filepath"
)

// OutputPath is where the feed is written, relative to the project root.
var OutputPath = filepath.Join("public", "rss.xml")

// WriteError is returned when the feed cannot be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// WriteFile replaces the file at path with doc, creating the parent
// directory if needed.
func WriteFile(path string, doc []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, doc, 0644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
