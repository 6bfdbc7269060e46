package script

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var ErrScriptExists = errors.New("script file already exists")

// Writer stores generated scripts as c<ID>.lua in Dir.
type Writer struct {
	Dir string
}

func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir}
}

// EnsureDir creates the script directory if needed.
func (w *Writer) EnsureDir() error {
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return fmt.Errorf("error creating script directory: %w", err)
	}
	return nil
}

// Path returns where the script for id lives.
func (w *Writer) Path(id int64) string {
	return filepath.Join(w.Dir, fmt.Sprintf("c%d.lua", id))
}

// Exists reports whether a script file for id is present.
func (w *Writer) Exists(id int64) bool {
	_, err := os.Stat(w.Path(id))
	return err == nil
}

// Save writes content for id. An existing file is only replaced when
// overwrite is set.
func (w *Writer) Save(id int64, content string, overwrite bool) (string, error) {
	path := w.Path(id)
	if !overwrite && w.Exists(id) {
		return path, fmt.Errorf("%w: %s", ErrScriptExists, path)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return path, fmt.Errorf("error saving script: %w", err)
	}
	log.Infof("script saved: %s", path)
	return path, nil
}

// Delete removes the script for id.
func (w *Writer) Delete(id int64) error {
	path := w.Path(id)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("script file not found: %s", path)
		}
		return fmt.Errorf("error deleting script: %w", err)
	}
	log.Infof("deleted script: %s", path)
	return nil
}
