package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteError reports a filesystem failure while persisting output
type WriteError struct {
	Path string
	Op   string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Storage handles persistence of the calendar file
type Storage struct {
	path string
}

// New creates a Storage writing to path
func New(path string) (*Storage, error) {
	if path == "" {
		return nil, fmt.Errorf("output path is empty")
	}

	// Expand ~ to home directory
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	return &Storage{path: path}, nil
}

// Path returns the resolved output path
func (s *Storage) Path() string {
	return s.path
}

// WriteCalendar creates the output directory if needed and writes data
func (s *Storage) WriteCalendar(data []byte) error {
	if err := ensureDir(filepath.Dir(s.path)); err != nil {
		return err
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return &WriteError{Path: s.path, Op: "writing calendar", Err: err}
	}

	return nil
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &WriteError{Path: dir, Op: "creating output directory", Err: err}
	}
	fi, err := os.Stat(dir)
	if err != nil {
		return &WriteError{Path: dir, Op: "creating output directory", Err: err}
	}
	if !fi.IsDir() {
		return &WriteError{Path: dir, Op: "creating output directory", Err: fmt.Errorf("path exists and is not a directory")}
	}
	return nil
}
