// Package selection persists and chooses the "current" player.
package selection

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store holds the bus name suffix of the selected player between invocations
type Store interface {
	// Read returns the stored suffix. A missing or unreadable record is reported as absent.
	Read() (string, bool)

	// Write replaces the stored suffix
	Write(suffix string) error
}

// FileStore keeps the selection as raw text in a single file.
// There is no locking: concurrent writers race and the last rename wins.
type FileStore struct {
	filePath string
}

// NewFileStore creates a store backed by path
func NewFileStore(path string) *FileStore {
	return &FileStore{filePath: path}
}

// Read loads the suffix from disk
func (s *FileStore) Read() (string, bool) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return "", false
	}
	suffix := strings.TrimSpace(string(data))
	if suffix == "" {
		return "", false
	}
	return suffix, true
}

// Write saves the suffix to disk. The file is replaced by rename so readers never see a partial record.
func (s *FileStore) Write(suffix string) error {
	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create selection directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.filePath)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create selection file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(suffix); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write selection file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write selection file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write selection file: %w", err)
	}
	if err := os.Rename(tmpPath, s.filePath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace selection file: %w", err)
	}

	return nil
}

// Path returns the path to the selection file
func (s *FileStore) Path() string {
	return s.filePath
}

// MemoryStore is a Store that never touches disk
type MemoryStore struct {
	Value   string
	Present bool

	// Writes counts successful Write calls
	Writes int

	// Err, if set, is returned by Write
	Err error
}

// NewMemoryStore returns a store holding suffix, or an empty store if suffix is ""
func NewMemoryStore(suffix string) *MemoryStore {
	return &MemoryStore{Value: suffix, Present: suffix != ""}
}

func (s *MemoryStore) Read() (string, bool) {
	return s.Value, s.Present
}

func (s *MemoryStore) Write(suffix string) error {
	if s.Err != nil {
		return s.Err
	}
	s.Value = suffix
	s.Present = true
	s.Writes++
	return nil
}
