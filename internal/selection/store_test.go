package selection

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreReadMissing(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "current_player"))

	if suffix, ok := store.Read(); ok {
		t.Errorf("Expected no selection, got %q", suffix)
	}
}

func TestFileStoreRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "current_player")
	store := NewFileStore(path)

	if err := store.Write("vlc"); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}

	// The record is the raw suffix with nothing around it
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read selection file: %v", err)
	}
	if string(data) != "vlc" {
		t.Errorf("Expected file content vlc, got %q", string(data))
	}

	store2 := NewFileStore(path)
	suffix, ok := store2.Read()
	if !ok {
		t.Fatal("Expected a selection after write")
	}
	if suffix != "vlc" {
		t.Errorf("Expected vlc, got %q", suffix)
	}
}

func TestFileStoreOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "current_player")
	store := NewFileStore(path)

	if err := store.Write("spotify"); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}
	if err := store.Write("mpd"); err != nil {
		t.Fatalf("Failed to overwrite: %v", err)
	}

	suffix, _ := store.Read()
	if suffix != "mpd" {
		t.Errorf("Expected mpd, got %q", suffix)
	}

	// No temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("Failed to list dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the selection file, found %d entries", len(entries))
	}
}

func TestFileStoreTrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "current_player")
	if err := os.WriteFile(path, []byte("firefox.instance_1_7\n"), 0644); err != nil {
		t.Fatalf("Failed to seed file: %v", err)
	}

	suffix, ok := NewFileStore(path).Read()
	if !ok || suffix != "firefox.instance_1_7" {
		t.Errorf("Expected firefox.instance_1_7, got %q (present=%v)", suffix, ok)
	}
}

func TestFileStoreEmptyFileIsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "current_player")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("Failed to seed file: %v", err)
	}

	if _, ok := NewFileStore(path).Read(); ok {
		t.Error("Expected empty file to read as absent")
	}
}

func TestFileStoreCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "current_player")
	store := NewFileStore(path)

	if err := store.Write("mpv"); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Selection file was not created: %v", err)
	}
	if store.Path() != path {
		t.Errorf("Expected path %s, got %s", path, store.Path())
	}
}

func TestFileStoreWriteFailure(t *testing.T) {
	// A regular file where the directory should be
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to seed file: %v", err)
	}

	store := NewFileStore(filepath.Join(blocker, "current_player"))
	if err := store.Write("vlc"); err == nil {
		t.Error("Expected write under a regular file to fail")
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore("")
	if _, ok := store.Read(); ok {
		t.Error("Expected empty memory store to be absent")
	}

	if err := store.Write("vlc"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if suffix, ok := store.Read(); !ok || suffix != "vlc" {
		t.Errorf("Expected vlc, got %q", suffix)
	}
	if store.Writes != 1 {
		t.Errorf("Expected 1 write, got %d", store.Writes)
	}

	store.Err = errors.New("disk full")
	if err := store.Write("mpd"); err == nil {
		t.Error("Expected write error")
	}
	if suffix, _ := store.Read(); suffix != "vlc" {
		t.Errorf("Failed write must not change the record, got %q", suffix)
	}
}
