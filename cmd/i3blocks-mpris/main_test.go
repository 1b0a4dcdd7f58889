package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/natsukagami/i3blocks-mpris/internal/media"
	"github.com/natsukagami/i3blocks-mpris/internal/media/mediatest"
)

func fakeDirectory(players ...*mediatest.Player) func() (media.Directory, error) {
	list := make([]media.Player, len(players))
	for i, p := range players {
		list[i] = p
	}
	return func() (media.Directory, error) {
		return &mediatest.Directory{List: list}, nil
	}
}

func testOptions(t *testing.T, mode, button string) *options {
	dir := t.TempDir()
	return &options{
		ConfigPath: filepath.Join(dir, "config.json"),
		StateFile:  filepath.Join(dir, "current_player"),
		Mode:       mode,
		Button:     button,
	}
}

func TestRunStatus(t *testing.T) {
	opts := testOptions(t, "status", "")
	var out bytes.Buffer

	err := run(opts, fakeDirectory(
		mediatest.New("mpd", media.StatusStopped),
		mediatest.New("vlc", media.StatusPaused),
	), &out)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if out.String() != "⏸️ paused\n⏸️\n#ffa500\n" {
		t.Errorf("Unexpected output %q", out.String())
	}
	data, err := os.ReadFile(opts.StateFile)
	if err != nil {
		t.Fatalf("Selection file missing: %v", err)
	}
	if string(data) != "vlc" {
		t.Errorf("Expected vlc to be stored, got %q", string(data))
	}
}

func TestRunPlayerCycleThenStatus(t *testing.T) {
	opts := testOptions(t, "player", "5")
	mpd := mediatest.New("mpd", media.StatusPlaying)
	vlc := mediatest.New("vlc", media.StatusStopped)
	directory := fakeDirectory(mpd, vlc)

	var out bytes.Buffer
	if err := run(opts, directory, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("Expected no output for a click, got %q", out.String())
	}

	// Next refresh of the status block follows the switched selection
	opts.Mode = "status"
	opts.Button = ""
	if err := run(opts, directory, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if out.String() != "🛑 stopped\n🛑\n#ff0000\n" {
		t.Errorf("Unexpected output %q", out.String())
	}
}

func TestRunUnknownMode(t *testing.T) {
	opts := testOptions(t, "bogus", "1")
	var out bytes.Buffer

	if err := run(opts, fakeDirectory(mediatest.New("vlc", media.StatusPlaying)), &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("Expected no output, got %q", out.String())
	}
}

func TestRunDirectoryFailure(t *testing.T) {
	opts := testOptions(t, "status", "")
	busErr := errors.New("no session bus")

	err := run(opts, func() (media.Directory, error) {
		return &mediatest.Directory{Err: busErr}, nil
	}, &bytes.Buffer{})
	if !errors.Is(err, busErr) {
		t.Errorf("Expected bus error, got %v", err)
	}
}

func TestRunInvalidConfig(t *testing.T) {
	opts := testOptions(t, "status", "")
	if err := os.WriteFile(opts.ConfigPath, []byte(`{"maxWidth": -3}`), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	err := run(opts, fakeDirectory(mediatest.New("vlc", media.StatusPlaying)), &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "maxWidth") {
		t.Errorf("Expected config error, got %v", err)
	}
}

func TestInitConfig(t *testing.T) {
	opts := testOptions(t, "", "")
	var out bytes.Buffer

	if err := initConfig(opts, &out); err != nil {
		t.Fatalf("initConfig failed: %v", err)
	}
	if strings.TrimSpace(out.String()) != opts.ConfigPath {
		t.Errorf("Expected config path to be printed, got %q", out.String())
	}
	data, err := os.ReadFile(opts.ConfigPath)
	if err != nil {
		t.Fatalf("Config file missing: %v", err)
	}
	if !strings.Contains(string(data), `"referencePlayer": "mpd"`) {
		t.Errorf("Expected defaults in config, got %s", data)
	}
}

func TestRootCmdFlagsDefaultFromEnv(t *testing.T) {
	t.Setenv("MPRIS_MODE", "modes")
	t.Setenv("BLOCK_BUTTON", "3")

	cmd := rootCmd()
	if got := cmd.Flags().Lookup("mode").DefValue; got != "modes" {
		t.Errorf("Expected mode default modes, got %q", got)
	}
	if got := cmd.Flags().Lookup("button").DefValue; got != "3" {
		t.Errorf("Expected button default 3, got %q", got)
	}
}
