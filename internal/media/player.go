// Package media is the boundary to the MPRIS players running on the session bus.
package media

import (
	"errors"
	"strings"
	"time"
)

// BusNamePrefix is the well-known prefix shared by every MPRIS bus name.
const BusNamePrefix = "org.mpris.MediaPlayer2."

// ErrUnsupported is returned when a player does not support a requested mutation.
var ErrUnsupported = errors.New("operation not supported by player")

// PlaybackStatus represents the MPRIS playback status of a player
type PlaybackStatus string

const (
	StatusPlaying PlaybackStatus = "Playing"
	StatusPaused  PlaybackStatus = "Paused"
	StatusStopped PlaybackStatus = "Stopped"
)

// ParsePlaybackStatus parses an MPRIS PlaybackStatus property value
func ParsePlaybackStatus(s string) (PlaybackStatus, error) {
	switch PlaybackStatus(s) {
	case StatusPlaying, StatusPaused, StatusStopped:
		return PlaybackStatus(s), nil
	}
	return "", errors.New("unknown playback status: " + s)
}

// LoopStatus represents the loop/repeat mode for MPRIS
type LoopStatus string

const (
	LoopNone     LoopStatus = "None"
	LoopTrack    LoopStatus = "Track"
	LoopPlaylist LoopStatus = "Playlist"
)

// ParseLoopStatus parses an MPRIS LoopStatus property value
func ParseLoopStatus(s string) (LoopStatus, error) {
	switch LoopStatus(s) {
	case LoopNone, LoopTrack, LoopPlaylist:
		return LoopStatus(s), nil
	}
	return "", errors.New("unknown loop status: " + s)
}

// Metadata contains the track metadata a player reports.
// Title and Length are optional; the zero value means "not reported".
type Metadata struct {
	Artists []string
	Title   string
	Length  time.Duration
}

// Outcome is the result of a capability-checked mutation.
// Failures are reported through the accompanying error instead.
type Outcome int

const (
	Applied Outcome = iota
	Unsupported
)

// String returns the outcome name
func (o Outcome) String() string {
	switch o {
	case Applied:
		return "Applied"
	case Unsupported:
		return "Unsupported"
	default:
		return "Unknown"
	}
}

// Player is a live handle to one running media player.
// Handles are only valid for the lifetime of one invocation.
type Player interface {
	// BusName returns the full bus name, e.g. org.mpris.MediaPlayer2.vlc
	BusName() string

	// PlaybackStatus queries the current playback status
	PlaybackStatus() (PlaybackStatus, error)

	// Metadata queries the current track metadata
	Metadata() (Metadata, error)

	// Position queries the playback position. Only valid while Playing or Paused.
	Position() (time.Duration, error)

	// LoopStatus queries the loop mode
	LoopStatus() (LoopStatus, error)

	// Shuffle queries the shuffle flag
	Shuffle() (bool, error)

	Stop() error
	PlayPause() error
	Previous() error
	Next() error

	// SetLoopStatus sets the loop mode if the player supports it
	SetLoopStatus(status LoopStatus) (Outcome, error)

	// SetShuffle sets the shuffle flag if the player supports it
	SetShuffle(enabled bool) (Outcome, error)
}

// Directory enumerates the players currently reachable on the bus
type Directory interface {
	// Players returns every live player, in no particular order
	Players() ([]Player, error)

	// Close releases resources
	Close() error
}

// TrimBusName strips BusNamePrefix from a bus name.
// Names without the prefix are returned unchanged.
func TrimBusName(busName string) string {
	return strings.TrimPrefix(busName, BusNamePrefix)
}

// FullBusName is the inverse of TrimBusName
func FullBusName(suffix string) string {
	return BusNamePrefix + suffix
}
