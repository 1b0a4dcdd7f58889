// Package mediatest provides in-memory players for tests.
package mediatest

import (
	"errors"
	"time"

	"github.com/natsukagami/i3blocks-mpris/internal/media"
)

// ErrGone is returned by a Player whose Fail flag is set
var ErrGone = errors.New("player vanished")

// Player is a scripted media.Player. It records every mutation in Calls.
type Player struct {
	Name     string
	Status   media.PlaybackStatus
	Meta     media.Metadata
	Pos      time.Duration
	PosErr   error
	Loop     media.LoopStatus
	Shuffled bool

	// CanControl gates SetLoopStatus and SetShuffle
	CanControl bool

	// Fail makes every query and mutation return ErrGone
	Fail bool

	// ActionErr, if set, is returned by every mutation
	ActionErr error

	Calls []string
}

var _ media.Player = (*Player)(nil)

// New returns a controllable player named org.mpris.MediaPlayer2.<suffix>
func New(suffix string, status media.PlaybackStatus) *Player {
	return &Player{
		Name:       media.FullBusName(suffix),
		Status:     status,
		Loop:       media.LoopNone,
		CanControl: true,
	}
}

func (p *Player) BusName() string {
	return p.Name
}

func (p *Player) PlaybackStatus() (media.PlaybackStatus, error) {
	if p.Fail {
		return "", ErrGone
	}
	return p.Status, nil
}

func (p *Player) Metadata() (media.Metadata, error) {
	if p.Fail {
		return media.Metadata{}, ErrGone
	}
	return p.Meta, nil
}

func (p *Player) Position() (time.Duration, error) {
	if p.Fail {
		return 0, ErrGone
	}
	return p.Pos, p.PosErr
}

func (p *Player) LoopStatus() (media.LoopStatus, error) {
	if p.Fail {
		return "", ErrGone
	}
	return p.Loop, nil
}

func (p *Player) Shuffle() (bool, error) {
	if p.Fail {
		return false, ErrGone
	}
	return p.Shuffled, nil
}

func (p *Player) record(call string) error {
	if p.Fail {
		return ErrGone
	}
	if p.ActionErr != nil {
		return p.ActionErr
	}
	p.Calls = append(p.Calls, call)
	return nil
}

func (p *Player) Stop() error      { return p.record("Stop") }
func (p *Player) PlayPause() error { return p.record("PlayPause") }
func (p *Player) Previous() error  { return p.record("Previous") }
func (p *Player) Next() error      { return p.record("Next") }

func (p *Player) SetLoopStatus(status media.LoopStatus) (media.Outcome, error) {
	if !p.CanControl {
		return media.Unsupported, nil
	}
	if err := p.record("SetLoopStatus:" + string(status)); err != nil {
		return media.Unsupported, err
	}
	p.Loop = status
	return media.Applied, nil
}

func (p *Player) SetShuffle(enabled bool) (media.Outcome, error) {
	if !p.CanControl {
		return media.Unsupported, nil
	}
	call := "SetShuffle:false"
	if enabled {
		call = "SetShuffle:true"
	}
	if err := p.record(call); err != nil {
		return media.Unsupported, err
	}
	p.Shuffled = enabled
	return media.Applied, nil
}

// Directory is a fixed media.Directory
type Directory struct {
	List []media.Player
	Err  error
}

func (d *Directory) Players() ([]media.Player, error) {
	if d.Err != nil {
		return nil, d.Err
	}
	return d.List, nil
}

func (d *Directory) Close() error {
	return nil
}
