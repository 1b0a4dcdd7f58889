package bar

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/natsukagami/i3blocks-mpris/internal/media"
	"github.com/natsukagami/i3blocks-mpris/internal/selection"
)

// Dispatcher runs one status-bar invocation: at most one report and one action
type Dispatcher struct {
	policy   *selection.Policy
	renderer *Renderer
	out      io.Writer
}

// NewDispatcher creates a dispatcher writing reports to out
func NewDispatcher(policy *selection.Policy, renderer *Renderer, out io.Writer) *Dispatcher {
	return &Dispatcher{
		policy:   policy,
		renderer: renderer,
		out:      out,
	}
}

// Run handles one invocation. mode is the raw MPRIS_MODE value; an unknown
// mode still repairs the selection but prints nothing.
func (d *Dispatcher) Run(players []media.Player, mode string, button Button) error {
	players = sortPlayers(players)
	slog.Debug("players found", "count", len(players), "mode", mode, "button", button)

	m, known := ParseMode(mode)

	if m == ModePlayer && len(players) > 0 {
		handled, err := d.cycle(players, button)
		if err != nil || handled {
			return err
		}
	}

	choice, err := d.policy.Pick(players)
	if err != nil {
		return err
	}
	if choice == nil {
		slog.Debug("no players, nothing to show")
		return nil
	}
	slog.Debug("current player selected",
		"player", choice.Current.BusName(),
		"reason", choice.Reason,
		"repaired", choice.Changed,
	)
	if !known {
		return nil
	}

	report, err := d.dispatch(m, choice, button)
	if err != nil {
		return err
	}
	if report == nil {
		return nil
	}
	if _, err := report.WriteTo(d.out); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// cycle switches the selected player on scroll. Other buttons fall through to the report.
func (d *Dispatcher) cycle(players []media.Player, button Button) (bool, error) {
	var step int
	switch button {
	case ButtonScrollUp:
		step = -1
	case ButtonScrollDown:
		step = 1
	default:
		return false, nil
	}

	selected, err := d.policy.Cycle(players, step)
	if err != nil {
		return false, err
	}
	slog.Debug("switched player", "player", selected.BusName(), "button", button)
	return true, nil
}

// dispatch builds the report first and applies the click action after it,
// so a failed action never leaves a report behind.
func (d *Dispatcher) dispatch(mode Mode, choice *selection.Choice, button Button) (*Report, error) {
	current := choice.Current
	if mode == ModePlayer && len(choice.Others) == 0 {
		return nil, nil
	}

	status, err := current.PlaybackStatus()
	if err != nil {
		return nil, fmt.Errorf("failed to get playback status: %w", err)
	}

	switch mode {
	case ModePlayer:
		return d.renderer.Player(current, status, len(choice.Others)), nil

	case ModeStatus:
		report, err := d.renderer.Status(current, status)
		if err != nil {
			return nil, err
		}
		if err := statusAction(current, button); err != nil {
			return nil, err
		}
		return report, nil

	case ModeModes:
		if status != media.StatusPlaying {
			return nil, nil
		}
		report, err := d.renderer.Modes(current, status)
		if err != nil {
			return nil, err
		}
		if err := modesAction(current, button); err != nil {
			return nil, err
		}
		return report, nil
	}

	return nil, nil
}

func statusAction(p media.Player, button Button) error {
	var err error
	switch button {
	case ButtonMiddle:
		err = p.Stop()
	case ButtonRight:
		err = p.PlayPause()
	case ButtonScrollUp:
		err = p.Previous()
	case ButtonScrollDown:
		err = p.Next()
	default:
		return nil
	}
	if err != nil {
		return err
	}
	slog.Debug("applied playback action", "player", p.BusName(), "button", button)
	return nil
}

func modesAction(p media.Player, button Button) error {
	switch button {
	case ButtonLeft:
		return toggleLoop(p, media.LoopPlaylist, media.LoopNone)
	case ButtonMiddle:
		shuffle, err := p.Shuffle()
		if err != nil {
			return fmt.Errorf("failed to get shuffle: %w", err)
		}
		outcome, err := p.SetShuffle(!shuffle)
		return checkOutcome(p, "shuffle", outcome, err)
	case ButtonRight:
		return toggleLoop(p, media.LoopTrack, media.LoopPlaylist)
	}
	return nil
}

// toggleLoop sets the loop status to other if it is currently from, else to from
func toggleLoop(p media.Player, from, other media.LoopStatus) error {
	loop, err := p.LoopStatus()
	if err != nil {
		return fmt.Errorf("failed to get loop status: %w", err)
	}
	next := from
	if loop == from {
		next = other
	}
	outcome, err := p.SetLoopStatus(next)
	return checkOutcome(p, "loop status "+string(next), outcome, err)
}

func checkOutcome(p media.Player, what string, outcome media.Outcome, err error) error {
	if err != nil {
		return err
	}
	if outcome == media.Unsupported {
		return fmt.Errorf("%w: cannot set %s on %s", media.ErrUnsupported, what, p.BusName())
	}
	slog.Debug("applied mode action", "player", p.BusName(), "set", what)
	return nil
}

// sortPlayers returns the players ordered by bus name
func sortPlayers(players []media.Player) []media.Player {
	sorted := slices.Clone(players)
	slices.SortStableFunc(sorted, func(a, b media.Player) int {
		return strings.Compare(a.BusName(), b.BusName())
	})
	return sorted
}
