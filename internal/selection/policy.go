package selection

import (
	"errors"
	"fmt"
	"slices"

	"github.com/natsukagami/i3blocks-mpris/internal/media"
	"github.com/samber/lo"
)

// ErrNoPlayers is returned when cycling through an empty player list
var ErrNoPlayers = errors.New("no players to cycle through")

// Reason records which rule picked the current player
type Reason int

const (
	ReasonStored Reason = iota
	ReasonPlaying
	ReasonForeground
	ReasonFallback
)

// String returns the reason name
func (r Reason) String() string {
	switch r {
	case ReasonStored:
		return "stored"
	case ReasonPlaying:
		return "playing"
	case ReasonForeground:
		return "foreground"
	case ReasonFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Choice is the outcome of Policy.Pick
type Choice struct {
	Current media.Player

	// Others holds the remaining players, still sorted
	Others []media.Player

	// Changed is set when the store was rewritten to point at Current
	Changed bool

	Reason Reason
}

// Policy chooses the current player and keeps the store pointing at it
type Policy struct {
	store     Store
	reference string
}

// NewPolicy creates a policy. referencePlayer is the bus name suffix of the
// background player that should only be picked when nothing else qualifies.
func NewPolicy(store Store, referencePlayer string) *Policy {
	return &Policy{
		store:     store,
		reference: media.FullBusName(referencePlayer),
	}
}

// stored returns the full bus name of the stored selection, or "" if there is none
func (p *Policy) stored() string {
	suffix, ok := p.store.Read()
	if !ok {
		return ""
	}
	return media.FullBusName(suffix)
}

// Pick chooses exactly one player from a sorted list. Rules, first match wins:
// the stored selection, the first Playing player, the first player that is
// not the reference player, the first player.
// It returns nil if players is empty. The store is rewritten whenever the
// choice differs from what was stored.
func (p *Policy) Pick(players []media.Player) (*Choice, error) {
	if len(players) == 0 {
		return nil, nil
	}

	stored := p.stored()
	idx, reason := p.choose(players, stored)

	choice := &Choice{
		Current: players[idx],
		Others:  slices.Delete(slices.Clone(players), idx, idx+1),
		Reason:  reason,
	}

	if name := choice.Current.BusName(); name != stored {
		if err := p.store.Write(media.TrimBusName(name)); err != nil {
			return nil, fmt.Errorf("failed to store selection: %w", err)
		}
		choice.Changed = true
	}

	return choice, nil
}

func (p *Policy) choose(players []media.Player, stored string) (int, Reason) {
	if _, i, ok := lo.FindIndexOf(players, func(pl media.Player) bool {
		return pl.BusName() == stored
	}); ok {
		return i, ReasonStored
	}

	// A player whose status cannot be read is treated as not playing
	if _, i, ok := lo.FindIndexOf(players, func(pl media.Player) bool {
		status, err := pl.PlaybackStatus()
		return err == nil && status == media.StatusPlaying
	}); ok {
		return i, ReasonPlaying
	}

	if _, i, ok := lo.FindIndexOf(players, func(pl media.Player) bool {
		return pl.BusName() != p.reference
	}); ok {
		return i, ReasonForeground
	}

	return 0, ReasonFallback
}

// Cycle moves the stored selection step places through a sorted list,
// wrapping at both ends, and returns the newly selected player.
// An unknown or missing selection counts as index 0.
func (p *Policy) Cycle(players []media.Player, step int) (media.Player, error) {
	n := len(players)
	if n == 0 {
		return nil, ErrNoPlayers
	}

	names := lo.Map(players, func(pl media.Player, _ int) string {
		return pl.BusName()
	})
	current := max(lo.IndexOf(names, p.stored()), 0)

	next := ((current+step)%n + n) % n
	selected := players[next]
	if err := p.store.Write(media.TrimBusName(selected.BusName())); err != nil {
		return nil, fmt.Errorf("failed to store selection: %w", err)
	}

	return selected, nil
}
