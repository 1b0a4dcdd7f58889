// Package bar turns the selected player into i3blocks output and applies click actions.
package bar

import "strings"

// Mode selects which report an invocation produces
type Mode string

const (
	ModePlayer Mode = "player"
	ModeStatus Mode = "status"
	ModeModes  Mode = "modes"
)

// ParseMode parses an MPRIS_MODE value. Unknown values report false.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModePlayer, ModeStatus, ModeModes:
		return Mode(s), true
	}
	return "", false
}

// Button is an i3blocks click code
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
	ButtonScrollUp
	ButtonScrollDown
)

// ParseButton parses a BLOCK_BUTTON value. Anything unrecognized is ButtonNone.
func ParseButton(s string) Button {
	switch strings.TrimSpace(s) {
	case "1":
		return ButtonLeft
	case "2":
		return ButtonMiddle
	case "3":
		return ButtonRight
	case "4":
		return ButtonScrollUp
	case "5":
		return ButtonScrollDown
	default:
		return ButtonNone
	}
}

// String returns the button name
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	case ButtonScrollUp:
		return "scroll-up"
	case ButtonScrollDown:
		return "scroll-down"
	default:
		return "none"
	}
}
