package bar

import "testing"

func TestParseButton(t *testing.T) {
	tests := map[string]Button{
		"1":   ButtonLeft,
		"2":   ButtonMiddle,
		"3":   ButtonRight,
		"4":   ButtonScrollUp,
		"5":   ButtonScrollDown,
		"5\n": ButtonScrollDown,
		"":    ButtonNone,
		"6":   ButtonNone,
		"x":   ButtonNone,
	}
	for in, want := range tests {
		if got := ParseButton(in); got != want {
			t.Errorf("ParseButton(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"player", "status", "modes"} {
		m, ok := ParseMode(s)
		if !ok || string(m) != s {
			t.Errorf("ParseMode(%q) = %q, %v", s, m, ok)
		}
	}
	for _, s := range []string{"", "Player", "volume"} {
		if _, ok := ParseMode(s); ok {
			t.Errorf("ParseMode(%q) should not be recognized", s)
		}
	}
}
