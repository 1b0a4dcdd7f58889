package bar

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/natsukagami/i3blocks-mpris/internal/config"
	"github.com/natsukagami/i3blocks-mpris/internal/media"
)

// Report is one block of i3blocks output: long text, short text and color
type Report struct {
	Long  string
	Short string
	Color string
}

// WriteTo writes the three report lines in a single write
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.Long+"\n"+r.Short+"\n"+r.Color+"\n")
	return int64(n), err
}

// Renderer formats reports. It holds no state besides its settings.
type Renderer struct {
	Font     string
	MaxWidth int
	Colors   config.ColorConfig
}

// NewRenderer creates a renderer from the configuration
func NewRenderer(cfg *config.Config) *Renderer {
	return &Renderer{
		Font:     cfg.Font,
		MaxWidth: cfg.MaxWidth,
		Colors:   cfg.Colors,
	}
}

// Color returns the color for a playback status
func (r *Renderer) Color(status media.PlaybackStatus) string {
	switch status {
	case media.StatusPlaying:
		return r.Colors.Playing
	case media.StatusPaused:
		return r.Colors.Paused
	default:
		return r.Colors.Stopped
	}
}

// Player renders the name of the current player. With no other
// players there is nothing to switch to, so it renders nothing.
func (r *Renderer) Player(current media.Player, status media.PlaybackStatus, others int) *Report {
	if others == 0 {
		return nil
	}
	display := "<" + media.TrimBusName(current.BusName()) + ">"
	return &Report{Long: display, Short: display, Color: r.Color(status)}
}

// Status renders the playback report
func (r *Renderer) Status(p media.Player, status media.PlaybackStatus) (*Report, error) {
	switch status {
	case media.StatusPaused:
		return &Report{Long: "⏸️ paused", Short: "⏸️", Color: r.Color(status)}, nil
	case media.StatusStopped:
		return &Report{Long: "🛑 stopped", Short: "🛑", Color: r.Color(status)}, nil
	}

	md, err := p.Metadata()
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata: %w", err)
	}
	// Some players cannot report a position; that is shown as unknown
	var position time.Duration
	pos, posErr := p.Position()
	if posErr == nil {
		position = pos
	}

	long := fmt.Sprintf("🎹 <span font=\"%s\">%s [%s / %s]</span>",
		escapeMarkup(r.Font),
		escapeMarkup(r.truncate(trackText(md))),
		formatDuration(position, posErr == nil),
		formatDuration(md.Length, md.Length > 0),
	)
	return &Report{Long: long, Short: "🎹", Color: r.Color(status)}, nil
}

// Modes renders the shuffle and loop flags. Only a playing player has a modes report.
func (r *Renderer) Modes(p media.Player, status media.PlaybackStatus) (*Report, error) {
	if status != media.StatusPlaying {
		return nil, nil
	}

	loop, err := p.LoopStatus()
	if err != nil {
		return nil, fmt.Errorf("failed to get loop status: %w", err)
	}
	shuffle, err := p.Shuffle()
	if err != nil {
		return nil, fmt.Errorf("failed to get shuffle: %w", err)
	}

	var modes strings.Builder
	if shuffle {
		modes.WriteString("🔀")
	}
	switch loop {
	case media.LoopTrack:
		modes.WriteString("🔂")
	case media.LoopPlaylist:
		modes.WriteString("🔁")
	}
	if modes.Len() == 0 {
		// Ideographic space keeps the block from collapsing
		modes.WriteString("　")
	}

	return &Report{Long: "[" + modes.String() + "]", Short: "", Color: r.Color(status)}, nil
}

func (r *Renderer) truncate(s string) string {
	if r.MaxWidth <= 0 {
		return s
	}
	return runewidth.Truncate(s, r.MaxWidth, "…")
}

func trackText(md media.Metadata) string {
	artists := strings.Join(md.Artists, "/")
	if artists == "" {
		artists = "unknown artist"
	}
	title := md.Title
	if title == "" {
		title = "untitled"
	}
	return artists + " - " + title
}

// formatDuration prints MM:SS, or ... when the value is unknown
func formatDuration(d time.Duration, known bool) string {
	if !known {
		return "..."
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

var markupEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeMarkup(s string) string {
	return markupEscaper.Replace(s)
}
