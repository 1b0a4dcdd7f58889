//go:build linux

package media

import (
	"fmt"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/samber/lo"
)

const (
	mprisObjectPath      = "/org/mpris/MediaPlayer2"
	mprisPlayerInterface = "org.mpris.MediaPlayer2.Player"
	propertiesInterface  = "org.freedesktop.DBus.Properties"
	listNamesMethod      = "org.freedesktop.DBus.ListNames"
)

// BusDirectory enumerates MPRIS players on the session bus
type BusDirectory struct {
	conn *dbus.Conn
}

// NewDirectory connects to the session bus
func NewDirectory() (Directory, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &BusDirectory{conn: conn}, nil
}

// Players lists every bus name carrying the MPRIS prefix
func (d *BusDirectory) Players() ([]Player, error) {
	var names []string
	if err := d.conn.BusObject().Call(listNamesMethod, 0).Store(&names); err != nil {
		return nil, fmt.Errorf("failed to list bus names: %w", err)
	}

	players := lo.FilterMap(names, func(name string, _ int) (Player, bool) {
		if !strings.HasPrefix(name, BusNamePrefix) {
			return nil, false
		}
		return &busPlayer{
			name: name,
			obj:  d.conn.Object(name, dbus.ObjectPath(mprisObjectPath)),
		}, true
	})
	return players, nil
}

// Close releases resources
func (d *BusDirectory) Close() error {
	if d.conn != nil {
		return d.conn.Close()
	}
	return nil
}

// busPlayer talks to one player's org.mpris.MediaPlayer2.Player interface
type busPlayer struct {
	name string
	obj  dbus.BusObject
}

func (p *busPlayer) BusName() string {
	return p.name
}

func (p *busPlayer) property(prop string) (dbus.Variant, error) {
	v, err := p.obj.GetProperty(mprisPlayerInterface + "." + prop)
	if err != nil {
		return dbus.Variant{}, fmt.Errorf("failed to get %s of %s: %w", prop, p.name, err)
	}
	return v, nil
}

func (p *busPlayer) stringProperty(prop string) (string, error) {
	v, err := p.property(prop)
	if err != nil {
		return "", err
	}
	s, ok := v.Value().(string)
	if !ok {
		return "", fmt.Errorf("invalid type for %s of %s: %s", prop, p.name, v.Signature())
	}
	return s, nil
}

func (p *busPlayer) PlaybackStatus() (PlaybackStatus, error) {
	s, err := p.stringProperty("PlaybackStatus")
	if err != nil {
		return "", err
	}
	return ParsePlaybackStatus(s)
}

func (p *busPlayer) Metadata() (Metadata, error) {
	v, err := p.property("Metadata")
	if err != nil {
		return Metadata{}, err
	}
	m, ok := v.Value().(map[string]dbus.Variant)
	if !ok {
		return Metadata{}, fmt.Errorf("invalid type for Metadata of %s: %s", p.name, v.Signature())
	}
	return decodeMetadata(m), nil
}

func (p *busPlayer) Position() (time.Duration, error) {
	v, err := p.property("Position")
	if err != nil {
		return 0, err
	}
	us, ok := microseconds(v)
	if !ok {
		return 0, fmt.Errorf("invalid type for Position of %s: %s", p.name, v.Signature())
	}
	return us, nil
}

func (p *busPlayer) LoopStatus() (LoopStatus, error) {
	s, err := p.stringProperty("LoopStatus")
	if err != nil {
		return "", err
	}
	return ParseLoopStatus(s)
}

func (p *busPlayer) Shuffle() (bool, error) {
	v, err := p.property("Shuffle")
	if err != nil {
		return false, err
	}
	b, ok := v.Value().(bool)
	if !ok {
		return false, fmt.Errorf("invalid type for Shuffle of %s: %s", p.name, v.Signature())
	}
	return b, nil
}

func (p *busPlayer) call(method string) error {
	if err := p.obj.Call(mprisPlayerInterface+"."+method, 0).Err; err != nil {
		return fmt.Errorf("failed to call %s on %s: %w", method, p.name, err)
	}
	return nil
}

func (p *busPlayer) Stop() error      { return p.call("Stop") }
func (p *busPlayer) PlayPause() error { return p.call("PlayPause") }
func (p *busPlayer) Previous() error  { return p.call("Previous") }
func (p *busPlayer) Next() error      { return p.call("Next") }

func (p *busPlayer) SetLoopStatus(status LoopStatus) (Outcome, error) {
	return p.checkedSet("LoopStatus", string(status))
}

func (p *busPlayer) SetShuffle(enabled bool) (Outcome, error) {
	return p.checkedSet("Shuffle", enabled)
}

// checkedSet writes a player property only if the player exposes it and accepts control
func (p *busPlayer) checkedSet(prop string, value interface{}) (Outcome, error) {
	var props map[string]dbus.Variant
	if err := p.obj.Call(propertiesInterface+".GetAll", 0, mprisPlayerInterface).Store(&props); err != nil {
		return Unsupported, fmt.Errorf("failed to get properties of %s: %w", p.name, err)
	}
	if !supportsProperty(props, prop) {
		return Unsupported, nil
	}

	call := p.obj.Call(propertiesInterface+".Set", 0, mprisPlayerInterface, prop, dbus.MakeVariant(value))
	if call.Err != nil {
		return Unsupported, fmt.Errorf("failed to set %s of %s: %w", prop, p.name, call.Err)
	}
	return Applied, nil
}

func supportsProperty(props map[string]dbus.Variant, prop string) bool {
	canControl, _ := props["CanControl"].Value().(bool)
	_, present := props[prop]
	return canControl && present
}

func decodeMetadata(m map[string]dbus.Variant) Metadata {
	var md Metadata

	if v, ok := m["xesam:artist"]; ok {
		switch artists := v.Value().(type) {
		case []string:
			md.Artists = lo.Compact(artists)
		case string:
			// Some players send a single string instead of a list
			md.Artists = lo.Compact([]string{artists})
		}
	}
	if v, ok := m["xesam:title"]; ok {
		md.Title, _ = v.Value().(string)
	}
	if v, ok := m["mpris:length"]; ok {
		md.Length, _ = microseconds(v)
	}

	return md
}

// microseconds decodes an MPRIS time value. MPRIS defines int64, but some players send uint64.
func microseconds(v dbus.Variant) (time.Duration, bool) {
	switch us := v.Value().(type) {
	case int64:
		return time.Duration(us) * time.Microsecond, true
	case uint64:
		return time.Duration(us) * time.Microsecond, true
	case int32:
		return time.Duration(us) * time.Microsecond, true
	case uint32:
		return time.Duration(us) * time.Microsecond, true
	}
	return 0, false
}
