//go:build !linux

package media

import "fmt"

// NewDirectory creates a new platform-specific player directory.
// MPRIS only exists on the freedesktop session bus.
func NewDirectory() (Directory, error) {
	return nil, fmt.Errorf("mpris player directory not supported on this platform")
}
