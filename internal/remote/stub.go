//go:build !linux

package remote

import (
	"github.com/glebovdev/nowplaying/internal/player"
	"github.com/glebovdev/nowplaying/internal/presentation"
)

// View is the read side of the controller.
type View interface {
	Snapshot() presentation.Model
	PlaybackState() player.PlaybackState
}

// MPRIS is a no-op on non-Linux platforms.
type MPRIS struct{}

// NewMPRIS returns a no-op server on non-Linux platforms.
func NewMPRIS(_ *Center, _ View) (*MPRIS, error) {
	return &MPRIS{}, nil
}

// Close is a no-op on non-Linux platforms.
func (m *MPRIS) Close() error {
	return nil
}
