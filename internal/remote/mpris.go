//go:build linux

package remote

import (
	"fmt"
	"hash/fnv"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/rs/zerolog/log"

	"github.com/glebovdev/nowplaying/internal/player"
	"github.com/glebovdev/nowplaying/internal/presentation"
)

// View is the read side of the controller.
type View interface {
	Snapshot() presentation.Model
	PlaybackState() player.PlaybackState
}

// MPRIS publishes the command center on the D-Bus session bus.
type MPRIS struct {
	server *server.Server
}

// NewMPRIS creates and starts an MPRIS server. It fails when no session bus
// is reachable.
func NewMPRIS(center *Center, view View) (*MPRIS, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	_ = conn.Close()

	m := &MPRIS{
		server: server.NewServer("nowplaying", &rootAdapter{}, &playerAdapter{center: center, view: view}),
	}

	go func() {
		if err := m.server.Listen(); err != nil {
			log.Warn().Err(err).Msg("MPRIS server stopped")
		}
	}()

	return m, nil
}

// Close stops the server and releases D-Bus resources.
func (m *MPRIS) Close() error {
	return m.server.Stop()
}

type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil
}

func (r *rootAdapter) Quit() error {
	return nil
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "Now Playing", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"http", "https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/aac", "audio/ogg"}, nil
}

type playerAdapter struct {
	center *Center
	view   View
}

func (p *playerAdapter) dispatch(cmd Command) error {
	if status := p.center.Dispatch(cmd); status != StatusSuccess {
		return fmt.Errorf("remote command %s: %s", cmd, status)
	}
	return nil
}

func (p *playerAdapter) Next() error {
	return p.dispatch(CommandNextTrack)
}

func (p *playerAdapter) Previous() error {
	return p.dispatch(CommandPreviousTrack)
}

func (p *playerAdapter) Pause() error {
	return p.dispatch(CommandPause)
}

func (p *playerAdapter) PlayPause() error {
	return p.dispatch(CommandTogglePlayPause)
}

func (p *playerAdapter) Stop() error {
	return p.dispatch(CommandStop)
}

func (p *playerAdapter) Play() error {
	return p.dispatch(CommandPlay)
}

// Live streams cannot seek.
func (p *playerAdapter) Seek(_ types.Microseconds) error {
	return nil
}

func (p *playerAdapter) SetPosition(_ string, _ types.Microseconds) error {
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	return playbackStatus(p.view.PlaybackState()), nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	return metadata(p.view.Snapshot()), nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return 0, nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return p.view.Snapshot().NavigationEnabled, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.view.Snapshot().NavigationEnabled, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.view.Snapshot().ControlsEnabled, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return p.view.Snapshot().ControlsEnabled, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

func playbackStatus(s player.PlaybackState) types.PlaybackStatus {
	switch s {
	case player.PlaybackPlaying:
		return types.PlaybackStatusPlaying
	case player.PlaybackPaused:
		return types.PlaybackStatusPaused
	case player.PlaybackStopped:
		return types.PlaybackStatusStopped
	}
	return types.PlaybackStatusStopped
}

func metadata(m presentation.Model) types.Metadata {
	info := m.NowPlayingInfo()
	if info.Station == "" {
		return types.Metadata{}
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(info.Station, info.Title)),
		Title:   info.Title,
		Artist:  []string{info.Artist},
		Album:   info.Station,
	}
	if info.HasArtwork && m.Station.ImageURL != "" {
		meta.ArtUrl = m.Station.ImageURL
	}
	return meta
}

func formatTrackID(stationName, title string) string {
	h := fnv.New64a()
	h.Write([]byte(stationName))
	h.Write([]byte{0})
	h.Write([]byte(title))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
