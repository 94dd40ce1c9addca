// Package presentation turns player, playback and track signals into the
// now-playing screen's display state.
//
// The reducer is pure: Reduce takes the current Model and one Event and
// returns the next Model plus the one-shot Effects (animations) the
// rendering layer should run. Everything the reducer needs to know about the
// player travels inside the events.
package presentation

import (
	"fmt"
	"image"

	"github.com/glebovdev/nowplaying/internal/station"
)

// Status messages shown in place of the song title.
const (
	MessageLoading   = "Loading Station ..."
	MessageURLNotSet = "Station URL not valid"
	MessageError     = "Error Playing"
	MessagePaused    = "Station Paused..."
	MessageStopped   = "Station Stopped..."

	// PromptChooseStation replaces the now-playing control's label when no
	// station is active.
	PromptChooseStation = "Choose a station above to begin"

	nowPlayingPending = "Now playing ..."
)

// Button is the image shown on the play/pause control.
type Button int

const (
	ButtonPlay Button = iota
	ButtonPause
)

func (b Button) String() string {
	switch b {
	case ButtonPlay:
		return "play"
	case ButtonPause:
		return "pause"
	default:
		return "unknown"
	}
}

// Model is the derived display state of the now-playing screen and of the
// now-playing control on the station list.
type Model struct {
	Station station.Station
	Track   station.Track

	// StatusMessage is empty while content is actively streaming.
	StatusMessage string
	SongLabel     string
	ArtistLabel   string

	Button            Button
	AnimateNowPlaying bool
	DescriptionHidden bool

	// ControlsEnabled and NavigationEnabled govern the now-playing control
	// on the station list; both are false until a station is selected.
	ControlsEnabled   bool
	NavigationEnabled bool
	NowPlayingLabel   string

	// Generation increases on every new station selection. Async updates
	// tagged with an older generation are discarded.
	Generation uint64
}

// Initial returns the model shown before any station has been chosen.
func Initial() Model {
	return Model{
		Button:          ButtonPlay,
		NowPlayingLabel: PromptChooseStation,
	}
}

// HasStation reports whether a station is currently selected.
func (m Model) HasStation() bool {
	return m.ControlsEnabled
}

// Artwork returns the artwork currently on display, if any.
func (m Model) Artwork() image.Image {
	return m.Track.Artwork
}

// ShareText is the handoff text describing what is playing.
func (m Model) ShareText() string {
	if !m.HasStation() {
		return ""
	}
	return fmt.Sprintf("I'm listening to %s on %s", m.Track.Title, m.Station.Name)
}

// NowPlayingInfo is the metadata published to OS media controls.
type NowPlayingInfo struct {
	Title      string
	Artist     string
	Station    string
	HasArtwork bool
}

// NowPlayingInfo returns lock-screen metadata for the current track.
func (m Model) NowPlayingInfo() NowPlayingInfo {
	if !m.HasStation() {
		return NowPlayingInfo{}
	}
	return NowPlayingInfo{
		Title:      m.Track.Title,
		Artist:     m.Track.Artist,
		Station:    m.Station.Name,
		HasArtwork: m.Track.Artwork != nil,
	}
}

func nowPlayingLabel(s station.Station, t station.Track) string {
	if t.IsPlaceholder(s) {
		return fmt.Sprintf("%s: %s", s.Name, nowPlayingPending)
	}
	return fmt.Sprintf("%s: %s - %s", s.Name, t.Title, t.Artist)
}
