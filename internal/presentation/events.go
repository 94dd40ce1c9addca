package presentation

import (
	"image"

	"github.com/glebovdev/nowplaying/internal/player"
	"github.com/glebovdev/nowplaying/internal/station"
)

// Event is an input to the reducer.
type Event interface {
	presentationEvent()
}

// PlayerStateChanged reports a new connection lifecycle state. Playback and
// IsPlaying carry the player's transport state at the time of the change.
type PlayerStateChanged struct {
	State     player.State
	Playback  player.PlaybackState
	IsPlaying bool
	Animate   bool
}

// PlaybackStateChanged reports a new transport state.
type PlaybackStateChanged struct {
	State     player.PlaybackState
	IsPlaying bool
	Animate   bool
}

// TrackMetadataUpdated carries artist and title resolved for the stream.
// A zero Generation is accepted unconditionally.
type TrackMetadataUpdated struct {
	Artist     string
	Title      string
	Generation uint64
}

// TrackArtworkUpdated carries artwork for the current track. Loaded is true
// for album artwork and false for the station's own image.
type TrackArtworkUpdated struct {
	Artwork    image.Image
	Loaded     bool
	Generation uint64
}

// StationSelected is emitted when the user opens a station. For a station
// that is already playing, IsNewStation is false and Player, Playback and
// IsPlaying describe the player's current state.
type StationSelected struct {
	Station      station.Station
	Track        station.Track
	IsNewStation bool

	Player    player.State
	Playback  player.PlaybackState
	IsPlaying bool
}

// StationsReset is emitted when the active station disappeared from the
// station list.
type StationsReset struct{}

func (PlayerStateChanged) presentationEvent()   {}
func (PlaybackStateChanged) presentationEvent() {}
func (TrackMetadataUpdated) presentationEvent() {}
func (TrackArtworkUpdated) presentationEvent()  {}
func (StationSelected) presentationEvent()      {}
func (StationsReset) presentationEvent()        {}
