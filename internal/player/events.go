package player

import "image"

// Event is emitted by a StreamPlayer. Implementations deliver events on a
// single ordered stream per subscription.
type Event interface {
	playerEvent()
}

// StateChanged is emitted when the connection lifecycle changes. Playback and
// IsPlaying are the player's values at the moment of emission.
type StateChanged struct {
	State     State
	Playback  PlaybackState
	IsPlaying bool
}

// PlaybackChanged is emitted when the transport state changes.
type PlaybackChanged struct {
	State     PlaybackState
	IsPlaying bool
}

// MetadataChanged carries stream metadata for the stream it was read from.
// Session is the token AssignStream returned for that stream.
type MetadataChanged struct {
	StreamURL string
	Session   uint64
	Artist    string
	Title     string
}

// ArtworkChanged carries album artwork resolved for the current metadata.
type ArtworkChanged struct {
	StreamURL string
	Session   uint64
	Artwork   image.Image
	Loaded    bool
}

func (StateChanged) playerEvent()    {}
func (PlaybackChanged) playerEvent() {}
func (MetadataChanged) playerEvent() {}
func (ArtworkChanged) playerEvent()  {}

// StreamPlayer is the external streaming engine the presentation layer drives.
type StreamPlayer interface {
	// AssignStream replaces the current stream and returns a token that
	// identifies this assignment in later metadata and artwork events.
	AssignStream(url string) uint64
	Play()
	Pause()
	Stop()

	State() State
	PlaybackState() PlaybackState
	IsPlaying() bool

	Subscribe() *Subscription
}
