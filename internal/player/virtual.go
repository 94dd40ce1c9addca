// Package player models the external streaming engine: its lifecycle and
// transport states, the events it emits, and an in-memory implementation
// used for replays and tests.
package player

import (
	"image"
	"net/url"
	"sync"

	"github.com/rs/zerolog/log"
)

// VirtualOptions configures a Virtual player.
type VirtualOptions struct {
	// AutoPlay starts playback as soon as a stream becomes ready.
	AutoPlay bool
	// Manual leaves a newly assigned stream in StateLoading until SetState
	// is called, instead of moving straight to StateReadyToPlay.
	Manual bool
}

// Virtual is a StreamPlayer without audio output. It follows the lifecycle of
// a real streaming engine and lets callers inject metadata and artwork.
type Virtual struct {
	opts VirtualOptions

	mu          sync.Mutex
	streamURL   string
	session     uint64
	state       State
	playback    PlaybackState
	playOnReady bool
	subs        []*Subscription
}

var _ StreamPlayer = (*Virtual)(nil)

func NewVirtual(opts VirtualOptions) *Virtual {
	return &Virtual{
		opts:     opts,
		state:    StateURLNotSet,
		playback: PlaybackStopped,
	}
}

// Subscribe returns a new ordered event stream.
func (v *Virtual) Subscribe() *Subscription {
	sub := newSubscription()
	v.mu.Lock()
	v.subs = append(v.subs, sub)
	v.mu.Unlock()
	return sub
}

// Close ends every subscription.
func (v *Virtual) Close() {
	v.mu.Lock()
	subs := v.subs
	v.subs = nil
	v.mu.Unlock()

	for _, sub := range subs {
		sub.Close()
	}
}

func (v *Virtual) AssignStream(streamURL string) uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.session++
	v.streamURL = streamURL
	v.playOnReady = v.opts.AutoPlay
	if v.playback != PlaybackStopped {
		v.setPlaybackLocked(PlaybackStopped)
	}

	if !isValidStreamURL(streamURL) {
		log.Debug().Str("url", streamURL).Msg("Rejected stream URL")
		v.setStateLocked(StateURLNotSet)
		return v.session
	}

	v.setStateLocked(StateLoading)
	if !v.opts.Manual {
		v.setStateLocked(StateReadyToPlay)
	}
	return v.session
}

// Session returns the token of the current assignment, zero before the first.
func (v *Virtual) Session() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.session
}

// StreamURL returns the currently assigned stream.
func (v *Virtual) StreamURL() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.streamURL
}

func (v *Virtual) Play() {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch {
	case v.state.IsPlayable():
		v.setPlaybackLocked(PlaybackPlaying)
	case v.state == StateLoading:
		v.playOnReady = true
	default:
		log.Debug().Msgf("Play ignored in state %s", v.state)
	}
}

func (v *Virtual) Pause() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.playback == PlaybackPlaying {
		v.setPlaybackLocked(PlaybackPaused)
	}
}

func (v *Virtual) Stop() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.playOnReady = false
	if v.playback != PlaybackStopped {
		v.setPlaybackLocked(PlaybackStopped)
	}
}

func (v *Virtual) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *Virtual) PlaybackState() PlaybackState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.playback
}

func (v *Virtual) IsPlaying() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.playback == PlaybackPlaying
}

// SetState forces a lifecycle transition, as a real engine would report
// after buffering or on failure. Entering a playable state honours a
// pending play request; entering StateError stops playback.
func (v *Virtual) SetState(state State) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if state == StateError && v.playback != PlaybackStopped {
		v.playback = PlaybackStopped
	}
	v.setStateLocked(state)
}

// Announce emits stream metadata for the current stream.
func (v *Virtual) Announce(artist, title string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	log.Debug().Msgf("Now playing: %s - %s", artist, title)
	v.emitLocked(MetadataChanged{
		StreamURL: v.streamURL,
		Session:   v.session,
		Artist:    artist,
		Title:     title,
	})
}

// SetArtwork emits album artwork for the current stream.
func (v *Virtual) SetArtwork(img image.Image, loaded bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.emitLocked(ArtworkChanged{
		StreamURL: v.streamURL,
		Session:   v.session,
		Artwork:   img,
		Loaded:    loaded,
	})
}

func (v *Virtual) setStateLocked(state State) {
	if v.state != state {
		log.Debug().Msgf("Player state: %s -> %s", v.state, state)
	}
	v.state = state
	v.emitLocked(StateChanged{
		State:     state,
		Playback:  v.playback,
		IsPlaying: v.playback == PlaybackPlaying,
	})

	if state.IsPlayable() && v.playOnReady {
		v.playOnReady = false
		v.setPlaybackLocked(PlaybackPlaying)
	}
}

func (v *Virtual) setPlaybackLocked(playback PlaybackState) {
	if v.playback == playback {
		return
	}
	log.Debug().Msgf("Playback state: %s -> %s", v.playback, playback)
	v.playback = playback
	v.emitLocked(PlaybackChanged{
		State:     playback,
		IsPlaying: playback == PlaybackPlaying,
	})
}

func (v *Virtual) emitLocked(e Event) {
	for _, sub := range v.subs {
		sub.send(e)
	}
}

func isValidStreamURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
