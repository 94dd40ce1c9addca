package presentation

import (
	"github.com/glebovdev/nowplaying/internal/player"
	"github.com/rs/zerolog/log"
)

// Reducer computes presentation transitions.
type Reducer struct {
	// OptimisticPause shows the pause image as soon as the stream is ready,
	// before playback is confirmed. When false the image follows IsPlaying.
	OptimisticPause bool
}

// Reduce applies one event to m and returns the resulting model together with
// the effects the transition triggers. It never mutates m.
func (r Reducer) Reduce(m Model, ev Event) (Model, []Effect) {
	switch e := ev.(type) {
	case StationSelected:
		return r.stationSelected(m, e)
	case StationsReset:
		return reset(m), nil
	}

	if !m.HasStation() {
		log.Debug().Msgf("Ignoring %T without an active station", ev)
		return m, nil
	}

	switch e := ev.(type) {
	case PlayerStateChanged:
		return r.playerStateChanged(m, e)
	case PlaybackStateChanged:
		return playbackStateChanged(m, e)
	case TrackMetadataUpdated:
		return trackMetadataUpdated(m, e)
	case TrackArtworkUpdated:
		return trackArtworkUpdated(m, e)
	}
	return m, nil
}

func (r Reducer) playerStateChanged(m Model, e PlayerStateChanged) (Model, []Effect) {
	switch e.State {
	case player.StateLoading:
		m.StatusMessage = MessageLoading
	case player.StateURLNotSet:
		m.StatusMessage = MessageURLNotSet
	case player.StateError:
		m.StatusMessage = MessageError
	case player.StateReadyToPlay, player.StateLoadingFinished:
		next, effects := playbackStateChanged(m, PlaybackStateChanged{
			State:     e.Playback,
			IsPlaying: e.IsPlaying,
			Animate:   e.Animate,
		})
		if r.OptimisticPause || e.IsPlaying {
			next.Button = ButtonPause
		} else {
			next.Button = ButtonPlay
		}
		return next, effects
	}

	effects := updateLabels(&m, e.Animate)
	return m, effects
}

func playbackStateChanged(m Model, e PlaybackStateChanged) (Model, []Effect) {
	switch e.State {
	case player.PlaybackPaused:
		m.StatusMessage = MessagePaused
		m.Button = ButtonPlay
	case player.PlaybackStopped:
		m.StatusMessage = MessageStopped
		m.Button = ButtonPlay
	case player.PlaybackPlaying:
		m.StatusMessage = ""
		m.Button = ButtonPause
	}

	effects := updateLabels(&m, e.Animate)
	m.AnimateNowPlaying = e.IsPlaying
	return m, effects
}

// updateLabels resolves the song and artist lines from the status message.
func updateLabels(m *Model, animate bool) []Effect {
	if m.StatusMessage == "" {
		m.SongLabel = m.Track.Title
		m.ArtistLabel = m.Track.Artist
		if animate && !m.Track.IsPlaceholder(m.Station) {
			return []Effect{zoomInSong}
		}
		return nil
	}

	if m.SongLabel == m.StatusMessage {
		return nil
	}

	m.SongLabel = m.StatusMessage
	m.ArtistLabel = m.Station.Name
	if animate {
		return []Effect{flashSong}
	}
	return nil
}

func trackMetadataUpdated(m Model, e TrackMetadataUpdated) (Model, []Effect) {
	if isStale(m, e.Generation) {
		log.Debug().Uint64("generation", e.Generation).Msg("Dropping stale track metadata")
		return m, nil
	}

	m.Track.Artist = e.Artist
	m.Track.Title = e.Title
	m.NowPlayingLabel = nowPlayingLabel(m.Station, m.Track)

	effects := updateLabels(&m, true)
	return m, effects
}

func trackArtworkUpdated(m Model, e TrackArtworkUpdated) (Model, []Effect) {
	if isStale(m, e.Generation) {
		log.Debug().Uint64("generation", e.Generation).Msg("Dropping stale artwork")
		return m, nil
	}

	m.Track.Artwork = e.Artwork
	m.Track.ArtworkLoaded = e.Loaded

	if e.Loaded {
		m.DescriptionHidden = true
		return m, []Effect{wobbleArt}
	}
	m.DescriptionHidden = false
	return m, nil
}

func (r Reducer) stationSelected(m Model, e StationSelected) (Model, []Effect) {
	m.Station = e.Station
	m.Track = e.Track
	m.DescriptionHidden = e.Track.ArtworkLoaded
	m.ControlsEnabled = true
	m.NavigationEnabled = true
	m.NowPlayingLabel = nowPlayingLabel(e.Station, e.Track)

	if e.IsNewStation {
		m.Generation++
		m.StatusMessage = ""
		m.SongLabel = e.Track.Title
		m.ArtistLabel = e.Track.Artist
		return m, nil
	}

	return r.playerStateChanged(m, PlayerStateChanged{
		State:     e.Player,
		Playback:  e.Playback,
		IsPlaying: e.IsPlaying,
		Animate:   false,
	})
}

func reset(m Model) Model {
	next := Initial()
	next.Generation = m.Generation + 1
	return next
}

func isStale(m Model, generation uint64) bool {
	return generation != 0 && generation != m.Generation
}
