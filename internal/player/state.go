package player

import "fmt"

// State is the streaming engine's connection lifecycle for the assigned URL.
type State int

const (
	StateURLNotSet State = iota
	StateLoading
	StateReadyToPlay
	StateLoadingFinished
	StateError
)

func (s State) String() string {
	switch s {
	case StateURLNotSet:
		return "URL_NOT_SET"
	case StateLoading:
		return "LOADING"
	case StateReadyToPlay:
		return "READY"
	case StateLoadingFinished:
		return "LOADING_FINISHED"
	case StateError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// IsPlayable reports whether the stream has loaded far enough for the
// playback state to be meaningful.
func (s State) IsPlayable() bool {
	return s == StateReadyToPlay || s == StateLoadingFinished
}

// PlaybackState is the transport state of the player.
type PlaybackState int

const (
	PlaybackStopped PlaybackState = iota
	PlaybackPlaying
	PlaybackPaused
)

func (s PlaybackState) String() string {
	switch s {
	case PlaybackStopped:
		return "STOPPED"
	case PlaybackPlaying:
		return "PLAYING"
	case PlaybackPaused:
		return "PAUSED"
	default:
		return "UNKNOWN"
	}
}

// ParseState converts the names used in station scripts ("loading",
// "urlNotSet", "readyToPlay", "loadingFinished", "error") into a State.
func ParseState(name string) (State, error) {
	switch name {
	case "urlNotSet":
		return StateURLNotSet, nil
	case "loading":
		return StateLoading, nil
	case "readyToPlay":
		return StateReadyToPlay, nil
	case "loadingFinished":
		return StateLoadingFinished, nil
	case "error":
		return StateError, nil
	}
	return StateURLNotSet, fmt.Errorf("unknown player state %q", name)
}

// ParsePlaybackState converts "playing", "paused" or "stopped" into a PlaybackState.
func ParsePlaybackState(name string) (PlaybackState, error) {
	switch name {
	case "playing":
		return PlaybackPlaying, nil
	case "paused":
		return PlaybackPaused, nil
	case "stopped":
		return PlaybackStopped, nil
	}
	return PlaybackStopped, fmt.Errorf("unknown playback state %q", name)
}
