package presentation

import (
	"fmt"
	"time"
)

// EffectKind names a one-shot animation.
type EffectKind int

const (
	// EffectZoomIn draws attention to newly arrived track metadata.
	EffectZoomIn EffectKind = iota
	// EffectFlash blinks a status message.
	EffectFlash
	// EffectWobble shakes freshly loaded album artwork.
	EffectWobble
)

func (k EffectKind) String() string {
	switch k {
	case EffectZoomIn:
		return "zoomIn"
	case EffectFlash:
		return "flash"
	case EffectWobble:
		return "wobble"
	default:
		return "unknown"
	}
}

// Target is the element an effect applies to.
type Target int

const (
	TargetSongLabel Target = iota
	TargetArtwork
)

func (t Target) String() string {
	switch t {
	case TargetSongLabel:
		return "song"
	case TargetArtwork:
		return "artwork"
	default:
		return "unknown"
	}
}

// Effect is an animation the rendering layer runs once per transition.
type Effect struct {
	Kind     EffectKind
	Target   Target
	Duration time.Duration
	Repeat   int
}

func (e Effect) String() string {
	if e.Repeat > 1 {
		return fmt.Sprintf("%s(%s)x%d", e.Kind, e.Target, e.Repeat)
	}
	return fmt.Sprintf("%s(%s)", e.Kind, e.Target)
}

const flashRepeat = 3

var (
	zoomInSong = Effect{Kind: EffectZoomIn, Target: TargetSongLabel, Duration: 1500 * time.Millisecond, Repeat: 1}
	flashSong  = Effect{Kind: EffectFlash, Target: TargetSongLabel, Duration: time.Second, Repeat: flashRepeat}
	wobbleArt  = Effect{Kind: EffectWobble, Target: TargetArtwork, Duration: 2 * time.Second, Repeat: 1}
)
