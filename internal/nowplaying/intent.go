package nowplaying

import "fmt"

// Intent is a user or remote-control request forwarded to the player.
type Intent int

const (
	// IntentTogglePlay is the play/pause button: pause when playing, play otherwise.
	IntentTogglePlay Intent = iota
	IntentPlay
	IntentPause
	IntentStop
	// IntentNext and IntentPrevious switch to the neighbouring station.
	IntentNext
	IntentPrevious
)

func (i Intent) String() string {
	switch i {
	case IntentTogglePlay:
		return "toggle"
	case IntentPlay:
		return "play"
	case IntentPause:
		return "pause"
	case IntentStop:
		return "stop"
	case IntentNext:
		return "next"
	case IntentPrevious:
		return "previous"
	default:
		return "unknown"
	}
}

// ParseIntent is the inverse of Intent.String.
func ParseIntent(s string) (Intent, error) {
	for i := IntentTogglePlay; i <= IntentPrevious; i++ {
		if i.String() == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown intent %q", s)
}
