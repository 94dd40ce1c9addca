package ui

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/glebovdev/nowplaying/internal/presentation"
)

// PauseIcon uses platform-specific character (Windows renders ⏸ as emoji)
var PauseIcon = func() string {
	if runtime.GOOS == "windows" {
		return "❚❚"
	}
	return "⏸"
}()

const (
	PlayingIcon  = "●"
	IdleIcon     = "○"
	ErrorIcon    = "✗"
	ActiveIcon   = "➤"
	FavoriteIcon = "★"
)

// statusIndicator summarizes the model in a short glyph-prefixed label.
func statusIndicator(m presentation.Model) string {
	switch {
	case !m.HasStation():
		return IdleIcon + " IDLE"
	case m.StatusMessage == presentation.MessageError || m.StatusMessage == presentation.MessageURLNotSet:
		return ErrorIcon + " ERROR"
	case m.AnimateNowPlaying:
		return PlayingIcon + " LIVE"
	case m.StatusMessage == presentation.MessageLoading:
		return "◐ BUFFERING"
	case m.StatusMessage == presentation.MessagePaused:
		return PauseIcon + " PAUSED"
	default:
		return IdleIcon + " STOPPED"
	}
}

// statusLine renders the song and artist lines together with the indicator
// and any effects triggered by the transition.
func statusLine(m presentation.Model, effects []presentation.Effect) string {
	parts := []string{statusIndicator(m)}

	if !m.HasStation() {
		parts = append(parts, m.NowPlayingLabel)
		return joinParts(parts)
	}

	track := m.SongLabel
	if m.ArtistLabel != "" {
		track = fmt.Sprintf("%s - %s", m.SongLabel, m.ArtistLabel)
	}
	parts = append(parts, track, "["+m.Button.String()+"]")

	if len(effects) > 0 {
		names := make([]string, 0, len(effects))
		for _, e := range effects {
			names = append(names, e.String())
		}
		parts = append(parts, strings.Join(names, " "))
	}

	return joinParts(parts)
}

func joinParts(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	result := parts[0]
	for i := 1; i < len(parts); i++ {
		result += " │ " + parts[i]
	}
	return result
}

// FriendlyErrorMessage turns transport errors into a short explanation.
func FriendlyErrorMessage(errStr string) string {
	if strings.Contains(errStr, "no such host") {
		return "Unable to connect to server. Please check your internet connection."
	}
	if strings.Contains(errStr, "connection refused") {
		return "Connection refused by server. The service may be temporarily unavailable."
	}
	if strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded") {
		return "Connection timed out. Please check your internet connection."
	}
	if strings.Contains(errStr, "network is unreachable") {
		return "Network is unreachable. Please check your internet connection."
	}
	if strings.Contains(errStr, "malformed station list") {
		return "The station list could not be read."
	}
	if strings.Contains(errStr, "status 404") {
		return "Station list not found (404)."
	}

	if idx := strings.Index(errStr, ": dial"); idx > 0 {
		return errStr[:idx]
	}
	if len(errStr) > 100 {
		return errStr[:100] + "..."
	}
	return errStr
}
