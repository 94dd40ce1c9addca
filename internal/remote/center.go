// Package remote exposes playback controls to the operating system's media
// keys and lock-screen widgets.
package remote

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/glebovdev/nowplaying/internal/nowplaying"
)

// Command is a remote-control request.
type Command int

const (
	CommandPlay Command = iota
	CommandPause
	CommandTogglePlayPause
	CommandStop
	CommandNextTrack
	CommandPreviousTrack
)

func (c Command) String() string {
	switch c {
	case CommandPlay:
		return "play"
	case CommandPause:
		return "pause"
	case CommandTogglePlayPause:
		return "togglePlayPause"
	case CommandStop:
		return "stop"
	case CommandNextTrack:
		return "nextTrack"
	case CommandPreviousTrack:
		return "previousTrack"
	default:
		return "unknown"
	}
}

// Status is the result a handler reports back to the platform.
type Status int

const (
	StatusSuccess Status = iota
	StatusNoSuchContent
	StatusCommandFailed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusNoSuchContent:
		return "noSuchContent"
	case StatusCommandFailed:
		return "commandFailed"
	default:
		return "unknown"
	}
}

// Handler handles one command.
type Handler func() Status

// Target receives forwarded intents. *nowplaying.Controller satisfies it.
type Target interface {
	Press(intent nowplaying.Intent)
}

var commandIntents = map[Command]nowplaying.Intent{
	CommandPlay:            nowplaying.IntentPlay,
	CommandPause:           nowplaying.IntentPause,
	CommandTogglePlayPause: nowplaying.IntentTogglePlay,
	CommandStop:            nowplaying.IntentStop,
	CommandNextTrack:       nowplaying.IntentNext,
	CommandPreviousTrack:   nowplaying.IntentPrevious,
}

// Center is a registry of command handlers.
type Center struct {
	mu       sync.RWMutex
	handlers map[Command]Handler
}

func NewCenter() *Center {
	return &Center{handlers: make(map[Command]Handler)}
}

// Register installs h for cmd, replacing any previous handler.
func (c *Center) Register(cmd Command, h Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[cmd] = h
}

// Bind registers a handler for every command that forwards the matching
// intent to t and always reports success.
func (c *Center) Bind(t Target) {
	for cmd, intent := range commandIntents {
		c.Register(cmd, func() Status {
			t.Press(intent)
			return StatusSuccess
		})
	}
}

// Dispatch runs the handler for cmd. Commands without a handler fail.
func (c *Center) Dispatch(cmd Command) Status {
	c.mu.RLock()
	h, ok := c.handlers[cmd]
	c.mu.RUnlock()

	if !ok {
		log.Debug().Stringer("command", cmd).Msg("No handler registered for remote command")
		return StatusCommandFailed
	}

	status := h()
	log.Debug().Stringer("command", cmd).Stringer("status", status).Msg("Remote command dispatched")
	return status
}
