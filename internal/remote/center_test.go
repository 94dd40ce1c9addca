package remote

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glebovdev/nowplaying/internal/nowplaying"
)

type recordingTarget struct {
	mu      sync.Mutex
	intents []nowplaying.Intent
}

func (r *recordingTarget) Press(intent nowplaying.Intent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intents = append(r.intents, intent)
}

func TestBindForwardsEveryCommand(t *testing.T) {
	tests := []struct {
		cmd    Command
		intent nowplaying.Intent
	}{
		{CommandPlay, nowplaying.IntentPlay},
		{CommandPause, nowplaying.IntentPause},
		{CommandTogglePlayPause, nowplaying.IntentTogglePlay},
		{CommandStop, nowplaying.IntentStop},
		{CommandNextTrack, nowplaying.IntentNext},
		{CommandPreviousTrack, nowplaying.IntentPrevious},
	}

	for _, tt := range tests {
		t.Run(tt.cmd.String(), func(t *testing.T) {
			target := &recordingTarget{}
			center := NewCenter()
			center.Bind(target)

			status := center.Dispatch(tt.cmd)

			assert.Equal(t, StatusSuccess, status)
			assert.Equal(t, []nowplaying.Intent{tt.intent}, target.intents)
		})
	}
}

func TestDispatchWithoutHandlerFails(t *testing.T) {
	center := NewCenter()

	assert.Equal(t, StatusCommandFailed, center.Dispatch(CommandPlay))
}

func TestRegisterReplacesHandler(t *testing.T) {
	center := NewCenter()
	center.Bind(&recordingTarget{})

	calls := 0
	center.Register(CommandStop, func() Status {
		calls++
		return StatusNoSuchContent
	})

	assert.Equal(t, StatusNoSuchContent, center.Dispatch(CommandStop))
	assert.Equal(t, 1, calls)
}

func TestCommandAndStatusStrings(t *testing.T) {
	assert.Equal(t, "togglePlayPause", CommandTogglePlayPause.String())
	assert.Equal(t, "unknown", Command(99).String())
	assert.Equal(t, "success", StatusSuccess.String())
	assert.Equal(t, "commandFailed", StatusCommandFailed.String())
	assert.Equal(t, "unknown", Status(99).String())
}
