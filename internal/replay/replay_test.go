package replay

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioScript(t *testing.T) {
	script, err := Load("testdata/scenario.yml")
	require.NoError(t, err)

	require.NoError(t, Run(context.Background(), script, nil))
}

func TestRunReportsFailedExpectation(t *testing.T) {
	script, err := Parse([]byte(`
stations:
  - {name: A, streamURL: "http://example.com/a"}
steps:
  - select: A
    expect:
      song: Wrong
      controls: false
`))
	require.NoError(t, err)

	err = Run(context.Background(), script, nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExpectation))
	assert.Contains(t, err.Error(), "step 1")
	assert.Contains(t, err.Error(), "song")
	assert.Contains(t, err.Error(), "controls")
}

func TestRunOptimisticPause(t *testing.T) {
	script, err := Parse([]byte(`
optimistic_pause_button: true
stations:
  - {name: A, streamURL: "http://example.com/a"}
steps:
  - select: A
  - state: readyToPlay
    expect:
      button: pause
      playback: stopped
`))
	require.NoError(t, err)

	require.NoError(t, Run(context.Background(), script, nil))
}

func TestRunInvalidStreamURL(t *testing.T) {
	script, err := Parse([]byte(`
stations:
  - {name: Broken, streamURL: "not a url"}
steps:
  - select: Broken
    expect:
      song: Station URL not valid
      artist: Broken
`))
	require.NoError(t, err)

	require.NoError(t, Run(context.Background(), script, nil))
}

func TestRunCancelled(t *testing.T) {
	script, err := Parse([]byte(`
steps:
  - wait: 1h
`))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, Run(ctx, script, nil), context.Canceled)
}

func TestParseRejectsInvalidSteps(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"two actions", "steps:\n  - {select: A, press: play}\n"},
		{"no action", "steps:\n  - {}\n"},
		{"unknown state", "steps:\n  - state: buffering\n"},
		{"unknown playback", "steps:\n  - playback: rewinding\n"},
		{"unknown intent", "steps:\n  - press: rewind\n"},
		{"unknown expected playback", "steps:\n  - expect: {playback: rewinding}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.script))
			assert.ErrorIs(t, err, ErrInvalidScript)
		})
	}
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("steps: [unclosed"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/missing.yml")
	assert.Error(t, err)
}
