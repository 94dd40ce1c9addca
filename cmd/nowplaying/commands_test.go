package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glebovdev/nowplaying/internal/nowplaying"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line     string
		expected command
	}{
		{"", command{kind: cmdNone}},
		{"   ", command{kind: cmdNone}},
		{"p", command{kind: cmdIntent, intent: nowplaying.IntentTogglePlay}},
		{"s", command{kind: cmdIntent, intent: nowplaying.IntentStop}},
		{"n", command{kind: cmdIntent, intent: nowplaying.IntentNext}},
		{"b", command{kind: cmdIntent, intent: nowplaying.IntentPrevious}},
		{"/jazz", command{kind: cmdSearch, arg: "jazz"}},
		{"/", command{kind: cmdSearch, arg: ""}},
		{"f", command{kind: cmdFavorite}},
		{"r", command{kind: cmdRefresh}},
		{"l", command{kind: cmdList}},
		{"i", command{kind: cmdShare}},
		{"?", command{kind: cmdHelp}},
		{"q", command{kind: cmdQuit}},
		{"  Radio One  ", command{kind: cmdSelect, arg: "Radio One"}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseCommand(tt.line))
		})
	}
}
