package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"github.com/glebovdev/nowplaying/internal/player"
	"github.com/glebovdev/nowplaying/internal/presentation"
	"github.com/glebovdev/nowplaying/internal/station"
	"github.com/glebovdev/nowplaying/internal/stationlist"
)

var jazz = station.Station{Name: "Jazz", Desc: "Smooth", StreamURL: "http://example.com/jazz"}

func selected() presentation.Model {
	m, _ := presentation.Reducer{}.Reduce(presentation.Initial(), presentation.StationSelected{
		Station:      jazz,
		Track:        station.PlaceholderTrack(jazz),
		IsNewStation: true,
	})
	return m
}

func TestJoinParts(t *testing.T) {
	tests := []struct {
		name     string
		parts    []string
		expected string
	}{
		{"empty", []string{}, ""},
		{"single", []string{"LIVE"}, "LIVE"},
		{"two", []string{"LIVE", "Song"}, "LIVE │ Song"},
		{"three", []string{"a", "b", "c"}, "a │ b │ c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := joinParts(tt.parts); result != tt.expected {
				t.Errorf("joinParts(%v) = %q, want %q", tt.parts, result, tt.expected)
			}
		})
	}
}

func TestStatusIndicator(t *testing.T) {
	r := presentation.Reducer{}
	base := selected()

	playing, _ := r.Reduce(base, presentation.PlaybackStateChanged{State: player.PlaybackPlaying, IsPlaying: true})
	paused, _ := r.Reduce(playing, presentation.PlaybackStateChanged{State: player.PlaybackPaused})
	loading, _ := r.Reduce(base, presentation.PlayerStateChanged{State: player.StateLoading})
	failed, _ := r.Reduce(base, presentation.PlayerStateChanged{State: player.StateError})
	stopped, _ := r.Reduce(playing, presentation.PlaybackStateChanged{State: player.PlaybackStopped})

	tests := []struct {
		name     string
		model    presentation.Model
		expected string
	}{
		{"idle", presentation.Initial(), IdleIcon + " IDLE"},
		{"playing", playing, PlayingIcon + " LIVE"},
		{"paused", paused, PauseIcon + " PAUSED"},
		{"loading", loading, "◐ BUFFERING"},
		{"error", failed, ErrorIcon + " ERROR"},
		{"stopped", stopped, IdleIcon + " STOPPED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusIndicator(tt.model); got != tt.expected {
				t.Errorf("statusIndicator() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestTextRender(t *testing.T) {
	var buf bytes.Buffer
	text := NewText(&buf, 200)

	text.Render(presentation.Initial(), nil)
	m, effects := presentation.Reducer{}.Reduce(selected(), presentation.PlayerStateChanged{State: player.StateLoading, Animate: true})
	text.Render(m, effects)
	text.Render(m, nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("Render() wrote %d lines, want 3:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], presentation.PromptChooseStation) {
		t.Errorf("idle line = %q, want prompt", lines[0])
	}
	if !strings.Contains(lines[1], "Loading Station ... - Jazz") || !strings.Contains(lines[1], "flash(song)x3") {
		t.Errorf("loading line = %q", lines[1])
	}
	if strings.Contains(lines[2], "flash") {
		t.Errorf("line without effects = %q", lines[2])
	}
}

func TestTextRenderSkipsRepeatedLine(t *testing.T) {
	var buf bytes.Buffer
	text := NewText(&buf, 0)

	text.Render(selected(), nil)
	text.Render(selected(), nil)

	if n := strings.Count(buf.String(), "\n"); n != 1 {
		t.Errorf("Render() wrote %d lines, want 1", n)
	}
}

func TestTextRenderStations(t *testing.T) {
	var buf bytes.Buffer
	text := NewText(&buf, 200)
	text.IsFavorite = func(name string) bool { return name == "Radio One" }

	text.Render(selected(), nil)
	buf.Reset()

	text.RenderStations([]stationlist.Row{
		{Station: station.Station{Name: "Radio One", Desc: "Hits"}},
		{Station: jazz},
	})

	expected := " " + FavoriteIcon + " Radio One - Hits\n" + ActiveIcon + "  Jazz - Smooth\n"
	if buf.String() != expected {
		t.Errorf("RenderStations() = %q, want %q", buf.String(), expected)
	}
}

func TestTextRenderStationsPlaceholderAndEmpty(t *testing.T) {
	var buf bytes.Buffer
	text := NewText(&buf, 200)

	text.RenderStations([]stationlist.Row{{Station: station.Station{Name: stationlist.PlaceholderText}, Placeholder: true}})
	text.RenderStations(nil)

	expected := "  " + stationlist.PlaceholderText + "\n  (no matching stations)\n"
	if buf.String() != expected {
		t.Errorf("RenderStations() = %q, want %q", buf.String(), expected)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{"fits", "Jazz", 10, "Jazz"},
		{"truncated", "Radio One Hits", 10, "Radio O..."},
		{"wide characters", "日本語のラジオ", 8, "日本..."},
		{"control characters removed", "So\x07 What", 20, "So What"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input, tt.width)
			if got != tt.expected {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.expected)
			}
			if runewidth.StringWidth(got) > tt.width {
				t.Errorf("Truncate(%q, %d) is %d cells wide", tt.input, tt.width, runewidth.StringWidth(got))
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	if got := Sanitize("a\tb\x00c\xffd"); got != "a\tbcd" {
		t.Errorf("Sanitize() = %q, want %q", got, "a\tbcd")
	}
}

func TestFriendlyErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      string
		contains string
	}{
		{"no such host", "dial tcp: lookup example.com: no such host", "Unable to connect"},
		{"connection refused", "dial tcp 127.0.0.1:80: connection refused", "Connection refused"},
		{"timeout", "context deadline exceeded (Client.Timeout exceeded)", "timed out"},
		{"network unreachable", "dial tcp: network is unreachable", "Network is unreachable"},
		{"malformed", "malformed station list", "could not be read"},
		{"404", "stations endpoint returned status 404: 404 Not Found", "404"},
		{"generic", "some error", "some error"},
		{"dial truncation", "failed to connect: dial tcp something", "failed to connect"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FriendlyErrorMessage(tt.err)
			if !strings.Contains(result, tt.contains) {
				t.Errorf("FriendlyErrorMessage(%q) = %q, expected to contain %q", tt.err, result, tt.contains)
			}
		})
	}

	if long := FriendlyErrorMessage(strings.Repeat("x", 200)); len(long) > 110 {
		t.Errorf("Long error not truncated properly, got length %d", len(long))
	}
}
