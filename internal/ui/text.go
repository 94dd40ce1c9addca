// Package ui renders the presentation model and the station list as plain
// text lines for a terminal or a log.
package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/glebovdev/nowplaying/internal/presentation"
	"github.com/glebovdev/nowplaying/internal/stationlist"
)

const DefaultWidth = 80

// Text writes one line per presentation change and a block per station list
// change. Unchanged status lines are not repeated.
type Text struct {
	out   io.Writer
	width int
	// IsFavorite marks rows with FavoriteIcon; nil disables the column.
	IsFavorite func(name string) bool

	mu       sync.Mutex
	active   string
	lastLine string
}

func NewText(out io.Writer, width int) *Text {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Text{out: out, width: width}
}

func (t *Text) Render(m presentation.Model, effects []presentation.Effect) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.active = m.Station.Name

	line := Truncate(statusLine(m, effects), t.width)
	if line == t.lastLine {
		return
	}
	t.lastLine = line
	fmt.Fprintln(t.out, line)
}

func (t *Text) RenderStations(rows []stationlist.Row) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(rows) == 0 {
		fmt.Fprintln(t.out, "  (no matching stations)")
		return
	}

	for _, row := range rows {
		fmt.Fprintln(t.out, Truncate(t.rowLine(row), t.width))
	}
}

func (t *Text) rowLine(row stationlist.Row) string {
	if row.Placeholder {
		return "  " + row.Station.Name
	}

	var b strings.Builder
	if row.Station.Name == t.active {
		b.WriteString(ActiveIcon)
	} else {
		b.WriteString(" ")
	}
	if t.IsFavorite != nil && t.IsFavorite(row.Station.Name) {
		b.WriteString(FavoriteIcon)
	} else {
		b.WriteString(" ")
	}
	b.WriteString(" ")
	b.WriteString(row.Station.Name)
	if row.Station.Desc != "" {
		b.WriteString(" - ")
		b.WriteString(row.Station.Desc)
	}
	return b.String()
}

// Truncate shortens a string to fit within maxWidth terminal cells, adding
// an ellipsis if truncated.
func Truncate(s string, maxWidth int) string {
	return runewidth.Truncate(Sanitize(s), maxWidth, "...")
}

// Sanitize removes control characters (except tab) and invalid UTF-8 bytes,
// which would otherwise break terminal output when they come from stream
// metadata.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size <= 1:
		case r != '\t' && unicode.IsControl(r):
		default:
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}
