// Package stationlist keeps the station list and the subset matching the
// current search query.
package stationlist

import (
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"

	"github.com/glebovdev/nowplaying/internal/station"
)

// PlaceholderText is shown as the only row while no stations are loaded.
const PlaceholderText = "Loading stations..."

// Row is one entry of the rendered station list.
type Row struct {
	Station     station.Station
	Placeholder bool
}

// Filter holds the full station list, the search query and the derived
// filtered rows. It is not safe for concurrent use.
type Filter struct {
	stations []station.Station
	query    string
	rows     []Row
	active   string
	fold     cases.Caser
}

func New() *Filter {
	f := &Filter{
		fold: cases.Fold(),
	}
	f.recompute()
	return f
}

// SetQuery changes the search query and returns the matching rows.
func (f *Filter) SetQuery(text string) []Row {
	f.query = text
	f.recompute()
	return f.Rows()
}

// SetStations replaces the station list. When the new list equals the
// current one nothing is recomputed and no reset is reported. Otherwise the
// rows are recomputed and reset reports whether the active station is
// missing from the new list; in that case the active station is cleared.
func (f *Filter) SetStations(stations []station.Station) (rows []Row, reset bool) {
	if station.Equal(f.stations, stations) {
		return f.Rows(), false
	}

	f.stations = append([]station.Station(nil), stations...)
	f.recompute()

	if f.active != "" && !station.Contains(f.stations, f.active) {
		log.Debug().Str("station", f.active).Msg("Active station no longer listed")
		f.active = ""
		reset = true
	}

	log.Debug().Int("count", len(f.stations)).Int("matches", len(f.rows)).Msg("Station list replaced")
	return f.Rows(), reset
}

// SetActive records the name of the station currently playing. An empty name
// clears it.
func (f *Filter) SetActive(name string) {
	f.active = name
}

// Active returns the name of the station currently playing.
func (f *Filter) Active() string {
	return f.active
}

// Query returns the current search query.
func (f *Filter) Query() string {
	return f.query
}

// Rows returns a copy of the current filtered rows.
func (f *Filter) Rows() []Row {
	rows := make([]Row, len(f.rows))
	copy(rows, f.rows)
	return rows
}

// Stations returns a copy of the full station list.
func (f *Filter) Stations() []station.Station {
	return append([]station.Station(nil), f.stations...)
}

// Neighbor returns the station offset positions away from the named one in
// the full list, wrapping around at both ends. If name is not listed the
// first station is returned.
func (f *Filter) Neighbor(name string, offset int) (station.Station, bool) {
	n := len(f.stations)
	if n == 0 {
		return station.Station{}, false
	}

	i := station.IndexByName(f.stations, name)
	if i < 0 {
		return f.stations[0], true
	}
	return f.stations[((i+offset)%n+n)%n], true
}

func (f *Filter) recompute() {
	if f.query == "" {
		if len(f.stations) == 0 {
			f.rows = []Row{{Placeholder: true, Station: station.Station{Name: PlaceholderText}}}
			return
		}
		f.rows = make([]Row, 0, len(f.stations))
		for _, s := range f.stations {
			f.rows = append(f.rows, Row{Station: s})
		}
		return
	}

	needle := f.fold.String(f.query)
	f.rows = make([]Row, 0, len(f.stations))
	for _, s := range f.stations {
		if strings.Contains(f.fold.String(s.Name), needle) {
			f.rows = append(f.rows, Row{Station: s})
		}
	}
}
