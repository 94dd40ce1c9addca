// Package station defines the radio station and track data structures.
package station

import (
	"image"
	"slices"
)

// Station represents a radio station as delivered by the station list.
// Name is the station's identity and is unique within a list.
type Station struct {
	Name      string `json:"name" yaml:"name"`
	Desc      string `json:"desc" yaml:"desc"`
	StreamURL string `json:"streamURL" yaml:"streamURL"`
	ImageURL  string `json:"imageURL" yaml:"imageURL"`
	LongDesc  string `json:"longDesc" yaml:"longDesc"`
}

// Track holds what is known about the audio currently playing on a station.
type Track struct {
	Title         string
	Artist        string
	Artwork       image.Image
	ArtworkLoaded bool
}

// PlaceholderTrack returns the track shown for a station before any
// metadata has been received.
func PlaceholderTrack(s Station) Track {
	return Track{
		Title:  s.Name,
		Artist: s.Desc,
	}
}

// IsPlaceholder reports whether the track still carries the station's own
// name rather than real metadata.
func (t Track) IsPlaceholder(s Station) bool {
	return t.Title == s.Name
}

// Equal reports whether two station lists are identical, field by field and in order.
func Equal(a, b []Station) bool {
	return slices.Equal(a, b)
}

// IndexByName returns the position of the station with the given name, or -1.
func IndexByName(stations []Station, name string) int {
	return slices.IndexFunc(stations, func(s Station) bool {
		return s.Name == name
	})
}

// Contains reports whether a station with the given name is present.
func Contains(stations []Station, name string) bool {
	return IndexByName(stations, name) >= 0
}
