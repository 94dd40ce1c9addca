// Package api provides the station sources: an HTTP endpoint serving the
// station list JSON and a local file with the same shape.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/glebovdev/nowplaying/internal/station"
)

const requestTimeout = 30 * time.Second

// ErrMalformedStations is returned when a document has no "station" array.
var ErrMalformedStations = errors.New("malformed station list")

// HTTPSource fetches the station list from a URL.
type HTTPSource struct {
	client *resty.Client
	url    string
}

// NewHTTPSource creates a source for the given stations URL.
func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{
		client: resty.New().SetTimeout(requestTimeout),
		url:    url,
	}
}

// FetchStations downloads and decodes the station list.
func (s *HTTPSource) FetchStations(ctx context.Context) ([]station.Station, error) {
	resp, err := s.client.R().SetContext(ctx).Get(s.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stations: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("stations endpoint returned status %d: %s", resp.StatusCode(), resp.Status())
	}

	return ParseStations(resp.Body())
}

// FileSource reads the station list from a local JSON file.
type FileSource struct {
	Path string
}

func (s FileSource) FetchStations(ctx context.Context) ([]station.Station, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stations file: %w", err)
	}

	return ParseStations(data)
}

// ParseStations decodes a {"station": [...]} document. The order of the
// array is preserved.
func ParseStations(data []byte) ([]station.Station, error) {
	var response struct {
		Stations *[]station.Station `json:"station"`
	}

	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("failed to parse stations response: %w", err)
	}

	if response.Stations == nil {
		return nil, ErrMalformedStations
	}

	stations := *response.Stations
	if stations == nil {
		stations = []station.Station{}
	}
	return stations, nil
}
