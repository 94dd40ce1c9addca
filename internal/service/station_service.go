// Package service sits between the station sources and the controller: it
// remembers the last good station list and loads station artwork.
package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/nfnt/resize"
	"github.com/rs/zerolog/log"

	"github.com/glebovdev/nowplaying/internal/cache"
	"github.com/glebovdev/nowplaying/internal/station"
)

const imageLoadTimeout = 15 * time.Second

// Source provides the station list.
type Source interface {
	FetchStations(ctx context.Context) ([]station.Station, error)
}

// StationService wraps a Source, keeping the most recent list it returned,
// and loads artwork through an optional disk cache.
type StationService struct {
	source      Source
	stations    []station.Station
	mu          sync.RWMutex
	imageCache  *cache.Cache
	http        *resty.Client
	artworkSize int
}

// NewStationService creates a StationService. imageCache may be nil.
func NewStationService(source Source, imageCache *cache.Cache, artworkSize int) *StationService {
	if imageCache != nil {
		go func() {
			if _, err := imageCache.CleanExpired(); err != nil {
				log.Debug().Err(err).Msg("Failed to clean expired cache")
			}
		}()
	}

	return &StationService{
		source:      source,
		imageCache:  imageCache,
		http:        resty.New().SetTimeout(imageLoadTimeout),
		artworkSize: artworkSize,
	}
}

// FetchStations fetches a fresh list from the source. On failure the
// previous list stays cached.
func (s *StationService) FetchStations(ctx context.Context) ([]station.Station, error) {
	stations, err := s.source.FetchStations(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.stations = append([]station.Station(nil), stations...)
	s.mu.Unlock()

	log.Debug().Int("count", len(stations)).Msg("Station data refreshed")
	return stations, nil
}

func (s *StationService) GetValidStationNames() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	valid := make(map[string]bool)
	for _, st := range s.stations {
		valid[st.Name] = true
	}
	return valid
}

// LoadArtwork downloads the image at url and scales it to fit the
// configured edge length, preserving aspect ratio.
func (s *StationService) LoadArtwork(url string) (image.Image, error) {
	size := s.artworkSize

	if s.imageCache != nil {
		if img := s.imageCache.GetImage(url, size); img != nil {
			log.Debug().Str("url", url).Msg("Artwork loaded from cache")
			return img, nil
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), imageLoadTimeout)
	defer cancel()

	resp, err := s.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch artwork: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("artwork request returned status %d", resp.StatusCode())
	}

	img, _, err := image.Decode(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("failed to decode artwork: %w", err)
	}

	if size > 0 {
		img = resize.Thumbnail(uint(size), uint(size), img, resize.Lanczos3)
	}

	if s.imageCache != nil {
		if err := s.imageCache.SaveImage(url, size, img); err != nil {
			log.Debug().Err(err).Str("url", url).Msg("Failed to cache artwork")
		} else {
			log.Debug().Str("url", url).Msg("Artwork cached")
		}
	}

	return img, nil
}
