// Package cache stores resized station artwork on disk.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultExpiry is how long cached artwork is valid (7 days).
	DefaultExpiry = 7 * 24 * time.Hour
	// ArtworkSubdir is the subdirectory for cached artwork.
	ArtworkSubdir = "artwork"
	// AppName is used for the cache directory name.
	AppName = "nowplaying"
)

// Cache manages disk-based caching of artwork images.
type Cache struct {
	baseDir string
	expiry  time.Duration
}

// NewCache creates a Cache under the XDG cache home with the default expiry.
func NewCache() *Cache {
	return &Cache{
		baseDir: GetCacheDir(),
		expiry:  DefaultExpiry,
	}
}

// NewCacheAt creates a Cache rooted at dir.
func NewCacheAt(dir string, expiry time.Duration) *Cache {
	return &Cache{baseDir: dir, expiry: expiry}
}

// GetCacheDir returns the application's cache directory.
func GetCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Dir returns the cache root.
func (c *Cache) Dir() string {
	return c.baseDir
}

// key identifies an image by source URL and edge length, since the same
// URL may be cached at several sizes.
func key(url string, size int) string {
	hash := sha256.Sum256([]byte(url + "#" + strconv.Itoa(size)))
	return hex.EncodeToString(hash[:16])
}

func (c *Cache) imagePath(url string, size int) string {
	return filepath.Join(c.baseDir, ArtworkSubdir, key(url, size)+".png")
}

// GetImage retrieves cached artwork. Returns nil if not found or expired.
func (c *Cache) GetImage(url string, size int) image.Image {
	imagePath := c.imagePath(url, size)

	info, err := os.Stat(imagePath)
	if err != nil {
		return nil
	}

	if time.Since(info.ModTime()) > c.expiry {
		if err := os.Remove(imagePath); err != nil {
			log.Debug().Err(err).Str("file", imagePath).Msg("Failed to remove expired cache file")
		}
		return nil
	}

	file, err := os.Open(imagePath)
	if err != nil {
		return nil
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		log.Debug().Err(err).Str("file", imagePath).Msg("Failed to decode cached image")
		return nil
	}

	return img
}

// SaveImage stores artwork in the cache.
func (c *Cache) SaveImage(url string, size int, img image.Image) error {
	imagePath := c.imagePath(url, size)

	if err := os.MkdirAll(filepath.Dir(imagePath), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	file, err := os.CreateTemp(filepath.Dir(imagePath), ".artwork-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	tmpPath := file.Name()
	defer os.Remove(tmpPath)

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode image: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close cache file: %w", err)
	}

	if err := os.Rename(tmpPath, imagePath); err != nil {
		return fmt.Errorf("failed to rename cache file: %w", err)
	}

	return nil
}

// CleanExpired removes artwork older than the expiry duration and returns
// the number of bytes freed.
func (c *Cache) CleanExpired() (int64, error) {
	imageDir := filepath.Join(c.baseDir, ArtworkSubdir)

	entries, err := os.ReadDir(imageDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read cache directory: %w", err)
	}

	now := time.Now()
	var removed, failed int
	var freed int64
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			log.Debug().Err(err).Str("file", entry.Name()).Msg("Failed to get file info")
			continue
		}

		if now.Sub(info.ModTime()) <= c.expiry {
			continue
		}

		filePath := filepath.Join(imageDir, entry.Name())
		if err := os.Remove(filePath); err != nil {
			log.Debug().Err(err).Str("file", filePath).Msg("Failed to remove expired cache file")
			failed++
			continue
		}
		removed++
		freed += info.Size()
	}

	if removed > 0 || failed > 0 {
		log.Debug().
			Int("removed", removed).
			Int("failed", failed).
			Str("freed", humanize.Bytes(uint64(freed))).
			Msg("Cache cleanup completed")
	}

	return freed, nil
}
