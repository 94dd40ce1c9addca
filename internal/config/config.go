package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const (
	AppName        = "nowplaying"
	AppTagline     = "Internet radio now-playing console"
	AppProjectURL  = "https://github.com/glebovdev/nowplaying"
	ConfigDir      = "nowplaying"
	ConfigFileName = "config.yml"

	DefaultStationsURL     = "https://raw.githubusercontent.com/glebovdev/nowplaying/main/stations.json"
	DefaultRefreshInterval = 10 * time.Minute
	MinRefreshInterval     = 30 * time.Second
	DefaultArtworkSize     = 600
	MinArtworkSize         = 32
	MaxArtworkSize         = 2048
)

// AppVersion can be overridden at build time using ldflags:
// go build -ldflags "-X github.com/glebovdev/nowplaying/internal/config.AppVersion=1.0.0"
var AppVersion = "dev"

type Config struct {
	StationsURL           string        `yaml:"stations_url"`
	RefreshInterval       time.Duration `yaml:"refresh_interval"`
	LastStation           string        `yaml:"last_station"`
	Autoplay              bool          `yaml:"autoplay"`
	ArtworkSize           int           `yaml:"artwork_size"`
	OptimisticPauseButton bool          `yaml:"optimistic_pause_button"`
	MPRIS                 bool          `yaml:"mpris"`
	Favorites             []string      `yaml:"favorites"`
}

// ClampArtworkSize keeps the artwork edge length within [MinArtworkSize, MaxArtworkSize].
func ClampArtworkSize(size int) int {
	if size < MinArtworkSize {
		return MinArtworkSize
	}
	if size > MaxArtworkSize {
		return MaxArtworkSize
	}
	return size
}

// ClampRefreshInterval returns zero (disabled) for non-positive values and
// raises anything shorter than MinRefreshInterval.
func ClampRefreshInterval(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	if d < MinRefreshInterval {
		return MinRefreshInterval
	}
	return d
}

func GetConfigPath() (string, error) {
	configPath, err := xdg.ConfigFile(filepath.Join(ConfigDir, ConfigFileName))
	if err != nil {
		return "", fmt.Errorf("failed to resolve config path: %w", err)
	}
	return configPath, nil
}

func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return DefaultConfig(), err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.StationsURL == "" {
		cfg.StationsURL = DefaultStationsURL
	}
	cfg.ArtworkSize = ClampArtworkSize(cfg.ArtworkSize)
	cfg.RefreshInterval = ClampRefreshInterval(cfg.RefreshInterval)

	return cfg, nil
}

// Save writes the configuration to disk atomically using temp file + rename.
func (c *Config) Save() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmpFile, err := os.CreateTemp(configDir, ".config-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpPath != "" {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, configPath); err != nil {
		return fmt.Errorf("failed to rename config file: %w", err)
	}

	tmpPath = "" // Prevent defer from removing the final file
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		StationsURL:     DefaultStationsURL,
		RefreshInterval: DefaultRefreshInterval,
		LastStation:     "",
		Autoplay:        true,
		ArtworkSize:     DefaultArtworkSize,
		Favorites:       []string{},
	}
}

func (c *Config) IsFavorite(name string) bool {
	return slices.Contains(c.Favorites, name)
}

func (c *Config) ToggleFavorite(name string) {
	if i := slices.Index(c.Favorites, name); i >= 0 {
		c.Favorites = slices.Delete(c.Favorites, i, i+1)
		return
	}
	c.Favorites = append(c.Favorites, name)
}

// CleanupFavorites drops favorites that are no longer in the station list.
func (c *Config) CleanupFavorites(valid map[string]bool) {
	cleaned := []string{}
	for _, name := range c.Favorites {
		if valid[name] {
			cleaned = append(cleaned, name)
		}
	}
	c.Favorites = cleaned
}
