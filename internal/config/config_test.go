package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
)

func useTempConfigHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return dir
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.StationsURL != DefaultStationsURL {
		t.Errorf("DefaultConfig().StationsURL = %q, want %q", cfg.StationsURL, DefaultStationsURL)
	}

	if cfg.ArtworkSize != DefaultArtworkSize {
		t.Errorf("DefaultConfig().ArtworkSize = %d, want %d", cfg.ArtworkSize, DefaultArtworkSize)
	}

	if cfg.RefreshInterval != DefaultRefreshInterval {
		t.Errorf("DefaultConfig().RefreshInterval = %v, want %v", cfg.RefreshInterval, DefaultRefreshInterval)
	}

	if cfg.OptimisticPauseButton {
		t.Error("DefaultConfig().OptimisticPauseButton = true, want false")
	}

	if cfg.LastStation != "" {
		t.Errorf("DefaultConfig().LastStation = %q, want empty string", cfg.LastStation)
	}
}

func TestConfigSaveAndLoad(t *testing.T) {
	dir := useTempConfigHome(t)

	testCfg := &Config{
		StationsURL:           "http://example.com/stations.json",
		RefreshInterval:       5 * time.Minute,
		LastStation:           "Jazz",
		ArtworkSize:           300,
		OptimisticPauseButton: true,
	}

	if err := testCfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	configPath := filepath.Join(dir, ConfigDir, ConfigFileName)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatalf("Config file was not created at %s", configPath)
	}

	loadedCfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loadedCfg.StationsURL != testCfg.StationsURL {
		t.Errorf("Load().StationsURL = %q, want %q", loadedCfg.StationsURL, testCfg.StationsURL)
	}
	if loadedCfg.RefreshInterval != testCfg.RefreshInterval {
		t.Errorf("Load().RefreshInterval = %v, want %v", loadedCfg.RefreshInterval, testCfg.RefreshInterval)
	}
	if loadedCfg.LastStation != testCfg.LastStation {
		t.Errorf("Load().LastStation = %q, want %q", loadedCfg.LastStation, testCfg.LastStation)
	}
	if loadedCfg.ArtworkSize != testCfg.ArtworkSize {
		t.Errorf("Load().ArtworkSize = %d, want %d", loadedCfg.ArtworkSize, testCfg.ArtworkSize)
	}
	if !loadedCfg.OptimisticPauseButton {
		t.Error("Load().OptimisticPauseButton = false, want true")
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	useTempConfigHome(t)

	cfg, err := Load()
	if err != nil {
		t.Logf("Load() error (expected): %v", err)
	}

	if cfg.ArtworkSize != DefaultArtworkSize {
		t.Errorf("Load() with non-existent file returned ArtworkSize = %d, want %d", cfg.ArtworkSize, DefaultArtworkSize)
	}

	if cfg.LastStation != "" {
		t.Errorf("Load() with non-existent file returned LastStation = %q, want empty string", cfg.LastStation)
	}
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	dir := useTempConfigHome(t)

	configPath := filepath.Join(dir, ConfigDir, ConfigFileName)
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		t.Fatal(err)
	}
	data := "last_station: Jazz\nrefresh_interval: 2m\n"
	if err := os.WriteFile(configPath, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LastStation != "Jazz" {
		t.Errorf("Load().LastStation = %q, want %q", cfg.LastStation, "Jazz")
	}
	if cfg.RefreshInterval != 2*time.Minute {
		t.Errorf("Load().RefreshInterval = %v, want 2m", cfg.RefreshInterval)
	}
	if cfg.StationsURL != DefaultStationsURL {
		t.Errorf("Load().StationsURL = %q, want default", cfg.StationsURL)
	}
	if !cfg.Autoplay {
		t.Error("Load().Autoplay = false, want default true")
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	dir := useTempConfigHome(t)

	configPath := filepath.Join(dir, ConfigDir, ConfigFileName)
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(configPath, []byte("artwork_size: [nope"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err == nil {
		t.Error("Load() expected error for invalid YAML")
	}
	if cfg.ArtworkSize != DefaultArtworkSize {
		t.Errorf("Load() returned ArtworkSize = %d, want default", cfg.ArtworkSize)
	}
}

func TestArtworkSizeValidation(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"valid size", 600, 600},
		{"minimum", MinArtworkSize, MinArtworkSize},
		{"maximum", MaxArtworkSize, MaxArtworkSize},
		{"zero", 0, MinArtworkSize},
		{"negative", -10, MinArtworkSize},
		{"too large", 10000, MaxArtworkSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useTempConfigHome(t)

			testCfg := &Config{ArtworkSize: tt.input}
			if err := testCfg.Save(); err != nil {
				t.Fatalf("Save() error = %v", err)
			}

			loadedCfg, err := Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}

			if loadedCfg.ArtworkSize != tt.expected {
				t.Errorf("Load().ArtworkSize = %d, want %d", loadedCfg.ArtworkSize, tt.expected)
			}
		})
	}
}

func TestClampRefreshInterval(t *testing.T) {
	tests := []struct {
		input    time.Duration
		expected time.Duration
	}{
		{0, 0},
		{-time.Second, 0},
		{time.Second, MinRefreshInterval},
		{time.Hour, time.Hour},
	}

	for _, tt := range tests {
		if got := ClampRefreshInterval(tt.input); got != tt.expected {
			t.Errorf("ClampRefreshInterval(%v) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestToggleFavorite(t *testing.T) {
	tests := []struct {
		name              string
		initialFavorites  []string
		station           string
		expectedFavorites []string
	}{
		{
			name:              "add to empty list",
			initialFavorites:  []string{},
			station:           "Jazz",
			expectedFavorites: []string{"Jazz"},
		},
		{
			name:              "add to existing list",
			initialFavorites:  []string{"Radio One"},
			station:           "Jazz",
			expectedFavorites: []string{"Radio One", "Jazz"},
		},
		{
			name:              "remove from list",
			initialFavorites:  []string{"Radio One", "Jazz", "Rock Radio"},
			station:           "Jazz",
			expectedFavorites: []string{"Radio One", "Rock Radio"},
		},
		{
			name:              "remove only item",
			initialFavorites:  []string{"Jazz"},
			station:           "Jazz",
			expectedFavorites: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Favorites: make([]string, len(tt.initialFavorites))}
			copy(cfg.Favorites, tt.initialFavorites)

			cfg.ToggleFavorite(tt.station)

			if len(cfg.Favorites) != len(tt.expectedFavorites) {
				t.Fatalf("ToggleFavorite(%q) resulted in %d favorites, want %d",
					tt.station, len(cfg.Favorites), len(tt.expectedFavorites))
			}

			for i, fav := range cfg.Favorites {
				if fav != tt.expectedFavorites[i] {
					t.Errorf("Favorites[%d] = %q, want %q", i, fav, tt.expectedFavorites[i])
				}
			}
		})
	}
}

func TestToggleFavoriteDoubleToggle(t *testing.T) {
	cfg := &Config{Favorites: []string{}}

	cfg.ToggleFavorite("Jazz")
	if !cfg.IsFavorite("Jazz") {
		t.Error("After first toggle, Jazz should be favorite")
	}

	cfg.ToggleFavorite("Jazz")
	if cfg.IsFavorite("Jazz") {
		t.Error("After second toggle, Jazz should not be favorite")
	}
}

func TestCleanupFavorites(t *testing.T) {
	cfg := &Config{Favorites: []string{"Jazz", "Gone", "Radio One"}}

	cfg.CleanupFavorites(map[string]bool{"Jazz": true, "Radio One": true, "Rock Radio": true})

	if len(cfg.Favorites) != 2 || cfg.Favorites[0] != "Jazz" || cfg.Favorites[1] != "Radio One" {
		t.Errorf("CleanupFavorites() = %v, want [Jazz Radio One]", cfg.Favorites)
	}
}
