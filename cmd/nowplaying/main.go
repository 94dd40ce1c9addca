package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/glebovdev/nowplaying/internal/api"
	"github.com/glebovdev/nowplaying/internal/cache"
	"github.com/glebovdev/nowplaying/internal/config"
	"github.com/glebovdev/nowplaying/internal/nowplaying"
	"github.com/glebovdev/nowplaying/internal/replay"
	"github.com/glebovdev/nowplaying/internal/service"
	"github.com/glebovdev/nowplaying/internal/stationlist"
	"github.com/glebovdev/nowplaying/internal/ui"
)

const listTimeout = 30 * time.Second

var (
	versionFlag  = flag.Bool("version", false, "Show version information")
	debugFlag    = flag.Bool("debug", false, "Enable debug logging")
	listFlag     = flag.Bool("list", false, "Print the station list and exit")
	queryFlag    = flag.String("query", "", "Only show stations whose name contains this text")
	stationFlag  = flag.String("station", "", "Start with the named station")
	stationsFlag = flag.String("stations", "", "Read stations from a local JSON file instead of the configured URL")
	replayFlag   = flag.String("replay", "", "Run a replay script and exit")
	mprisFlag    = flag.Bool("mpris", false, "Publish media controls over MPRIS (Linux only)")
	widthFlag    = flag.Int("width", ui.DefaultWidth, "Output width in terminal cells")
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s v%s - %s\n\n", config.AppName, config.AppVersion, config.AppTagline)
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()

		configPath, err := config.GetConfigPath()
		if err == nil {
			if _, statErr := os.Stat(configPath); statErr == nil {
				fmt.Fprintf(os.Stderr, "\nConfig file: %s\n", configPath)
			} else {
				fmt.Fprintf(os.Stderr, "\nConfig file will be created on first use.\n")
			}
		}
	}
}

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Printf("%s v%s\n", config.AppName, config.AppVersion)
		fmt.Println(config.AppTagline)
		os.Exit(0)
	}

	setupLogging(*debugFlag)

	cfg, err := config.Load()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load config, using defaults")
	}
	if *debugFlag {
		if configPath, err := config.GetConfigPath(); err == nil {
			log.Debug().Msgf("Config: %s", configPath)
		}
		log.Debug().Msgf("Cache: %s", cache.GetCacheDir())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *replayFlag != "" {
		os.Exit(runReplay(ctx, *replayFlag))
	}

	var source service.Source = api.NewHTTPSource(cfg.StationsURL)
	if *stationsFlag != "" {
		source = api.FileSource{Path: *stationsFlag}
	}
	stationService := service.NewStationService(source, cache.NewCache(), cfg.ArtworkSize)

	if *listFlag {
		os.Exit(runList(ctx, cfg, stationService))
	}

	initial := *stationFlag
	if initial == "" && cfg.Autoplay {
		initial = cfg.LastStation
	}

	s := newSession(cfg, stationService, os.Stdout, *widthFlag)
	if err := s.run(ctx, initial, *mprisFlag || cfg.MPRIS, os.Stdin); err != nil {
		log.Error().Err(err).Msg("Session failed")
		fmt.Fprintln(os.Stderr, ui.FriendlyErrorMessage(err.Error()))
		os.Exit(1)
	}
	log.Info().Msgf("%s stopped", config.AppName)
}

func setupLogging(debug bool) {
	if !debug {
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
		return
	}

	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	cacheDir := cache.GetCacheDir()
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log dir: %v\n", err)
	}
	logPath := filepath.Join(cacheDir, "debug.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log file: %v\n", err)
		logFile = os.Stderr
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: logFile, TimeFormat: "15:04:05"})
	fmt.Printf("Debug log: %s\n", logPath)
	log.Info().Msgf("Starting %s v%s (debug mode)", config.AppName, config.AppVersion)
}

func runReplay(ctx context.Context, path string) int {
	script, err := replay.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if err := replay.Run(ctx, script, ui.NewText(os.Stdout, *widthFlag)); err != nil {
		fmt.Fprintf(os.Stderr, "Replay failed: %v\n", err)
		return 1
	}

	fmt.Printf("Replay passed: %d steps\n", len(script.Steps))
	return 0
}

func runList(ctx context.Context, cfg *config.Config, stationService *service.StationService) int {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	stations, err := stationService.FetchStations(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch stations")
		fmt.Fprintln(os.Stderr, ui.FriendlyErrorMessage(err.Error()))
		return 1
	}

	before := len(cfg.Favorites)
	cfg.CleanupFavorites(stationService.GetValidStationNames())
	if len(cfg.Favorites) != before {
		if err := cfg.Save(); err != nil {
			log.Warn().Err(err).Msg("Failed to save config")
		}
	}

	filter := stationlist.New()
	filter.SetStations(stations)

	text := ui.NewText(os.Stdout, *widthFlag)
	text.IsFavorite = cfg.IsFavorite
	text.RenderStations(filter.SetQuery(*queryFlag))
	return 0
}

var _ nowplaying.StationSource = (*service.StationService)(nil)
var _ nowplaying.ArtworkLoader = (*service.StationService)(nil)
