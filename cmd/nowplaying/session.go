package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/glebovdev/nowplaying/internal/config"
	"github.com/glebovdev/nowplaying/internal/nowplaying"
	"github.com/glebovdev/nowplaying/internal/player"
	"github.com/glebovdev/nowplaying/internal/presentation"
	"github.com/glebovdev/nowplaying/internal/remote"
	"github.com/glebovdev/nowplaying/internal/service"
	"github.com/glebovdev/nowplaying/internal/station"
	"github.com/glebovdev/nowplaying/internal/ui"
)

// session is an interactive run: the controller renders to stdout while
// commands are read line by line.
type session struct {
	cfgMu sync.Mutex
	cfg   *config.Config

	out     io.Writer
	text    *ui.Text
	service *service.StationService
}

func newSession(cfg *config.Config, stationService *service.StationService, out io.Writer, width int) *session {
	s := &session{
		cfg:     cfg,
		out:     out,
		service: stationService,
	}
	s.text = ui.NewText(s.out, width)
	s.text.IsFavorite = s.isFavorite
	return s
}

func (s *session) isFavorite(name string) bool {
	s.cfgMu.Lock()
	defer s.cfgMu.Unlock()
	return s.cfg.IsFavorite(name)
}

func (s *session) stationChanged(st station.Station) {
	s.cfgMu.Lock()
	defer s.cfgMu.Unlock()

	s.cfg.LastStation = st.Name
	if err := s.cfg.Save(); err != nil {
		log.Warn().Err(err).Msg("Failed to save last station")
	}
}

func (s *session) toggleFavorite(name string) bool {
	s.cfgMu.Lock()
	defer s.cfgMu.Unlock()

	s.cfg.ToggleFavorite(name)
	if err := s.cfg.Save(); err != nil {
		log.Warn().Err(err).Msg("Failed to save favorites")
	}
	return s.cfg.IsFavorite(name)
}

func (s *session) run(ctx context.Context, initial string, withMPRIS bool, in io.Reader) error {
	s.cfgMu.Lock()
	cfg := *s.cfg
	s.cfgMu.Unlock()

	// Audio output is not part of this program; the virtual engine stands in
	// for it and follows the same lifecycle.
	streamPlayer := player.NewVirtual(player.VirtualOptions{AutoPlay: true})
	defer streamPlayer.Close()

	ctrl := nowplaying.New(streamPlayer, s.service, s.text, nowplaying.Options{
		Reducer:         presentation.Reducer{OptimisticPause: cfg.OptimisticPauseButton},
		Artwork:         s.service,
		RefreshInterval: cfg.RefreshInterval,
		OnStationChange: s.stationChanged,
		InitialStation:  initial,
	})

	center := remote.NewCenter()
	center.Bind(ctrl)
	if withMPRIS {
		server, err := remote.NewMPRIS(center, ctrl)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to start MPRIS server")
		} else {
			defer server.Close()
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	runErr := make(chan error, 1)
	go func() {
		runErr <- ctrl.Run(ctx)
	}()

	lines := make(chan string)
	go readLines(ctx, in, lines)

	fmt.Fprintln(s.out, "Type h for help.")
	for {
		select {
		case <-ctx.Done():
			<-runErr
			return nil
		case line, ok := <-lines:
			if !ok || !s.handle(ctx, ctrl, parseCommand(line)) {
				cancel()
				<-runErr
				return nil
			}
		}
	}
}

// handle executes one command and reports whether the session continues.
func (s *session) handle(ctx context.Context, ctrl *nowplaying.Controller, cmd command) bool {
	switch cmd.kind {
	case cmdIntent:
		ctrl.Press(cmd.intent)
	case cmdSearch:
		ctrl.Search(cmd.arg)
	case cmdSelect:
		ctrl.Select(cmd.arg)
	case cmdRefresh:
		ctrl.Refresh(ctx)
	case cmdList:
		s.text.RenderStations(ctrl.Rows())
	case cmdFavorite:
		m := ctrl.Snapshot()
		if !m.HasStation() {
			fmt.Fprintln(s.out, "No station selected.")
			break
		}
		if s.toggleFavorite(m.Station.Name) {
			fmt.Fprintf(s.out, "%s %s added to favorites\n", ui.FavoriteIcon, m.Station.Name)
		} else {
			fmt.Fprintf(s.out, "%s removed from favorites\n", m.Station.Name)
		}
	case cmdShare:
		m := ctrl.Snapshot()
		if !m.HasStation() {
			fmt.Fprintln(s.out, m.NowPlayingLabel)
			break
		}
		fmt.Fprintln(s.out, m.ShareText())
		fmt.Fprintln(s.out, m.NowPlayingLabel)
	case cmdHelp:
		fmt.Fprintln(s.out, helpText)
	case cmdQuit:
		return false
	case cmdNone:
	}
	return true
}

func readLines(ctx context.Context, in io.Reader, lines chan<- string) {
	defer close(lines)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-ctx.Done():
			return
		}
	}
	if err := scanner.Err(); err != nil {
		log.Debug().Err(err).Msg("Stopped reading commands")
	}
}
