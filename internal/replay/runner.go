package replay

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/glebovdev/nowplaying/internal/nowplaying"
	"github.com/glebovdev/nowplaying/internal/player"
	"github.com/glebovdev/nowplaying/internal/presentation"
	"github.com/glebovdev/nowplaying/internal/stationlist"
)

// ErrExpectation is returned when the presentation differs from a step's
// expectation.
var ErrExpectation = errors.New("expectation failed")

// recorder collects the effects rendered since the last step and forwards
// everything to the caller's renderer.
type recorder struct {
	next nowplaying.Renderer

	mu      sync.Mutex
	effects []presentation.Effect
}

func (r *recorder) Render(m presentation.Model, effects []presentation.Effect) {
	r.mu.Lock()
	r.effects = append(r.effects, effects...)
	r.mu.Unlock()

	if r.next != nil {
		r.next.Render(m, effects)
	}
}

func (r *recorder) RenderStations(rows []stationlist.Row) {
	if r.next != nil {
		r.next.RenderStations(rows)
	}
}

func (r *recorder) take() []presentation.Effect {
	r.mu.Lock()
	defer r.mu.Unlock()
	effects := r.effects
	r.effects = nil
	return effects
}

// Run plays the script against a fresh controller and virtual player. Every
// transition is forwarded to renderer, which may be nil.
func Run(ctx context.Context, s *Script, renderer nowplaying.Renderer) error {
	v := player.NewVirtual(player.VirtualOptions{AutoPlay: s.Autoplay, Manual: true})
	defer v.Close()

	rec := &recorder{next: renderer}
	ctrl := nowplaying.New(v, nil, rec, nowplaying.Options{
		Reducer: presentation.Reducer{OptimisticPause: s.OptimisticPause},
	})

	runCtx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		<-ctrl.Done()
	}()
	go func() {
		_ = ctrl.Run(runCtx)
	}()

	ctrl.SetStations(s.Stations)
	ctrl.Flush()
	rec.take()

	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := perform(ctx, ctrl, v, step); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		ctrl.Flush()

		effects := rec.take()
		if step.Expect == nil {
			continue
		}
		if err := check(step.Expect, ctrl, effects); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}

	log.Debug().Int("steps", len(s.Steps)).Msg("Replay finished")
	return nil
}

func perform(ctx context.Context, ctrl *nowplaying.Controller, v *player.Virtual, step Step) error {
	switch {
	case step.Select != nil:
		ctrl.Select(*step.Select)
	case step.Search != nil:
		ctrl.Search(*step.Search)
	case step.Stations != nil:
		ctrl.SetStations(*step.Stations)
	case step.State != "":
		state, err := player.ParseState(step.State)
		if err != nil {
			return err
		}
		v.SetState(state)
	case step.Playback != "":
		playback, err := player.ParsePlaybackState(step.Playback)
		if err != nil {
			return err
		}
		switch playback {
		case player.PlaybackPlaying:
			v.Play()
		case player.PlaybackPaused:
			v.Pause()
		case player.PlaybackStopped:
			v.Stop()
		}
	case step.Metadata != nil:
		v.Announce(step.Metadata.Artist, step.Metadata.Title)
	case step.Artwork != nil:
		v.SetArtwork(solidImage(step.Artwork.Width, step.Artwork.Height), step.Artwork.Loaded)
	case step.Press != "":
		intent, err := nowplaying.ParseIntent(step.Press)
		if err != nil {
			return err
		}
		ctrl.Press(intent)
	case step.Wait > 0:
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(step.Wait):
		}
	}
	return nil
}

func solidImage(width, height int) image.Image {
	width, height = max(width, 1), max(height, 1)
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Gray{Y: 0x80}), image.Point{}, draw.Src)
	return img
}

func check(e *Expect, ctrl *nowplaying.Controller, effects []presentation.Effect) error {
	m := ctrl.Snapshot()
	var errs []error

	compare := func(field string, got, want any) {
		if got != want {
			errs = append(errs, fmt.Errorf("%w: %s = %v, want %v", ErrExpectation, field, got, want))
		}
	}

	if e.Song != nil {
		compare("song", m.SongLabel, *e.Song)
	}
	if e.Artist != nil {
		compare("artist", m.ArtistLabel, *e.Artist)
	}
	if e.Status != nil {
		compare("status", m.StatusMessage, *e.Status)
	}
	if e.Button != nil {
		compare("button", m.Button.String(), *e.Button)
	}
	if e.NowPlaying != nil {
		compare("now_playing", m.NowPlayingLabel, *e.NowPlaying)
	}
	if e.Share != nil {
		compare("share", m.ShareText(), *e.Share)
	}
	if e.Controls != nil {
		compare("controls", m.ControlsEnabled, *e.Controls)
	}
	if e.Animating != nil {
		compare("animating", m.AnimateNowPlaying, *e.Animating)
	}
	if e.DescriptionHidden != nil {
		compare("description_hidden", m.DescriptionHidden, *e.DescriptionHidden)
	}
	if e.Artwork != nil {
		compare("artwork", m.Artwork() != nil, *e.Artwork)
	}
	if e.Playback != nil {
		if want, err := player.ParsePlaybackState(*e.Playback); err != nil {
			errs = append(errs, err)
		} else {
			compare("playback", ctrl.PlaybackState(), want)
		}
	}
	if e.Rows != nil {
		got := rowNames(ctrl.Rows())
		if !slices.Equal(got, *e.Rows) {
			errs = append(errs, fmt.Errorf("%w: rows = %q, want %q", ErrExpectation, got, *e.Rows))
		}
	}
	if e.Effects != nil {
		got := make([]string, 0, len(effects))
		for _, eff := range effects {
			got = append(got, eff.String())
		}
		if !slices.Equal(got, *e.Effects) {
			errs = append(errs, fmt.Errorf("%w: effects = %q, want %q", ErrExpectation, got, *e.Effects))
		}
	}

	return errors.Join(errs...)
}

func rowNames(rows []stationlist.Row) []string {
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		names = append(names, r.Station.Name)
	}
	return names
}
