// Package nowplaying connects the station list, the presentation reducer and
// the streaming player. A Controller processes every event on a single
// goroutine; its exported methods may be called from anywhere.
package nowplaying

import (
	"context"
	"image"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/glebovdev/nowplaying/internal/player"
	"github.com/glebovdev/nowplaying/internal/presentation"
	"github.com/glebovdev/nowplaying/internal/station"
	"github.com/glebovdev/nowplaying/internal/stationlist"
)

const inboxSize = 64

// StationSource fetches the station list.
type StationSource interface {
	FetchStations(ctx context.Context) ([]station.Station, error)
}

// ArtworkLoader resolves a station's image.
type ArtworkLoader interface {
	LoadArtwork(url string) (image.Image, error)
}

// Renderer receives the presentation after every transition and the station
// rows after every query or list change. Both are called from the
// controller's goroutine.
type Renderer interface {
	Render(m presentation.Model, effects []presentation.Effect)
	RenderStations(rows []stationlist.Row)
}

// Options configures a Controller.
type Options struct {
	Reducer presentation.Reducer
	// Artwork loads station images; nil disables artwork.
	Artwork ArtworkLoader
	// RefreshInterval re-fetches the station list periodically; zero disables it.
	RefreshInterval time.Duration
	// OnStationChange is called on the controller goroutine when a new
	// station starts.
	OnStationChange func(station.Station)
	// InitialStation is selected as soon as a station list containing it
	// arrives, unless the user has already picked a station.
	InitialStation string
}

// Controller owns the presentation model and the station filter.
type Controller struct {
	player   player.StreamPlayer
	source   StationSource
	renderer Renderer
	opts     Options

	// Owned by the run loop.
	model      presentation.Model
	filter     *stationlist.Filter
	fetchSeq   uint64
	appliedSeq uint64
	pending    string
	// stream is the player's token for the active station's stream and
	// streamGen the model generation it was assigned under.
	stream    uint64
	streamGen uint64

	sub   *player.Subscription
	inbox chan func()
	done  chan struct{}

	snapMu   sync.RWMutex
	snapshot presentation.Model
	rows     []stationlist.Row
}

func New(p player.StreamPlayer, source StationSource, renderer Renderer, opts Options) *Controller {
	c := &Controller{
		player:   p,
		source:   source,
		renderer: renderer,
		opts:     opts,
		model:    presentation.Initial(),
		filter:   stationlist.New(),
		sub:      p.Subscribe(),
		inbox:    make(chan func(), inboxSize),
		done:     make(chan struct{}),
		pending:  opts.InitialStation,
	}
	c.snapshot = c.model
	c.rows = c.filter.Rows()
	return c
}

// Run fetches the station list and processes events until ctx is cancelled.
func (c *Controller) Run(ctx context.Context) error {
	defer close(c.done)
	defer c.sub.Close()

	var tick <-chan time.Time
	if c.opts.RefreshInterval > 0 {
		ticker := time.NewTicker(c.opts.RefreshInterval)
		defer ticker.Stop()
		tick = ticker.C
		log.Debug().Dur("interval", c.opts.RefreshInterval).Msg("Started periodic station refresh")
	}

	c.publish(nil)
	c.publishRows(c.filter.Rows())
	c.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-c.inbox:
			fn()
		case ev := <-c.sub.Events:
			c.handlePlayerEvent(ev)
		case <-tick:
			c.refresh(ctx)
		}
	}
}

// Done is closed once Run has returned.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// post schedules fn on the run loop. It gives up once the loop has stopped.
func (c *Controller) post(fn func()) {
	select {
	case c.inbox <- fn:
	case <-c.done:
	}
}

// Flush blocks until every intent posted so far and every player event it
// caused has been processed. It returns early once Run has stopped.
func (c *Controller) Flush() {
	c.barrier()
	for c.sub.Pending() > 0 {
		select {
		case <-c.done:
			return
		case <-time.After(time.Millisecond):
		}
	}
	c.barrier()
}

func (c *Controller) barrier() {
	reached := make(chan struct{})
	c.post(func() { close(reached) })
	select {
	case <-reached:
	case <-c.done:
	}
}

// Search filters the station list by name.
func (c *Controller) Search(query string) {
	c.post(func() {
		c.publishRows(c.filter.SetQuery(query))
	})
}

// Select starts the named station, or re-derives the presentation if it is
// already the active one.
func (c *Controller) Select(name string) {
	c.post(func() {
		s, ok := c.lookup(name)
		if !ok {
			log.Warn().Str("station", name).Msg("Cannot select unknown station")
			return
		}
		c.selectStation(s)
	})
}

// Press forwards a user intent.
func (c *Controller) Press(intent Intent) {
	c.post(func() {
		c.handleIntent(intent)
	})
}

// Refresh re-fetches the station list.
func (c *Controller) Refresh(ctx context.Context) {
	c.post(func() {
		c.refresh(ctx)
	})
}

// SetStations replaces the station list with one obtained elsewhere.
func (c *Controller) SetStations(stations []station.Station) {
	c.post(func() {
		c.applyStations(stations)
	})
}

// Snapshot returns the most recently published presentation.
func (c *Controller) Snapshot() presentation.Model {
	c.snapMu.RLock()
	defer c.snapMu.RUnlock()
	return c.snapshot
}

// Rows returns the most recently published station rows.
func (c *Controller) Rows() []stationlist.Row {
	c.snapMu.RLock()
	defer c.snapMu.RUnlock()
	return append([]stationlist.Row(nil), c.rows...)
}

// PlaybackState reports the player's transport state.
func (c *Controller) PlaybackState() player.PlaybackState {
	return c.player.PlaybackState()
}

func (c *Controller) apply(ev presentation.Event) {
	next, effects := c.opts.Reducer.Reduce(c.model, ev)
	c.model = next
	c.publish(effects)
}

func (c *Controller) publish(effects []presentation.Effect) {
	c.snapMu.Lock()
	c.snapshot = c.model
	c.snapMu.Unlock()

	if c.renderer != nil {
		c.renderer.Render(c.model, effects)
	}
}

func (c *Controller) publishRows(rows []stationlist.Row) {
	c.snapMu.Lock()
	c.rows = rows
	c.snapMu.Unlock()

	if c.renderer != nil {
		c.renderer.RenderStations(rows)
	}
}

func (c *Controller) handlePlayerEvent(ev player.Event) {
	switch e := ev.(type) {
	case player.StateChanged:
		c.apply(presentation.PlayerStateChanged{
			State:     e.State,
			Playback:  e.Playback,
			IsPlaying: e.IsPlaying,
			Animate:   true,
		})
	case player.PlaybackChanged:
		c.apply(presentation.PlaybackStateChanged{
			State:     e.State,
			IsPlaying: e.IsPlaying,
			Animate:   true,
		})
	case player.MetadataChanged:
		generation, ok := c.streamGeneration(e.Session)
		if !ok {
			log.Debug().Str("url", e.StreamURL).Uint64("session", e.Session).Msg("Dropping metadata for previous stream")
			return
		}
		c.apply(presentation.TrackMetadataUpdated{
			Artist:     e.Artist,
			Title:      e.Title,
			Generation: generation,
		})
	case player.ArtworkChanged:
		generation, ok := c.streamGeneration(e.Session)
		if !ok {
			log.Debug().Str("url", e.StreamURL).Uint64("session", e.Session).Msg("Dropping artwork for previous stream")
			return
		}
		c.apply(presentation.TrackArtworkUpdated{
			Artwork:    e.Artwork,
			Loaded:     e.Loaded,
			Generation: generation,
		})
	}
}

// streamGeneration maps a player session to the generation of the selection
// that assigned it. Only the latest assignment resolves.
func (c *Controller) streamGeneration(session uint64) (uint64, bool) {
	if c.stream == 0 || session != c.stream {
		return 0, false
	}
	return c.streamGen, true
}

func (c *Controller) handleIntent(intent Intent) {
	log.Debug().Stringer("intent", intent).Msg("Intent received")

	switch intent {
	case IntentTogglePlay:
		if c.player.IsPlaying() {
			c.player.Pause()
		} else {
			c.player.Play()
		}
	case IntentPlay:
		c.player.Play()
	case IntentPause:
		c.player.Pause()
	case IntentStop:
		c.player.Stop()
	case IntentNext:
		c.step(1)
	case IntentPrevious:
		c.step(-1)
	}
}

func (c *Controller) step(offset int) {
	if !c.model.HasStation() {
		log.Debug().Msg("No active station to step from")
		return
	}
	s, ok := c.filter.Neighbor(c.model.Station.Name, offset)
	if !ok {
		return
	}
	c.selectStation(s)
}

func (c *Controller) lookup(name string) (station.Station, bool) {
	stations := c.filter.Stations()
	i := station.IndexByName(stations, name)
	if i < 0 {
		return station.Station{}, false
	}
	return stations[i], true
}

func (c *Controller) selectStation(s station.Station) {
	c.pending = ""
	if c.model.HasStation() && s.Name == c.model.Station.Name {
		c.apply(presentation.StationSelected{
			Station:   s,
			Track:     c.model.Track,
			Player:    c.player.State(),
			Playback:  c.player.PlaybackState(),
			IsPlaying: c.player.IsPlaying(),
		})
		return
	}

	log.Debug().Str("station", s.Name).Msg("Station changed")
	c.apply(presentation.StationSelected{
		Station:      s,
		Track:        station.PlaceholderTrack(s),
		IsNewStation: true,
	})
	c.filter.SetActive(s.Name)
	c.stream = c.player.AssignStream(s.StreamURL)
	c.streamGen = c.model.Generation
	c.loadArtwork(s, c.model.Generation)

	if c.opts.OnStationChange != nil {
		c.opts.OnStationChange(s)
	}
}

func (c *Controller) loadArtwork(s station.Station, generation uint64) {
	if c.opts.Artwork == nil || s.ImageURL == "" {
		return
	}

	go func() {
		img, err := c.opts.Artwork.LoadArtwork(s.ImageURL)
		if err != nil {
			log.Debug().Err(err).Str("url", s.ImageURL).Msg("Failed to load station artwork")
			return
		}
		c.post(func() {
			c.apply(presentation.TrackArtworkUpdated{
				Artwork:    img,
				Loaded:     false,
				Generation: generation,
			})
		})
	}()
}

func (c *Controller) refresh(ctx context.Context) {
	if c.source == nil {
		return
	}

	c.fetchSeq++
	seq := c.fetchSeq

	go func() {
		stations, err := c.source.FetchStations(ctx)
		c.post(func() {
			c.stationsFetched(seq, stations, err)
		})
	}()
}

func (c *Controller) stationsFetched(seq uint64, stations []station.Station, err error) {
	if err != nil {
		log.Warn().Err(err).Msg("Station fetch failed, keeping current list")
		return
	}
	if seq < c.appliedSeq {
		log.Debug().Uint64("seq", seq).Uint64("applied", c.appliedSeq).Msg("Discarding superseded station fetch")
		return
	}
	c.appliedSeq = seq
	c.applyStations(stations)
}

func (c *Controller) applyStations(stations []station.Station) {
	if station.Equal(c.filter.Stations(), stations) {
		return
	}

	rows, reset := c.filter.SetStations(stations)
	c.publishRows(rows)

	if reset {
		log.Info().Str("station", c.model.Station.Name).Msg("Active station removed from list, resetting")
		c.player.Stop()
		c.stream = 0
		c.apply(presentation.StationsReset{})
	}

	if c.pending != "" {
		if s, ok := c.lookup(c.pending); ok {
			c.selectStation(s)
		}
	}
}
