// Package replay drives the controller and a virtual player from a YAML
// script, checking the presentation after each step. It is used to debug
// presentation behaviour without a real stream.
package replay

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/glebovdev/nowplaying/internal/nowplaying"
	"github.com/glebovdev/nowplaying/internal/player"
	"github.com/glebovdev/nowplaying/internal/station"
)

// ErrInvalidScript is returned for scripts that cannot be run.
var ErrInvalidScript = errors.New("invalid replay script")

type Script struct {
	Autoplay        bool              `yaml:"autoplay"`
	OptimisticPause bool              `yaml:"optimistic_pause_button"`
	Stations        []station.Station `yaml:"stations"`
	Steps           []Step            `yaml:"steps"`
}

// Step holds exactly one action and an optional expectation checked after
// the action has been processed.
type Step struct {
	Select   *string            `yaml:"select"`
	Search   *string            `yaml:"search"`
	Stations *[]station.Station `yaml:"stations"`
	State    string             `yaml:"state"`
	Playback string             `yaml:"playback"`
	Metadata *Metadata          `yaml:"metadata"`
	Artwork  *Artwork           `yaml:"artwork"`
	Press    string             `yaml:"press"`
	Wait     time.Duration      `yaml:"wait"`
	Expect   *Expect            `yaml:"expect"`
}

type Metadata struct {
	Artist string `yaml:"artist"`
	Title  string `yaml:"title"`
}

// Artwork describes a solid image of the given size.
type Artwork struct {
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	Loaded bool `yaml:"loaded"`
}

// Expect lists presentation fields to compare. Unset fields are not checked.
type Expect struct {
	Song              *string   `yaml:"song"`
	Artist            *string   `yaml:"artist"`
	Status            *string   `yaml:"status"`
	Button            *string   `yaml:"button"`
	NowPlaying        *string   `yaml:"now_playing"`
	Share             *string   `yaml:"share"`
	Controls          *bool     `yaml:"controls"`
	Animating         *bool     `yaml:"animating"`
	DescriptionHidden *bool     `yaml:"description_hidden"`
	Artwork           *bool     `yaml:"artwork"`
	Playback          *string   `yaml:"playback"`
	Rows              *[]string `yaml:"rows"`
	// Effects are the effects rendered since the previous step.
	Effects *[]string `yaml:"effects"`
}

func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read replay script: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse replay script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that every step has exactly one action with a known value.
func (s *Script) Validate() error {
	for i, step := range s.Steps {
		if n := step.actions(); n != 1 && !(n == 0 && step.Expect != nil) {
			return fmt.Errorf("%w: step %d has %d actions", ErrInvalidScript, i+1, n)
		}
		if step.State != "" {
			if _, err := player.ParseState(step.State); err != nil {
				return fmt.Errorf("%w: step %d: %v", ErrInvalidScript, i+1, err)
			}
		}
		if step.Playback != "" {
			if _, err := player.ParsePlaybackState(step.Playback); err != nil {
				return fmt.Errorf("%w: step %d: %v", ErrInvalidScript, i+1, err)
			}
		}
		if step.Press != "" {
			if _, err := nowplaying.ParseIntent(step.Press); err != nil {
				return fmt.Errorf("%w: step %d: %v", ErrInvalidScript, i+1, err)
			}
		}
		if step.Expect != nil && step.Expect.Playback != nil {
			if _, err := player.ParsePlaybackState(*step.Expect.Playback); err != nil {
				return fmt.Errorf("%w: step %d: %v", ErrInvalidScript, i+1, err)
			}
		}
		if step.Wait < 0 {
			return fmt.Errorf("%w: step %d: negative wait", ErrInvalidScript, i+1)
		}
	}
	return nil
}

func (s Step) actions() int {
	n := 0
	for _, set := range []bool{
		s.Select != nil,
		s.Search != nil,
		s.Stations != nil,
		s.State != "",
		s.Playback != "",
		s.Metadata != nil,
		s.Artwork != nil,
		s.Press != "",
		s.Wait > 0,
	} {
		if set {
			n++
		}
	}
	return n
}
