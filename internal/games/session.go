// Package games holds the modules the arcade can mount. Each game builds on
// session, which owns everything the game allocates and tears it all down in
// Dispose.
package games

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"github.com/Garsondee/mini-arcade/internal/arcade"
)

// Module names as the shell and config refer to them.
const (
	HarborName    = "harbor"
	SkirmishName  = "skirmish"
	StarfieldName = "starfield"
	ArenaName     = "arena"
)

// session implements the arcade.Handle lifecycle shared by every game.
type session struct {
	name    string
	env     arcade.Env
	log     zerolog.Logger
	res     arcade.Resources
	running bool
	canvas  arcade.Buffer
}

func newSession(name string, env arcade.Env) (*session, error) {
	if env.Surface == nil || env.Frames == nil || env.Input == nil {
		return nil, arcade.ErrNoSurface
	}
	s := &session{name: name, env: env, log: env.Log}
	// Registered first so they run last, after frames and listeners are gone.
	s.res.OnRelease(func() {
		env.Surface.Present(nil)
		if env.Overlay != nil {
			env.Overlay.Clear()
		}
	})
	return s, nil
}

// allocCanvas creates the surface-sized buffer the game draws into and
// presents it.
func (s *session) allocCanvas() error {
	w, h := s.env.Surface.Size()
	buf, err := s.env.Surface.Allocate(w, h)
	if err != nil {
		return fmt.Errorf("%s canvas: %w", s.name, err)
	}
	s.canvas = s.res.Track(buf)
	s.env.Surface.Present(s.canvas)
	return nil
}

func (s *session) onFrame(fn arcade.FrameFunc) {
	s.res.OnRelease(s.env.Frames.Request(fn))
}

func (s *session) listen(l arcade.Listener) {
	s.res.OnRelease(s.env.Input.Subscribe(l))
}

func (s *session) emit(e arcade.Event) { s.env.OnEvent.Emit(e) }

func (s *session) overlay(lines ...string) {
	if s.env.Overlay != nil && !s.res.Released() {
		s.env.Overlay.SetLines(lines...)
	}
}

func (s *session) Start() {
	if s.running || s.res.Released() {
		return
	}
	s.running = true
	s.log.Debug().Msg("started")
	s.emit(arcade.GameStarted{Module: s.name})
}

func (s *session) Pause() {
	if !s.running {
		return
	}
	s.running = false
	s.log.Debug().Msg("paused")
	s.emit(arcade.GamePaused{Module: s.name})
}

func (s *session) IsRunning() bool { return s.running }

func (s *session) Dispose() {
	if s.res.Released() {
		return
	}
	s.running = false
	s.res.Release()
	s.canvas = nil
	s.log.Debug().Msg("resources released")
}

// image returns the ebiten image behind the canvas, or nil when the surface
// is headless.
func (s *session) image() *ebiten.Image {
	if s.canvas == nil {
		return nil
	}
	if c, ok := s.canvas.(interface{ Image() *ebiten.Image }); ok {
		return c.Image()
	}
	return nil
}

// keyState tracks held keys from KeyDown/KeyUp events.
type keyState map[string]bool

func (k keyState) apply(e arcade.InputEvent) {
	switch e.Kind {
	case arcade.KeyDown:
		k[e.Key] = true
	case arcade.KeyUp:
		delete(k, e.Key)
	}
}

// axis returns +1, -1 or 0 from two opposing key sets.
func (k keyState) axis(pos, neg []string) float64 {
	v := 0.0
	for _, n := range pos {
		if k[n] {
			v++
			break
		}
	}
	for _, n := range neg {
		if k[n] {
			v--
			break
		}
	}
	return v
}

func fade(c color.RGBA, a float64) color.RGBA {
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}
