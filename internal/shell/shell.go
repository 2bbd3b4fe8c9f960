// Package shell is the desktop host: it runs the ebiten loop, turns ebiten
// input into arcade input events, and draws the mounted game's canvas with
// the overlay and event feed on top.
package shell

import (
	"fmt"
	"image/color"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	"github.com/Garsondee/mini-arcade/internal/arcade"
)

const messageFrames = 180

// presenter is the part of a surface the shell reads back.
type presenter interface {
	Presented() arcade.Buffer
}

// Shell implements ebiten.Game around an arcade.Host.
type Shell struct {
	host    *arcade.Host
	surface presenter
	overlay *Overlay
	feed    *Feed
	order   []string // module names bound to the digit keys
	log     zerolog.Logger

	width, height int // window
	gameWidth     int // canvas, left of the feed panel
	tickRate      int
	frame         int
	cursorX       int
	cursorY       int

	showHelp   bool
	message    string
	messageTTL int

	// Swappable for tests.
	copyText         func(string) error
	toggleFullscreen func()
}

// Option configures a Shell.
type Option func(*Shell)

// WithLogger sets the shell logger.
func WithLogger(l zerolog.Logger) Option { return func(s *Shell) { s.log = l } }

// WithTickRate sets the simulated frames per second.
func WithTickRate(hz int) Option {
	return func(s *Shell) {
		if hz > 0 {
			s.tickRate = hz
		}
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(fn func(string) error) Option { return func(s *Shell) { s.copyText = fn } }

// WithFullscreenToggle replaces the window fullscreen toggle.
func WithFullscreenToggle(fn func()) Option { return func(s *Shell) { s.toggleFullscreen = fn } }

// GameSize is the canvas size games get for a window of w x h.
func GameSize(w, h int) (int, int) {
	return w - FeedPanelWidth, h
}

// New creates a shell for a window of width x height. order binds modules to
// the keys 1..9.
func New(host *arcade.Host, surface presenter, overlay *Overlay, feed *Feed, width, height int, order []string, opts ...Option) *Shell {
	gw, _ := GameSize(width, height)
	s := &Shell{
		host:      host,
		surface:   surface,
		overlay:   overlay,
		feed:      feed,
		order:     order,
		log:       zerolog.Nop(),
		width:     width,
		height:    height,
		gameWidth: gw,
		tickRate:  60,
		showHelp:  true,
		copyText:  clipboard.WriteAll,
	}
	s.toggleFullscreen = toggleWindowFullscreen
	for _, o := range opts {
		o(s)
	}
	return s
}

func toggleWindowFullscreen() {
	ebiten.SetFullscreen(!ebiten.IsFullscreen())
}

// Mount switches to the named module, reporting failure on screen.
func (s *Shell) Mount(name string) {
	if err := s.host.Mount(name); err != nil {
		s.log.Error().Err(err).Str("module", name).Msg("mount failed")
		s.flash(fmt.Sprintf("could not start %s: %v", name, err))
		return
	}
	_, h := s.host.Active()
	h.Start()
	s.flash("mounted " + name)
}

// Restore mounts the module remembered from the last run, or fallback, and
// starts it.
func (s *Shell) Restore(fallback string) error {
	if err := s.host.Restore(fallback); err != nil {
		return err
	}
	name, h := s.host.Active()
	h.Start()
	s.flash("mounted " + name)
	return nil
}

func (s *Shell) flash(msg string) {
	s.message = msg
	s.messageTTL = messageFrames
}

// Message is the current on-screen notice, if any.
func (s *Shell) Message() string {
	if s.messageTTL <= 0 {
		return ""
	}
	return s.message
}

// HandleKey runs a shell binding for a just-pressed key. It reports whether
// the key was consumed; unconsumed keys go to the game.
func (s *Shell) HandleKey(name string) bool {
	for i, m := range s.order {
		if i < 9 && name == fmt.Sprintf("Digit%d", i+1) {
			s.Mount(m)
			return true
		}
	}
	switch name {
	case "Space":
		s.host.TogglePause()
		return true
	case "F":
		s.toggleFullscreen()
		return true
	case "C":
		if err := s.copyText(s.host.Status()); err != nil {
			s.log.Warn().Err(err).Msg("clipboard write failed")
			s.flash("clipboard unavailable")
		} else {
			s.flash("status copied to clipboard")
		}
		return true
	case "H":
		s.showHelp = !s.showHelp
		return true
	}
	return false
}

// inCanvas reports whether a pointer position lies on the game canvas.
func (s *Shell) inCanvas(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.gameWidth && y < s.height
}

// Update polls ebiten input, forwards it, and advances the mounted game.
func (s *Shell) Update() error {
	s.frame++
	s.feed.SetFrame(s.frame)
	if s.messageTTL > 0 {
		s.messageTTL--
	}
	s.pollInput()
	s.host.Frame(1 / float64(s.tickRate))
	return nil
}

var mouseButtons = []struct {
	eb ebiten.MouseButton
	ab arcade.Button
}{
	{ebiten.MouseButtonLeft, arcade.ButtonPrimary},
	{ebiten.MouseButtonRight, arcade.ButtonSecondary},
}

func (s *Shell) pollInput() {
	bus := s.host.Input()
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)

	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		if s.HandleKey(k.String()) {
			continue
		}
		bus.Publish(arcade.InputEvent{Kind: arcade.KeyDown, Key: k.String(), Shift: shift})
	}
	for _, k := range inpututil.AppendJustReleasedKeys(nil) {
		bus.Publish(arcade.InputEvent{Kind: arcade.KeyUp, Key: k.String(), Shift: shift})
	}

	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	if mx != s.cursorX || my != s.cursorY {
		s.cursorX, s.cursorY = mx, my
		bus.Publish(arcade.InputEvent{Kind: arcade.PointerMove, X: x, Y: y, Shift: shift})
	}
	for _, b := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(b.eb) && s.inCanvas(mx, my) {
			bus.Publish(arcade.InputEvent{Kind: arcade.PointerDown, Button: b.ab, X: x, Y: y, Shift: shift})
		}
		// Releases are always delivered so a drag can end off the canvas.
		if inpututil.IsMouseButtonJustReleased(b.eb) {
			bus.Publish(arcade.InputEvent{Kind: arcade.PointerUp, Button: b.ab, X: x, Y: y, Shift: shift})
		}
	}
}

// Draw blits the presented canvas, then overlay text, feed and help.
func (s *Shell) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 14, B: 12, A: 255})
	if b := s.surface.Presented(); b != nil {
		if c, ok := b.(interface{ Image() *ebiten.Image }); ok && c.Image() != nil {
			screen.DrawImage(c.Image(), nil)
		}
	}
	s.overlay.draw(screen, 10, 8)
	s.feed.Draw(screen, s.gameWidth, s.height)

	y := float64(s.height - 20)
	if msg := s.Message(); msg != "" {
		drawText(screen, msg, 10, y, color.RGBA{R: 255, G: 220, B: 90, A: 255})
		y -= 16
	}
	if s.showHelp {
		help := ""
		for i, m := range s.order {
			if i < 9 {
				help += fmt.Sprintf("%d %s  ", i+1, m)
			}
		}
		help += "SPACE pause  F fullscreen  C copy status  H help"
		drawText(screen, help, 10, y, color.RGBA{R: 150, G: 170, B: 150, A: 255})
	}
}

func (s *Shell) Layout(_, _ int) (int, int) {
	return s.width, s.height
}
