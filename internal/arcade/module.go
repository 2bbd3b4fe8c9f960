// Package arcade defines the contract between the host shell and the games it
// mounts: lifecycle, owned resources, per-frame scheduling, input fan-out and
// the closed set of events a game may raise.
package arcade

import (
	"errors"

	"github.com/rs/zerolog"
)

var (
	// ErrUnknownModule is returned when mounting a name nobody registered.
	ErrUnknownModule = errors.New("arcade: unknown module")
	// ErrNoSurface is returned by Init when the render surface is missing.
	ErrNoSurface = errors.New("arcade: no render surface")
)

// Surface is the shared render target. Whichever module is mounted owns it.
type Surface interface {
	Size() (w, h int)
	// Allocate creates an offscreen buffer. The caller owns it.
	Allocate(w, h int) (Buffer, error)
	// Present chooses the buffer the shell shows; nil shows nothing.
	Present(b Buffer)
}

// Overlay is the text layer drawn above the surface.
type Overlay interface {
	SetLines(lines ...string)
	Clear()
}

// Env is what the host hands a module at Init.
type Env struct {
	Surface Surface
	Overlay Overlay
	Frames  *Scheduler
	Input   *InputBus
	OnEvent EventFunc
	Log     zerolog.Logger
}

// Module creates game instances.
type Module interface {
	Name() string
	// Init allocates every resource, attaches listeners and requests the
	// frame callback. On error nothing the call allocated is left behind.
	Init(env Env) (Handle, error)
}

// Handle controls one mounted game.
type Handle interface {
	// Start begins or resumes simulation.
	Start()
	// Pause halts simulation; resources stay allocated and cosmetic
	// animation may continue.
	Pause()
	IsRunning() bool
	// Dispose cancels the frame callback, detaches listeners, frees graphics
	// resources and clears the overlay. Safe to call repeatedly and before
	// Start.
	Dispose()
}

// Reporter is implemented by handles that can describe their state.
type Reporter interface {
	Status() string
}
