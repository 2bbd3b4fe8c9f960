package games

import (
	"github.com/rs/zerolog"

	"github.com/Garsondee/mini-arcade/internal/arcade"
)

// Harness drives a Host headlessly. Tests and the headless runner use it to
// mount games, feed scripted input and count leaked buffers.
type Harness struct {
	Host    *arcade.Host
	Surface *arcade.HeadlessSurface
	Overlay *arcade.HeadlessOverlay
	Events  *arcade.Recorder
	Tick    int
	DT      float64

	options Options
	modules []arcade.Module
	log     zerolog.Logger
	store   arcade.StateStore
}

// harnessOptionKind controls the pass in which an option is applied.
type harnessOptionKind int

const (
	harnessOptInfra  harnessOptionKind = iota // surface, clock, logger, game settings
	harnessOptModule                          // extra modules, after the stock ones exist
)

// HarnessOption is a builder function applied during NewHarness.
type HarnessOption struct {
	kind harnessOptionKind
	fn   func(*Harness)
}

// WithSurfaceSize sets the headless surface dimensions.
func WithSurfaceSize(w, h int) HarnessOption {
	return HarnessOption{harnessOptInfra, func(hs *Harness) {
		hs.Surface.W, hs.Surface.H = w, h
	}}
}

// WithTickRate sets frames per simulated second.
func WithTickRate(hz float64) HarnessOption {
	return HarnessOption{harnessOptInfra, func(hs *Harness) {
		if hz > 0 {
			hs.DT = 1 / hz
		}
	}}
}

// WithFailAt makes the n-th buffer allocation fail.
func WithFailAt(n int) HarnessOption {
	return HarnessOption{harnessOptInfra, func(hs *Harness) { hs.Surface.FailAt = n }}
}

// WithLogger routes host and game logs to l.
func WithLogger(l zerolog.Logger) HarnessOption {
	return HarnessOption{harnessOptInfra, func(hs *Harness) { hs.log = l }}
}

// WithStore remembers the mounted module in s.
func WithStore(s arcade.StateStore) HarnessOption {
	return HarnessOption{harnessOptInfra, func(hs *Harness) { hs.store = s }}
}

// WithOptions replaces the game settings.
func WithOptions(o Options) HarnessOption {
	return HarnessOption{harnessOptInfra, func(hs *Harness) { hs.options = o }}
}

// WithUnits sets the skirmish roster size.
func WithUnits(n int) HarnessOption {
	return HarnessOption{harnessOptInfra, func(hs *Harness) { hs.options.Skirmish.Units = n }}
}

// WithSeed seeds the starfield and arena.
func WithSeed(seed int64) HarnessOption {
	return HarnessOption{harnessOptInfra, func(hs *Harness) {
		hs.options.Starfield.Seed = seed
		hs.options.Arena.Seed = seed
	}}
}

// WithModule registers an extra module.
func WithModule(m arcade.Module) HarnessOption {
	return HarnessOption{harnessOptModule, func(hs *Harness) { hs.modules = append(hs.modules, m) }}
}

// NewHarness builds a harness in two ordered passes: infrastructure and game
// settings first, then the stock games plus any extra modules are
// registered on a fresh host.
func NewHarness(opts ...HarnessOption) *Harness {
	hs := &Harness{
		Surface: arcade.NewHeadlessSurface(800, 600),
		Overlay: &arcade.HeadlessOverlay{},
		Events:  arcade.NewRecorder(),
		DT:      1.0 / 60,
		options: DefaultOptions(),
		log:     zerolog.Nop(),
	}
	for _, o := range opts {
		if o.kind == harnessOptInfra {
			o.fn(hs)
		}
	}
	hs.modules = Modules(hs.options)
	for _, o := range opts {
		if o.kind == harnessOptModule {
			o.fn(hs)
		}
	}

	hostOpts := []arcade.HostOption{
		arcade.WithLogger(hs.log),
		arcade.WithEventFunc(hs.Events.Record),
	}
	if hs.store != nil {
		hostOpts = append(hostOpts, arcade.WithStateStore(hs.store))
	}
	hs.Host = arcade.NewHost(hs.Surface, hs.Overlay, hostOpts...)
	for _, m := range hs.modules {
		hs.Host.Register(m)
	}
	return hs
}

// Mount mounts name and starts it.
func (hs *Harness) Mount(name string) error {
	if err := hs.Host.Mount(name); err != nil {
		return err
	}
	_, h := hs.Host.Active()
	h.Start()
	return nil
}

// Active returns the mounted handle, or nil.
func (hs *Harness) Active() arcade.Handle {
	_, h := hs.Host.Active()
	return h
}

// Step advances n frames.
func (hs *Harness) Step(n int) {
	for i := 0; i < n; i++ {
		hs.Host.Frame(hs.DT)
		hs.Tick++
	}
}

// RunUntil steps until cond holds or limit frames pass. It reports whether
// cond was met.
func (hs *Harness) RunUntil(limit int, cond func() bool) bool {
	for i := 0; i < limit; i++ {
		if cond() {
			return true
		}
		hs.Step(1)
	}
	return cond()
}

func (hs *Harness) publish(e arcade.InputEvent) { hs.Host.Input().Publish(e) }

// KeyDown holds a key.
func (hs *Harness) KeyDown(key string) {
	hs.publish(arcade.InputEvent{Kind: arcade.KeyDown, Key: key})
}

// KeyUp releases a key.
func (hs *Harness) KeyUp(key string) {
	hs.publish(arcade.InputEvent{Kind: arcade.KeyUp, Key: key})
}

// Press is a pointer press at (x, y).
func (hs *Harness) Press(b arcade.Button, x, y float64, shift bool) {
	hs.publish(arcade.InputEvent{Kind: arcade.PointerDown, Button: b, X: x, Y: y, Shift: shift})
}

// Move moves the pointer to (x, y).
func (hs *Harness) Move(x, y float64) {
	hs.publish(arcade.InputEvent{Kind: arcade.PointerMove, X: x, Y: y})
}

// Release is a pointer release at (x, y).
func (hs *Harness) Release(b arcade.Button, x, y float64, shift bool) {
	hs.publish(arcade.InputEvent{Kind: arcade.PointerUp, Button: b, X: x, Y: y, Shift: shift})
}

// Drag presses at a, moves to b and releases there.
func (hs *Harness) Drag(ax, ay, bx, by float64, shift bool) {
	hs.Press(arcade.ButtonPrimary, ax, ay, shift)
	hs.Move(bx, by)
	hs.Release(arcade.ButtonPrimary, bx, by, shift)
}

// Leaks is the number of live buffers plus frame callbacks and listeners
// still attached. It is zero whenever nothing is mounted.
func (hs *Harness) Leaks() int {
	return hs.Surface.Live() + hs.Host.Frames().Len() + hs.Host.Input().Len()
}
