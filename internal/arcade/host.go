package arcade

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// StateStore persists the last mounted module name between runs.
type StateStore interface {
	LastModule() string
	SaveLastModule(name string) error
}

// Host mounts exactly one module at a time onto its surface.
type Host struct {
	modules map[string]Module
	surface Surface
	overlay Overlay
	frames  Scheduler
	input   InputBus
	onEvent EventFunc
	store   StateStore
	log     zerolog.Logger

	active     Handle
	activeName string
	session    string
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithLogger sets the host logger.
func WithLogger(l zerolog.Logger) HostOption {
	return func(h *Host) { h.log = l }
}

// WithEventFunc routes module events to fn.
func WithEventFunc(fn EventFunc) HostOption {
	return func(h *Host) { h.onEvent = fn }
}

// WithStateStore remembers the mounted module across runs.
func WithStateStore(s StateStore) HostOption {
	return func(h *Host) { h.store = s }
}

// NewHost creates a host drawing to surface and overlay.
func NewHost(surface Surface, overlay Overlay, opts ...HostOption) *Host {
	h := &Host{
		modules: make(map[string]Module),
		surface: surface,
		overlay: overlay,
		log:     zerolog.Nop(),
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// Register makes m mountable under m.Name().
func (h *Host) Register(m Module) {
	h.modules[m.Name()] = m
}

// Modules lists registered names in sorted order.
func (h *Host) Modules() []string {
	names := make([]string, 0, len(h.modules))
	for n := range h.modules {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Active returns the mounted module, if any.
func (h *Host) Active() (string, Handle) {
	return h.activeName, h.active
}

// Frames exposes the scheduler so tests and the shell can inspect it.
func (h *Host) Frames() *Scheduler { return &h.frames }

// Input exposes the input bus the shell publishes into.
func (h *Host) Input() *InputBus { return &h.input }

// Mount disposes the current module completely, then initialises name. On
// failure no module is mounted.
func (h *Host) Mount(name string) error {
	m, ok := h.modules[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownModule, name)
	}
	h.Unmount()

	session := uuid.NewString()
	log := h.log.With().Str("module", name).Str("session", session).Logger()
	handle, err := m.Init(Env{
		Surface: h.surface,
		Overlay: h.overlay,
		Frames:  &h.frames,
		Input:   &h.input,
		OnEvent: h.onEvent,
		Log:     log,
	})
	if err != nil {
		log.Error().Err(err).Msg("module init failed")
		return fmt.Errorf("init %s: %w", name, err)
	}

	h.active = handle
	h.activeName = name
	h.session = session
	log.Info().Int("frames", h.frames.Len()).Int("listeners", h.input.Len()).Msg("module mounted")

	if h.store != nil {
		if err := h.store.SaveLastModule(name); err != nil {
			log.Warn().Err(err).Msg("could not persist last module")
		}
	}
	return nil
}

// Unmount disposes the mounted module, if any.
func (h *Host) Unmount() {
	if h.active == nil {
		return
	}
	h.active.Dispose()
	h.log.Info().
		Str("module", h.activeName).
		Str("session", h.session).
		Int("frames", h.frames.Len()).
		Int("listeners", h.input.Len()).
		Msg("module disposed")
	h.active = nil
	h.activeName = ""
	h.session = ""
}

// Restore mounts the remembered module, falling back when none is stored or
// the stored name is no longer registered.
func (h *Host) Restore(fallback string) error {
	name := fallback
	if h.store != nil {
		if last := h.store.LastModule(); last != "" {
			if _, ok := h.modules[last]; ok {
				name = last
			}
		}
	}
	return h.Mount(name)
}

// TogglePause starts a paused module or pauses a running one.
func (h *Host) TogglePause() {
	if h.active == nil {
		return
	}
	if h.active.IsRunning() {
		h.active.Pause()
	} else {
		h.active.Start()
	}
}

// Frame advances the mounted module by dt seconds.
func (h *Host) Frame(dt float64) {
	h.frames.Tick(dt)
}

// Status describes the mounted module for diagnostics.
func (h *Host) Status() string {
	if h.active == nil {
		return "no module mounted"
	}
	s := fmt.Sprintf("%s session=%s running=%v", h.activeName, h.session, h.active.IsRunning())
	if r, ok := h.active.(Reporter); ok {
		s += "\n" + r.Status()
	}
	return s
}
