package games

import (
	"errors"
	"testing"

	"github.com/Garsondee/mini-arcade/internal/arcade"
	"github.com/Garsondee/mini-arcade/internal/boat"
	"github.com/Garsondee/mini-arcade/internal/geom"
	"github.com/Garsondee/mini-arcade/internal/rts"
	"github.com/Garsondee/mini-arcade/internal/wave"
)

// dumpEvents prints the recorded events so they show in `go test -v`.
func dumpEvents(t *testing.T, hs *Harness) {
	t.Helper()
	for _, e := range hs.Events.Events() {
		t.Log(e.String())
	}
}

var allGames = []string{HarborName, SkirmishName, StarfieldName, ArenaName}

func TestEveryGame_DisposeTwiceReleasesOnce(t *testing.T) {
	for _, name := range allGames {
		t.Run(name, func(t *testing.T) {
			hs := NewHarness()
			if err := hs.Mount(name); err != nil {
				t.Fatalf("mount: %v", err)
			}
			hs.Step(30)
			if hs.Surface.Presented() == nil {
				t.Fatal("game did not present a canvas")
			}
			if len(hs.Overlay.Lines()) == 0 {
				t.Fatal("game wrote no overlay text")
			}

			h := hs.Active()
			h.Dispose()
			h.Dispose()

			if hs.Leaks() != 0 {
				t.Fatalf("leaks after dispose: buffers=%d frames=%d listeners=%d",
					hs.Surface.Live(), hs.Host.Frames().Len(), hs.Host.Input().Len())
			}
			if n := hs.Surface.DoubleFrees(); n != 0 {
				t.Fatalf("double frees: %d", n)
			}
			if hs.Surface.Presented() != nil {
				t.Fatal("surface still presents the disposed canvas")
			}
			if len(hs.Overlay.Lines()) != 0 {
				t.Fatalf("overlay not cleared: %q", hs.Overlay.Lines())
			}
			if h.IsRunning() {
				t.Fatal("disposed game reports running")
			}
			h.Start()
			if h.IsRunning() {
				t.Fatal("start after dispose revived the game")
			}
		})
	}
}

func TestEveryGame_DisposeBeforeStart(t *testing.T) {
	for _, name := range allGames {
		t.Run(name, func(t *testing.T) {
			hs := NewHarness()
			if err := hs.Host.Mount(name); err != nil {
				t.Fatalf("mount: %v", err)
			}
			if hs.Active().IsRunning() {
				t.Fatal("game runs before Start")
			}
			hs.Host.Unmount()
			if hs.Leaks() != 0 {
				t.Fatalf("leaks: %d", hs.Leaks())
			}
			if hs.Events.Count(arcade.KindGameStarted) != 0 {
				t.Fatal("game:started emitted without Start")
			}
		})
	}
}

func TestHost_SwitchingGamesNeverOverlaps(t *testing.T) {
	hs := NewHarness()
	for round := 0; round < 2; round++ {
		for _, name := range allGames {
			if err := hs.Mount(name); err != nil {
				t.Fatalf("mount %s: %v", name, err)
			}
			hs.Step(5)
			if live := hs.Surface.Live(); live != 1 {
				t.Fatalf("%s: %d live buffers, want exactly the mounted game's canvas", name, live)
			}
			if n := hs.Host.Frames().Len(); n != 1 {
				t.Fatalf("%s: %d frame callbacks", name, n)
			}
			if n := hs.Host.Input().Len(); n != 1 {
				t.Fatalf("%s: %d listeners", name, n)
			}
		}
	}
	hs.Host.Unmount()
	if hs.Leaks() != 0 {
		t.Fatalf("leaks after unmount: %d", hs.Leaks())
	}
	if hs.Surface.DoubleFrees() != 0 {
		t.Fatal("double free while switching")
	}
}

func TestInit_AllocationFailureLeavesNothingMounted(t *testing.T) {
	for _, name := range allGames {
		t.Run(name, func(t *testing.T) {
			hs := NewHarness(WithFailAt(1))
			err := hs.Host.Mount(name)
			if !errors.Is(err, arcade.ErrAllocation) {
				t.Fatalf("err = %v, want ErrAllocation", err)
			}
			if hs.Active() != nil {
				t.Fatal("failed init left a module mounted")
			}
			if hs.Leaks() != 0 {
				t.Fatalf("leaks: %d", hs.Leaks())
			}
		})
	}
}

func TestInit_NoSurface(t *testing.T) {
	_, err := NewSkirmish(DefaultSkirmishOptions()).Init(arcade.Env{})
	if !errors.Is(err, arcade.ErrNoSurface) {
		t.Fatalf("err = %v, want ErrNoSurface", err)
	}
}

func TestHarbor_InvalidWavesRejectedAtInit(t *testing.T) {
	opts := DefaultOptions()
	opts.Harbor.Waves = []wave.Component{{Direction: geom.Vec2{X: 1}, Amplitude: 1, Wavelength: 0, SpeedScale: 1}}
	hs := NewHarness(WithOptions(opts))
	err := hs.Host.Mount(HarborName)
	if !errors.Is(err, wave.ErrInvalidComponent) {
		t.Fatalf("err = %v, want ErrInvalidComponent", err)
	}
	if hs.Leaks() != 0 {
		t.Fatalf("leaks: %d", hs.Leaks())
	}
}

func TestHarbor_InvalidBoatRejectedAtInit(t *testing.T) {
	opts := DefaultOptions()
	opts.Harbor.Boat.IntentBase = 2
	hs := NewHarness(WithOptions(opts))
	err := hs.Host.Mount(HarborName)
	if !errors.Is(err, boat.ErrInvalidParams) {
		t.Fatalf("err = %v, want ErrInvalidParams", err)
	}
	if name, _ := hs.Host.Active(); name != "" {
		t.Fatalf("%s mounted after a rejected init", name)
	}
	if hs.Leaks() != 0 {
		t.Fatalf("leaks: %d", hs.Leaks())
	}
}

func TestSkirmish_InvalidWorldRejectedAtInit(t *testing.T) {
	opts := DefaultOptions()
	opts.Skirmish.World.FormationSpacing = 0
	hs := NewHarness(WithOptions(opts))
	err := hs.Host.Mount(SkirmishName)
	if !errors.Is(err, rts.ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
	if hs.Leaks() != 0 {
		t.Fatalf("leaks: %d", hs.Leaks())
	}
}

func TestStartPause_EmitEventsOnce(t *testing.T) {
	hs := NewHarness()
	if err := hs.Mount(ArenaName); err != nil {
		t.Fatal(err)
	}
	h := hs.Active()
	h.Start()
	h.Pause()
	h.Pause()
	h.Start()
	dumpEvents(t, hs)

	if n := hs.Events.Count(arcade.KindGameStarted); n != 2 {
		t.Fatalf("game:started x%d, want 2", n)
	}
	if n := hs.Events.Count(arcade.KindGamePaused); n != 1 {
		t.Fatalf("game:paused x%d, want 1", n)
	}
	e, _ := hs.Events.Last(arcade.KindGameStarted)
	if e.(arcade.GameStarted).Module != ArenaName {
		t.Fatalf("unexpected event %v", e)
	}
}

type memStore struct{ last string }

func (s *memStore) LastModule() string { return s.last }
func (s *memStore) SaveLastModule(n string) error {
	s.last = n
	return nil
}

func TestHarness_RemembersLastModule(t *testing.T) {
	store := &memStore{}
	hs := NewHarness(WithStore(store))
	if err := hs.Mount(StarfieldName); err != nil {
		t.Fatal(err)
	}

	next := NewHarness(WithStore(store))
	if err := next.Host.Restore(HarborName); err != nil {
		t.Fatal(err)
	}
	if name, _ := next.Host.Active(); name != StarfieldName {
		t.Fatalf("restored %q, want %q", name, StarfieldName)
	}
}
