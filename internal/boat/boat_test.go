package boat

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/Garsondee/mini-arcade/internal/geom"
	"github.com/Garsondee/mini-arcade/internal/wave"
)

func swell(t *testing.T) *wave.Field {
	t.Helper()
	f, err := wave.NewField(wave.DefaultComponents()...)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

// run drives a controller for total seconds in fixed steps of dt.
func run(c *Controller, total, dt, throttle, steer float64) {
	steps := int(math.Round(total / dt))
	for i := 0; i < steps; i++ {
		c.Tick(dt, float64(i+1)*dt, throttle, steer)
	}
}

func TestTick_FrameRateIndependent(t *testing.T) {
	field := swell(t)
	fine := NewController(field, DefaultParams(), geom.Vec3{}, 0)
	coarse := NewController(field, DefaultParams(), geom.Vec3{}, 0)

	run(fine, 10, 1.0/60, 1, 0.2)
	run(coarse, 10, 2.0/60, 1, 0.2)

	a, b := fine.Body(), coarse.Body()
	if d := a.Position.FlatDist(b.Position); d > 1.0 {
		t.Fatalf("positions diverged by %.3fm (60Hz %+v vs 30Hz %+v)", d, a.Position, b.Position)
	}
	if d := math.Abs(a.Heading - b.Heading); d > 0.05 {
		t.Fatalf("headings diverged by %.4f rad", d)
	}
	if d := math.Abs(a.Throttle - b.Throttle); d > 1e-9 {
		t.Fatalf("smoothed throttle should be identical across tick rates, diff %g", d)
	}
}

func TestTick_IntentSmoothingIsExact(t *testing.T) {
	c := NewController(nil, DefaultParams(), geom.Vec3{}, 0)
	run(c, 0.5, 1.0/120, 1, -1)
	want := 1 - math.Pow(DefaultParams().IntentBase, 0.5)
	b := c.Body()
	if math.Abs(b.Throttle-want) > 1e-9 || math.Abs(b.Steer+want) > 1e-9 {
		t.Fatalf("after 0.5s intents should be ±%f, got throttle=%f steer=%f", want, b.Throttle, b.Steer)
	}
}

func TestTick_SpeedStaysWithinLimits(t *testing.T) {
	rng := rand.New(rand.NewSource(3)) // #nosec G404 -- test fixture
	p := DefaultParams()
	p.Accel = 40 // make the limits reachable quickly
	p.Drag = 0.001
	c := NewController(swell(t), p, geom.Vec3{}, 0)
	hitTop, hitBottom := false, false
	for i := 0; i < 20000; i++ {
		th := rng.Float64()*2.4 - 1.2
		if i%2000 < 600 {
			th = 5 // out-of-range input is clamped, not trusted
		} else if i%2000 < 1200 {
			th = -5
		}
		dt := 0.002 + rng.Float64()*0.05
		c.Tick(dt, float64(i)*0.016, th, rng.Float64()*2-1)
		s := c.Body().Speed
		if s > p.MaxForward || s < -p.MaxReverse {
			t.Fatalf("tick %d: speed %f outside [-%f, %f]", i, s, p.MaxReverse, p.MaxForward)
		}
		hitTop = hitTop || s == p.MaxForward
		hitBottom = hitBottom || s == -p.MaxReverse
	}
	if !hitTop || !hitBottom {
		t.Fatalf("fixture should reach both limits (top=%v bottom=%v)", hitTop, hitBottom)
	}
}

func TestTick_RidesSurfaceAtHullOffset(t *testing.T) {
	field := swell(t)
	p := DefaultParams()
	c := NewController(field, p, geom.Vec3{X: 3, Z: -4}, 0.4)
	for i := 1; i <= 120; i++ {
		tm := float64(i) / 60
		c.Tick(1.0/60, tm, 0.6, 0.1)
		b := c.Body()
		want := field.Height(b.Position.X, b.Position.Z, tm) + p.HullOffset
		if math.Abs(b.Position.Y-want) > 1e-9 {
			t.Fatalf("tick %d: y=%f want %f", i, b.Position.Y, want)
		}
	}
}

func TestTick_FlatSeaKeepsHullUpright(t *testing.T) {
	c := NewController(nil, DefaultParams(), geom.Vec3{}, 0)
	run(c, 5, 1.0/60, 1, 0)
	b := c.Body()
	up := b.Attitude.Rotate(geom.Up)
	if math.Abs(up.Y-1) > 1e-6 {
		t.Fatalf("hull should stay upright with no steer on a flat sea, up=%+v", up)
	}
	if b.Position.Z <= 0 {
		t.Fatalf("forward throttle at heading 0 should move +Z, got %+v", b.Position)
	}
}

func TestTick_BanksIntoTurn(t *testing.T) {
	c := NewController(nil, DefaultParams(), geom.Vec3{}, 0)
	run(c, 4, 1.0/60, 1, 1)
	b := c.Body()
	up := b.Attitude.Rotate(geom.Up)
	if math.Abs(up.Y-1) < 1e-4 {
		t.Fatalf("steering under way should bank the hull, up=%+v", up)
	}
	if !b.Attitude.IsFinite() {
		t.Fatal("attitude should be finite")
	}
}

func TestSurfaceUp_DegenerateFallsBack(t *testing.T) {
	for _, n := range []geom.Vec3{{}, {X: math.NaN(), Y: 1}, {Y: math.Inf(1)}} {
		if got := surfaceUp(n); got != geom.Up {
			t.Fatalf("surfaceUp(%+v) = %+v, want world up", n, got)
		}
	}
}

func TestTick_NaNInputIgnored(t *testing.T) {
	c := NewController(swell(t), DefaultParams(), geom.Vec3{}, 0)
	run(c, 1, 1.0/60, math.NaN(), math.NaN())
	b := c.Body()
	if b.Speed != 0 || b.Heading != 0 || !b.Position.IsFinite() {
		t.Fatalf("NaN input should act as neutral, got %s", b)
	}
}

func TestParamsValidate_DefaultsAreUsable(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("default params rejected: %v", err)
	}
}

func TestParamsValidate_RejectsUnusableTuning(t *testing.T) {
	cases := map[string]func(p *Params){
		"intent base at one":      func(p *Params) { p.IntentBase = 1 },
		"intent base above one":   func(p *Params) { p.IntentBase = 2 },
		"zero intent base":        func(p *Params) { p.IntentBase = 0 },
		"attitude base above one": func(p *Params) { p.AttitudeBase = 1.5 },
		"negative reverse":        func(p *Params) { p.MaxReverse = -4 },
		"zero top speed":          func(p *Params) { p.MaxForward = 0 },
		"zero accel":              func(p *Params) { p.Accel = 0 },
		"negative drag":           func(p *Params) { p.Drag = -0.1 },
		"negative steer":          func(p *Params) { p.SteerBase = -1 },
		"negative bank":           func(p *Params) { p.BankMax = -0.1 },
		"NaN hull offset":         func(p *Params) { p.HullOffset = math.NaN() },
		"infinite top speed":      func(p *Params) { p.MaxForward = math.Inf(1) },
	}
	for name, mutate := range cases {
		p := DefaultParams()
		mutate(&p)
		if err := p.Validate(); !errors.Is(err, ErrInvalidParams) {
			t.Fatalf("%s: expected ErrInvalidParams, got %v", name, err)
		}
	}
}
