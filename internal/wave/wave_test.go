package wave

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/Garsondee/mini-arcade/internal/geom"
)

func defaultField(t *testing.T) *Field {
	t.Helper()
	f, err := NewField(DefaultComponents()...)
	if err != nil {
		t.Fatalf("default components should validate: %v", err)
	}
	return f
}

func TestSample_EmptyFieldIsFlat(t *testing.T) {
	empty, err := NewField()
	if err != nil {
		t.Fatalf("empty field: %v", err)
	}
	var zero Field
	var nilField *Field
	for _, f := range []*Field{empty, &zero, nilField} {
		for _, p := range [][3]float64{{0, 0, 0}, {12.5, -3, 7}, {-1e4, 1e4, 1e3}} {
			s := f.Sample(p[0], p[1], p[2])
			if s.Height != 0 {
				t.Fatalf("flat sea: height should be 0, got %f", s.Height)
			}
			if s.Normal != geom.Up {
				t.Fatalf("flat sea: normal should be up, got %+v", s.Normal)
			}
		}
	}
}

func TestSample_NormalUnitAndHeightBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(7)) // #nosec G404 -- test fixture
	configs := [][]Component{DefaultComponents()}
	for i := 0; i < 20; i++ {
		n := 1 + rng.Intn(4)
		comps := make([]Component, n)
		for j := range comps {
			a := rng.Float64() * 2 * math.Pi
			comps[j] = Component{
				Direction:  geom.Vec2{X: math.Cos(a), Y: math.Sin(a)},
				Amplitude:  0.05 + rng.Float64()*2,
				Wavelength: 0.5 + rng.Float64()*40,
				Steepness:  rng.Float64() * 0.99,
				SpeedScale: 0.2 + rng.Float64()*2,
			}
		}
		configs = append(configs, comps)
	}

	for ci, comps := range configs {
		f, err := NewField(comps...)
		if err != nil {
			t.Fatalf("config %d: %v", ci, err)
		}
		bound := f.MaxHeight() + 1e-9
		for i := 0; i < 500; i++ {
			x := (rng.Float64() - 0.5) * 400
			z := (rng.Float64() - 0.5) * 400
			tm := rng.Float64() * 120
			s := f.Sample(x, z, tm)
			if l := s.Normal.Len(); math.Abs(l-1) > 1e-9 {
				t.Fatalf("config %d: normal length %f at (%.2f,%.2f,%.2f)", ci, l, x, z, tm)
			}
			if math.Abs(s.Height) > bound {
				t.Fatalf("config %d: |height| %f exceeds amplitude sum %f", ci, s.Height, bound)
			}
			if s.Displacement.Y != s.Height {
				t.Fatalf("config %d: displacement Y %f != height %f", ci, s.Displacement.Y, s.Height)
			}
		}
	}
}

func TestHeight_MatchesSample(t *testing.T) {
	f := defaultField(t)
	for i := 0; i < 50; i++ {
		x, z, tm := float64(i)*1.7, float64(i)*-0.9, float64(i)*0.33
		if d := math.Abs(f.Height(x, z, tm) - f.Sample(x, z, tm).Height); d > 1e-12 {
			t.Fatalf("Height and Sample disagree by %g", d)
		}
	}
}

func TestVertexHeight_AgreesWithSample(t *testing.T) {
	f := defaultField(t)
	const tol = 1e-3
	for xi := -100; xi <= 100; xi += 7 {
		for zi := -100; zi <= 100; zi += 11 {
			for _, tm := range []float64{0, 3.25, 47.5} {
				cpu := f.Height(float64(xi), float64(zi), tm)
				gpu := f.VertexHeight(float32(xi), float32(zi), float32(tm))
				if math.Abs(cpu-float64(gpu)) > tol {
					t.Fatalf("vertex evaluator drifted at (%d,%d,%.2f): cpu=%f vertex=%f", xi, zi, tm, cpu, gpu)
				}
			}
		}
	}
}

func TestNewField_NormalisesDirection(t *testing.T) {
	f, err := NewField(Component{Direction: geom.Vec2{X: 3, Y: 4}, Amplitude: 1, Wavelength: 10, Steepness: 0.2, SpeedScale: 1})
	if err != nil {
		t.Fatal(err)
	}
	d := f.Components()[0].Direction
	if math.Abs(d.Len()-1) > 1e-12 || math.Abs(d.X-0.6) > 1e-12 {
		t.Fatalf("direction should be normalised to (0.6,0.8), got %+v", d)
	}
}

func TestNewField_RejectsInvalid(t *testing.T) {
	ok := Component{Direction: geom.Vec2{X: 1}, Amplitude: 1, Wavelength: 10, Steepness: 0.5, SpeedScale: 1}
	cases := map[string]func(c *Component){
		"zero direction":   func(c *Component) { c.Direction = geom.Vec2{} },
		"zero amplitude":   func(c *Component) { c.Amplitude = 0 },
		"negative wavelen": func(c *Component) { c.Wavelength = -2 },
		"zero wavelength":  func(c *Component) { c.Wavelength = 0 },
		"steepness one":    func(c *Component) { c.Steepness = 1 },
		"negative steep":   func(c *Component) { c.Steepness = -0.1 },
		"zero speed scale": func(c *Component) { c.SpeedScale = 0 },
		"NaN amplitude":    func(c *Component) { c.Amplitude = math.NaN() },
		"inf amplitude":    func(c *Component) { c.Amplitude = math.Inf(1) },
		"NaN direction":    func(c *Component) { c.Direction = geom.Vec2{X: math.NaN()} },
		"inf direction":    func(c *Component) { c.Direction = geom.Vec2{X: 1, Y: math.Inf(-1)} },
		"inf wavelength":   func(c *Component) { c.Wavelength = math.Inf(1) },
		"NaN wavelength":   func(c *Component) { c.Wavelength = math.NaN() },
		"NaN steepness":    func(c *Component) { c.Steepness = math.NaN() },
		"inf speed scale":  func(c *Component) { c.SpeedScale = math.Inf(1) },
		"NaN speed scale":  func(c *Component) { c.SpeedScale = math.NaN() },
	}
	for name, mutate := range cases {
		c := ok
		mutate(&c)
		if _, err := NewField(ok, c); !errors.Is(err, ErrInvalidComponent) {
			t.Fatalf("%s: expected ErrInvalidComponent, got %v", name, err)
		}
	}
}

func TestAngularFrequency_LongerWavesAreSlower(t *testing.T) {
	prev := math.Inf(1)
	for _, l := range []float64{1, 4, 16, 64, 256} {
		w := Component{Wavelength: l, SpeedScale: 1}.AngularFrequency()
		if w >= prev {
			t.Fatalf("wavelength %.0f: omega %f should be below %f", l, w, prev)
		}
		prev = w
	}
}
