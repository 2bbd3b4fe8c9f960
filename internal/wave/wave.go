// Package wave samples a sum of Gerstner waves. The same field drives boat
// buoyancy on the CPU and the displaced water mesh, so the float64 Sample and
// the float32 VertexHeight must agree.
package wave

import (
	"errors"
	"fmt"
	"math"

	"github.com/Garsondee/mini-arcade/internal/geom"
)

// Gravity is the deep-water dispersion constant in m/s².
const Gravity = 9.81

// ErrInvalidComponent is returned by NewField for a component that would
// produce a degenerate or self-intersecting surface.
var ErrInvalidComponent = errors.New("wave: invalid component")

// Component is one Gerstner wave train.
type Component struct {
	Direction  geom.Vec2 `mapstructure:"direction"` // normalised by NewField
	Amplitude  float64   `mapstructure:"amplitude"`
	Wavelength float64   `mapstructure:"wavelength"`
	Steepness  float64   `mapstructure:"steepness"` // [0, 1); 1 makes crests loop
	SpeedScale float64   `mapstructure:"speedScale"`
}

// WaveNumber is k = 2π/λ.
func (c Component) WaveNumber() float64 {
	return 2 * math.Pi / c.Wavelength
}

// AngularFrequency is ω = sqrt(g·k) scaled by the artistic SpeedScale.
// Longer waves travel with a lower natural frequency.
func (c Component) AngularFrequency() float64 {
	return math.Sqrt(Gravity*c.WaveNumber()) * c.SpeedScale
}

func (c Component) validate() error {
	switch {
	case !finite(c.Direction.X) || !finite(c.Direction.Y):
		return fmt.Errorf("%w: direction %v is not finite", ErrInvalidComponent, c.Direction)
	case c.Direction.Len() == 0:
		return fmt.Errorf("%w: zero direction", ErrInvalidComponent)
	case !positive(c.Amplitude):
		return fmt.Errorf("%w: amplitude %v must be finite and > 0", ErrInvalidComponent, c.Amplitude)
	case !positive(c.Wavelength):
		return fmt.Errorf("%w: wavelength %v must be finite and > 0", ErrInvalidComponent, c.Wavelength)
	case !(c.Steepness >= 0 && c.Steepness < 1):
		return fmt.Errorf("%w: steepness %v outside [0,1)", ErrInvalidComponent, c.Steepness)
	case !positive(c.SpeedScale):
		return fmt.Errorf("%w: speed scale %v must be finite and > 0", ErrInvalidComponent, c.SpeedScale)
	}
	return nil
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

// positive is false for NaN and +Inf as well as for x <= 0.
func positive(x float64) bool { return x > 0 && !math.IsInf(x, 1) }

// term caches the per-component constants used on every sample.
type term struct {
	dx, dz   float64
	amp      float64
	k, omega float64
	q        float64 // steepness
}

// Field is an immutable, validated set of wave components. The zero value is
// a flat sea.
type Field struct {
	comps []Component
	terms []term
}

// NewField validates the components and returns a field that can be shared
// read-only between any number of samplers.
func NewField(comps ...Component) (*Field, error) {
	f := &Field{
		comps: make([]Component, 0, len(comps)),
		terms: make([]term, 0, len(comps)),
	}
	for i, c := range comps {
		if err := c.validate(); err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
		l := c.Direction.Len()
		c.Direction = geom.Vec2{X: c.Direction.X / l, Y: c.Direction.Y / l}
		f.comps = append(f.comps, c)
		f.terms = append(f.terms, term{
			dx:    c.Direction.X,
			dz:    c.Direction.Y,
			amp:   c.Amplitude,
			k:     c.WaveNumber(),
			omega: c.AngularFrequency(),
			q:     c.Steepness,
		})
	}
	return f, nil
}

// DefaultComponents is the three-train swell used by the harbor game.
func DefaultComponents() []Component {
	return []Component{
		{Direction: geom.Vec2{X: 1, Y: 0.3}, Amplitude: 0.45, Wavelength: 18, Steepness: 0.35, SpeedScale: 1},
		{Direction: geom.Vec2{X: -0.4, Y: 1}, Amplitude: 0.25, Wavelength: 9, Steepness: 0.3, SpeedScale: 1.1},
		{Direction: geom.Vec2{X: 0.7, Y: -0.7}, Amplitude: 0.12, Wavelength: 4.5, Steepness: 0.25, SpeedScale: 1.3},
	}
}

// Components returns a copy of the normalised components.
func (f *Field) Components() []Component {
	if f == nil {
		return nil
	}
	out := make([]Component, len(f.comps))
	copy(out, f.comps)
	return out
}

// MaxHeight bounds |Height| for every position and time.
func (f *Field) MaxHeight() float64 {
	if f == nil {
		return 0
	}
	sum := 0.0
	for _, w := range f.terms {
		sum += w.amp
	}
	return sum
}

// Sample is the surface state at one horizontal position and time.
type Sample struct {
	Height       float64
	Normal       geom.Vec3 // unit length
	Displacement geom.Vec3 // Y equals Height
}

// Sample evaluates the surface at (x, z) and time t.
func (f *Field) Sample(x, z, t float64) Sample {
	var disp geom.Vec3
	var dhdx, dhdz float64
	if f != nil {
		for _, w := range f.terms {
			phase := w.k*(w.dx*x+w.dz*z) - w.omega*t
			s, c := math.Sincos(phase)
			disp.X += w.q * w.amp * w.dx * c
			disp.Z += w.q * w.amp * w.dz * c
			disp.Y += w.amp * s
			dhdx += w.amp * w.k * w.dx * c
			dhdz += w.amp * w.k * w.dz * c
		}
	}
	return Sample{
		Height:       disp.Y,
		Normal:       geom.Vec3{X: -dhdx, Y: 1, Z: -dhdz}.Normalize(),
		Displacement: disp,
	}
}

// Height is Sample(x, z, t).Height without the normal computation.
func (f *Field) Height(x, z, t float64) float64 {
	if f == nil {
		return 0
	}
	h := 0.0
	for _, w := range f.terms {
		h += w.amp * math.Sin(w.k*(w.dx*x+w.dz*z)-w.omega*t)
	}
	return h
}
