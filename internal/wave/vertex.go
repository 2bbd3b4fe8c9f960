package wave

import "math"

// VertexHeight is the single-precision evaluator used when displacing water
// mesh vertices for drawing. It must track Height to within float32 rounding.
func (f *Field) VertexHeight(x, z, t float32) float32 {
	_, h, _ := f.VertexDisplacement(x, z, t)
	return h
}

// VertexDisplacement returns the Gerstner offset for a mesh vertex at rest
// position (x, 0, z).
func (f *Field) VertexDisplacement(x, z, t float32) (dx, dy, dz float32) {
	if f == nil {
		return 0, 0, 0
	}
	for _, w := range f.terms {
		k := float32(w.k)
		phase := k*(float32(w.dx)*x+float32(w.dz)*z) - float32(w.omega)*t
		s, c := math.Sincos(float64(phase))
		amp := float32(w.amp)
		q := float32(w.q)
		dx += q * amp * float32(w.dx) * float32(c)
		dz += q * amp * float32(w.dz) * float32(c)
		dy += amp * float32(s)
	}
	return dx, dy, dz
}
