package rts

import "github.com/Garsondee/mini-arcade/internal/geom"

// Marker is a short-lived ground decal left where a move order was given.
type Marker struct {
	Position geom.Vec3
	TTL      float64 // seconds remaining
	Life     float64 // initial TTL
}

// Done reports whether the marker should be removed.
func (m *Marker) Done() bool { return m.TTL <= 0 }

// Fade is the remaining share of the marker's life in [0, 1].
func (m *Marker) Fade() float64 {
	if m.Life <= 0 {
		return 0
	}
	return geom.Clamp(m.TTL/m.Life, 0, 1)
}
