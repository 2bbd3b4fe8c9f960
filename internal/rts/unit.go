package rts

import (
	"fmt"

	"github.com/Garsondee/mini-arcade/internal/geom"
)

// Unit is one selectable, commandable agent. Units are never removed during a
// session.
type Unit struct {
	ID       int
	Position geom.Vec3
	Speed    float64 // ground units per second
	Selected bool

	target    geom.Vec3
	hasTarget bool
	// pending is set once the unit has actually moved toward its target, so
	// a target that resolves on the tick it was assigned raises no arrival.
	pending bool
}

// Target returns the current move target, if any.
func (u *Unit) Target() (geom.Vec3, bool) {
	return u.target, u.hasTarget
}

// SetTarget assigns a fresh move target.
func (u *Unit) SetTarget(p geom.Vec3) {
	u.target = p
	u.hasTarget = true
	u.pending = false
}

// ClearTarget drops any move target without raising an arrival.
func (u *Unit) ClearTarget() {
	u.hasTarget = false
	u.pending = false
}

func (u *Unit) String() string {
	s := fmt.Sprintf("U%d (%.1f,%.1f)", u.ID, u.Position.X, u.Position.Z)
	if u.hasTarget {
		s += fmt.Sprintf(" -> (%.1f,%.1f)", u.target.X, u.target.Z)
	}
	if u.Selected {
		s += " [sel]"
	}
	return s
}
