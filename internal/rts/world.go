// Package rts implements unit selection, group move orders and per-tick
// seek/separation steering on a flat ground plane.
package rts

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/Garsondee/mini-arcade/internal/arcade"
	"github.com/Garsondee/mini-arcade/internal/geom"
)

// Config tunes selection and steering.
type Config struct {
	UnitSpeed          float64 `mapstructure:"unitSpeed"`
	UnitRadius         float64 `mapstructure:"unitRadius"` // hit sphere radius for click picking
	SeparationRadius   float64 `mapstructure:"separationRadius"`
	SeparationStrength float64 `mapstructure:"separationStrength"` // push per unit of overlap, per second
	ArriveEpsilon      float64 `mapstructure:"arriveEpsilon"`
	FormationSpacing   float64 `mapstructure:"formationSpacing"` // keep above SeparationRadius
	Formation          string  `mapstructure:"formation"`
	MarkerTTL          float64 `mapstructure:"markerTTL"`
	ClickThreshold     float64 `mapstructure:"clickThreshold"` // pixels
	GroundY            float64 `mapstructure:"groundY"`
}

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("rts: invalid config")

// Validate reports tuning that would stall units or stack them on one slot.
func (c Config) Validate() error {
	named := []struct {
		name string
		v    float64
	}{
		{"unitSpeed", c.UnitSpeed}, {"unitRadius", c.UnitRadius},
		{"separationRadius", c.SeparationRadius}, {"separationStrength", c.SeparationStrength},
		{"arriveEpsilon", c.ArriveEpsilon}, {"formationSpacing", c.FormationSpacing},
		{"markerTTL", c.MarkerTTL}, {"clickThreshold", c.ClickThreshold}, {"groundY", c.GroundY},
	}
	for _, f := range named {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s %v is not finite", ErrInvalidConfig, f.name, f.v)
		}
	}
	switch {
	case c.UnitSpeed <= 0:
		return fmt.Errorf("%w: unitSpeed %v must be > 0", ErrInvalidConfig, c.UnitSpeed)
	case c.UnitRadius <= 0:
		return fmt.Errorf("%w: unitRadius %v must be > 0", ErrInvalidConfig, c.UnitRadius)
	case c.ArriveEpsilon <= 0:
		return fmt.Errorf("%w: arriveEpsilon %v must be > 0", ErrInvalidConfig, c.ArriveEpsilon)
	case c.FormationSpacing <= 0:
		return fmt.Errorf("%w: formationSpacing %v must be > 0", ErrInvalidConfig, c.FormationSpacing)
	case c.SeparationRadius < 0 || c.SeparationStrength < 0:
		return fmt.Errorf("%w: separation must be >= 0", ErrInvalidConfig)
	case c.MarkerTTL < 0 || c.ClickThreshold < 0:
		return fmt.Errorf("%w: markerTTL and clickThreshold must be >= 0", ErrInvalidConfig)
	}
	return nil
}

// DefaultConfig returns the skirmish tuning.
func DefaultConfig() Config {
	return Config{
		UnitSpeed:          4,
		UnitRadius:         0.5,
		SeparationRadius:   1.2,
		SeparationStrength: 2,
		ArriveEpsilon:      0.05,
		FormationSpacing:   1.6,
		Formation:          "grid",
		MarkerTTL:          1,
		ClickThreshold:     5,
	}
}

// World owns the unit roster, the current selection and live order markers.
type World struct {
	cfg       Config
	formation FormationType
	units     []*Unit
	markers   []*Marker
	nextID    int
	emit      arcade.EventFunc
}

// NewWorld creates an empty world that reports through emit.
func NewWorld(cfg Config, emit arcade.EventFunc) *World {
	return &World{
		cfg:       cfg,
		formation: ParseFormation(cfg.Formation),
		nextID:    1,
		emit:      emit,
	}
}

// Config returns the tuning in use.
func (w *World) Config() Config { return w.cfg }

// Spawn adds a unit at p. IDs are unique and increase monotonically.
func (w *World) Spawn(p geom.Vec3) *Unit {
	u := &Unit{ID: w.nextID, Position: p, Speed: w.cfg.UnitSpeed}
	w.nextID++
	w.units = append(w.units, u)
	return u
}

// Units returns the roster in spawn order.
func (w *World) Units() []*Unit { return w.units }

// Unit looks a unit up by ID.
func (w *World) Unit(id int) *Unit {
	for _, u := range w.units {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// Selected returns selected units in ID order.
func (w *World) Selected() []*Unit {
	var out []*Unit
	for _, u := range w.units {
		if u.Selected {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SelectedCount is len(Selected()) without allocating.
func (w *World) SelectedCount() int {
	n := 0
	for _, u := range w.units {
		if u.Selected {
			n++
		}
	}
	return n
}

// Markers returns live order markers.
func (w *World) Markers() []*Marker { return w.markers }

func (w *World) selectionChanged() {
	w.emit.Emit(arcade.SelectionChanged{Count: w.SelectedCount()})
}

// SelectOnly replaces the selection with u.
func (w *World) SelectOnly(u *Unit) {
	for _, o := range w.units {
		o.Selected = o == u
	}
	w.selectionChanged()
}

// Toggle flips u in or out of the selection.
func (w *World) Toggle(u *Unit) {
	u.Selected = !u.Selected
	w.selectionChanged()
}

// ClearSelection deselects everything.
func (w *World) ClearSelection() {
	for _, u := range w.units {
		u.Selected = false
	}
	w.selectionChanged()
}

// SelectRegion selects the units inside r, replacing the selection or, when
// additive, adding to it.
func (w *World) SelectRegion(r Region, cam geom.Camera, additive bool) {
	for _, u := range w.units {
		in := r.Contains(u, cam)
		if additive {
			u.Selected = u.Selected || in
		} else {
			u.Selected = in
		}
	}
	w.selectionChanged()
}

// CommandMove orders every selected unit into formation around to. It
// returns false when nothing is selected.
func (w *World) CommandMove(to geom.Vec3) bool {
	sel := w.Selected()
	if len(sel) == 0 {
		return false
	}
	offsets := formationOffsets(w.formation, len(sel), w.cfg.FormationSpacing)
	for i, u := range assignSlots(sel, w.formation) {
		u.SetTarget(geom.Vec3{X: to.X + offsets[i][0], Y: to.Y, Z: to.Z + offsets[i][1]})
	}
	w.markers = append(w.markers, &Marker{Position: to, TTL: w.cfg.MarkerTTL, Life: w.cfg.MarkerTTL})
	w.emit.Emit(arcade.MoveCommand{To: to, Count: len(sel)})
	return true
}

// Tick advances every unit by dt seconds. Separation and seek are computed
// from the same pre-tick snapshot and summed.
func (w *World) Tick(dt float64) {
	if dt <= 0 {
		return
	}
	moves := make([]geom.Vec3, len(w.units))
	for i := range w.units {
		moves[i] = w.separation(i).Scale(dt)
	}

	for i, u := range w.units {
		if !u.hasTarget {
			continue
		}
		to := u.target.Sub(u.Position).Flat()
		dist := to.Len()
		if dist < w.cfg.ArriveEpsilon {
			arrived := u.pending
			u.ClearTarget()
			if arrived {
				w.emit.Emit(arcade.UnitArrived{ID: u.ID, X: u.Position.X, Z: u.Position.Z})
			}
			continue
		}
		u.pending = true
		step := u.Speed * dt
		if step > dist {
			step = dist
		}
		moves[i] = moves[i].Add(to.Scale(step / dist))
	}

	for i, u := range w.units {
		u.Position = u.Position.Add(moves[i])
	}

	w.tickMarkers(dt)
}

// separation is the per-second push on unit i away from every neighbour
// inside the separation radius.
func (w *World) separation(i int) geom.Vec3 {
	self := w.units[i]
	r := w.cfg.SeparationRadius
	var push geom.Vec3
	for j, other := range w.units {
		if j == i {
			continue
		}
		away := self.Position.Sub(other.Position).Flat()
		d := away.Len()
		if d >= r {
			continue
		}
		var dir geom.Vec3
		if d < 1e-9 {
			// Stacked units: split them along X by ID so the pair mirrors.
			dir = geom.Vec3{X: 1}
			if self.ID < other.ID {
				dir.X = -1
			}
		} else {
			dir = away.Scale(1 / d)
		}
		push = push.Add(dir.Scale((r - d) * w.cfg.SeparationStrength))
	}
	return push
}

func (w *World) tickMarkers(dt float64) {
	kept := w.markers[:0]
	for _, m := range w.markers {
		m.TTL -= dt
		if !m.Done() {
			kept = append(kept, m)
		}
	}
	for i := len(kept); i < len(w.markers); i++ {
		w.markers[i] = nil
	}
	w.markers = kept
}
