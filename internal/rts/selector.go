package rts

import "github.com/Garsondee/mini-arcade/internal/geom"

type dragState int

const (
	stateIdle dragState = iota
	stateDragging
)

// Selector turns pointer gestures into selection changes and move orders.
// A primary press starts a drag; release either click-selects (pointer
// barely moved) or box-selects.
type Selector struct {
	world *World
	cam   *geom.Camera
	state dragState
	query SelectionQuery
}

// NewSelector binds a selector to a world and the camera the pointer looks
// through. The camera may be moved between gestures.
func NewSelector(w *World, cam *geom.Camera) *Selector {
	return &Selector{world: w, cam: cam}
}

// Dragging reports whether a primary gesture is in progress.
func (s *Selector) Dragging() bool { return s.state == stateDragging }

// Query returns the active gesture; ok is false when idle.
func (s *Selector) Query() (SelectionQuery, bool) {
	return s.query, s.state == stateDragging
}

// Live returns the selection shape the current drag would resolve to.
func (s *Selector) Live() (Region, bool) {
	if s.state != stateDragging {
		return nil, false
	}
	return s.query.Region(), true
}

func (s *Selector) pickGround(p geom.Vec2) Pick {
	return PickGround(*s.cam, p, s.world.cfg.GroundY)
}

// Press begins a drag at screen point p.
func (s *Selector) Press(p geom.Vec2) {
	g := s.pickGround(p)
	s.state = stateDragging
	s.query = SelectionQuery{
		Origin:        g,
		Current:       g,
		OriginScreen:  p,
		CurrentScreen: p,
	}
}

// Move updates the live drag.
func (s *Selector) Move(p geom.Vec2) {
	if s.state != stateDragging {
		return
	}
	s.query.Current = s.pickGround(p)
	s.query.CurrentScreen = p
}

// Release ends the drag at p. additive is the shift modifier: toggle on
// click, union on box.
func (s *Selector) Release(p geom.Vec2, additive bool) {
	if s.state != stateDragging {
		return
	}
	s.Move(p)
	q := s.query
	s.state = stateIdle
	s.query = SelectionQuery{}

	w := s.world
	if q.OriginScreen.Dist(q.CurrentScreen) < w.cfg.ClickThreshold {
		hit := pickUnit(w.units, s.cam.Ray(p), w.cfg.UnitRadius)
		switch {
		case hit != nil && additive:
			w.Toggle(hit)
		case hit != nil:
			w.SelectOnly(hit)
		case !additive:
			w.ClearSelection()
		}
		return
	}
	w.SelectRegion(q.Region(), *s.cam, additive)
}

// Cancel abandons a drag without changing the selection.
func (s *Selector) Cancel() {
	s.state = stateIdle
	s.query = SelectionQuery{}
}

// Command issues a move order to the ground point under p. It reports
// whether an order was given.
func (s *Selector) Command(p geom.Vec2) bool {
	hit, ok := s.pickGround(p).(WorldHit)
	if !ok {
		return false
	}
	return s.world.CommandMove(hit.Point)
}
