package arcade

import (
	"fmt"

	"github.com/Garsondee/mini-arcade/internal/geom"
)

// EventKind is the wire name of an Event.
type EventKind string

const (
	KindSelectionChanged EventKind = "selection:changed"
	KindMoveCommand      EventKind = "command:move"
	KindUnitArrived      EventKind = "unit:arrived"
	KindGameStarted      EventKind = "game:started"
	KindGamePaused       EventKind = "game:paused"
	KindTargetHit        EventKind = "arena:hit"
)

// Event is a fire-and-forget notification from a module to the host. The set
// of implementations is closed to this package.
type Event interface {
	Kind() EventKind
	String() string
	event()
}

// EventFunc receives events. A nil EventFunc drops them.
type EventFunc func(Event)

// Emit calls f if it is set.
func (f EventFunc) Emit(e Event) {
	if f != nil {
		f(e)
	}
}

// SelectionChanged reports the size of the selection after a select gesture.
type SelectionChanged struct {
	Count int
}

// MoveCommand reports a move order to Count units around To.
type MoveCommand struct {
	To    geom.Vec3
	Count int
}

// UnitArrived reports a unit reaching a target it actually travelled to.
type UnitArrived struct {
	ID   int
	X, Z float64
}

// GameStarted and GamePaused report lifecycle transitions of a module.
type GameStarted struct {
	Module string
}

type GamePaused struct {
	Module string
}

// TargetHit reports a projectile destroying an arena target.
type TargetHit struct {
	Score int
}

func (SelectionChanged) Kind() EventKind { return KindSelectionChanged }
func (MoveCommand) Kind() EventKind      { return KindMoveCommand }
func (UnitArrived) Kind() EventKind      { return KindUnitArrived }
func (GameStarted) Kind() EventKind      { return KindGameStarted }
func (GamePaused) Kind() EventKind       { return KindGamePaused }
func (TargetHit) Kind() EventKind        { return KindTargetHit }

func (SelectionChanged) event() {}
func (MoveCommand) event()      {}
func (UnitArrived) event()      {}
func (GameStarted) event()      {}
func (GamePaused) event()       {}
func (TargetHit) event()        {}

func (e SelectionChanged) String() string {
	return fmt.Sprintf("%s count=%d", e.Kind(), e.Count)
}

func (e MoveCommand) String() string {
	return fmt.Sprintf("%s to=(%.1f,%.1f) count=%d", e.Kind(), e.To.X, e.To.Z, e.Count)
}

func (e UnitArrived) String() string {
	return fmt.Sprintf("%s id=%d at=(%.1f,%.1f)", e.Kind(), e.ID, e.X, e.Z)
}

func (e GameStarted) String() string { return fmt.Sprintf("%s %s", e.Kind(), e.Module) }

func (e GamePaused) String() string { return fmt.Sprintf("%s %s", e.Kind(), e.Module) }

func (e TargetHit) String() string { return fmt.Sprintf("%s score=%d", e.Kind(), e.Score) }
