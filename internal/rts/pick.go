package rts

import (
	"math"

	"github.com/Garsondee/mini-arcade/internal/geom"
)

// Pick is the result of casting a pointer position into the world: either
// the ray met the ground (WorldHit) or it did not (ScreenOnly).
type Pick interface {
	pick()
}

// WorldHit is a pointer ray that met the ground plane at Point.
type WorldHit struct {
	Point geom.Vec3
}

// ScreenOnly is a pointer position with no ground under it, for example when
// the camera looks above the horizon.
type ScreenOnly struct{}

func (WorldHit) pick()   {}
func (ScreenOnly) pick() {}

// PickGround casts screen point s through cam onto the plane y = groundY.
func PickGround(cam geom.Camera, s geom.Vec2, groundY float64) Pick {
	if p, ok := cam.Ray(s).IntersectPlaneY(groundY); ok {
		return WorldHit{Point: p}
	}
	return ScreenOnly{}
}

// pickUnit returns the unit whose hit sphere the ray meets first.
func pickUnit(units []*Unit, ray geom.Ray, radius float64) *Unit {
	best := math.MaxFloat64
	var hit *Unit
	for _, u := range units {
		centre := u.Position.Add(geom.Vec3{Y: radius})
		if d, ok := ray.IntersectSphere(centre, radius); ok && d < best {
			best = d
			hit = u
		}
	}
	return hit
}

// Region is a selection shape resolved from a drag gesture.
type Region interface {
	Contains(u *Unit, cam geom.Camera) bool
}

// WorldRect selects units whose ground position lies inside an axis-aligned
// XZ rectangle.
type WorldRect struct {
	MinX, MinZ float64
	MaxX, MaxZ float64
}

// ScreenRect selects units whose projected position lies inside a pixel
// rectangle.
type ScreenRect struct {
	Min, Max geom.Vec2
}

func (r WorldRect) Contains(u *Unit, _ geom.Camera) bool {
	p := u.Position
	return p.X >= r.MinX && p.X <= r.MaxX && p.Z >= r.MinZ && p.Z <= r.MaxZ
}

func (r ScreenRect) Contains(u *Unit, cam geom.Camera) bool {
	s, ok := cam.Project(u.Position)
	if !ok {
		return false
	}
	return s.X >= r.Min.X && s.X <= r.Max.X && s.Y >= r.Min.Y && s.Y <= r.Max.Y
}

// SelectionQuery is the state of one drag gesture. It lives only between
// press and release.
type SelectionQuery struct {
	Origin        Pick
	Current       Pick
	OriginScreen  geom.Vec2
	CurrentScreen geom.Vec2
}

// Region resolves the gesture to one shape. A world rectangle is used when
// both ends of the drag met the ground; otherwise the screen rectangle.
func (q SelectionQuery) Region() Region {
	a, okA := q.Origin.(WorldHit)
	b, okB := q.Current.(WorldHit)
	if okA && okB {
		return WorldRect{
			MinX: math.Min(a.Point.X, b.Point.X),
			MinZ: math.Min(a.Point.Z, b.Point.Z),
			MaxX: math.Max(a.Point.X, b.Point.X),
			MaxZ: math.Max(a.Point.Z, b.Point.Z),
		}
	}
	return ScreenRect{
		Min: geom.Vec2{X: math.Min(q.OriginScreen.X, q.CurrentScreen.X), Y: math.Min(q.OriginScreen.Y, q.CurrentScreen.Y)},
		Max: geom.Vec2{X: math.Max(q.OriginScreen.X, q.CurrentScreen.X), Y: math.Max(q.OriginScreen.Y, q.CurrentScreen.Y)},
	}
}
