// Package geom holds the small amount of vector, rotation and camera math the
// arcade games share. Y is up; the ground is the XZ plane.
package geom

import "math"

// Vec2 is a screen-space or planar point.
type Vec2 struct {
	X, Y float64
}

func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }

func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }

func (a Vec2) Scale(s float64) Vec2 { return Vec2{a.X * s, a.Y * s} }

func (a Vec2) Len() float64 { return math.Hypot(a.X, a.Y) }

// Dist returns the euclidean distance between two points.
func (a Vec2) Dist(b Vec2) float64 { return a.Sub(b).Len() }

// Vec3 is a world-space point or direction.
type Vec3 struct {
	X, Y, Z float64
}

var (
	Zero3 = Vec3{}
	Up    = Vec3{0, 1, 0}
)

func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }

func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }

func (a Vec3) Scale(s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }

func (a Vec3) Dot(b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func (a Vec3) LenSq() float64 { return a.Dot(a) }

func (a Vec3) Len() float64 { return math.Sqrt(a.LenSq()) }

// Normalize returns a unit vector in the direction of a, or the zero vector
// when a has no length.
func (a Vec3) Normalize() Vec3 {
	l := a.Len()
	if l == 0 {
		return Vec3{}
	}
	return a.Scale(1 / l)
}

// Flat drops the vertical component.
func (a Vec3) Flat() Vec3 { return Vec3{a.X, 0, a.Z} }

// FlatDist is the distance between two points projected onto the ground plane.
func (a Vec3) FlatDist(b Vec3) float64 {
	return math.Hypot(a.X-b.X, a.Z-b.Z)
}

// Lerp interpolates linearly from a to b.
func (a Vec3) Lerp(b Vec3, t float64) Vec3 {
	return a.Add(b.Sub(a).Scale(t))
}

// IsFinite reports whether no component is NaN or infinite.
func (a Vec3) IsFinite() bool {
	return finite(a.X) && finite(a.Y) && finite(a.Z)
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// Lerp interpolates between two scalars.
func Lerp(a, b, t float64) float64 { return a + (b-a)*t }

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Damp returns the interpolation factor that moves a value toward its target
// by the same fraction per unit time regardless of how time is sliced:
// applying Damp(k, a) then Damp(k, b) equals Damp(k, a+b). base is the share
// of the gap left after one second and must lie in (0, 1).
func Damp(base, dt float64) float64 {
	return 1 - math.Pow(base, dt)
}
