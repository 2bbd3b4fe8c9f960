package geom

import "math"

// Camera is a perspective look-at camera over a viewport of Width x Height
// pixels. Screen origin is the top-left corner.
type Camera struct {
	Eye    Vec3
	Target Vec3
	UpHint Vec3    // defaults to world up when zero
	FovY   float64 // vertical field of view in radians
	Width  float64
	Height float64
	Near   float64
}

// Ray is a half-line from Origin along unit Dir.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// basis returns the camera's forward, right and up unit vectors.
func (c Camera) basis() (fwd, right, up Vec3) {
	fwd = c.Target.Sub(c.Eye).Normalize()
	hint := c.UpHint
	if hint == Zero3 {
		hint = Up
	}
	right = fwd.Cross(hint).Normalize()
	if right == Zero3 {
		// Looking straight along the hint; pick any horizontal right vector.
		right = Vec3{1, 0, 0}
	}
	up = right.Cross(fwd)
	return fwd, right, up
}

func (c Camera) focal() float64 {
	fov := c.FovY
	if fov <= 0 {
		fov = math.Pi / 3
	}
	return 1 / math.Tan(fov/2)
}

func (c Camera) aspect() float64 {
	if c.Height == 0 {
		return 1
	}
	return c.Width / c.Height
}

// Project maps a world point to screen pixels. ok is false for points behind
// the near plane.
func (c Camera) Project(p Vec3) (s Vec2, ok bool) {
	fwd, right, up := c.basis()
	d := p.Sub(c.Eye)
	z := d.Dot(fwd)
	near := c.Near
	if near <= 0 {
		near = 0.01
	}
	if z < near {
		return Vec2{}, false
	}
	f := c.focal()
	nx := d.Dot(right) / z * f / c.aspect()
	ny := d.Dot(up) / z * f
	return Vec2{
		X: (nx + 1) / 2 * c.Width,
		Y: (1 - ny) / 2 * c.Height,
	}, true
}

// Ray returns the world-space ray through screen pixel s.
func (c Camera) Ray(s Vec2) Ray {
	fwd, right, up := c.basis()
	f := c.focal()
	nx := 2*s.X/c.Width - 1
	ny := 1 - 2*s.Y/c.Height
	dir := fwd.Add(right.Scale(nx * c.aspect() / f)).Add(up.Scale(ny / f))
	return Ray{Origin: c.Eye, Dir: dir.Normalize()}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) Vec3 { return r.Origin.Add(r.Dir.Scale(t)) }

// IntersectPlaneY intersects the ray with the horizontal plane y = h.
func (r Ray) IntersectPlaneY(h float64) (Vec3, bool) {
	if math.Abs(r.Dir.Y) < 1e-9 {
		return Vec3{}, false
	}
	t := (h - r.Origin.Y) / r.Dir.Y
	if t < 0 {
		return Vec3{}, false
	}
	return r.At(t), true
}

// IntersectSphere returns the nearest non-negative hit distance against a
// sphere.
func (r Ray) IntersectSphere(center Vec3, radius float64) (float64, bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Dir)
	c := oc.LenSq() - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}
