package geom

import "math"

// Quat is a rotation quaternion.
type Quat struct {
	X, Y, Z, W float64
}

// QuatIdentity is the no-op rotation.
var QuatIdentity = Quat{W: 1}

// QuatFromAxisAngle builds a rotation of angle radians about a unit axis.
func QuatFromAxisAngle(axis Vec3, angle float64) Quat {
	s := math.Sin(angle / 2)
	return Quat{axis.X * s, axis.Y * s, axis.Z * s, math.Cos(angle / 2)}
}

// QuatFromUnitVectors returns the shortest rotation taking unit vector from
// onto unit vector to.
func QuatFromUnitVectors(from, to Vec3) Quat {
	r := from.Dot(to) + 1
	if r < 1e-9 {
		// Opposite vectors: rotate half a turn about any perpendicular axis.
		var q Quat
		if math.Abs(from.X) > math.Abs(from.Z) {
			q = Quat{-from.Y, from.X, 0, 0}
		} else {
			q = Quat{0, -from.Z, from.Y, 0}
		}
		return q.Normalize()
	}
	c := from.Cross(to)
	return Quat{c.X, c.Y, c.Z, r}.Normalize()
}

// Mul composes rotations: the result applies r first, then q.
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
	}
}

func (q Quat) Dot(r Quat) float64 { return q.X*r.X + q.Y*r.Y + q.Z*r.Z + q.W*r.W }

func (q Quat) Len() float64 { return math.Sqrt(q.Dot(q)) }

// Normalize returns q scaled to unit length; a zero quaternion becomes identity.
func (q Quat) Normalize() Quat {
	l := q.Len()
	if l == 0 || math.IsNaN(l) {
		return QuatIdentity
	}
	return Quat{q.X / l, q.Y / l, q.Z / l, q.W / l}
}

// Rotate applies q to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// Slerp interpolates along the shortest arc from q to r.
func (q Quat) Slerp(r Quat, t float64) Quat {
	cos := q.Dot(r)
	if cos < 0 {
		r = Quat{-r.X, -r.Y, -r.Z, -r.W}
		cos = -cos
	}
	if cos > 0.9995 {
		return Quat{
			Lerp(q.X, r.X, t),
			Lerp(q.Y, r.Y, t),
			Lerp(q.Z, r.Z, t),
			Lerp(q.W, r.W, t),
		}.Normalize()
	}
	theta := math.Acos(cos)
	sin := math.Sin(theta)
	a := math.Sin((1-t)*theta) / sin
	b := math.Sin(t*theta) / sin
	return Quat{
		q.X*a + r.X*b,
		q.Y*a + r.Y*b,
		q.Z*a + r.Z*b,
		q.W*a + r.W*b,
	}
}

// IsFinite reports whether all components are real numbers.
func (q Quat) IsFinite() bool {
	return finite(q.X) && finite(q.Y) && finite(q.Z) && finite(q.W)
}
