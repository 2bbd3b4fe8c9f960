// Package boat integrates a single hull riding a wave field.
package boat

import (
	"errors"
	"fmt"
	"math"

	"github.com/Garsondee/mini-arcade/internal/geom"
	"github.com/Garsondee/mini-arcade/internal/wave"
)

// Params tunes the hull. Bases are the share of the remaining gap left after
// one second of smoothing, so they must lie in (0, 1).
type Params struct {
	Accel            float64 `mapstructure:"accel"`      // m/s² at full throttle
	Drag             float64 `mapstructure:"drag"`       // quadratic drag coefficient
	MaxForward       float64 `mapstructure:"maxForward"` // m/s
	MaxReverse       float64 `mapstructure:"maxReverse"` // m/s, positive
	SteerBase        float64 `mapstructure:"steerBase"`  // rad/s at rest
	SteerSpeedFactor float64 `mapstructure:"steerSpeedFactor"`
	HullOffset       float64 `mapstructure:"hullOffset"` // waterline to body origin
	IntentBase       float64 `mapstructure:"intentBase"`
	AttitudeBase     float64 `mapstructure:"attitudeBase"`
	BankMax          float64 `mapstructure:"bankMax"` // radians at full steer and speed
}

// ErrInvalidParams is returned by Params.Validate.
var ErrInvalidParams = errors.New("boat: invalid params")

// Validate reports tuning the controller cannot integrate: non-finite values,
// a non-positive top speed or acceleration, negative drag, steering or
// reverse speed, and smoothing bases outside (0, 1).
func (p Params) Validate() error {
	named := []struct {
		name string
		v    float64
	}{
		{"accel", p.Accel}, {"drag", p.Drag}, {"maxForward", p.MaxForward},
		{"maxReverse", p.MaxReverse}, {"steerBase", p.SteerBase},
		{"steerSpeedFactor", p.SteerSpeedFactor}, {"hullOffset", p.HullOffset},
		{"intentBase", p.IntentBase}, {"attitudeBase", p.AttitudeBase}, {"bankMax", p.BankMax},
	}
	for _, f := range named {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s %v is not finite", ErrInvalidParams, f.name, f.v)
		}
	}
	switch {
	case p.Accel <= 0:
		return fmt.Errorf("%w: accel %v must be > 0", ErrInvalidParams, p.Accel)
	case p.MaxForward <= 0:
		return fmt.Errorf("%w: maxForward %v must be > 0", ErrInvalidParams, p.MaxForward)
	case p.MaxReverse < 0:
		return fmt.Errorf("%w: maxReverse %v must be >= 0", ErrInvalidParams, p.MaxReverse)
	case p.Drag < 0:
		return fmt.Errorf("%w: drag %v must be >= 0", ErrInvalidParams, p.Drag)
	case p.SteerBase < 0 || p.SteerSpeedFactor < 0:
		return fmt.Errorf("%w: steering rates must be >= 0", ErrInvalidParams)
	case p.BankMax < 0:
		return fmt.Errorf("%w: bankMax %v must be >= 0", ErrInvalidParams, p.BankMax)
	case p.IntentBase <= 0 || p.IntentBase >= 1:
		return fmt.Errorf("%w: intentBase %v outside (0,1)", ErrInvalidParams, p.IntentBase)
	case p.AttitudeBase <= 0 || p.AttitudeBase >= 1:
		return fmt.Errorf("%w: attitudeBase %v outside (0,1)", ErrInvalidParams, p.AttitudeBase)
	}
	return nil
}

// DefaultParams is a small motor launch.
func DefaultParams() Params {
	return Params{
		Accel:            6,
		Drag:             0.08,
		MaxForward:       12,
		MaxReverse:       4,
		SteerBase:        0.35,
		SteerSpeedFactor: 0.06,
		HullOffset:       0.25,
		IntentBase:       0.001,
		AttitudeBase:     0.01,
		BankMax:          0.18,
	}
}

// Body is the hull state. It is owned by exactly one Controller.
type Body struct {
	Position geom.Vec3
	Heading  float64 // radians; 0 faces +Z
	Speed    float64 // signed, along the heading
	Throttle float64 // smoothed intent in [-1, 1]
	Steer    float64 // smoothed intent in [-1, 1]

	// Orientation follows the wave normal and heading; Attitude adds banking.
	Orientation geom.Quat
	Attitude    geom.Quat
}

// Forward is the unit vector the hull points along.
func (b Body) Forward() geom.Vec3 {
	s, c := math.Sincos(b.Heading)
	return geom.Vec3{X: s, Z: c}
}

// String renders a one-line status, used by the shell's status copy.
func (b Body) String() string {
	return fmt.Sprintf("pos=(%.2f,%.2f,%.2f) heading=%.2f speed=%.2f throttle=%.2f steer=%.2f",
		b.Position.X, b.Position.Y, b.Position.Z, b.Heading, b.Speed, b.Throttle, b.Steer)
}

// Controller advances a Body one tick at a time.
type Controller struct {
	field  *wave.Field
	params Params
	body   Body
}

// NewController places a hull at start facing heading.
func NewController(field *wave.Field, p Params, start geom.Vec3, heading float64) *Controller {
	yaw := geom.QuatFromAxisAngle(geom.Up, heading)
	return &Controller{
		field:  field,
		params: p,
		body: Body{
			Position:    start,
			Heading:     heading,
			Orientation: yaw,
			Attitude:    yaw,
		},
	}
}

// Body returns a copy of the current hull state.
func (c *Controller) Body() Body { return c.body }

// Params returns the tuning in use.
func (c *Controller) Params() Params { return c.params }

// Tick advances the hull by dt seconds at simulation time t. Inputs outside
// [-1, 1] are clamped; NaN counts as no input.
func (c *Controller) Tick(dt, t, throttle, steer float64) {
	if dt <= 0 {
		return
	}
	p := &c.params
	b := &c.body

	// 1. Smooth intents toward the raw input.
	a := geom.Damp(p.IntentBase, dt)
	b.Throttle = geom.Lerp(b.Throttle, axis(throttle), a)
	b.Steer = geom.Lerp(b.Steer, axis(steer), a)

	// 2. Speed: thrust, quadratic drag, clamp.
	b.Speed += p.Accel * b.Throttle * dt
	b.Speed -= p.Drag * b.Speed * math.Abs(b.Speed) * dt
	b.Speed = geom.Clamp(b.Speed, -p.MaxReverse, p.MaxForward)

	// 3. Heading. Turning bites harder with way on.
	yawRate := p.SteerBase + p.SteerSpeedFactor*math.Abs(b.Speed)
	b.Heading -= b.Steer * yawRate * dt

	// 4. Position along the hull's forward axis.
	b.Position = b.Position.Add(b.Forward().Scale(b.Speed * dt))

	// 5. Ride the surface.
	s := c.field.Sample(b.Position.X, b.Position.Z, t)
	b.Position.Y = s.Height + p.HullOffset

	// 6. Attitude: yaw, then tilt up onto the wave normal, smoothed.
	yaw := geom.QuatFromAxisAngle(geom.Up, b.Heading)
	tilt := geom.QuatFromUnitVectors(geom.Up, surfaceUp(s.Normal))
	target := tilt.Mul(yaw)
	b.Orientation = b.Orientation.Slerp(target, geom.Damp(p.AttitudeBase, dt)).Normalize()
	if !b.Orientation.IsFinite() {
		b.Orientation = yaw
	}

	ratio := 0.0
	if p.MaxForward > 0 {
		ratio = geom.Clamp(b.Speed/p.MaxForward, -1, 1)
	}
	bank := geom.QuatFromAxisAngle(geom.Vec3{Z: 1}, b.Steer*ratio*p.BankMax)
	b.Attitude = b.Orientation.Mul(bank)
}

// axis clamps a raw control value into [-1, 1].
func axis(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return geom.Clamp(v, -1, 1)
}

// surfaceUp falls back to world up for a degenerate normal.
func surfaceUp(n geom.Vec3) geom.Vec3 {
	if !n.IsFinite() {
		return geom.Up
	}
	l := n.Len()
	if l == 0 {
		return geom.Up
	}
	return n.Scale(1 / l)
}
