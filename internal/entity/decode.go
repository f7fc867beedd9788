package entity

import "math"

// RawTransform is the intermediate bundle upstream responses carry before
// heading/pitch/roll and velocity heading/speed are derived from the
// forward/right/up/velocity vectors. Missing fields default to their zero
// value, matching the upstream's permissive JSON decoding.
//
// This derivation is supplemental: the stream engine itself never calls
// DecodeTransform (intermediate-to-domain conversion is a collaborator
// concern, out of scope for the core per the Non-goals). It is exercised
// by the in-memory reference RPC implementation under internal/rpc/fake.
type RawTransform struct {
	Position      Position
	PositionNorth Vector
	Forward       Vector
	Right         Vector
	Up            Vector
	Velocity      Vector
	PlayerName    string
	InAir         bool
	Fuel          float64
}

// Transform is the fully-derived domain record decoded from a RawTransform.
type Transform struct {
	Position    Position
	Orientation Orientation
	Velocity    Velocity
	PlayerName  string
	InAir       bool
	Fuel        float64
}

// DecodeTransform derives heading/yaw/pitch/roll and velocity
// heading/speed from the raw forward/right/up/velocity vectors, the way
// the upstream simulator bridge does before handing entities to the
// stream engine.
func DecodeTransform(raw RawTransform) Transform {
	projectionError := math.Atan2(raw.PositionNorth.Z-raw.Position.U, raw.PositionNorth.X-raw.Position.V)
	headingRad := math.Atan2(raw.Forward.Z, raw.Forward.X)

	forward := raw.Forward
	right := raw.Right
	up := raw.Up

	orientation := Orientation{
		Heading: normalizeDegrees(radToDeg(headingRad)),
		Yaw:     radToDeg(headingRad - projectionError),
		Roll:    -radToDeg(math.Asin(right.Y)),
		Pitch:   radToDeg(math.Asin(forward.Y)),
		Forward: &forward,
		Right:   &right,
		Up:      &up,
	}

	velocityVector := raw.Velocity
	velocity := Velocity{
		Heading:  normalizeDegrees(radToDeg(math.Atan2(raw.Velocity.Z, raw.Velocity.X))),
		Speed:    math.Sqrt(raw.Velocity.X*raw.Velocity.X + raw.Velocity.Z*raw.Velocity.Z),
		Velocity: &velocityVector,
	}

	return Transform{
		Position:    raw.Position,
		Orientation: orientation,
		Velocity:    velocity,
		PlayerName:  raw.PlayerName,
		InAir:       raw.InAir,
		Fuel:        raw.Fuel,
	}
}

func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// normalizeDegrees folds a heading into [0, 360).
func normalizeDegrees(deg float64) float64 {
	if deg < 0 {
		return deg + 360
	}
	return deg
}
