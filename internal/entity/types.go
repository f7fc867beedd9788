// Package entity defines the mission domain model: the tactical units,
// static objects, and airborne weapons tracked by the stream engine, and
// the geometric records attached to them.
package entity

// Coalition identifies which side an entity or group belongs to.
type Coalition int32

const (
	CoalitionNeutral Coalition = 0
	CoalitionRed     Coalition = 1
	CoalitionBlue    Coalition = 2
)

// GroupCategory filters unit births and initial-sync group enumeration.
// Unspecified disables filtering.
type GroupCategory int32

const (
	GroupCategoryUnspecified GroupCategory = 0
	GroupCategoryAirplane    GroupCategory = 1
	GroupCategoryHelicopter  GroupCategory = 2
	GroupCategoryGround      GroupCategory = 3
	GroupCategoryShip        GroupCategory = 4
)

// Vector is a plain 3-component vector used for forward/right/up and velocity.
type Vector struct {
	X, Y, Z float64
}

// Position is the ownship position in lat/lon/alt plus the local planar
// projection (u, v) used for ballistic tracking.
type Position struct {
	Lat, Lon, Alt float64
	U, V          float64
}

// Orientation carries both the angular summary (heading/yaw/pitch/roll)
// and, when available, the raw basis vectors they were derived from.
type Orientation struct {
	Heading, Yaw, Pitch, Roll float64
	Forward, Right, Up        *Vector
}

// Velocity carries the angular/scalar summary and, when available, the
// raw velocity vector it was derived from.
type Velocity struct {
	Heading, Speed float64
	Velocity       *Vector
}

// Group describes the coalition-owned group a unit belongs to.
type Group struct {
	Name     string
	Category GroupCategory
}

// Unit is a tactical entity (aircraft, ground vehicle, ship) tracked by
// the units stream.
type Unit struct {
	ID             uint32
	Name           string
	Callsign       string
	Coalition      Coalition
	Type           string
	Group          *Group
	NumberInGroup  uint32
	PlayerName     *string
	InAir          bool
	Fuel           float64
	Position       *Position
	Orientation    *Orientation
	Velocity       *Velocity
}

// Static is a non-maneuvering object tracked alongside units when the
// subscription opts into static objects.
type Static struct {
	ID          uint32
	Name        string
	Coalition   Coalition
	Type        string
	Position    *Position
	Orientation *Orientation
	Velocity    *Velocity
}

// Weapon is an airborne munition tracked from the moment it is shot.
type Weapon struct {
	ID          uint32
	Type        string
	Position    *Position
	Orientation *Orientation
	Velocity    *Velocity
}
