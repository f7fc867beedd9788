// Package rpc defines the upstream collaborator contracts the stream
// engine consumes: the mission event feed, the coalition/group/unit
// enumeration calls used for the initial sync, and the per-entity
// transform lookups the tracker table polls on every tick.
//
// None of these are implemented here - the RPC transport dispatch, the
// protobuf wire codec, and the reflection-style bridge into the
// simulator are deliberately out of scope for the stream engine. A
// minimal in-memory implementation used by tests and demo wiring lives
// under internal/rpc/fake.
package rpc

import (
	"context"

	"dcsmission/streamcore/internal/entity"
)

// MissionRPC exposes the mission-wide collaborators needed for the
// initial sync and the event feed shared by every subscription kind.
type MissionRPC interface {
	// Events returns the infinite mission event feed. The returned
	// channel is closed when the upstream stream ends; the caller must
	// treat that as subscription termination.
	Events(ctx context.Context) (<-chan entity.Event, error)

	// GetGroups lists the groups for a coalition, optionally filtered by
	// category (GroupCategoryUnspecified accepts all categories).
	GetGroups(ctx context.Context, coalition entity.Coalition, category entity.GroupCategory) ([]entity.Group, error)

	// GetUnits lists units belonging to a named group.
	GetUnits(ctx context.Context, groupName string, activeOnly bool) ([]entity.Unit, error)

	// GetStaticObjects lists static objects owned by a coalition.
	GetStaticObjects(ctx context.Context, coalition entity.Coalition) ([]entity.Static, error)
}

// UnitTransform is the per-entity polling response for a unit.
type UnitTransform struct {
	Time        float64
	Position    *entity.Position
	Orientation *entity.Orientation
	Velocity    *entity.Velocity
	PlayerName  *string
	InAir       bool
}

// StaticTransform is the per-entity polling response for a static object.
type StaticTransform struct {
	Time        float64
	Position    *entity.Position
	Orientation *entity.Orientation
	Velocity    *entity.Velocity
}

// WeaponTransform is the per-entity polling response for a weapon.
type WeaponTransform struct {
	Time        float64
	Position    *entity.Position
	Orientation *entity.Orientation
	Velocity    *entity.Velocity
}

// UnitTransformService polls fresh transforms for units and statics. A
// NotFound status indicates the entity no longer exists in the mission.
type UnitTransformService interface {
	GetTransform(ctx context.Context, name string) (UnitTransform, error)
	GetStaticTransform(ctx context.Context, name string) (StaticTransform, error)
}

// WeaponTransformService polls fresh transforms for weapons.
type WeaponTransformService interface {
	GetTransform(ctx context.Context, id uint32) (WeaponTransform, error)
}

// ShutdownSignal exposes a process-wide shutdown notification. Signal
// returns a channel that is closed once, when the process begins
// shutting down; it never sends a value.
type ShutdownSignal interface {
	Signal() <-chan struct{}
}
