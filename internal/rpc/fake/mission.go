// Package fake provides an in-memory MissionRPC/UnitTransformService/
// WeaponTransformService implementation for tests and demo wiring. It is
// not part of the stream engine itself; production deployments wire the
// engine against the real simulator bridge.
package fake

import (
	"context"
	"sync"

	"dcsmission/streamcore/internal/entity"
	"dcsmission/streamcore/internal/rpc"
)

type unitRecord struct {
	unit entity.Unit
	raw  entity.RawTransform
	dead bool
}

type staticRecord struct {
	static entity.Static
	raw    entity.RawTransform
	dead   bool
}

type weaponRecord struct {
	weapon entity.Weapon
	raw    entity.RawTransform
	dead   bool
}

// Mission is a thread-safe in-memory mission world. Mutating methods
// (Spawn*, Kill*, Shoot, Move*) are intended to be called from test code
// or a demo driver loop; GetTransform-family methods decode the held raw
// transform through entity.DecodeTransform on every call, the way the
// real simulator bridge would.
type Mission struct {
	mu sync.RWMutex

	units   map[string]*unitRecord
	statics map[string]*staticRecord
	weapons map[uint32]*weaponRecord

	events chan entity.Event
}

// NewMission constructs an empty mission world with a buffered event feed.
func NewMission() *Mission {
	return &Mission{
		units:   make(map[string]*unitRecord),
		statics: make(map[string]*staticRecord),
		weapons: make(map[uint32]*weaponRecord),
		events:  make(chan entity.Event, 64),
	}
}

// Events returns the mission's event feed. Closing the Mission via Close
// closes the returned channel.
func (m *Mission) Events(ctx context.Context) (<-chan entity.Event, error) {
	return m.events, nil
}

// Close signals end of mission by closing the event feed.
func (m *Mission) Close() {
	close(m.events)
}

// GetGroups lists the distinct groups currently held by units belonging
// to coalition, filtered by category when category is not Unspecified.
func (m *Mission) GetGroups(ctx context.Context, coalition entity.Coalition, category entity.GroupCategory) ([]entity.Group, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]entity.Group)
	for _, rec := range m.units {
		if rec.dead || rec.unit.Coalition != coalition || rec.unit.Group == nil {
			continue
		}
		if category != entity.GroupCategoryUnspecified && rec.unit.Group.Category != category {
			continue
		}
		seen[rec.unit.Group.Name] = *rec.unit.Group
	}

	groups := make([]entity.Group, 0, len(seen))
	for _, g := range seen {
		groups = append(groups, g)
	}
	return groups, nil
}

// GetUnits lists units belonging to groupName. activeOnly excludes
// units that have already been killed.
func (m *Mission) GetUnits(ctx context.Context, groupName string, activeOnly bool) ([]entity.Unit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var units []entity.Unit
	for _, rec := range m.units {
		if rec.unit.Group == nil || rec.unit.Group.Name != groupName {
			continue
		}
		if activeOnly && rec.dead {
			continue
		}
		units = append(units, rec.unit)
	}
	return units, nil
}

// GetStaticObjects lists live static objects owned by coalition.
func (m *Mission) GetStaticObjects(ctx context.Context, coalition entity.Coalition) ([]entity.Static, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var statics []entity.Static
	for _, rec := range m.statics {
		if rec.dead || rec.static.Coalition != coalition {
			continue
		}
		statics = append(statics, rec.static)
	}
	return statics, nil
}

// GetTransform decodes and returns the current transform for a unit. A
// killed or unknown unit is reported as NotFound.
func (m *Mission) GetTransform(ctx context.Context, name string) (rpc.UnitTransform, error) {
	m.mu.RLock()
	rec, ok := m.units[name]
	m.mu.RUnlock()
	if !ok || rec.dead {
		return rpc.UnitTransform{}, rpc.NotFound("unit %q not found", name)
	}

	decoded := entity.DecodeTransform(rec.raw)
	return rpc.UnitTransform{
		Time:        0,
		Position:    &decoded.Position,
		Orientation: &decoded.Orientation,
		Velocity:    &decoded.Velocity,
		PlayerName:  &decoded.PlayerName,
		InAir:       decoded.InAir,
	}, nil
}

// GetStaticTransform decodes and returns the current transform for a
// static object.
func (m *Mission) GetStaticTransform(ctx context.Context, name string) (rpc.StaticTransform, error) {
	m.mu.RLock()
	rec, ok := m.statics[name]
	m.mu.RUnlock()
	if !ok || rec.dead {
		return rpc.StaticTransform{}, rpc.NotFound("static %q not found", name)
	}

	decoded := entity.DecodeTransform(rec.raw)
	return rpc.StaticTransform{
		Time:        0,
		Position:    &decoded.Position,
		Orientation: &decoded.Orientation,
		Velocity:    &decoded.Velocity,
	}, nil
}

// weaponTransform decodes and returns the current transform for a weapon.
// It backs WeaponTransforms.GetTransform rather than being a GetTransform
// method on Mission, because Mission already has a GetTransform taking a
// unit name and Go has no method overloading; callers that need a
// rpc.WeaponTransformService should wrap Mission with WeaponTransforms.
func (m *Mission) weaponTransform(ctx context.Context, id uint32) (rpc.WeaponTransform, error) {
	m.mu.RLock()
	rec, ok := m.weapons[id]
	m.mu.RUnlock()
	if !ok || rec.dead {
		return rpc.WeaponTransform{}, rpc.NotFound("weapon %d not found", id)
	}

	decoded := entity.DecodeTransform(rec.raw)
	return rpc.WeaponTransform{
		Time:        0,
		Position:    &decoded.Position,
		Orientation: &decoded.Orientation,
		Velocity:    &decoded.Velocity,
	}, nil
}

// WeaponTransforms adapts a Mission to rpc.WeaponTransformService.
type WeaponTransforms struct{ *Mission }

// GetTransform implements rpc.WeaponTransformService.
func (w WeaponTransforms) GetTransform(ctx context.Context, id uint32) (rpc.WeaponTransform, error) {
	return w.weaponTransform(ctx, id)
}

// SpawnUnit adds or replaces a live unit and the raw transform it decodes
// from on every subsequent poll.
func (m *Mission) SpawnUnit(unit entity.Unit, raw entity.RawTransform) {
	m.mu.Lock()
	m.units[unit.Name] = &unitRecord{unit: unit, raw: raw}
	m.mu.Unlock()
	m.events <- entity.Event{Kind: entity.EventBirthUnit, Unit: &unit}
}

// MoveUnit updates the raw transform a live unit decodes from; it takes
// effect on the next poll without emitting an event.
func (m *Mission) MoveUnit(name string, raw entity.RawTransform) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec, ok := m.units[name]; ok {
		rec.raw = raw
	}
}

// KillUnit marks a unit dead (subsequent polls report NotFound) and
// emits the matching Dead event.
func (m *Mission) KillUnit(name string) {
	m.mu.Lock()
	rec, ok := m.units[name]
	if ok {
		rec.dead = true
	}
	m.mu.Unlock()
	if ok {
		unit := rec.unit
		m.events <- entity.Event{Kind: entity.EventDeadUnit, Unit: &unit}
	}
}

// SpawnStatic adds or replaces a live static object.
func (m *Mission) SpawnStatic(static entity.Static, raw entity.RawTransform) {
	m.mu.Lock()
	m.statics[static.Name] = &staticRecord{static: static, raw: raw}
	m.mu.Unlock()
	m.events <- entity.Event{Kind: entity.EventBirthStatic, Static: &static}
}

// KillStatic marks a static object dead and emits the matching event.
func (m *Mission) KillStatic(name string) {
	m.mu.Lock()
	rec, ok := m.statics[name]
	if ok {
		rec.dead = true
	}
	m.mu.Unlock()
	if ok {
		static := rec.static
		m.events <- entity.Event{Kind: entity.EventDeadStatic, Static: &static}
	}
}

// Shoot introduces a weapon into the mission via a Shot event, the only
// way a weapon becomes trackable.
func (m *Mission) Shoot(weapon entity.Weapon, raw entity.RawTransform) {
	m.mu.Lock()
	m.weapons[weapon.ID] = &weaponRecord{weapon: weapon, raw: raw}
	m.mu.Unlock()
	m.events <- entity.Event{Kind: entity.EventShot, Weapon: &weapon}
}

// MoveWeapon updates the raw transform a tracked weapon decodes from.
func (m *Mission) MoveWeapon(id uint32, raw entity.RawTransform) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec, ok := m.weapons[id]; ok {
		rec.raw = raw
	}
}

// ImpactWeapon marks a weapon dead; it is reported NotFound on the next
// poll, which the stream engine reconciles as a Gone message.
func (m *Mission) ImpactWeapon(id uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec, ok := m.weapons[id]; ok {
		rec.dead = true
	}
}
