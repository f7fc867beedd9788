package tracker

import (
	"context"

	"dcsmission/streamcore/internal/entity"
	"dcsmission/streamcore/internal/epsilon"
	"dcsmission/streamcore/internal/rpc"
)

// WeaponTracker holds the last known snapshot of an airborne weapon.
// Weapons never back off - they are never stationary like ground units -
// so WeaponTracker embeds liveness only and has no ShouldUpdate gate;
// the engine polls every tracked weapon on every tick.
type WeaponTracker struct {
	liveness
	Weapon entity.Weapon
}

// NewWeapon constructs a tracker for a weapon observed via a Shot event.
func NewWeapon(weapon entity.Weapon) *WeaponTracker {
	return &WeaponTracker{Weapon: weapon}
}

// Update fetches a fresh transform for the weapon and diffs it against
// the held snapshot.
func (t *WeaponTracker) Update(ctx context.Context, svc rpc.WeaponTransformService) (bool, error) {
	res, err := svc.GetTransform(ctx, t.Weapon.ID)
	if err != nil {
		return false, err
	}

	changed := false
	t.updateTime = res.Time

	if t.Weapon.Position != nil && res.Position != nil {
		if !epsilon.Position(epsilon.KindWeapon, *t.Weapon.Position, *res.Position) {
			t.Weapon.Position = res.Position
			changed = true
		}
	}
	if t.Weapon.Orientation != nil && res.Orientation != nil {
		if !epsilon.Orientation(*t.Weapon.Orientation, *res.Orientation) {
			t.Weapon.Orientation = res.Orientation
			changed = true
		}
	}
	if t.Weapon.Velocity != nil && res.Velocity != nil {
		if !epsilon.Velocity(*t.Weapon.Velocity, *res.Velocity) {
			t.Weapon.Velocity = res.Velocity
			changed = true
		}
	}

	return changed, nil
}

// MarkGone flags the tracker as gone after a NotFound poll result.
func (t *WeaponTracker) MarkGone() { t.markGone() }
