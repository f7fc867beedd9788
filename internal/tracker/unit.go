package tracker

import (
	"context"
	"time"

	"dcsmission/streamcore/internal/entity"
	"dcsmission/streamcore/internal/epsilon"
	"dcsmission/streamcore/internal/rpc"
)

// UnitTracker holds the last known snapshot of a tactical unit and the
// back-off bookkeeping deciding how often it is worth polling.
type UnitTracker struct {
	trackState
	Unit entity.Unit
}

// NewUnit constructs a tracker for a freshly observed unit (initial sync
// or a Birth event), with back-off zeroed so it is polled on the very
// next tick.
func NewUnit(unit entity.Unit, now time.Time) *UnitTracker {
	return &UnitTracker{trackState: newTrackState(now), Unit: unit}
}

// Update fetches a fresh transform for the unit and diffs it against the
// held snapshot, mutating the snapshot in place on change. The returned
// bool reports whether anything changed. A NotFound status is returned
// to the caller unmodified - converting it into a Gone emission is the
// stream engine's responsibility (§4.2/§4.3 of the spec).
func (t *UnitTracker) Update(ctx context.Context, svc rpc.UnitTransformService, now time.Time, pollRate, maxBackoff time.Duration) (bool, error) {
	res, err := svc.GetTransform(ctx, t.Unit.Name)
	if err != nil {
		return false, err
	}

	changed := false
	t.updateTime = res.Time

	if t.Unit.Position != nil && res.Position != nil {
		if !epsilon.Position(epsilon.KindUnitOrStatic, *t.Unit.Position, *res.Position) {
			t.Unit.Position = res.Position
			changed = true
		}
	}
	if t.Unit.Orientation != nil && res.Orientation != nil {
		if !epsilon.Orientation(*t.Unit.Orientation, *res.Orientation) {
			t.Unit.Orientation = res.Orientation
			changed = true
		}
	}
	if t.Unit.Velocity != nil && res.Velocity != nil {
		if !epsilon.Velocity(*t.Unit.Velocity, *res.Velocity) {
			t.Unit.Velocity = res.Velocity
			changed = true
		}
	}
	if t.Unit.PlayerName != nil && res.PlayerName != nil && *t.Unit.PlayerName != *res.PlayerName {
		t.Unit.PlayerName = res.PlayerName
		changed = true
	}

	// in_air is passed through unconditionally and never contributes to
	// the changed determination.
	t.Unit.InAir = res.InAir

	t.recordCheck(now, changed, pollRate, maxBackoff)
	return changed, nil
}

// MarkGone flags the tracker as gone after a NotFound poll result.
func (t *UnitTracker) MarkGone() { t.markGone() }
