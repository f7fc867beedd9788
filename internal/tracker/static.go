package tracker

import (
	"context"
	"time"

	"dcsmission/streamcore/internal/entity"
	"dcsmission/streamcore/internal/epsilon"
	"dcsmission/streamcore/internal/rpc"
)

// StaticTracker holds the last known snapshot of a static object.
type StaticTracker struct {
	trackState
	Static entity.Static
}

// NewStatic constructs a tracker for a freshly observed static object.
func NewStatic(static entity.Static, now time.Time) *StaticTracker {
	return &StaticTracker{trackState: newTrackState(now), Static: static}
}

// Update fetches a fresh transform for the static object and diffs it
// against the held snapshot. See UnitTracker.Update for the shared
// semantics.
func (t *StaticTracker) Update(ctx context.Context, svc rpc.UnitTransformService, now time.Time, pollRate, maxBackoff time.Duration) (bool, error) {
	res, err := svc.GetStaticTransform(ctx, t.Static.Name)
	if err != nil {
		return false, err
	}

	changed := false
	t.updateTime = res.Time

	if t.Static.Position != nil && res.Position != nil {
		if !epsilon.Position(epsilon.KindUnitOrStatic, *t.Static.Position, *res.Position) {
			t.Static.Position = res.Position
			changed = true
		}
	}
	if t.Static.Orientation != nil && res.Orientation != nil {
		if !epsilon.Orientation(*t.Static.Orientation, *res.Orientation) {
			t.Static.Orientation = res.Orientation
			changed = true
		}
	}
	if t.Static.Velocity != nil && res.Velocity != nil {
		if !epsilon.Velocity(*t.Static.Velocity, *res.Velocity) {
			t.Static.Velocity = res.Velocity
			changed = true
		}
	}

	t.recordCheck(now, changed, pollRate, maxBackoff)
	return changed, nil
}

// MarkGone flags the tracker as gone after a NotFound poll result.
func (t *StaticTracker) MarkGone() { t.markGone() }
