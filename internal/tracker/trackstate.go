// Package tracker implements the per-entity adaptive-backoff state
// machine shared by units, static objects, and weapons: it holds the
// last observed snapshot, decides when an entity is due for a poll, and
// diffs a freshly fetched transform against the held snapshot via
// epsilon comparison.
package tracker

import "time"

// liveness is the bookkeeping every tracker kind needs regardless of
// whether it backs off: the last server-reported update time and the
// terminal "gone" flag reaped at the end of the tick it is set in.
type liveness struct {
	updateTime float64
	isGone     bool
}

// IsGone reports whether the tracker should be reaped at the end of the
// current tick.
func (l *liveness) IsGone() bool { return l.isGone }

// UpdateTime returns the simulator time of the most recent server
// response observed for this entity.
func (l *liveness) UpdateTime() float64 { return l.updateTime }

func (l *liveness) markGone() { l.isGone = true }

// trackState adds the adaptive back-off timer used by units and statics.
// Weapons never back off (they are never stationary, per spec) so
// WeaponTracker embeds liveness directly instead of trackState.
type trackState struct {
	liveness
	backoff     time.Duration
	lastChecked time.Time
	lastChanged time.Time
}

func newTrackState(now time.Time) trackState {
	return trackState{lastChecked: now, lastChanged: now}
}

// ShouldUpdate reports whether the entity is due for a poll: true once
// at least backoff has elapsed since it was last checked. A zero backoff
// means the tracker is always eligible.
func (s *trackState) ShouldUpdate(now time.Time) bool {
	return now.Sub(s.lastChecked) >= s.backoff
}

// Backoff exposes the current back-off duration, for tests.
func (s *trackState) Backoff() time.Duration { return s.backoff }

// recordCheck applies the post-update bookkeeping shared by units and
// statics: on change the back-off resets to zero and last-changed
// advances; otherwise the back-off grows (poll_rate on first idle tick,
// doubling with a ceiling thereafter).
func (s *trackState) recordCheck(now time.Time, changed bool, pollRate, maxBackoff time.Duration) {
	s.lastChecked = now
	if changed {
		s.lastChanged = now
		s.backoff = 0
		return
	}
	if s.backoff == 0 {
		s.backoff = pollRate
		return
	}
	s.backoff *= 2
	if s.backoff > maxBackoff {
		s.backoff = maxBackoff
	}
}
