package stream

import (
	"time"

	"dcsmission/streamcore/internal/entity"
)

const (
	defaultUnitPollRate    = 5 * time.Second
	defaultMaxBackoff      = 30 * time.Second
	defaultWeaponPollRate  = 1000 * time.Millisecond
)

// UnitsOptions configures a StreamUnits subscription. Zero values select
// the documented defaults.
type UnitsOptions struct {
	// PollRate is the tick cadence for polling tracked units/statics.
	// Defaults to 5s.
	PollRate time.Duration
	// MaxBackoff bounds the adaptive back-off. Defaults to 30s and is
	// always clamped up to at least the effective poll rate.
	MaxBackoff time.Duration
	// Category restricts which unit births are tracked. Unspecified
	// accepts all categories and is also applied as the group filter
	// for the initial sync.
	Category entity.GroupCategory
	// IncludeStaticObjects opts the subscription into tracking static
	// objects alongside units.
	IncludeStaticObjects bool
}

// withDefaults returns a copy of opts with documented defaults applied
// and max_backoff clamped up to at least the effective poll rate.
func (o UnitsOptions) withDefaults() UnitsOptions {
	out := o
	if out.PollRate <= 0 {
		out.PollRate = defaultUnitPollRate
	}
	if out.MaxBackoff <= 0 {
		out.MaxBackoff = defaultMaxBackoff
	}
	if out.MaxBackoff < out.PollRate {
		out.MaxBackoff = out.PollRate
	}
	return out
}

// WeaponsOptions configures a StreamWeapons subscription.
type WeaponsOptions struct {
	// PollRate is the tick cadence for polling tracked weapons.
	// Defaults to 1000ms.
	PollRate time.Duration
}

func (o WeaponsOptions) withDefaults() WeaponsOptions {
	out := o
	if out.PollRate <= 0 {
		out.PollRate = defaultWeaponPollRate
	}
	return out
}
