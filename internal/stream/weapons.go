package stream

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"dcsmission/streamcore/internal/entity"
	"dcsmission/streamcore/internal/rpc"
	"dcsmission/streamcore/internal/tracker"
)

// StreamWeapons runs the weapons subscription to completion. Unlike
// StreamUnits it performs no initial sync: weapons only enter tracking
// the moment a Shot event names them, and every tracked weapon is polled
// on every tick with no back-off gate (weapons are never stationary).
func StreamWeapons(ctx context.Context, opts WeaponsOptions, client WeaponsClient, tx chan<- WeaponsItem) error {
	opts = opts.withDefaults()

	events, err := client.Events(ctx)
	if err != nil {
		return err
	}

	weapons := make(map[uint32]*tracker.WeaponTracker)

	ticker := time.NewTicker(opts.PollRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := handleWeaponsEvent(ctx, ev, weapons, tx); err != nil {
				return err
			}
		case <-ticker.C:
			if err := tickWeapons(ctx, client, weapons, tx); err != nil {
				return err
			}
		}
	}
}

func handleWeaponsEvent(ctx context.Context, ev entity.Event, weapons map[uint32]*tracker.WeaponTracker, tx chan<- WeaponsItem) error {
	if ev.Kind != entity.EventShot || ev.Weapon == nil {
		return nil
	}
	weapon := *ev.Weapon
	weapons[weapon.ID] = tracker.NewWeapon(weapon)
	return sendWeapons(ctx, tx, WeaponsItem{Response: WeaponsResponse{
		Time:   ev.Time,
		Kind:   WeaponsUpdateWeapon,
		Weapon: &weapon,
	}})
}

func tickWeapons(ctx context.Context, client WeaponsClient, weapons map[uint32]*tracker.WeaponTracker, tx chan<- WeaponsItem) error {
	g, gctx := errgroup.WithContext(ctx)

	for id, tr := range weapons {
		id, tr := id, tr
		g.Go(func() error {
			return updateWeapon(gctx, client, id, tr, tx)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for id, tr := range weapons {
		if tr.IsGone() {
			delete(weapons, id)
		}
	}
	return nil
}

func updateWeapon(ctx context.Context, client WeaponsClient, id uint32, tr *tracker.WeaponTracker, tx chan<- WeaponsItem) error {
	changed, err := tr.Update(ctx, client)
	if rpc.IsNotFound(err) {
		tr.MarkGone()
		return sendWeapons(ctx, tx, WeaponsItem{Response: WeaponsResponse{
			Time: tr.UpdateTime(),
			Kind: WeaponsUpdateGone,
			Gone: &WeaponGone{ID: id},
		}})
	}
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	return sendWeapons(ctx, tx, WeaponsItem{Response: WeaponsResponse{
		Time:   tr.UpdateTime(),
		Kind:   WeaponsUpdateWeapon,
		Weapon: &tr.Weapon,
	}})
}

func sendWeapons(ctx context.Context, tx chan<- WeaponsItem, item WeaponsItem) error {
	select {
	case tx <- item:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
