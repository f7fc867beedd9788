package stream

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"dcsmission/streamcore/internal/entity"
	"dcsmission/streamcore/internal/rpc"
	"dcsmission/streamcore/internal/tracker"
)

var allCoalitions = []entity.Coalition{entity.CoalitionNeutral, entity.CoalitionRed, entity.CoalitionBlue}

// StreamUnits runs the units/statics subscription to completion. It
// performs the initial full sync, emits one response per initially
// observed entity, then multiplexes the mission event feed against a
// poll ticker until the context is cancelled or the event feed closes.
//
// tx is the caller-owned bounded outbound channel; StreamUnits never
// closes it. Mirrors the select-loop shape of stream_units in the
// original mission-service implementation.
func StreamUnits(ctx context.Context, opts UnitsOptions, client UnitsClient, tx chan<- UnitsItem) error {
	opts = opts.withDefaults()

	units, statics, err := initialSync(ctx, opts, client)
	if err != nil {
		return err
	}

	for _, u := range units {
		if err := sendUnits(ctx, tx, UnitsItem{Response: UnitsResponse{
			Time: u.UpdateTime(),
			Kind: UnitsUpdateUnit,
			Unit: &u.Unit,
		}}); err != nil {
			return err
		}
	}
	for _, s := range statics {
		if err := sendUnits(ctx, tx, UnitsItem{Response: UnitsResponse{
			Time:   s.UpdateTime(),
			Kind:   UnitsUpdateStatic,
			Static: &s.Static,
		}}); err != nil {
			return err
		}
	}

	events, err := client.Events(ctx)
	if err != nil {
		return err
	}

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
			if err := handleUnitsEvent(ctx, opts, ev, units, statics, tx); err != nil {
				return err
			}
		case now := <-ticker.C:
			if err := tickUnits(ctx, opts, client, now, units, statics, tx); err != nil {
				return err
			}
		}
	}
}

func initialSync(ctx context.Context, opts UnitsOptions, client UnitsClient) (map[string]*tracker.UnitTracker, map[string]*tracker.StaticTracker, error) {
	now := time.Now()

	groupsByCoalition := make([][]entity.Group, len(allCoalitions))
	g, gctx := errgroup.WithContext(ctx)
	for i, coalition := range allCoalitions {
		i, coalition := i, coalition
		g.Go(func() error {
			groups, err := client.GetGroups(gctx, coalition, opts.Category)
			if err != nil {
				return err
			}
			groupsByCoalition[i] = groups
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var allGroups []entity.Group
	for _, groups := range groupsByCoalition {
		allGroups = append(allGroups, groups...)
	}

	unitsByGroup := make([][]entity.Unit, len(allGroups))
	g, gctx = errgroup.WithContext(ctx)
	for i, group := range allGroups {
		i, group := i, group
		g.Go(func() error {
			units, err := client.GetUnits(gctx, group.Name, true)
			if err != nil {
				return err
			}
			unitsByGroup[i] = units
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	units := make(map[string]*tracker.UnitTracker)
	for _, group := range unitsByGroup {
		for _, u := range group {
			unit := u
			units[unit.Name] = tracker.NewUnit(unit, now)
		}
	}

	statics := make(map[string]*tracker.StaticTracker)
	if opts.IncludeStaticObjects {
		staticsByCoalition := make([][]entity.Static, len(allCoalitions))
		g, gctx = errgroup.WithContext(ctx)
		for i, coalition := range allCoalitions {
			i, coalition := i, coalition
			g.Go(func() error {
				list, err := client.GetStaticObjects(gctx, coalition)
				if err != nil {
					return err
				}
				staticsByCoalition[i] = list
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, nil, err
		}
		for _, list := range staticsByCoalition {
			for _, s := range list {
				static := s
				statics[static.Name] = tracker.NewStatic(static, now)
			}
		}
	}

	return units, statics, nil
}

func handleUnitsEvent(ctx context.Context, opts UnitsOptions, ev entity.Event, units map[string]*tracker.UnitTracker, statics map[string]*tracker.StaticTracker, tx chan<- UnitsItem) error {
	now := time.Now()

	switch ev.Kind {
	case entity.EventBirthUnit:
		if ev.Unit == nil {
			return nil
		}
		unitCategory := entity.GroupCategoryUnspecified
		if ev.Unit.Group != nil {
			unitCategory = ev.Unit.Group.Category
		}
		if opts.Category != entity.GroupCategoryUnspecified && opts.Category != unitCategory {
			return nil
		}
		unit := *ev.Unit
		units[unit.Name] = tracker.NewUnit(unit, now)
		return sendUnits(ctx, tx, UnitsItem{Response: UnitsResponse{Time: ev.Time, Kind: UnitsUpdateUnit, Unit: &unit}})

	case entity.EventDeadUnit:
		if ev.Unit == nil {
			return nil
		}
		if _, ok := units[ev.Unit.Name]; !ok {
			return nil
		}
		delete(units, ev.Unit.Name)
		return sendUnits(ctx, tx, UnitsItem{Response: UnitsResponse{
			Time: ev.Time,
			Kind: UnitsUpdateGone,
			Gone: &Gone{ID: ev.Unit.ID, Name: ev.Unit.Name},
		}})

	case entity.EventBirthStatic:
		if !opts.IncludeStaticObjects || ev.Static == nil {
			return nil
		}
		static := *ev.Static
		statics[static.Name] = tracker.NewStatic(static, now)
		return sendUnits(ctx, tx, UnitsItem{Response: UnitsResponse{Time: ev.Time, Kind: UnitsUpdateStatic, Static: &static}})

	case entity.EventDeadStatic:
		if !opts.IncludeStaticObjects || ev.Static == nil {
			return nil
		}
		if _, ok := statics[ev.Static.Name]; !ok {
			return nil
		}
		delete(statics, ev.Static.Name)
		return sendUnits(ctx, tx, UnitsItem{Response: UnitsResponse{
			Time: ev.Time,
			Kind: UnitsUpdateGone,
			Gone: &Gone{ID: ev.Static.ID, Name: ev.Static.Name},
		}})
	}

	return nil
}

func tickUnits(ctx context.Context, opts UnitsOptions, client UnitsClient, now time.Time, units map[string]*tracker.UnitTracker, statics map[string]*tracker.StaticTracker, tx chan<- UnitsItem) error {
	g, gctx := errgroup.WithContext(ctx)

	for name, tr := range units {
		name, tr := name, tr
		if !tr.ShouldUpdate(now) {
			continue
		}
		g.Go(func() error {
			return updateUnit(gctx, client, now, opts, name, tr, tx)
		})
	}
	for name, tr := range statics {
		name, tr := name, tr
		if !tr.ShouldUpdate(now) {
			continue
		}
		g.Go(func() error {
			return updateStatic(gctx, client, now, opts, name, tr, tx)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for name, tr := range units {
		if tr.IsGone() {
			delete(units, name)
		}
	}
	for name, tr := range statics {
		if tr.IsGone() {
			delete(statics, name)
		}
	}
	return nil
}

func updateUnit(ctx context.Context, client UnitsClient, now time.Time, opts UnitsOptions, name string, tr *tracker.UnitTracker, tx chan<- UnitsItem) error {
	changed, err := tr.Update(ctx, client, now, opts.PollRate, opts.MaxBackoff)
	if rpc.IsNotFound(err) {
		tr.MarkGone()
		return sendUnits(ctx, tx, UnitsItem{Response: UnitsResponse{
			Time: tr.UpdateTime(),
			Kind: UnitsUpdateGone,
			Gone: &Gone{ID: tr.Unit.ID, Name: name},
		}})
	}
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	return sendUnits(ctx, tx, UnitsItem{Response: UnitsResponse{
		Time: tr.UpdateTime(),
		Kind: UnitsUpdateUnit,
		Unit: &tr.Unit,
	}})
}

func updateStatic(ctx context.Context, client UnitsClient, now time.Time, opts UnitsOptions, name string, tr *tracker.StaticTracker, tx chan<- UnitsItem) error {
	changed, err := tr.Update(ctx, client, now, opts.PollRate, opts.MaxBackoff)
	if rpc.IsNotFound(err) {
		tr.MarkGone()
		return sendUnits(ctx, tx, UnitsItem{Response: UnitsResponse{
			Time: tr.UpdateTime(),
			Kind: UnitsUpdateGone,
			Gone: &Gone{ID: tr.Static.ID, Name: name},
		}})
	}
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	return sendUnits(ctx, tx, UnitsItem{Response: UnitsResponse{
		Time:   tr.UpdateTime(),
		Kind:   UnitsUpdateStatic,
		Static: &tr.Static,
	}})
}

func sendUnits(ctx context.Context, tx chan<- UnitsItem, item UnitsItem) error {
	select {
	case tx <- item:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
