package grpc

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"dcsmission/streamcore/internal/config"
	"dcsmission/streamcore/internal/logging"
	"dcsmission/streamcore/internal/rpc"
	"dcsmission/streamcore/internal/stream"
)

// Service adapts the stream engine onto gRPC-style server streaming. It
// holds no simulator state itself - everything it needs is obtained
// through the units/weapons client collaborators supplied at
// construction. Outbound channel capacity and the per-subscription
// poll-rate/backoff/static-object defaults all come from cfg, so a
// deployment tunes the engine entirely through its environment.
type Service struct {
	units    stream.UnitsClient
	weapons  stream.WeaponsClient
	shutdown rpc.ShutdownSignal
	cfg      *config.Config
}

// NewService wires the streaming service to its RPC collaborators, the
// process-wide shutdown signal fused into every outbound adapter, and
// the configuration its subscriptions fall back to when a request
// leaves a tunable unset.
func NewService(units stream.UnitsClient, weapons stream.WeaponsClient, shutdown rpc.ShutdownSignal, cfg *config.Config) *Service {
	return &Service{units: units, weapons: weapons, shutdown: shutdown, cfg: cfg}
}

// firstPositive returns the first of the given durations that is
// strictly positive, or zero if none are - used to let a subscription
// request override the configured default only when it actually
// specifies one.
func firstPositive(durations ...time.Duration) time.Duration {
	for _, d := range durations {
		if d > 0 {
			return d
		}
	}
	return 0
}

// StreamUnits relays the units/statics subscription to srv until the
// client disconnects, the engine terminates, or the mission event feed
// closes.
func (s *Service) StreamUnits(req *UnitsRequest, srv UnitsServerStream) error {
	ctx := srv.Context()
	ctx, log, _ := logging.WithTrace(ctx, logging.LoggerFromContext(ctx), "")
	opts := stream.UnitsOptions{
		PollRate:             firstPositive(req.PollRate, s.cfg.UnitsPollRate),
		MaxBackoff:           firstPositive(req.MaxBackoff, s.cfg.UnitsMaxBackoff),
		Category:             req.Category,
		IncludeStaticObjects: req.IncludeStaticObjects || s.cfg.IncludeStaticObjects,
	}

	log.Info("units stream opened",
		logging.Bool("include_static_objects", opts.IncludeStaticObjects))
	defer log.Info("units stream closed")

	//1.- Fuse the client context with the process-wide shutdown token so
	// the engine goroutine below is aborted as a group, not just the
	// outbound relay, once either one fires.
	engineCtx, cancelEngine := context.WithCancel(ctx)
	defer cancelEngine()
	go func() {
		select {
		case <-ctx.Done():
		case <-s.shutdown.Signal():
		case <-engineCtx.Done():
		}
		cancelEngine()
	}()

	tx := make(chan stream.UnitsItem, s.cfg.OutboundCapacity)
	go func() {
		//2.- Run the engine to completion, pushing a best-effort terminal
		// error item so a receiver draining tx can observe why the
		// stream ended even though the channel is about to close.
		err := stream.StreamUnits(engineCtx, opts, s.units, tx)
		if err != nil && engineCtx.Err() == nil {
			select {
			case tx <- stream.UnitsItem{Err: err}:
			default:
			}
		}
		close(tx)
	}()

	for item := range stream.OrDone(ctx, s.shutdown.Signal(), tx) {
		if item.Err != nil {
			log.Error("units stream engine error", logging.Error(item.Err))
			return status.Errorf(codes.Internal, "units stream: %v", item.Err)
		}
		if err := srv.Send(&item.Response); err != nil {
			log.Warn("units stream send failed", logging.Error(err))
			return err
		}
	}

	return terminalStatus(ctx)
}

// StreamWeapons relays the weapons subscription to srv; see StreamUnits
// for the shared termination semantics.
func (s *Service) StreamWeapons(req *WeaponsRequest, srv WeaponsServerStream) error {
	ctx := srv.Context()
	ctx, log, _ := logging.WithTrace(ctx, logging.LoggerFromContext(ctx), "")

	opts := stream.WeaponsOptions{PollRate: firstPositive(req.PollRate, s.cfg.WeaponsPollRate)}

	log.Info("weapons stream opened")
	defer log.Info("weapons stream closed")

	//1.- Fuse the client context with the process-wide shutdown token so
	// the engine goroutine below is aborted as a group, not just the
	// outbound relay, once either one fires.
	engineCtx, cancelEngine := context.WithCancel(ctx)
	defer cancelEngine()
	go func() {
		select {
		case <-ctx.Done():
		case <-s.shutdown.Signal():
		case <-engineCtx.Done():
		}
		cancelEngine()
	}()

	tx := make(chan stream.WeaponsItem, s.cfg.OutboundCapacity)
	go func() {
		err := stream.StreamWeapons(engineCtx, opts, s.weapons, tx)
		if err != nil && engineCtx.Err() == nil {
			select {
			case tx <- stream.WeaponsItem{Err: err}:
			default:
			}
		}
		close(tx)
	}()

	for item := range stream.OrDone(ctx, s.shutdown.Signal(), tx) {
		if item.Err != nil {
			log.Error("weapons stream engine error", logging.Error(item.Err))
			return status.Errorf(codes.Internal, "weapons stream: %v", item.Err)
		}
		if err := srv.Send(&item.Response); err != nil {
			log.Warn("weapons stream send failed", logging.Error(err))
			return err
		}
	}

	return terminalStatus(ctx)
}

// terminalStatus maps a cancelled/expired context into the matching gRPC
// status once the outbound relay loop exits; a nil ctx.Err means the
// stream ended cleanly (mission event feed closed).
func terminalStatus(ctx context.Context) error {
	if ctx.Err() == nil {
		return nil
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return status.Error(codes.Canceled, "stream cancelled")
	}
	return status.Error(codes.DeadlineExceeded, "stream deadline exceeded")
}
