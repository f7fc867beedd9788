package grpc

import (
	"context"
	"time"

	"dcsmission/streamcore/internal/entity"
	"dcsmission/streamcore/internal/stream"
)

// UnitsRequest carries the per-subscription options a client supplies
// when opening the units/statics stream.
type UnitsRequest struct {
	Category             entity.GroupCategory
	IncludeStaticObjects bool
	PollRate             time.Duration
	MaxBackoff           time.Duration
}

// WeaponsRequest carries the per-subscription options a client supplies
// when opening the weapons stream.
type WeaponsRequest struct {
	PollRate time.Duration
}

// UnitsServerStream is the minimal server-streaming surface StreamUnits
// needs from a gRPC server stream. It deliberately omits the generated
// protobuf method set: wire encoding and RPC dispatch are out of scope
// for this service, so callers supply their own thin adapter over the
// generated stream type.
type UnitsServerStream interface {
	Context() context.Context
	Send(*stream.UnitsResponse) error
}

// WeaponsServerStream is the weapons-stream analogue of UnitsServerStream.
type WeaponsServerStream interface {
	Context() context.Context
	Send(*stream.WeaponsResponse) error
}
