package rpc

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// IsNotFound reports whether err is a transport status carrying
// codes.NotFound - the distinguished code that triggers the
// implicit-death reconciliation path instead of terminating the
// subscription.
func IsNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// NotFound builds a NotFound status error for the given entity key, used
// by reference/test RPC implementations.
func NotFound(format string, args ...any) error {
	return status.Errorf(codes.NotFound, format, args...)
}
