package stream

import "context"

// OrDone wraps source so it yields items until either source closes or
// shutdown fires, whichever comes first - the single cancellation
// observation point for a client-facing stream (§4.4/§9 of the spec).
// Signal reception causes the adapter to return end-of-stream to the
// client without error; it is the caller's responsibility to distinguish
// a clean shutdown from an upstream error delivered as the final item.
//
// Modeled on the done-channel fan-in idiom used throughout the pack (see
// github.com/niceyeti/channerics's OrDone, as used by
// niceyeti-tabular/tabular/server/root_view/root_view.go).
func OrDone[T any](ctx context.Context, shutdown <-chan struct{}, source <-chan T) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case <-shutdown:
				return
			case item, ok := <-source:
				if !ok {
					return
				}
				select {
				case out <- item:
				case <-ctx.Done():
					return
				case <-shutdown:
					return
				}
			}
		}
	}()
	return out
}
