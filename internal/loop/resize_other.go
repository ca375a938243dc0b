//go:build windows

package loop

import "context"

// notifyResize has no signal to watch on this platform; a nil channel never
// fires.
func notifyResize(ctx context.Context) <-chan struct{} {
	return nil
}
