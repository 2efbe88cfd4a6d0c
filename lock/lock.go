// Package lock serializes work per key, either inside one process or across
// replicas through Redis.
package lock

import "errors"

// ErrNotAcquired is returned when the wait for a key runs out.
var ErrNotAcquired = errors.New("lock not acquired")
