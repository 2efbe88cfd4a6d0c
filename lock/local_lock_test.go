package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker_MutualExclusion(t *testing.T) {
	l := NewLocalLocker(0)

	var inside, maxInside atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Acquire(context.Background(), "cart:lock:a@b.c")
			if !assert.NoError(t, err) {
				return
			}

			n := inside.Add(1)
			for {
				m := maxInside.Load()
				if n <= m || maxInside.CompareAndSwap(m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			inside.Add(-1)
			release()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside.Load())
	assert.Empty(t, l.slots)
}

func TestLocalLocker_IndependentKeys(t *testing.T) {
	l := NewLocalLocker(50 * time.Millisecond)

	releaseA, err := l.Acquire(context.Background(), "a")
	require.NoError(t, err)
	defer releaseA()

	releaseB, err := l.Acquire(context.Background(), "b")
	require.NoError(t, err)
	releaseB()
}

func TestLocalLocker_WaitExpires(t *testing.T) {
	l := NewLocalLocker(20 * time.Millisecond)

	release, err := l.Acquire(context.Background(), "k")
	require.NoError(t, err)

	_, err = l.Acquire(context.Background(), "k")
	assert.ErrorIs(t, err, ErrNotAcquired)

	release()
	release() // second call is a no-op

	release, err = l.Acquire(context.Background(), "k")
	require.NoError(t, err)
	release()
}
