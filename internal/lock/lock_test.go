package lock

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_AcquireRelease(t *testing.T) {
	m, err := NewManager(t.TempDir(), time.Second)
	require.NoError(t, err)

	h, err := m.Acquire(context.Background(), "/data/archive")
	require.NoError(t, err)
	assert.Equal(t, "/data/archive", h.Key)
	assert.FileExists(t, m.Path("/data/archive"))

	require.NoError(t, h.Release())
	require.NoError(t, h.Release())
}

func TestManager_EmptyKey(t *testing.T) {
	m, err := NewManager(t.TempDir(), time.Second)
	require.NoError(t, err)

	_, err = m.Acquire(context.Background(), "")
	assert.True(t, errors.Is(err, ErrKeyRequired))
}

func TestManager_PathIsStablePerKey(t *testing.T) {
	m, err := NewManager(t.TempDir(), time.Second)
	require.NoError(t, err)

	assert.Equal(t, m.Path("/a/b"), m.Path("/a/b/"))
	assert.NotEqual(t, m.Path("/a/b"), m.Path("/a/c"))
}

func TestManager_Timeout(t *testing.T) {
	m, err := NewManager(t.TempDir(), 50*time.Millisecond)
	require.NoError(t, err)

	held, err := m.Acquire(context.Background(), "/dest")
	require.NoError(t, err)
	defer held.Release()

	start := time.Now()
	_, err = m.Acquire(context.Background(), "/dest")
	assert.True(t, errors.Is(err, ErrLockTimeout))
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestManager_DifferentKeysDoNotBlock(t *testing.T) {
	m, err := NewManager(t.TempDir(), 50*time.Millisecond)
	require.NoError(t, err)

	a, err := m.Acquire(context.Background(), "/dest/a")
	require.NoError(t, err)
	defer a.Release()

	b, err := m.Acquire(context.Background(), "/dest/b")
	require.NoError(t, err)
	require.NoError(t, b.Release())
}

func TestManager_SerializesSameKey(t *testing.T) {
	m, err := NewManager(t.TempDir(), 2*time.Second)
	require.NoError(t, err)

	var (
		wg      sync.WaitGroup
		inside  int32
		maxSeen int32
	)

	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h, err := m.Acquire(context.Background(), "/shared")
			if err != nil {
				t.Errorf("acquire failed: %v", err)
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				old := atomic.LoadInt32(&maxSeen)
				if n <= old || atomic.CompareAndSwapInt32(&maxSeen, old, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&inside, -1)
			h.Release()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxSeen)
}

func TestNoop(t *testing.T) {
	var l Locker = Noop{}

	h, err := l.Acquire(context.Background(), "/x")
	require.NoError(t, err)
	assert.NoError(t, h.Release())
}
