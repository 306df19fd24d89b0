// Package lock serializes moves into the same destination directory across
// goroutines and processes using OS-level file locks.
package lock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/GriffinCanCode/FileAgent/backend/internal/shared/utils"
)

var (
	// ErrLockTimeout is returned when acquiring a lock times out.
	ErrLockTimeout = fmt.Errorf("timeout acquiring lock")
	// ErrKeyRequired is returned when a lock key is empty.
	ErrKeyRequired = fmt.Errorf("lock key is required")
)

// pollInterval is the interval to sleep when polling for a lock.
const pollInterval = 10 * time.Millisecond

// Locker hands out exclusive locks keyed by a path.
type Locker interface {
	Acquire(ctx context.Context, key string) (*Handle, error)
}

// Handle is a held lock. Release is safe to call more than once.
type Handle struct {
	Key   string
	flock *flock.Flock
}

// Release unlocks the handle
func (h *Handle) Release() error {
	if h == nil || h.flock == nil {
		return nil
	}
	return h.flock.Unlock()
}

// Manager acquires flock-based locks under a directory.
type Manager struct {
	dir     string
	timeout time.Duration
	hasher  *utils.Hasher
}

// NewManager creates a lock manager storing lock files in dir.
func NewManager(dir string, timeout time.Duration) (*Manager, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "fileagent-locks")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock dir %s: %w", dir, err)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Manager{dir: dir, timeout: timeout, hasher: utils.DefaultHasher()}, nil
}

// Path returns the lock file used for key
func (m *Manager) Path(key string) string {
	name := utils.ShortHash(m.hasher.HashString(filepath.Clean(key)), 16)
	return filepath.Join(m.dir, name+".lock")
}

// Acquire blocks until the lock for key is held, ctx is done or the
// manager's timeout elapses.
func (m *Manager) Acquire(ctx context.Context, key string) (*Handle, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	fileLock := flock.New(m.Path(key))
	locked, err := fileLock.TryLockContext(ctx, pollInterval)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrLockTimeout
		}
		return nil, fmt.Errorf("error acquiring lock for %s: %w", key, err)
	}
	if !locked {
		return nil, ErrLockTimeout
	}

	return &Handle{Key: key, flock: fileLock}, nil
}

// Noop is a Locker that never blocks
type Noop struct{}

// Acquire returns an empty handle
func (Noop) Acquire(_ context.Context, key string) (*Handle, error) {
	return &Handle{Key: key}, nil
}
