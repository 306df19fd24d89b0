package filesystem

import "github.com/GriffinCanCode/FileAgent/backend/internal/lock"

// Engine runs the file operations against the local filesystem. It keeps no
// state between calls; every result is a snapshot taken during the call.
type Engine struct {
	*SearchOps
	*DirectoryOps
	*TransferOps
}

// Option configures an Engine
type Option func(*FilesystemOps)

// WithLocker serializes moves per destination directory
func WithLocker(l lock.Locker) Option {
	return func(ops *FilesystemOps) {
		ops.Locker = l
	}
}

// NewEngine creates an operation engine
func NewEngine(opts ...Option) *Engine {
	ops := &FilesystemOps{}
	for _, opt := range opts {
		opt(ops)
	}

	return &Engine{
		SearchOps:    &SearchOps{FilesystemOps: ops},
		DirectoryOps: &DirectoryOps{FilesystemOps: ops},
		TransferOps:  &TransferOps{FilesystemOps: ops},
	}
}
