package filesystem

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"

	fserrors "github.com/GriffinCanCode/FileAgent/backend/internal/shared/errors"
	"github.com/GriffinCanCode/FileAgent/backend/internal/shared/types"
)

// errLimitReached stops a walk once enough entries are collected
var errLimitReached = errors.New("limit reached")

// SearchOps handles recursive searches
type SearchOps struct {
	*FilesystemOps
}

// GetTools returns search operation tool definitions
func (s *SearchOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          types.OpFindByExtension,
			Name:        "Find Files by Extension",
			Description: "Find files by extension in a directory and its subdirectories",
			Parameters: []types.Parameter{
				{Name: "directory", Type: types.ParamDirectory, Description: "Directory path to search in (defaults to the current directory)"},
				{Name: "extension", Type: types.ParamString, Description: "File extension to search for (e.g., '.py', '.txt', '.js')", Required: true},
				{Name: "limit", Type: types.ParamInteger, Description: "Maximum number of files to return (default: 50)", Default: 50},
			},
			Returns:  "array",
			Keywords: []string{"find", "search", "extension", "type", "files", "all"},
		},
		{
			ID:          types.OpLargestFiles,
			Name:        "Get Largest Files",
			Description: "Get the largest files in a directory tree",
			Parameters: []types.Parameter{
				{Name: "directory", Type: types.ParamDirectory, Description: "Directory path to search in (defaults to the current directory)"},
				{Name: "limit", Type: types.ParamInteger, Description: "Number of largest files to return (default: 10)", Default: 10},
			},
			Returns:  "array",
			Keywords: []string{"largest", "biggest", "big", "size", "space", "disk", "heavy"},
		},
	}
}

// FindByExtension walks directory and returns up to limit files whose name
// ends with extension, newest first. Which files are kept once the limit is
// hit depends on walk order.
func (s *SearchOps) FindByExtension(ctx context.Context, directory, extension string, limit int) ([]FileEntry, error) {
	extension = normalizeExtension(extension)
	if extension == "." {
		return nil, fserrors.InvalidArgument("extension", "must not be empty")
	}
	if limit <= 0 {
		return nil, fserrors.InvalidArgument("limit", "must be a positive integer, got %d", limit)
	}

	var (
		mu    sync.Mutex
		files = make([]FileEntry, 0, min(limit, 64))
	)

	err := walkFiles(ctx, directory, func(path, name string, info os.FileInfo) error {
		if !strings.HasSuffix(name, extension) {
			return nil
		}

		mu.Lock()
		defer mu.Unlock()
		if len(files) >= limit {
			return errLimitReached
		}
		files = append(files, newEntry(path, name, info.Size(), info.ModTime()))
		if len(files) >= limit {
			return errLimitReached
		}
		return nil
	})
	if err != nil && !errors.Is(err, errLimitReached) {
		return nil, err
	}

	sort.SliceStable(files, func(i, j int) bool {
		return files[i].Modified.After(files[j].Modified)
	})

	return files, nil
}

// GetLargestFiles walks the whole tree and returns the limit largest files.
// Every file is held in memory until the walk ends.
func (s *SearchOps) GetLargestFiles(ctx context.Context, directory string, limit int) ([]FileEntry, error) {
	if limit <= 0 {
		return nil, fserrors.InvalidArgument("limit", "must be a positive integer, got %d", limit)
	}

	var (
		mu    sync.Mutex
		files []FileEntry
	)

	err := walkFiles(ctx, directory, func(path, name string, info os.FileInfo) error {
		entry := newEntry(path, name, info.Size(), info.ModTime())
		mu.Lock()
		files = append(files, entry)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(files, func(i, j int) bool {
		return files[i].Size > files[j].Size
	})

	if len(files) > limit {
		files = files[:limit]
	}
	if files == nil {
		files = []FileEntry{}
	}

	return files, nil
}

// fileVisitor receives every non-directory entry that stats cleanly.
// It may be called from several goroutines at once.
type fileVisitor func(path, name string, info os.FileInfo) error

// walkFiles runs visit for each file under root. Failures at the root become
// a ScanError; unreadable subdirectories and files that fail to stat are
// skipped. Symlinks are not followed during the walk, but a symlink to a
// file is stat'ed through.
func walkFiles(ctx context.Context, root string, visit fileVisitor) error {
	info, err := os.Stat(root)
	if err != nil {
		return &fserrors.ScanError{Path: root, Cause: err}
	}
	if !info.IsDir() {
		return &fserrors.ScanError{Path: root, Cause: errNotDirectory}
	}

	conf := fastwalk.Config{Follow: false}
	err = fastwalk.Walk(&conf, root, func(p string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			if filepath.Clean(p) == filepath.Clean(root) {
				return err
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		fi, err := os.Stat(p)
		if err != nil || fi.IsDir() {
			return nil
		}

		return visit(p, d.Name(), fi)
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, errLimitReached):
		return err
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return &fserrors.ScanError{Path: root, Cause: err}
	}
}

func normalizeExtension(ext string) string {
	ext = strings.TrimSpace(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
