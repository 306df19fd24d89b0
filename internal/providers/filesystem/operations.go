package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/bmatcuk/doublestar/v4"

	fserrors "github.com/GriffinCanCode/FileAgent/backend/internal/shared/errors"
	"github.com/GriffinCanCode/FileAgent/backend/internal/shared/types"
)

// TransferOps handles multi-file moves
type TransferOps struct {
	*FilesystemOps
}

// GetTools returns transfer operation tool definitions
func (t *TransferOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          types.OpMoveFiles,
			Name:        "Move Files",
			Description: "Move files matching a pattern from source directory to destination directory",
			Parameters: []types.Parameter{
				{Name: "source_directory", Type: types.ParamDirectory, Description: "Source directory containing files to move (defaults to the current directory)"},
				{Name: "destination_directory", Type: types.ParamPath, Description: "Destination directory where files should be moved (created if missing)", Required: true},
				{Name: "pattern", Type: types.ParamString, Description: "File pattern to match (e.g., 'Screenshot*.png', '*.txt', 'report_*.pdf')", Required: true},
			},
			Returns:  "object",
			Keywords: []string{"move", "transfer", "relocate", "organize", "archive", "put"},
		},
	}
}

// MoveFiles moves the regular files matching pattern from source into
// destination. Per-file failures are collected in the result and never
// abort the remaining moves.
func (t *TransferOps) MoveFiles(ctx context.Context, source, destination, pattern string) (*MoveResult, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, fserrors.InvalidArgument("pattern", "must not be empty")
	}
	if strings.TrimSpace(destination) == "" {
		return nil, fserrors.InvalidArgument("destination_directory", "must not be empty")
	}

	info, err := os.Stat(source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &fserrors.NotFoundError{Role: "Source directory", Path: source}
		}
		return nil, &fserrors.ScanError{Path: source, Cause: err}
	}
	if !info.IsDir() {
		return nil, &fserrors.ScanError{Path: source, Cause: errNotDirectory}
	}

	globPattern, err := relativePattern(source, pattern)
	if err != nil {
		return nil, err
	}

	if err := ensureDirectory(destination); err != nil {
		return nil, err
	}

	matches, err := doublestar.Glob(os.DirFS(source), globPattern)
	if err != nil {
		if errors.Is(err, doublestar.ErrBadPattern) {
			return nil, fserrors.InvalidArgument("pattern", "malformed glob %q", pattern)
		}
		return nil, &fserrors.ScanError{Path: source, Cause: err}
	}
	matches = visibleMatches(matches, globPattern)

	result := &MoveResult{
		Success:              true,
		Files:                []MovedFile{},
		SourceDirectory:      source,
		DestinationDirectory: destination,
		Pattern:              pattern,
	}

	if len(matches) == 0 {
		result.Message = fmt.Sprintf("No files found matching pattern: %s", pattern)
		return result, nil
	}

	if t.Locker != nil {
		handle, err := t.Locker.Acquire(ctx, destination)
		if err != nil {
			return nil, &fserrors.IOError{Op: "lock", Path: destination, Cause: err}
		}
		defer handle.Release()
	}

	for _, match := range matches {
		sourcePath := filepath.Join(source, filepath.FromSlash(match))

		fi, err := os.Stat(sourcePath)
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}

		name := filepath.Base(sourcePath)
		destPath := filepath.Join(destination, name)

		if _, err := os.Lstat(destPath); err == nil {
			result.Errors = append(result.Errors, MoveError{File: name, Error: "File already exists at destination"})
			continue
		}

		if err := moveFile(sourcePath, destPath); err != nil {
			result.Errors = append(result.Errors, MoveError{File: name, Error: err.Error()})
			continue
		}

		moved, err := os.Stat(destPath)
		if err != nil {
			result.Errors = append(result.Errors, MoveError{File: name, Error: err.Error()})
			continue
		}

		result.Files = append(result.Files, MovedFile{
			Name:         name,
			Source:       sourcePath,
			Destination:  destPath,
			Size:         moved.Size(),
			ReadableSize: FormatHumanSize(moved.Size()),
		})
	}

	result.MovedCount = len(result.Files)
	result.ErrorCount = len(result.Errors)
	result.Message = fmt.Sprintf("Moved %d file(s) from %s to %s", result.MovedCount, source, destination)

	return result, nil
}

// relativePattern turns pattern into a slash-separated glob rooted at source
func relativePattern(source, pattern string) (string, error) {
	pattern = strings.TrimSpace(pattern)

	if filepath.IsAbs(pattern) {
		rel, err := filepath.Rel(source, pattern)
		if err != nil {
			return "", fserrors.InvalidArgument("pattern", "%q is not inside %s", pattern, source)
		}
		pattern = rel
	}

	pattern = collapseStars(filepath.ToSlash(pattern))
	for strings.HasPrefix(pattern, "./") {
		pattern = strings.TrimPrefix(pattern, "./")
	}

	if pattern == ".." || strings.HasPrefix(pattern, "../") || strings.Contains(pattern, "/../") {
		return "", fserrors.InvalidArgument("pattern", "%q must stay inside the source directory", pattern)
	}
	if !doublestar.ValidatePattern(pattern) {
		return "", fserrors.InvalidArgument("pattern", "malformed glob %q", pattern)
	}

	return pattern, nil
}

// collapseStars rewrites runs of unescaped '*' to a single '*' so that "**"
// stays inside one path segment. Moves never reach into subdirectories
// unless the pattern names them.
func collapseStars(pattern string) string {
	var b strings.Builder
	b.Grow(len(pattern))
	star := false
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\\' && i+1 < len(pattern):
			b.WriteByte(c)
			b.WriteByte(pattern[i+1])
			i++
			star = false
		case c == '*':
			if !star {
				b.WriteByte(c)
			}
			star = true
		default:
			b.WriteByte(c)
			star = false
		}
	}
	return b.String()
}

// visibleMatches drops dot-files unless the pattern asks for them, the way a
// shell glob does.
func visibleMatches(matches []string, pattern string) []string {
	segments := strings.Split(pattern, "/")
	lastDot := strings.HasPrefix(segments[len(segments)-1], ".")
	dirDot := false
	for _, seg := range segments[:len(segments)-1] {
		if strings.HasPrefix(seg, ".") {
			dirDot = true
			break
		}
	}

	visible := matches[:0]
	for _, m := range matches {
		parts := strings.Split(m, "/")
		if strings.HasPrefix(parts[len(parts)-1], ".") && !lastDot {
			continue
		}
		hiddenDir := false
		for _, p := range parts[:len(parts)-1] {
			if strings.HasPrefix(p, ".") {
				hiddenDir = true
				break
			}
		}
		if hiddenDir && !dirDot {
			continue
		}
		visible = append(visible, m)
	}
	return visible
}

func ensureDirectory(dir string) error {
	info, err := os.Stat(dir)
	switch {
	case err == nil && info.IsDir():
		return nil
	case err == nil:
		return &fserrors.IOError{Op: "mkdir", Path: dir, Cause: errNotDirectory}
	case !errors.Is(err, fs.ErrNotExist):
		return &fserrors.IOError{Op: "stat", Path: dir, Cause: err}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &fserrors.IOError{Op: "mkdir", Path: dir, Cause: err}
	}
	return nil
}

// moveFile renames src to dst, copying across devices when rename cannot.
func moveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}

	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(dst)
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		return err
	}

	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
