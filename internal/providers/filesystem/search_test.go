package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fserrors "github.com/GriffinCanCode/FileAgent/backend/internal/shared/errors"
)

func TestSearchOpsGetTools(t *testing.T) {
	search := &SearchOps{FilesystemOps: &FilesystemOps{}}

	tools := search.GetTools()
	require.Len(t, tools, 2)

	for _, tool := range tools {
		assert.NotEmpty(t, tool.Name)
		assert.NotEmpty(t, tool.Description)
	}

	limit, ok := tools[0].Parameter("limit")
	require.True(t, ok)
	assert.Equal(t, 50, limit.Default)
	assert.Contains(t, limit.Description, "default: 50")

	limit, ok = tools[1].Parameter("limit")
	require.True(t, ok)
	assert.Equal(t, 10, limit.Default)
	assert.Contains(t, limit.Description, "default: 10")
}

func TestFindByExtension(t *testing.T) {
	root := t.TempDir()
	now := time.Now().Truncate(time.Second)

	writeFile(t, filepath.Join(root, "old.py"), 10, now.Add(-3*time.Hour))
	writeFile(t, filepath.Join(root, "pkg", "mid.py"), 10, now.Add(-2*time.Hour))
	writeFile(t, filepath.Join(root, "pkg", "deep", "new.py"), 10, now.Add(-1*time.Hour))
	writeFile(t, filepath.Join(root, "notes.txt"), 10, now)
	writeFile(t, filepath.Join(root, "script.PY"), 10, now)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "dir.py"), 0o755))

	engine := NewEngine()
	files, err := engine.FindByExtension(context.Background(), root, "py", 50)
	require.NoError(t, err)

	assert.Equal(t, []string{"new.py", "mid.py", "old.py"}, names(files))
	for _, f := range files {
		assert.True(t, strings.HasSuffix(f.Name, ".py"))
		assert.Equal(t, "10.00 B", f.ReadableSize)
		assert.True(t, filepath.IsAbs(f.Path))
	}
}

func TestFindByExtensionRespectsLimit(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 20; i++ {
		writeFile(t, filepath.Join(root, fmt.Sprintf("d%d", i%4), fmt.Sprintf("f%02d.log", i)), i, time.Now().Add(time.Duration(i)*time.Minute))
	}

	files, err := NewEngine().FindByExtension(context.Background(), root, ".log", 5)
	require.NoError(t, err)

	assert.Len(t, files, 5)
	for i := 0; i+1 < len(files); i++ {
		assert.False(t, files[i].Modified.Before(files[i+1].Modified), "results must be newest first")
	}
}

func TestFindByExtensionInvalidArguments(t *testing.T) {
	root := t.TempDir()
	engine := NewEngine()

	_, err := engine.FindByExtension(context.Background(), root, "", 5)
	assert.True(t, errors.Is(err, fserrors.ErrInvalidArgument))

	_, err = engine.FindByExtension(context.Background(), root, ".go", 0)
	assert.True(t, errors.Is(err, fserrors.ErrInvalidArgument))
}

func TestFindByExtensionMissingRoot(t *testing.T) {
	_, err := NewEngine().FindByExtension(context.Background(), filepath.Join(t.TempDir(), "nope"), ".go", 5)

	var scanErr *fserrors.ScanError
	require.True(t, errors.As(err, &scanErr))
	assert.Contains(t, scanErr.Path, "nope")
}

func TestFindByExtensionEmptyResult(t *testing.T) {
	files, err := NewEngine().FindByExtension(context.Background(), t.TempDir(), ".go", 5)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestGetLargestFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "small.bin"), 10, time.Time{})
	writeFile(t, filepath.Join(root, "a", "big.bin"), 4096, time.Time{})
	writeFile(t, filepath.Join(root, "a", "b", "medium.bin"), 1536, time.Time{})
	writeFile(t, filepath.Join(root, "empty.bin"), 0, time.Time{})

	files, err := NewEngine().GetLargestFiles(context.Background(), root, 3)
	require.NoError(t, err)

	assert.Equal(t, []string{"big.bin", "medium.bin", "small.bin"}, names(files))
	assert.Equal(t, "4.00 KB", files[0].ReadableSize)
	assert.Equal(t, "1.50 KB", files[1].ReadableSize)
}

func TestGetLargestFilesFewerThanLimit(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "one"), 1, time.Time{})
	writeFile(t, filepath.Join(root, "two"), 2, time.Time{})

	files, err := NewEngine().GetLargestFiles(context.Background(), root, 10)
	require.NoError(t, err)

	assert.Len(t, files, 2)
	assert.GreaterOrEqual(t, files[0].Size, files[1].Size)
}

func TestGetLargestFilesEmptyDirectory(t *testing.T) {
	files, err := NewEngine().GetLargestFiles(context.Background(), t.TempDir(), 10)
	require.NoError(t, err)
	assert.NotNil(t, files)
	assert.Empty(t, files)
}

func TestGetLargestFilesRootIsFile(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "file.txt")
	writeFile(t, file, 1, time.Time{})

	_, err := NewEngine().GetLargestFiles(context.Background(), file, 10)

	var scanErr *fserrors.ScanError
	assert.True(t, errors.As(err, &scanErr))
}

func TestGetLargestFilesSkipsSymlinkedDirectories(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	writeFile(t, filepath.Join(outside, "huge.bin"), 8192, time.Time{})
	writeFile(t, filepath.Join(root, "local.bin"), 10, time.Time{})
	require.NoError(t, os.Symlink(outside, filepath.Join(root, "link")))

	files, err := NewEngine().GetLargestFiles(context.Background(), root, 10)
	require.NoError(t, err)

	assert.Equal(t, []string{"local.bin"}, names(files))
}

func TestScansSkipUnstatableFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ok.py"), 32, time.Time{})
	require.NoError(t, os.Symlink(filepath.Join(root, "gone.py"), filepath.Join(root, "dangling.py")))

	engine := NewEngine()

	found, err := engine.FindByExtension(context.Background(), root, ".py", 50)
	require.NoError(t, err)
	assert.Equal(t, []string{"ok.py"}, names(found))

	largest, err := engine.GetLargestFiles(context.Background(), root, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"ok.py"}, names(largest))
}

func TestWalkHonorsCancelledContext(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), 1, time.Time{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEngine().GetLargestFiles(ctx, root, 10)
	assert.True(t, errors.Is(err, context.Canceled))
}
