package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	fserrors "github.com/GriffinCanCode/FileAgent/backend/internal/shared/errors"
	"github.com/GriffinCanCode/FileAgent/backend/internal/shared/types"
)

var errNotDirectory = errors.New("not a directory")

// DirectoryOps handles directory operations
type DirectoryOps struct {
	*FilesystemOps
}

// GetTools returns directory operation tool definitions
func (d *DirectoryOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          types.OpCreateFolder,
			Name:        "Create Folder",
			Description: "Create a new folder in the specified directory",
			Parameters: []types.Parameter{
				{Name: "directory", Type: types.ParamDirectory, Description: "Parent directory path (defaults to the current directory)"},
				{Name: "folder_name", Type: types.ParamString, Description: "Name of the folder to create", Required: true},
			},
			Returns:  "object",
			Keywords: []string{"create", "make", "new", "folder", "directory", "mkdir"},
		},
		{
			ID:          types.OpListDirectory,
			Name:        "List Directory",
			Description: "List contents of a directory",
			Parameters: []types.Parameter{
				{Name: "directory", Type: types.ParamDirectory, Description: "Directory path to list (defaults to the current directory)"},
			},
			Returns:  "object",
			Keywords: []string{"list", "show", "contents", "ls", "browse", "what"},
		},
	}
}

// CreateFolder creates folderName under directory, including missing
// parents. An existing path is a reported outcome, not an error.
func (d *DirectoryOps) CreateFolder(_ context.Context, directory, folderName string) (*CreateFolderResult, error) {
	if strings.TrimSpace(folderName) == "" {
		return nil, fserrors.InvalidArgument("folder_name", "must not be empty")
	}

	target := filepath.Join(directory, folderName)

	if _, err := os.Lstat(target); err == nil {
		return &CreateFolderResult{
			Success: false,
			Message: fmt.Sprintf("Folder already exists: %s", target),
			Path:    target,
		}, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, &fserrors.IOError{Op: "stat", Path: target, Cause: err}
	}

	if err := os.MkdirAll(target, 0o755); err != nil {
		return nil, &fserrors.IOError{Op: "mkdir", Path: target, Cause: err}
	}

	return &CreateFolderResult{
		Success: true,
		Message: "Folder created successfully",
		Path:    target,
	}, nil
}

// ListDirectory lists the immediate children of directory, directories
// first, then by name.
func (d *DirectoryOps) ListDirectory(_ context.Context, directory string) (*DirectoryListing, error) {
	info, err := os.Stat(directory)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &fserrors.NotFoundError{Role: "Directory", Path: directory}
		}
		return nil, &fserrors.ScanError{Path: directory, Cause: err}
	}
	if !info.IsDir() {
		return nil, &fserrors.ScanError{Path: directory, Cause: errNotDirectory}
	}

	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, &fserrors.ScanError{Path: directory, Cause: err}
	}

	items := make([]DirEntry, 0, len(entries))
	for _, entry := range entries {
		path := filepath.Join(directory, entry.Name())

		fi, err := os.Stat(path)
		if err != nil {
			continue
		}

		item := DirEntry{
			FileEntry:   newEntry(path, entry.Name(), fi.Size(), fi.ModTime()),
			IsDirectory: fi.IsDir(),
		}
		if item.IsDirectory {
			item.Size = 0
			item.ReadableSize = "-"
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].IsDirectory != items[j].IsDirectory {
			return items[i].IsDirectory
		}
		return items[i].Name < items[j].Name
	})

	return &DirectoryListing{Directory: directory, Items: items}, nil
}
