package filesystem

import (
	"time"

	"github.com/GriffinCanCode/FileAgent/backend/internal/lock"
)

// FileEntry is a file snapshot taken at scan time
type FileEntry struct {
	Path         string    `json:"path"`
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	Modified     time.Time `json:"modified"`
	ReadableSize string    `json:"readable_size"`
}

// DirEntry is one immediate child of a listed directory.
// Directories carry size 0 and readable size "-".
type DirEntry struct {
	FileEntry
	IsDirectory bool `json:"is_directory"`
}

// DirectoryListing is the result of ListDirectory
type DirectoryListing struct {
	Directory string     `json:"directory"`
	Items     []DirEntry `json:"items"`
}

// CreateFolderResult reports whether a folder was created
type CreateFolderResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Path    string `json:"path"`
}

// MovedFile describes one file moved by MoveFiles
type MovedFile struct {
	Name         string `json:"name"`
	Source       string `json:"source"`
	Destination  string `json:"destination"`
	Size         int64  `json:"size"`
	ReadableSize string `json:"readable_size"`
}

// MoveError is a per-file failure recorded by MoveFiles
type MoveError struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// MoveResult is the result of MoveFiles. Success stays true when individual
// files fail; those land in Errors.
type MoveResult struct {
	Success              bool        `json:"success"`
	Message              string      `json:"message"`
	MovedCount           int         `json:"moved_count"`
	Files                []MovedFile `json:"files"`
	SourceDirectory      string      `json:"source_directory,omitempty"`
	DestinationDirectory string      `json:"destination_directory,omitempty"`
	Pattern              string      `json:"pattern,omitempty"`
	Errors               []MoveError `json:"errors,omitempty"`
	ErrorCount           int         `json:"error_count,omitempty"`
}

// Counts returns the number of moved and failed files
func (r *MoveResult) Counts() (moved, failed int) {
	return r.MovedCount, r.ErrorCount
}

// FilesystemOps holds state shared by the operation groups
type FilesystemOps struct {
	// Locker serializes moves per destination directory
	Locker lock.Locker
}

func newEntry(path, name string, size int64, modified time.Time) FileEntry {
	return FileEntry{
		Path:         path,
		Name:         name,
		Size:         size,
		Modified:     modified,
		ReadableSize: FormatHumanSize(size),
	}
}
