// Package paths resolves user-supplied filesystem paths.
//
// Callers hand in paths as typed by a person or produced by a language model:
// absolute, relative to the current directory, or starting with "~". This
// package turns them into clean absolute paths without touching the disk.
//
// # Usage
//
//	import "github.com/GriffinCanCode/FileAgent/backend/internal/shared/paths"
//
//	base := paths.Home()
//	dir := paths.Resolve("~/Downloads", base)  // /home/me/Downloads
//	rel := paths.Resolve("projects/x", base)   // /home/me/projects/x
package paths
