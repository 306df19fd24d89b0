// Package filesystem implements the file operations behind FileAgent.
//
// The package is organized by operation group:
//   - search: FindByExtension and GetLargestFiles (parallel walk via fastwalk)
//   - directory: ListDirectory and CreateFolder
//   - operations: MoveFiles (doublestar globbing, optional destination lock)
//   - metadata: FormatHumanSize
//
// Engine bundles the groups; Provider exposes them as catalog tools and
// wraps typed results in the shared Result envelope.
//
// Failure channels:
//   - Returned errors (NotFoundError, ScanError, IOError, InvalidArgumentError)
//     for conditions that stop an operation
//   - Result fields for expected outcomes: an existing folder, or per-file
//     move errors collected in MoveResult.Errors
//
// Example Usage:
//
//	engine := filesystem.NewEngine()
//	files, err := engine.FindByExtension(ctx, "/home/me/code", ".go", 50)
package filesystem
