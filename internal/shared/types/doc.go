// Package types provides shared data structures for the FileAgent backend.
//
// This package defines the catalog, argument and result types shared by the
// dispatcher, the operation engine, the intent resolver and the transports.
//
// Catalog Types:
//   - Service: A provider's advertised definition
//   - Tool: One operation with its parameter schema
//   - Parameter: Name, type, required flag and default
//
// Argument Types:
//   - Value: Tagged variant (string, integer, path, directory)
//   - Arguments: Coerced argument bag handed to providers
//
// Envelope Types:
//   - Context: Caller context (current directory)
//   - Result: Uniform {success, data, message} / {success:false, error} envelope
//
// Request Types:
//   - ChatRequest, ExecuteRequest, DiscoverRequest: HTTP bodies
//   - WSMessage: WebSocket communication
//
// Example Usage:
//
//	args := types.Arguments{
//	    "directory": types.DirectoryValue("/home/me"),
//	    "limit":     types.IntValue(10),
//	}
//	limit := args.Int("limit")
package types
