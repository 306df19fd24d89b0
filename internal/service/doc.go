// Package service dispatches operations and connects them to the intent resolver.
//
// Components:
//   - Registry: operation catalog built from registered providers, argument
//     coercion and envelope wrapping (Dispatch / Execute)
//   - Provider: interface for operation implementations
//   - Agent: ResolveAndDescribe for natural-language queries, Execute for
//     explicit calls
//
// Argument coercion:
//   - directory parameters default to the caller's directory
//   - relative paths resolve against that directory, "~" expands to home
//   - integers accept JSON numbers, Go ints and numeric strings
//   - optional parameters take their catalog default
//
// Every failure, including a provider panic, comes back as a
// {success:false, error} envelope.
//
// Example Usage:
//
//	registry := service.NewRegistry(service.WithLogger(log))
//	registry.Register(filesystem.NewProvider(nil))
//	result := registry.Dispatch(ctx, "largest_files", map[string]interface{}{"limit": 5}, home)
package service
