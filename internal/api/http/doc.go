// Package http implements the REST endpoints of the FileAgent API.
//
//	GET  /                         service info
//	GET  /api/health               health, base path and catalog size
//	POST /api/chat                 resolve a message into an operation call
//	POST /api/execute              run an operation, returns its envelope
//	GET  /api/operations           operation catalog
//	POST /api/operations/discover  keyword-ranked operations
//	GET  /metrics, /metrics/json   metrics
//
// /api/execute answers 200 for any envelope produced by a successful run
// (including create_folder on an existing folder), 400 for unknown actions
// and invalid arguments and 500 for filesystem failures.
package http
