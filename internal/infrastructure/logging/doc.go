// Package logging provides structured logging using uber/zap.
//
// Two modes:
//   - Production: JSON to stderr
//   - Development: colored console output, stack traces on warn and above
//
// Components take a *Logger and derive children with Named ("dispatch",
// "intent", "ws", "http") so every line names its source. Shared keys
// (operation, request_id, conn_id, outcome) have constructors in fields.go.
//
// Example Usage:
//
//	logger, _ := logging.New(logging.Config{Level: "debug"})
//	log := logger.Named("dispatch").With(logging.Operation("move_files"))
//	log.Info("Moved files", zap.Int("moved", 3))
package logging
