// Package id provides ID generation for requests and connections.
//
// IDs are prefixed ULIDs:
//   - Lexicographic sortability: request logs line up by time
//   - Prefixed types: req_* for HTTP requests, conn_* for WebSocket connections
//   - Type safety: separate types prevent mixing them up
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// RequestID identifies an API request
type RequestID string

// ConnectionID identifies a WebSocket connection
type ConnectionID string

const (
	RequestPrefix    = "req"
	ConnectionPrefix = "conn"
)

// Generator generates ULIDs with optional prefixes
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator instance
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a new ULID generator
func NewGenerator() *Generator {
	return &Generator{entropy: rand.Reader}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateString creates a new ULID as a string
func (g *Generator) GenerateString() string {
	return g.Generate().String()
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.GenerateString())
}

// NewRequestID generates a new request ID
func NewRequestID() RequestID {
	return RequestID(Default().GenerateWithPrefix(RequestPrefix))
}

// NewConnectionID generates a new connection ID
func NewConnectionID() ConnectionID {
	return ConnectionID(Default().GenerateWithPrefix(ConnectionPrefix))
}

func (id RequestID) String() string    { return string(id) }
func (id ConnectionID) String() string { return string(id) }

// IsValid checks if an ID string is a valid ULID
func IsValid(id string) bool {
	_, err := ulid.Parse(id)
	return err == nil
}

// IsValidPrefixed checks a prefix_ULID string against the expected prefix
func IsValidPrefixed(id, prefix string) bool {
	rest, ok := strings.CutPrefix(id, prefix+"_")
	return ok && IsValid(rest)
}
