// Package id provides centralized ID generation for the backend.
//
// All identifiers are ULIDs, which are lexicographically sortable by creation
// time. Session and request identifiers carry a short type prefix so they are
// easy to tell apart in logs. Window identifiers are prefixed with the
// application identifier that spawned them ("notepad-01J9...").
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

// SessionID identifies a desktop session
type SessionID string

// RequestID identifies an API request
type RequestID string

// WindowID identifies an open window instance
type WindowID string

const (
	SessionPrefix = "sess"
	RequestPrefix = "req"
)

// Generator generates ULIDs with optional prefixes
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex // Protects entropy reader
	now       func() time.Time
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

// NewGenerator creates a new ULID generator backed by crypto/rand.
// Entropy is monotonic so IDs minted within the same millisecond still sort
// in creation order.
func NewGenerator() *Generator {
	return NewGeneratorWithEntropy(ulid.Monotonic(rand.Reader, 0))
}

// NewGeneratorWithEntropy creates a generator with custom entropy source.
// Useful for testing with deterministic entropy.
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{
		entropy: entropy,
		now:     time.Now,
	}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(g.now()), g.entropy)
}

// GenerateString creates a new ULID as a string
func (g *Generator) GenerateString() string {
	return g.Generate().String()
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.GenerateString())
}

// WindowID creates a window identifier for the given application.
func (g *Generator) WindowID(appID string) WindowID {
	return WindowID(appID + "-" + g.GenerateString())
}

// NewSessionID generates a new session ID
func NewSessionID() SessionID {
	return SessionID(Default().GenerateWithPrefix(SessionPrefix))
}

// NewRequestID generates a new request ID
func NewRequestID() RequestID {
	return RequestID(Default().GenerateWithPrefix(RequestPrefix))
}

// NewWindowID generates a new window ID for appID
func NewWindowID(appID string) WindowID {
	return Default().WindowID(appID)
}

func (id SessionID) String() string { return string(id) }
func (id RequestID) String() string { return string(id) }
func (id WindowID) String() string  { return string(id) }

// AppID returns the application identifier a window ID was minted for.
func (id WindowID) AppID() string {
	s := string(id)
	i := strings.LastIndexByte(s, '-')
	if i <= 0 || !IsValid(s[i+1:]) {
		return ""
	}
	return s[:i]
}

// IsValid checks if an ID string is a valid ULID
func IsValid(id string) bool {
	_, err := ulid.ParseStrict(id)
	return err == nil
}

// Timestamp extracts the creation time from a ULID or a prefixed/window ID.
func Timestamp(id string) (time.Time, error) {
	if i := strings.LastIndexAny(id, "_-"); i >= 0 {
		id = id[i+1:]
	}
	parsed, err := ulid.ParseStrict(id)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}
