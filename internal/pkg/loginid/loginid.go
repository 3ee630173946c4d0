// Package loginid allocates sequential, role-prefixed login identifiers such
// as EMP001 or ADM012.
package loginid

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
)

const (
	DefaultFallback = "USR"
	DefaultWidth    = 3
)

// ErrSequenceExhausted is returned when the highest existing id for a prefix
// already holds the largest representable sequence number.
var ErrSequenceExhausted = errors.New("login id sequence exhausted")

// DefaultPrefixes maps lower-case role names to their id prefix.
var DefaultPrefixes = map[string]string{
	"admin":    "ADM",
	"hr":       "HR",
	"manager":  "MGR",
	"employee": "EMP",
}

type Config struct {
	Prefixes map[string]string
	Fallback string
	Width    int
	Logger   *slog.Logger
}

type Allocator struct {
	prefixes map[string]string
	fallback string
	width    int
	logger   *slog.Logger
}

// New builds an Allocator. Zero values in cfg fall back to the defaults.
func New(cfg Config) *Allocator {
	a := &Allocator{
		prefixes: make(map[string]string),
		fallback: strings.ToUpper(strings.TrimSpace(cfg.Fallback)),
		width:    cfg.Width,
		logger:   cfg.Logger,
	}

	prefixes := cfg.Prefixes
	if len(prefixes) == 0 {
		prefixes = DefaultPrefixes
	}
	for role, prefix := range prefixes {
		a.prefixes[normalizeRole(role)] = strings.ToUpper(strings.TrimSpace(prefix))
	}
	if a.fallback == "" {
		a.fallback = DefaultFallback
	}
	if a.width < 1 {
		a.width = DefaultWidth
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	return a
}

var defaultAllocator = New(Config{})

// Next allocates with the default prefix table.
func Next(role string, existing []string) (string, error) {
	return defaultAllocator.Next(role, existing)
}

// Prefix resolves the prefix for role. Unknown roles get the fallback prefix and known=false.
func (a *Allocator) Prefix(role string) (prefix string, known bool) {
	if p, ok := a.prefixes[normalizeRole(role)]; ok {
		return p, true
	}
	return a.fallback, false
}

// Next returns the id following the highest numbered id in existing that
// carries role's prefix. The result is never present in existing.
func (a *Allocator) Next(role string, existing []string) (string, error) {
	prefix, known := a.Prefix(role)
	if !known {
		a.logger.Warn("unknown role for login id allocation, using fallback prefix",
			"role", role,
			"prefix", prefix,
		)
	}
	return a.NextForPrefix(prefix, existing)
}

// NextForPrefix is Next for an already resolved prefix.
func (a *Allocator) NextForPrefix(prefix string, existing []string) (string, error) {
	highest := Highest(prefix, existing)
	if highest == math.MaxInt {
		a.logger.Error("login id sequence exhausted",
			"prefix", prefix,
			"highest", highest,
		)
		return "", fmt.Errorf("%w for prefix %s", ErrSequenceExhausted, prefix)
	}
	next := highest + 1

	id := fmt.Sprintf("%s%0*d", prefix, a.width, next)
	if len(id)-len(prefix) > a.width {
		a.logger.Warn("login id sequence exceeded configured width",
			"prefix", prefix,
			"width", a.width,
			"login_id", id,
		)
	}
	return id, nil
}

// Highest returns the largest numeric suffix among ids of the form prefix+digits, or 0.
func Highest(prefix string, existing []string) int {
	highest := 0
	for _, id := range existing {
		n, ok := sequence(prefix, id)
		if ok && n > highest {
			highest = n
		}
	}
	return highest
}

func sequence(prefix, id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, prefix)
	if !ok || rest == "" {
		return 0, false
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}

func normalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}
