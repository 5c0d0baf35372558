// Package cache provides content-addressed caching for solved layouts and
// rendered artifacts.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance (HTTP service)
//   - [NullCache]: caching disabled
//
// # Keys
//
// A [Keyer] derives keys from content hashes. The solve key covers the scene
// bytes and every option that changes the solved geometry; the artifact key
// covers the solve hash and the render options for one format:
//
//	k := cache.NewDefaultKeyer()
//	solveKey := k.SolveKey(cache.Hash(sceneBytes), cache.SolveKeyOpts{Strict: true})
//	svgKey := k.ArtifactKey(solveHash, cache.ArtifactKeyOpts{Format: "svg"})
//
// [ScopedKeyer] prefixes every key for tenant isolation.
package cache

import (
	"context"
	"strings"
	"time"
)

// Default time-to-live per entry kind.
const (
	TTLSolve    = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores opaque byte values by key.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// SolveKeyOpts holds the options that change a solved snapshot.
type SolveKeyOpts struct {
	Format  string `json:"format"`
	Strict  bool   `json:"strict,omitempty"`
	Steps   bool   `json:"steps,omitempty"`
	Version string `json:"version,omitempty"`
}

// ArtifactKeyOpts holds the options that change one rendered artifact.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	Labels    bool    `json:"labels,omitempty"`
	Padding   int     `json:"padding,omitempty"`
	Scale     float64 `json:"scale,omitempty"`
	Highlight string  `json:"highlight,omitempty"`
	Columns   int     `json:"columns,omitempty"`
	Rows      int     `json:"rows,omitempty"`
	Hierarchy bool    `json:"hierarchy,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// SolveKey returns the key of a solved snapshot.
	SolveKey(sceneHash string, opts SolveKeyOpts) string

	// ArtifactKey returns the key of one rendered artifact.
	ArtifactKey(solveHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces "solve:<sha256>" and "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SolveKey hashes the scene hash together with opts.
func (DefaultKeyer) SolveKey(sceneHash string, opts SolveKeyOpts) string {
	return hashKey("solve", sceneHash, opts)
}

// ArtifactKey hashes the solve hash together with opts.
func (DefaultKeyer) ArtifactKey(solveHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", solveHash, opts)
}

// KeyType returns the kind of a key produced by a Keyer ("solve" or
// "artifact"), for metrics labels. Scoped prefixes are skipped.
func KeyType(key string) string {
	parts := strings.Split(key, ":")
	if len(parts) >= 2 {
		switch t := parts[len(parts)-2]; t {
		case "solve", "artifact":
			return t
		}
	}
	return "other"
}
