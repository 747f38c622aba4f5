// Package cache stores computed layouts and rendered artifacts by content
// key.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per entry under a directory, used by the CLI
//   - [RedisCache]: a shared Redis instance, used by the HTTP server
//   - [NullCache]: stores nothing, used when caching is disabled
//
// Keys come from a [Keyer], which hashes the graph and every option that
// affects the result, so changing an option never returns a stale layout.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Default time-to-live values.
const (
	LayoutTTL = 7 * 24 * time.Hour
	RenderTTL = 7 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry. A miss is reported as
// (nil, false, nil); errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey keys a layout document by graph content hash and options.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// RenderKey keys a rendered artifact by layout content hash and render options.
	RenderKey(layoutHash string, opts RenderKeyOpts) string
}

// LayoutKeyOpts lists every option that changes a layout.
type LayoutKeyOpts struct {
	Placer         string   `json:"placer"`
	MinNodeSpacing float64  `json:"min_node_spacing"`
	MinRingGap     float64  `json:"min_ring_gap"`
	BaseRadius     float64  `json:"base_radius"`
	MaxRelaxPasses int      `json:"max_relax_passes"`
	MaxSwapPasses  int      `json:"max_swap_passes"`
	MaxDepth       int      `json:"max_depth"`
	Prefixes       []string `json:"prefixes,omitempty"`
}

// RenderKeyOpts lists every option that changes a rendered artifact.
type RenderKeyOpts struct {
	Format string   `json:"format"`
	Labels bool     `json:"labels"`
	Scale  float64  `json:"scale,omitempty"`
	Types  []string `json:"types,omitempty"`
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a keyer without prefix.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// RenderKey returns "render:<sha256>".
func (DefaultKeyer) RenderKey(layoutHash string, opts RenderKeyOpts) string {
	return hashKey("render", layoutHash, opts)
}

// Hash returns the hex SHA-256 of data. Graph and layout documents are
// hashed in their JSON form before being passed to a [Keyer].
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey returns prefix + ":" + the hash of the JSON-encoded parts.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}
