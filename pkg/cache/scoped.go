package cache

// ScopedKeyer wraps a Keyer with a prefix so that several deployments can
// share one Redis instance without colliding.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "includeviz:v1:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(graphHash, opts)
}

// RenderKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) RenderKey(layoutHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(layoutHash, opts)
}
