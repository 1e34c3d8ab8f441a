package cache

import "github.com/jentor/strata/pkg/layout"

// Keyer generates cache keys for layout results. Keys must change whenever
// anything that affects the output changes: the graph document or any knob
// of the layout configuration.
type Keyer interface {
	// LayoutKey generates a key for a layout result. docHash identifies the
	// serialized graph document.
	LayoutKey(docHash string, cfg layout.Config) string
}

// DefaultKeyer hashes the document hash together with the full layout
// configuration.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for a layout result.
func (k *DefaultKeyer) LayoutKey(docHash string, cfg layout.Config) string {
	return hashKey("layout", docHash, cfg)
}

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation, e.g. one
// namespace per user in a shared Redis instance.
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
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LayoutKey generates a prefixed key for a layout result.
func (k *ScopedKeyer) LayoutKey(docHash string, cfg layout.Config) string {
	return k.prefix + k.inner.LayoutKey(docHash, cfg)
}
