package cache

// ScopedKeyer wraps a Keyer with a prefix so that several services can
// share one Redis instance.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "tikzlayout:")
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

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(sceneHash, opts)
}

// RenderKey generates a prefixed key for a stored render.
func (k *ScopedKeyer) RenderKey(id string) string {
	return k.prefix + k.inner.RenderKey(id)
}
