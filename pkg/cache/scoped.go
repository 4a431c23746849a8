package cache

// ScopedKeyer wraps a Keyer with a prefix so several datasets can share one
// backend without colliding.
//
// Example usage:
//
//	// One namespace per served dataset
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "dataset:a1b2c3:")
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

// SceneKey generates a prefixed key for scene caching.
func (k *ScopedKeyer) SceneKey(inputHash string, opts SceneKeyOpts) string {
	return k.prefix + k.inner.SceneKey(inputHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(sceneHash, opts)
}
