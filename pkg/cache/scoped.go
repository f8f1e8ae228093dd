package cache

// ScopedKeyer wraps a Keyer with a prefix, giving each caller its own
// namespace in a shared cache.
//
//	k := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "gridshift:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key.
// A nil inner keyer means DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// PlanKey returns the prefixed plan key.
func (k *ScopedKeyer) PlanKey(puzzleHash string, opts PlanKeyOpts) string {
	return k.prefix + k.inner.PlanKey(puzzleHash, opts)
}

// ArtifactKey returns the prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(planKey string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(planKey, opts)
}
