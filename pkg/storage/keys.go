package storage

// Keyer produces backend keys for planograms.
type Keyer interface {
	// PlanogramKey returns the key holding the planogram with the given ID.
	PlanogramKey(id string) string

	// PlanogramPrefix returns the prefix shared by every planogram key.
	PlanogramPrefix() string
}

// DefaultKeyer stores planograms under "planogram:<id>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) PlanogramKey(id string) string { return "planogram:" + id }
func (DefaultKeyer) PlanogramPrefix() string       { return "planogram:" }

// ScopedKeyer wraps a Keyer with a prefix so that several tenants or
// environments can share one backend.
//
//	staging := NewScopedKeyer(NewDefaultKeyer(), "staging:")
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

// PlanogramKey returns the prefixed planogram key.
func (k *ScopedKeyer) PlanogramKey(id string) string {
	return k.prefix + k.inner.PlanogramKey(id)
}

// PlanogramPrefix returns the prefixed planogram prefix.
func (k *ScopedKeyer) PlanogramPrefix() string {
	return k.prefix + k.inner.PlanogramPrefix()
}
