package catalog

import "sync/atomic"

// Holder publishes the current catalog. Readers take a snapshot with Load;
// a reload swaps it atomically.
type Holder struct {
	p atomic.Pointer[Catalog]
}

// NewHolder creates a Holder serving c.
func NewHolder(c *Catalog) *Holder {
	h := &Holder{}
	h.p.Store(c)
	return h
}

// Load returns the current catalog.
func (h *Holder) Load() *Catalog { return h.p.Load() }

// Store replaces the current catalog.
func (h *Holder) Store(c *Catalog) { h.p.Store(c) }
