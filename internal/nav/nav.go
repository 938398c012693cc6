// Package nav implements slide navigation over a catalog category.
package nav

import (
	"github.com/ziadkadry99/ui-showcase/internal/catalog"
)

// State is the active category and the index within it.
type State struct {
	Category string `json:"category"`
	Index    int    `json:"index"`
}

// Transition describes the outcome of a navigation request. Load is set when
// the caller must issue exactly one content load for Descriptor.
type Transition struct {
	Load       bool
	Empty      bool
	Descriptor catalog.Descriptor
}

// Bullet is one position indicator.
type Bullet struct {
	Index  int  `json:"index"`
	Active bool `json:"active"`
}

// Affordances are the control states derived from the navigation state.
type Affordances struct {
	PrevEnabled bool     `json:"prev_enabled"`
	NextEnabled bool     `json:"next_enabled"`
	Position    int      `json:"position"`
	Total       int      `json:"total"`
	Bullets     []Bullet `json:"bullets"`
}

// Machine tracks the active slide. It is not safe for concurrent use; the
// owning session serializes access.
type Machine struct {
	catalog *catalog.Catalog
	state   State
}

// New creates a Machine over c with no category selected.
func New(c *catalog.Catalog) *Machine {
	return &Machine{catalog: c}
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Len returns the number of items in the active category.
func (m *Machine) Len() int { return m.catalog.Len(m.state.Category) }

// Empty reports whether the active category has no items.
func (m *Machine) Empty() bool { return m.Len() == 0 }

// Current returns the selected descriptor, if any.
func (m *Machine) Current() (catalog.Descriptor, bool) {
	return m.catalog.At(m.state.Category, m.state.Index)
}

// SelectCategory activates name and resets the index to 0. Unknown or empty
// categories put the machine in the empty state.
func (m *Machine) SelectCategory(name string) Transition {
	m.state = State{Category: name}
	d, ok := m.catalog.At(name, 0)
	if !ok {
		return Transition{Empty: true}
	}
	return Transition{Load: true, Descriptor: d}
}

// GoTo selects index i. Out-of-range requests are ignored. Selecting the
// current index again reloads it.
func (m *Machine) GoTo(i int) Transition {
	d, ok := m.catalog.At(m.state.Category, i)
	if !ok {
		return Transition{}
	}
	m.state.Index = i
	return Transition{Load: true, Descriptor: d}
}

// Next moves forward one item; a no-op on the last item.
func (m *Machine) Next() Transition {
	if m.state.Index >= m.Len()-1 {
		return Transition{}
	}
	return m.GoTo(m.state.Index + 1)
}

// Previous moves back one item; a no-op on the first item.
func (m *Machine) Previous() Transition {
	if m.state.Index <= 0 {
		return Transition{}
	}
	return m.GoTo(m.state.Index - 1)
}

// Advance is Next for autoplay: after the last item it wraps to the first.
func (m *Machine) Advance() Transition {
	n := m.Len()
	if n == 0 {
		return Transition{}
	}
	return m.GoTo((m.state.Index + 1) % n)
}

// Affordances derives previous/next enablement and position indicators.
func (m *Machine) Affordances() Affordances {
	n := m.Len()
	a := Affordances{Total: n, Bullets: make([]Bullet, n)}
	if n == 0 {
		return a
	}
	a.Position = m.state.Index + 1
	a.PrevEnabled = m.state.Index > 0
	a.NextEnabled = m.state.Index < n-1
	for i := range a.Bullets {
		a.Bullets[i] = Bullet{Index: i, Active: i == m.state.Index}
	}
	return a
}
