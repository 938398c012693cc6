package theme

import (
	"net/url"
	"sort"
	"strings"
	"sync"
)

// Result is the outcome of pushing the theme into a frame.
type Result int

const (
	// Applied means the frame root now reflects the preference.
	Applied Result = iota
	// Blocked means the frame could not be introspected (cross-origin).
	Blocked
)

func (r Result) String() string {
	if r == Blocked {
		return "blocked"
	}
	return "applied"
}

// Frame is an embedding boundary whose root class can be set.
type Frame interface {
	ID() string
	ApplyTheme(dark bool) Result
}

// DocumentFrame models an embedded document hosted by the showcase. Only
// documents from the host origin can be themed.
type DocumentFrame struct {
	id   string
	src  string
	same bool

	mu      sync.Mutex
	classes map[string]bool
}

// NewDocumentFrame creates a frame for src. Relative sources belong to the
// host; absolute ones must match hostOrigin (scheme://host[:port]).
func NewDocumentFrame(id, src, hostOrigin string) *DocumentFrame {
	return &DocumentFrame{
		id:      id,
		src:     src,
		same:    sameOrigin(src, hostOrigin),
		classes: make(map[string]bool),
	}
}

func (f *DocumentFrame) ID() string  { return f.id }
func (f *DocumentFrame) Src() string { return f.src }

// ApplyTheme sets or clears the dark class on the frame root.
func (f *DocumentFrame) ApplyTheme(dark bool) Result {
	if !f.same {
		return Blocked
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if dark {
		f.classes[DarkClass] = true
	} else {
		delete(f.classes, DarkClass)
	}
	return Applied
}

// Dark reports whether the frame root carries the dark class.
func (f *DocumentFrame) Dark() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.classes[DarkClass]
}

// Classes returns the frame root classes, sorted.
func (f *DocumentFrame) Classes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return sortedKeys(f.classes)
}

func sameOrigin(src, hostOrigin string) bool {
	u, err := url.Parse(src)
	if err != nil {
		return false
	}
	if !u.IsAbs() && u.Host == "" {
		return true
	}
	host, err := url.Parse(hostOrigin)
	if err != nil || hostOrigin == "" {
		return false
	}
	return strings.EqualFold(u.Scheme, host.Scheme) && strings.EqualFold(u.Host, host.Host)
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k, v := range m {
		if v {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
