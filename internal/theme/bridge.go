// Package theme keeps the light/dark preference and pushes it into every
// embedded document.
package theme

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

const (
	// StorageKey is the preference key.
	StorageKey = "theme"
	// DarkClass is the root class that selects the dark theme.
	DarkClass = "dark"

	valueDark  = "dark"
	valueLight = "light"
)

// Bridge owns the root class set of the host document and the mounted
// frames. Any change to the root dark class is re-propagated to every frame,
// whichever code path made it. It is not safe for concurrent use.
type Bridge struct {
	store  Store
	logger zerolog.Logger

	root   map[string]bool
	frames []Frame
}

// NewBridge reads the persisted preference. Without one it falls back to
// prefersDark, the client's ambient color-scheme signal.
func NewBridge(ctx context.Context, store Store, prefersDark bool, logger zerolog.Logger) (*Bridge, error) {
	b := &Bridge{store: store, logger: logger, root: make(map[string]bool)}

	dark := prefersDark
	v, ok, err := store.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("loading theme preference: %w", err)
	}
	if ok {
		dark = v == valueDark
	}
	b.root[DarkClass] = dark
	return b, nil
}

// Dark reports whether the host root carries the dark class.
func (b *Bridge) Dark() bool { return b.root[DarkClass] }

// Mode returns "dark" or "light".
func (b *Bridge) Mode() string {
	if b.Dark() {
		return valueDark
	}
	return valueLight
}

// RootClasses returns the host root classes, sorted.
func (b *Bridge) RootClasses() []string { return sortedKeys(b.root) }

// Toggle flips the preference, persists it and propagates it. The in-memory
// state changes even when persisting fails.
func (b *Bridge) Toggle(ctx context.Context) (bool, error) {
	dark := !b.Dark()
	b.SetRootClass(DarkClass, dark)

	mode := valueLight
	if dark {
		mode = valueDark
	}
	if err := b.store.Set(ctx, StorageKey, mode); err != nil {
		return dark, fmt.Errorf("persisting theme preference: %w", err)
	}
	return dark, nil
}

// SetRootClass adds or removes a class on the host root. Changing the dark
// class propagates the new value to every mounted frame.
func (b *Bridge) SetRootClass(class string, present bool) {
	before := b.root[class]
	if present {
		b.root[class] = true
	} else {
		delete(b.root, class)
	}
	if class == DarkClass && before != present {
		b.Propagate()
	}
}

// Mount registers a frame and applies the current preference to it right away.
// Mounting a frame with an existing id replaces it.
func (b *Bridge) Mount(f Frame) Result {
	b.Unmount(f.ID())
	b.frames = append(b.frames, f)
	return b.apply(f, b.Dark())
}

// Unmount forgets a frame.
func (b *Bridge) Unmount(id string) {
	for i, f := range b.frames {
		if f.ID() == id {
			b.frames = append(b.frames[:i], b.frames[i+1:]...)
			return
		}
	}
}

// Frames returns the mounted frames in mount order.
func (b *Bridge) Frames() []Frame {
	return append([]Frame(nil), b.frames...)
}

// Propagate applies the current preference to all mounted frames. Blocked
// frames are skipped.
func (b *Bridge) Propagate() map[string]Result {
	dark := b.Dark()
	results := make(map[string]Result, len(b.frames))
	for _, f := range b.frames {
		results[f.ID()] = b.apply(f, dark)
	}
	return results
}

func (b *Bridge) apply(f Frame, dark bool) Result {
	r := f.ApplyTheme(dark)
	if r == Blocked {
		b.logger.Debug().Str("frame", f.ID()).Msg("theme sync skipped for cross-origin frame")
	}
	return r
}
