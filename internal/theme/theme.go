// Package theme holds the page's light/dark display mode.
package theme

import (
	"context"
	"log"
	"sync/atomic"
)

// PreferenceKey is the key the display mode is stored under.
const PreferenceKey = "display_mode_dark"

// Store persists the display mode between visits. A Mode without a store
// resets to its default on every load.
type Store interface {
	Get(ctx context.Context, key string) (value bool, found bool, err error)
	Set(ctx context.Context, key string, value bool) error
}

// Mode is the single display mode of a page. Reads never observe a torn
// value; writes happen only through Toggle.
type Mode struct {
	dark  atomic.Bool
	store Store
}

// New returns a mode with the given default. If store holds a saved value
// it wins over the default. Store errors are logged and ignored.
func New(ctx context.Context, dark bool, store Store) *Mode {
	m := &Mode{store: store}
	if store != nil {
		v, found, err := store.Get(ctx, PreferenceKey)
		switch {
		case err != nil:
			log.Printf("theme: loading preference: %v", err)
		case found:
			dark = v
		}
	}
	m.dark.Store(dark)
	return m
}

func (m *Mode) Dark() bool {
	return m.dark.Load()
}

// Class is the document-level presentation class for the current mode.
func (m *Mode) Class() string {
	return ClassFor(m.Dark())
}

// Toggle flips the mode, saves it when a store is attached, and returns the
// new document class.
func (m *Mode) Toggle(ctx context.Context) string {
	dark := !m.dark.Load()
	m.dark.Store(dark)
	if m.store != nil {
		if err := m.store.Set(ctx, PreferenceKey, dark); err != nil {
			log.Printf("theme: saving preference: %v", err)
		}
	}
	return ClassFor(dark)
}

func ClassFor(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}
