package page

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Zachkp/portfolio/internal/content"
)

// Registry holds the live views, one per visitor id.
type Registry struct {
	tables *content.Tables
	opts   Options
	ttl    time.Duration

	mu    sync.Mutex
	views map[string]*View
}

func NewRegistry(tables *content.Tables, opts Options, ttl time.Duration) *Registry {
	opts.defaults()
	return &Registry{
		tables: tables,
		opts:   opts,
		ttl:    ttl,
		views:  make(map[string]*View),
	}
}

// View returns the view for id, creating it if needed. An id that is not a
// valid uuid is replaced with a fresh one; callers should use the returned
// view's ID from then on.
func (r *Registry) View(ctx context.Context, id string) *View {
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.views[id]; ok {
		return v
	}
	v := NewView(ctx, id, r.tables, r.opts)
	r.views[id] = v
	return v
}

// Lookup returns an existing view.
func (r *Registry) Lookup(id string) (*View, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.views[id]
	return v, ok
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

// Sweep drops views idle for longer than the registry's ttl.
func (r *Registry) Sweep() int {
	cutoff := r.opts.Now().Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, v := range r.views {
		if v.LastSeen().Before(cutoff) {
			delete(r.views, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done. cleanup, if set, runs after
// each sweep.
func (r *Registry) Run(ctx context.Context, interval time.Duration, cleanup func(context.Context, time.Time)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				log.Printf("page: dropped %d idle views", n)
			}
			if cleanup != nil {
				cleanup(ctx, r.opts.Now())
			}
		}
	}
}
