package matcher

import (
	"context"
	"sync"
)

// Loader fetches the mapping rules of one workspace.
type Loader func(ctx context.Context, workspaceID string) ([]Rule, error)

// Registry builds matchers lazily, once per workspace, from stored rules.
// The built matcher is immutable for the life of the process; rule changes
// take effect after a restart.
type Registry struct {
	load Loader

	mu       sync.Mutex
	matchers map[string]*Matcher
}

// NewRegistry creates a registry backed by the given loader.
func NewRegistry(load Loader) *Registry {
	return &Registry{
		load:     load,
		matchers: make(map[string]*Matcher),
	}
}

// For returns the matcher for a workspace, loading its rules on first use.
func (r *Registry) For(ctx context.Context, workspaceID string) (*Matcher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.matchers[workspaceID]; ok {
		return m, nil
	}

	rules, err := r.load(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	m := New(rules)
	r.matchers[workspaceID] = m

	return m, nil
}
