package collector

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds named collectors for selection by config.
type Registry struct {
	collectors map[string]Collector
	mu         sync.RWMutex
}

// NewRegistry returns an empty registry. Call Register to add collectors.
func NewRegistry() *Registry {
	return &Registry{collectors: make(map[string]Collector)}
}

// Register adds a collector under its own name.
func (r *Registry) Register(c Collector) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.collectors[c.Name()] = c
}

// Get returns the collector by name, or an error if not found.
func (r *Registry) Get(name string) (Collector, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.collectors[name]
	if !ok {
		return nil, fmt.Errorf("collector %q not found", name)
	}
	return c, nil
}

// Select returns the collectors for the given venue names, in the given
// order. Unknown names are an error: a typo in config should fail loudly at
// startup, not silently scan fewer venues.
func (r *Registry) Select(names []string) ([]Collector, error) {
	out := make([]Collector, 0, len(names))
	for _, name := range names {
		c, err := r.Get(name)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// List returns all registered collector names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.collectors))
	for n := range r.collectors {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Close releases resources held by any registered collector that owns them.
func (r *Registry) Close() {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.collectors {
		if closer, ok := c.(Closer); ok {
			closer.Close()
		}
	}
}
