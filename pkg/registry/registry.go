// Package registry maps a browser's web-client identifier to the
// ipcclient.Handle serving its attach session.
package registry

import (
	"sync"

	"github.com/dormantflower/webgw/pkg/ipcclient"
)

// Registry is safe for concurrent use. Unlike the teacher's
// session_registry.go, which fans one session out to many concurrently
// joining/leaving clients and so reaches for sync.Map, a web-client
// identifier here is inserted once at attach and removed once at
// disconnect — a plain RWMutex-guarded map is the right-sized tool for
// that access pattern.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*ipcclient.Handle
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{entries: make(map[string]*ipcclient.Handle)}
}

// Insert records h under id, replacing any existing entry.
func (r *Registry) Insert(id string, h *ipcclient.Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[id] = h
}

// Lookup returns the handle registered for id, if any.
func (r *Registry) Lookup(id string) (*ipcclient.Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.entries[id]
	return h, ok
}

// Remove deletes id's entry, if present. It does not close the handle;
// closing it is left to the caller.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
}

// Len reports the number of live entries, mainly for tests.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
