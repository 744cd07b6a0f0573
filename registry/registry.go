// Package registry provides the shared document lookup table used for
// cross-document link resolution.
//
// The registry is two-phase: all documents are registered during a single
// writer phase, then Seal marks the registry resolution-ready. Registration
// after sealing is rejected, which enforces the register-before-resolve
// contract at the API level instead of leaving it a convention. A sealed
// registry is safe for concurrent readers.
package registry

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// ErrSealed is returned when Register is called on a sealed registry.
var ErrSealed = errors.New("registry is sealed")

// Registry maps document paths (and path stems) to canonical document URIs.
type Registry struct {
	mu     sync.RWMutex
	paths  map[string]string
	stems  map[string]string
	sealed bool
}

// New creates an empty, unsealed registry.
func New() *Registry {
	return &Registry{
		paths: make(map[string]string),
		stems: make(map[string]string),
	}
}

// Register inserts path -> uri and stem -> uri entries. Re-registering the
// same path silently overwrites. Returns ErrSealed once Seal has been called.
func (r *Registry) Register(path, uri string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return fmt.Errorf("register %q: %w", path, ErrSealed)
	}

	r.paths[path] = uri
	r.stems[trimExtension(path)] = uri
	return nil
}

// Seal marks the registry resolution-ready. After sealing, Register fails
// and lookups may run concurrently. Sealing twice is a no-op.
func (r *Registry) Seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}

// Sealed reports whether the registry has been sealed.
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// FindByPath looks up a document URI by exact path, falling back to the stem
// table with any trailing extension stripped. No fuzzy or partial matching.
// The second return value is false on a miss; a miss is not an error.
func (r *Registry) FindByPath(pathOrStem string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if uri, ok := r.paths[pathOrStem]; ok {
		return uri, true
	}
	if uri, ok := r.stems[pathOrStem]; ok {
		return uri, true
	}
	if uri, ok := r.stems[trimExtension(pathOrStem)]; ok {
		return uri, true
	}
	return "", false
}

// Len returns the number of registered document paths.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.paths)
}

// trimExtension strips a trailing file extension, leaving directory
// components untouched.
func trimExtension(path string) string {
	ext := filepath.Ext(path)
	if ext == "" || strings.Contains(ext, "/") {
		return path
	}
	return strings.TrimSuffix(path, ext)
}
