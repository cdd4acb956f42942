package acorn

import (
	"sync"

	"github.com/hashicorp/go-multierror"
)

// Handle is an open filing-system image: a bound Filesystem plus the
// bookkeeping the registry needs to dedupe and close it (spec.md §4.8
// component 7, §9 "process-wide registry").
type Handle interface {
	Filesystem
	Path() string
	Close() error
}

// Registry is the process-wide (or test-scoped) list of open handles keyed
// by pathname, so repeated opens of the same image share one handle
// (spec.md §4.2 step 6, §4.8). Per spec.md §9's preference for explicit
// lifetime ownership over bare module-level state, Registry is an exported
// type: callers construct their own, and only the cmd/ CLI layer uses a
// shared package-level default (see Default below).
type Registry struct {
	mu      sync.Mutex
	handles map[string]Handle
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{handles: make(map[string]Handle)}
}

// Default is the registry the cmd/ CLI layer shares across commands in one
// process invocation. Library callers should prefer their own Registry.
var Default = NewRegistry()

// Lookup returns the already-open handle for path, if any.
func (r *Registry) Lookup(path string) (Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.handles[path]
	return h, ok
}

// Register records a newly opened handle. If path is already registered,
// the existing handle is returned unchanged and h is not stored (spec.md
// §4.2 step 6: "if a handle for the same pathname already exists, return
// it instead"); no reference count is maintained, callers share.
func (r *Registry) Register(path string, h Handle) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.handles[path]; ok {
		return existing
	}
	r.handles[path] = h
	return h
}

// Close closes and deregisters a single handle.
func (r *Registry) Close(h Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	path := h.Path()
	if cur, ok := r.handles[path]; ok && cur == h {
		delete(r.handles, path)
	}
	return h.Close()
}

// CloseAll closes every open handle, aggregating per-handle failures
// instead of stopping at the first (spec.md §4.8; mirrors
// original_source/acorn-fs.c's acorn_fs_close_all, which keeps going and
// remembers the last error — we keep all of them via go-multierror).
func (r *Registry) CloseAll() error {
	r.mu.Lock()
	handles := make([]Handle, 0, len(r.handles))
	for _, h := range r.handles {
		handles = append(handles, h)
	}
	r.handles = make(map[string]Handle)
	r.mu.Unlock()

	var result *multierror.Error
	for _, h := range handles {
		if err := h.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
