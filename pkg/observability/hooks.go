// Package observability provides hooks for metrics, tracing, and logging.
//
// Instrumentation is optional and carries no dependency on a particular
// backend. Consumers register hooks at startup and receive events about
// placements, storage operations and HTTP requests.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPlacementHooks(&myPlacementHooks{})
//	    observability.SetStorageHooks(&myStorageHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	res, err := p.Drop(fp, x, y, opts)
//	observability.Placement().OnPlace(ctx, "drop", id, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Placement Hooks
// =============================================================================

// PlacementHooks receives events from planogram edits.
type PlacementHooks interface {
	// OnPlace records a drop, move or preview. op names the operation.
	OnPlace(ctx context.Context, op, planogramID string, floating, unresolved bool, duration time.Duration, err error)

	// OnEdit records a structural change (units, surfaces, removals).
	OnEdit(ctx context.Context, op, planogramID string, duration time.Duration, err error)
}

// =============================================================================
// Storage Hooks
// =============================================================================

// StorageHooks receives events from the planogram repository.
type StorageHooks interface {
	// OnLoad records a read; hit is false when the key did not exist.
	OnLoad(ctx context.Context, backend string, hit bool)

	// OnSave records a write of size bytes.
	OnSave(ctx context.Context, backend string, size int)

	// OnDelete records a removal.
	OnDelete(ctx context.Context, backend string)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, route string)

	// OnResponse records the response sent for a request.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPlacementHooks is a no-op implementation of PlacementHooks.
type NoopPlacementHooks struct{}

func (NoopPlacementHooks) OnPlace(context.Context, string, string, bool, bool, time.Duration, error) {
}
func (NoopPlacementHooks) OnEdit(context.Context, string, string, time.Duration, error) {}

// NoopStorageHooks is a no-op implementation of StorageHooks.
type NoopStorageHooks struct{}

func (NoopStorageHooks) OnLoad(context.Context, string, bool) {}
func (NoopStorageHooks) OnSave(context.Context, string, int)  {}
func (NoopStorageHooks) OnDelete(context.Context, string)     {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                       {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	placementHooks PlacementHooks = NoopPlacementHooks{}
	storageHooks   StorageHooks   = NoopStorageHooks{}
	httpHooks      HTTPHooks      = NoopHTTPHooks{}
	hooksMu        sync.RWMutex
)

// SetPlacementHooks registers custom placement hooks.
// This should be called once at application startup.
func SetPlacementHooks(h PlacementHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		placementHooks = h
	}
}

// SetStorageHooks registers custom storage hooks.
// This should be called once at application startup.
func SetStorageHooks(h StorageHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storageHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Placement returns the registered placement hooks.
func Placement() PlacementHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return placementHooks
}

// Storage returns the registered storage hooks.
func Storage() StorageHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storageHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	placementHooks = NoopPlacementHooks{}
	storageHooks = NoopStorageHooks{}
	httpHooks = NoopHTTPHooks{}
}
