// Package observability lets the CLI watch what the libraries do without the
// libraries depending on a logging or metrics backend.
//
// Libraries report events through [Engine], [Scan] and [Cache]:
//
//	observability.Scan().OnScanStart(ctx, root)
//	// walk and parse
//	observability.Scan().OnScanComplete(ctx, root, files, nodes, edges, took, err)
//
// Until a program registers its own implementations with [SetEngineHooks],
// [SetScanHooks] and [SetCacheHooks], every event goes to a no-op. Only main
// packages register hooks.
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// =============================================================================
// Hook Interfaces
// =============================================================================

// EngineHooks receives events from the viewer engine.
//
// Engine operations are synchronous and carry no context, so neither do these
// hooks. They run inside the engine call and must be fast.
type EngineHooks interface {
	OnLoad(title string, nodes, edges, keptNodes int)

	// OnOperation reports a mutating operation (reveal, expand-upstream, ...).
	// addedNodes and addedEdges are zero for no-ops and failures.
	OnOperation(op, nodeID string, addedNodes, addedEdges int, err error)
}

// ScanHooks receives events from the source scanner. OnFileParsed may be
// called from several worker goroutines at once.
type ScanHooks interface {
	OnScanStart(ctx context.Context, root string)
	OnFileParsed(ctx context.Context, path string, imports int, cached bool)
	OnScanComplete(ctx context.Context, root string, files, nodes, edges int, took time.Duration, err error)
}

// CacheHooks receives lookups and writes made through a scoped cache. keyType
// is the scope name, e.g. "modgraph".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

type NoopEngineHooks struct{}

func (NoopEngineHooks) OnLoad(string, int, int, int)                {}
func (NoopEngineHooks) OnOperation(string, string, int, int, error) {}

type NoopScanHooks struct{}

func (NoopScanHooks) OnScanStart(context.Context, string)                                      {}
func (NoopScanHooks) OnFileParsed(context.Context, string, int, bool)                          {}
func (NoopScanHooks) OnScanComplete(context.Context, string, int, int, int, time.Duration, error) {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Registry
// =============================================================================

// slot holds one registered implementation. Reads are lock-free, so hot
// paths like OnFileParsed never contend with each other.
type slot[T any] struct {
	p    atomic.Pointer[T]
	noop T
}

func (s *slot[T]) get() T {
	if h := s.p.Load(); h != nil {
		return *h
	}
	return s.noop
}

func (s *slot[T]) set(h T) { s.p.Store(&h) }

func (s *slot[T]) reset() { s.p.Store(nil) }

var (
	engine = &slot[EngineHooks]{noop: NoopEngineHooks{}}
	scan   = &slot[ScanHooks]{noop: NoopScanHooks{}}
	cache  = &slot[CacheHooks]{noop: NoopCacheHooks{}}
)

// SetEngineHooks registers h for engine events. A nil h is ignored.
func SetEngineHooks(h EngineHooks) {
	if h != nil {
		engine.set(h)
	}
}

// SetScanHooks registers h for scan events. A nil h is ignored.
func SetScanHooks(h ScanHooks) {
	if h != nil {
		scan.set(h)
	}
}

// SetCacheHooks registers h for cache events. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cache.set(h)
	}
}

func Engine() EngineHooks { return engine.get() }
func Scan() ScanHooks     { return scan.get() }
func Cache() CacheHooks   { return cache.get() }

// Reset restores the no-op hooks. Tests that register hooks call it in
// t.Cleanup.
func Reset() {
	engine.reset()
	scan.reset()
	cache.reset()
}
