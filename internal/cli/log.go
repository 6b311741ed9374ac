// Package cli implements the modgraph command-line interface.
//
// This package provides commands for scanning a TypeScript project into a
// module graph document, exploring that document incrementally in a terminal
// UI, rendering the revealed part as a diagram and serving it to browsers.
// The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - generate: Scan sources into a graph.json document
//   - search: List modules whose path matches a query
//   - view: Explore a document interactively in the terminal
//   - render: Render a revealed subgraph as DOT, SVG, PDF or PNG
//   - serve: Serve the explorer over HTTP and WebSocket
//   - cache: Manage the import cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context, and debug-level observability hooks report
// engine operations, scans and cache traffic.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/modgraph/pkg/observability"
)

// newLogger returns a logger writing to w at level, with short wall-clock
// timestamps ("14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long an operation took. Not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at info level followed by the elapsed time, e.g.
// "reloaded graph.json (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// loggerFromContext returns the logger stored by withLogger, or log.Default()
// for contexts that never passed through the root command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability Hooks
// =============================================================================

// installHooks routes engine, scan and cache events to l at debug level.
func installHooks(l *log.Logger) {
	observability.SetEngineHooks(engineLogHooks{l})
	observability.SetScanHooks(scanLogHooks{l})
	observability.SetCacheHooks(cacheLogHooks{l})
}

type engineLogHooks struct{ l *log.Logger }

func (h engineLogHooks) OnLoad(title string, nodes, edges, kept int) {
	h.l.Debug("graph loaded", "title", title, "nodes", nodes, "edges", edges, "kept", kept)
}

func (h engineLogHooks) OnOperation(op, id string, nodes, edges int, err error) {
	if err != nil {
		h.l.Debug(op, "node", id, "err", err)
		return
	}
	h.l.Debug(op, "node", id, "added_nodes", nodes, "added_edges", edges)
}

type scanLogHooks struct{ l *log.Logger }

func (h scanLogHooks) OnScanStart(_ context.Context, root string) {
	h.l.Debug("scan started", "root", root)
}

func (h scanLogHooks) OnFileParsed(_ context.Context, path string, imports int, cached bool) {
	h.l.Debug("parsed", "file", path, "imports", imports, "cached", cached)
}

func (h scanLogHooks) OnScanComplete(_ context.Context, root string, files, nodes, edges int, d time.Duration, err error) {
	if err != nil {
		h.l.Debug("scan failed", "root", root, "err", err)
		return
	}
	h.l.Debug("scan complete", "root", root, "files", files, "nodes", nodes, "edges", edges, "took", d.Round(time.Millisecond))
}

type cacheLogHooks struct{ l *log.Logger }

func (h cacheLogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.l.Debug("cache hit", "type", keyType)
}

func (h cacheLogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.l.Debug("cache miss", "type", keyType)
}

func (h cacheLogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.l.Debug("cache set", "type", keyType, "bytes", size)
}
