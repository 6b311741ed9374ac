package scan

import (
	"context"
	"encoding/json"
	"os"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/modgraph/pkg/cache"
	"github.com/matzehuels/modgraph/pkg/errors"
	"github.com/matzehuels/modgraph/pkg/graph"
	"github.com/matzehuels/modgraph/pkg/observability"
)

// idNamespace scopes the name-based UUIDs generated for nodes and edges.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/modgraph"))

// Stats summarizes a scan.
type Stats struct {
	Files    int           // source files found
	Cached   int           // files whose imports came from the cache
	Internal int           // internal nodes
	External int           // external nodes
	Edges    int           // edges after deduplication
	Unique   int           // distinct import specifiers seen
	Duration time.Duration // wall time
}

// Scanner turns source trees into graph documents.
//
// A Scanner holds no per-scan state; one instance can run several scans
// concurrently.
type Scanner struct {
	Cache   cache.Cache
	Logger  *log.Logger
	Workers int // parallel parsers; <= 0 means GOMAXPROCS
}

// NewScanner creates a scanner.
// If c is nil, a NullCache is used (caching disabled).
// If logger is nil, the default logger is used.
func NewScanner(c cache.Cache, logger *log.Logger) *Scanner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Scanner{Cache: c, Logger: logger}
}

// Scan is ScanWithStats without the statistics.
func (s *Scanner) Scan(ctx context.Context, cfg Config) (graph.Graph, error) {
	g, _, err := s.ScanWithStats(ctx, cfg)
	return g, err
}

// ScanWithStats scans cfg.Path and builds the graph document.
func (s *Scanner) ScanWithStats(ctx context.Context, cfg Config) (g graph.Graph, stats Stats, err error) {
	start := time.Now()
	observability.Scan().OnScanStart(ctx, cfg.Path)
	defer func() {
		stats.Duration = time.Since(start)
		observability.Scan().OnScanComplete(ctx, cfg.Path, stats.Files, stats.Internal+stats.External, stats.Edges, stats.Duration, err)
	}()

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return graph.Graph{}, stats, err
	}
	if fi, statErr := os.Stat(cfg.Path); statErr != nil || !fi.IsDir() {
		return graph.Graph{}, stats, errors.New(errors.ErrCodeInvalidPath, "source path %s is not a directory", cfg.Path)
	}

	files, err := walk(cfg.Path, cfg.Exclude)
	if err != nil {
		return graph.Graph{}, stats, errors.Wrap(errors.ErrCodeInvalidPath, err, "walk %s", cfg.Path)
	}
	stats.Files = len(files)
	s.Logger.Debug("found source files", "root", cfg.Path, "count", len(files))

	imports, cached, err := s.extractAll(ctx, cfg.Language, files)
	if err != nil {
		return graph.Graph{}, stats, err
	}
	stats.Cached = cached

	g, stats = build(cfg, files, imports, stats)
	s.Logger.Debug("built graph",
		"internal", stats.Internal,
		"external", stats.External,
		"edges", stats.Edges)
	return g, stats, nil
}

// extractAll extracts the imports of every file, in parallel. The result is
// indexed like files.
func (s *Scanner) extractAll(ctx context.Context, language string, files []sourceFile) ([][]string, int, error) {
	workers := s.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	out := make([][]string, len(files))
	hits := make([]bool, len(files))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, f := range files {
		eg.Go(func() error {
			specs, hit, err := s.extract(egCtx, language, f)
			if err != nil {
				return err
			}
			out[i], hits[i] = specs, hit
			observability.Scan().OnFileParsed(egCtx, f.rel, len(specs), hit)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, 0, err
	}

	cached := 0
	for _, h := range hits {
		if h {
			cached++
		}
	}
	return out, cached, nil
}

func (s *Scanner) extract(ctx context.Context, language string, f sourceFile) ([]string, bool, error) {
	content, err := os.ReadFile(f.abs)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", f.rel)
	}

	key := cache.ImportsKey(language, content)
	if data, hit, err := s.Cache.Get(ctx, key); err == nil && hit {
		var specs []string
		if err := json.Unmarshal(data, &specs); err == nil {
			return specs, true, nil
		}
	} else if err != nil {
		s.Logger.Debug("cache read failed", "file", f.rel, "error", err)
	}

	specs, err := ExtractImports(ctx, content)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse %s", f.rel)
	}

	if data, err := json.Marshal(specs); err == nil {
		if err := s.Cache.Set(ctx, key, data, cache.ImportsTTL); err != nil {
			s.Logger.Debug("cache write failed", "file", f.rel, "error", err)
		}
	}
	return specs, false, nil
}

// build assembles the document: internal nodes in walk order, then external
// nodes in order of first use, then one edge per distinct (importer, target)
// pair in import order.
func build(cfg Config, files []sourceFile, imports [][]string, stats Stats) (graph.Graph, Stats) {
	g := graph.Graph{Title: cfg.Title}
	res := newResolver(files, cfg.ModuleResolution)

	internalID := make(map[string]string, len(files))
	for _, f := range files {
		id := nodeID("internal", f.rel)
		internalID[f.rel] = id
		g.Nodes = append(g.Nodes, graph.Node{
			ID:           id,
			Kind:         graph.KindInternal,
			Label:        Label(f.rel),
			PathAbsolute: f.abs,
			PathRelative: f.rel,
		})
	}

	externalID := make(map[string]string)
	var externals []graph.Node
	seenEdge := make(map[string]bool)
	seenSpec := make(map[string]bool)

	for i, f := range files {
		src := internalID[f.rel]
		for _, spec := range imports[i] {
			seenSpec[spec] = true

			var dst string
			if target, ok := res.resolve(f.rel, spec); ok {
				dst = internalID[target]
			} else if id, ok := externalID[spec]; ok {
				dst = id
			} else {
				dst = nodeID("external", spec)
				externalID[spec] = dst
				externals = append(externals, graph.Node{ID: dst, Kind: graph.KindExternal, Label: spec})
			}

			eid := edgeID(src, dst)
			if seenEdge[eid] {
				continue
			}
			seenEdge[eid] = true
			g.Edges = append(g.Edges, graph.Edge{ID: eid, SourceID: src, TargetID: dst})
		}
	}
	g.Nodes = append(g.Nodes, externals...)

	stats.Internal = len(files)
	stats.External = len(externals)
	stats.Edges = len(g.Edges)
	stats.Unique = len(seenSpec)
	return g, stats
}

func nodeID(kind, name string) string {
	return uuid.NewSHA1(idNamespace, []byte(kind+":"+name)).String()
}

func edgeID(src, dst string) string {
	return uuid.NewSHA1(idNamespace, []byte("edge:"+src+"->"+dst)).String()
}
