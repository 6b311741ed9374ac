// Package cli implements the modgraph command-line interface.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/modgraph/pkg/buildinfo"
	"github.com/matzehuels/modgraph/pkg/cache"
	"github.com/matzehuels/modgraph/pkg/errors"
	"github.com/matzehuels/modgraph/pkg/graph"
	"github.com/matzehuels/modgraph/pkg/viewer"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "modgraph"

	// envRedisAddr selects the redis cache backend when --redis-addr is unset.
	envRedisAddr = "MODGRAPH_REDIS_ADDR"

	// defaultGraphFile is where generate writes and the other commands read.
	defaultGraphFile = "graph.json"
)

const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	redisAddr string
	verbose   bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "modgraph explores the module graph of a TypeScript project",
		Long: `modgraph scans a TypeScript project into a module dependency graph and lets you
explore it incrementally: start from one module and reveal its importers and
imports step by step, in the terminal, as a rendered diagram or in a browser.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			installHooks(c.Logger)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "debug logging, including engine, scan and cache events")
	root.PersistentFlags().StringVar(&c.redisAddr, "redis-addr", "", "redis address for the import cache (env "+envRedisAddr+")")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Cache Factory
// =============================================================================

// newCache picks the import cache backend: none, redis or the file cache.
// An unreachable redis falls back to the file cache with a warning.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}

	if addr := c.redisAddress(); addr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: addr})
		if err == nil {
			c.Logger.Debug("using redis cache", "addr", addr)
			return cache.NewScopedCache(rc, appName), nil
		}
		c.Logger.Warn("redis unavailable, using file cache", "addr", addr, "err", err)
	}

	dir, err := cache.DefaultDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return cache.NewScopedCache(fc, appName), nil
}

func (c *CLI) redisAddress() string {
	if c.redisAddr != "" {
		return c.redisAddr
	}
	return os.Getenv(envRedisAddr)
}

// =============================================================================
// Graph Loading
// =============================================================================

// loadEngine reads the graph document at path and returns an engine holding it.
func (c *CLI) loadEngine(path string, opts ...viewer.Option) (*viewer.Engine, error) {
	g, err := c.readGraph(path)
	if err != nil {
		return nil, err
	}
	e := viewer.New(opts...)
	e.Load(g)
	return e, nil
}

// readGraph reads a graph document. Contract violations are logged, not fatal:
// the engine skips dangling edges on its own.
func (c *CLI) readGraph(path string) (graph.Graph, error) {
	g, err := graph.ReadGraphFile(path)
	if err != nil {
		return graph.Graph{}, err
	}
	if err := graph.Validate(g); err != nil {
		c.Logger.Warn("graph document has problems", "path", path, "err", err)
	}
	return g, nil
}

// resolveNode maps a node id or a relative path (for external nodes, the
// label) to a node id of the loaded graph.
func resolveNode(e *viewer.Engine, ref string) (string, error) {
	if _, ok := e.Index().Node(ref); ok {
		return ref, nil
	}
	for _, n := range e.Graph().Nodes {
		if n.SearchText() == ref {
			return n.ID, nil
		}
	}
	return "", errors.NotFound("no node matches %q", ref)
}
