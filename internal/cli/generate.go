package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/modgraph/pkg/graph"
	"github.com/matzehuels/modgraph/pkg/scan"
)

const defaultConfigFile = "modgraph.toml"

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	config  string // TOML config path
	output  string // graph document path
	title   string // overrides the config title
	noCache bool   // parse every file, bypassing the import cache
	workers int    // parallel parsers
}

// generateCommand creates the generate command, which scans a source tree
// into a graph document.
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{config: defaultConfigFile, output: defaultGraphFile}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Scan a source tree into a graph document",
		Long: `Scan the source tree named by the config file and write its module graph.

Every .js, .jsx, .ts and .tsx file becomes an internal node. Imports that do
not resolve to a scanned file become external nodes. Example config:

  title = "web"
  path = "./src"
  exclude = ["node_modules", "dist"]

  [[module_resolution]]
  pattern = "@/"
  replacement = ""`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", opts.config, "config file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output graph document")
	cmd.Flags().StringVar(&opts.title, "title", "", "document title (overrides the config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the import cache")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "parallel parsers (default GOMAXPROCS)")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, opts generateOpts) error {
	cfg, err := scan.LoadConfig(opts.config)
	if err != nil {
		return err
	}
	if opts.title != "" {
		cfg.Title = opts.title
	}

	ch, err := c.newCache(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer ch.Close()

	scanner := scan.NewScanner(ch, loggerFromContext(ctx))
	scanner.Workers = opts.workers

	var spin *Spinner
	if isatty.IsTerminal(os.Stderr.Fd()) {
		spin = newSpinnerWithContext(ctx, fmt.Sprintf("Scanning %s", cfg.Path))
		spin.Start()
	}
	g, stats, err := scanner.ScanWithStats(ctx, cfg)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	if err := graph.WriteGraphFile(g, opts.output); err != nil {
		return err
	}

	if stats.Files == 0 {
		printWarning("No source files found under %s", cfg.Path)
	}
	printSuccess("Scanned %d files in %s", stats.Files, stats.Duration.Round(time.Millisecond))
	printScanStats(stats)
	printFile(opts.output)
	printNextStep("Explore it", fmt.Sprintf("%s view %s", appName, opts.output))
	return nil
}
