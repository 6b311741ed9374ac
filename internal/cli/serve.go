package cli

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/modgraph/pkg/server"
	"github.com/matzehuels/modgraph/pkg/viewer"
)

const defaultAddr = ":8080"

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string
	watch    bool
	debounce time.Duration
	reveal   []string
}

// serveCommand creates the serve command, which exposes one explorer session
// over HTTP and pushes every change to WebSocket clients.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: defaultAddr, debounce: server.DefaultDebounce}

	cmd := &cobra.Command{
		Use:   "serve <graph.json>",
		Short: "Serve the explorer over HTTP",
		Long: `Serve one explorer session over HTTP. Clients mutate it with the JSON API
under /api and receive the current scene on /api/ws after every change.

With --watch the document is reloaded whenever it is rewritten (for example by
generate); nodes that still exist keep their place in the view.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "reload the document when it changes")
	cmd.Flags().DurationVar(&opts.debounce, "debounce", opts.debounce, "quiet period before a reload")
	cmd.Flags().StringSliceVar(&opts.reveal, "reveal", nil, "node(s) to reveal at startup")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, path string, opts serveOpts) error {
	var engineOpts []viewer.Option
	if opts.watch {
		engineOpts = append(engineOpts, viewer.WithKeepVisibleOnLoad())
	}
	e, err := c.loadEngine(path, engineOpts...)
	if err != nil {
		return err
	}
	for _, ref := range opts.reveal {
		id, err := resolveNode(e, ref)
		if err != nil {
			return err
		}
		if err := e.RevealNode(id); err != nil {
			return err
		}
	}

	ln, err := net.Listen("tcp", opts.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", opts.addr, err)
	}

	hub := server.NewHub(c.Logger)
	session := server.NewSession(e, hub)
	srv := server.New(session, hub, c.Logger)

	printSuccess("Serving %s", e.Graph().Title)
	printKeyValue("Document", path)
	printKeyValue("API", StyleLink.Render(httpURL(ln.Addr())+"/api/state"))
	printKeyValue("Live", StyleLink.Render(strings.Replace(httpURL(ln.Addr()), "http", "ws", 1)+"/api/ws"))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Serve(ctx, ln) })
	if opts.watch {
		g.Go(func() error {
			logger := loggerFromContext(ctx)
			return server.WatchFile(ctx, path, opts.debounce, logger, func() {
				prog := newProgress(logger)
				if err := session.Reload(path); err != nil {
					logger.Warn("reload failed, keeping current graph", "path", path, "err", err)
					return
				}
				prog.done("reloaded " + path)
			})
		})
	}
	return g.Wait()
}

// httpURL turns a listener address into a URL a browser can open.
func httpURL(addr net.Addr) string {
	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return "http://" + addr.String()
	}
	if host == "" || host == "::" || host == "0.0.0.0" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}
