package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tannerbroberts/abouttime/internal/server"
	"github.com/tannerbroberts/abouttime/pkg/template"
)

// serveCommand creates the serve command exposing the library over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
		noWatch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the library over HTTP",
		Long: `Run an HTTP server over the library. Endpoints:

  GET /api/templates                 list every template
  GET /api/templates/{id}            one template
  GET /api/templates/{id}/timeline   computed lane layout
  GET /api/suggest?q=                lane suggestions by intent
  GET /healthz                       liveness and library state

The library file is watched for changes and reloaded live; computed
responses are cached keyed by the library content hash, so edits
invalidate stale entries automatically. With a configured mongo
library the snapshot is loaded once at startup instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			backend := c.newCache(noCache)
			defer func() { _ = backend.Close() }()

			if addr == "" {
				addr = c.Config.Server.Addr
			}

			// The mongo backend has no change feed, so live reload only
			// applies when serving from the library file.
			var (
				snapshot *template.Store
				hash     string
				source   string
			)
			watch := !noWatch
			if c.useMongo() {
				ms, err := c.mongoStore(ctx)
				if err != nil {
					logger.Warn("mongo unavailable, serving the library file", "error", err)
				} else {
					defer func() { _ = ms.Close(ctx) }()
					snapshot = ms.LoadStore(ctx)
					hash = ms.Hash(ctx)
					source = "mongo:" + c.Config.Mongo.Name
					watch = false
				}
			}
			fs := c.fileStore()
			if snapshot == nil {
				snapshot = fs.LoadStore()
				hash = fs.Hash()
				source = fs.Path()
			}

			srv := server.New(server.Config{
				Addr:      addr,
				Logger:    logger,
				Cache:     backend,
				Keyer:     c.cacheKeyer(backend),
				RateLimit: c.Config.Server.RateLimit,
			}, snapshot, hash)

			if watch {
				go func() {
					err := fs.Watch(ctx, logger, func(reloaded *template.Store) {
						srv.Swap(reloaded, fs.Hash())
					})
					if err != nil && ctx.Err() == nil {
						logger.Warn("library watch stopped", "error", err)
					}
				}()
			}

			printInfo("Serving %s on http://%s", source, addr)
			if err := srv.ListenAndServe(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			printSuccess("Server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable response caching")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "disable live library reload")

	return cmd
}
