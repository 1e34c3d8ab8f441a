package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jentor/strata/internal/server"
	"github.com/jentor/strata/pkg/cache"
	"github.com/jentor/strata/pkg/pipeline"
	"github.com/jentor/strata/pkg/store"
)

const serverShutdownTimeout = 10 * time.Second

// serveCommand creates the serve command for running the HTTP layout API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		mongoURI string
		mongoDB  string
		noCache  bool
		memStore bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout API",
		Long: `Run the HTTP layout API.

The server exposes layout computation over HTTP:

  POST   /v1/layouts          compute a layout (optionally persist it)
  GET    /v1/layouts          list persisted layouts
  GET    /v1/layouts/{id}     fetch a persisted layout
  GET    /v1/layouts/{id}/svg render a persisted layout as SVG
  DELETE /v1/layouts/{id}     delete a persisted layout
  GET    /healthz             health check

By default layouts are cached on disk and persistence is disabled. Use
--redis for a shared cache and --mongo (or --memory-store for testing)
to enable persistence.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), serveOptions{
				Addr:     addr,
				RedisURL: redisURL,
				MongoURI: mongoURI,
				MongoDB:  mongoDB,
				NoCache:  noCache,
				MemStore: memStore,
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisURL, "redis", "", "redis URL for the layout cache (e.g. redis://localhost:6379/0)")
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "mongodb URI for layout persistence (e.g. mongodb://localhost:27017)")
	cmd.Flags().StringVar(&mongoDB, "mongo-db", "strata", "mongodb database name")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the layout cache")
	cmd.Flags().BoolVar(&memStore, "memory-store", false, "keep persisted layouts in memory")

	return cmd
}

type serveOptions struct {
	Addr     string
	RedisURL string
	MongoURI string
	MongoDB  string
	NoCache  bool
	MemStore bool
}

func (c *CLI) runServe(ctx context.Context, opts serveOptions) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	layoutCache, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(layoutCache, nil, c.Logger)
	defer runner.Close()

	st, err := c.serveStore(ctx, opts)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close(context.Background())
	}

	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           server.New(runner, st, c.Logger).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("server listening", "addr", opts.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// serveCache picks the layout cache backend from the serve flags.
func (c *CLI) serveCache(ctx context.Context, opts serveOptions) (cache.Cache, error) {
	switch {
	case opts.NoCache:
		return cache.NewNullCache(), nil
	case opts.RedisURL != "":
		rc, err := cache.NewRedisCache(ctx, opts.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Info("using redis cache")
		return rc, nil
	default:
		return newCache(false)
	}
}

// serveStore picks the persistence backend, nil when persistence is off.
func (c *CLI) serveStore(ctx context.Context, opts serveOptions) (store.Store, error) {
	switch {
	case opts.MongoURI != "":
		ms, err := store.NewMongoStore(ctx, opts.MongoURI, opts.MongoDB, "")
		if err != nil {
			return nil, fmt.Errorf("connect mongodb: %w", err)
		}
		c.Logger.Info("using mongodb store", "database", opts.MongoDB)
		return ms, nil
	case opts.MemStore:
		return store.NewMemoryStore(), nil
	default:
		return nil, nil
	}
}
