package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/anchorage/internal/server"
	"github.com/matzehuels/anchorage/pkg/store"
)

const serveShutdownTimeout = 10 * time.Second

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string // listen address; config listen when empty
	backend string // layout store backend; config store.backend when empty
	noCache bool
}

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Endpoints:
  POST   /v1/solve          solve the scene in the request body
  GET    /v1/layouts/{id}   fetch a stored layout
  DELETE /v1/layouts/{id}   delete a stored layout
  GET    /healthz           liveness and build information

Solved layouts are stored with ?store=true in the configured backend: file
(default, ~/.local/share/anchorage/layouts), mongo, memory or none.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config, else :8080)")
	cmd.Flags().StringVar(&opts.backend, "store", "", "layout store: file, mongo, memory, none (default from config, else file)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	if opts.addr == "" {
		opts.addr = c.Config.Listen
	}
	if opts.backend == "" {
		opts.backend = c.Config.Store.Backend
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	st, err := c.openStore(ctx, opts.backend)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}

	ln, err := net.Listen("tcp", opts.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", opts.addr, err)
	}
	srv := &http.Server{
		Handler:           server.New(server.Config{Runner: runner, Store: st, Logger: c.Logger}).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	printSuccess("Serving on %s", StyleLink.Render("http://"+ln.Addr().String()))
	printKeyValue("store", opts.backend)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), serveShutdownTimeout)
		defer cancel()
		c.Logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// openStore opens the named layout store backend. "none" returns nil.
func (c *CLI) openStore(ctx context.Context, backend string) (store.Store, error) {
	cfg := c.Config.Store
	switch backend {
	case storeFile:
		st, err := store.NewFileStore(cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("open layout store: %w", err)
		}
		return st, nil
	case storeMongo:
		st, err := store.NewMongoStore(ctx, store.MongoConfig{
			URI:        cfg.MongoURI,
			Database:   cfg.MongoDatabase,
			Collection: cfg.MongoCollection,
		})
		if err != nil {
			return nil, fmt.Errorf("open layout store: %w", err)
		}
		return st, nil
	case storeMemory:
		return store.NewMemoryStore(), nil
	case storeNone:
		return nil, nil
	}
	return nil, fmt.Errorf("unknown store backend %q (must be file, mongo, memory or none)", backend)
}
