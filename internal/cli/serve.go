package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/isotrack/isotrack/internal/server"
	"github.com/isotrack/isotrack/pkg/cache"
	"github.com/isotrack/isotrack/pkg/config"
	"github.com/isotrack/isotrack/pkg/store"
)

// newServeCmd creates the serve command that runs the HTTP API.
func newServeCmd(configPath *string) *cobra.Command {
	var listen string
	var seed bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the diagram/flow API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Server.Listen = listen
			}
			return runServe(cmd.Context(), cfg, seed)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (overrides config)")
	cmd.Flags().BoolVar(&seed, "seed", true, "insert starter records into an empty store")

	return cmd
}

func runServe(ctx context.Context, cfg config.Config, seed bool) error {
	logger := loggerFromContext(ctx)

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			logger.Warn("store close failed", "err", err)
		}
	}()

	if seed {
		if err := store.Seed(ctx, st, cfg.Company.Name); err != nil {
			return err
		}
	}

	c, err := openCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	srv := server.New(st,
		server.WithLogger(logger),
		server.WithCompany(cfg.Company.Name),
		server.WithCache(c, cfg.CacheTTL()),
	)
	return srv.ListenAndServe(ctx, cfg.Server.Listen)
}

// openStore selects the persistence backend: MongoDB when a URI is
// configured, the in-memory store otherwise.
func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	logger := loggerFromContext(ctx)

	if cfg.Mongo.URI == "" {
		logger.Info("using in-memory store")
		return store.NewMemory(), nil
	}

	logger.Info("connecting to mongodb", "database", cfg.Mongo.Database)
	return store.NewMongo(ctx, store.MongoConfig{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
}

// openCache selects the snapshot cache backend: Redis when configured,
// the file cache when a directory is set, a null cache otherwise.
func openCache(ctx context.Context, cfg config.Config) (cache.Cache, error) {
	logger := loggerFromContext(ctx)

	if cfg.Redis.Addr != "" {
		logger.Info("connecting to redis", "addr", cfg.Redis.Addr)
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	if cfg.Cache.Dir != "" {
		logger.Debug("using file cache", "dir", cfg.Cache.Dir)
		return cache.NewFileCache(cfg.Cache.Dir)
	}
	return cache.NewNullCache(), nil
}
