package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/includeviz/internal/server"
	"github.com/matzehuels/includeviz/pkg/cache"
	"github.com/matzehuels/includeviz/pkg/observability"
	"github.com/matzehuels/includeviz/pkg/pipeline"
	"github.com/matzehuels/includeviz/pkg/storage"
)

const (
	shutdownGrace  = 10 * time.Second
	connectTimeout = 10 * time.Second
	redisKeyPrefix = appName + ":v1:"
)

// serveFlags holds the serve command's backend settings.
type serveFlags struct {
	addr          string
	redisAddr     string
	redisPassword string
	redisDB       int
	mongoURI      string
	mongoDB       string
}

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var f serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout HTTP API",
		Long: `Run the layout HTTP API.

Layouts are cached in Redis when --redis-addr is set and stored in MongoDB
when --mongo-uri is set. Without them the server keeps layouts in memory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), f)
		},
	}

	cmd.Flags().StringVar(&f.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&f.redisAddr, "redis-addr", "", "Redis address for the layout cache")
	cmd.Flags().StringVar(&f.redisPassword, "redis-password", "", "Redis password")
	cmd.Flags().IntVar(&f.redisDB, "redis-db", 0, "Redis database number")
	cmd.Flags().StringVar(&f.mongoURI, "mongo-uri", "", "MongoDB URI for layout storage")
	cmd.Flags().StringVar(&f.mongoDB, "mongo-db", storage.DefaultDatabase, "MongoDB database name")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, f serveFlags) error {
	hooks := observability.NewLogHooks(c.Logger)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	runner, err := c.serverRunner(ctx, f)
	if err != nil {
		return err
	}
	defer runner.Close()

	store, err := c.serverStore(ctx, f)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	srv := server.New(f.addr, server.NewHandler(runner, store, c.Logger), c.Logger)
	printSuccess("Listening on %s", f.addr)
	return srv.Run(ctx, shutdownGrace)
}

// serverRunner builds a runner backed by Redis, or by no cache at all.
// The CLI file cache is not used since the server may run several replicas.
func (c *CLI) serverRunner(ctx context.Context, f serveFlags) (*pipeline.Runner, error) {
	if f.redisAddr == "" || c.noCache {
		return pipeline.NewRunner(cache.NewNullCache(), nil, c.Logger), nil
	}
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	rc, err := cache.NewRedisCache(connectCtx, cache.RedisConfig{
		Addr:     f.redisAddr,
		Password: f.redisPassword,
		DB:       f.redisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	c.Logger.Info("using redis cache", "addr", f.redisAddr)
	return pipeline.NewRunner(rc, cache.NewScopedKeyer(cache.NewDefaultKeyer(), redisKeyPrefix), c.Logger), nil
}

// serverStore returns a Mongo store when a URI is configured, else memory.
func (c *CLI) serverStore(ctx context.Context, f serveFlags) (storage.Store, error) {
	if f.mongoURI == "" {
		c.Logger.Warn("no --mongo-uri given, layouts are kept in memory")
		return storage.NewMemoryStore(), nil
	}
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	ms, err := storage.NewMongoStore(connectCtx, storage.MongoConfig{URI: f.mongoURI, Database: f.mongoDB})
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	c.Logger.Info("using mongo store", "database", f.mongoDB)
	return ms, nil
}
