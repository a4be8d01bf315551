package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"bus-route/pkg/config"
	"bus-route/pkg/content"
)

// Configuration flags
var (
	configPath   string
	contentLoc   string
	cacheBackend string
	cachePath    string
	portNumber   string
	verbose      bool
)

var logger = zap.NewNop()

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bus-route",
		Short: "Bus Route is a tool for previewing and serving a weekly photo route",
		Long: `Bus Route is a command line application for a weekly photo-essay site laid
out as a bus route. It reads the content document, previews the route and week
pages, checks image assets and serves the site for local development.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zc := zap.NewProductionConfig()
			if verbose {
				zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			l, err := zc.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	// Define persistent flags that will be available for all commands
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "busroute.yaml", "Path to the YAML config file")
	flags.StringVar(&contentLoc, "content", "", "Content location: URL, gs://bucket/object or file (overrides BUSROUTE_CONTENT)")
	flags.StringVar(&cacheBackend, "cache-backend", "", "Local cache backend: memory, sqlite or none (overrides BUSROUTE_CACHE_BACKEND)")
	flags.StringVar(&cachePath, "cache-path", "", "Local cache file (overrides BUSROUTE_CACHE_PATH)")
	flags.StringVarP(&portNumber, "port", "p", "", "Set the PORT (overrides BUSROUTE_PORT)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	// Add commands to root
	rootCmd.AddCommand(newListWeeksCmd())
	rootCmd.AddCommand(newShowWeekCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newCheckAssetsCmd())

	return rootCmd
}

// LoadConfig loads configuration with respect to command line flags
func LoadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if contentLoc != "" {
		cfg.Content = contentLoc
	}
	if cacheBackend != "" {
		cfg.CacheBackend = cacheBackend
	}
	if cachePath != "" {
		cfg.CachePath = cachePath
	}
	if portNumber != "" {
		cfg.Port = portNumber
	}
	return cfg, cfg.Validate()
}

// newStore builds the content store for cfg. The returned func releases the cache.
func newStore(cfg *config.Config) (*content.Store, func(), error) {
	source, err := content.NewSource(cfg.Content)
	if err != nil {
		return nil, nil, err
	}

	var local content.LocalCache
	closer := func() {}
	switch cfg.CacheBackend {
	case config.CacheMemory:
		mem, err := content.NewMemoryCache(cfg.CachePath)
		if err != nil {
			return nil, nil, err
		}
		local = mem
	case config.CacheSQLite:
		db, err := content.OpenSQLiteCache(cfg.CachePath)
		if err != nil {
			return nil, nil, err
		}
		local = db
		closer = func() { db.Close() }
	}

	return content.NewStore(source, local, content.WithLogger(logger)), closer, nil
}

// loadStore loads configuration and content for commands that read the document
func loadStore(cmd *cobra.Command) (*content.Store, func(), error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	store, closer, err := newStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	if _, err := store.Load(cmd.Context()); err != nil {
		closer()
		return nil, nil, err
	}
	return store, closer, nil
}
