package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/letterdash-games/letterdash/internal/cache/cachelru"
	"github.com/letterdash-games/letterdash/internal/database"
	snapDb "github.com/letterdash-games/letterdash/internal/database/snapshot/database"
	"github.com/letterdash-games/letterdash/internal/logging"
	"github.com/letterdash-games/letterdash/internal/relay"
	"github.com/letterdash-games/letterdash/internal/shutdown"
)

type Config struct {
	bind      string
	port      int
	dbPath    string
	cacheSize int
	debug     bool
}

func (c *Config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.cacheSize < 1 {
		return fmt.Errorf("invalid cache size: %d", c.cacheSize)
	}
	return nil
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("LETTERDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "letterdash-relay",
		Short:         "Message relay carrying letterdash session snapshots between devices.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return serve(cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: LETTERDASH_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: LETTERDASH_PORT)")
	fs.StringVar(&cfg.dbPath, "db-path", "letterdash-relay.db", "path to the snapshot database (env: LETTERDASH_DB_PATH)")
	fs.IntVar(&cfg.cacheSize, "cache-size", 1024, "number of room snapshots kept in memory (env: LETTERDASH_CACHE_SIZE)")
	fs.BoolVar(&cfg.debug, "debug", false, "verbose logging (env: LETTERDASH_DEBUG)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("letterdash-relay v{{.Version}}\n")

	return cmd
}

func serve(cfg *Config) error {
	ctx, done := shutdown.New()
	defer done()

	logger := logging.NewLogger(cfg.debug).Named("relay")
	ctx = logging.WithLogger(ctx, logger)

	db, err := database.New(ctx, &database.Config{FilePath: cfg.dbPath})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close(ctx)

	snapCache, err := cachelru.NewLRU(cfg.cacheSize)
	if err != nil {
		return fmt.Errorf("can not create lru cache: %w", err)
	}

	hub := relay.NewHub(snapDb.New(db), snapCache, logger)

	srv := relay.NewServer(relay.ServerConfig{
		Bind:    cfg.bind,
		Port:    cfg.port,
		Version: releaseVersion,
	}, hub)

	return srv.Run(ctx)
}
