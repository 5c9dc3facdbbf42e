package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"roastbeats/internal/config"
	"roastbeats/internal/gemini"
	"roastbeats/internal/roast"
	"roastbeats/internal/server"
	"roastbeats/internal/session"
	"roastbeats/internal/spotify"
	"roastbeats/internal/store"
)

var (
	// Global flags
	cfgPath string
	verbose bool
	addr    string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "roastbeats",
	Short: "RoastBeats - AI roasts for your music taste",
	Long: `RoastBeats turns a listening profile into a comedic roast.

Users either authorize their Spotify account or type their taste in by
hand; either way the service compiles a roast prompt, sends it to the
Gemini backend, and serves the verdict. Without a GEMINI_API_KEY the
service still runs and serves the fallback roast.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

// serveCmd runs the HTTP server. It is also the root command's default.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the RoastBeats HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "roastbeats.yaml", "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&addr, "addr", "", "Listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	sessions, err := buildSessionStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to build session store: %w", err)
	}
	defer sessions.Close()

	spotifyClient := spotify.NewClient(logger.Named("spotify"))
	oauth := spotify.NewOAuth(cfg.Spotify.ClientID, cfg.Spotify.ClientSecret, cfg.Spotify.RedirectURI)

	geminiClient := gemini.NewClient(gemini.Config{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		Timeout: cfg.GenerationTimeout(),
	}, logger.Named("gemini"))
	if cfg.Gemini.APIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, serving fallback roasts only")
	}

	archive, err := store.Open(cfg.Store.DatabasePath)
	if err != nil {
		logger.Warn("roast archive unavailable, continuing without it", zap.Error(err))
		archive = nil
	} else {
		defer archive.Close()
	}

	deps := server.Deps{
		Sessions:  sessions,
		OAuth:     oauth,
		Resolver:  roast.NewResolver(spotifyClient, logger.Named("resolver")),
		Signals:   roast.NewSignalFetcher(spotifyClient, logger.Named("signals")),
		Generator: roast.NewGenerator(geminiClient, logger.Named("generator")),
		Log:       logger.Named("server"),
	}
	if archive != nil {
		deps.Archive = archive
	}

	srv, err := server.New(deps)
	if err != nil {
		return err
	}

	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Server.Addr))
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func buildSessionStore(cfg *config.Config) (session.Store, error) {
	switch cfg.Session.Driver {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.Session.RedisAddr})
		return session.NewStore(session.StoreTypeRedis,
			session.WithRedisClient(client),
			session.WithTTL(cfg.SessionTTL()))
	default:
		return session.NewStore(session.StoreTypeMemory,
			session.WithTTL(cfg.SessionTTL()))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
