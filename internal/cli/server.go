package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"stage-game-service/internal/app"
	"stage-game-service/internal/config"
	"stage-game-service/internal/content"
	"stage-game-service/internal/domain"
	"stage-game-service/internal/i18n"
	"stage-game-service/internal/infra/memory"
	pgstore "stage-game-service/internal/infra/postgres"
	redisstore "stage-game-service/internal/infra/redis"
	"stage-game-service/internal/logger"
	transport "stage-game-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the game server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func loadConfig(path string) (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, nil, err
	}
	log, err := logger.New(cfg.Log.Env)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, log, nil
}

// catalogLoader is what both the embedded and Postgres game sources provide.
type catalogLoader interface {
	memory.GameLoader
	app.GameCatalog
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, log, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	bundle, err := i18n.Load(i18n.Config{Locale: cfg.Locale.Default, FallbackLocale: cfg.Locale.Fallback}, content.Locales, content.LocalesRoot)
	if err != nil {
		return err
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 30*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	embedded, err := content.Games()
	if err != nil {
		return err
	}

	var (
		loader   catalogLoader = memory.NewStaticGameLoader(embedded)
		metadata app.MetadataLookup
		prefs    app.PreferenceStore
	)
	if pool != nil {
		loader = pgstore.NewGameLoader(pool)
		metadata = pgstore.NewMetadataLookup(pool)
		prefs = pgstore.NewPreferenceStore(pool)
	} else {
		metadata = memory.NewStaticMetadata(rewardsOf(embedded))
	}
	if prefs == nil && redisClient != nil {
		prefs = redisstore.NewPreferenceStore(redisClient)
	}
	if prefs == nil {
		prefs = memory.NewPreferenceStore()
	}

	cacheTTL := config.TTLDuration(cfg.Cache.TTL, 10*time.Minute)
	var games app.GameRepository
	if redisClient != nil {
		games = redisstore.NewGameRepository(redisClient, loader, cacheTTL)
	} else {
		games = memory.NewGameRepository(loader, cacheTTL)
	}

	var store app.SessionRepository
	if redisClient != nil {
		store = redisstore.NewSessionStore(redisClient, redisTTL)
	} else {
		store = memory.NewSessionStore()
	}

	service := app.NewGameService(store, games, cfg.GameConfig(),
		app.WithCatalog(loader),
		app.WithMetadata(metadata),
		app.WithTranslator(bundle),
		app.WithPreferences(prefs),
		app.WithLogger(log.Named("game")),
	)
	wsHandler := transport.NewWSHandler(service, log.Named("ws"))
	apiHandler := transport.NewAPIHandler(service, bundle, prefs, log.Named("api"))

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	apiHandler.Register(mux)

	// No WriteTimeout: it would cut long-lived websocket connections.
	server := &http.Server{
		Addr:              ":" + finalPort,
		Handler:           mux,
		ReadHeaderTimeout: 15 * time.Second,
	}

	go func() {
		log.Info("starting game service",
			zap.String("addr", server.Addr),
			zap.Bool("redis", redisClient != nil),
			zap.Bool("postgres", pool != nil),
			zap.Strings("locales", bundle.Locales()),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		log.Info("shutting down server", zap.String("signal", sig.String()))
	case <-ctx.Done():
		log.Info("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func rewardsOf(games map[string]domain.Game) map[string]domain.GameData {
	out := make(map[string]domain.GameData, len(games))
	for id, g := range games {
		out[id] = domain.GameData{Coins: g.Reward.Coins, XP: g.Reward.XP}
	}
	return out
}
