package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"vizu/internal/adapter/repo"
	"vizu/internal/consult"
	"vizu/internal/flow"
	"vizu/internal/gateway"
	"vizu/internal/http/handlers"
	httpapi "vizu/internal/http/httpapi"
	"vizu/internal/infra"
	"vizu/internal/infra/geoip"
	"vizu/internal/profile"
	"vizu/internal/storage"
)

func main() {
	// Load .env (optional)
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()

	geo, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	if r, ok := geo.(*geoip.Resolver); ok {
		defer r.Close()
	}

	store, closeStore, err := newProfileRepository(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init profile store")
	}
	defer closeStore()

	archive, err := storage.NewArchive(cfg.StoragePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init look archive")
	}

	ai, err := gateway.NewGemini(ctx, gateway.Options{
		APIKey:        cfg.GeminiAPIKey,
		AnalysisModel: cfg.AnalysisModel,
		ImageModel:    cfg.ImageModel,
		EditModel:     cfg.EditModel,
		TextModel:     cfg.TextModel,
		Logger:        logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init gemini gateway")
	}

	service := consult.NewService(flow.NewSession(logger), ai, store, archive, logger)
	if err := service.Boot(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to boot session")
	}

	app := handlers.NewApp(service, geo, logger)
	router := httpapi.NewRouter(app, cfg)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}

// newProfileRepository picks the snapshot backend: Postgres when
// DATABASE_URL is set, otherwise a JSON file under the storage path.
func newProfileRepository(ctx context.Context, cfg *infra.Config, logger zerolog.Logger) (profile.Repository, func(), error) {
	if cfg.DatabaseURL == "" {
		store, err := profile.NewFileStore(cfg.StoragePath, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	pg := repo.NewProfileRepository(pool, logger)
	if err := pg.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return pg, pool.Close, nil
}
