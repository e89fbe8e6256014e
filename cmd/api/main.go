package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sehatsetu/sehatsetu-api/internal/ai"
	"github.com/sehatsetu/sehatsetu-api/internal/audit"
	"github.com/sehatsetu/sehatsetu-api/internal/cache"
	"github.com/sehatsetu/sehatsetu-api/internal/config"
	dbpkg "github.com/sehatsetu/sehatsetu-api/internal/db"
	"github.com/sehatsetu/sehatsetu-api/internal/identity"
	"github.com/sehatsetu/sehatsetu-api/internal/logger"
	"github.com/sehatsetu/sehatsetu-api/internal/routes"
	"github.com/sehatsetu/sehatsetu-api/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("production", "info")
		boot.Fatal().Err(err).Msg("load config")
	}

	log := logger.New(cfg.Env, cfg.LogLevel)

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	if err := dbpkg.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	var queryCache cache.Cache = cache.NewMemory()
	if cfg.RedisURL != "" {
		client, err := cache.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("connect redis")
		}
		defer client.Close()
		queryCache = cache.NewRedis(client)
	}

	var store storage.ObjectStore = storage.Disabled{}
	s3Store, err := storage.NewS3Store(storage.S3Config{
		Bucket:        cfg.S3Bucket,
		Region:        cfg.S3Region,
		Endpoint:      cfg.S3Endpoint,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		PublicBaseURL: cfg.S3PublicBaseURL,
	})
	switch {
	case err == nil:
		store = s3Store
	case errors.Is(err, storage.ErrNotConfigured):
		log.Warn().Msg("S3_BUCKET not set, profile picture uploads disabled")
	default:
		log.Fatal().Err(err).Msg("configure object storage")
	}

	if cfg.GeminiAPIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY not set, AI endpoints will report ai_unavailable")
	}

	discoverCtx, cancelDiscover := context.WithTimeout(context.Background(), 15*time.Second)
	verifier, err := identity.New(discoverCtx, identity.Options{
		Secret:   cfg.IdentitySecret,
		Issuer:   cfg.IdentityIssuer,
		Audience: cfg.IdentityAudience,
		JWKSURL:  cfg.IdentityJWKSURL,
	})
	cancelDiscover()
	if err != nil {
		log.Fatal().Err(err).Msg("configure token verification")
	}

	auditLogs := audit.New(db)
	dispatcher := audit.NewDispatcher(auditLogs, log)

	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		Config:    cfg,
		Log:       log,
		DB:        db,
		Cache:     queryCache,
		Store:     store,
		Assistant: ai.NewClient(cfg.GeminiBaseURL, cfg.GeminiModel, cfg.GeminiAPIKey, cfg.AITimeout),
		Verifier:  verifier,
		Audit:     dispatcher,
		AuditLogs: auditLogs,
	})

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
	}

	dispatcher.Close()

	if err := dbpkg.Close(db); err != nil {
		log.Error().Err(err).Msg("close database")
	}
}
