package main

import (
	"context"
	v1 "go-portfolio-backend/internal/delivery/http/v1"
	"go-portfolio-backend/internal/preview"
	"go-portfolio-backend/internal/repository/postgres"
	"go-portfolio-backend/internal/usecase"
	"go-portfolio-backend/pkg/auth"
	"go-portfolio-backend/pkg/database"
	"go-portfolio-backend/pkg/redis"
	"go-portfolio-backend/pkg/security/antivirus"
	"go-portfolio-backend/pkg/validation"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	clamAVTimeout   = 30 * time.Second
	shutdownTimeout = 5 * time.Second
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	if cfg.Release {
		gin.SetMode(gin.ReleaseMode)
	}
	log.Info().Str("port", cfg.Port).Bool("editable", cfg.Editable).Msg("starting portfolio backend")

	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		return errors.Wrap(err, "connect database")
	}
	defer dbPool.Close()

	// Redis only backs rate limiting and the thumbnail cache; both degrade without it.
	if err := redis.Initialize(ctx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, using in-memory rate limiting and no preview cache")
	}
	defer redis.Close()

	elementRepo := postgres.NewElementRepository(dbPool)
	evidenceRepo := postgres.NewEvidenceRepository(dbPool)
	aboutMeRepo := postgres.NewAboutMeRepository(dbPool)

	var scanner antivirus.Scanner = antivirus.NewNoOpScanner()
	if cfg.ClamAVAddress != "" {
		scanner = antivirus.NewChainScanner(antivirus.NewClamAVScanner(cfg.ClamAVAddress, clamAVTimeout))
	}

	validate := validation.New()
	elementUC := usecase.NewElementUsecase(elementRepo)
	evidenceUC := usecase.NewEvidenceUsecase(evidenceRepo, elementRepo, scanner, validate, cfg.MaxUploadBytes())
	aboutMeUC := usecase.NewAboutMeUsecase(aboutMeRepo, validate)

	healthUC := usecase.NewHealthUsecase(map[string]usecase.HealthCheck{
		"database": dbPool.Ping,
		"redis": func(ctx context.Context) error {
			if err := redis.HealthCheck(ctx); err != nil && !errors.Is(err, redis.ErrNotConfigured) {
				return err
			}
			return nil
		},
	})

	var cache preview.Cache
	if c := redis.Client(); c != nil {
		cache = preview.NewRedisCache(c)
	}
	previews := preview.NewService(preview.DefaultGenerator(), cache)

	router := v1.NewRouter(v1.RouterDeps{
		ElementUC:  elementUC,
		EvidenceUC: evidenceUC,
		AboutMeUC:  aboutMeUC,
		HealthUC:   healthUC,
		Previews:   previews,
		Signer:     auth.NewSigner(cfg.AdminTokenSecret),
		Config:     cfg,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return runServer(ctx, srv)
}

// runServer serves until ctx is done, then drains in-flight requests.
func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	log.Info().Msg("server exiting")
	return nil
}
