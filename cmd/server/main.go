package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/config"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/infra"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/repository"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/router"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Timezone).Msg("invalid timezone")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Worker pool for async jobs (low-stock alert emails). Wired here, at the
	// composition root, so the pool sees the same infrastructure the HTTP
	// layer does.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := infra.NewMailer(cfg)
	pool := worker.NewPool(rdb, map[string]worker.Processor{
		"low_stock_alert": worker.NewLowStockWorker(mailer),
	})
	pool.Start(ctx, cfg.WorkerPoolSize)

	// Warm the config row so the first close never races row creation.
	if _, err := repository.NewConfigRepository(db).Get(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize system config")
	}

	r := router.New(cfg, db, rdb, mailer, loc)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("POS backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
