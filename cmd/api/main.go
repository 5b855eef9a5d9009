package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-wellness-timeline/internal/config"
	"pet-wellness-timeline/internal/platform/logger"
	"pet-wellness-timeline/internal/router"
)

// @title Pet Wellness Timeline API
// @version 1.0
// @description Timeline de bienestar por mascota: eventos agrupados por día, alertas de vencidos y progreso de hoy.
// @BasePath /
func main() {
	cfg := config.Parse()
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", map[string]any{"error": err})
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.NewRouter(router.Options{Config: cfg, Logger: log}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", map[string]any{"error": err})
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", map[string]any{"error": err})
	}
	log.Info("server stopped", nil)
}
