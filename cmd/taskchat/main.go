package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"taskchat/internal/di"
	"taskchat/internal/infrastructure/env"

	gfshutdown "github.com/gelmium/graceful-shutdown"
)

const shutdownTimeout = 30 * time.Second

func main() {
	envService := env.NewEnvService()
	cfg := di.ConfigFromEnv(envService)

	container, err := di.NewContainer(cfg)
	if err != nil {
		log.Fatalf("Failed to initialise: %v", err)
	}

	if cfg.OpenAIAPIKey == "" {
		container.Logger.Warn("OPENAI_API_KEY is not set; chat requests will fail")
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           container.Handler,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.ChatTimeout + 10*time.Second,
	}

	go func() {
		container.Logger.Info("HTTP server listening", "addr", cfg.HTTPAddr, "env", cfg.AppEnv)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			container.Logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				container.Logger.Info("Graceful shutdown initiated")
				if err := server.Shutdown(ctx); err != nil {
					return err
				}
				return container.Close()
			},
		},
	)

	exitCode := <-wait
	os.Exit(exitCode)
}
