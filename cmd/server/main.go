package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arinjayjha/calc-research-agent/internal/di"
	"github.com/arinjayjha/calc-research-agent/internal/infrastructure/env"
	"github.com/arinjayjha/calc-research-agent/internal/infrastructure/httpapi"
)

const shutdownTimeout = 10 * time.Second

func main() {
	envService := env.NewEnvService()
	debug := envService.GetBool("DEBUG", false)
	addr := envService.GetWithDefault("HTTP_ADDR", ":8080")

	container, err := di.NewContainer(envService, di.Config{Debug: debug})
	if err != nil {
		log.Fatalf("initialization failed: %v", err)
	}
	defer container.Close()

	server := httpapi.NewServer(httpapi.Config{
		Addr:             addr,
		SearchConfigured: container.SearchConfigured(),
		Deployment:       container.Deployment,
	}, container.Answerer, container.History, container.Logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			container.Logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-stop:
		container.Logger.Info("shutting down", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			container.Logger.Error("shutdown failed", "error", err)
		}
	}
}
