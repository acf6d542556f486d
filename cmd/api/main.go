package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/nyaysaathi/legal-assistant/internal/adapters/http"
	"github.com/nyaysaathi/legal-assistant/internal/bootstrap"
	"github.com/nyaysaathi/legal-assistant/internal/config"
	"github.com/nyaysaathi/legal-assistant/internal/observability/logging"
	"github.com/nyaysaathi/legal-assistant/internal/observability/metrics"
)

func main() {
	cfg := config.Load()
	logger := logging.New("legal-assistant-api", cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	m := metrics.NewHTTPServerMetrics("legal-assistant-api")
	router := httpadapter.NewRouter(app.AnswerUC, app.IngestUC, app.Repo, app.LinkMap, m).Handler()
	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("api listening", slog.String("port", cfg.APIPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("api server error: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("api shutdown error", slog.Any("error", err))
	}
}
