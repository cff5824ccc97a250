package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kobex777/AnyMaps/config"
	"github.com/kobex777/AnyMaps/internal/bootstrap"
	"github.com/kobex777/AnyMaps/internal/cronjob"
	"github.com/kobex777/AnyMaps/internal/logging"
	"github.com/kobex777/AnyMaps/internal/mindmap/llm"
	"github.com/kobex777/AnyMaps/internal/mindmap/service"
)

const serviceName = "AnyMaps API"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// run returns instead of exiting so deferred cleanup always runs.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logging.Setup(os.Stderr, cfg.App.LogLevel, cfg.App.Environment)
	bootstrap.SetGinMode(cfg.App.Environment)

	slog.Info("configuration validated",
		"planner_model", cfg.LLM.PlannerModel,
		"builder_model", cfg.LLM.BuilderModel,
		"vision_model", cfg.LLM.VisionModel,
		"base_url", cfg.LLM.BaseURL,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cacheHandle, err := bootstrap.OpenCache(ctx, cfg.Cache)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	defer func() {
		if err := cacheHandle.Close(); err != nil {
			slog.Warn("cache close", "error", err)
		}
	}()

	client := llm.NewOpenRouterClient(llm.Options{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Referer: cfg.LLM.Referer,
		Title:   cfg.LLM.Title,
		Timeout: cfg.LLM.Timeout,
	})
	pipeline := service.NewPipeline(llm.WithCache(client, cacheHandle.Store), service.Models{
		Planner: cfg.LLM.PlannerModel,
		Builder: cfg.LLM.BuilderModel,
		Vision:  cfg.LLM.VisionModel,
	})

	if cfg.App.MetricsReportCron != "" {
		sched := cronjob.NewScheduler()
		if err := sched.Start(cfg.App.MetricsReportCron); err != nil {
			return fmt.Errorf("cron: %w", err)
		}
		defer sched.Stop()
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		CORSOrigins: cfg.CORS.Origins,
		Generator:   pipeline,
		Cache:       cacheHandle.Pinger,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", srv.Addr, "env", cfg.App.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
