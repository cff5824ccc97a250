package main

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kobex777/AnyMaps/config"
	"github.com/kobex777/AnyMaps/internal/logging"
	"github.com/kobex777/AnyMaps/internal/mindmap/llm"
	"github.com/kobex777/AnyMaps/internal/mindmap/service"
)

// runPlan generates a full map for a prompt against the live model.
func runPlan(args []string, w io.Writer) error {
	if len(args) < 1 {
		return errors.New("usage: plan <prompt> [imageFile]")
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Setup(os.Stderr, cfg.App.LogLevel, cfg.App.Environment)

	var image string
	if len(args) > 1 {
		b, err := os.ReadFile(args[1])
		if err != nil {
			return err
		}
		image = base64.StdEncoding.EncodeToString(b)
	}

	client := llm.NewOpenRouterClient(llm.Options{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Referer: cfg.LLM.Referer,
		Title:   cfg.LLM.Title,
		Timeout: cfg.LLM.Timeout,
	})
	pipeline := service.NewPipeline(client, service.Models{
		Planner: cfg.LLM.PlannerModel,
		Builder: cfg.LLM.BuilderModel,
		Vision:  cfg.LLM.VisionModel,
	})

	ctx := logging.WithRequestID(context.Background(), "worker")
	spec, syntax, err := pipeline.GenerateFull(ctx, args[0], image)
	if err != nil {
		return err
	}
	if err := writeJSON(w, spec); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "\n%s\n", syntax)
	return err
}
