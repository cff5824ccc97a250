package service

import (
	"context"
	"fmt"

	"github.com/kobex777/AnyMaps/internal/logging"
	"github.com/kobex777/AnyMaps/internal/mindmap/domain"
	"github.com/kobex777/AnyMaps/internal/mindmap/ingest/validator"
	"github.com/kobex777/AnyMaps/internal/mindmap/llm"
	"github.com/kobex777/AnyMaps/internal/mindmap/prompts"
	"github.com/kobex777/AnyMaps/internal/mindmap/salvage"
)

// Models names the model used for each pipeline role.
type Models struct {
	Planner string
	Builder string
	Vision  string
}

// Pipeline chains prompt formatting, model calls and salvage. It holds no
// per-request state and is safe for concurrent use.
type Pipeline struct {
	gateway llm.Gateway
	models  Models
}

func NewPipeline(gateway llm.Gateway, models Models) *Pipeline {
	return &Pipeline{gateway: gateway, models: models}
}

// Enhanced is the result of EnhancePlan.
type Enhanced struct {
	Spec    domain.DiagramSpec
	Summary string
}

// AnalyzeImage asks the vision model to describe image for map planning.
func (p *Pipeline) AnalyzeImage(ctx context.Context, image string) (string, error) {
	logger := logging.NewLogger(ctx)
	c := llm.FromRequest(p.models.Vision, prompts.Vision())
	c.ImageURL = llm.ImageDataURI(image)

	logger.LogDebugf("analyze_image", "image=%s", logging.Redact(c.ImageURL))
	desc, err := p.gateway.Complete(ctx, c)
	if err != nil {
		return "", fmt.Errorf("analyze image: %w", err)
	}
	return desc, nil
}

// GeneratePlan turns a prompt, and optionally an image, into a validated spec.
func (p *Pipeline) GeneratePlan(ctx context.Context, userPrompt, image string) (domain.DiagramSpec, error) {
	logger := logging.NewLogger(ctx)

	var desc string
	if image != "" {
		d, err := p.AnalyzeImage(ctx, image)
		if err != nil {
			return domain.DiagramSpec{}, err
		}
		desc = d
	}

	text, err := p.gateway.Complete(ctx, llm.FromRequest(p.models.Planner, prompts.Plan(userPrompt, desc)))
	if err != nil {
		return domain.DiagramSpec{}, fmt.Errorf("generate plan: %w", err)
	}

	spec, err := p.salvageSpec(text)
	if err != nil {
		return domain.DiagramSpec{}, fmt.Errorf("generate plan: %w", err)
	}
	logger.LogInfof("generate_plan", "title=%q nodes=%d edges=%d", spec.Title, len(spec.Nodes), len(spec.Edges))
	return spec, nil
}

// BuildSyntax renders spec as Mermaid mindmap text.
func (p *Pipeline) BuildSyntax(ctx context.Context, spec domain.DiagramSpec) (string, error) {
	req, err := prompts.Build(spec)
	if err != nil {
		return "", fmt.Errorf("build syntax: %w", err)
	}
	text, err := p.gateway.Complete(ctx, llm.FromRequest(p.models.Builder, req))
	if err != nil {
		return "", fmt.Errorf("build syntax: %w", err)
	}
	return salvage.StripFence(text, "mermaid"), nil
}

// GenerateFull runs GeneratePlan then BuildSyntax. The build step is skipped
// when planning fails.
func (p *Pipeline) GenerateFull(ctx context.Context, userPrompt, image string) (domain.DiagramSpec, string, error) {
	spec, err := p.GeneratePlan(ctx, userPrompt, image)
	if err != nil {
		return domain.DiagramSpec{}, "", err
	}
	syntax, err := p.BuildSyntax(ctx, spec)
	if err != nil {
		return domain.DiagramSpec{}, "", err
	}
	return spec, syntax, nil
}

// EnhancePlan re-prompts with the current spec and a change request. The
// input spec is never modified.
func (p *Pipeline) EnhancePlan(ctx context.Context, current domain.DiagramSpec, request string, mode domain.EnhanceMode) (Enhanced, error) {
	logger := logging.NewLogger(ctx)
	original := current.Clone()
	if mode == "" {
		mode = domain.ModeExpand
	}

	req, err := prompts.Enhance(original, request, mode)
	if err != nil {
		return Enhanced{}, fmt.Errorf("enhance plan: %w", err)
	}

	text, err := p.gateway.Complete(ctx, llm.FromRequest(p.models.Planner, req))
	if err != nil {
		return Enhanced{}, fmt.Errorf("enhance plan: %w", err)
	}

	enhanced, err := p.salvageSpec(text)
	if err != nil {
		return Enhanced{}, fmt.Errorf("enhance plan: %w", err)
	}

	added := countAdded(original, enhanced)
	if budget := prompts.NewNodeBudget(len(original.Nodes)); added > budget {
		logger.LogWarnf("enhance_plan", "model added %d nodes, advisory cap is %d", added, budget)
	}

	summary := Summarize(original, enhanced)
	logger.LogInfof("enhance_plan", "mode=%s changes=%q", mode, summary)
	return Enhanced{Spec: enhanced, Summary: summary}, nil
}

func (p *Pipeline) salvageSpec(text string) (domain.DiagramSpec, error) {
	spec, err := salvage.Salvage(text)
	if err != nil {
		return domain.DiagramSpec{}, err
	}
	if err := validator.CheckStructure(spec); err != nil {
		return domain.DiagramSpec{}, err
	}
	return spec, nil
}
