package http

import (
	"context"

	"github.com/kobex777/AnyMaps/internal/mindmap/domain"
	"github.com/kobex777/AnyMaps/internal/mindmap/service"
)

// Generator is the part of service.Pipeline the handlers need.
type Generator interface {
	GeneratePlan(ctx context.Context, userPrompt, image string) (domain.DiagramSpec, error)
	BuildSyntax(ctx context.Context, spec domain.DiagramSpec) (string, error)
	GenerateFull(ctx context.Context, userPrompt, image string) (domain.DiagramSpec, string, error)
	EnhancePlan(ctx context.Context, current domain.DiagramSpec, request string, mode domain.EnhanceMode) (service.Enhanced, error)
}

// Handler serves the /generate endpoints.
type Handler struct {
	gen Generator
}

func New(gen Generator) *Handler {
	return &Handler{gen: gen}
}

type GenerateRequest struct {
	UserPrompt  string `json:"user_prompt" binding:"required"`
	ImageBase64 string `json:"image_base64,omitempty"`
}

type BuildRequest struct {
	PlannerSpec *domain.DiagramSpec `json:"planner_spec" binding:"required"`
}

type EnhanceRequest struct {
	CurrentSpec   *domain.DiagramSpec `json:"current_spec" binding:"required"`
	EnhancePrompt string              `json:"enhance_prompt" binding:"required"`
	EnhanceMode   domain.EnhanceMode  `json:"enhance_mode" binding:"omitempty,oneof=expand refine focus simplify"`
}

type PlanResponse struct {
	Success     bool                `json:"success"`
	PlannerSpec *domain.DiagramSpec `json:"planner_spec,omitempty"`
	Error       string              `json:"error,omitempty"`
}

type BuildResponse struct {
	Success       bool   `json:"success"`
	MermaidSyntax string `json:"mermaid_syntax,omitempty"`
	Error         string `json:"error,omitempty"`
}

type FullResponse struct {
	Success       bool                `json:"success"`
	PlannerSpec   *domain.DiagramSpec `json:"planner_spec,omitempty"`
	MermaidSyntax string              `json:"mermaid_syntax,omitempty"`
	Error         string              `json:"error,omitempty"`
}

type EnhanceResponse struct {
	Success        bool                `json:"success"`
	PlannerSpec    *domain.DiagramSpec `json:"planner_spec,omitempty"`
	ChangesSummary string              `json:"changes_summary,omitempty"`
	Error          string              `json:"error,omitempty"`
}

// validationError is the body for requests gin could not bind.
type validationError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
