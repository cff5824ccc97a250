package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kobex777/AnyMaps/internal/logging"
	"github.com/kobex777/AnyMaps/internal/mindmap/domain"
)

// Logical failures are reported with HTTP 200 and success=false. Only
// unbindable bodies get a non-200 status.

// GeneratePlan handles POST /generate/plan
func (h *Handler) GeneratePlan(c *gin.Context) {
	var req GenerateRequest
	if !bind(c, &req) {
		return
	}
	logger := logging.NewLogger(c.Request.Context())

	spec, err := h.gen.GeneratePlan(c.Request.Context(), req.UserPrompt, req.ImageBase64)
	if err != nil {
		logger.LogError("generate_plan", err)
		c.JSON(http.StatusOK, PlanResponse{Success: false, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, PlanResponse{Success: true, PlannerSpec: &spec})
}

// BuildSyntax handles POST /generate/build
func (h *Handler) BuildSyntax(c *gin.Context) {
	var req BuildRequest
	if !bind(c, &req) {
		return
	}
	logger := logging.NewLogger(c.Request.Context())

	syntax, err := h.gen.BuildSyntax(c.Request.Context(), req.PlannerSpec.WithDefaults())
	if err != nil {
		logger.LogError("build_syntax", err)
		c.JSON(http.StatusOK, BuildResponse{Success: false, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, BuildResponse{Success: true, MermaidSyntax: syntax})
}

// GenerateFull handles POST /generate/full
func (h *Handler) GenerateFull(c *gin.Context) {
	var req GenerateRequest
	if !bind(c, &req) {
		return
	}
	logger := logging.NewLogger(c.Request.Context())

	spec, syntax, err := h.gen.GenerateFull(c.Request.Context(), req.UserPrompt, req.ImageBase64)
	if err != nil {
		logger.LogError("generate_full", err)
		c.JSON(http.StatusOK, FullResponse{Success: false, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, FullResponse{Success: true, PlannerSpec: &spec, MermaidSyntax: syntax})
}

// EnhancePlan handles POST /generate/enhance
func (h *Handler) EnhancePlan(c *gin.Context) {
	var req EnhanceRequest
	if !bind(c, &req) {
		return
	}
	if req.EnhanceMode == "" {
		req.EnhanceMode = domain.ModeExpand
	}
	logger := logging.NewLogger(c.Request.Context())

	out, err := h.gen.EnhancePlan(c.Request.Context(), req.CurrentSpec.WithDefaults(), req.EnhancePrompt, req.EnhanceMode)
	if err != nil {
		logger.LogError("enhance_plan", err)
		c.JSON(http.StatusOK, EnhanceResponse{Success: false, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, EnhanceResponse{Success: true, PlannerSpec: &out.Spec, ChangesSummary: out.Summary})
}

func bind(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		logging.NewLogger(c.Request.Context()).LogWarnf("bind", "rejected body on %s: %v", c.FullPath(), err)
		c.JSON(http.StatusUnprocessableEntity, validationError{Success: false, Error: err.Error()})
		return false
	}
	return true
}
