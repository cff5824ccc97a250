package http

import "github.com/gin-gonic/gin"

// Register registers the generate routes
func (h *Handler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/generate")
	g.POST("/plan", h.GeneratePlan)
	g.POST("/build", h.BuildSyntax)
	g.POST("/full", h.GenerateFull)
	g.POST("/enhance", h.EnhancePlan)
}
