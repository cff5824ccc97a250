package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kobex777/AnyMaps/internal/mindmap/llm"
)

type InfoResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Health  string `json:"health"`
}

// Info handles GET / with a short description of the API.
func Info(name, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, InfoResponse{
			Name:    name,
			Version: version,
			Health:  "/api/health",
		})
	}
}

// Metrics handles GET /api/metrics.
func Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, llm.GetMetrics().Snapshot())
}
