package routes

import (
	httpapi "github.com/kobex777/AnyMaps/internal/api/http"
	mindmaphttp "github.com/kobex777/AnyMaps/internal/mindmap/http"

	"github.com/gin-gonic/gin"
)

type V1Deps struct {
	ServiceName string
	Version     string
	Generator   mindmaphttp.Generator
	// Cache is probed by the health check when set.
	Cache httpapi.Pinger
}

// RegisterV1 mounts the public API. Everything lives under /api except the
// root info endpoint.
func RegisterV1(r *gin.Engine, dep V1Deps) {
	r.GET("/", httpapi.Info(dep.ServiceName, dep.Version))

	api := r.Group("/api")

	httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Cache).RegisterRoutes(api)
	api.GET("/metrics", httpapi.Metrics)

	mindmaphttp.New(dep.Generator).Register(api)
}
