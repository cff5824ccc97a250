package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpapi "github.com/kobex777/AnyMaps/internal/api/http"
	"github.com/kobex777/AnyMaps/internal/api/http/middleware"
	"github.com/kobex777/AnyMaps/internal/api/http/routes"
	mindmaphttp "github.com/kobex777/AnyMaps/internal/mindmap/http"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	CORSOrigins []string
	Generator   mindmaphttp.Generator
	Cache       httpapi.Pinger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterV1(r, routes.V1Deps{
		ServiceName: dep.ServiceName,
		Version:     dep.Version,
		Generator:   dep.Generator,
		Cache:       dep.Cache,
	})

	return r
}
