// Package http exposes the generation core over a JSON API.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/contentsage/contentsage-api/internal/database"
	"github.com/contentsage/contentsage-api/internal/domain/content"
	"github.com/contentsage/contentsage-api/internal/orchestrator"
	"github.com/contentsage/contentsage-api/internal/registry"
	"github.com/contentsage/contentsage-api/internal/template"
)

// Generator is the part of the orchestrator the routes depend on.
// *orchestrator.Orchestrator implements it.
type Generator interface {
	Generate(ctx context.Context, topic string, kind content.Kind, raw map[string]any) (content.Result, error)
	Select(ctx context.Context, id string) (registry.Descriptor, error)
	Current() orchestrator.ModelInfo
	Models() []orchestrator.ModelInfo
	Recommend(kind content.Kind, req registry.Requirements) []registry.Recommendation
	Stats() map[string]orchestrator.Usage
	Status(ctx context.Context) orchestrator.SystemStatus
}

// Server holds the dependencies of the HTTP API.
type Server struct {
	gen     Generator
	history database.HistoryRepository
	store   *template.Store
	origins []string
}

// NewServer wires the API. history may be nil, in which case generations are
// not saved and the history routes are not registered.
func NewServer(gen Generator, history database.HistoryRepository, store *template.Store, origins []string) *Server {
	if store == nil {
		store = template.Default()
	}
	return &Server{
		gen:     gen,
		history: history,
		store:   store,
		origins: origins,
	}
}

// RegisterRoutes builds the gin engine with middleware and every endpoint.
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	r.Use(Recovery())
	r.Use(Metrics())
	r.Use(CORS(s.origins))

	r.GET("/health", s.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")

	for _, kind := range content.Kinds {
		g := v1.Group("/" + kind.String())
		g.POST("/generate", s.handleGenerate(kind))
		g.POST("/validate", s.handleValidate(kind))
		g.GET("/templates", s.handleTemplates(kind))
	}

	models := v1.Group("/models")
	models.GET("", s.handleListModels)
	models.GET("/current", s.handleCurrentModel)
	models.POST("/switch", s.handleSwitchModel)
	models.POST("/recommendations", s.handleRecommendations)
	models.GET("/stats", s.handleModelStats)
	models.GET("/status", s.handleModelStatus)

	if s.history != nil {
		history := v1.Group("/history")
		history.GET("", s.handleListHistory)
		history.GET("/stats", s.handleHistoryStats)
		history.GET("/:id", s.handleGetHistory)
		history.PUT("/:id", s.handleUpdateHistory)
		history.DELETE("/:id", s.handleDeleteHistory)
	}

	r.NoRoute(func(c *gin.Context) {
		abortWith(c, http.StatusNotFound, CodeNotFound, "endpoint not found")
	})

	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	current := s.gen.Current()
	c.JSON(http.StatusOK, gin.H{
		"status":          "healthy",
		"current_backend": current.ID,
		"backend_ready":   current.Available,
		"history_enabled": s.history != nil,
		"timestamp":       time.Now().UTC(),
	})
}
