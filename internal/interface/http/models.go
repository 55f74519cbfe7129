package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/contentsage/contentsage-api/internal/domain/content"
	"github.com/contentsage/contentsage-api/internal/registry"
)

func (s *Server) handleListModels(c *gin.Context) {
	ms := s.gen.Models()
	ok(c, gin.H{
		"models":        ms,
		"current_model": s.gen.Current().ID,
	})
}

func (s *Server) handleCurrentModel(c *gin.Context) {
	ok(c, s.gen.Current())
}

// SwitchRequest is the body of POST /api/v1/models/switch.
type SwitchRequest struct {
	Model string `json:"model"`
}

func (s *Server) handleSwitchModel(c *gin.Context) {
	var req SwitchRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Model == "" {
		abortWith(c, http.StatusBadRequest, CodeInvalidRequest, "model is required")
		return
	}

	d, err := s.gen.Select(c.Request.Context(), req.Model)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, gin.H{
		"message":       "switched to " + d.Name,
		"current_model": d.ID,
		"model":         d,
	})
}

// RecommendRequest is the body of POST /api/v1/models/recommendations.
type RecommendRequest struct {
	ContentType  string                `json:"content_type"`
	Requirements registry.Requirements `json:"requirements"`
}

func (s *Server) handleRecommendations(c *gin.Context) {
	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWith(c, http.StatusBadRequest, CodeInvalidRequest, "invalid request payload")
		return
	}
	if req.ContentType == "" {
		req.ContentType = content.KindProduct.String()
	}
	kind, err := content.ParseKind(req.ContentType)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, gin.H{
		"content_type":    kind,
		"recommendations": s.gen.Recommend(kind, req.Requirements),
	})
}

func (s *Server) handleModelStats(c *gin.Context) {
	ok(c, gin.H{"stats": s.gen.Stats()})
}

func (s *Server) handleModelStatus(c *gin.Context) {
	ok(c, s.gen.Status(c.Request.Context()))
}
