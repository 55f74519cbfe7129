package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/contentsage/contentsage-api/internal/database"
	"github.com/contentsage/contentsage-api/internal/domain/content"
)

func (s *Server) handleListHistory(c *gin.Context) {
	f := database.HistoryFilter{
		Kind:    c.Query("content_type"),
		Search:  c.Query("search"),
		Page:    queryInt(c, "page", 1),
		PerPage: queryInt(c, "per_page", database.DefaultPerPage),
	}
	if f.Kind != "" {
		kind, err := content.ParseKind(f.Kind)
		if err != nil {
			writeError(c, err)
			return
		}
		f.Kind = kind.String()
	}

	items, page, err := s.history.ListHistory(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, gin.H{
		"history":    items,
		"pagination": page,
	})
}

func (s *Server) handleGetHistory(c *gin.Context) {
	h, err := s.history.GetHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, h)
}

// UpdateHistoryRequest carries the editable fields of a history entry.
type UpdateHistoryRequest struct {
	Prompt           *string        `json:"prompt,omitempty"`
	GeneratedContent *string        `json:"generated_content,omitempty"`
	Parameters       map[string]any `json:"parameters,omitempty"`
}

func (s *Server) handleUpdateHistory(c *gin.Context) {
	var req UpdateHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWith(c, http.StatusBadRequest, CodeInvalidRequest, "invalid request payload")
		return
	}
	if req.Prompt == nil && req.GeneratedContent == nil && req.Parameters == nil {
		abortWith(c, http.StatusBadRequest, CodeInvalidRequest, "nothing to update")
		return
	}

	h, err := s.history.UpdateHistory(c.Request.Context(), c.Param("id"), database.HistoryUpdate{
		Topic:      req.Prompt,
		Content:    req.GeneratedContent,
		Parameters: req.Parameters,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, h)
}

func (s *Server) handleDeleteHistory(c *gin.Context) {
	if err := s.history.DeleteHistory(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	ok(c, gin.H{"deleted": c.Param("id")})
}

func (s *Server) handleHistoryStats(c *gin.Context) {
	st, err := s.history.HistoryStats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, st)
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}
