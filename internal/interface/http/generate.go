package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/contentsage/contentsage-api/internal/database/models"
	"github.com/contentsage/contentsage-api/internal/domain/content"
	"github.com/contentsage/contentsage-api/internal/render"
	"github.com/contentsage/contentsage-api/internal/template"
	"github.com/contentsage/contentsage-api/pkg/logger"
)

// GenerateRequest is the body of every POST /api/v1/{kind}/generate.
type GenerateRequest struct {
	Topic    string         `json:"topic"`
	Settings map[string]any `json:"settings,omitempty"`
	// Format "html" adds content_html to the response.
	Format string `json:"format,omitempty"`
}

// GenerateResponse is the generation result plus route-level extras.
type GenerateResponse struct {
	content.Result
	ContentType string `json:"content_type"`
	ContentHTML string `json:"content_html,omitempty"`
	HistoryID   string `json:"history_id,omitempty"`
}

func (s *Server) handleGenerate(kind content.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GenerateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWith(c, http.StatusBadRequest, CodeInvalidRequest, "invalid request payload")
			return
		}

		settings := content.ParseSettings(kind, req.Settings)
		if problems := template.Validate(kind, req.Topic, settings); len(problems) > 0 {
			abortWith(c, http.StatusBadRequest, CodeValidationFailed, "validation failed", problems...)
			return
		}

		ctx := c.Request.Context()
		res, err := s.gen.Generate(ctx, req.Topic, kind, req.Settings)
		if err != nil {
			writeError(c, err)
			return
		}

		resp := GenerateResponse{Result: res, ContentType: kind.String()}
		if req.Format == "html" {
			html, err := render.HTML(res.Content)
			if err != nil {
				logger.Warn(ctx, "failed to render html", "error", err)
			} else {
				resp.ContentHTML = html
			}
		}

		if s.history != nil {
			h := &models.ContentHistory{
				Kind:           kind.String(),
				Topic:          req.Topic,
				Content:        res.Content,
				BackendUsed:    res.BackendUsed,
				Source:         string(res.Source),
				FallbackFrom:   res.FallbackFrom,
				Parameters:     req.Settings,
				WordCount:      res.WordCount,
				GenerationTime: res.GenerationTime,
			}
			id, err := s.history.SaveHistory(ctx, h)
			if err != nil {
				// The content is still returned; only the record is lost.
				logger.Component(ctx, "history").Warn("failed to save history", "error", err)
			} else {
				resp.HistoryID = id
			}
		}

		c.JSON(http.StatusOK, resp)
	}
}

// ValidateRequest is the body of POST /api/v1/{kind}/validate.
type ValidateRequest struct {
	Topic    string         `json:"topic"`
	Settings map[string]any `json:"settings,omitempty"`
}

func (s *Server) handleValidate(kind content.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ValidateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWith(c, http.StatusBadRequest, CodeInvalidRequest, "invalid request payload")
			return
		}
		problems := template.Validate(kind, req.Topic, content.ParseSettings(kind, req.Settings))
		c.JSON(http.StatusOK, gin.H{
			"valid":  len(problems) == 0,
			"errors": problems,
		})
	}
}

func (s *Server) handleTemplates(kind content.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok(c, s.store.Options(kind))
	}
}
