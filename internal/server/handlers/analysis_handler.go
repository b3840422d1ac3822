package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/genapagie/ovinpro/internal/domain/models"
	"github.com/genapagie/ovinpro/internal/service/analysis"
)

// AnalysisHandler exposes the AI image analysis endpoint.
type AnalysisHandler struct {
	svc    *analysis.Service
	logger *zap.Logger
}

// NewAnalysisHandler constructs the HTTP handler adapter.
func NewAnalysisHandler(svc *analysis.Service, logger *zap.Logger) *AnalysisHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalysisHandler{svc: svc, logger: logger}
}

// Analyze runs one image through the vision adapter. Failures are reported
// as "continue manually": nothing is persisted on this path.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req models.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.svc.Analyze(c.Request.Context(), userID(c), req)
	if err != nil {
		switch {
		case errors.Is(err, analysis.ErrAnalysisBusy):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "an analysis is already running"})
		case errors.Is(err, analysis.ErrAnalysisDisabled):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ai analysis is not configured"})
		default:
			h.logger.Warn("analysis unavailable", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "ai unavailable, continue manually"})
		}
		return
	}

	if req.Draft != nil {
		c.JSON(http.StatusOK, gin.H{"result": result, "sheep": req.Draft})
		return
	}
	c.JSON(http.StatusOK, result)
}
