package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/genapagie/ovinpro/internal/service/backup"
)

// BackupHandler exposes the import/export gateway.
type BackupHandler struct {
	svc    *backup.Service
	logger *zap.Logger
}

// NewBackupHandler constructs the HTTP handler adapter.
func NewBackupHandler(svc *backup.Service, logger *zap.Logger) *BackupHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BackupHandler{svc: svc, logger: logger}
}

// Export streams the user's core profile as a downloadable JSON document.
func (h *BackupHandler) Export(c *gin.Context) {
	doc, err := h.svc.Export(c.Request.Context(), userID(c))
	if err != nil {
		h.logger.Error("export failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	filename := backup.Filename(userID(c), doc.ExportDate)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	c.IndentedJSON(http.StatusOK, doc)
}

// Import restores an uploaded snapshot into the caller's account and returns
// the per-section report. A document that does not parse is a 400; row-level
// failures come back in the report body, never silently dropped.
func (h *BackupHandler) Import(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read request body"})
		return
	}

	report, err := h.svc.Import(c.Request.Context(), userID(c), raw)
	if err != nil {
		if errors.Is(err, backup.ErrMalformedDocument) {
			h.logger.Warn("import rejected", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed import document"})
			return
		}
		h.logger.Error("import failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "import failed"})
		return
	}

	c.JSON(http.StatusOK, report)
}
