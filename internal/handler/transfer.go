package handler

import (
	"errors"
	"net/http"

	"github.com/hc2580411/vwms/internal/apierror"
	"github.com/hc2580411/vwms/internal/infra"
	"github.com/hc2580411/vwms/internal/service"

	"github.com/gin-gonic/gin"
)

type TransferHandler struct{ svc service.TransferService }

func NewTransferHandler(svc service.TransferService) *TransferHandler {
	return &TransferHandler{svc: svc}
}

// Export streams the full store as a single JSON document, also usable as a
// manual backup.
func (h *TransferHandler) Export(c *gin.Context) {
	doc, err := h.svc.Export(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Could not export data"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+infra.SnapshotKey()+`.json"`)
	c.JSON(http.StatusOK, doc)
}

// Import replaces the whole store with an uploaded export document. The
// document is validated before any write; a rejected import changes nothing.
func (h *TransferHandler) Import(c *gin.Context) {
	var doc infra.SnapshotDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON: "+err.Error()))
		return
	}
	if err := h.svc.Import(c.Request.Context(), &doc); err != nil {
		if errors.Is(err, service.ErrInvalidImport) {
			c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.Retry())
		return
	}
	c.Status(http.StatusNoContent)
}

// Reset wipes the persisted snapshot. The process must restart before the
// store is usable again, so the response says exactly that.
func (h *TransferHandler) Reset(c *gin.Context) {
	if err := h.svc.Reset(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.Retry())
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Store reset. Restart the service to reseed."})
}
