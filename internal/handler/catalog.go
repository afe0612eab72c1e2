package handler

import (
	"net/http"
	"strconv"

	"github.com/hc2580411/vwms/internal/apierror"
	"github.com/hc2580411/vwms/internal/dto"
	"github.com/hc2580411/vwms/internal/repository"
	"github.com/hc2580411/vwms/internal/service"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves categories, units, and the inventory audit log.
type CatalogHandler struct{ svc service.CatalogService }

func NewCatalogHandler(svc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func (h *CatalogHandler) AddCategory(c *gin.Context) {
	var req dto.AddCategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.AddCategory(c.Request.Context(), req.Name); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.Retry())
		return
	}
	c.Status(http.StatusCreated)
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	resp, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Could not list categories"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteCategory(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.Retry())
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) AddUnit(c *gin.Context) {
	var req dto.AddUnitRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.AddUnit(c.Request.Context(), req.Name); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.Retry())
		return
	}
	c.Status(http.StatusCreated)
}

func (h *CatalogHandler) ListUnits(c *gin.Context) {
	resp, err := h.svc.ListUnits(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Could not list units"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) DeleteUnit(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteUnit(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.Retry())
		return
	}
	c.Status(http.StatusNoContent)
}

// ListInventoryLog filters by optional product_id and type query params.
func (h *CatalogHandler) ListInventoryLog(c *gin.Context) {
	var filter repository.InventoryLogFilter
	if raw := c.Query("product_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Invalid product_id"))
			return
		}
		pid := uint(id)
		filter.ProductID = &pid
	}
	filter.Type = c.Query("type")

	logs, err := h.svc.ListInventoryLog(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Could not list inventory log"))
		return
	}
	c.JSON(http.StatusOK, logs)
}
