package handler

import (
	"errors"
	"net/http"

	"github.com/hc2580411/vwms/internal/apierror"
	"github.com/hc2580411/vwms/internal/dto"
	"github.com/hc2580411/vwms/internal/service"

	"github.com/gin-gonic/gin"
)

type PurchaseOrdersHandler struct{ svc service.LedgerService }

func NewPurchaseOrdersHandler(svc service.LedgerService) *PurchaseOrdersHandler {
	return &PurchaseOrdersHandler{svc: svc}
}

func (h *PurchaseOrdersHandler) Create(c *gin.Context) {
	var req dto.CreatePurchaseOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	id, err := h.svc.CreatePurchaseOrder(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.Retry())
		return
	}
	resp, err := h.svc.GetPurchaseOrder(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.Retry())
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PurchaseOrdersHandler) List(c *gin.Context) {
	resp, err := h.svc.ListPurchaseOrders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Could not list purchase orders"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PurchaseOrdersHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.GetPurchaseOrder(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPONotFound) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.Retry())
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PurchaseOrdersHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdatePurchaseOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	err := h.svc.UpdatePurchaseOrder(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPONotFound):
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		case errors.Is(err, service.ErrAlreadyReceived), errors.Is(err, service.ErrStatusBackwards):
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, apierror.Retry())
		}
		return
	}
	resp, err := h.svc.GetPurchaseOrder(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.Retry())
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Receive applies line quantities to stock and marks the order received.
// A second receive on the same order is a conflict, not a no-op.
func (h *PurchaseOrdersHandler) Receive(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	err := h.svc.ReceivePurchaseOrder(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPONotFound):
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		case errors.Is(err, service.ErrAlreadyReceived):
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, apierror.Retry())
		}
		return
	}
	resp, err := h.svc.GetPurchaseOrder(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.Retry())
		return
	}
	c.JSON(http.StatusOK, resp)
}
