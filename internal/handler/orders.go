package handler

import (
	"errors"
	"net/http"

	"github.com/hc2580411/vwms/internal/apierror"
	"github.com/hc2580411/vwms/internal/dto"
	"github.com/hc2580411/vwms/internal/service"

	"github.com/gin-gonic/gin"
)

type OrdersHandler struct{ svc service.LedgerService }

func NewOrdersHandler(svc service.LedgerService) *OrdersHandler {
	return &OrdersHandler{svc: svc}
}

func (h *OrdersHandler) Fulfill(c *gin.Context) {
	var req dto.FulfillOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	id, err := h.svc.FulfillOrder(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.Retry())
		return
	}
	resp, err := h.svc.GetOrder(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.Retry())
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OrdersHandler) List(c *gin.Context) {
	resp, err := h.svc.ListOrders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Could not list orders"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.GetOrder(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.Retry())
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) ListItems(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListOrderItems(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.Retry())
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) SettleDeposit(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.SettleDepositRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.SettleDeposit(c.Request.Context(), id, req.Amount); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.Retry())
		return
	}
	resp, err := h.svc.GetOrder(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.Retry())
		return
	}
	c.JSON(http.StatusOK, resp)
}
