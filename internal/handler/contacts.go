package handler

import (
	"net/http"

	"github.com/hc2580411/vwms/internal/apierror"
	"github.com/hc2580411/vwms/internal/dto"
	"github.com/hc2580411/vwms/internal/service"

	"github.com/gin-gonic/gin"
)

type ContactsHandler struct{ svc service.CatalogService }

func NewContactsHandler(svc service.CatalogService) *ContactsHandler {
	return &ContactsHandler{svc: svc}
}

func (h *ContactsHandler) Create(c *gin.Context) {
	var req dto.ContactRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateContact(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.Retry())
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List filters by the optional type query param (customer | distributor |
// sales_rep); empty means all.
func (h *ContactsHandler) List(c *gin.Context) {
	resp, err := h.svc.ListContacts(c.Request.Context(), c.Query("type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Could not list contacts"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ContactsHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ContactRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateContact(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Contact not found"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ContactsHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteContact(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.Retry())
		return
	}
	c.Status(http.StatusNoContent)
}
