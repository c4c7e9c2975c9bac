package fakeapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/coffee-admin/internal/domains/orders/domain"
)

func (h *handlers) listOrders(c *gin.Context) {
	list, err := h.backend.Orders.List(c.Request.Context())
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handlers) createOrder(c *gin.Context) {
	var payload domain.Payload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		h.responder.RespondError(c, err)
		return
	}
	saved, err := h.backend.Orders.Create(c.Request.Context(), payload)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// PATCH /api/orders/:id/status?status=SHIPPING
func (h *handlers) updateOrderStatus(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	status, err := domain.ParseStatus(c.Query("status"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	saved, err := h.backend.Orders.UpdateStatus(c.Request.Context(), id, status)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *handlers) deleteOrder(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.backend.Orders.Delete(c.Request.Context(), id); err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
