package fakeapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/coffee-admin/internal/domains/members/domain"
)

func (h *handlers) listMembers(c *gin.Context) {
	list, err := h.backend.Members.List(c.Request.Context())
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handlers) createMember(c *gin.Context) {
	payload, ok := h.bindMember(c)
	if !ok {
		return
	}
	saved, err := h.backend.Members.Create(c.Request.Context(), payload)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (h *handlers) updateMember(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	payload, ok := h.bindMember(c)
	if !ok {
		return
	}
	saved, err := h.backend.Members.Update(c.Request.Context(), id, payload)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *handlers) deleteMember(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.backend.Members.Delete(c.Request.Context(), id); err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) bindMember(c *gin.Context) (domain.Payload, bool) {
	var payload domain.Payload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.responder.BadRequest(c, err.Error())
		return domain.Payload{}, false
	}
	if err := h.validate.Struct(payload); err != nil {
		h.responder.RespondError(c, err)
		return domain.Payload{}, false
	}
	return payload, true
}
