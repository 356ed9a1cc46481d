package handler

import (
	"time"

	"github.com/DeveloperClyde246/ai-interview-portal/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) ListNotifications(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	notifications, err := h.Repo.ListNotificationsByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, gin.H{"notifications": notifications})
}

func (h *Handler) GetNotification(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid notification id")
		return
	}

	n, err := h.Repo.GetNotificationByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if n.UserID != claims.UserID {
		response.Forbidden(c, "not your notification")
		return
	}

	response.OK(c, gin.H{"notification": n})
}

func (h *Handler) MarkNotificationRead(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid notification id")
		return
	}

	if err := h.Repo.MarkNotificationRead(c.Request.Context(), id, claims.UserID); err != nil {
		h.writeError(c, err)
		return
	}

	response.Message(c, "notification read")
}

// DeleteNotification refuses to remove a reminder whose interview starts
// within the next 24 hours; the error explains the window.
func (h *Handler) DeleteNotification(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid notification id")
		return
	}

	if err := h.Notify.Delete(c.Request.Context(), claims.UserID, id, time.Now()); err != nil {
		h.writeError(c, err)
		return
	}

	response.Message(c, "notification deleted")
}
