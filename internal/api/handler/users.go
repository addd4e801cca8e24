package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/audiovault/audiovault/internal/api/auth"
	"github.com/audiovault/audiovault/internal/api/models"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func parseUserIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return 0, false
	}
	return uint(id), true
}

// GetUser returns the target user. Self-or-admin access only.
func (h *Handler) GetUser(c *gin.Context) {
	targetID, ok := parseUserIDParam(c)
	if !ok {
		return
	}

	current := auth.CurrentUser(c)
	if !auth.CanAccessUser(current, targetID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you do not have permission to view this user"})
		return
	}

	user, err := h.db.GetUserByID(c.Request.Context(), targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		log.Error("failed to get user", "id", targetID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, models.ToUser(user))
}

// UpdateUser applies a partial update to the target user.
// Self-or-admin access only; absent fields are left unchanged.
func (h *Handler) UpdateUser(c *gin.Context) {
	targetID, ok := parseUserIDParam(c)
	if !ok {
		return
	}

	current := auth.CurrentUser(c)
	if !auth.CanAccessUser(current, targetID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you do not have permission to update this user"})
		return
	}

	var req models.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.db.UpdateUser(c.Request.Context(), targetID, req.ToUserUpdate())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		log.Error("failed to update user", "id", targetID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, models.ToUser(user))
}

// DeleteUser removes the target user. The admin gate is enforced by the
// RequireAdmin middleware on the route.
func (h *Handler) DeleteUser(c *gin.Context) {
	targetID, ok := parseUserIDParam(c)
	if !ok {
		return
	}

	if err := h.db.DeleteUser(c.Request.Context(), targetID); err != nil {
		log.Error("failed to delete user", "id", targetID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("user with ID %d has been deleted", targetID)})
}
