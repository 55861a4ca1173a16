// api/handlers/user_handlers.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"res4city/api/config"
	"res4city/api/models"
	"res4city/api/store"
)

type UserHandlers struct {
	Users         *store.UserStore
	Notifications *store.NotificationStore
}

func NewUserHandlers(users *store.UserStore, notifications *store.NotificationStore) *UserHandlers {
	return &UserHandlers{Users: users, Notifications: notifications}
}

// GetProgress returns the authenticated user's courseId -> percent map.
func (h *UserHandlers) GetProgress(c *gin.Context) {
	userID := c.MustGet("user_id").(int)

	progress, err := h.Users.ProgressMap(c.Request.Context(), userID)
	if err != nil {
		config.Logger.Errorf("Error loading progress for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve progress"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress": progress})
}

// UpdateProgress sets the authenticated user's completion percentage for a
// course. This is the authoritative progress source the analytics engine
// re-reads on lessonComplete events.
func (h *UserHandlers) UpdateProgress(c *gin.Context) {
	userID := c.MustGet("user_id").(int)

	var req models.ProgressUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.Users.UpsertProgress(c.Request.Context(), userID, req.CourseID, req.Percent); err != nil {
		config.Logger.Errorf("Error updating progress for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update progress"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Progress updated"})
}

func (h *UserHandlers) GetLeaderboard(c *gin.Context) {
	limit := 10
	if limitParam := c.Query("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'limit' parameter. Must be a positive integer."})
			return
		}
		limit = parsed
	}

	entries, err := h.Users.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		config.Logger.Errorf("Error loading leaderboard: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve leaderboard"})
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *UserHandlers) GetRegionRankings(c *gin.Context) {
	rankings, err := h.Users.RegionRankings(c.Request.Context())
	if err != nil {
		config.Logger.Errorf("Error loading region rankings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve region rankings"})
		return
	}

	c.JSON(http.StatusOK, rankings)
}

// GetNotifications drains the authenticated user's pending inactivity
// reminders. Each reminder is delivered once.
func (h *UserHandlers) GetNotifications(c *gin.Context) {
	userID := authenticatedUserID(c)
	notifications := h.Notifications.Drain(userID)
	if notifications == nil {
		notifications = []models.Notification{}
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}
