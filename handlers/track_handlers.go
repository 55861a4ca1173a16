// api/handlers/track_handlers.go
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"res4city/api/analytics"
	"res4city/api/config"
	"res4city/api/models"
	"res4city/api/store"
)

// Points awarded for learning milestones, surfaced on the leaderboard.
const (
	lessonCompletePoints = 10
	courseCompletePoints = 50
)

// EventSink receives validated event batches for durable storage.
type EventSink interface {
	InsertEvents(ctx context.Context, events []models.AnalyticsEvent) error
}

// Scoreboard is the slice of the user store the ingest path needs to award
// leaderboard progress.
type Scoreboard interface {
	AwardPoints(ctx context.Context, userID, points int) error
	IncrementCompletedCourses(ctx context.Context, userID int) error
}

type AnalyticsHandlers struct {
	Sink     EventSink
	Stats    *store.AnalyticsStore
	Registry *analytics.Registry
	Users    Scoreboard
}

func NewAnalyticsHandlers(s *store.AnalyticsStore, registry *analytics.Registry, users *store.UserStore) *AnalyticsHandlers {
	return &AnalyticsHandlers{
		Sink:     s,
		Stats:    s,
		Registry: registry,
		Users:    users,
	}
}

// TrackEvent ingests a flushed batch: { "events": [ ... ] }. Events are
// stamped with a server-side id, the client IP and the authenticated user,
// stored durably, then replayed through the user's analytics engine so
// interaction profiles and inactivity reminders stay current.
func (h *AnalyticsHandlers) TrackEvent(c *gin.Context) {
	var batch models.EventBatch
	if err := c.ShouldBindJSON(&batch); err != nil {
		config.Logger.Warnf("Error binding incoming analytics JSON: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if len(batch.Events) == 0 {
		c.Status(http.StatusOK)
		return
	}

	userID := authenticatedUserID(c)

	events := make([]models.AnalyticsEvent, 0, len(batch.Events))
	for _, event := range batch.Events {
		if !models.ValidEventType(event.EventType) {
			config.Logger.Warnf("Dropping event with unknown type %q", event.EventType)
			continue
		}
		event.EventID = uuid.New().String()
		event.IPAddress = c.ClientIP()
		if userID != "" {
			event.UserID = userID
		}
		events = append(events, event)
	}
	if len(events) == 0 {
		c.Status(http.StatusOK)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	if err := h.Sink.InsertEvents(ctx, events); err != nil {
		config.Logger.Errorf("Error inserting learning events: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record analytics events"})
		return
	}

	h.absorb(ctx, userID, events)

	c.Status(http.StatusOK)
}

// absorb replays stored events through the user's engine and awards
// leaderboard points for completion milestones. Best effort: failures are
// logged, never surfaced to the client whose batch is already stored.
func (h *AnalyticsHandlers) absorb(ctx context.Context, userID string, events []models.AnalyticsEvent) {
	if userID == "" {
		return
	}

	engine, err := h.Registry.Engine(userID)
	if err != nil {
		config.Logger.Warnf("Failed to open analytics engine for user %s: %v", userID, err)
		engine = nil
	}

	numericID, _ := strconv.Atoi(userID)
	for _, event := range events {
		if engine != nil {
			engine.Absorb(event)
		}
		if h.Users == nil || numericID == 0 {
			continue
		}
		switch event.EventType {
		case models.EventLessonComplete:
			if err := h.Users.AwardPoints(ctx, numericID, lessonCompletePoints); err != nil {
				config.Logger.Warnf("Failed to award lesson points to user %d: %v", numericID, err)
			}
		case models.EventCourseComplete:
			if err := h.Users.AwardPoints(ctx, numericID, courseCompletePoints); err != nil {
				config.Logger.Warnf("Failed to award course points to user %d: %v", numericID, err)
			}
			if err := h.Users.IncrementCompletedCourses(ctx, numericID); err != nil {
				config.Logger.Warnf("Failed to increment completed courses for user %d: %v", numericID, err)
			}
		}
	}
}

func authenticatedUserID(c *gin.Context) string {
	if v, ok := c.Get("user_id"); ok {
		if id, ok := v.(int); ok {
			return strconv.Itoa(id)
		}
	}
	return ""
}
