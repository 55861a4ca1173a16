package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"res4city/api/analytics"
	"res4city/api/models"
)

type fakeSink struct {
	mu      sync.Mutex
	batches [][]models.AnalyticsEvent
	err     error
}

func (f *fakeSink) InsertEvents(ctx context.Context, events []models.AnalyticsEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, events)
	return nil
}

type fakeScoreboard struct {
	mu        sync.Mutex
	points    map[int]int
	completed map[int]int
}

func newFakeScoreboard() *fakeScoreboard {
	return &fakeScoreboard{points: map[int]int{}, completed: map[int]int{}}
}

func (f *fakeScoreboard) AwardPoints(ctx context.Context, userID, points int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.points[userID] += points
	return nil
}

func (f *fakeScoreboard) IncrementCompletedCourses(ctx context.Context, userID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.completed[userID]++
	return nil
}

func newTrackRouter(t *testing.T, h *AnalyticsHandlers) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/track", func(c *gin.Context) { c.Set("user_id", 7) }, h.TrackEvent)
	return r
}

func postBatch(t *testing.T, r *gin.Engine, batch models.EventBatch) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(batch)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/track", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTrackEventStoresAndAbsorbs(t *testing.T) {
	sink := &fakeSink{}
	board := newFakeScoreboard()
	registry := analytics.NewRegistry(t.TempDir(), nil, nil)
	h := &AnalyticsHandlers{Sink: sink, Registry: registry, Users: board}

	w := postBatch(t, newTrackRouter(t, h), models.EventBatch{Events: []models.AnalyticsEvent{
		{
			SessionID: "s1",
			EventType: models.EventPageView,
			Details:   map[string]any{"pageName": "course-detail", "courseId": "2"},
			Timestamp: 1750000000000,
			URL:       "https://app.res4city.example/courses/2",
		},
		{
			SessionID: "s1",
			EventType: models.EventLessonComplete,
			Details:   map[string]any{"lessonId": "2-1", "courseId": "2"},
			Timestamp: 1750000001000,
			URL:       "https://app.res4city.example/courses/2",
		},
	}})

	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, sink.batches, 1)
	stored := sink.batches[0]
	require.Len(t, stored, 2)
	for _, event := range stored {
		assert.NotEmpty(t, event.EventID, "server must assign an event id")
		assert.Equal(t, "7", event.UserID, "events are attributed to the authenticated user")
	}

	engine, err := registry.Engine("7")
	require.NoError(t, err)
	assert.Equal(t, 1, engine.Profiles()["2"].Views, "ingested events feed the user's interaction profile")

	assert.Equal(t, lessonCompletePoints, board.points[7])
	assert.Zero(t, board.completed[7])
}

func TestTrackEventAwardsCourseCompletion(t *testing.T) {
	sink := &fakeSink{}
	board := newFakeScoreboard()
	h := &AnalyticsHandlers{Sink: sink, Registry: analytics.NewRegistry(t.TempDir(), nil, nil), Users: board}

	w := postBatch(t, newTrackRouter(t, h), models.EventBatch{Events: []models.AnalyticsEvent{
		{SessionID: "s1", EventType: models.EventCourseComplete, Details: map[string]any{"courseId": "3"}},
	}})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, courseCompletePoints, board.points[7])
	assert.Equal(t, 1, board.completed[7])
}

func TestTrackEventDropsUnknownTypes(t *testing.T) {
	sink := &fakeSink{}
	h := &AnalyticsHandlers{Sink: sink, Registry: analytics.NewRegistry(t.TempDir(), nil, nil)}

	w := postBatch(t, newTrackRouter(t, h), models.EventBatch{Events: []models.AnalyticsEvent{
		{SessionID: "s1", EventType: "mysteryEvent"},
		{SessionID: "s1", EventType: models.EventButtonClick, Details: map[string]any{"buttonId": "cta"}},
	}})

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, sink.batches, 1)
	require.Len(t, sink.batches[0], 1)
	assert.Equal(t, models.EventButtonClick, sink.batches[0][0].EventType)
}

func TestTrackEventEmptyBatch(t *testing.T) {
	sink := &fakeSink{}
	h := &AnalyticsHandlers{Sink: sink, Registry: analytics.NewRegistry(t.TempDir(), nil, nil)}

	w := postBatch(t, newTrackRouter(t, h), models.EventBatch{})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, sink.batches)
}

func TestTrackEventRejectsMalformedBody(t *testing.T) {
	h := &AnalyticsHandlers{Sink: &fakeSink{}, Registry: analytics.NewRegistry(t.TempDir(), nil, nil)}
	r := newTrackRouter(t, h)

	req := httptest.NewRequest(http.MethodPost, "/api/track", bytes.NewReader([]byte("{nope")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrackEventSinkFailure(t *testing.T) {
	sink := &fakeSink{err: context.DeadlineExceeded}
	h := &AnalyticsHandlers{Sink: sink, Registry: analytics.NewRegistry(t.TempDir(), nil, nil)}

	w := postBatch(t, newTrackRouter(t, h), models.EventBatch{Events: []models.AnalyticsEvent{
		{SessionID: "s1", EventType: models.EventPageView, Details: map[string]any{"pageName": "home"}},
	}})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
