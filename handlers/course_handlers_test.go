package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"res4city/api/analytics"
	"res4city/api/catalog"
	"res4city/api/models"
)

func newCourseRouter(t *testing.T, h *CourseHandlers) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/courses", h.ListCourses)
	r.GET("/api/courses/:id", h.GetCourse)
	r.GET("/api/recommendations", func(c *gin.Context) { c.Set("user_id", 7) }, h.GetRecommendations)
	return r
}

func getJSON(t *testing.T, r *gin.Engine, path string, out any) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if out != nil && w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	}
	return w
}

func TestListCourses(t *testing.T) {
	h := NewCourseHandlers(catalog.New(), analytics.NewRegistry(t.TempDir(), nil, nil))
	r := newCourseRouter(t, h)

	var courses []models.Course
	w := getJSON(t, r, "/api/courses", &courses)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, courses, 6)
}

func TestListCoursesSearch(t *testing.T) {
	h := NewCourseHandlers(catalog.New(), analytics.NewRegistry(t.TempDir(), nil, nil))
	r := newCourseRouter(t, h)

	var courses []models.Course
	w := getJSON(t, r, "/api/courses?search=circular", &courses)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, courses, 1)
	assert.Equal(t, "6", courses[0].ID)
}

func TestGetCourse(t *testing.T) {
	h := NewCourseHandlers(catalog.New(), analytics.NewRegistry(t.TempDir(), nil, nil))
	r := newCourseRouter(t, h)

	var course models.Course
	w := getJSON(t, r, "/api/courses/1", &course)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", course.ID)

	w = getJSON(t, r, "/api/courses/404", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRecommendationsColdStart(t *testing.T) {
	h := NewCourseHandlers(catalog.New(), analytics.NewRegistry(t.TempDir(), nil, nil))
	r := newCourseRouter(t, h)

	var recs []models.Course
	w := getJSON(t, r, "/api/recommendations", &recs)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, recs, defaultRecommendationCount)

	seen := map[string]bool{}
	for _, course := range recs {
		assert.False(t, seen[course.ID], "recommendations must be distinct")
		seen[course.ID] = true
	}
}

func TestGetRecommendationsCountParam(t *testing.T) {
	h := NewCourseHandlers(catalog.New(), analytics.NewRegistry(t.TempDir(), nil, nil))
	r := newCourseRouter(t, h)

	var recs []models.Course
	w := getJSON(t, r, "/api/recommendations?count=5", &recs)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, recs, 5)

	w = getJSON(t, r, "/api/recommendations?count=zero", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = getJSON(t, r, "/api/recommendations?count=-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetRecommendationsRanksByHistory(t *testing.T) {
	registry := analytics.NewRegistry(t.TempDir(), nil, nil)
	h := NewCourseHandlers(catalog.New(), registry)
	r := newCourseRouter(t, h)

	engine, err := registry.Engine("7")
	require.NoError(t, err)
	// Heavy interaction with course 1 should pull tag-adjacent courses to
	// the top of the list.
	for i := 0; i < 5; i++ {
		engine.Absorb(models.AnalyticsEvent{
			EventType: models.EventPageView,
			Details:   map[string]any{"pageName": "course-detail", "courseId": "1"},
		})
	}

	var recs []models.Course
	w := getJSON(t, r, "/api/recommendations?count=6", &recs)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, recs, 6)
	assert.Equal(t, "1", recs[0].ID, "the most-viewed course ranks first")
}
