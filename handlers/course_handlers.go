// api/handlers/course_handlers.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"res4city/api/analytics"
	"res4city/api/catalog"
	"res4city/api/config"
)

const defaultRecommendationCount = 3

type CourseHandlers struct {
	Catalog  *catalog.Catalog
	Registry *analytics.Registry
}

func NewCourseHandlers(cat *catalog.Catalog, registry *analytics.Registry) *CourseHandlers {
	return &CourseHandlers{Catalog: cat, Registry: registry}
}

// ListCourses returns the catalog, optionally filtered by ?search= or
// reordered with ?sort=popular.
func (h *CourseHandlers) ListCourses(c *gin.Context) {
	if query := c.Query("search"); query != "" {
		c.JSON(http.StatusOK, h.Catalog.Search(query))
		return
	}
	if c.Query("sort") == "popular" {
		c.JSON(http.StatusOK, h.Catalog.Popular(len(h.Catalog.List())))
		return
	}
	c.JSON(http.StatusOK, h.Catalog.List())
}

func (h *CourseHandlers) GetCourse(c *gin.Context) {
	course, ok := h.Catalog.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}
	c.JSON(http.StatusOK, course)
}

// GetRecommendations ranks the catalog for the authenticated user. Cold
// starts fall back to a random sample, so this always returns something as
// long as the catalog is non-empty.
func (h *CourseHandlers) GetRecommendations(c *gin.Context) {
	count := defaultRecommendationCount
	if countParam := c.Query("count"); countParam != "" {
		parsed, err := strconv.Atoi(countParam)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'count' parameter. Must be a positive integer."})
			return
		}
		count = parsed
	}

	userID := authenticatedUserID(c)
	engine, err := h.Registry.Engine(userID)
	if err != nil {
		config.Logger.Errorf("Failed to open analytics engine for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute recommendations"})
		return
	}

	c.JSON(http.StatusOK, engine.Recommend(h.Catalog.List(), count))
}
