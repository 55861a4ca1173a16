// api/catalog/catalog.go

// Package catalog serves the static course catalog. Courses are seeded at
// startup; tags and category feed the recommendation scorer.
package catalog

import (
	"sort"
	"strings"

	"res4city/api/models"
)

type Catalog struct {
	courses []models.Course
	byID    map[string]models.Course
}

// New returns a catalog seeded with the standard course set.
func New() *Catalog {
	return From(seedCourses())
}

// From builds a catalog over an explicit course list.
func From(courses []models.Course) *Catalog {
	byID := make(map[string]models.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}
	return &Catalog{courses: courses, byID: byID}
}

// List returns all courses in catalog order.
func (c *Catalog) List() []models.Course {
	out := make([]models.Course, len(c.courses))
	copy(out, c.courses)
	return out
}

// Get looks a course up by id.
func (c *Catalog) Get(id string) (models.Course, bool) {
	course, ok := c.byID[id]
	return course, ok
}

// Search filters courses by a case-insensitive match against title and
// description.
func (c *Catalog) Search(query string) []models.Course {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return c.List()
	}
	var out []models.Course
	for _, course := range c.courses {
		if strings.Contains(strings.ToLower(course.Title), query) ||
			strings.Contains(strings.ToLower(course.Description), query) {
			out = append(out, course)
		}
	}
	return out
}

// Popular returns up to n courses ordered by lesson count descending.
func (c *Catalog) Popular(n int) []models.Course {
	out := c.List()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LessonCount > out[j].LessonCount
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}
