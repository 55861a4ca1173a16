package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAndList(t *testing.T) {
	c := New()

	courses := c.List()
	require.Len(t, courses, 6)
	for _, course := range courses {
		assert.NotEmpty(t, course.Tags, "every seeded course needs tags for the recommender")
		assert.NotEmpty(t, course.Category)
	}

	course, ok := c.Get("1")
	require.True(t, ok)
	assert.Equal(t, "Introduction to Sustainable Urban Planning", course.Title)
	assert.Len(t, course.Syllabus, 4)

	_, ok = c.Get("nope")
	assert.False(t, ok)
}

func TestSearch(t *testing.T) {
	c := New()

	got := c.Search("circular")
	require.Len(t, got, 1)
	assert.Equal(t, "6", got[0].ID)

	assert.Len(t, c.Search(""), 6)
	assert.Empty(t, c.Search("quantum chromodynamics"))
}

func TestPopularOrdersByLessonCount(t *testing.T) {
	c := New()

	got := c.Popular(3)
	require.Len(t, got, 3)
	assert.Equal(t, "2", got[0].ID)
	assert.Equal(t, "4", got[1].ID)
	assert.Equal(t, 12, got[2].LessonCount)
}
