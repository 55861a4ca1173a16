package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"res4city/api/models"
)

func TestNotificationInboxDrains(t *testing.T) {
	s := NewNotificationStore()

	Notifier{Store: s, UserID: "7"}.Notify(models.Notification{CourseID: "c1", Title: "first"})
	Notifier{Store: s, UserID: "7"}.Notify(models.Notification{CourseID: "c2", Title: "second"})
	Notifier{Store: s, UserID: "8"}.Notify(models.Notification{CourseID: "c3"})

	got := s.Drain("7")
	require.Len(t, got, 2)
	assert.Equal(t, "c1", got[0].CourseID)
	assert.Equal(t, "c2", got[1].CourseID)

	assert.Empty(t, s.Drain("7"), "drain clears the inbox")
	assert.Len(t, s.Drain("8"), 1)
}
