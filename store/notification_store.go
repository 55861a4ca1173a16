// api/store/notification_store.go
package store

import (
	"sync"

	"res4city/api/models"
)

// NotificationStore is an in-memory per-user inbox for inactivity
// reminders. The engine decides when to notify; this only holds the result
// until the client fetches it. Reminders do not survive a restart, which is
// acceptable for best-effort re-engagement nudges.
type NotificationStore struct {
	mu      sync.Mutex
	pending map[string][]models.Notification
}

func NewNotificationStore() *NotificationStore {
	return &NotificationStore{pending: make(map[string][]models.Notification)}
}

// Push appends a notification to the user's inbox.
func (s *NotificationStore) Push(userID string, n models.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[userID] = append(s.pending[userID], n)
}

// Drain returns and clears the user's pending notifications.
func (s *NotificationStore) Drain(userID string) []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.pending[userID]
	delete(s.pending, userID)
	return out
}

// Notifier binds the inbox to one user, satisfying the analytics engine's
// notification sink.
type Notifier struct {
	Store  *NotificationStore
	UserID string
}

func (n Notifier) Notify(notification models.Notification) {
	n.Store.Push(n.UserID, notification)
}
