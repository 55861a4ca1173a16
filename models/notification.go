// api/models/notification.go
package models

// Notification is a user-visible reminder pointing at a course. The engine
// decides whether and what to notify; rendering belongs to the consumer.
type Notification struct {
	CourseID  string `json:"courseId"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	CreatedAt int64  `json:"createdAt"` // ms since epoch
}
