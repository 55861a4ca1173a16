// api/models/event.go
package models

// EventType identifies one of the closed set of trackable occurrences.
type EventType string

const (
	EventPageView       EventType = "pageView"
	EventButtonClick    EventType = "buttonClick"
	EventVideoPlay      EventType = "videoPlay"
	EventVideoPause     EventType = "videoPause"
	EventVideoProgress  EventType = "videoProgress"
	EventPdfView        EventType = "pdfView"
	EventPdfScroll      EventType = "pdfScroll"
	EventLessonComplete EventType = "lessonComplete"
	EventCourseComplete EventType = "courseComplete"
	EventLogin          EventType = "login"
	EventSignup         EventType = "signup"
	EventTimeOnScreen   EventType = "timeOnScreen"
	EventChatbotMessage EventType = "chatbotMessage"
	EventError          EventType = "error"
	EventNotification   EventType = "notification"
)

// ValidEventType reports whether t belongs to the closed event-type set.
func ValidEventType(t EventType) bool {
	switch t {
	case EventPageView, EventButtonClick, EventVideoPlay, EventVideoPause,
		EventVideoProgress, EventPdfView, EventPdfScroll, EventLessonComplete,
		EventCourseComplete, EventLogin, EventSignup, EventTimeOnScreen,
		EventChatbotMessage, EventError, EventNotification:
		return true
	default:
		return false
	}
}

// AnalyticsEvent represents a single analytics event. Timestamp is
// milliseconds since epoch, assigned at record time. Events are immutable
// once queued.
type AnalyticsEvent struct {
	EventID   string         `json:"eventId,omitempty"`
	SessionID string         `json:"sessionId"`
	UserID    string         `json:"userId,omitempty"`
	EventType EventType      `json:"eventType"`
	Details   map[string]any `json:"details"`
	Timestamp int64          `json:"timestamp"`
	URL       string         `json:"url"`
	IPAddress string         `json:"ipAddress,omitempty"`
}

// CourseID extracts the courseId detail, if present.
func (e AnalyticsEvent) CourseID() (string, bool) {
	v, ok := e.Details["courseId"]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// DetailNumber extracts a numeric detail. JSON decoding yields float64 for
// all numbers, but events built in-process may carry int values.
func (e AnalyticsEvent) DetailNumber(key string) (float64, bool) {
	switch v := e.Details[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// EventBatch is the wire format flushed to the tracking endpoint.
type EventBatch struct {
	Events []AnalyticsEvent `json:"events"`
}
