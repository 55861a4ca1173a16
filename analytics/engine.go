// api/analytics/engine.go

// Package analytics implements the behavioral analytics engine: a locally
// persisted event queue with opportunistic batch delivery, per-course
// interaction profiles, heuristic course recommendations and inactivity
// reminders. The engine is best-effort telemetry: tracking never fails
// observably, delivery is at-least-once at best, and a lost storage file
// only loses history, never correctness.
package analytics

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"res4city/api/config"
	"res4city/api/models"
)

// Storage keys. Fixed for the lifetime of a storage file.
const (
	keySessionID    = "rc_session_id"
	keyUserID       = "rc_user_id"
	keyEventQueue   = "rc_event_queue"
	keyInteractions = "rc_interaction_map"
	keyLastActivity = "rc_last_activity"
	keyEndpoint     = "rc_endpoint_url"
)

// Behavioral constants. The scoring weights and windows define observed
// behavior and are not tuning knobs; changing them changes what users see.
const (
	// MaxQueuedEvents bounds the event queue; the oldest events are evicted
	// beyond it.
	MaxQueuedEvents = 1000

	// SessionEndSentinel marks a timeOnScreen event that closes a session
	// rather than reporting a measured duration.
	SessionEndSentinel = -1

	viewWeight          = 0.1
	timeSpentWeight     = 0.01
	recencyBoost        = 1.5
	recencyWindowDays   = 7
	inactivityThreshold = 3 // days without activity before a reminder
)

const millisPerDay = int64(24 * time.Hour / time.Millisecond)

// ProgressSource supplies the authoritative per-course completion map for
// the engine's user. The engine never derives progress itself.
type ProgressSource interface {
	ProgressMap() map[string]int
}

// Notifier receives reminder notifications. The engine decides whether and
// what to notify; rendering is the implementation's concern.
type Notifier interface {
	Notify(n models.Notification)
}

// Config carries the engine's injectable collaborators. Every field is
// optional; zero values get sensible defaults.
type Config struct {
	// Endpoint, when non-empty, overwrites the persisted flush destination.
	Endpoint string
	// Location is recorded as the URL of every tracked event.
	Location string

	Progress   ProgressSource
	Notifier   Notifier
	HTTPClient *http.Client
	Now        func() time.Time
	Logger     *logrus.Logger
}

// Engine is the analytics service for a single user. All state lives in the
// injected Storage, so a restarted process resumes where it left off.
// Methods are safe for concurrent use within one process; cross-process
// sharing of the same storage is last-write-wins.
type Engine struct {
	mu       sync.Mutex
	storage  Storage
	progress ProgressSource
	notifier Notifier
	client   *http.Client
	now      func() time.Time
	log      *logrus.Logger
	location string
	online   bool
}

func NewEngine(storage Storage, cfg Config) *Engine {
	e := &Engine{
		storage:  storage,
		progress: cfg.Progress,
		notifier: cfg.Notifier,
		client:   cfg.HTTPClient,
		now:      cfg.Now,
		log:      cfg.Logger,
		location: cfg.Location,
		online:   true,
	}
	if e.client == nil {
		e.client = &http.Client{Timeout: 30 * time.Second}
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.log == nil {
		e.log = config.Logger
	}
	if e.location == "" {
		e.location = "app://res4city"
	}
	if cfg.Endpoint != "" {
		storage.Set(keyEndpoint, []byte(cfg.Endpoint))
	}
	return e
}

// SessionID returns the stable session identifier, generating and
// persisting one on first use. It is never rotated.
func (e *Engine) SessionID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.identityLocked(keySessionID)
}

// UserID returns the stable anonymous user identifier, generating and
// persisting one on first use. It is never rotated.
func (e *Engine) UserID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.identityLocked(keyUserID)
}

func (e *Engine) identityLocked(key string) string {
	if raw, ok := e.storage.Get(key); ok && len(raw) > 0 {
		return string(raw)
	}
	id := uuid.New().String()
	e.storage.Set(key, []byte(id))
	return id
}

// SetLocation updates the URL recorded on subsequent events.
func (e *Engine) SetLocation(url string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.location = url
}

// ConfigureEndpoint persists the flush destination. An empty URL disables
// delivery without touching queued events.
func (e *Engine) ConfigureEndpoint(url string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if url == "" {
		e.storage.Delete(keyEndpoint)
		return
	}
	e.storage.Set(keyEndpoint, []byte(url))
}

func (e *Engine) endpointLocked() string {
	raw, ok := e.storage.Get(keyEndpoint)
	if !ok {
		return ""
	}
	return string(raw)
}

// Track records an event. It never fails observably: persistence and
// delivery problems are logged and swallowed. Page views additionally run
// the inactivity check against the last-activity timestamp as it stood
// before this event refreshes it.
func (e *Engine) Track(eventType models.EventType, details map[string]any) {
	e.mu.Lock()
	if eventType == models.EventPageView {
		e.checkInactivityLocked()
	}
	e.recordLocked(eventType, details)
	endpoint := e.endpointLocked()
	online := e.online
	e.mu.Unlock()

	if online && endpoint != "" {
		go e.Flush()
	}
}

// recordLocked builds, queues and applies one event. Shared by Track and
// the inactivity monitor's notification event.
func (e *Engine) recordLocked(eventType models.EventType, details map[string]any) {
	if details == nil {
		details = map[string]any{}
	}
	evt := models.AnalyticsEvent{
		SessionID: e.identityLocked(keySessionID),
		EventType: eventType,
		Details:   details,
		Timestamp: e.nowMillis(),
		URL:       e.location,
	}
	e.enqueueLocked(evt)
	e.storage.Set(keyLastActivity, []byte(strconv.FormatInt(evt.Timestamp, 10)))
	if courseID, ok := evt.CourseID(); ok && profileEvent(eventType) {
		e.recordInteractionLocked(courseID, evt)
	}
}

// Absorb applies an already-recorded event's side effects (interaction
// profile, last activity, inactivity check) without re-queueing it. This is
// the ingest path: a server receiving a flushed batch replays each event
// through the owning user's engine.
func (e *Engine) Absorb(evt models.AnalyticsEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if evt.EventType == models.EventPageView {
		e.checkInactivityLocked()
	}
	ts := evt.Timestamp
	if ts <= 0 {
		ts = e.nowMillis()
	}
	e.storage.Set(keyLastActivity, []byte(strconv.FormatInt(ts, 10)))
	if courseID, ok := evt.CourseID(); ok && profileEvent(evt.EventType) {
		e.recordInteractionLocked(courseID, evt)
	}
}

// profileEvent reports whether an event type feeds the interaction profile
// when it carries a courseId.
func profileEvent(t models.EventType) bool {
	switch t {
	case models.EventPageView, models.EventVideoPlay, models.EventPdfView,
		models.EventLessonComplete, models.EventTimeOnScreen:
		return true
	default:
		return false
	}
}

func (e *Engine) nowMillis() int64 {
	return e.now().UnixMilli()
}

func (e *Engine) lastActivityLocked() (int64, bool) {
	raw, ok := e.storage.Get(keyLastActivity)
	if !ok {
		return 0, false
	}
	ms, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, false
	}
	return ms, true
}

// TrackPageView records a page view.
func (e *Engine) TrackPageView(pageName string) {
	e.Track(models.EventPageView, map[string]any{"pageName": pageName})
}

// TrackCoursePageView records a page view attributed to a course, feeding
// its interaction profile.
func (e *Engine) TrackCoursePageView(pageName, courseID string) {
	e.Track(models.EventPageView, map[string]any{"pageName": pageName, "courseId": courseID})
}

func (e *Engine) TrackButtonClick(buttonID, buttonText string) {
	e.Track(models.EventButtonClick, map[string]any{"buttonId": buttonID, "buttonText": buttonText})
}

func (e *Engine) TrackVideoPlay(videoID, courseID string, currentTime float64) {
	e.Track(models.EventVideoPlay, map[string]any{"videoId": videoID, "courseId": courseID, "currentTime": currentTime})
}

func (e *Engine) TrackVideoPause(videoID string, currentTime float64) {
	e.Track(models.EventVideoPause, map[string]any{"videoId": videoID, "currentTime": currentTime})
}

func (e *Engine) TrackVideoProgress(videoID string, currentTime, duration float64) {
	percent := 0
	if duration > 0 {
		percent = int(math.Round(currentTime / duration * 100))
	}
	e.Track(models.EventVideoProgress, map[string]any{
		"videoId":     videoID,
		"currentTime": currentTime,
		"duration":    duration,
		"percent":     percent,
	})
}

func (e *Engine) TrackPdfView(pdfID, courseID string, pageNumber int) {
	e.Track(models.EventPdfView, map[string]any{"pdfId": pdfID, "courseId": courseID, "pageNumber": pageNumber})
}

func (e *Engine) TrackPdfScroll(pdfID string, pageNumber, scrollPercent int) {
	e.Track(models.EventPdfScroll, map[string]any{"pdfId": pdfID, "pageNumber": pageNumber, "scrollPercent": scrollPercent})
}

func (e *Engine) TrackLessonComplete(lessonID, courseID string) {
	e.Track(models.EventLessonComplete, map[string]any{"lessonId": lessonID, "courseId": courseID})
}

func (e *Engine) TrackCourseComplete(courseID string) {
	e.Track(models.EventCourseComplete, map[string]any{"courseId": courseID})
}

func (e *Engine) TrackTimeOnScreen(screenName string, timeInSeconds int) {
	e.Track(models.EventTimeOnScreen, map[string]any{"screenName": screenName, "timeInSeconds": timeInSeconds})
}

// TrackCourseTime attributes screen time to a course so it accumulates in
// the course's interaction profile.
func (e *Engine) TrackCourseTime(courseID string, timeInSeconds int) {
	e.Track(models.EventTimeOnScreen, map[string]any{"courseId": courseID, "timeInSeconds": timeInSeconds})
}

func (e *Engine) TrackChatMessage(message string) {
	e.Track(models.EventChatbotMessage, map[string]any{"message": message})
}

func (e *Engine) TrackError(message, source string) {
	e.Track(models.EventError, map[string]any{"message": message, "source": source})
}

// EndSession emits the session-end sentinel for a screen. The sentinel is
// excluded from time accumulation.
func (e *Engine) EndSession(screenName string) {
	e.Track(models.EventTimeOnScreen, map[string]any{"screenName": screenName, "timeInSeconds": SessionEndSentinel})
}
