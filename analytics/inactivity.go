// api/analytics/inactivity.go
package analytics

import (
	"fmt"

	"res4city/api/models"
)

// CheckInactivity fires a re-engagement reminder when the user has been
// idle for 3 or more days. It runs on every page view.
//
// The reminder targets the user's most-progressed incomplete course. Firing
// records a notification event and resets the last-activity timestamp, so a
// burst of page views after a long absence produces exactly one reminder: a
// debounce on each new accumulation of idle days, not a cooldown timer.
func (e *Engine) CheckInactivity() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.checkInactivityLocked()
}

func (e *Engine) checkInactivityLocked() {
	last, ok := e.lastActivityLocked()
	if !ok {
		return
	}
	rawUser, ok := e.storage.Get(keyUserID)
	if !ok || len(rawUser) == 0 {
		return
	}

	days := (e.nowMillis() - last) / millisPerDay
	if days < inactivityThreshold {
		return
	}
	if e.progress == nil {
		return
	}

	courseID, percent, ok := mostProgressedIncomplete(e.progress.ProgressMap())
	if !ok {
		return
	}

	if e.notifier != nil {
		e.notifier.Notify(models.Notification{
			CourseID:  courseID,
			Title:     "Continue your learning journey",
			Body:      fmt.Sprintf("You're %d%% of the way through a course. Pick up where you left off!", percent),
			CreatedAt: e.nowMillis(),
		})
	}

	// recordLocked refreshes the last-activity timestamp, which is what
	// debounces subsequent page views.
	e.recordLocked(models.EventNotification, map[string]any{
		"type":                  "inactivity",
		"courseId":              courseID,
		"daysSinceLastActivity": days,
	})
}

// mostProgressedIncomplete picks the course with the highest progress
// strictly below 100. Ties break toward the lexicographically smaller id so
// the choice is deterministic across map iterations.
func mostProgressedIncomplete(progress map[string]int) (string, int, bool) {
	bestID := ""
	bestPct := -1
	for id, pct := range progress {
		if pct >= 100 {
			continue
		}
		if pct > bestPct || (pct == bestPct && (bestID == "" || id < bestID)) {
			bestID, bestPct = id, pct
		}
	}
	if bestID == "" {
		return "", 0, false
	}
	return bestID, bestPct, true
}
