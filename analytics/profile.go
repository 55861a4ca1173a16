// api/analytics/profile.go
package analytics

import (
	"encoding/json"

	"res4city/api/models"
)

func (e *Engine) profilesLocked() map[string]models.InteractionProfile {
	raw, ok := e.storage.Get(keyInteractions)
	if !ok {
		return map[string]models.InteractionProfile{}
	}
	profiles := map[string]models.InteractionProfile{}
	if err := json.Unmarshal(raw, &profiles); err != nil {
		e.log.Warnf("Discarding unreadable interaction map: %v", err)
		return map[string]models.InteractionProfile{}
	}
	return profiles
}

func (e *Engine) saveProfilesLocked(profiles map[string]models.InteractionProfile) {
	raw, err := json.Marshal(profiles)
	if err != nil {
		e.log.Warnf("Failed to encode interaction map: %v", err)
		return
	}
	e.storage.Set(keyInteractions, raw)
}

// recordInteractionLocked folds one qualifying event into the course's
// interaction profile. Missing entries start zero-valued.
//
//   - pageView increments views and refreshes lastAccessed
//   - videoPlay / pdfView refresh lastAccessed only
//   - timeOnScreen accumulates positive timeInSeconds; the -1 session-end
//     sentinel is excluded
//   - lessonComplete re-reads progress from the authoritative progress
//     source rather than computing it locally
func (e *Engine) recordInteractionLocked(courseID string, evt models.AnalyticsEvent) {
	profiles := e.profilesLocked()
	p := profiles[courseID]

	switch evt.EventType {
	case models.EventPageView:
		p.Views++
		p.LastAccessed = e.nowMillis()
	case models.EventVideoPlay, models.EventPdfView:
		p.LastAccessed = e.nowMillis()
	case models.EventTimeOnScreen:
		if secs, ok := evt.DetailNumber("timeInSeconds"); ok && secs > 0 {
			p.TimeSpent += int(secs)
		}
	case models.EventLessonComplete:
		if e.progress != nil {
			if pct, ok := e.progress.ProgressMap()[courseID]; ok {
				p.Progress = pct
			}
		}
	default:
		return
	}

	profiles[courseID] = p
	e.saveProfilesLocked(profiles)
}

// Profiles returns a copy of the per-course interaction map.
func (e *Engine) Profiles() map[string]models.InteractionProfile {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.profilesLocked()
}
