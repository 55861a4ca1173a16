// api/analytics/recommend.go
package analytics

import (
	"math/rand"
	"sort"

	"res4city/api/models"
)

// Recommend ranks candidate courses by relevance to the user's interaction
// history and returns up to count of them.
//
// With no history (or no candidates) it falls back to a uniform random
// sample. Otherwise every interacted candidate spreads its interaction
// score over its tags and category, building a preference map; remaining
// candidates are scored by summing their own tags' and category's
// preference and sorted descending. Courses already at 100% progress are
// never recommended again, though their history still shapes preferences.
func (e *Engine) Recommend(candidates []models.Course, count int) []models.Course {
	if count <= 0 {
		return nil
	}

	e.mu.Lock()
	profiles := e.profilesLocked()
	now := e.nowMillis()
	e.mu.Unlock()

	if len(profiles) == 0 || len(candidates) == 0 {
		return randomSample(candidates, count)
	}

	preference := map[string]float64{}
	for _, c := range candidates {
		p, ok := profiles[c.ID]
		if !ok {
			continue
		}
		score := interactionScore(p, now)
		for _, tag := range c.Tags {
			preference[tag] += score
		}
		if c.Category != "" {
			preference[c.Category] += score
		}
	}

	type scored struct {
		course    models.Course
		relevance float64
	}
	var ranked []scored
	for _, c := range candidates {
		if p, ok := profiles[c.ID]; ok && p.Progress >= 100 {
			continue
		}
		var relevance float64
		for _, tag := range c.Tags {
			relevance += preference[tag]
		}
		if c.Category != "" {
			relevance += preference[c.Category]
		}
		ranked = append(ranked, scored{course: c, relevance: relevance})
	}

	// Stable: ties keep the candidates' original relative order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].relevance > ranked[j].relevance
	})

	if len(ranked) > count {
		ranked = ranked[:count]
	}
	result := make([]models.Course, 0, len(ranked))
	for _, s := range ranked {
		result = append(result, s.course)
	}
	return result
}

// interactionScore is the heuristic relevance signal of one profile:
// views*0.1 + timeSpent*0.01 + progress, boosted 1.5x when the course was
// accessed within the last 7 days.
func interactionScore(p models.InteractionProfile, nowMillis int64) float64 {
	score := float64(p.Views)*viewWeight + float64(p.TimeSpent)*timeSpentWeight + float64(p.Progress)
	if nowMillis-p.LastAccessed < recencyWindowDays*millisPerDay {
		score *= recencyBoost
	}
	return score
}

// randomSample is the cold-start fallback: shuffle a copy, take the prefix.
func randomSample(candidates []models.Course, count int) []models.Course {
	if len(candidates) == 0 {
		return nil
	}
	shuffled := make([]models.Course, len(candidates))
	copy(shuffled, candidates)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count]
}
