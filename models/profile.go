// api/models/profile.go
package models

// InteractionProfile aggregates a user's behavior for one course. It is the
// substrate for recommendation scoring: views and time spent accumulate,
// progress mirrors the authoritative progress map, and lastAccessed drives
// the recency boost.
type InteractionProfile struct {
	Views        int   `json:"views"`
	TimeSpent    int   `json:"timeSpent"`    // cumulative seconds
	LastAccessed int64 `json:"lastAccessed"` // ms since epoch
	Progress     int   `json:"progress"`     // 0-100
}
