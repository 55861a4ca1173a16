package models

import "time"

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Region   string `json:"region"`
	Country  string `json:"country"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type User struct {
	ID               int       `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	Region           string    `json:"region"`
	Country          string    `json:"country"`
	Points           int       `json:"points"`
	CompletedCourses int       `json:"completed_courses"`
	HashedPassword   []byte    `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// LeaderboardEntry is one ranked row of the global leaderboard.
type LeaderboardEntry struct {
	Rank             int    `json:"rank"`
	UserID           int    `json:"userId"`
	Name             string `json:"name"`
	Region           string `json:"region"`
	Country          string `json:"country"`
	Points           int    `json:"points"`
	CompletedCourses int    `json:"completedCourses"`
}

// RegionRanking aggregates leaderboard standing per region.
type RegionRanking struct {
	Region           string  `json:"region"`
	Participants     int     `json:"participants"`
	CompletedCourses int     `json:"completedCourses"`
	AvgPoints        float64 `json:"avgPoints"`
}

// ProgressUpdateRequest sets a user's completion percentage for one course.
type ProgressUpdateRequest struct {
	CourseID string `json:"courseId" binding:"required"`
	Percent  int    `json:"percent" binding:"min=0,max=100"`
}
