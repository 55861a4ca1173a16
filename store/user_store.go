package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"res4city/api/config"
	"res4city/api/models"
)

type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore instance.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// CreateUser inserts a new user into the database.
func (s *UserStore) CreateUser(ctx context.Context, email string, hashedPassword []byte, name, region, country string) (*models.User, error) {
	user := &models.User{}
	query := `
		INSERT INTO users (email, hashed_password, name, region, country)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, email, name, region, country, points, completed_courses, created_at, updated_at;
	`
	err := s.db.QueryRowContext(ctx, query, email, hashedPassword, name, region, country).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Region,
		&user.Country,
		&user.Points,
		&user.CompletedCourses,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err.Error() == `pq: duplicate key value violates unique constraint "idx_users_email"` ||
			err.Error() == `pq: duplicate key value violates unique constraint "users_email_key"` {
			return nil, fmt.Errorf("user with email '%s' already exists", email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	config.Logger.Infof("User created: ID=%d, Email=%s", user.ID, user.Email)
	return user, nil
}

func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, email, hashed_password, name, region, country, points, completed_courses, created_at, updated_at
		FROM users
		WHERE email = $1;
	`
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&user.Name,
		&user.Region,
		&user.Country,
		&user.Points,
		&user.CompletedCourses,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user with email '%s' not found", email)
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// ProgressMap returns the user's per-course completion percentages.
func (s *UserStore) ProgressMap(ctx context.Context, userID int) (map[string]int, error) {
	query := `SELECT course_id, percent FROM user_progress WHERE user_id = $1;`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user progress: %w", err)
	}
	defer rows.Close()

	progress := map[string]int{}
	for rows.Next() {
		var courseID string
		var percent int
		if err := rows.Scan(&courseID, &percent); err != nil {
			return nil, fmt.Errorf("failed to scan user progress row: %w", err)
		}
		progress[courseID] = percent
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error during user progress query: %w", err)
	}
	return progress, nil
}

// UpsertProgress sets the user's completion percentage for one course.
func (s *UserStore) UpsertProgress(ctx context.Context, userID int, courseID string, percent int) error {
	query := `
		INSERT INTO user_progress (user_id, course_id, percent)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, course_id)
		DO UPDATE SET percent = EXCLUDED.percent, updated_at = now();
	`
	if _, err := s.db.ExecContext(ctx, query, userID, courseID, percent); err != nil {
		return fmt.Errorf("failed to upsert progress: %w", err)
	}
	return nil
}

// AwardPoints adds leaderboard points to a user.
func (s *UserStore) AwardPoints(ctx context.Context, userID, points int) error {
	query := `UPDATE users SET points = points + $2, updated_at = now() WHERE id = $1;`
	if _, err := s.db.ExecContext(ctx, query, userID, points); err != nil {
		return fmt.Errorf("failed to award points: %w", err)
	}
	return nil
}

// IncrementCompletedCourses bumps the user's completed-course counter.
func (s *UserStore) IncrementCompletedCourses(ctx context.Context, userID int) error {
	query := `UPDATE users SET completed_courses = completed_courses + 1, updated_at = now() WHERE id = $1;`
	if _, err := s.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to increment completed courses: %w", err)
	}
	return nil
}

// Leaderboard returns the top users by points.
func (s *UserStore) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `
		SELECT id, name, region, country, points, completed_courses
		FROM users
		ORDER BY points DESC, completed_courses DESC, id ASC
		LIMIT $1;
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	rank := 0
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Name, &e.Region, &e.Country, &e.Points, &e.CompletedCourses); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		rank++
		e.Rank = rank
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error during leaderboard query: %w", err)
	}
	return entries, nil
}

// RegionRankings aggregates leaderboard standing per region.
func (s *UserStore) RegionRankings(ctx context.Context) ([]models.RegionRanking, error) {
	query := `
		SELECT region, count(*) AS participants, coalesce(sum(completed_courses), 0), coalesce(avg(points), 0)
		FROM users
		WHERE region != ''
		GROUP BY region
		ORDER BY avg(points) DESC;
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query region rankings: %w", err)
	}
	defer rows.Close()

	var rankings []models.RegionRanking
	for rows.Next() {
		var r models.RegionRanking
		if err := rows.Scan(&r.Region, &r.Participants, &r.CompletedCourses, &r.AvgPoints); err != nil {
			return nil, fmt.Errorf("failed to scan region ranking row: %w", err)
		}
		rankings = append(rankings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error during region rankings query: %w", err)
	}
	return rankings, nil
}

// ProgressSource adapts the store to the analytics engine's read-only
// progress dependency for one user. Lookup failures default to an empty
// map so the engine keeps tracking without progress data.
type ProgressSource struct {
	Store  *UserStore
	UserID int
}

func (p ProgressSource) ProgressMap() map[string]int {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	progress, err := p.Store.ProgressMap(ctx, p.UserID)
	if err != nil {
		config.Logger.Warnf("Failed to load progress map for user %d: %v", p.UserID, err)
		return map[string]int{}
	}
	return progress
}
