// api/store/analytics_store.go
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"res4city/api/config"
	"res4city/api/database"
	"res4city/api/models"
	"res4city/api/utils"
)

// AnalyticsStore is the durable sink behind the tracking endpoint: flushed
// event batches land here and the stats queries aggregate over them.
type AnalyticsStore struct {
	DB *database.ClickHouseClient
}

type EventTypeCountByTime struct {
	Time      time.Time `json:"time"`
	EventType *string   `json:"eventType,omitempty"`
	Count     uint64    `json:"count"`
}

type TopPageResult struct {
	PageName string `json:"pageName"`
	Count    uint64 `json:"count"`
}

func NewAnalyticsStore(chClient *database.ClickHouseClient) *AnalyticsStore {
	return &AnalyticsStore{
		DB: chClient,
	}
}

// InsertEvents appends a batch of learning events. Event details are stored
// as JSON text so per-event payloads stay schemaless.
func (s *AnalyticsStore) InsertEvents(ctx context.Context, events []models.AnalyticsEvent) error {
	if len(events) == 0 {
		return nil
	}

	batch, err := s.DB.Conn.PrepareBatch(ctx, `
		INSERT INTO learning_events (
			event_id, session_id, user_id, event_type, timestamp, url, ip_address, details
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare batch insert: %w", err)
	}

	for _, event := range events {
		details, err := json.Marshal(event.Details)
		if err != nil {
			config.Logger.Warnf("Skipping event %s with unencodable details: %v", event.EventID, err)
			continue
		}
		err = batch.Append(
			event.EventID,
			event.SessionID,
			event.UserID,
			string(event.EventType),
			time.UnixMilli(event.Timestamp).UTC(),
			event.URL,
			event.IPAddress,
			string(details),
		)
		if err != nil {
			config.Logger.Errorf("Error appending event to batch (EventID: %s): %v", event.EventID, err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send batch: %w", err)
	}

	config.Logger.Infof("Inserted %d learning events", len(events))
	return nil
}

func (s *AnalyticsStore) GetEventCountsOverTime(ctx context.Context, interval string, start, end time.Time, eventTypeFilter string) ([]EventTypeCountByTime, error) {
	if !utils.IsValidInterval(interval) {
		return nil, fmt.Errorf("invalid interval: %s", interval)
	}

	args := []interface{}{start, end}
	selectCols := fmt.Sprintf("toStartOf%s(timestamp) as time_bucket, count() as total_events", interval)
	groupByCols := "time_bucket"
	whereClause := "WHERE timestamp >= ? AND timestamp <= ?"
	orderByCols := "time_bucket ASC"
	isFilteringByType := eventTypeFilter != ""

	if isFilteringByType {
		selectCols += ", event_type"
		groupByCols += ", event_type"
		whereClause += " AND event_type = ?"
		args = append(args, eventTypeFilter)
		orderByCols += ", event_type ASC"
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM learning_events
		%s
		GROUP BY %s
		ORDER BY %s
	`, selectCols, whereClause, groupByCols, orderByCols)

	rows, err := s.DB.Conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query event counts over time: %w", err)
	}
	defer rows.Close()

	var results []EventTypeCountByTime
	for rows.Next() {
		var (
			timeBucket  time.Time
			count       uint64
			eventTypeDB string
			current     EventTypeCountByTime
		)

		if isFilteringByType {
			if err := rows.Scan(&timeBucket, &count, &eventTypeDB); err != nil {
				config.Logger.Errorf("Error scanning event count row (with type filter): %v", err)
				continue
			}
			current.EventType = &eventTypeDB
		} else {
			if err := rows.Scan(&timeBucket, &count); err != nil {
				config.Logger.Errorf("Error scanning event count row: %v", err)
				continue
			}
		}

		current.Time = timeBucket
		current.Count = count
		results = append(results, current)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error during event counts over time query: %w", err)
	}

	return results, nil
}

// GetAverageTimeOnScreen averages the reported seconds of timeOnScreen
// events. The -1 session-end sentinel is excluded.
func (s *AnalyticsStore) GetAverageTimeOnScreen(ctx context.Context, start, end time.Time) (float64, error) {
	query := `
		SELECT avg(JSONExtractFloat(toString(details), 'timeInSeconds'))
		FROM learning_events
		WHERE event_type = 'timeOnScreen'
		  AND JSONExtractFloat(toString(details), 'timeInSeconds') > 0
		  AND timestamp >= ? AND timestamp <= ?
	`

	var avgValue float64
	err := s.DB.Conn.QueryRow(ctx, query, start, end).Scan(&avgValue)
	if err != nil {
		if err.Error() == "sql: no rows in result set" {
			return 0.0, nil
		}
		return 0.0, fmt.Errorf("failed to query average time on screen: %w", err)
	}

	// avg() over zero rows yields NaN, which JSON cannot carry.
	if math.IsNaN(avgValue) {
		return 0.0, nil
	}

	return avgValue, nil
}

func (s *AnalyticsStore) GetUniqueSessionsOverTime(ctx context.Context, interval string, start, end time.Time) ([]EventTypeCountByTime, error) {
	if !utils.IsValidInterval(interval) {
		return nil, fmt.Errorf("invalid interval: %s", interval)
	}

	query := fmt.Sprintf(`
		SELECT toStartOf%s(timestamp) AS time_bucket, uniq(session_id) AS unique_sessions
		FROM learning_events
		WHERE timestamp >= ? AND timestamp <= ?
		GROUP BY time_bucket
		ORDER BY time_bucket ASC
	`, interval)

	rows, err := s.DB.Conn.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query unique sessions over time: %w", err)
	}
	defer rows.Close()

	var results []EventTypeCountByTime
	for rows.Next() {
		var timeBucket time.Time
		var uniqueSessions uint64
		if err := rows.Scan(&timeBucket, &uniqueSessions); err != nil {
			config.Logger.Errorf("Error scanning unique sessions row: %v", err)
			continue
		}
		results = append(results, EventTypeCountByTime{
			Time:  timeBucket,
			Count: uniqueSessions,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows for unique sessions: %w", err)
	}

	return results, nil
}

func (s *AnalyticsStore) GetTopNPages(ctx context.Context, start, end time.Time, limit uint64) ([]TopPageResult, error) {
	if limit == 0 {
		limit = 10
	}

	query := `
		SELECT JSONExtractString(toString(details), 'pageName') as page_name, count() as view_count
		FROM learning_events
		WHERE event_type = 'pageView' AND page_name != '' AND timestamp >= ? AND timestamp <= ?
		GROUP BY page_name
		ORDER BY view_count DESC
		LIMIT ?
	`
	rows, err := s.DB.Conn.Query(ctx, query, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top pages: %w", err)
	}
	defer rows.Close()

	var results []TopPageResult
	for rows.Next() {
		var pageName string
		var count uint64
		if err := rows.Scan(&pageName, &count); err != nil {
			config.Logger.Errorf("Error scanning top pages row: %v", err)
			continue
		}
		results = append(results, TopPageResult{
			PageName: pageName,
			Count:    count,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows for top pages: %w", err)
	}

	return results, nil
}
