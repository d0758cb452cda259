package store

import (
	"context"
	"fmt"
	"time"
)

// StatusCheck is a liveness ping logged by an API client.
type StatusCheck struct {
	ID         string    `json:"id"`
	ClientName string    `json:"client_name"`
	Timestamp  time.Time `json:"timestamp"`
}

type statusRow struct {
	ID         string `db:"id"`
	ClientName string `db:"client_name"`
	Timestamp  int64  `db:"timestamp"`
}

// SaveStatusCheck records a liveness ping.
func (a *Archive) SaveStatusCheck(ctx context.Context, sc StatusCheck) error {
	_, err := a.conn.ExecContext(ctx,
		"INSERT INTO status_checks (id, client_name, timestamp) VALUES (?, ?, ?)",
		sc.ID, sc.ClientName, sc.Timestamp.UTC().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert status check %s: %w", sc.ID, err)
	}
	return nil
}

// StatusChecks returns the most recent status checks, newest first.
func (a *Archive) StatusChecks(ctx context.Context, limit int) ([]StatusCheck, error) {
	var rows []statusRow
	err := a.conn.SelectContext(ctx, &rows,
		"SELECT id, client_name, timestamp FROM status_checks ORDER BY timestamp DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list status checks: %w", err)
	}

	checks := make([]StatusCheck, 0, len(rows))
	for _, r := range rows {
		checks = append(checks, StatusCheck{
			ID:         r.ID,
			ClientName: r.ClientName,
			Timestamp:  time.Unix(0, r.Timestamp).UTC(),
		})
	}
	return checks, nil
}
