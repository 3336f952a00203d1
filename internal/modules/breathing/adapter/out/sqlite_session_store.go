package out

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mindful/internal/modules/breathing/domain"
	breathingout "mindful/internal/modules/breathing/port/out"
	"mindful/internal/platform/sqlitedb"
)

const breathingDDL = `
CREATE TABLE IF NOT EXISTS breathing_sessions (
  id TEXT PRIMARY KEY,
  run_id TEXT NOT NULL,
  user_id TEXT NOT NULL,
  cycles_completed INTEGER NOT NULL,
  duration_minutes INTEGER NOT NULL,
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_breathing_sessions_user ON breathing_sessions(user_id, created_at);
CREATE UNIQUE INDEX IF NOT EXISTS idx_breathing_sessions_run ON breathing_sessions(user_id, run_id);
`

type SQLiteSessionStore struct {
	db *sql.DB
}

// NewSQLiteSessionStore applies its schema to db. The caller owns db and closes it.
func NewSQLiteSessionStore(ctx context.Context, db *sql.DB) (*SQLiteSessionStore, error) {
	if err := sqlitedb.Apply(ctx, db, breathingDDL); err != nil {
		return nil, fmt.Errorf("init breathing store: %w", err)
	}
	return &SQLiteSessionStore{db: db}, nil
}

var _ breathingout.SessionStore = (*SQLiteSessionStore)(nil)

func (s *SQLiteSessionStore) Save(ctx context.Context, session domain.Session) error {
	const stmt = `
INSERT INTO breathing_sessions (id, run_id, user_id, cycles_completed, duration_minutes, created_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (user_id, run_id) DO UPDATE SET
  cycles_completed = MAX(cycles_completed, excluded.cycles_completed),
  duration_minutes = MAX(duration_minutes, excluded.duration_minutes);
`
	_, err := s.db.ExecContext(ctx, stmt,
		session.ID,
		session.RunID,
		session.UserID,
		session.CyclesCompleted,
		session.DurationMinutes,
		session.CreatedAt.UTC().Format(sqlitedb.Timestamp),
	)
	if err != nil {
		return fmt.Errorf("save breathing session: %w", err)
	}
	return nil
}

func (s *SQLiteSessionStore) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Session, error) {
	const query = `
SELECT id, run_id, user_id, cycles_completed, duration_minutes, created_at
FROM breathing_sessions
WHERE user_id = ?
ORDER BY created_at DESC
LIMIT ?;
`
	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query breathing sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		var (
			session domain.Session
			created string
		)
		if err := rows.Scan(&session.ID, &session.RunID, &session.UserID, &session.CyclesCompleted, &session.DurationMinutes, &created); err != nil {
			return nil, fmt.Errorf("scan breathing session: %w", err)
		}
		session.CreatedAt, err = time.Parse(sqlitedb.Timestamp, created)
		if err != nil {
			return nil, fmt.Errorf("parse breathing session time: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate breathing sessions: %w", err)
	}
	return sessions, nil
}

func (s *SQLiteSessionStore) Aggregate(ctx context.Context, userID string) (domain.Stats, error) {
	const query = `
SELECT COUNT(*), COALESCE(SUM(cycles_completed), 0), COALESCE(SUM(duration_minutes), 0)
FROM breathing_sessions
WHERE user_id = ?;
`
	var stats domain.Stats
	if err := s.db.QueryRowContext(ctx, query, userID).Scan(&stats.Sessions, &stats.TotalCycles, &stats.TotalMinutes); err != nil {
		return domain.Stats{}, fmt.Errorf("aggregate breathing sessions: %w", err)
	}
	return stats, nil
}
