package out

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mindful/internal/modules/mood/domain"
	moodout "mindful/internal/modules/mood/port/out"
	"mindful/internal/platform/sqlitedb"
)

const moodDDL = `
CREATE TABLE IF NOT EXISTS mood_entries (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  mood_level INTEGER NOT NULL CHECK (mood_level BETWEEN 1 AND 5),
  note TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_mood_entries_user ON mood_entries(user_id, created_at);
`

type SQLiteEntryStore struct {
	db *sql.DB
}

// NewSQLiteEntryStore applies its schema to db. The caller owns db and closes it.
func NewSQLiteEntryStore(ctx context.Context, db *sql.DB) (*SQLiteEntryStore, error) {
	if err := sqlitedb.Apply(ctx, db, moodDDL); err != nil {
		return nil, fmt.Errorf("init mood store: %w", err)
	}
	return &SQLiteEntryStore{db: db}, nil
}

var _ moodout.EntryStore = (*SQLiteEntryStore)(nil)

func (s *SQLiteEntryStore) Save(ctx context.Context, entry domain.Entry) error {
	const stmt = `
INSERT INTO mood_entries (id, user_id, mood_level, note, created_at)
VALUES (?, ?, ?, ?, ?);
`
	if _, err := s.db.ExecContext(ctx, stmt,
		entry.ID, entry.UserID, int(entry.Level), entry.Note,
		entry.CreatedAt.UTC().Format(sqlitedb.Timestamp),
	); err != nil {
		return fmt.Errorf("insert mood entry: %w", err)
	}
	return nil
}

func (s *SQLiteEntryStore) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Entry, error) {
	const query = `
SELECT id, user_id, mood_level, note, created_at
FROM mood_entries
WHERE user_id = ?
ORDER BY created_at DESC, rowid DESC
LIMIT ?;
`
	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query mood entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		var (
			entry   domain.Entry
			level   int
			created string
		)
		if err := rows.Scan(&entry.ID, &entry.UserID, &level, &entry.Note, &created); err != nil {
			return nil, fmt.Errorf("scan mood entry: %w", err)
		}
		entry.Level = domain.Level(level)
		entry.CreatedAt, err = time.Parse(sqlitedb.Timestamp, created)
		if err != nil {
			return nil, fmt.Errorf("parse mood entry time: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mood entries: %w", err)
	}
	return entries, nil
}

func (s *SQLiteEntryStore) Aggregate(ctx context.Context, userID string) (domain.Stats, error) {
	const query = `
SELECT COUNT(*), COALESCE(AVG(mood_level), 0)
FROM mood_entries
WHERE user_id = ?;
`
	var stats domain.Stats
	if err := s.db.QueryRowContext(ctx, query, userID).Scan(&stats.Count, &stats.Average); err != nil {
		return domain.Stats{}, fmt.Errorf("aggregate mood entries: %w", err)
	}
	return stats, nil
}
