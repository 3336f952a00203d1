package out

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mindful/internal/modules/chat/domain"
	chatout "mindful/internal/modules/chat/port/out"
	"mindful/internal/platform/sqlitedb"
)

const chatDDL = `
CREATE TABLE IF NOT EXISTS chat_messages (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  content TEXT NOT NULL,
  is_user_message INTEGER NOT NULL,
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_chat_messages_user ON chat_messages(user_id, created_at);
`

type SQLiteMessageStore struct {
	db *sql.DB
}

// NewSQLiteMessageStore applies its schema to db. The caller owns db and closes it.
func NewSQLiteMessageStore(ctx context.Context, db *sql.DB) (*SQLiteMessageStore, error) {
	if err := sqlitedb.Apply(ctx, db, chatDDL); err != nil {
		return nil, fmt.Errorf("init chat store: %w", err)
	}
	return &SQLiteMessageStore{db: db}, nil
}

var _ chatout.MessageStore = (*SQLiteMessageStore)(nil)

func (s *SQLiteMessageStore) Save(ctx context.Context, message domain.Message) error {
	const stmt = `
INSERT INTO chat_messages (id, user_id, content, is_user_message, created_at)
VALUES (?, ?, ?, ?, ?);
`
	if _, err := s.db.ExecContext(ctx, stmt,
		message.ID, message.UserID, message.Content, message.FromUser,
		message.CreatedAt.UTC().Format(sqlitedb.Timestamp),
	); err != nil {
		return fmt.Errorf("insert chat message: %w", err)
	}
	return nil
}

func (s *SQLiteMessageStore) ListByUser(ctx context.Context, userID string) ([]domain.Message, error) {
	const query = `
SELECT id, user_id, content, is_user_message, created_at
FROM chat_messages
WHERE user_id = ?
ORDER BY created_at ASC, rowid ASC;
`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query chat messages: %w", err)
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var (
			message domain.Message
			created string
		)
		if err := rows.Scan(&message.ID, &message.UserID, &message.Content, &message.FromUser, &created); err != nil {
			return nil, fmt.Errorf("scan chat message: %w", err)
		}
		message.CreatedAt, err = time.Parse(sqlitedb.Timestamp, created)
		if err != nil {
			return nil, fmt.Errorf("parse chat message time: %w", err)
		}
		messages = append(messages, message)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chat messages: %w", err)
	}
	return messages, nil
}
