package out

import (
	"context"

	"mindful/internal/modules/breathing/domain"
)

type SessionStore interface {
	// Save inserts a session. A session whose user already has a row for the
	// same run replaces that row's totals when they grew.
	Save(ctx context.Context, session domain.Session) error
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.Session, error)
	Aggregate(ctx context.Context, userID string) (domain.Stats, error)
}

// SessionRecorder is the persistence collaborator the timer hands finished
// sessions to. Summaries of one run share runID and carry cumulative totals.
type SessionRecorder interface {
	RecordBreathingRun(ctx context.Context, runID, userID string, cyclesCompleted, durationMinutes int) error
}
