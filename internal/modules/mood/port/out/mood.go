package out

import (
	"context"

	"mindful/internal/modules/mood/domain"
)

type EntryStore interface {
	Save(ctx context.Context, entry domain.Entry) error
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.Entry, error)
	Aggregate(ctx context.Context, userID string) (domain.Stats, error)
}
