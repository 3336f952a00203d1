package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"mindful/internal/modules/mood/domain"
	moodout "mindful/internal/modules/mood/port/out"
	"mindful/internal/platform/clock"
	apperrors "mindful/internal/platform/errors"
	"mindful/internal/platform/id"
)

const defaultRecentLimit = 5

type MoodService struct {
	clock clock.Clock
	idGen id.Generator
	store moodout.EntryStore
}

func NewMoodService(clock clock.Clock, idGen id.Generator, store moodout.EntryStore) *MoodService {
	return &MoodService{clock: clock, idGen: idGen, store: store}
}

func (s *MoodService) Log(ctx context.Context, userID string, level domain.Level, note string) (domain.Entry, error) {
	if userID == "" {
		return domain.Entry{}, apperrors.ErrNotSignedIn
	}
	entry := domain.Entry{
		ID:        s.idGen.New(),
		UserID:    userID,
		Level:     level,
		Note:      strings.TrimSpace(note),
		CreatedAt: s.clock.Now(),
	}
	if err := entry.Validate(); err != nil {
		return domain.Entry{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if err := s.store.Save(ctx, entry); err != nil {
		return domain.Entry{}, err
	}
	return entry, nil
}

func (s *MoodService) Recent(ctx context.Context, userID string, limit int) ([]domain.Entry, error) {
	if userID == "" {
		return nil, apperrors.ErrNotSignedIn
	}
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return s.store.ListByUser(ctx, userID, limit)
}

func (s *MoodService) Stats(ctx context.Context, userID string) (domain.Stats, error) {
	if userID == "" {
		return domain.Stats{}, apperrors.ErrNotSignedIn
	}
	stats, err := s.store.Aggregate(ctx, userID)
	if err != nil {
		return domain.Stats{}, err
	}
	stats.Average = math.Round(stats.Average*10) / 10
	return stats, nil
}
