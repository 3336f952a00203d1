package service

import (
	"context"
	"fmt"

	"mindful/internal/modules/breathing/domain"
	breathingout "mindful/internal/modules/breathing/port/out"
	"mindful/internal/platform/clock"
	apperrors "mindful/internal/platform/errors"
	"mindful/internal/platform/id"
)

const defaultHistoryLimit = 20

type BreathingService struct {
	clock clock.Clock
	idGen id.Generator
	store breathingout.SessionStore
}

func NewBreathingService(clock clock.Clock, idGen id.Generator, store breathingout.SessionStore) *BreathingService {
	return &BreathingService{clock: clock, idGen: idGen, store: store}
}

// Record stores a one-off session, such as one timed elsewhere. It forms a
// run of its own.
func (s *BreathingService) Record(ctx context.Context, userID string, cycles, minutes int) (domain.Session, error) {
	sessionID := s.idGen.New()
	return s.save(ctx, domain.Session{
		ID:              sessionID,
		RunID:           sessionID,
		UserID:          userID,
		CyclesCompleted: cycles,
		DurationMinutes: minutes,
		CreatedAt:       s.clock.Now(),
	})
}

// RecordRun stores the cumulative totals of a timer run. Later summaries of
// the same run update its row instead of adding one.
func (s *BreathingService) RecordRun(ctx context.Context, runID, userID string, cycles, minutes int) (domain.Session, error) {
	return s.save(ctx, domain.Session{
		ID:              s.idGen.New(),
		RunID:           runID,
		UserID:          userID,
		CyclesCompleted: cycles,
		DurationMinutes: minutes,
		CreatedAt:       s.clock.Now(),
	})
}

func (s *BreathingService) save(ctx context.Context, session domain.Session) (domain.Session, error) {
	if session.UserID == "" {
		return domain.Session{}, apperrors.ErrNotSignedIn
	}
	if err := session.Validate(); err != nil {
		return domain.Session{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if err := s.store.Save(ctx, session); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

func (s *BreathingService) History(ctx context.Context, userID string, limit int) ([]domain.Session, error) {
	if userID == "" {
		return nil, apperrors.ErrNotSignedIn
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.store.ListByUser(ctx, userID, limit)
}

func (s *BreathingService) Stats(ctx context.Context, userID string) (domain.Stats, error) {
	if userID == "" {
		return domain.Stats{}, apperrors.ErrNotSignedIn
	}
	return s.store.Aggregate(ctx, userID)
}
