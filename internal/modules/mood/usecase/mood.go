package usecase

import (
	"context"

	"mindful/internal/modules/mood/domain"
	mooddto "mindful/internal/modules/mood/dto"
	"mindful/internal/modules/mood/service"
)

type Interactor struct {
	svc *service.MoodService
}

func NewInteractor(svc *service.MoodService) *Interactor {
	return &Interactor{svc: svc}
}

func (i *Interactor) Log(ctx context.Context, input mooddto.LogInput) (mooddto.EntryOutput, error) {
	entry, err := i.svc.Log(ctx, input.UserID, domain.Level(input.Level), input.Note)
	if err != nil {
		return mooddto.EntryOutput{}, err
	}
	return toOutput(entry), nil
}

func (i *Interactor) Recent(ctx context.Context, userID string, limit int) ([]mooddto.EntryOutput, error) {
	entries, err := i.svc.Recent(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]mooddto.EntryOutput, 0, len(entries))
	for _, e := range entries {
		out = append(out, toOutput(e))
	}
	return out, nil
}

func (i *Interactor) Stats(ctx context.Context, userID string) (mooddto.StatsOutput, error) {
	stats, err := i.svc.Stats(ctx, userID)
	if err != nil {
		return mooddto.StatsOutput{}, err
	}
	return mooddto.StatsOutput{Count: stats.Count, Average: stats.Average}, nil
}

func toOutput(e domain.Entry) mooddto.EntryOutput {
	return mooddto.EntryOutput{
		ID:         e.ID,
		UserID:     e.UserID,
		Level:      int(e.Level),
		LevelLabel: e.Level.Label(),
		Note:       e.Note,
		CreatedAt:  e.CreatedAt,
	}
}
