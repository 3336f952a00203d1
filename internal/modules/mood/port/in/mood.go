package in

import (
	"context"

	"mindful/internal/modules/mood/dto"
)

type Usecase interface {
	Log(ctx context.Context, input dto.LogInput) (dto.EntryOutput, error)
	Recent(ctx context.Context, userID string, limit int) ([]dto.EntryOutput, error)
	Stats(ctx context.Context, userID string) (dto.StatsOutput, error)
}
