package in

import (
	"context"

	"mindful/internal/modules/breathing/dto"
)

type Usecase interface {
	Record(ctx context.Context, input dto.RecordInput) (dto.SessionOutput, error)
	History(ctx context.Context, userID string, limit int) ([]dto.SessionOutput, error)
	Stats(ctx context.Context, userID string) (dto.StatsOutput, error)
	Guide(ctx context.Context, input dto.GuideInput) (dto.GuideOutput, error)
}

// Coach drives one breathing timer for an interactive front end.
type Coach interface {
	SetIdentity(userID string) dto.Handoff
	Start()
	Tick()
	Pause() dto.Handoff
	Reset() dto.Handoff
	Snapshot() dto.TimerSnapshot
	Wait()
}
