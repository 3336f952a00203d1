package in

import (
	"context"

	breathingdto "mindful/internal/modules/breathing/dto"
	breathingin "mindful/internal/modules/breathing/port/in"
)

type CLIHandler struct {
	usecase breathingin.Usecase
}

func NewCLIHandler(usecase breathingin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Guide(ctx context.Context, userID string, cycles int, onTick func(breathingdto.TimerSnapshot)) (breathingdto.GuideOutput, error) {
	return h.usecase.Guide(ctx, breathingdto.GuideInput{UserID: userID, Cycles: cycles, OnTick: onTick})
}

func (h CLIHandler) Record(ctx context.Context, userID string, cycles, minutes int) (breathingdto.SessionOutput, error) {
	return h.usecase.Record(ctx, breathingdto.RecordInput{UserID: userID, CyclesCompleted: cycles, DurationMinutes: minutes})
}

func (h CLIHandler) History(ctx context.Context, userID string, limit int) ([]breathingdto.SessionOutput, error) {
	return h.usecase.History(ctx, userID, limit)
}

func (h CLIHandler) Stats(ctx context.Context, userID string) (breathingdto.StatsOutput, error) {
	return h.usecase.Stats(ctx, userID)
}
