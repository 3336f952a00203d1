package in

import (
	"context"

	mooddto "mindful/internal/modules/mood/dto"
	moodin "mindful/internal/modules/mood/port/in"
)

type CLIHandler struct {
	usecase moodin.Usecase
}

func NewCLIHandler(usecase moodin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Log(ctx context.Context, userID string, level int, note string) (mooddto.EntryOutput, error) {
	return h.usecase.Log(ctx, mooddto.LogInput{UserID: userID, Level: level, Note: note})
}

func (h CLIHandler) Recent(ctx context.Context, userID string, limit int) ([]mooddto.EntryOutput, error) {
	return h.usecase.Recent(ctx, userID, limit)
}

func (h CLIHandler) Stats(ctx context.Context, userID string) (mooddto.StatsOutput, error) {
	return h.usecase.Stats(ctx, userID)
}
