package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"mindful/internal/modules/breathing/domain"
	breathingdto "mindful/internal/modules/breathing/dto"
	"mindful/internal/modules/breathing/service"
	"mindful/internal/platform/clock"
)

type Interactor struct {
	svc      *service.BreathingService
	clock    clock.Clock
	logger   *zap.Logger
	interval time.Duration
}

type Option func(*Interactor)

// WithInterval overrides the one-second cadence used by Guide.
func WithInterval(interval time.Duration) Option {
	return func(i *Interactor) { i.interval = interval }
}

func NewInteractor(svc *service.BreathingService, clock clock.Clock, logger *zap.Logger, opts ...Option) *Interactor {
	if logger == nil {
		logger = zap.NewNop()
	}
	i := &Interactor{svc: svc, clock: clock, logger: logger, interval: time.Second}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

func (i *Interactor) Record(ctx context.Context, input breathingdto.RecordInput) (breathingdto.SessionOutput, error) {
	session, err := i.svc.Record(ctx, input.UserID, input.CyclesCompleted, input.DurationMinutes)
	if err != nil {
		return breathingdto.SessionOutput{}, err
	}
	return toOutput(session), nil
}

// RecordBreathingSession stores a session that was not timed by a coach.
func (i *Interactor) RecordBreathingSession(ctx context.Context, userID string, cyclesCompleted, durationMinutes int) error {
	_, err := i.svc.Record(ctx, userID, cyclesCompleted, durationMinutes)
	return err
}

// RecordBreathingRun lets the interactor act as the coach's recorder.
func (i *Interactor) RecordBreathingRun(ctx context.Context, runID, userID string, cyclesCompleted, durationMinutes int) error {
	_, err := i.svc.RecordRun(ctx, runID, userID, cyclesCompleted, durationMinutes)
	return err
}

func (i *Interactor) History(ctx context.Context, userID string, limit int) ([]breathingdto.SessionOutput, error) {
	sessions, err := i.svc.History(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]breathingdto.SessionOutput, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toOutput(s))
	}
	return out, nil
}

func (i *Interactor) Stats(ctx context.Context, userID string) (breathingdto.StatsOutput, error) {
	stats, err := i.svc.Stats(ctx, userID)
	if err != nil {
		return breathingdto.StatsOutput{}, err
	}
	return breathingdto.StatsOutput{Sessions: stats.Sessions, TotalCycles: stats.TotalCycles, TotalMinutes: stats.TotalMinutes}, nil
}

// NewCoach returns a coach that records finished sessions through this
// interactor.
func (i *Interactor) NewCoach(userID string) *service.Coach {
	return service.NewCoach(i.clock, i, i.logger, userID)
}

// Guide runs one headless session until ctx is done or the requested number
// of cycles completes, then resets the timer so the session is recorded.
func (i *Interactor) Guide(ctx context.Context, input breathingdto.GuideInput) (breathingdto.GuideOutput, error) {
	coach := i.NewCoach(input.UserID)
	finished := make(chan struct{})
	stopped := false

	cadence := service.NewCadence(i.interval, func() {
		if stopped {
			return
		}
		coach.Tick()
		snap := coach.Snapshot()
		if input.OnTick != nil {
			input.OnTick(snap)
		}
		if input.Cycles > 0 && snap.CyclesThisRun >= input.Cycles {
			stopped = true
			close(finished)
		}
	})

	coach.Start()
	if input.OnTick != nil {
		input.OnTick(coach.Snapshot())
	}
	cadence.Arm()
	select {
	case <-ctx.Done():
	case <-finished:
	}
	cadence.Disarm()

	last := coach.Snapshot()
	handoff := coach.Reset()
	var recordErr error
	if handoff.Done != nil {
		recordErr = <-handoff.Done
	}
	coach.Wait()

	return breathingdto.GuideOutput{
		CyclesCompleted: last.CyclesThisRun,
		Elapsed:         last.Elapsed,
		Handoff:         handoff,
		RecordErr:       recordErr,
	}, nil
}

func toOutput(s domain.Session) breathingdto.SessionOutput {
	return breathingdto.SessionOutput{
		ID:              s.ID,
		UserID:          s.UserID,
		CyclesCompleted: s.CyclesCompleted,
		DurationMinutes: s.DurationMinutes,
		CreatedAt:       s.CreatedAt,
	}
}
