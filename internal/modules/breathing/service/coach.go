package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"mindful/internal/modules/breathing/domain"
	"mindful/internal/modules/breathing/dto"
	breathingout "mindful/internal/modules/breathing/port/out"
	"mindful/internal/platform/clock"
)

// Coach owns one breathing timer and hands finished sessions to the recorder
// without waiting for them. Timer methods must be called from a single
// goroutine; only the hand-offs run concurrently.
type Coach struct {
	clock    clock.Clock
	recorder breathingout.SessionRecorder
	logger   *zap.Logger

	timer    domain.Timer
	userID   string
	inflight sync.WaitGroup
}

func NewCoach(clock clock.Clock, recorder breathingout.SessionRecorder, logger *zap.Logger, userID string) *Coach {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coach{
		clock:    clock,
		recorder: recorder,
		logger:   logger.Named("breathing"),
		timer:    domain.NewTimer(),
		userID:   userID,
	}
}

// SetIdentity changes who sessions are recorded for. An empty id turns
// session accounting off. A run in progress belongs to the identity that
// started it: it is reset and handed off under that identity first, and an
// anonymous run is discarded.
func (c *Coach) SetIdentity(userID string) dto.Handoff {
	if userID == c.userID {
		return dto.Handoff{}
	}
	var h dto.Handoff
	if _, ok := c.timer.SessionStart(); ok {
		h = c.Reset()
	}
	c.userID = userID
	return h
}

func (c *Coach) Start() {
	c.timer.Start(c.clock.Now())
}

func (c *Coach) Tick() {
	c.timer.Tick()
}

func (c *Coach) Pause() dto.Handoff {
	summary, emitted := c.timer.Pause(c.clock.Now())
	return c.handoff(summary, emitted)
}

func (c *Coach) Reset() dto.Handoff {
	summary, emitted := c.timer.Reset(c.clock.Now())
	return c.handoff(summary, emitted)
}

func (c *Coach) Snapshot() dto.TimerSnapshot {
	phase := c.timer.Phase()
	return dto.TimerSnapshot{
		Running:       c.timer.Running(),
		Phase:         phase.String(),
		Label:         phase.Label(),
		Guidance:      phase.Guidance(),
		SecondsLeft:   c.timer.SecondsLeft(),
		PhaseSeconds:  phase.Seconds(),
		CyclesThisRun: c.timer.CyclesThisRun(),
		Progress:      c.timer.Progress(),
		Elapsed:       c.timer.Elapsed(c.clock.Now()),
		Tracking:      c.tracking(),
	}
}

// Wait blocks until every hand-off started so far has finished.
func (c *Coach) Wait() {
	c.inflight.Wait()
}

func (c *Coach) tracking() bool {
	return c.userID != "" && c.recorder != nil
}

func (c *Coach) handoff(summary domain.SessionSummary, emitted bool) dto.Handoff {
	if !emitted || !c.tracking() {
		return dto.Handoff{}
	}
	out := dto.SummaryOutput{
		UserID:          c.userID,
		CyclesCompleted: summary.CyclesCompleted,
		DurationMinutes: summary.DurationMinutes,
	}
	runID := summary.RunID()
	done := make(chan error, 1)
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		defer close(done)
		err := c.recorder.RecordBreathingRun(context.Background(), runID, out.UserID, out.CyclesCompleted, out.DurationMinutes)
		if err != nil {
			c.logger.Warn("breathing session not recorded",
				zap.String("user_id", out.UserID),
				zap.String("run_id", runID),
				zap.Int("cycles", out.CyclesCompleted),
				zap.Int("minutes", out.DurationMinutes),
				zap.Error(err))
		} else {
			c.logger.Debug("breathing session recorded",
				zap.String("user_id", out.UserID),
				zap.Int("cycles", out.CyclesCompleted))
		}
		done <- err
	}()
	return dto.Handoff{Emitted: true, Summary: out, Done: done}
}
