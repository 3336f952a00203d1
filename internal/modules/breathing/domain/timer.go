package domain

import (
	"math"
	"time"
)

// SessionSummary is handed to the recorder when a run is paused or reset.
// Totals are cumulative for the run that began at StartedAt.
type SessionSummary struct {
	CyclesCompleted int
	DurationMinutes int
	StartedAt       time.Time
}

// RunID identifies the run a summary belongs to. Every summary of one run
// carries the same id, so a recorder can keep the latest totals per run.
func (s SessionSummary) RunID() string {
	return "run-" + s.StartedAt.UTC().Format("20060102T150405.000000000Z")
}

// Timer is the breathing cadence state machine. It has a single writer: the
// caller owns synchronisation. Time is always passed in so that elapsed
// duration is derived from the session start rather than counted.
type Timer struct {
	running      bool
	phase        Phase
	secondsLeft  int
	cycles       int
	sessionStart time.Time
}

func NewTimer() Timer {
	return Timer{phase: PhaseInhale, secondsLeft: PhaseInhale.Seconds()}
}

func (t Timer) Running() bool      { return t.running }
func (t Timer) Phase() Phase       { return t.phase }
func (t Timer) SecondsLeft() int   { return t.secondsLeft }
func (t Timer) CyclesThisRun() int { return t.cycles }

// SessionStart reports when the current run began, if one has.
func (t Timer) SessionStart() (time.Time, bool) {
	return t.sessionStart, !t.sessionStart.IsZero()
}

// Start arms the run. The session start is kept across pause/resume.
func (t *Timer) Start(now time.Time) {
	if t.running {
		return
	}
	t.running = true
	if t.sessionStart.IsZero() {
		t.sessionStart = now
	}
}

// Tick advances exactly one second of simulated time. Ticks that arrive
// while the timer is not running are dropped.
func (t *Timer) Tick() {
	if !t.running {
		return
	}
	if t.secondsLeft > 1 {
		t.secondsLeft--
		return
	}
	t.phase = t.phase.Next()
	t.secondsLeft = t.phase.Seconds()
	if t.phase == PhaseInhale {
		t.cycles++
	}
}

// Pause stops the run and returns a summary when one is due. Cycles and the
// session start survive so that a resumed run keeps accumulating.
func (t *Timer) Pause(now time.Time) (SessionSummary, bool) {
	if !t.running {
		return SessionSummary{}, false
	}
	t.running = false
	if t.sessionStart.IsZero() {
		return SessionSummary{}, false
	}
	elapsed := t.Elapsed(now)
	if t.cycles == 0 && elapsed <= 0 {
		return SessionSummary{}, false
	}
	return SessionSummary{CyclesCompleted: t.cycles, DurationMinutes: durationMinutes(elapsed), StartedAt: t.sessionStart}, true
}

// Reset pauses a running timer (which may yield a summary) and restores the
// initial state.
func (t *Timer) Reset(now time.Time) (SessionSummary, bool) {
	summary, emitted := t.Pause(now)
	*t = NewTimer()
	return summary, emitted
}

// Progress is the completed fraction of the current phase, in [0, 1).
func (t Timer) Progress() float64 {
	total := t.phase.Seconds()
	return float64(total-t.secondsLeft) / float64(total)
}

// Elapsed is wall time since the session started, zero when none has.
func (t Timer) Elapsed(now time.Time) time.Duration {
	if t.sessionStart.IsZero() {
		return 0
	}
	elapsed := now.Sub(t.sessionStart)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

func durationMinutes(elapsed time.Duration) int {
	minutes := int(math.Round(elapsed.Seconds() / 60))
	if minutes < 1 {
		return 1
	}
	return minutes
}
