package dto

import "time"

type RecordInput struct {
	UserID          string
	CyclesCompleted int
	DurationMinutes int
}

type SessionOutput struct {
	ID              string
	UserID          string
	CyclesCompleted int
	DurationMinutes int
	CreatedAt       time.Time
}

type StatsOutput struct {
	Sessions     int
	TotalCycles  int
	TotalMinutes int
}

// TimerSnapshot is a read-only view of the breathing timer for display.
type TimerSnapshot struct {
	Running       bool
	Phase         string
	Label         string
	Guidance      string
	SecondsLeft   int
	PhaseSeconds  int
	CyclesThisRun int
	Progress      float64
	Elapsed       time.Duration
	Tracking      bool
}

type SummaryOutput struct {
	UserID          string
	CyclesCompleted int
	DurationMinutes int
}

// Handoff describes what pause or reset passed to the recorder. Done yields
// the recorder's result once and is nil when nothing was emitted.
type Handoff struct {
	Emitted bool
	Summary SummaryOutput
	Done    <-chan error
}

type GuideInput struct {
	UserID string
	// Cycles stops the run after this many cycles; zero runs until cancelled.
	Cycles int
	OnTick func(TimerSnapshot)
}

type GuideOutput struct {
	CyclesCompleted int
	Elapsed         time.Duration
	Handoff         Handoff
	RecordErr       error
}
