package domain

import (
	"fmt"
	"strings"
	"time"
)

// Session is a recorded breathing session. RunID groups the cumulative
// summaries of one timer run into a single row.
type Session struct {
	ID              string
	RunID           string
	UserID          string
	CyclesCompleted int
	DurationMinutes int
	CreatedAt       time.Time
}

func (s Session) Validate() error {
	if strings.TrimSpace(s.UserID) == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(s.RunID) == "" {
		return fmt.Errorf("run id is required")
	}
	if s.CyclesCompleted < 0 {
		return fmt.Errorf("cycles completed must be non-negative")
	}
	if s.DurationMinutes < 1 {
		return fmt.Errorf("duration must be at least one minute")
	}
	return nil
}

// Stats is the lifetime aggregate derived from recorded sessions.
type Stats struct {
	Sessions     int
	TotalCycles  int
	TotalMinutes int
}
