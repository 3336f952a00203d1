package domain

import (
	"fmt"
	"strings"
	"time"
)

// Level is a self-reported mood on a five point scale.
type Level int

const (
	LevelVeryLow Level = iota + 1
	LevelLow
	LevelOkay
	LevelGood
	LevelExcellent
)

const MaxNoteLength = 1000

var levelLabels = map[Level]string{
	LevelVeryLow:   "Very Low",
	LevelLow:       "Low",
	LevelOkay:      "Okay",
	LevelGood:      "Good",
	LevelExcellent: "Excellent",
}

func (l Level) Valid() bool {
	return l >= LevelVeryLow && l <= LevelExcellent
}

func (l Level) Label() string {
	if label, ok := levelLabels[l]; ok {
		return label
	}
	return "Unknown"
}

// Levels lists every level in ascending order.
func Levels() []Level {
	return []Level{LevelVeryLow, LevelLow, LevelOkay, LevelGood, LevelExcellent}
}

type Entry struct {
	ID        string
	UserID    string
	Level     Level
	Note      string
	CreatedAt time.Time
}

func (e Entry) Validate() error {
	if strings.TrimSpace(e.UserID) == "" {
		return fmt.Errorf("user id is required")
	}
	if !e.Level.Valid() {
		return fmt.Errorf("mood level must be between 1 and 5, got %d", e.Level)
	}
	if len(e.Note) > MaxNoteLength {
		return fmt.Errorf("note exceeds %d characters", MaxNoteLength)
	}
	return nil
}

// Stats summarises every entry a user has logged.
type Stats struct {
	Count   int
	Average float64
}
