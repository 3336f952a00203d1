package dto

import "time"

type LogInput struct {
	UserID string
	Level  int
	Note   string
}

type EntryOutput struct {
	ID         string
	UserID     string
	Level      int
	LevelLabel string
	Note       string
	CreatedAt  time.Time
}

type StatsOutput struct {
	Count int
	// Average is rounded to one decimal place; zero when Count is zero.
	Average float64
}
