package server

import (
	"time"

	breathingdto "mindful/internal/modules/breathing/dto"
	chatdto "mindful/internal/modules/chat/dto"
	mooddto "mindful/internal/modules/mood/dto"
)

type resourceJSON struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Type        string   `json:"type"`
	URL         string   `json:"url,omitempty"`
	Tags        []string `json:"tags"`
	ReadTime    string   `json:"read_time,omitempty"`
}

type moodJSON struct {
	ID         string    `json:"id"`
	Level      int       `json:"level"`
	LevelLabel string    `json:"level_label"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func toMoodJSON(e mooddto.EntryOutput) moodJSON {
	return moodJSON{ID: e.ID, Level: e.Level, LevelLabel: e.LevelLabel, Note: e.Note, CreatedAt: e.CreatedAt}
}

type messageJSON struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	FromUser  bool      `json:"from_user"`
	CreatedAt time.Time `json:"created_at"`
}

func toMessageJSON(m chatdto.MessageOutput) messageJSON {
	return messageJSON{ID: m.ID, Content: m.Content, FromUser: m.FromUser, CreatedAt: m.CreatedAt}
}

type sessionJSON struct {
	ID              string    `json:"id"`
	CyclesCompleted int       `json:"cycles_completed"`
	DurationMinutes int       `json:"duration_minutes"`
	CreatedAt       time.Time `json:"created_at"`
}

func toSessionJSON(s breathingdto.SessionOutput) sessionJSON {
	return sessionJSON{ID: s.ID, CyclesCompleted: s.CyclesCompleted, DurationMinutes: s.DurationMinutes, CreatedAt: s.CreatedAt}
}
