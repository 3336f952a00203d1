package dto

import "time"

type SendInput struct {
	UserID  string
	Content string
}

type MessageOutput struct {
	ID        string
	Content   string
	FromUser  bool
	CreatedAt time.Time
}

type SendOutput struct {
	UserMessage MessageOutput
	Reply       MessageOutput
	Category    string
	// Source is "plugin" or "keywords".
	Source string
	// Stored is false when either message failed to persist or nobody is
	// signed in.
	Stored bool
}
