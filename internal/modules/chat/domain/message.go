package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const MaxMessageLength = 2000

const WelcomeMessage = "Hello! I'm here to listen and support you on your mental health journey. How are you feeling today?"

// WelcomeID marks the greeting shown to users with no history. It is never
// stored.
const WelcomeID = "welcome"

type Message struct {
	ID        string
	UserID    string
	Content   string
	FromUser  bool
	CreatedAt time.Time
}

func ValidateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("message is empty")
	}
	if utf8.RuneCountInString(content) > MaxMessageLength {
		return fmt.Errorf("message exceeds %d characters", MaxMessageLength)
	}
	return nil
}

// ReplySource says which responder produced a reply.
type ReplySource string

const (
	SourceKeywords ReplySource = "keywords"
	SourcePlugin   ReplySource = "plugin"
)

type Reply struct {
	Content  string
	Category Category
	Source   ReplySource
}
