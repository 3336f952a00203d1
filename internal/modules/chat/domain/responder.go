package domain

import (
	"hash/fnv"
	"strings"
)

type Category string

const (
	CategoryCrisis     Category = "crisis"
	CategoryAnxiety    Category = "anxiety"
	CategoryDepression Category = "depression"
	CategoryStress     Category = "stress"
	CategoryGeneral    Category = "general"
)

type topic struct {
	category Category
	keywords []string
	replies  []string
}

// topics are checked in order; the first keyword hit wins.
var topics = []topic{
	{
		category: CategoryCrisis,
		keywords: []string{"suicide", "suicidal", "kill myself", "end my life", "self harm", "self-harm", "hurt myself"},
		replies: []string{
			"I'm really glad you told me. You deserve support right now. Please call or text 988 (Suicide & Crisis Lifeline) or call 911 if you are in immediate danger. The Crisis tab lists more people you can reach any time.",
			"What you're feeling matters, and you don't have to face it alone. Please reach out to the 988 Suicide & Crisis Lifeline by calling or texting 988, or text HOME to 741741. If you are in danger, call 911.",
		},
	},
	{
		category: CategoryAnxiety,
		keywords: []string{"anxious", "anxiety", "worry"},
		replies: []string{
			"I understand you're feeling anxious. That's completely valid. Let's try some grounding techniques. Can you name 5 things you can see around you right now?",
			"Anxiety can feel overwhelming, but you're not alone. Would you like to try a breathing exercise together?",
			"I hear that you're struggling with anxiety. Remember, this feeling will pass. What usually helps you feel more grounded?",
		},
	},
	{
		category: CategoryDepression,
		keywords: []string{"depressed", "depression", "sad"},
		replies: []string{
			"I'm sorry you're going through this difficult time. Depression can make everything feel heavy, but reaching out shows incredible strength.",
			"Thank you for sharing this with me. Even small steps matter. What's one tiny thing that brought you even a moment of peace today?",
			"I want you to know that your feelings are valid, and you matter. Have you been able to maintain any routines that usually help you?",
		},
	},
	{
		category: CategoryStress,
		keywords: []string{"stress", "overwhelmed", "pressure"},
		replies: []string{
			"Stress can be really overwhelming. Let's work together to find some relief. What's the biggest source of stress for you right now?",
			"I can hear that you're under a lot of pressure. Remember, you don't have to handle everything at once. What's one thing you can let go of today?",
			"Stress affects us all differently. Would you like to explore some coping strategies that might help you feel more balanced?",
		},
	},
}

var generalReplies = []string{
	"Thank you for sharing that with me. I'm here to listen without judgment. Tell me more about what's on your mind.",
}

// Classify returns the first category whose keywords appear in message.
func Classify(message string) Category {
	lower := strings.ToLower(message)
	for _, t := range topics {
		for _, keyword := range t.keywords {
			if strings.Contains(lower, keyword) {
				return t.category
			}
		}
	}
	return CategoryGeneral
}

// KeywordReply picks a canned reply. The same message always gets the same
// reply.
func KeywordReply(message string) Reply {
	category := Classify(message)
	replies := generalReplies
	for _, t := range topics {
		if t.category == category {
			replies = t.replies
			break
		}
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(message))))
	return Reply{
		Content:  replies[int(h.Sum32()%uint32(len(replies)))],
		Category: category,
		Source:   SourceKeywords,
	}
}
