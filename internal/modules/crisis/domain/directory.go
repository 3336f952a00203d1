package domain

import (
	"fmt"
	"strings"
)

type Hotline struct {
	ID          string
	Title       string
	Description string
	Phone       string
	Text        string
	Available   string
}

type Link struct {
	Title       string
	Description string
	URL         string
}

type Directory struct {
	EmergencyNotice string
	EmergencyNumber string
	Hotlines        []Hotline
	Strategies      []string
	Links           []Link
}

// Default is the directory shipped with the app. Each call returns a fresh
// copy.
func Default() Directory {
	return Directory{
		EmergencyNotice: "If you're in immediate danger, call 911 or go to your nearest emergency room.",
		EmergencyNumber: "911",
		Hotlines: []Hotline{
			{ID: "suicide", Title: "Suicide Prevention", Description: "988 Suicide & Crisis Lifeline", Phone: "988", Text: "Text 988", Available: "24/7"},
			{ID: "crisis", Title: "Crisis Text Line", Description: "Text HOME to 741741", Phone: "741741", Text: "Text HOME", Available: "24/7"},
			{ID: "domestic", Title: "Domestic Violence", Description: "National Domestic Violence Hotline", Phone: "1-800-799-7233", Text: "Text START to 88788", Available: "24/7"},
			{ID: "mental", Title: "Mental Health", Description: "SAMHSA National Helpline", Phone: "1-800-662-4357", Text: "Visit website", Available: "24/7"},
		},
		Strategies: []string{
			"Take slow, deep breaths",
			"Ground yourself: 5 things you can see, 4 you can touch, 3 you can hear, 2 you can smell, 1 you can taste",
			"Call a trusted friend or family member",
			"Go to a safe, public place",
			"Remove yourself from immediate danger",
			"Remember: This feeling will pass",
			"Use positive self-talk",
			"Focus on the present moment",
		},
		Links: []Link{
			{Title: "Psychology Today", Description: "Find therapists in your area", URL: "https://www.psychologytoday.com/us/therapists"},
			{Title: "SAMHSA Treatment Locator", Description: "Find treatment facilities", URL: "https://www.samhsa.gov/find-help/national-helpline"},
		},
	}
}

// Markdown renders the directory for a markdown renderer.
func (d Directory) Markdown() string {
	var b strings.Builder
	b.WriteString("# Crisis Support\n\n")
	fmt.Fprintf(&b, "> **Emergency?** %s\n\n", d.EmergencyNotice)
	b.WriteString("## Crisis Hotlines\n\n")
	for _, h := range d.Hotlines {
		fmt.Fprintf(&b, "- **%s**: %s. Call `%s` (%s). %s.\n", h.Title, h.Description, h.Phone, h.Available, h.Text)
	}
	b.WriteString("\n## Immediate Coping Strategies\n\n")
	for i, s := range d.Strategies {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	b.WriteString("\n## Find Professional Help\n\n")
	for _, l := range d.Links {
		fmt.Fprintf(&b, "- [%s](%s): %s\n", l.Title, l.URL, l.Description)
	}
	return b.String()
}

// PlainText renders the directory for a terminal without markdown support.
func (d Directory) PlainText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "EMERGENCY: %s\n\n", d.EmergencyNotice)
	b.WriteString("Crisis hotlines\n")
	for _, h := range d.Hotlines {
		fmt.Fprintf(&b, "  %-20s %-16s %s (%s)\n", h.Title, h.Phone, h.Text, h.Available)
	}
	b.WriteString("\nCoping strategies\n")
	for i, s := range d.Strategies {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, s)
	}
	b.WriteString("\nProfessional help\n")
	for _, l := range d.Links {
		fmt.Fprintf(&b, "  %s: %s\n", l.Title, l.URL)
	}
	return b.String()
}
