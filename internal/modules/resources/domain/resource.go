package domain

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeArticle  Type = "article"
	TypeVideo    Type = "video"
	TypeAudio    Type = "audio"
	TypeExercise Type = "exercise"
)

func (t Type) Validate() error {
	switch t {
	case TypeArticle, TypeVideo, TypeAudio, TypeExercise:
		return nil
	default:
		return fmt.Errorf("unknown resource type: %s", t)
	}
}

// CategoryAll matches every resource when filtering.
const CategoryAll = "all"

type Category struct {
	ID   string
	Name string
}

var categories = []Category{
	{ID: CategoryAll, Name: "All"},
	{ID: "anxiety", Name: "Anxiety"},
	{ID: "depression", Name: "Depression"},
	{ID: "mindfulness", Name: "Mindfulness"},
	{ID: "therapy", Name: "Therapy"},
	{ID: "stress", Name: "Stress"},
	{ID: "wellness", Name: "Wellness"},
}

func Categories() []Category {
	return append([]Category(nil), categories...)
}

func KnownCategory(id string) bool {
	for _, c := range categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

type Resource struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Category    string   `yaml:"category"`
	Type        Type     `yaml:"type"`
	URL         string   `yaml:"url"`
	Tags        []string `yaml:"tags"`
	ReadTime    string   `yaml:"read_time"`
	// File is an optional local markdown or PDF document.
	File string `yaml:"file"`
}

func (r Resource) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("resource id is required")
	}
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("resource %s: title is required", r.ID)
	}
	if r.Category == CategoryAll || !KnownCategory(r.Category) {
		return fmt.Errorf("resource %s: unknown category %q", r.ID, r.Category)
	}
	if err := r.Type.Validate(); err != nil {
		return fmt.Errorf("resource %s: %w", r.ID, err)
	}
	if r.URL == "" && r.File == "" {
		return fmt.Errorf("resource %s: url or file is required", r.ID)
	}
	return nil
}

// Matches reports whether the resource passes a search term and category.
// Search is a case-insensitive substring of the title, description or any
// tag; an empty category or "all" matches every category.
func (r Resource) Matches(search, category string) bool {
	if category != "" && category != CategoryAll && r.Category != category {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(r.Title), term) || strings.Contains(strings.ToLower(r.Description), term) {
		return true
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

func Filter(resources []Resource, search, category string) []Resource {
	out := make([]Resource, 0, len(resources))
	for _, r := range resources {
		if r.Matches(search, category) {
			out = append(out, r)
		}
	}
	return out
}

// ValidateCatalog checks every resource and rejects duplicate ids.
func ValidateCatalog(resources []Resource) error {
	seen := map[string]struct{}{}
	for _, r := range resources {
		if err := r.Validate(); err != nil {
			return err
		}
		if _, ok := seen[r.ID]; ok {
			return fmt.Errorf("duplicate resource id: %s", r.ID)
		}
		seen[r.ID] = struct{}{}
	}
	return nil
}
