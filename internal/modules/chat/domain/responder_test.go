package domain_test

import (
	"strings"
	"testing"

	"mindful/internal/modules/chat/domain"
)

func TestClassify(t *testing.T) {
	t.Parallel()
	cases := []struct {
		message string
		want    domain.Category
	}{
		{"I feel so ANXIOUS today", domain.CategoryAnxiety},
		{"I worry about everything", domain.CategoryAnxiety},
		{"been depressed for weeks", domain.CategoryDepression},
		{"just sad", domain.CategoryDepression},
		{"work pressure is a lot", domain.CategoryStress},
		{"I'm overwhelmed and anxious", domain.CategoryAnxiety},
		{"I'm sad and stressed", domain.CategoryDepression},
		{"sometimes I want to end my life", domain.CategoryCrisis},
		{"anxious and thinking about self harm", domain.CategoryCrisis},
		{"had pizza for lunch", domain.CategoryGeneral},
		{"", domain.CategoryGeneral},
	}
	for _, tc := range cases {
		if got := domain.Classify(tc.message); got != tc.want {
			t.Fatalf("%q: expected %s, got %s", tc.message, tc.want, got)
		}
	}
}

func TestKeywordReplyIsDeterministic(t *testing.T) {
	t.Parallel()
	first := domain.KeywordReply("I feel anxious about tomorrow")
	for i := 0; i < 10; i++ {
		if got := domain.KeywordReply("I feel anxious about tomorrow"); got != first {
			t.Fatalf("reply changed between calls: %+v vs %+v", first, got)
		}
	}
	if domain.KeywordReply("I FEEL ANXIOUS ABOUT TOMORROW") != first {
		t.Fatalf("reply must not depend on letter case")
	}
	if first.Category != domain.CategoryAnxiety || first.Source != domain.SourceKeywords {
		t.Fatalf("unexpected reply metadata: %+v", first)
	}
}

func TestKeywordReplyContent(t *testing.T) {
	t.Parallel()
	general := domain.KeywordReply("the weather is nice")
	if !strings.HasPrefix(general.Content, "Thank you for sharing that with me.") {
		t.Fatalf("unexpected general reply: %s", general.Content)
	}
	crisis := domain.KeywordReply("I want to kill myself")
	if !strings.Contains(crisis.Content, "988") {
		t.Fatalf("crisis reply must point to 988: %s", crisis.Content)
	}
}

func TestValidateContent(t *testing.T) {
	t.Parallel()
	if err := domain.ValidateContent("hello"); err != nil {
		t.Fatalf("valid content rejected: %v", err)
	}
	if err := domain.ValidateContent(" \n\t"); err == nil {
		t.Fatalf("blank content must be rejected")
	}
	if err := domain.ValidateContent(strings.Repeat("a", domain.MaxMessageLength+1)); err == nil {
		t.Fatalf("oversized content must be rejected")
	}
}
