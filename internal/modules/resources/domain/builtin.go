package domain

// BuiltIn is the catalog shipped with the app.
func BuiltIn() []Resource {
	return []Resource{
		{
			ID:          "1",
			Title:       "Understanding Anxiety: A Comprehensive Guide",
			Description: "Learn about anxiety disorders, symptoms, and evidence-based treatment approaches.",
			Category:    "anxiety",
			Type:        TypeArticle,
			URL:         "https://www.nimh.nih.gov/health/topics/anxiety-disorders",
			Tags:        []string{"anxiety", "mental health", "coping"},
			ReadTime:    "8 min",
		},
		{
			ID:          "2",
			Title:       "Mindfulness Meditation for Beginners",
			Description: "A step-by-step guide to starting your mindfulness practice.",
			Category:    "mindfulness",
			Type:        TypeExercise,
			URL:         "https://www.mindful.org/how-to-meditate/",
			Tags:        []string{"mindfulness", "meditation", "stress relief"},
			ReadTime:    "5 min",
		},
		{
			ID:          "3",
			Title:       "Cognitive Behavioral Therapy Techniques",
			Description: "Practical CBT strategies you can use in daily life.",
			Category:    "therapy",
			Type:        TypeArticle,
			URL:         "https://www.psychologytoday.com/us/therapy-types/cognitive-behavioral-therapy",
			Tags:        []string{"CBT", "therapy", "tools"},
			ReadTime:    "12 min",
		},
		{
			ID:          "4",
			Title:       "Dealing with Depression: Self-Help Strategies",
			Description: "Evidence-based self-help techniques for managing depression.",
			Category:    "depression",
			Type:        TypeArticle,
			URL:         "https://www.nhs.uk/mental-health/self-help/guides/depression/",
			Tags:        []string{"depression", "self-help", "coping"},
			ReadTime:    "10 min",
		},
		{
			ID:          "5",
			Title:       "Progressive Muscle Relaxation",
			Description: "A guided relaxation technique to reduce physical tension.",
			Category:    "stress",
			Type:        TypeExercise,
			URL:         "https://www.uofmhealth.org/health-library/uz2225",
			Tags:        []string{"relaxation", "stress relief", "exercise"},
			ReadTime:    "15 min",
		},
		{
			ID:          "6",
			Title:       "Building Healthy Sleep Habits",
			Description: "Tips for improving sleep quality and mental health.",
			Category:    "wellness",
			Type:        TypeArticle,
			URL:         "https://www.sleepfoundation.org/how-sleep-works/why-do-we-need-sleep",
			Tags:        []string{"sleep", "wellness", "mental health"},
			ReadTime:    "7 min",
		},
	}
}
