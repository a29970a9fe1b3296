package services

import (
	"strings"

	"github.com/gridiron-labs/huddle-cli/internal/core/domain"
)

// intentKeywords maps question phrases to league intents. Matching is
// case-insensitive substring matching over the whole question, so
// "who's on my roster?" and "show my team" both land on IntentRoster.
var intentKeywords = []struct {
	intent  domain.Intent
	phrases []string
}{
	{domain.IntentRoster, []string{
		"my roster", "my team", "my lineup", "my players", "on my squad",
		"do i have", "who do i have", "am i starting",
	}},
	{domain.IntentWaiver, []string{
		"waiver", "free agent", "free agents", "available player",
		"who is available", "who's available", "pick up", "pickup",
	}},
	{domain.IntentStandings, []string{
		"standings", "my record", "league record", "win-loss",
		"what place", "which place", "current week", "what week",
	}},
}

// ClassifyIntent maps a question onto the closed set of league intents.
// It is a pure function over the question text and never talks to the
// league itself. The first matching intent in declaration order wins,
// so a question mentioning both roster and waivers reads as a roster
// question.
func ClassifyIntent(question string) domain.Intent {
	q := strings.ToLower(question)
	for _, entry := range intentKeywords {
		for _, phrase := range entry.phrases {
			if strings.Contains(q, phrase) {
				return entry.intent
			}
		}
	}
	return domain.IntentNone
}
