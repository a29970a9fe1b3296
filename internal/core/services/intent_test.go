package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gridiron-labs/huddle-cli/internal/core/domain"
)

func TestClassifyIntent(t *testing.T) {
	cases := []struct {
		question string
		want     domain.Intent
	}{
		{"who is on my roster?", domain.IntentRoster},
		{"Should I start anyone from MY TEAM this week?", domain.IntentRoster},
		{"do i have a good RB2?", domain.IntentRoster},
		{"who are the best waiver wire running backs?", domain.IntentWaiver},
		{"any free agents worth a pickup?", domain.IntentWaiver},
		{"show me the league standings", domain.IntentStandings},
		{"what's my record this season?", domain.IntentStandings},
		{"what week is it in my league?", domain.IntentStandings},
		{"how fast did Saquon Barkley run the 40?", domain.IntentNone},
		{"compare Derrick Henry and Nick Chubb", domain.IntentNone},
		{"", domain.IntentNone},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyIntent(tc.question), "question: %q", tc.question)
	}
}

func TestClassifyIntent_RosterWinsOverWaiver(t *testing.T) {
	got := ClassifyIntent("should I drop someone from my roster for a waiver pickup?")
	assert.Equal(t, domain.IntentRoster, got)
}
