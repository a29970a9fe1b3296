package domain

import "time"

// ConversationTurn is one question/answer exchange. The assistant appends a
// turn only when a query reaches a terminal success state, so history never
// contains half-finished exchanges.
type ConversationTurn struct {
	// Question is the user's question text.
	Question string

	// Answer is the generated answer text.
	Answer string

	// AskedAt is when the question was received.
	AskedAt time.Time
}

// Answer is the result of one assistant query.
type Answer struct {
	// Text is the generated answer. Non-empty on every success path,
	// including degraded ones.
	Text string

	// Grounded is false when retrieval was unavailable and the answer came
	// from the model's general knowledge only.
	Grounded bool

	// LeagueDataIncluded is true when live league context made it into the
	// prompt.
	LeagueDataIncluded bool

	// Notes lists user-visible limitations of this answer, e.g. that live
	// roster data could not be fetched.
	Notes []string
}
