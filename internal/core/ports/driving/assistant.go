package driving

import (
	"context"

	"github.com/gridiron-labs/huddle-cli/internal/core/domain"
)

// AssistantService answers questions grounded in the semantic index and,
// when the question calls for it, live league data.
type AssistantService interface {
	// Ask answers one question. It always returns either an answer (possibly
	// degraded, see Answer.Notes) or an error wrapping
	// domain.ErrGenerationFailed. History grows by exactly one turn per
	// successful call and is untouched on failure.
	Ask(ctx context.Context, question string) (domain.Answer, error)

	// History returns a copy of the session's conversation turns in order.
	History() []domain.ConversationTurn

	// ResetHistory clears the session's conversation turns.
	ResetHistory()
}

// IndexService builds and rebuilds the semantic index over the player
// document set.
type IndexService interface {
	// Build builds the index from the source tables and swaps it in.
	Build(ctx context.Context) error

	// Rebuild is Build exposed as an idempotent refresh: readers see either
	// the old or the new index in full, never a partial one.
	Rebuild(ctx context.Context) error

	// Size returns the number of documents in the active index, 0 if none.
	Size() int
}
