package driven

import (
	"context"

	"github.com/gridiron-labs/huddle-cli/internal/core/domain"
)

// LeagueClient reads live data from the user's fantasy league. All
// operations are read-only and may fail with network or auth errors; the
// assistant catches those and degrades rather than surfacing them raw.
//
// This service is optional: a nil client simply means no live-league
// context is ever available.
type LeagueClient interface {
	// Roster fetches the user's current roster.
	Roster(ctx context.Context) ([]domain.RosterEntry, error)

	// WaiverPlayers fetches the players currently on the waiver wire.
	WaiverPlayers(ctx context.Context) ([]domain.WaiverEntry, error)

	// LeagueInfo fetches the current week and standings.
	LeagueInfo(ctx context.Context) (domain.LeagueInfo, error)

	// Close releases resources.
	Close() error
}
