package domain

// RosterEntry is one player on the user's fantasy roster.
// Read-only projection from the live league service; never cached beyond
// the current query.
type RosterEntry struct {
	// Name is the player name as reported by the league service.
	Name string

	// Positions lists the player's eligible positions.
	Positions []string
}

// WaiverEntry is one unrostered player available on the waiver wire.
type WaiverEntry struct {
	Name      string
	Positions []string
}

// Standing is one team's position in the league table.
type Standing struct {
	Rank     int
	TeamName string
	Wins     int
	Losses   int
	Ties     int
}

// LeagueInfo summarises the league's current state.
type LeagueInfo struct {
	// CurrentWeek is the league's current matchup week.
	CurrentWeek int

	// Standings is the league table ordered by rank.
	Standings []Standing
}
