// Package domain defines the core business entities for Huddle.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - PlayerRecord: Canonical per-player statistics joined across tables
//   - Document: A retrievable text unit synthesised from a record
//   - ConversationTurn: One question/answer exchange in a session
//   - RosterEntry, WaiverEntry, LeagueInfo: Live-league projections
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
package domain
