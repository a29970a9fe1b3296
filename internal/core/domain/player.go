package domain

import (
	"strings"
	"time"
	"unicode"
)

// PlayerRecord is the canonical per-player record after normalisation.
// Identity fields are never empty; category fields are nil/empty when the
// player is absent from that source table. Missing numeric measurements stay
// nil rather than zero, so a zero is always a real observation.
type PlayerRecord struct {
	// Name is the canonical player name, the join key across all tables.
	Name string

	// Team is the most recently observed team abbreviation.
	Team string

	// Positions holds every position the player has been listed at.
	Positions []string

	// Combine holds combine measurables, nil if the player never tested.
	Combine *CombineMetrics

	// Injuries is the ordered injury history, oldest first.
	Injuries []InjuryEvent

	// Rushing holds season rushing aggregates, nil if the player has none.
	Rushing *RushingStats
}

// CombineMetrics holds NFL combine measurables. All measurements are
// optional: a nil field means the drill was not recorded.
type CombineMetrics struct {
	HeightIn  *float64 // height in inches
	WeightLb  *float64 // weight in pounds
	FortyYard *float64 // 40-yard dash, seconds
	Vertical  *float64 // vertical jump, inches
	BenchReps *int     // 225lb bench press repetitions
	BroadJump *float64 // broad jump, inches
	ThreeCone *float64 // three-cone drill, seconds
	Shuttle   *float64 // 20-yard shuttle, seconds
}

// InjuryEvent is a single entry in a player's injury log.
type InjuryEvent struct {
	// Date is when the injury was reported.
	Date time.Time

	// Description is the free-text injury description from the log.
	Description string

	// GamesMissed counts games missed due to this injury.
	GamesMissed int
}

// RushingStats holds season-scoped rushing aggregates.
type RushingStats struct {
	Season        int
	Attempts      *int
	Yards         *float64
	YardsPerCarry *float64
	Touchdowns    *int
	Fumbles       *int
	FirstDowns    *int
}

// HasCategory reports whether the record carries data for the category.
func (r PlayerRecord) HasCategory(c Category) bool {
	switch c {
	case CategoryCombine:
		return r.Combine != nil
	case CategoryInjury:
		return len(r.Injuries) > 0
	case CategoryRushing:
		return r.Rushing != nil
	}
	return false
}

// CategoryCount returns the number of categories present on the record.
func (r PlayerRecord) CategoryCount() int {
	n := 0
	for _, c := range Categories {
		if r.HasCategory(c) {
			n++
		}
	}
	return n
}

// CanonicalName normalises a raw player name into the canonical join key:
// whitespace trimmed and collapsed, interior punctuation preserved, and
// casing folded to Title Case word by word. Two rows refer to the same
// player exactly when their canonical names are equal; anything fuzzier is
// flagged upstream rather than silently merged.
func CanonicalName(raw string) string {
	fields := strings.Fields(raw)
	for i, f := range fields {
		if isRomanSuffix(f) {
			fields[i] = strings.ToUpper(f)
			continue
		}
		fields[i] = titleWord(f)
	}
	return strings.Join(fields, " ")
}

// isRomanSuffix matches generational suffixes (II, III, IV, V) so they keep
// their uppercase form.
func isRomanSuffix(w string) bool {
	switch strings.ToUpper(w) {
	case "II", "III", "IV", "V":
		return true
	}
	return false
}

// titleWord uppercases the first letter of each hyphen, apostrophe, or
// dot-separated segment and lowercases the rest, so "d'ANDRE swift" becomes
// "D'Andre Swift" and "a.j. dillon" becomes "A.J. Dillon".
func titleWord(w string) string {
	var b strings.Builder
	upperNext := true
	for _, r := range w {
		if upperNext {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
		upperNext = r == '-' || r == '\'' || r == '.'
	}
	return b.String()
}
