package normalisers

import (
	"sort"

	"github.com/gridiron-labs/huddle-cli/internal/core/domain"
	"github.com/gridiron-labs/huddle-cli/internal/logger"
)

// Merge joins the three per-table record sets into one set keyed by
// canonical player name. Each input record carries only its own category;
// the output record carries every category observed for that player.
//
// Identity resolution is exact-match-after-normalisation. A merge whose
// identity fields disagree (same name, different team) is logged rather
// than silently resolved, so a surprising match is at least visible.
func Merge(sets ...[]domain.PlayerRecord) []domain.PlayerRecord {
	byName := make(map[string]*domain.PlayerRecord)
	var order []string

	for _, set := range sets {
		for _, rec := range set {
			existing, ok := byName[rec.Name]
			if !ok {
				merged := rec
				byName[rec.Name] = &merged
				order = append(order, rec.Name)
				continue
			}
			mergeInto(existing, rec)
		}
	}

	out := make([]domain.PlayerRecord, 0, len(order))
	sort.Strings(order)
	for _, name := range order {
		out = append(out, *byName[name])
	}
	return out
}

// mergeInto folds the category data of src into dst. Identity fields prefer
// the first non-empty value; positions accumulate without duplicates.
func mergeInto(dst *domain.PlayerRecord, src domain.PlayerRecord) {
	if dst.Team == "" {
		dst.Team = src.Team
	} else if src.Team != "" && src.Team != dst.Team {
		logger.Info("player %q listed on %s and %s, keeping %s", dst.Name, dst.Team, src.Team, dst.Team)
	}

	for _, p := range src.Positions {
		if !containsString(dst.Positions, p) {
			dst.Positions = append(dst.Positions, p)
		}
	}

	if src.Combine != nil {
		dst.Combine = src.Combine
	}
	if len(src.Injuries) > 0 {
		dst.Injuries = append(dst.Injuries, src.Injuries...)
		sort.SliceStable(dst.Injuries, func(i, j int) bool {
			return dst.Injuries[i].Date.Before(dst.Injuries[j].Date)
		})
	}
	if src.Rushing != nil {
		dst.Rushing = src.Rushing
	}
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
