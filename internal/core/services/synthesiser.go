package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gridiron-labs/huddle-cli/internal/core/domain"
	"github.com/gridiron-labs/huddle-cli/internal/logger"
)

// Synthesiser renders normalised player records into retrievable documents:
// one document per (player, present category). Output order and text are
// deterministic, so two runs over identical input produce byte-identical
// documents.
type Synthesiser struct{}

// NewSynthesiser creates a new synthesiser.
func NewSynthesiser() *Synthesiser {
	return &Synthesiser{}
}

// Synthesise renders the record set. Records are processed in name order
// and categories in the fixed combine, injury, rushing order. A category
// absent from a record yields no document, never a placeholder.
func (s *Synthesiser) Synthesise(records []domain.PlayerRecord) []domain.Document {
	sorted := make([]domain.PlayerRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var docs []domain.Document
	for _, rec := range sorted {
		if rec.Name == "" {
			continue
		}
		for _, category := range domain.Categories {
			if !rec.HasCategory(category) {
				continue
			}
			docs = append(docs, domain.Document{
				ID:       domain.DocumentID(rec.Name, category),
				Player:   rec.Name,
				Category: category,
				Text:     renderCategory(rec, category),
			})
		}
	}

	logger.Debug("synthesised %d documents from %d records", len(docs), len(records))
	return docs
}

func renderCategory(rec domain.PlayerRecord, category domain.Category) string {
	switch category {
	case domain.CategoryCombine:
		return renderCombine(rec)
	case domain.CategoryInjury:
		return renderInjuries(rec)
	case domain.CategoryRushing:
		return renderRushing(rec)
	}
	return ""
}

// renderCombine renders combine measurables, e.g.:
//
//	Saquon Barkley (RB, NYG) combine measurables: height 72.0 in,
//	weight 233.0 lb, 40-yard dash 4.40 s, vertical jump 41.0 in.
func renderCombine(rec domain.PlayerRecord) string {
	var b strings.Builder
	b.WriteString(identity(rec))
	b.WriteString(" combine measurables: ")

	m := rec.Combine
	var parts []string
	appendFloat(&parts, "height", m.HeightIn, 1, "in")
	appendFloat(&parts, "weight", m.WeightLb, 1, "lb")
	appendFloat(&parts, "40-yard dash", m.FortyYard, 2, "s")
	appendFloat(&parts, "vertical jump", m.Vertical, 1, "in")
	appendInt(&parts, "bench press", m.BenchReps, "reps")
	appendFloat(&parts, "broad jump", m.BroadJump, 1, "in")
	appendFloat(&parts, "3-cone drill", m.ThreeCone, 2, "s")
	appendFloat(&parts, "20-yard shuttle", m.Shuttle, 2, "s")

	if len(parts) == 0 {
		b.WriteString("no drills recorded.")
		return b.String()
	}
	b.WriteString(strings.Join(parts, ", "))
	b.WriteString(".")
	return b.String()
}

// renderInjuries renders the injury history, oldest event first.
func renderInjuries(rec domain.PlayerRecord) string {
	var b strings.Builder
	b.WriteString(identity(rec))
	fmt.Fprintf(&b, " injury history (%d events):", len(rec.Injuries))

	for _, ev := range rec.Injuries {
		b.WriteString(" ")
		if !ev.Date.IsZero() {
			b.WriteString(ev.Date.Format("2006-01-02"))
			b.WriteString(" ")
		}
		b.WriteString(ev.Description)
		fmt.Fprintf(&b, " (%d games missed);", ev.GamesMissed)
	}
	return strings.TrimSuffix(b.String(), ";") + "."
}

// renderRushing renders season rushing aggregates.
func renderRushing(rec domain.PlayerRecord) string {
	var b strings.Builder
	b.WriteString(identity(rec))
	r := rec.Rushing
	if r.Season > 0 {
		fmt.Fprintf(&b, " %d season rushing: ", r.Season)
	} else {
		b.WriteString(" season rushing: ")
	}

	var parts []string
	appendInt(&parts, "", r.Attempts, "attempts")
	appendFloat(&parts, "", r.Yards, 1, "yards")
	appendFloat(&parts, "", r.YardsPerCarry, 2, "yards per carry")
	appendInt(&parts, "", r.Touchdowns, "touchdowns")
	appendInt(&parts, "", r.Fumbles, "fumbles")
	appendInt(&parts, "", r.FirstDowns, "first downs")

	if len(parts) == 0 {
		b.WriteString("no stats recorded.")
		return b.String()
	}
	b.WriteString(strings.Join(parts, ", "))
	b.WriteString(".")
	return b.String()
}

// identity renders the player's identity prefix: "Name (POS1/POS2, TEAM)".
func identity(rec domain.PlayerRecord) string {
	var b strings.Builder
	b.WriteString(rec.Name)

	var attrs []string
	if len(rec.Positions) > 0 {
		attrs = append(attrs, strings.Join(rec.Positions, "/"))
	}
	if rec.Team != "" {
		attrs = append(attrs, rec.Team)
	}
	if len(attrs) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(attrs, ", "))
		b.WriteString(")")
	}
	return b.String()
}

// appendFloat appends "label value unit" with fixed precision, so
// rendering is byte-stable across runs. Nil values render nothing.
func appendFloat(parts *[]string, label string, v *float64, prec int, unit string) {
	if v == nil {
		return
	}
	s := strconv.FormatFloat(*v, 'f', prec, 64) + " " + unit
	if label != "" {
		s = label + " " + s
	}
	*parts = append(*parts, s)
}

func appendInt(parts *[]string, label string, v *int, unit string) {
	if v == nil {
		return
	}
	s := strconv.Itoa(*v) + " " + unit
	if label != "" {
		s = label + " " + s
	}
	*parts = append(*parts, s)
}
