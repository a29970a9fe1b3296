package normalisers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gridiron-labs/huddle-cli/internal/core/ports/driven"
)

// missingMarkers are cell values treated as absent data. A missing numeric
// stays nil on the record; it is never coerced to zero.
var missingMarkers = map[string]bool{
	"":     true,
	"-":    true,
	"--":   true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
}

// IsMissing reports whether a cell value represents absent data.
func IsMissing(s string) bool {
	return missingMarkers[strings.ToLower(strings.TrimSpace(s))]
}

// ParseFloat parses a cell into an optional float. Returns (nil, true) for
// missing values and (nil, false) for garbage that is present but unparseable.
func ParseFloat(s string) (*float64, bool) {
	if IsMissing(s) {
		return nil, true
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil, false
	}
	return &v, true
}

// ParseInt parses a cell into an optional int with the same conventions as
// ParseFloat. Values like "12.0" are accepted and truncated.
func ParseInt(s string) (*int, bool) {
	f, ok := ParseFloat(s)
	if f == nil {
		return nil, ok
	}
	v := int(*f)
	return &v, true
}

// dateLayouts are the date formats seen across the source tables.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"Jan 2, 2006",
}

// ParseDate parses a cell into a date. Returns the zero time and false when
// the value is missing or unparseable.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if IsMissing(s) {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SplitPositions splits a position cell like "RB/WR" or "RB, WR" into
// uppercase position codes.
func SplitPositions(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || r == ',' || r == ';' || r == ' '
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.ToUpper(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Stats counts what happened to the rows of one table during normalisation.
type Stats = driven.NormaliseStats
