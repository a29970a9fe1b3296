package domain

// Intent is the closed set of live-data needs a question can express.
// The assistant resolves an intent with a pure classification step before
// any side-effecting league call, so tool dispatch is never ad hoc.
type Intent int

const (
	// IntentNone means the question needs no live league data.
	IntentNone Intent = iota

	// IntentRoster means the question is about the user's own roster or lineup.
	IntentRoster

	// IntentWaiver means the question is about available/waiver-wire players.
	IntentWaiver

	// IntentStandings means the question is about league standings or the
	// current week.
	IntentStandings
)

// String returns the intent name for logging.
func (i Intent) String() string {
	switch i {
	case IntentRoster:
		return "roster"
	case IntentWaiver:
		return "waiver"
	case IntentStandings:
		return "standings"
	default:
		return "none"
	}
}
