package driven

import (
	"context"

	"github.com/gridiron-labs/huddle-cli/internal/core/domain"
)

// TableProvider fetches the raw stat tables, keyed by the document category
// their rows feed. A provider returns every category it is configured for;
// a missing or unreadable source fails the whole load with
// domain.ErrDataSource rather than silently narrowing the index.
type TableProvider interface {
	// Tables loads all configured tables.
	Tables(ctx context.Context) (map[domain.Category]domain.RawTable, error)
}
