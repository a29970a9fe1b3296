package filesystem

import (
	"context"
	"fmt"

	"github.com/gridiron-labs/huddle-cli/internal/core/domain"
	"github.com/gridiron-labs/huddle-cli/internal/core/ports/driven"
)

// Provider serves the configured CSV sources as raw tables.
type Provider struct {
	sources []Source
}

var _ driven.TableProvider = (*Provider)(nil)

// NewProvider creates a provider over the given sources. Paths are not
// checked here; Tables and VerifySources do that.
func NewProvider(sources []Source) *Provider {
	return &Provider{sources: sources}
}

// Sources returns the configured sources in order.
func (p *Provider) Sources() []Source {
	out := make([]Source, len(p.sources))
	copy(out, p.sources)
	return out
}

// Tables loads every configured source. Any failure aborts the load.
func (p *Provider) Tables(ctx context.Context) (map[domain.Category]domain.RawTable, error) {
	if len(p.sources) == 0 {
		return nil, fmt.Errorf("%w: no source tables configured", domain.ErrDataSource)
	}

	tables := make(map[domain.Category]domain.RawTable, len(p.sources))
	for _, src := range p.sources {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrDataSource, err)
		}
		table, err := LoadTable(src.Path)
		if err != nil {
			return nil, err
		}
		tables[src.Category] = table
	}
	return tables, nil
}
