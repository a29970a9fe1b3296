// Package filesystem loads the player stat tables from CSV files on disk.
// It only parses shape (headers and rows); interpreting the cells is the
// normalisers' job.
package filesystem

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gridiron-labs/huddle-cli/internal/core/domain"
	"github.com/gridiron-labs/huddle-cli/internal/logger"
)

// Source ties one CSV file to the document category its rows feed.
type Source struct {
	Category domain.Category
	Path     string
}

// LoadTable reads one CSV file into a raw table. The first row is taken as
// headers; ragged rows are kept as-is and left to the normalisers. A
// missing or unreadable file fails with domain.ErrDataSource.
func LoadTable(path string) (domain.RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("%w: opening %s: %v", domain.ErrDataSource, path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err == io.EOF {
		return domain.RawTable{}, fmt.Errorf("%w: %s is empty", domain.ErrDataSource, path)
	}
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("%w: reading %s: %v", domain.ErrDataSource, path, err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return domain.RawTable{}, fmt.Errorf("%w: reading %s: %v", domain.ErrDataSource, path, err)
		}
		rows = append(rows, row)
	}

	logger.Debug("loaded %s: %d rows, %d columns", path, len(rows), len(headers))

	return domain.RawTable{
		Source:  filepath.Base(path),
		Headers: headers,
		Rows:    rows,
	}, nil
}

// SourceStatus is the result of checking one configured source file.
type SourceStatus struct {
	Source Source
	Rows   int
	Err    error
}

// VerifySources loads each configured source and reports per-file status
// without aborting on the first failure.
func VerifySources(sources []Source) []SourceStatus {
	statuses := make([]SourceStatus, 0, len(sources))
	for _, src := range sources {
		table, err := LoadTable(src.Path)
		statuses = append(statuses, SourceStatus{
			Source: src,
			Rows:   len(table.Rows),
			Err:    err,
		})
	}
	return statuses
}
