// Package ingest maps uploaded tabular data onto the transaction
// schema. It owns parsing and column discovery; row-level validation
// and skip accounting live in the aggregation engine.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"bankstmt/internal/aggregate"
)

// Required columns. Description and balance are optional.
var requiredColumns = []string{"date", "type", "amount"}

// ReadRows parses a CSV document with a header row into aggregation
// rows. Missing required columns are a schema error; ragged or short
// data lines become rows that will fail validation downstream instead
// of aborting the read.
func ReadRows(r io.Reader) ([]aggregate.Row, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty document", aggregate.ErrSchema)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", aggregate.ErrSchema, name)
		}
	}

	var rows []aggregate.Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Keep going: a single broken line is a row-level problem,
			// not a document-level one.
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				rows = append(rows, aggregate.Row{})
				continue
			}
			return nil, fmt.Errorf("read record: %w", err)
		}
		rows = append(rows, aggregate.Row{
			Date:        field(record, cols, "date"),
			Description: field(record, cols, "description"),
			Type:        field(record, cols, "type"),
			Amount:      field(record, cols, "amount"),
			Balance:     field(record, cols, "balance"),
		})
	}
	return rows, nil
}

// Aggregate reads a CSV document and aggregates it in one step.
func Aggregate(r io.Reader) (aggregate.Report, error) {
	rows, err := ReadRows(r)
	if err != nil {
		return aggregate.Report{}, err
	}
	return aggregate.AggregateRows(rows)
}

func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}
