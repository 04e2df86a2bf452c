package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	customerrors "channel-allocator/errors"
	"channel-allocator/metrics"
)

// Parse reads per-cell traffic demand from CSV data.
// Lines starting with '#' are headers/comments.
// A record is either "cell, demand" with a one-based cell number, or a bare
// "demand", in which case it applies to the cell after the previous record.
// Cells may appear in any order but every cell from 1 to the highest number
// seen must be given exactly once.
func Parse(r io.Reader) ([]int, error) {
	demand, err := parse(r)
	if err != nil {
		metrics.ParserErrorsTotal.WithLabelValues(errorType(err)).Inc()
		return nil, err
	}
	metrics.ParserRecordsTotal.Add(float64(len(demand)))
	return demand, nil
}

func parse(r io.Reader) ([]int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	byCell := make(map[int]int)
	maxCell := 0
	nextCell := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		lineNum, _ := reader.FieldPos(0)

		// Handle headers/comments
		if len(record) > 0 && strings.HasPrefix(strings.TrimSpace(record[0]), "#") {
			continue
		}

		cell := nextCell
		var demandField string
		switch len(record) {
		case 1:
			demandField = record[0]
		case 2:
			cell, err = strconv.Atoi(strings.TrimSpace(record[0]))
			if err != nil || cell < 1 {
				return nil, &customerrors.ParseError{
					Line:   lineNum,
					Record: record,
					Err:    fmt.Errorf("%w: %q", customerrors.ErrInvalidCell, record[0]),
				}
			}
			demandField = record[1]
		default:
			return nil, &customerrors.ParseError{
				Line:   lineNum,
				Record: record,
				Err:    customerrors.ErrInvalidFieldCount,
			}
		}

		if strings.TrimSpace(demandField) == "" {
			return nil, &customerrors.ParseError{
				Line:   lineNum,
				Record: record,
				Err:    customerrors.ErrEmptyRecord,
			}
		}

		d, err := strconv.Atoi(strings.TrimSpace(demandField))
		if err != nil {
			return nil, &customerrors.ParseError{
				Line:   lineNum,
				Record: record,
				Err:    fmt.Errorf("%w: %v", customerrors.ErrInvalidDemand, err),
			}
		}
		if d < 0 {
			return nil, &customerrors.ParseError{
				Line:   lineNum,
				Record: record,
				Err:    fmt.Errorf("%w: %d", customerrors.ErrNegativeDemand, d),
			}
		}

		if _, exists := byCell[cell]; exists {
			return nil, &customerrors.ParseError{
				Line:   lineNum,
				Record: record,
				Err:    fmt.Errorf("%w: %d", customerrors.ErrDuplicateCell, cell),
			}
		}
		byCell[cell] = d
		maxCell = max(maxCell, cell)
		nextCell = cell + 1
	}

	if len(byCell) != maxCell {
		return nil, fmt.Errorf("%w: %d cells given, highest cell is %d", customerrors.ErrInvalidCell, len(byCell), maxCell)
	}

	demand := make([]int, maxCell)
	for cell, d := range byCell {
		demand[cell-1] = d
	}
	return demand, nil
}

// errorType maps a parse failure to a metric label.
func errorType(err error) string {
	switch {
	case errors.Is(err, customerrors.ErrInvalidFieldCount):
		return "invalid_field_count"
	case errors.Is(err, customerrors.ErrInvalidCell):
		return "invalid_cell"
	case errors.Is(err, customerrors.ErrDuplicateCell):
		return "duplicate_cell"
	case errors.Is(err, customerrors.ErrNegativeDemand):
		return "negative_demand"
	case errors.Is(err, customerrors.ErrInvalidDemand):
		return "invalid_demand"
	case errors.Is(err, customerrors.ErrEmptyRecord):
		return "empty_record"
	default:
		return "read_error"
	}
}
