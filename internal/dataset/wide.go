package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

const (
	// StateColumn is the header of the state name column.
	StateColumn = "State"

	// CodeColumn is the header of the two-letter postal code column.
	CodeColumn = "Two Letter State"
)

var (
	// ErrMissingColumn is returned when an identifying column is absent.
	ErrMissingColumn = errors.New("missing required column")

	// ErrInvalidYear is returned when a value column header is not a year.
	ErrInvalidYear = errors.New("column is not a year")

	// ErrEmpty is returned when the source has no header row.
	ErrEmpty = errors.New("empty dataset")
)

// Wide is the source table as read: one row per state, one value per year column.
type Wide struct {
	// Years holds the year columns in ascending order.
	Years []int

	// Rows holds one entry per source row, in source order.
	Rows []WideRow
}

// WideRow is a single state's row. Values is indexed like [Wide.Years];
// missing cells are NaN.
type WideRow struct {
	State  string
	Code   string
	Values []float64
}

// ParseWide reads a wide-format CSV.
//
// The header must contain [StateColumn] and [CodeColumn]. Every other column
// must be labelled with an integer year. Cells are coerced to numbers after
// trimming whitespace and thousands separators; empty cells become NaN.
func ParseWide(r io.Reader) (*Wide, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	stateIdx, codeIdx := -1, -1
	type yearCol struct {
		year int
		idx  int
	}
	var yearCols []yearCol

	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		switch h {
		case StateColumn:
			stateIdx = i
		case CodeColumn:
			codeIdx = i
		default:
			year, err := parseYear(h)
			if err != nil {
				return nil, fmt.Errorf("column %d (%q): %w", i, h, ErrInvalidYear)
			}
			yearCols = append(yearCols, yearCol{year: year, idx: i})
		}
	}

	if stateIdx == -1 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, StateColumn)
	}
	if codeIdx == -1 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, CodeColumn)
	}

	sort.SliceStable(yearCols, func(i, j int) bool {
		return yearCols[i].year < yearCols[j].year
	})

	wide := &Wide{Years: make([]int, len(yearCols))}
	for i, yc := range yearCols {
		wide.Years[i] = yc.year
	}

	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		wr := WideRow{
			State:  strings.TrimSpace(row[stateIdx]),
			Code:   strings.TrimSpace(row[codeIdx]),
			Values: make([]float64, len(yearCols)),
		}
		for i, yc := range yearCols {
			v, err := parseValue(row[yc.idx])
			if err != nil {
				return nil, fmt.Errorf("line %d, year %d: %w", line, yc.year, err)
			}
			wr.Values[i] = v
		}
		wide.Rows = append(wide.Rows, wr)
	}

	return wide, nil
}

// parseYear accepts integer labels and float labels with no fraction ("2016.0").
func parseYear(s string) (int, error) {
	if y, err := strconv.Atoi(s); err == nil {
		return y, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, ErrInvalidYear
	}
	return int(f), nil
}

// parseValue coerces a population cell to a number.
func parseValue(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" || strings.EqualFold(s, "nan") || strings.EqualFold(s, "na") {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid population %q", s)
	}
	return v, nil
}
