package dataset

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

// Record is one long-format row: a state's population for a single year.
// Population is NaN when the source cell was empty.
type Record struct {
	State      string
	Code       string
	Year       int
	Population float64
}

// HasPopulation reports whether the record carries a value.
func (r Record) HasPopulation() bool {
	return !math.IsNaN(r.Population)
}

// Dataset is the immutable long-format table served by the dashboard.
//
// All accessors return copies; a Dataset must not be modified after [New].
type Dataset struct {
	id      uuid.UUID
	records []Record
	years   []int
	states  []string
}

// Melt pivots the year columns of a wide table into long records.
//
// Records are emitted year by year, and within a year in source row order.
// The result always has len(w.Rows) * len(w.Years) entries.
func Melt(w *Wide) []Record {
	records := make([]Record, 0, len(w.Rows)*len(w.Years))
	for i, year := range w.Years {
		for _, row := range w.Rows {
			records = append(records, Record{
				State:      row.State,
				Code:       row.Code,
				Year:       year,
				Population: row.Values[i],
			})
		}
	}
	return records
}

// New melts a wide table into a [Dataset] and assigns it a fresh ID.
func New(w *Wide) *Dataset {
	records := Melt(w)

	years := make([]int, len(w.Years))
	copy(years, w.Years)
	sort.Ints(years)
	years = compactInts(years)

	seen := make(map[string]struct{}, len(w.Rows))
	states := make([]string, 0, len(w.Rows))
	for _, row := range w.Rows {
		if _, ok := seen[row.State]; ok {
			continue
		}
		seen[row.State] = struct{}{}
		states = append(states, row.State)
	}
	sort.Strings(states)

	return &Dataset{
		id:      uuid.New(),
		records: records,
		years:   years,
		states:  states,
	}
}

// ID identifies this load of the dataset.
func (d *Dataset) ID() string {
	return d.id.String()
}

// Len returns the number of long-format records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Records returns a copy of all long-format records.
func (d *Dataset) Records() []Record {
	cp := make([]Record, len(d.records))
	copy(cp, d.records)
	return cp
}

// Years returns the distinct years in ascending order.
func (d *Dataset) Years() []int {
	cp := make([]int, len(d.years))
	copy(cp, d.years)
	return cp
}

// States returns the distinct state names in ascending order.
func (d *Dataset) States() []string {
	cp := make([]string, len(d.states))
	copy(cp, d.states)
	return cp
}

// HasYear reports whether year is one of the dataset's years.
func (d *Dataset) HasYear(year int) bool {
	i := sort.SearchInts(d.years, year)
	return i < len(d.years) && d.years[i] == year
}

// DefaultYear returns the earliest year, or 0 for an empty dataset.
func (d *Dataset) DefaultYear() int {
	if len(d.years) == 0 {
		return 0
	}
	return d.years[0]
}

// DefaultStates returns the alphabetically first state as a one-element
// selection, or an empty selection for an empty dataset.
func (d *Dataset) DefaultStates() []string {
	if len(d.states) == 0 {
		return []string{}
	}
	return []string{d.states[0]}
}

// ByYear returns the records for a single year in source row order.
func (d *Dataset) ByYear(year int) []Record {
	var out []Record
	for _, r := range d.records {
		if r.Year == year {
			out = append(out, r)
		}
	}
	return out
}

// ByState returns the records for a single state in ascending year order.
func (d *Dataset) ByState(state string) []Record {
	var out []Record
	for _, r := range d.records {
		if r.State == state {
			out = append(out, r)
		}
	}
	return out
}

func compactInts(s []int) []int {
	if len(s) < 2 {
		return s
	}
	out := s[:1]
	for _, v := range s[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
