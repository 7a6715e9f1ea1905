package dataset

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Percentile returns the p-quantile (0 <= p <= 1) of values, interpolating
// linearly between the two closest ranks at position (n-1)*p.
// NaN values are ignored. The result is NaN when no values remain.
func Percentile(values []float64, p float64) float64 {
	sorted := present(values)
	if len(sorted) == 0 {
		return math.NaN()
	}
	sort.Float64s(sorted)

	p = math.Max(0, math.Min(1, p))
	h := float64(len(sorted)-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

// Populations extracts the population column of records, keeping NaNs.
func Populations(records []Record) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.Population
	}
	return out
}

// YearSummary describes the population distribution of one year.
type YearSummary struct {
	Year    int
	States  int
	Missing int
	Min     float64
	P1      float64
	Mean    float64
	P99     float64
	Max     float64
	Total   float64
}

// Summarize computes a [YearSummary] per year in ascending year order.
func Summarize(d *Dataset) []YearSummary {
	years := d.Years()
	out := make([]YearSummary, 0, len(years))
	for _, year := range years {
		all := Populations(d.ByYear(year))
		vals := present(all)

		s := YearSummary{
			Year:    year,
			States:  len(all),
			Missing: len(all) - len(vals),
			Min:     math.NaN(),
			P1:      Percentile(vals, 0.01),
			Mean:    math.NaN(),
			P99:     Percentile(vals, 0.99),
			Max:     math.NaN(),
		}
		if len(vals) > 0 {
			s.Min = floats.Min(vals)
			s.Max = floats.Max(vals)
			s.Mean = stat.Mean(vals, nil)
			s.Total = floats.Sum(vals)
		}
		out = append(out, s)
	}
	return out
}

// present returns a new slice holding the non-NaN values.
func present(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
