package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentile(t *testing.T) {
	values := []float64{10, 1, 4, 7, 2}

	tests := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{1, 10},
		{0.5, 4},
		{0.25, 2},
		{0.01, 1.04},
		{0.99, 9.88},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Percentile(values, tt.p), 1e-9, "p=%v", tt.p)
	}
}

func TestPercentile_IgnoresNaN(t *testing.T) {
	got := Percentile([]float64{math.NaN(), 3, math.NaN(), 1}, 0.5)
	assert.InDelta(t, 2, got, 1e-9)
}

func TestPercentile_Empty(t *testing.T) {
	assert.True(t, math.IsNaN(Percentile(nil, 0.5)))
	assert.True(t, math.IsNaN(Percentile([]float64{math.NaN()}, 0.5)))
}

func TestPercentile_SingleValue(t *testing.T) {
	assert.Equal(t, 5.0, Percentile([]float64{5}, 0.01))
	assert.Equal(t, 5.0, Percentile([]float64{5}, 0.99))
}

func TestPercentile_DoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Percentile(values, 0.5)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestSummarize(t *testing.T) {
	ds := mustParse(t, `State,Two Letter State,2016,2017
Ohio,OH,10,
Iowa,IA,30,5
`)

	summaries := Summarize(ds)
	require.Len(t, summaries, 2)

	s := summaries[0]
	assert.Equal(t, 2016, s.Year)
	assert.Equal(t, 2, s.States)
	assert.Equal(t, 0, s.Missing)
	assert.Equal(t, 10.0, s.Min)
	assert.Equal(t, 30.0, s.Max)
	assert.Equal(t, 20.0, s.Mean)
	assert.Equal(t, 40.0, s.Total)
	assert.LessOrEqual(t, s.P1, s.P99)

	s = summaries[1]
	assert.Equal(t, 1, s.Missing)
	assert.Equal(t, 5.0, s.Min)
	assert.Equal(t, 5.0, s.Total)
}
