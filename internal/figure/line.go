package figure

import (
	"github.com/jpalmerr/pwsboard/internal/dataset"
)

// LineTitle is the title of the population-over-time chart.
const LineTitle = "PWS Population Changes Over Time"

// Lines renders one lines+markers series per selected state, in selection
// order. A state with no records still gets an (empty) series; an empty
// selection yields a figure with axes only.
func Lines(ds *dataset.Dataset, states []string) Figure {
	traces := make([]Trace, 0, len(states))
	for _, state := range states {
		records := ds.ByState(state)

		x := make([]int, len(records))
		y := make([]Value, len(records))
		text := make([]string, len(records))
		for i, r := range records {
			x[i] = r.Year
			y[i] = Value(r.Population)
			text[i] = hoverText(r.State, r.Population)
		}

		traces = append(traces, Trace{
			Type: "scatter",
			Mode: "lines+markers",
			Name: state,
			X:    x,
			Y:    y,
			Text: text,
		})
	}

	return Figure{
		Data: traces,
		Layout: Layout{
			Title:     Title{Text: LineTitle},
			XAxis:     &Axis{Title: Title{Text: "Year"}},
			YAxis:     &Axis{Title: Title{Text: populationLabel}},
			HoverMode: "closest",
		},
	}
}
