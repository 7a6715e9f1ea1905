package export

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/jpalmerr/pwsboard/internal/dataset"
	"github.com/jpalmerr/pwsboard/internal/figure"
)

// Default PNG dimensions.
const (
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 5 * vg.Inch
)

// LinePNG renders the population-over-time chart for states as a PNG.
//
// It mirrors [figure.Lines]: one line with point markers per state in
// selection order. Missing populations are skipped; states without any
// values are left out of the legend.
func LinePNG(w io.Writer, ds *dataset.Dataset, states []string, width, height vg.Length) error {
	p := plot.New()
	p.Title.Text = figure.LineTitle
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Population"
	p.Add(plotter.NewGrid())

	var lines []any
	for _, state := range states {
		var xys plotter.XYs
		for _, r := range ds.ByState(state) {
			if !r.HasPopulation() {
				continue
			}
			xys = append(xys, plotter.XY{X: float64(r.Year), Y: r.Population})
		}
		if len(xys) == 0 {
			continue
		}
		lines = append(lines, state, xys)
	}

	if len(lines) > 0 {
		if err := plotutil.AddLinePoints(p, lines...); err != nil {
			return fmt.Errorf("failed to add series: %w", err)
		}
	}

	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	return nil
}
