package figure

import (
	"fmt"
	"math"

	"github.com/jpalmerr/pwsboard/internal/dataset"
)

const (
	mapColorScale   = "Viridis"
	mapLocationMode = "USA-states"
	mapScope        = "usa"
	populationLabel = "Population"

	lowerPercentile = 0.01
	upperPercentile = 0.99
)

// MapTitle returns the choropleth title for a year.
func MapTitle(year int) string {
	return fmt.Sprintf("US State Populations on PWS in %d", year)
}

// Choropleth renders the population map for a single year.
//
// States are keyed by their two-letter code. The color range is clipped to
// the 1st and 99th percentile of that year's populations so a few very large
// states do not wash out the rest of the map. A year with no data yields a
// trace with no locations and null bounds.
func Choropleth(ds *dataset.Dataset, year int) Figure {
	records := ds.ByYear(year)

	locations := make([]string, len(records))
	z := make([]Value, len(records))
	text := make([]string, len(records))
	for i, r := range records {
		locations[i] = r.Code
		z[i] = Value(r.Population)
		text[i] = hoverText(r.State, r.Population)
	}

	zmin, zmax := Bounds(dataset.Populations(records))

	return Figure{
		Data: []Trace{{
			Type:          "choropleth",
			Locations:     locations,
			Z:             z,
			Text:          text,
			HoverTemplate: "%{text}<extra>%{location}</extra>",
			LocationMode:  mapLocationMode,
			ColorScale:    mapColorScale,
			ColorBar:      &ColorBar{Title: Title{Text: populationLabel}},
			ZMin:          valuePtr(zmin),
			ZMax:          valuePtr(zmax),
		}},
		Layout: Layout{
			Title: Title{Text: MapTitle(year)},
			Geo:   &Geo{Scope: mapScope},
		},
	}
}

// Bounds returns the clipped color range for a set of populations.
// Both bounds are NaN when values holds no numbers; otherwise zmin <= zmax.
func Bounds(values []float64) (zmin, zmax float64) {
	zmin = dataset.Percentile(values, lowerPercentile)
	zmax = dataset.Percentile(values, upperPercentile)
	if !math.IsNaN(zmin) && zmin > zmax {
		zmin, zmax = zmax, zmin
	}
	return zmin, zmax
}
