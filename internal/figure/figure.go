// Package figure builds the chart descriptions rendered by the dashboard.
//
// Figures are plain data in the JSON shape Plotly accepts for
// Plotly.react(element, data, layout). Builders are pure functions of their
// inputs and a read-only [dataset.Dataset].
package figure

import (
	"encoding/json"
	"math"
	"strconv"
)

// Figure is a chart: a list of traces plus layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is a single plotted series. Only the fields used by the dashboard
// are modelled; zero values are omitted from JSON.
type Trace struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
	Mode string `json:"mode,omitempty"`

	// scatter
	X []int   `json:"x,omitempty"`
	Y []Value `json:"y,omitempty"`

	// choropleth
	Locations    []string  `json:"locations,omitempty"`
	Z            []Value   `json:"z,omitempty"`
	LocationMode string    `json:"locationmode,omitempty"`
	ColorScale   string    `json:"colorscale,omitempty"`
	ColorBar     *ColorBar `json:"colorbar,omitempty"`
	ZMin         *Value    `json:"zmin,omitempty"`
	ZMax         *Value    `json:"zmax,omitempty"`

	Text          []string `json:"text,omitempty"`
	HoverTemplate string   `json:"hovertemplate,omitempty"`
}

// ColorBar configures a choropleth's color legend.
type ColorBar struct {
	Title Title `json:"title"`
}

// Title is a text title as Plotly expects it.
type Title struct {
	Text string `json:"text"`
}

// Axis is a cartesian axis.
type Axis struct {
	Title Title `json:"title"`
}

// Geo scopes a map.
type Geo struct {
	Scope string `json:"scope"`
}

// Layout holds figure-level settings.
type Layout struct {
	Title     Title  `json:"title"`
	Geo       *Geo   `json:"geo,omitempty"`
	XAxis     *Axis  `json:"xaxis,omitempty"`
	YAxis     *Axis  `json:"yaxis,omitempty"`
	HoverMode string `json:"hovermode,omitempty"`
}

// Value is a number that encodes NaN and infinities as JSON null.
type Value float64

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'f', -1, 64), nil
}

// UnmarshalJSON implements json.Unmarshaler; null decodes to NaN.
func (v *Value) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*v = Value(math.NaN())
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*v = Value(f)
	return nil
}

// IsNull reports whether v marshals as null.
func (v Value) IsNull() bool {
	return math.IsNaN(float64(v)) || math.IsInf(float64(v), 0)
}

func valuePtr(f float64) *Value {
	v := Value(f)
	return &v
}
