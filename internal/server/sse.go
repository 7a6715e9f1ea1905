package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/jpalmerr/pwsboard/internal/figure"
)

// Element IDs of the two chart panels on the dashboard page.
const (
	mapElementID  = "choropleth-map"
	lineElementID = "line-chart"
)

// handleMapSSE re-renders the map after the year dropdown changes.
func (s *Server) handleMapSSE(w http.ResponseWriter, r *http.Request) {
	// read signals before creating the SSE stream
	var signals MapSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.ConsoleError(fmt.Errorf("failed to read signals: %w", err))
		return
	}

	year := s.data.DefaultYear()
	if signals.Year != nil {
		year = int(*signals.Year)
	}

	sse := datastar.NewSSE(w, r)
	if err := sse.ExecuteScript(renderScript(mapElementID, figure.Choropleth(s.data, year))); err != nil {
		s.logger.Debug("map update not delivered", "error", err)
	}
}

// handleLineSSE re-renders the line chart after the state dropdown changes.
func (s *Server) handleLineSSE(w http.ResponseWriter, r *http.Request) {
	var signals LineSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.ConsoleError(fmt.Errorf("failed to read signals: %w", err))
		return
	}

	sse := datastar.NewSSE(w, r)
	if err := sse.ExecuteScript(renderScript(lineElementID, figure.Lines(s.data, signals.States))); err != nil {
		s.logger.Debug("line update not delivered", "error", err)
	}
}

// renderScript returns the client call that draws fig into the element.
// renderFigure is defined by the dashboard page.
func renderScript(elementID string, fig figure.Figure) string {
	// figure JSON cannot fail to encode: NaNs are emitted as null
	data, _ := json.Marshal(fig)
	id, _ := json.Marshal(elementID)
	return fmt.Sprintf("renderFigure(%s, %s)", id, data)
}
