package server

import (
	"encoding/json"
	"net/http"

	"github.com/jpalmerr/pwsboard/internal/figure"
)

// Meta describes the loaded dataset and the dashboard's control defaults.
type Meta struct {
	DatasetID     string   `json:"dataset_id"`
	Records       int      `json:"records"`
	Years         []int    `json:"years"`
	States        []string `json:"states"`
	DefaultYear   int      `json:"default_year"`
	DefaultStates []string `json:"default_states"`
}

func (s *Server) meta() Meta {
	return Meta{
		DatasetID:     s.data.ID(),
		Records:       s.data.Len(),
		Years:         s.data.Years(),
		States:        s.data.States(),
		DefaultYear:   s.data.DefaultYear(),
		DefaultStates: s.data.DefaultStates(),
	}
}

// handleHealth reports readiness; the dataset is loaded before the listener
// opens, so a response means the server is ready.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]any{
		"status":     "ok",
		"dataset_id": s.data.ID(),
	})
}

// handleMeta returns the dropdown options and defaults.
func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.meta())
}

// handleMapFigure returns the choropleth for ?year= (default: earliest year).
func (s *Server) handleMapFigure(w http.ResponseWriter, r *http.Request) {
	year, err := yearParam(r.URL.Query(), s.data.DefaultYear())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.writeJSON(w, figure.Choropleth(s.data, year))
}

// handleLineFigure returns the line chart for the repeated ?state= values.
func (s *Server) handleLineFigure(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, figure.Lines(s.data, statesParam(r.URL.Query())))
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}
