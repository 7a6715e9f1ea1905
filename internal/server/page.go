package server

import (
	"bytes"
	"encoding/json"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/jpalmerr/pwsboard/internal/figure"
)

const indexPath = "assets/index.html"

// pageData is the view model of assets/index.html.
type pageData struct {
	Title         string
	Years         []int
	States        []string
	DefaultYear   int
	DefaultStates map[string]bool
	Signals       string
	MapFigure     template.JS
	LineFigure    template.JS
	DatasetID     string
	MapElementID  string
	LineElementID string
}

// handleDashboard renders the page with both dropdowns populated and the
// default figures inlined, so the first paint needs no extra round trip.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if s.assets == nil {
		http.Error(w, "Dashboard not found", http.StatusInternalServerError)
		return
	}

	content, err := fs.ReadFile(s.assets, indexPath)
	if err != nil {
		http.Error(w, "Dashboard not found", http.StatusInternalServerError)
		return
	}

	tmpl, err := template.New("index").Parse(string(content))
	if err != nil {
		s.logger.Error("failed to parse dashboard template", "error", err)
		http.Error(w, "Dashboard unavailable", http.StatusInternalServerError)
		return
	}

	data, err := s.pageData()
	if err != nil {
		s.logger.Error("failed to build dashboard data", "error", err)
		http.Error(w, "Dashboard unavailable", http.StatusInternalServerError)
		return
	}

	// render to a buffer so template errors still produce a clean 500
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		s.logger.Error("failed to render dashboard", "error", err)
		http.Error(w, "Dashboard unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Error("failed to write dashboard response", "error", err)
	}
}

func (s *Server) pageData() (pageData, error) {
	defaultYear := s.data.DefaultYear()
	defaultStates := s.data.DefaultStates()

	signals, err := json.Marshal(map[string]any{
		"year":   defaultYear,
		"states": defaultStates,
	})
	if err != nil {
		return pageData{}, err
	}
	mapFig, err := json.Marshal(figure.Choropleth(s.data, defaultYear))
	if err != nil {
		return pageData{}, err
	}
	lineFig, err := json.Marshal(figure.Lines(s.data, defaultStates))
	if err != nil {
		return pageData{}, err
	}

	selected := make(map[string]bool, len(defaultStates))
	for _, st := range defaultStates {
		selected[st] = true
	}

	return pageData{
		Title:         s.title,
		Years:         s.data.Years(),
		States:        s.data.States(),
		DefaultYear:   defaultYear,
		DefaultStates: selected,
		Signals:       string(signals),
		// json.Marshal escapes <, > and &, so the output is safe inside <script>
		MapFigure:     template.JS(mapFig),
		LineFigure:    template.JS(lineFig),
		DatasetID:     s.data.ID(),
		MapElementID:  mapElementID,
		LineElementID: lineElementID,
	}, nil
}
