package server

import (
	"bytes"
	"net/http"
	"strconv"

	"gonum.org/v1/plot/vg"

	"github.com/jpalmerr/pwsboard/internal/export"
)

const (
	maxImageInches     = 20
	exportFilePrefix   = "pws-population"
	contentTypeXLSX    = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentDisposition = "attachment; filename="
)

// handleExportCSV downloads the long-format table as CSV.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, s.data); err != nil {
		s.exportFailed(w, "csv", err)
		return
	}
	s.writeFile(w, "text/csv; charset=utf-8", exportFilePrefix+".csv", buf.Bytes())
}

// handleExportXLSX downloads the long-format table as an Excel workbook.
func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, s.data); err != nil {
		s.exportFailed(w, "xlsx", err)
		return
	}
	s.writeFile(w, contentTypeXLSX, exportFilePrefix+".xlsx", buf.Bytes())
}

// handleExportPNG renders the line chart for ?state= values as a PNG.
// Optional ?w= and ?h= set the size in inches.
func (s *Server) handleExportPNG(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	width, err := inchesParam(q.Get("w"), export.DefaultWidth)
	if err != nil {
		http.Error(w, "invalid width", http.StatusBadRequest)
		return
	}
	height, err := inchesParam(q.Get("h"), export.DefaultHeight)
	if err != nil {
		http.Error(w, "invalid height", http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := export.LinePNG(&buf, s.data, statesParam(q), width, height); err != nil {
		s.exportFailed(w, "png", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Error("failed to write export", "format", "png", "error", err)
	}
}

func (s *Server) writeFile(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", contentDisposition+strconv.Quote(filename))
	if _, err := w.Write(body); err != nil {
		s.logger.Error("failed to write export", "file", filename, "error", err)
	}
}

func (s *Server) exportFailed(w http.ResponseWriter, format string, err error) {
	s.logger.Error("export failed", "format", format, "error", err)
	http.Error(w, "Export failed", http.StatusInternalServerError)
}

// inchesParam parses a positive size in inches, capped at maxImageInches.
func inchesParam(raw string, def vg.Length) (vg.Length, error) {
	if raw == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f <= 0 || f > maxImageInches {
		return 0, strconv.ErrRange
	}
	return vg.Length(f) * vg.Inch, nil
}
