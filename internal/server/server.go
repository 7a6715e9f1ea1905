package server

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jpalmerr/pwsboard/internal/dataset"
)

const (
	// shutdownTimeout bounds how long in-flight requests may run after the
	// server context is cancelled.
	shutdownTimeout = 5 * time.Second

	// defaultTitle is used when no custom title is configured.
	defaultTitle = "State Populations on Public Water Systems (2016-2023)"
)

// Server serves the dashboard page, figure API and exports for one dataset.
type Server struct {
	data       *dataset.Dataset
	port       int
	httpServer *http.Server
	assets     fs.FS
	title      string
	logger     *slog.Logger
	router     chi.Router
}

// NewServer creates a new HTTP [Server].
//
// Parameters:
//   - ds: the loaded dataset; it must not be modified afterwards
//   - port: TCP port to listen on
//   - assets: filesystem containing assets/index.html (may be nil, which
//     disables the page but keeps the API)
//   - title: page title (defaults to the standard dashboard title if empty)
//   - logger: logger for server events
//
// The server is not started until [Server.Start] is called.
func NewServer(ds *dataset.Dataset, port int, assets fs.FS, title string, logger *slog.Logger) *Server {
	if title == "" {
		title = defaultTitle
	}
	s := &Server{
		data:   ds,
		port:   port,
		assets: assets,
		title:  title,
		logger: logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the server's router.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		s.requestLogger,
		middleware.Recoverer,
		middleware.Compress(5),
		s.datasetHeader,
	)

	r.Get("/", s.handleDashboard)
	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/meta", s.handleMeta)
		r.Get("/figures/map", s.handleMapFigure)
		r.Get("/figures/line", s.handleLineFigure)
	})

	r.Route("/sse", func(r chi.Router) {
		r.Get("/map", s.handleMapSSE)
		r.Get("/line", s.handleLineSSE)
	})

	r.Route("/export", func(r chi.Router) {
		r.Get("/data.csv", s.handleExportCSV)
		r.Get("/data.xlsx", s.handleExportXLSX)
		r.Get("/line.png", s.handleExportPNG)
	})

	return r
}

// Start begins serving HTTP requests in a background goroutine.
//
// Start is non-blocking and returns once the listener is bound. The server
// keeps running until ctx is cancelled, then shuts down gracefully.
//
// Returns an error if the server fails to bind to the configured port.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind to port %d: %w", s.port, err)
	}

	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("http server shutdown error", "error", err)
		}
	}()

	return nil
}

// requestLogger logs one record per request at debug level, or warn for 5xx.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		}
		if ww.Status() >= http.StatusInternalServerError {
			s.logger.Warn("request failed", attrs...)
			return
		}
		s.logger.Debug("request served", attrs...)
	})
}

// datasetHeader tags every response with the ID of the dataset it was
// computed from.
func (s *Server) datasetHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Dataset-ID", s.data.ID())
		next.ServeHTTP(w, r)
	})
}
