// Package web provides a local browser UI for running searches and
// browsing history. It implements a driving adapter following hexagonal
// architecture principles.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/seekwell-labs/seekwell-cli/internal/core/domain"
	"github.com/seekwell-labs/seekwell-cli/internal/core/ports/driving"
	"github.com/seekwell-labs/seekwell-cli/internal/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

// historyPanelSize is how many recent searches the sidebar shows.
const historyPanelSize = 10

// Ports aggregates the driving port interfaces used by the web UI.
type Ports struct {
	// Search runs hosted searches.
	Search driving.SearchService

	// History lists recent searches. Optional.
	History driving.HistoryService

	// Settings provides configured defaults. Optional.
	Settings driving.SettingsService
}

// Server serves the local web UI.
type Server struct {
	ports     Ports
	addr      string
	templates *template.Template
	server    *http.Server
}

// indexData is the template payload for the index page.
type indexData struct {
	Query       string
	Mode        string
	ContextSize string
	Store       string
	Country     string
	Region      string
	City        string
	ForceWeb    bool

	Modes   []domain.SearchMode
	Outcome *driving.SearchOutcome
	Err     string
	History []domain.HistoryEntry
}

// NewServer creates the web UI server.
func NewServer(ports Ports, addr string) (*Server, error) {
	if ports.Search == nil {
		return nil, errors.New("web: search service is required")
	}

	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	s := &Server{
		ports:     ports,
		addr:      addr,
		templates: templates,
	}

	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second,
	}

	return s, nil
}

// Handler returns the route table. Exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/search", s.handleSearch)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("web UI listening on %s", ln.Addr())
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	data := s.defaultsData()
	data.History = s.recentHistory(r.Context())
	s.render(w, data)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}

	data := indexData{
		Query:       r.PostFormValue("query"),
		Mode:        r.PostFormValue("mode"),
		ContextSize: r.PostFormValue("context_size"),
		Store:       r.PostFormValue("store"),
		Country:     r.PostFormValue("country"),
		Region:      r.PostFormValue("region"),
		City:        r.PostFormValue("city"),
		ForceWeb:    r.PostFormValue("force_web") == "on",
		Modes:       domain.AllSearchModes(),
	}

	outcome, err := s.ports.Search.Search(r.Context(), driving.SearchParams{
		Query:         data.Query,
		Mode:          data.Mode,
		ContextSize:   data.ContextSize,
		VectorStoreID: data.Store,
		Country:       data.Country,
		Region:        data.Region,
		City:          data.City,
		ForceWeb:      data.ForceWeb,
	})
	if err != nil {
		data.Err = presentError(err)
	} else {
		data.Outcome = outcome
	}

	data.History = s.recentHistory(r.Context())
	s.render(w, data)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"}) //nolint:errcheck
}

// defaultsData seeds the form with configured defaults.
func (s *Server) defaultsData() indexData {
	data := indexData{Modes: domain.AllSearchModes()}

	if s.ports.Settings == nil {
		return data
	}
	settings, err := s.ports.Settings.Get()
	if err != nil {
		logger.Warn("web: loading settings: %v", err)
		return data
	}

	data.Mode = settings.Search.Mode.String()
	data.ContextSize = settings.Search.ContextSize.String()
	data.Store = settings.Search.VectorStoreID
	data.Country = settings.Search.Location.Country
	data.Region = settings.Search.Location.Region
	data.City = settings.Search.Location.City
	data.ForceWeb = settings.Search.ForceWeb
	return data
}

// recentHistory is best-effort; a failing store never breaks the page.
func (s *Server) recentHistory(ctx context.Context) []domain.HistoryEntry {
	if s.ports.History == nil {
		return nil
	}
	entries, err := s.ports.History.List(ctx, historyPanelSize)
	if err != nil {
		logger.Warn("web: listing history: %v", err)
		return nil
	}
	return entries
}

func (s *Server) render(w http.ResponseWriter, data indexData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		logger.Warn("web: rendering template: %v", err)
	}
}

// presentError maps domain errors onto user-facing messages without
// leaking credentials or raw payloads.
func presentError(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return err.Error()
	case errors.Is(err, domain.ErrAuthFailed):
		return "Authentication failed. Check that OPENAI_API_KEY is set and valid."
	case errors.Is(err, domain.ErrTransientCall):
		return "The search service is temporarily unavailable. Try again shortly."
	case errors.Is(err, domain.ErrMalformedResponse):
		return "The search service returned an unreadable response."
	default:
		return err.Error()
	}
}
