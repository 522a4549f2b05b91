// Package server exposes the scoring engine and the profile archive over
// HTTP: a JSON API under /api/v1 plus a minimal embedded scoring page.
package server

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"

	"github.com/dsci3d/learning-energy-profile/app"
	apperrors "github.com/dsci3d/learning-energy-profile/internal/errors"
)

//go:embed templates/*
var embeddedFiles embed.FS

// Server is the HTTP application.
type Server struct {
	router    *chi.Mux
	service   *app.Service
	db        *sqlx.DB
	templates *template.Template
}

// Config holds server construction options. DB may be nil; archive routes
// then answer 503.
type Config struct {
	RequestTimeout time.Duration
}

// NewServer creates the HTTP application
func NewServer(service *app.Service, db *sqlx.DB, cfg Config) (*Server, error) {
	templates, err := template.New("").ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		router:    chi.NewRouter(),
		service:   service,
		db:        db,
		templates: templates,
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	s.setupMiddleware(timeout)
	s.setupRoutes()

	return s, nil
}

// Handler returns the root handler for use by http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupMiddleware configures HTTP middleware
func (s *Server) setupMiddleware(timeout time.Duration) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(timeout))
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleIndex)
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/profiles/{id}/report", s.handleProfileReport)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/profiles", s.handleCreateProfile)
		r.Get("/profiles", s.handleListProfiles)
		r.Get("/profiles/{id}", s.handleGetProfile)
		r.Delete("/profiles/{id}", s.handleDeleteProfile)
		r.Post("/score", s.handleScore)
		r.Get("/instrument", s.handleInstrument)
	})
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("response encoding error: %v", err)
	}
}

// writeError maps an error to an HTTP status. AppError messages are safe to
// return; anything else stays a generic 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
		s.writeJSON(w, http.StatusInternalServerError, errorBody{
			Error: errorDetail{Code: apperrors.CodeInternal, Message: "internal error"},
		})
		return
	}

	status := statusForCode(appErr.Code)
	if status >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	}
	s.writeJSON(w, status, errorBody{
		Error: errorDetail{Code: appErr.Code, Message: appErr.Message},
	})
}

func statusForCode(code string) int {
	switch code {
	case apperrors.CodeInvalidInput:
		return http.StatusBadRequest
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	case apperrors.CodeConfigInvalid:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// renderTemplate writes an HTML page, falling back to a plain 500.
func (s *Server) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, templateName, data); err != nil {
		log.Printf("template error: %v", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}
