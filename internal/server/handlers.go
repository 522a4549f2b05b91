package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dsci3d/learning-energy-profile/adapters/render"
	"github.com/dsci3d/learning-energy-profile/domain/scoring"
	apperrors "github.com/dsci3d/learning-energy-profile/internal/errors"
	"github.com/dsci3d/learning-energy-profile/models"
)

type scoreRequest struct {
	ID      string         `json:"id"`
	Ratings map[string]any `json:"ratings"`
}

type listResponse struct {
	Profiles []*models.ProfileRecord `json:"profiles"`
	Count    int                     `json:"count"`
	Limit    int                     `json:"limit"`
	Offset   int                     `json:"offset"`
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func decodeScoreRequest(r *http.Request) (*scoreRequest, error) {
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid JSON body: %v", err))
	}
	if len(req.Ratings) == 0 {
		return nil, apperrors.InvalidInput("ratings object is required")
	}
	return &req, nil
}

func parseProfileID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.InvalidInput(fmt.Sprintf("invalid profile id %q", raw))
	}
	return id, nil
}

// handleScore computes a profile without touching the archive.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	req, err := decodeScoreRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	profile, err := s.service.Score(req.Ratings, scoring.Options{
		ID:        req.ID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, profile)
}

// handleCreateProfile scores and archives in one step.
func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	req, err := decodeScoreRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	profile, err := s.service.Score(req.Ratings, scoring.Options{
		ID:        req.ID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	record, err := s.service.ArchiveProfile(r.Context(), profile)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, record)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	id, err := parseProfileID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	record, err := s.service.GetProfile(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	records, err := s.service.ListProfiles(r.Context(), limit, offset)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if records == nil {
		records = []*models.ProfileRecord{}
	}
	s.writeJSON(w, http.StatusOK, listResponse{
		Profiles: records,
		Count:    len(records),
		Limit:    limit,
		Offset:   offset,
	})
}

func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	id, err := parseProfileID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.service.DeleteProfile(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleInstrument(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.service.Instrument())
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	health := healthResponse{Status: "ok", Database: "unconfigured"}
	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			log.Printf("healthz: database ping failed: %v", err)
			health.Status = "degraded"
			health.Database = "unreachable"
			s.writeJSON(w, http.StatusServiceUnavailable, health)
			return
		}
		health.Database = "ok"
	}
	s.writeJSON(w, http.StatusOK, health)
}

// handleIndex serves the embedded scoring page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderTemplate(w, "index.html", s.service.Instrument())
}

// handleProfileReport renders an archived profile as a standalone HTML
// report.
func (s *Server) handleProfileReport(w http.ResponseWriter, r *http.Request) {
	id, err := parseProfileID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	record, err := s.service.GetProfile(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	profile, err := record.Profile()
	if err != nil {
		s.writeError(w, r, apperrors.Wrap(err, "failed to decode archived profile"))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.WriteHTML(w, profile); err != nil {
		// Headers are gone; all we can do is log.
		log.Printf("report rendering error: %v", err)
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	if value := r.URL.Query().Get(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
