package ops

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/retailpulse/retailpulse/internal/domain"
	"github.com/retailpulse/retailpulse/internal/store"
)

type healthResponse struct {
	Status       string `json:"status"`
	LatestDate   string `json:"latest_date,omitempty"`
	BreakerState string `json:"breaker_state,omitempty"`
	Timestamp    string `json:"timestamp"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	latest, ok, err := s.store.LatestDate(r.Context())
	if err != nil {
		resp.Status = "degraded"
	} else if ok {
		resp.LatestDate = domain.DayKey(latest)
	}

	if s.breaker != nil {
		resp.BreakerState = s.breaker.State().String()
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

func (s *Server) handleBaseline(w http.ResponseWriter, r *http.Request) {
	b, err := s.store.GetBaseline(r.Context())
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no baseline computed yet"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleLatestFeatures(w http.ResponseWriter, r *http.Request) {
	latest, ok, err := s.store.LatestDate(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "feature store is empty"})
		return
	}
	s.serveFeatures(w, r, latest)
}

func (s *Server) handleFeatures(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["date"]
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "date must be YYYY-MM-DD"})
		return
	}
	s.serveFeatures(w, r, date)
}

func (s *Server) serveFeatures(w http.ResponseWriter, r *http.Request, date time.Time) {
	fs, err := s.store.GetFeatures(r.Context(), date)
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no features for " + domain.DayKey(date)})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, fs)
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
}
