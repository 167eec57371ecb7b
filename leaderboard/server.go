package leaderboard

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const maxNameLen = 24

// NewRouter builds the HTTP API:
//
//	POST /api/scores       submit a run
//	GET  /api/leaderboard  top runs, best first
func NewRouter(cfg Config, store *Store) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.AllowedOrigin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	h := &handler{cfg: cfg, store: store}
	r.Route("/api", func(sub chi.Router) {
		sub.Post("/scores", h.submitScore)
		sub.Get("/leaderboard", h.topScores)
	})

	return r
}

type handler struct {
	cfg   Config
	store *Store
}

type submitRequest struct {
	Name    string `json:"name"`
	Score   int    `json:"score"`
	Level   int    `json:"level"`
	Seconds int    `json:"seconds"`
}

func (h *handler) submitScore(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		req.Name = "anonymous"
	}
	if len(req.Name) > maxNameLen {
		req.Name = req.Name[:maxNameLen]
	}
	if req.Score < 0 || req.Level < 0 || req.Seconds < 0 {
		errorJSON(w, http.StatusBadRequest, "negative values not allowed")
		return
	}

	entry, err := h.store.Insert(r.Context(), Entry{
		Name:    req.Name,
		Score:   req.Score,
		Level:   req.Level,
		Seconds: req.Seconds,
	})
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "failed to store score")
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *handler) topScores(w http.ResponseWriter, r *http.Request) {
	limit := h.cfg.TopLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 100 {
			errorJSON(w, http.StatusBadRequest, "limit must be 1..100")
			return
		}
		limit = n
	}

	entries, err := h.store.Top(r.Context(), limit)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "failed to read leaderboard")
		return
	}
	if entries == nil {
		entries = []Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func errorJSON(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
