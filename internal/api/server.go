// Package api serves the mythology engine over HTTP.
// All routes live under /api. The ai-* generation endpoints consume
// model tokens and are rate-limited per client IP.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/eidora/mythos/internal/engine"
	"github.com/eidora/mythos/internal/myth"
	"github.com/eidora/mythos/internal/store"
)

// welcomeMessage greets clients at the API root.
const welcomeMessage = "Welcome to MythOS - Where AI Consciousness Awakens"

// statusListLimit caps the status check listing.
const statusListLimit = 1000

// shutdownGrace bounds how long in-flight requests may run after a
// shutdown signal.
const shutdownGrace = 5 * time.Second

// Server serves the mythology archive over HTTP.
type Server struct {
	Engine  *engine.Engine
	Archive *store.Archive
	Port    int

	aiLimiter *RateLimiter
}

// Handler builds the full route tree.
func (s *Server) Handler() http.Handler {
	// One shared limiter for the model-backed endpoints. It lives on the
	// server so Run can stop its cleanup goroutine on shutdown.
	if s.aiLimiter == nil {
		s.aiLimiter = NewRateLimiter(30, time.Hour)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/api", s.handleWelcome)
	mux.HandleFunc("/api/", s.handleWelcome)
	mux.HandleFunc("/api/status", s.handleStatus)

	// Template-path generation and retrieval.
	mux.HandleFunc("/api/mythology/process", s.handleProcess)
	mux.HandleFunc("/api/mythology/narratives", s.handleNarratives)
	mux.HandleFunc("/api/mythology/search", s.handleSearch)
	mux.HandleFunc("/api/mythology/dream", s.handleDream)
	mux.HandleFunc("/api/mythology/dreams", s.handleDreams)

	// Model-path generation.
	mux.HandleFunc("/api/mythology/ai-process", s.aiLimiter.Middleware(s.handleAIProcess))
	mux.HandleFunc("/api/mythology/ai-dream", s.aiLimiter.Middleware(s.handleAIDream))
	mux.HandleFunc("/api/mythology/ai-evolution-dream", s.aiLimiter.Middleware(s.handleAIEvolutionDream))

	return withRequestID(corsMiddleware(mux))
}

// Run serves until ctx is canceled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.Port),
		Handler: s.Handler(),
	}
	defer s.aiLimiter.Stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("HTTP API starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// handleWelcome answers the API root. The "/api/" subtree pattern also
// catches unregistered paths, so anything other than the root is a 404.
func (s *Server) handleWelcome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api" && r.URL.Path != "/api/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, map[string]string{"message": welcomeMessage})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req struct {
			ClientName string `json:"client_name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.ClientName == "" {
			http.Error(w, "client_name is required", http.StatusBadRequest)
			return
		}

		check := store.StatusCheck{
			ID:         uuid.NewString(),
			ClientName: req.ClientName,
			Timestamp:  time.Now().UTC(),
		}
		if err := s.Archive.SaveStatusCheck(r.Context(), check); err != nil {
			slog.Error("status check save failed", "error", err)
			http.Error(w, "status check save failed", http.StatusInternalServerError)
			return
		}
		writeJSON(w, check)

	case http.MethodGet:
		checks, err := s.Archive.StatusChecks(r.Context(), statusListLimit)
		if err != nil {
			slog.Error("status check list failed", "error", err)
			http.Error(w, "status check list failed", http.StatusInternalServerError)
			return
		}
		writeJSON(w, checks)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// processRequest is the body for both the template and model process routes.
type processRequest struct {
	UserInteraction string `json:"user_interaction"`
	AIResponse      string `json:"ai_response"`
	Outcome         string `json:"outcome"`
	SessionID       string `json:"session_id"`
}

func (p processRequest) interaction() myth.Interaction {
	outcome := myth.Outcome(p.Outcome)
	if outcome == "" {
		outcome = myth.OutcomeSuccess
	}
	return myth.Interaction{
		Timestamp:  time.Now().UTC(),
		UserInput:  p.UserInteraction,
		AIResponse: p.AIResponse,
		Outcome:    outcome,
		SessionID:  p.SessionID,
	}
}

// decodeProcess parses and validates a process request body.
// Writes the error response itself and reports ok=false on failure.
func decodeProcess(w http.ResponseWriter, r *http.Request) (processRequest, bool) {
	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return req, false
	}
	if req.UserInteraction == "" || req.AIResponse == "" {
		http.Error(w, "user_interaction and ai_response are required", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	req, ok := decodeProcess(w, r)
	if !ok {
		return
	}

	fragment, err := s.Engine.ProcessInteraction(r.Context(), req.interaction())
	if err != nil {
		slog.Error("interaction processing failed", "error", err)
		http.Error(w, "interaction processing failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, fragment)
}

func (s *Server) handleNarratives(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 10
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	fragments, err := s.Engine.Fragments(r.Context(), limit)
	if err != nil {
		slog.Error("narrative listing failed", "error", err)
		http.Error(w, "narrative listing failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, fragments)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	keyword := r.URL.Query().Get("keyword")
	if keyword == "" {
		http.Error(w, "keyword is required", http.StatusBadRequest)
		return
	}

	fragments, err := s.Engine.Search(r.Context(), keyword)
	if err != nil {
		slog.Error("narrative search failed", "error", err)
		http.Error(w, "narrative search failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, fragments)
}

func (s *Server) handleDream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	dream, err := s.Engine.GenerateDream(r.Context())
	if err != nil {
		slog.Error("dream generation failed", "error", err)
		http.Error(w, "dream generation failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, dream)
}

func (s *Server) handleDreams(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 5
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	dreams, err := s.Engine.Dreams(r.Context(), limit)
	if err != nil {
		slog.Error("dream listing failed", "error", err)
		http.Error(w, "dream listing failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, dreams)
}

func (s *Server) handleAIProcess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	req, ok := decodeProcess(w, r)
	if !ok {
		return
	}

	fragment, err := s.Engine.ProcessInteractionAI(r.Context(), req.interaction())
	if err != nil {
		slog.Error("AI interaction processing failed", "error", err)
		http.Error(w, "AI interaction processing failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, fragment)
}

func (s *Server) handleAIDream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	dream, err := s.Engine.GenerateDreamAI(r.Context())
	if err != nil {
		slog.Error("AI dream generation failed", "error", err)
		http.Error(w, "AI dream generation failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, dream)
}

func (s *Server) handleAIEvolutionDream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	dream, err := s.Engine.GenerateEvolutionDream(r.Context())
	if err != nil {
		slog.Error("AI evolution dream generation failed", "error", err)
		http.Error(w, "AI evolution dream generation failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, dream)
}

// writeJSON writes v as indented JSON with the right content type.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		slog.Error("JSON encode failed", "error", err)
	}
}
