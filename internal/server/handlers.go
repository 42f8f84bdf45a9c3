package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/people-aggregator/internal/aggregate"
	"github.com/sells-group/people-aggregator/internal/model"
)

// usernameChecker is satisfied by the social media adapter.
type usernameChecker interface {
	CheckUsername(ctx context.Context, username string) map[string]model.Profile
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "people-aggregator",
		"version": apiVersion,
		"status":  "operational",
		"endpoints": map[string]string{
			"search":  "/api/search",
			"sources": "/api/sources",
			"health":  "/health",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	llmStatus := "not_configured"
	if s.agg.LLMConfigured() {
		llmStatus = "operational"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"services": map[string]string{
			"aggregator": "operational",
			"llm":        llmStatus,
		},
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var query model.Query
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	run, err := s.agg.Run(r.Context(), query)
	if err != nil {
		if eris.Is(err, aggregate.ErrNoIdentifier) {
			writeError(w, http.StatusBadRequest, "at least one search parameter must be provided")
			return
		}
		zap.L().Error("server: search failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleSources(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"sources":    s.agg.Sources(),
		"categories": s.agg.Categories(),
	})
}

func (s *Server) handleSearchSource(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var query model.Query
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := s.agg.SearchSource(r.Context(), name, query)
	if err != nil {
		if eris.Is(err, aggregate.ErrUnknownSource) {
			writeError(w, http.StatusNotFound, "unknown source: "+name)
			return
		}
		zap.L().Error("server: source search failed", zap.String("source", name), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"source":    name,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"query":     query,
		"results":   result,
	})
}

func (s *Server) handleExtractNames(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text must not be empty")
		return
	}

	names := s.agg.ExtractNames(r.Context(), req.Text)
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"text":            req.Text,
		"extracted_names": names,
		"count":           len(names),
	})
}

func (s *Server) handleCorrelate(w http.ResponseWriter, r *http.Request) {
	var sources model.SourceMap
	if err := json.NewDecoder(r.Body).Decode(&sources); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	consolidated := s.agg.Consolidate(r.Context(), &sources)
	writeJSON(w, http.StatusOK, map[string]any{
		"consolidated": consolidated,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleCheckUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	src := s.agg.Source("socialmedia")
	checker, ok := src.(usernameChecker)
	if !ok {
		writeError(w, http.StatusNotFound, "social media source not available")
		return
	}

	platforms := checker.CheckUsername(r.Context(), username)
	writeJSON(w, http.StatusOK, map[string]any{
		"username":  username,
		"platforms": platforms,
	})
}
