package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jentor/strata/pkg/errors"
	"github.com/jentor/strata/pkg/graph"
	"github.com/jentor/strata/pkg/layout"
	"github.com/jentor/strata/pkg/pipeline"
	"github.com/jentor/strata/pkg/render"
	"github.com/jentor/strata/pkg/store"
)

// computeRequest is the POST /v1/layouts body.
type computeRequest struct {
	Document *graph.Document `json:"document"`
	Config   *layout.Config  `json:"config,omitempty"`

	// Persist stores the result and returns its ID. Requires a configured
	// store.
	Persist bool `json:"persist,omitempty"`
}

// computeResponse is the POST /v1/layouts reply.
type computeResponse struct {
	ID       string         `json:"id,omitempty"`
	DocHash  string         `json:"doc_hash"`
	CacheHit bool           `json:"cache_hit"`
	Layout   *layout.Result `json:"layout"`
	Stats    pipeline.Stats `json:"stats"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCompute(w http.ResponseWriter, r *http.Request) {
	var req computeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request body"))
		return
	}
	if req.Document == nil {
		writeError(w, errors.New(errors.ErrCodeInvalidGraph, "request has no document"))
		return
	}

	opts := pipeline.Options{Document: req.Document}
	if req.Config != nil {
		opts.Config = *req.Config
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := computeResponse{
		DocHash:  result.DocHash,
		CacheHit: result.CacheHit,
		Layout:   result.Layout,
		Stats:    result.Stats,
	}

	if req.Persist {
		if s.store == nil {
			writeError(w, errors.New(errors.ErrCodeInvalidConfig, "persistence is not configured"))
			return
		}
		rec := &store.Record{
			DocHash:  result.DocHash,
			Document: *req.Document,
			Config:   opts.Config,
			Layout:   *result.Layout,
		}
		if rec.Config == (layout.Config{}) {
			rec.Config = layout.DefaultConfig()
		}
		if err := s.store.Save(r.Context(), rec); err != nil {
			writeError(w, err)
			return
		}
		resp.ID = rec.ID
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusOK, []store.Record{})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	recs, err := s.store.List(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if recs == nil {
		recs = []store.Record{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.fetch(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	rec, err := s.fetch(r)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(render.ResultSVG(&rec.Layout, render.SVGOptions{}))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, store.ErrNotFound(chi.URLParam(r, "id")))
		return
	}
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) fetch(r *http.Request) (*store.Record, error) {
	id := chi.URLParam(r, "id")
	if s.store == nil {
		return nil, store.ErrNotFound(id)
	}
	return s.store.Get(r.Context(), id)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps error codes onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	switch code {
	case errors.ErrCodeInvalidGraph, errors.ErrCodeUnknownNode,
		errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	case errors.ErrCodeResourceLimit:
		status = http.StatusRequestEntityTooLarge
	case errors.ErrCodeNotFound:
		status = http.StatusNotFound
	}
	writeJSON(w, status, errorResponse{
		Code:    string(code),
		Message: errors.UserMessage(err),
	})
}
