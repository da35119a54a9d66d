package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/poiesic/mergen"
	"github.com/poiesic/mergen/core"
	"github.com/poiesic/mergen/search"
)

const maxBodyBytes = 1 << 16

type planRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		s.logger.Error("write JSON problem response failed", "err", err)
	}
}

// decodePlan reads and validates a plan request. It writes the problem
// response itself and returns false on failure.
func (s *Server) decodePlan(w http.ResponseWriter, r *http.Request) (*core.Plan, bool) {
	var req planRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		s.writeProblem(w, http.StatusBadRequest, "Invalid body", "body must be a JSON object with a query field")
		return nil, false
	}
	if req.TopK == 0 {
		req.TopK = search.MaxTopK
	}
	if req.TopK < 0 {
		s.writeProblem(w, http.StatusBadRequest, "Invalid top_k", "top_k must be positive")
		return nil, false
	}

	plan, err := s.planner.PlanTravel(r.Context(), req.Query, req.TopK)
	if err != nil {
		s.logger.Error("planning failed", "query", req.Query, "err", err)
		switch {
		case errors.Is(err, search.ErrSearchFailed):
			s.writeProblem(w, http.StatusBadGateway, "Search failed", err.Error())
		case errors.Is(err, mergen.ErrClosed):
			s.writeProblem(w, http.StatusServiceUnavailable, "Unavailable", "planner is shutting down")
		case r.Context().Err() != nil:
			s.writeProblem(w, http.StatusServiceUnavailable, "Timeout", "planning did not finish in time")
		default:
			s.writeProblem(w, http.StatusBadRequest, "Invalid request", err.Error())
		}
		return nil, false
	}
	return plan, true
}

func (s *Server) plan(w http.ResponseWriter, r *http.Request) {
	plan, ok := s.decodePlan(w, r)
	if !ok {
		return
	}
	body, err := json.Marshal(plan)
	if err != nil {
		s.logger.Error("failed to marshal plan", "err", err)
		s.writeProblem(w, http.StatusInternalServerError, "Internal error", "")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		s.logger.Error("failed to write plan body", "err", err)
	}
}

func (s *Server) planPDF(w http.ResponseWriter, r *http.Request) {
	plan, ok := s.decodePlan(w, r)
	if !ok {
		return
	}
	body, err := s.pdf.Bytes(plan)
	if err != nil {
		s.logger.Error("failed to render plan pdf", "err", err)
		s.writeProblem(w, http.StatusInternalServerError, "Internal error", "")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="mergen-plan.pdf"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		s.logger.Error("failed to write pdf body", "err", err)
	}
}
