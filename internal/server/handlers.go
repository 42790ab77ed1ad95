package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/Zedonkay/rent/internal/fairsplit"
	"github.com/Zedonkay/rent/internal/round"
	"github.com/Zedonkay/rent/internal/store"
)

// maxBodyBytes bounds a submit request body.
const maxBodyBytes = 64 << 10

type submitRequest struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type submissionsResponse struct {
	Success     bool               `json:"success"`
	Submissions []store.Submission `json:"submissions"`
}

type calculateResponse struct {
	Success bool `json:"success"`
	round.Result
}

type historyResponse struct {
	Success bool                `json:"success"`
	Splits  []store.SplitRecord `json:"splits"`
}

type healthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if _, err := s.service.Submit(r.Context(), req.Name, req.Values); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Submission successful"})
}

func (s *Server) handleSubmissions(w http.ResponseWriter, r *http.Request) {
	subs, err := s.service.Submissions(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, submissionsResponse{Success: true, Submissions: subs})
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	res, err := s.service.Calculate(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, calculateResponse{Success: true, Result: res})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if _, err := s.service.Reset(r.Context()); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Submissions reset successfully"})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	splits, err := s.service.History(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, historyResponse{Success: true, Splits: splits})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// writeServiceError maps round errors to status codes and user messages.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var subErr *round.SubmissionError
	switch {
	case errors.As(err, &subErr):
		writeError(w, http.StatusBadRequest, subErr.Message)
	case errors.Is(err, round.ErrDuplicateSubmitter):
		writeError(w, http.StatusBadRequest, "You have already submitted your valuations")
	case errors.Is(err, round.ErrRoundFull):
		writeError(w, http.StatusBadRequest, fmt.Sprintf("All %d valuations have already been submitted", fairsplit.N))
	case errors.Is(err, round.ErrRoundIncomplete):
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Need exactly %d submissions", fairsplit.N))
	default:
		var engineErr *fairsplit.Error
		msg := "internal error"
		if errors.As(err, &engineErr) {
			msg = "internal computation error"
		}
		s.logger.Error("request failed",
			zap.String("request_id", RequestID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, msg)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Success: false, Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
