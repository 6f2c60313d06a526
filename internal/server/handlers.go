package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/jonathan/voca-career/internal/types"
)

// handleAdvice runs the recommendation pipeline for one {userType, formData} body
func (s *Server) handleAdvice(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeProfileRequest(w, r)
	if err != nil {
		s.adviceError(w, r, err)
		return
	}

	rec, err := s.advisor.Advise(r.Context(), req)
	if err != nil {
		s.adviceError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, rec)
}

func (s *Server) decodeProfileRequest(w http.ResponseWriter, r *http.Request) (types.ProfileRequest, error) {
	var req types.ProfileRequest

	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	defer body.Close() //nolint:errcheck

	dec := json.NewDecoder(body)
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return req, &ErrBadRequest{Message: "request body too large", Cause: err}
		}
		return req, &ErrBadRequest{Message: "invalid request body", Cause: err}
	}
	if dec.More() {
		return req, &ErrBadRequest{Message: "invalid request body: unexpected data after JSON object"}
	}
	return req, nil
}

func (s *Server) adviceError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	log.Printf("[advice] request_id=%s failed with %d: %v", RequestID(r.Context()), status, err)
	s.errorResponse(w, status, err.Error())
}
