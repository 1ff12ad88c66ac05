package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/interview-coach/internal/extraction"
)

// maxUploadBytes caps resume uploads at 10 MiB.
const maxUploadBytes = 10 << 20

// NextRequest asks for the next question of a session.
type NextRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

// Validate validates the NextRequest using the validator.
func (r *NextRequest) Validate() error {
	return validator.New().Struct(r)
}

// AnswerRequest submits the candidate's answer to the pending question.
type AnswerRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	Response  string `json:"response" validate:"required"`
}

// Validate validates the AnswerRequest using the validator.
func (r *AnswerRequest) Validate() error {
	return validator.New().Struct(r)
}

// handleUpload extracts text from the uploaded resume, archives the raw
// bytes best-effort, and creates (or idempotently re-joins) a session.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("resume")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	format, err := extraction.FormatFromFilename(header.Filename)
	if err != nil {
		s.engineError(w, err)
		return
	}

	text, err := s.extractor.Extract(r.Context(), data, format)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "Failed to extract text from document: "+err.Error())
		return
	}

	sessionID := r.FormValue("session_id")
	identityRef := r.FormValue("user_id")

	sessionID, err = s.engine.Start(r.Context(), text, identityRef, sessionID)
	if err != nil {
		s.engineError(w, err)
		return
	}

	// Archival is a side channel: log its outcome, never fail the upload.
	if s.archive != nil {
		if contentID, err := s.archive.Save(r.Context(), sessionID, header.Filename, data); err != nil {
			log.Printf("[upload] resume archive failed for session %s (non-fatal): %v", sessionID, err)
		} else {
			log.Printf("[upload] archived resume %s as %s", header.Filename, contentID)
		}
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{
		"message":    "Resume processed",
		"session_id": sessionID,
	})
}

// handleNext generates and returns the next interview question.
func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	var req NextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "session_id is required")
		return
	}

	result, err := s.engine.Next(r.Context(), req.SessionID)
	if err != nil {
		s.engineError(w, err)
		return
	}
	if result.Done {
		s.jsonResponse(w, http.StatusOK, map[string]string{"message": result.Question})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"question": result.Question})
}

// handleResponse evaluates the candidate's answer and returns feedback.
func (s *Server) handleResponse(w http.ResponseWriter, r *http.Request) {
	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "session_id and response are required")
		return
	}

	feedback, err := s.engine.Answer(r.Context(), req.SessionID, req.Response)
	if err != nil {
		s.engineError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"feedback": feedback})
}

// handleEnd closes the session and returns the full transcript.
func (s *Server) handleEnd(w http.ResponseWriter, r *http.Request) {
	var req NextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "session_id is required")
		return
	}

	transcript, err := s.engine.End(r.Context(), req.SessionID)
	if err != nil {
		s.engineError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"message":   "Interview ended",
		"questions": transcript.Questions,
		"responses": transcript.Responses,
		"feedbacks": transcript.Feedbacks,
	})
}

// handleHistory lists session summaries for an identity, newest first.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	identityRef := r.PathValue("user_id")
	if identityRef == "" {
		s.errorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}

	summaries, err := s.engine.History(r.Context(), identityRef)
	if err != nil {
		s.engineError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, summaries)
}
