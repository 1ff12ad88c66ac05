package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// SpeakRequest asks for an MP3 rendering of question text.
type SpeakRequest struct {
	Text string `json:"text" validate:"required"`
}

// Validate validates the SpeakRequest using the validator.
func (r *SpeakRequest) Validate() error {
	return validator.New().Struct(r)
}

// handleTextToSpeech streams synthesized speech for the given text.
func (s *Server) handleTextToSpeech(w http.ResponseWriter, r *http.Request) {
	var req SpeakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	req.Text = strings.TrimSpace(req.Text)
	if err := req.Validate(); err != nil || req.Text == "" {
		s.errorResponse(w, http.StatusBadRequest, "text is required")
		return
	}

	audio, err := s.synth.Synthesize(r.Context(), req.Text)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "TTS failed: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Disposition", `attachment; filename="speech.mp3"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(audio)
}
