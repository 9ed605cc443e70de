package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/RishabhV28/sneakdeal/internal/service"
)

// AssistService defines the methods the voice handler requires from the
// service layer.
type AssistService interface {
	ProcessQuery(ctx context.Context, query string) (service.VoiceResult, error)
	Speak(ctx context.Context, text string) ([]byte, error)
}

// VoiceHandler serves the voice assistant endpoints.
type VoiceHandler struct {
	assist AssistService
	logger *slog.Logger
}

// NewVoiceHandler creates a VoiceHandler with the given service and logger.
func NewVoiceHandler(assist AssistService, logger *slog.Logger) *VoiceHandler {
	return &VoiceHandler{assist: assist, logger: logger}
}

type processVoiceRequest struct {
	Query string `json:"query"`
}

// ProcessVoice interprets a free-text shopping query and returns matching
// sneakers.
// POST /api/voice/process
func (h *VoiceHandler) ProcessVoice(w http.ResponseWriter, r *http.Request) {
	var req processVoiceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	result, err := h.assist.ProcessQuery(r.Context(), req.Query)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "failed to process query")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type speakRequest struct {
	Text string `json:"text"`
}

// Speak synthesizes the given text as MP3 audio.
// POST /api/voice/speak
func (h *VoiceHandler) Speak(w http.ResponseWriter, r *http.Request) {
	var req speakRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	audio, err := h.assist.Speak(r.Context(), req.Text)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "failed to synthesize speech")
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	w.Write(audio)
}
