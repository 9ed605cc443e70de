package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/RishabhV28/sneakdeal/internal/domain"
)

// maxAssistResults caps how many listings a voice query returns.
const maxAssistResults = 5

// VoiceResult is the outcome of processing one free-text shopping query.
type VoiceResult struct {
	Intent   domain.AssistIntent        `json:"intent"`
	Response string                     `json:"response"`
	Sneakers []domain.ListingWithSeller `json:"sneakers"`
}

// AssistService runs voice queries through the hosted interpreter and maps
// the extracted filters onto the catalog. The interpreter is best-effort:
// when it fails, the raw query becomes a plain text search.
type AssistService struct {
	interpreter domain.Interpreter
	speech      domain.SpeechSynthesizer
	catalog     *CatalogService
	logger      *slog.Logger
}

// NewAssistService creates an AssistService with all required dependencies.
func NewAssistService(
	interpreter domain.Interpreter,
	speech domain.SpeechSynthesizer,
	catalog *CatalogService,
	logger *slog.Logger,
) *AssistService {
	return &AssistService{
		interpreter: interpreter,
		speech:      speech,
		catalog:     catalog,
		logger:      logger,
	}
}

// ProcessQuery interprets the query and returns matching listings. Catalog
// failures are fatal; interpreter failures are not.
func (s *AssistService) ProcessQuery(ctx context.Context, query string) (VoiceResult, error) {
	result, err := s.interpreter.Interpret(ctx, query)
	if err != nil {
		s.logger.WarnContext(ctx, "assist_service: interpreter failed, falling back to text search",
			slog.String("error", err.Error()),
		)
		result = domain.AssistResult{
			Intent:   domain.IntentSearch,
			Filters:  domain.ListingFilter{Search: query},
			Response: fmt.Sprintf("Here's what I found for %q.", query),
		}
	}

	listings, err := s.catalog.ListListings(ctx, result.Filters)
	if err != nil {
		return VoiceResult{}, fmt.Errorf("assist_service: search catalog: %w", err)
	}
	if len(listings) > maxAssistResults {
		listings = listings[:maxAssistResults]
	}

	return VoiceResult{
		Intent:   result.Intent,
		Response: result.Response,
		Sneakers: listings,
	}, nil
}

// Speak synthesizes spoken audio (MP3) for the given text.
func (s *AssistService) Speak(ctx context.Context, text string) ([]byte, error) {
	audio, err := s.speech.SynthesizeSpeech(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("assist_service: speak: %w", err)
	}
	return audio, nil
}
