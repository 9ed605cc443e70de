package domain

import "context"

// AssistIntent classifies what a free-text shopping query is asking for.
type AssistIntent string

const (
	IntentSearch    AssistIntent = "search"
	IntentInfo      AssistIntent = "info"
	IntentNegotiate AssistIntent = "negotiate"
)

// AssistResult is the structured interpretation of a free-text query as
// returned by the hosted language-model endpoint.
type AssistResult struct {
	Intent          AssistIntent  `json:"intent"`
	Filters         ListingFilter `json:"-"`
	Response        string        `json:"response"`
	Recommendations []string      `json:"productRecommendations"`
}

// Interpreter extracts intent and catalog filters from free text. It is an
// external capability; callers must tolerate failure and fall back to a
// plain search.
type Interpreter interface {
	Interpret(ctx context.Context, query string) (AssistResult, error)
}

// SpeechSynthesizer turns text into spoken audio (MP3 bytes).
type SpeechSynthesizer interface {
	SynthesizeSpeech(ctx context.Context, text string) ([]byte, error)
}
