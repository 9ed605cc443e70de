package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RishabhV28/sneakdeal/internal/domain"
)

// stubInterpreter returns a fixed result or error.
type stubInterpreter struct {
	result domain.AssistResult
	err    error
}

func (s *stubInterpreter) Interpret(_ context.Context, _ string) (domain.AssistResult, error) {
	return s.result, s.err
}

type stubSynthesizer struct {
	audio []byte
	err   error
}

func (s *stubSynthesizer) SynthesizeSpeech(_ context.Context, _ string) ([]byte, error) {
	return s.audio, s.err
}

func TestProcessQueryAppliesFilters(t *testing.T) {
	ctx := context.Background()
	f := newFixtures()
	f.seedSeller(t, "seller-1")
	f.seedListing(t, "sn-1", "seller-1", 2450)

	yeezy := f.seedListing(t, "sn-2", "seller-1", 890)
	yeezy.Brand = "Adidas"
	require.NoError(t, f.listings.Update(ctx, yeezy))

	interp := &stubInterpreter{result: domain.AssistResult{
		Intent:   domain.IntentSearch,
		Filters:  domain.ListingFilter{Brand: "Adidas"},
		Response: "Here are some Adidas pairs.",
	}}
	svc := NewAssistService(interp, &stubSynthesizer{}, f.catalog(), testLogger())

	result, err := svc.ProcessQuery(ctx, "show me adidas")
	require.NoError(t, err)
	assert.Equal(t, domain.IntentSearch, result.Intent)
	assert.Equal(t, "Here are some Adidas pairs.", result.Response)
	require.Len(t, result.Sneakers, 1)
	assert.Equal(t, "sn-2", result.Sneakers[0].ID)
}

func TestProcessQueryFallsBackToTextSearch(t *testing.T) {
	ctx := context.Background()
	f := newFixtures()
	f.seedSeller(t, "seller-1")
	f.seedListing(t, "sn-1", "seller-1", 2450)

	interp := &stubInterpreter{err: errors.New("endpoint down")}
	svc := NewAssistService(interp, &stubSynthesizer{}, f.catalog(), testLogger())

	result, err := svc.ProcessQuery(ctx, "Sneaker sn-1")
	require.NoError(t, err, "interpreter failure must not fail the query")
	assert.Equal(t, domain.IntentSearch, result.Intent)
	require.Len(t, result.Sneakers, 1)
	assert.Equal(t, "sn-1", result.Sneakers[0].ID)
}

func TestProcessQueryCapsResults(t *testing.T) {
	ctx := context.Background()
	f := newFixtures()
	f.seedSeller(t, "seller-1")
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		f.seedListing(t, "sn-"+id, "seller-1", 100)
	}

	interp := &stubInterpreter{result: domain.AssistResult{Intent: domain.IntentSearch}}
	svc := NewAssistService(interp, &stubSynthesizer{}, f.catalog(), testLogger())

	result, err := svc.ProcessQuery(ctx, "show me everything")
	require.NoError(t, err)
	assert.Len(t, result.Sneakers, maxAssistResults)
}

func TestSpeak(t *testing.T) {
	f := newFixtures()
	svc := NewAssistService(&stubInterpreter{}, &stubSynthesizer{audio: []byte("mp3")}, f.catalog(), testLogger())

	audio, err := svc.Speak(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3"), audio)

	svc = NewAssistService(&stubInterpreter{}, &stubSynthesizer{err: errors.New("tts down")}, f.catalog(), testLogger())
	_, err = svc.Speak(context.Background(), "hello")
	assert.Error(t, err)
}
