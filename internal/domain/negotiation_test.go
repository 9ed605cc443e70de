package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageCodecRoundTrip(t *testing.T) {
	msgs := []NegotiationMessage{
		{ID: "1", Type: MessageAI, Message: "I found this pair for $2450.", Timestamp: "2024-05-01T12:00:00Z"},
		{ID: "2", Type: MessageSeller, Message: `I can do $2300 as my "lowest" price.`, Timestamp: "2024-05-01T12:01:00Z"},
		{ID: "3", Type: MessageAI, Message: "Would you consider $2255?", Timestamp: "2024-05-01T12:01:00Z"},
	}

	encoded, err := EncodeMessages(msgs)
	require.NoError(t, err)
	require.Len(t, encoded, 3)

	decoded, err := DecodeMessages(encoded)
	require.NoError(t, err)
	assert.Equal(t, msgs, decoded)
}

func TestEncodeMessagesEmpty(t *testing.T) {
	encoded, err := EncodeMessages(nil)
	require.NoError(t, err)
	assert.Empty(t, encoded)

	decoded, err := DecodeMessages(encoded)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestDecodeMessagesRejectsMalformedEntry(t *testing.T) {
	_, err := DecodeMessages([]string{`{"id":"1","type":"ai"}`, `not json`})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index 1")
}

func TestNegotiationStatusTerminal(t *testing.T) {
	assert.False(t, NegotiationActive.Terminal())
	assert.True(t, NegotiationAccepted.Terminal())
	assert.True(t, NegotiationRejected.Terminal())
	assert.True(t, NegotiationExpired.Terminal())
}

func TestValidationError(t *testing.T) {
	ve := &ValidationError{}
	assert.True(t, ve.Empty())

	ve.Add("name", "required").Add("price", "must be positive")
	assert.False(t, ve.Empty())
	assert.Equal(t, "validation failed: name: required; price: must be positive", ve.Error())
	assert.True(t, IsValidation(ve))
	assert.False(t, IsValidation(ErrNotFound))
}
