package assist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RishabhV28/sneakdeal/internal/domain"
)

func chatBody(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"content": content}},
		},
	})
	return string(b)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		BaseURL:   srv.URL,
		APIKey:    "test-key",
		ChatModel: "gpt-4",
		TTSModel:  "tts-1",
		Voice:     "nova",
	})
}

func TestInterpretStructuredReply(t *testing.T) {
	content := `{"intent":"search","filters":{"brand":"Nike","size":"10","maxPrice":500},"response":"Found some Nikes.","productRecommendations":["sn-1"]}`

	var gotReq chatRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write([]byte(chatBody(content)))
	})

	result, err := client.Interpret(context.Background(), "find me nikes under 500")
	require.NoError(t, err)

	assert.Equal(t, domain.IntentSearch, result.Intent)
	assert.Equal(t, "Found some Nikes.", result.Response)
	assert.Equal(t, []string{"sn-1"}, result.Recommendations)
	assert.Equal(t, "Nike", result.Filters.Brand)
	assert.Equal(t, "10", result.Filters.Size)
	assert.Equal(t, 500.0, result.Filters.MaxPrice)

	// The prompt carries the model and the user query.
	assert.Equal(t, "gpt-4", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "find me nikes under 500", gotReq.Messages[1].Content)
}

func TestInterpretUnstructuredReplyDegradesToSearch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatBody("Sure! Here are some sneakers you might like.")))
	})

	result, err := client.Interpret(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, domain.IntentSearch, result.Intent)
	assert.Equal(t, "Sure! Here are some sneakers you might like.", result.Response)
	assert.Empty(t, result.Recommendations)
}

func TestInterpretUpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota exceeded"}`, http.StatusTooManyRequests)
	})

	_, err := client.Interpret(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestInterpretNoChoices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	})

	_, err := client.Interpret(context.Background(), "anything")
	assert.Error(t, err)
}

func TestSynthesizeSpeech(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/audio/speech", r.URL.Path)
		var req speechRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "tts-1", req.Model)
		assert.Equal(t, "nova", req.Voice)
		assert.Equal(t, "hello there", req.Input)
		w.Write([]byte("mp3-bytes"))
	})

	audio, err := client.SynthesizeSpeech(context.Background(), "hello there")
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3-bytes"), audio)
}
