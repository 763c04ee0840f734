package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func replyWith(t *testing.T, w http.ResponseWriter, text string) {
	t.Helper()
	err := json.NewEncoder(w).Encode(generateResponse{
		Candidates: []struct {
			Content contentBlock `json:"content"`
		}{
			{Content: contentBlock{Role: "model", Parts: []part{{Text: text}}}},
		},
	})
	require.NoError(t, err)
}

func newTestServiceAgainst(url string) *Service {
	return NewService(Config{
		APIKey:  "test-key",
		Model:   "gemini-2.5-flash",
		Timeout: 2 * time.Second,
		BaseURL: url,
	}, nil, nil)
}

func TestAskReturnsProviderReply(t *testing.T) {
	var gotPath string
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.SystemInstruction)
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "Is it safe to drink coffee?", req.Contents[0].Parts[0].Text)

		replyWith(t, w, "A little coffee is fine.")
	}))
	defer srv.Close()

	svc := newTestServiceAgainst(srv.URL)
	reply := svc.Ask(context.Background(), "Is it safe to drink coffee?", "en")

	assert.Equal(t, "A little coffee is fine.", reply)
	assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
}

func TestAskEmbedsTwiHintForTwiSessions(t *testing.T) {
	var instruction string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		instruction = req.SystemInstruction.Parts[0].Text
		replyWith(t, w, "Yiw, eye.")
	}))
	defer srv.Close()

	svc := newTestServiceAgainst(srv.URL)
	svc.Ask(context.Background(), "Mepa wo kyew", "tw")

	assert.Contains(t, instruction, "Reply in Twi.")
}

func TestAskFallsBackOnProviderError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := newTestServiceAgainst(srv.URL)
	reply := svc.Ask(context.Background(), "hello", "en")

	assert.Equal(t, Fallback, reply)
	// One retry after the first failure.
	assert.Equal(t, int32(2), calls.Load())
}

func TestAskRetrySucceedsAfterTransientError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		replyWith(t, w, "second try worked")
	}))
	defer srv.Close()

	svc := newTestServiceAgainst(srv.URL)
	reply := svc.Ask(context.Background(), "hello", "en")

	assert.Equal(t, "second try worked", reply)
}

func TestAskFallsBackWhenBreakerOpen(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := newTestServiceAgainst(srv.URL)
	for i := 0; i < 4; i++ {
		assert.Equal(t, Fallback, svc.Ask(context.Background(), "hello", "en"))
	}

	// Once the breaker is open further asks stop reaching the provider.
	seen := calls.Load()
	assert.Equal(t, Fallback, svc.Ask(context.Background(), "hello", "en"))
	assert.Equal(t, seen, calls.Load())
}

func TestAskFallsBackWithoutAPIKey(t *testing.T) {
	svc := NewService(Config{Timeout: time.Second, BaseURL: "http://unused.invalid"}, nil, nil)
	assert.Equal(t, Fallback, svc.Ask(context.Background(), "hello", "en"))
}

func TestAskFallsBackOnEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(generateResponse{}))
	}))
	defer srv.Close()

	svc := newTestServiceAgainst(srv.URL)
	assert.Equal(t, Fallback, svc.Ask(context.Background(), "hello", "en"))
}
