package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChat_SendsHistoryAndReturnsText(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"hello "},{"text":"there"}]}}]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "secret", Model: "gemini-test", BaseURL: srv.URL})
	text, err := c.Chat(context.Background(), "be brief", "how are you?", []Message{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello there", text)

	require.NotNil(t, got.SystemInstruction)
	assert.Equal(t, "be brief", got.SystemInstruction.Parts[0].Text)
	require.Len(t, got.Contents, 3)
	assert.Equal(t, RoleUser, got.Contents[0].Role)
	assert.Equal(t, RoleModel, got.Contents[1].Role)
	assert.Equal(t, RoleUser, got.Contents[2].Role)
	assert.Equal(t, "how are you?", got.Contents[2].Parts[0].Text)
}

func TestChat_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "k", Model: "m", BaseURL: srv.URL})
	_, err := c.Chat(context.Background(), "", "hi", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestChat_EmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "k", Model: "m", BaseURL: srv.URL})
	_, err := c.Chat(context.Background(), "", "hi", nil)
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestChat_NotConfigured(t *testing.T) {
	c := NewClient(Config{Model: "m", BaseURL: "http://127.0.0.1:1"})
	assert.False(t, c.Configured())
	_, err := c.Chat(context.Background(), "", "hi", nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}
