package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user", req.Messages[1].Role)

		w.WriteHeader(status)
		if status == http.StatusOK {
			json.NewEncoder(w).Encode(map[string]any{
				"choices": []map[string]any{
					{"message": map[string]string{"content": content}},
				},
			})
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCompleteReturnsModelContent(t *testing.T) {
	srv := chatServer(t, http.StatusOK, `{"summary":"stable usage"}`)
	svc := &RecommendServiceImpl{Endpoint: srv.URL, Client: srv.Client()}

	content, err := svc.complete(context.Background(), "analyze this")

	require.NoError(t, err)
	assert.Equal(t, `{"summary":"stable usage"}`, content)
}

func TestCompleteApiFailure(t *testing.T) {
	srv := chatServer(t, http.StatusTooManyRequests, "")
	svc := &RecommendServiceImpl{Endpoint: srv.URL, Client: srv.Client()}

	_, err := svc.complete(context.Background(), "analyze this")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestCompleteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	t.Cleanup(srv.Close)
	svc := &RecommendServiceImpl{Endpoint: srv.URL, Client: srv.Client()}

	_, err := svc.complete(context.Background(), "analyze this")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no response")
}
