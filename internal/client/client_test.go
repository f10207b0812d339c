package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"optimistify/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Reframe(t *testing.T) {
	var got model.ReframeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, reframePath, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(model.ReframeResponse{
			Text: "three reframes",
			ConversationHistory: model.AppendTurn(got.ConversationHistory, got.Text, "three reframes"),
		})
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	resp, err := c.Reframe(context.Background(), "I lost my job today", nil)
	require.NoError(t, err)

	assert.Equal(t, "I lost my job today", got.Text)
	assert.NotNil(t, got.ConversationHistory)
	assert.Empty(t, got.ConversationHistory)

	assert.Equal(t, "three reframes", resp.Text)
	assert.Len(t, resp.ConversationHistory, 2)
}

func TestClient_SendsEmptyHistoryAsArray(t *testing.T) {
	var raw string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		raw = string(body)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"text":"ok","conversationHistory":[]}`)
	}))
	defer srv.Close()

	_, err := New(srv.URL, 0).Reframe(context.Background(), "hi", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"hi","conversationHistory":[]}`, raw)
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"error":"OpenAI API key is not configured"}`)
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second).Reframe(context.Background(), "hi", nil)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "OpenAI API key is not configured", apiErr.Message)
	assert.False(t, errors.Is(err, ErrTransport))
}

func TestClient_MethodNotAllowedPlainText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusMethodNotAllowed)
		io.WriteString(w, "Method Not Allowed")
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second).Reframe(context.Background(), "hi", nil)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusMethodNotAllowed, apiErr.StatusCode)
	assert.Equal(t, "Failed to process request", apiErr.Message)
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(url, time.Second).Reframe(context.Background(), "hi", nil)
	assert.ErrorIs(t, err, ErrTransport)
}
