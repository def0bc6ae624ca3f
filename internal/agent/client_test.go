package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escriba-ai/escriba/internal/log"
)

func TestClientGenerate(t *testing.T) {
	var captured wireRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		resp := Response{
			Success: true,
			Output:  "trabalho gerado",
			Files:   []File{{FileURL: "https://files.example/doc.pdf"}},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, 5*time.Second, log.NewNop())
	require.NoError(t, err)

	resp, err := client.Generate(context.Background(), Request{
		Prompt:    "fotossintese",
		AgentID:   "escriba-docs",
		UserID:    "user-1",
		SessionID: "sess-1",
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "trabalho gerado", resp.Output)
	require.Len(t, resp.Files, 1)
	assert.Equal(t, "https://files.example/doc.pdf", resp.Files[0].FileURL)

	// The identity context rides along with every call.
	assert.Equal(t, "fotossintese", captured.Message)
	assert.Equal(t, "escriba-docs", captured.AgentID)
	assert.Equal(t, "user-1", captured.Context.UserID)
	assert.Equal(t, "sess-1", captured.Context.SessionID)
}

func TestClientGenerateCollaboratorFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Response{Success: false, ErrorMessage: "agente sobrecarregado"})
	}))
	defer server.Close()

	client, err := NewClient(server.URL, 5*time.Second, log.NewNop())
	require.NoError(t, err)

	resp, err := client.Generate(context.Background(), Request{Prompt: "algo"})

	// A reported failure is not a transport error.
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "agente sobrecarregado", resp.ErrorMessage)
}

func TestClientGenerateTransportFailures(t *testing.T) {
	t.Run("non-2xx status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "internal error", http.StatusInternalServerError)
		}))
		defer server.Close()

		client, err := NewClient(server.URL, 5*time.Second, log.NewNop())
		require.NoError(t, err)

		_, err = client.Generate(context.Background(), Request{Prompt: "algo"})
		assert.Error(t, err)
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("{not json"))
		}))
		defer server.Close()

		client, err := NewClient(server.URL, 5*time.Second, log.NewNop())
		require.NoError(t, err)

		_, err = client.Generate(context.Background(), Request{Prompt: "algo"})
		assert.Error(t, err)
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		client, err := NewClient("http://127.0.0.1:1", time.Second, log.NewNop())
		require.NoError(t, err)

		_, err = client.Generate(context.Background(), Request{Prompt: "algo"})
		assert.Error(t, err)
	})
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	_, err := NewClient("", time.Second, log.NewNop())
	assert.Error(t, err)
}
