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

	"github.com/automat-io/automat/internal/models"
)

func completionServer(t *testing.T, status int, content string, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "test-model", body.Model)
		if assert.Len(t, body.Messages, 1) {
			assert.Equal(t, "user", body.Messages[0].Role)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"denied","type":"invalid_request_error"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "cmpl-1",
			"object":  "chat.completion",
			"created": time.Now().Unix(),
			"model":   "test-model",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		})
	}))
}

func testAIConfig(url string) models.AIConfig {
	return models.AIConfig{APIKey: "test-key", Model: "test-model", BaseURL: url + "/", Timeout: 5 * time.Second}
}

func TestNewOpenAIClientRequiresKey(t *testing.T) {
	_, err := NewOpenAIClient(models.AIConfig{})
	assert.ErrorIs(t, err, ErrMissingCredential)

	svc := NewServiceFromSettings(models.AIConfig{APIKey: " "}, nil)
	assert.False(t, svc.HasCredential())
}

func TestNewOpenAIClientDefaults(t *testing.T) {
	c, err := NewOpenAIClient(models.AIConfig{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, c.Model())
	assert.Equal(t, DefaultTimeout, c.timeout)
}

func TestOpenAIClientGenerateScript(t *testing.T) {
	var hits atomic.Int32
	srv := completionServer(t, http.StatusOK, "```powershell\nexit 0\n```", &hits)
	defer srv.Close()

	svc := NewServiceFromSettings(testAIConfig(srv.URL), nil)
	require.True(t, svc.HasCredential())

	script, err := svc.GenerateScript(context.Background(), "Check for MSI product code {1234-5678}")
	require.NoError(t, err)
	assert.Equal(t, "exit 0", script)
	assert.Equal(t, int32(1), hits.Load())
}

func TestOpenAIClientFailureIsNotRetried(t *testing.T) {
	var hits atomic.Int32
	srv := completionServer(t, http.StatusInternalServerError, "", &hits)
	defer srv.Close()

	svc := NewServiceFromSettings(testAIConfig(srv.URL), nil)

	_, err := svc.GenerateScript(context.Background(), "Check")
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.Equal(t, MsgUnreachable, svc.Analyze(context.Background(), "FATAL"))
	assert.Equal(t, int32(2), hits.Load())
}
