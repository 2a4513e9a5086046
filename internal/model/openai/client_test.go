package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cargodocs/internal/config"
	"cargodocs/internal/model"
	"cargodocs/internal/model/openai"
	"cargodocs/internal/port"
)

func testConfig() *config.ModelProviderConfig {
	return &config.ModelProviderConfig{
		Provider:     "openai",
		APIKey:       "test-key",
		DefaultModel: "gpt-4o",
	}
}

func testImages() []port.PageImage {
	return []port.PageImage{{Data: []byte("fake-png"), ContentType: "image/png"}}
}

func TestComplete_Success(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{
					"message":       map[string]interface{}{"content": `{"document_type":"BOL"}`},
					"finish_reason": "stop",
				},
			},
		})
	}))
	defer server.Close()

	client := openai.NewClientWithEndpoint(testConfig(), server.URL)
	out, err := client.Complete(context.Background(), testImages(), "extract the document")

	require.NoError(t, err)
	assert.Equal(t, `{"document_type":"BOL"}`, out)

	assert.Equal(t, "gpt-4o", captured["model"])
	messages := captured["messages"].([]interface{})
	content := messages[0].(map[string]interface{})["content"].([]interface{})
	// First block is the prompt text, then one image block per page.
	require.Len(t, content, 2)
	assert.Equal(t, "text", content[0].(map[string]interface{})["type"])
	assert.Equal(t, "image_url", content[1].(map[string]interface{})["type"])
}

func TestComplete_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "17")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := openai.NewClientWithEndpoint(testConfig(), server.URL)
	_, err := client.Complete(context.Background(), testImages(), "prompt")

	var rlErr *model.RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, "openai", rlErr.Provider)
	assert.Equal(t, 17.0, rlErr.RetryAfter.Seconds())
}

func TestComplete_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := openai.NewClientWithEndpoint(testConfig(), server.URL)
	_, err := client.Complete(context.Background(), testImages(), "prompt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestComplete_TruncatedOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{
					"message":       map[string]interface{}{"content": `{"partial`},
					"finish_reason": "length",
				},
			},
		})
	}))
	defer server.Close()

	client := openai.NewClientWithEndpoint(testConfig(), server.URL)
	_, err := client.Complete(context.Background(), testImages(), "prompt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "finish_reason: length")
}

func TestComplete_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer server.Close()

	client := openai.NewClientWithEndpoint(testConfig(), server.URL)
	_, err := client.Complete(context.Background(), testImages(), "prompt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}
