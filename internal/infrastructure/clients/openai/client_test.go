package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevacare/caregiver-match/internal/domain/providers"
	"github.com/sevacare/caregiver-match/pkg/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(&config.OpenAIConfig{
		APIKey:         "test-key",
		Model:          "gpt-4o-mini",
		TimeoutSeconds: 2,
		RateLimitRPM:   600,
		RateLimitBurst: 10,
	})
	require.NoError(t, err)
	client.SetBaseURL(server.URL)
	return client
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(&config.OpenAIConfig{})
	assert.Error(t, err)

	_, err = NewClient(nil)
	assert.Error(t, err)
}

func TestComplete_ReturnsOutputText(t *testing.T) {
	var gotPath string
	var gotAuth string
	var gotBody map[string]interface{}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"output": []map[string]interface{}{
				{
					"content": []map[string]string{
						{"type": "output_text", "text": `{"symptoms":["fever"]}`},
					},
				},
			},
		})
	})

	text, err := client.Complete(context.Background(), "Patient query: fever", "en")
	require.NoError(t, err)

	assert.Equal(t, `{"symptoms":["fever"]}`, text)
	assert.Equal(t, "/responses", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotBody["model"])
}

func TestComplete_UnauthorizedIsTyped(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.Complete(context.Background(), "prompt", "en")
	require.Error(t, err)
	assert.True(t, errors.Is(err, providers.ErrCompletionUnauthorized))
}

func TestComplete_ServerErrorFails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Complete(context.Background(), "prompt", "en")
	assert.Error(t, err)
}

func TestComplete_MissingOutputTextFails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"output": []interface{}{}})
	})

	_, err := client.Complete(context.Background(), "prompt", "en")
	assert.Error(t, err)
}

func TestComplete_HindiUsesHindiSystemPrompt(t *testing.T) {
	var system string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Input []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"input"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		for _, m := range body.Input {
			if m.Role == "system" {
				system = m.Content
			}
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"output": []map[string]interface{}{
				{
					"content": []map[string]string{
						{"type": "output_text", "text": "{}"},
					},
				},
			},
		})
	})

	_, err := client.Complete(context.Background(), "बुखार", "hi")
	require.NoError(t, err)
	assert.Contains(t, system, "Hindi")
}
