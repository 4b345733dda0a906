package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sevacare/caregiver-match/internal/domain/providers"
	"github.com/sevacare/caregiver-match/pkg/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Client implements the text-completion provider used by the LLM intent
// extraction strategy. Responses are returned as raw text; the caller owns
// JSON extraction and validation because the backend gives no format
// guarantee.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	limiter    *tokenBucket
}

// NewClient creates a new OpenAI client.
func NewClient(cfg *config.OpenAIConfig) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("openai api key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		// Hard bound so extraction falls back instead of blocking a request
		timeout = 5 * time.Second
	}

	return &Client{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: newTokenBucket(cfg.RateLimitRPM, cfg.RateLimitBurst),
	}, nil
}

// SetBaseURL overrides the API endpoint; tests point this at a local server.
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

type responseContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type responseOutput struct {
	Content []responseContent `json:"content"`
}

type responseEnvelope struct {
	Output []responseOutput `json:"output"`
}

// Complete sends the prompt and returns the model's raw output text.
func (c *Client) Complete(ctx context.Context, prompt, language string) (string, error) {
	if c.limiter != nil {
		waitStart := time.Now()
		if err := c.limiter.Wait(ctx); err != nil {
			recordCompletionMetric(ctx, c.model, 0, 0, err)
			return "", err
		}
		recordRateLimitWait(ctx, c.model, time.Since(waitStart))
	}

	payload := map[string]interface{}{
		"model": c.model,
		"input": []map[string]string{
			{"role": "system", "content": intentSystemPrompt(language)},
			{"role": "user", "content": prompt},
		},
		"temperature":       0.1,
		"max_output_tokens": 400,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/responses", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		recordCompletionMetric(ctx, c.model, 0, time.Since(start), err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		recordCompletionMetric(ctx, c.model, resp.StatusCode, time.Since(start), fmt.Errorf("status %d", resp.StatusCode))
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return "", fmt.Errorf("%w: status %d", providers.ErrCompletionUnauthorized, resp.StatusCode)
		}
		return "", fmt.Errorf("openai request failed with status %d", resp.StatusCode)
	}

	var envelope responseEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		recordCompletionMetric(ctx, c.model, resp.StatusCode, time.Since(start), err)
		return "", err
	}

	var text string
	for _, out := range envelope.Output {
		for _, content := range out.Content {
			if content.Type == "output_text" && content.Text != "" {
				text = content.Text
				break
			}
		}
		if text != "" {
			break
		}
	}

	if text == "" {
		recordCompletionMetric(ctx, c.model, resp.StatusCode, time.Since(start), errors.New("missing output text"))
		return "", errors.New("openai response missing output text")
	}

	recordCompletionMetric(ctx, c.model, resp.StatusCode, time.Since(start), nil)
	return text, nil
}

func newTokenBucket(rpm int, burst int) *tokenBucket {
	if rpm == 0 {
		rpm = 60
	}
	if rpm < 0 {
		return nil
	}
	if burst <= 0 {
		burst = 5
	}

	bucket := &tokenBucket{
		tokens: make(chan struct{}, burst),
	}
	for i := 0; i < burst; i++ {
		bucket.tokens <- struct{}{}
	}

	interval := time.Minute / time.Duration(rpm)
	if interval <= 0 {
		interval = time.Millisecond
	}

	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			select {
			case bucket.tokens <- struct{}{}:
			default:
			}
		}
	}()

	return bucket
}

type tokenBucket struct {
	tokens chan struct{}
}

func (b *tokenBucket) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.tokens:
		return nil
	}
}

type completionMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
	rateLimitWait   metric.Float64Histogram
}

var completionMetricsInit = false
var completionMetricsVals completionMetrics

func ensureMetrics() {
	if completionMetricsInit {
		return
	}
	meter := otel.Meter("github.com/sevacare/caregiver-match/openai")

	requestCount, err := meter.Int64Counter(
		"ai.completion.request.count",
		metric.WithDescription("Number of text completion requests"),
	)
	if err != nil {
		return
	}
	requestDuration, err := meter.Float64Histogram(
		"ai.completion.request.duration",
		metric.WithDescription("Completion request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}
	requestErrors, err := meter.Int64Counter(
		"ai.completion.request.errors",
		metric.WithDescription("Number of completion request errors"),
	)
	if err != nil {
		return
	}
	rateLimitWait, err := meter.Float64Histogram(
		"ai.completion.rate_limit.wait",
		metric.WithDescription("Time spent waiting for the completion rate limiter in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}

	completionMetricsVals = completionMetrics{
		requestCount:    requestCount,
		requestDuration: requestDuration,
		requestErrors:   requestErrors,
		rateLimitWait:   rateLimitWait,
	}
	completionMetricsInit = true
}

func recordCompletionMetric(ctx context.Context, model string, statusCode int, duration time.Duration, err error) {
	ensureMetrics()
	if !completionMetricsInit {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "openai"),
		attribute.String("ai.model", model),
	}
	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	completionMetricsVals.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	completionMetricsVals.requestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		completionMetricsVals.requestErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

func recordRateLimitWait(ctx context.Context, model string, wait time.Duration) {
	ensureMetrics()
	if !completionMetricsInit {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "openai"),
		attribute.String("ai.model", model),
	}
	completionMetricsVals.rateLimitWait.Record(ctx, float64(wait.Milliseconds()), metric.WithAttributes(attrs...))
}
