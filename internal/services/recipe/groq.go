package recipe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fitchef/ember/internal/errors"
	"github.com/fitchef/ember/internal/httpclient"
	"github.com/fitchef/ember/internal/metrics"
	"github.com/fitchef/ember/internal/services/ai"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// GroqProvider implements Provider for Groq's OpenAI-compatible API
type GroqProvider struct {
	apiKey  string
	model   string
	baseURL string
}

// NewGroqProvider creates a new Groq recipe provider
func NewGroqProvider(apiKey, model string) *GroqProvider {
	if model == "" {
		model = "llama-3.3-70b-versatile"
	}
	return &GroqProvider{apiKey: apiKey, model: model, baseURL: groqBaseURL}
}

// Generate generates a recipe using Groq's chat completions API with JSON
// response formatting.
func (p *GroqProvider) Generate(ctx context.Context, userInput, dietFilter string) (*GenerationResult, error) {
	if err := validateInput(userInput); err != nil {
		return nil, err
	}

	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		attrs := []attribute.KeyValue{attribute.String("provider", "groq")}
		metrics.GenerationDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
		metrics.ExternalAPIDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
		metrics.ExternalAPICallsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	}()

	type chatMessage struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	type chatRequest struct {
		Model          string        `json:"model"`
		Messages       []chatMessage `json:"messages"`
		ResponseFormat struct {
			Type string `json:"type"`
		} `json:"response_format"`
	}

	req := chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: ai.SystemInstruction()},
			{Role: "user", Content: ai.BuildUserPrompt(userInput, dietFilter)},
		},
	}
	req.ResponseFormat.Type = "json_object"

	body, _ := json.Marshal(req)
	httpReq, err := http.NewRequestWithContext(httpclient.WithProvider(ctx, "Groq"), "POST", p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, errors.NewUpstreamError("failed to build Groq request", "GROQ_REQUEST_FAILED", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpclient.InstrumentedClient.Do(httpReq)
	if err != nil {
		return nil, errors.NewUpstreamError("Groq request failed", "GROQ_REQUEST_FAILED", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewUpstreamError("failed to read Groq response", "GROQ_RESPONSE_READ_FAILED", err)
	}

	if resp.StatusCode >= 400 {
		return nil, errors.NewUpstreamError(
			fmt.Sprintf("Groq API error (status %d): %s", resp.StatusCode, string(respBody)),
			"GROQ_API_ERROR", nil)
	}

	var chatResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return nil, errors.NewUpstreamError("failed to decode Groq response envelope", "GROQ_RESPONSE_DECODE_FAILED", err)
	}

	if len(chatResp.Choices) == 0 {
		return nil, errors.NewUpstreamError("no response from Groq", "GROQ_EMPTY_RESPONSE", nil)
	}

	return ParseGenerationResult(chatResp.Choices[0].Message.Content)
}
