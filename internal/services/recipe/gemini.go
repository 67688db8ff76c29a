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

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiProvider implements Provider for the Google Generative Language API
type GeminiProvider struct {
	apiKey  string
	model   string
	baseURL string
}

// NewGeminiProvider creates a new Gemini recipe provider
func NewGeminiProvider(apiKey, model string) *GeminiProvider {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &GeminiProvider{apiKey: apiKey, model: model, baseURL: geminiBaseURL}
}

// Generate generates a recipe using Gemini's generateContent API. The call
// may block until the context is cancelled; cancellation policy belongs to
// the caller.
func (p *GeminiProvider) Generate(ctx context.Context, userInput, dietFilter string) (*GenerationResult, error) {
	if err := validateInput(userInput); err != nil {
		return nil, err
	}

	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		attrs := []attribute.KeyValue{attribute.String("provider", "gemini")}
		metrics.GenerationDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
		metrics.ExternalAPIDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
		metrics.ExternalAPICallsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	}()

	type part struct {
		Text string `json:"text"`
	}
	type content struct {
		Role  string `json:"role,omitempty"`
		Parts []part `json:"parts"`
	}
	type generateRequest struct {
		SystemInstruction content   `json:"system_instruction"`
		Contents          []content `json:"contents"`
	}

	req := generateRequest{
		SystemInstruction: content{Parts: []part{{Text: ai.SystemInstruction()}}},
		Contents: []content{
			{Role: "user", Parts: []part{{Text: ai.BuildUserPrompt(userInput, dietFilter)}}},
		},
	}

	body, _ := json.Marshal(req)
	url := fmt.Sprintf("%s/models/%s:generateContent", p.baseURL, p.model)
	httpReq, err := http.NewRequestWithContext(httpclient.WithProvider(ctx, "Gemini"), "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.NewUpstreamError("failed to build Gemini request", "GEMINI_REQUEST_FAILED", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", p.apiKey)

	resp, err := httpclient.InstrumentedClient.Do(httpReq)
	if err != nil {
		return nil, errors.NewUpstreamError("Gemini request failed", "GEMINI_REQUEST_FAILED", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewUpstreamError("failed to read Gemini response", "GEMINI_RESPONSE_READ_FAILED", err)
	}

	if resp.StatusCode >= 400 {
		return nil, errors.NewUpstreamError(
			fmt.Sprintf("Gemini API error (status %d): %s", resp.StatusCode, string(respBody)),
			"GEMINI_API_ERROR", nil)
	}

	var generateResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(respBody, &generateResp); err != nil {
		return nil, errors.NewUpstreamError("failed to decode Gemini response envelope", "GEMINI_RESPONSE_DECODE_FAILED", err)
	}

	if len(generateResp.Candidates) == 0 || len(generateResp.Candidates[0].Content.Parts) == 0 {
		return nil, errors.NewUpstreamError("no candidates in Gemini response", "GEMINI_EMPTY_RESPONSE", nil)
	}

	return ParseGenerationResult(generateResp.Candidates[0].Content.Parts[0].Text)
}
