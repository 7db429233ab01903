// Package genai wraps the Gemini text-generation API.
//
// The app makes exactly one kind of call: send a composed prompt, get back
// the model's text. No streaming, no chat history, no tool calls — the
// generateContent endpoint with a single user part covers it.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public Gemini API endpoint. Tests point the client
// at an httptest server instead.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// DefaultModel is the model used when GEMINI_MODEL is not configured.
const DefaultModel = "gemini-2.5-flash"

// Generation can take a while for a long README; give it more room than an
// ordinary API call.
const defaultTimeout = 2 * time.Minute

// Client calls the Gemini generateContent endpoint.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Client for the public Gemini API.
func NewClient(apiKey, model string, logger *slog.Logger) *Client {
	return NewClientWithBaseURL(apiKey, model, DefaultBaseURL, logger)
}

// NewClientWithBaseURL creates a Client against a custom endpoint (tests).
func NewClientWithBaseURL(apiKey, model, baseURL string, logger *slog.Logger) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// Request/response shapes for models/{model}:generateContent.
// Only the fields we use — the real API surface is much larger.

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Generate sends the prompt and returns the model's raw text output.
//
// ALL-OR-NOTHING CONTRACT:
// Every failure mode — transport error, non-200 status, quota errors, and a
// response with no text in it — returns a GenerationError. The caller never
// receives partial output, and the error message it can surface carries no
// provider detail (that goes to the log).
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	payload := generateRequest{
		Contents: []content{
			{Parts: []part{{Text: prompt}}},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("genai: encoding request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(c.model), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("genai: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("genai: request failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("genai: calling generation service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// The error body often explains why (bad key, quota). Log it; the
		// caller only learns "generation failed".
		var genResp generateResponse
		detail := resp.Status
		if decodeErr := json.NewDecoder(resp.Body).Decode(&genResp); decodeErr == nil && genResp.Error != nil {
			detail = genResp.Error.Message
		}
		c.logger.Error("genai: generation request rejected",
			slog.Int("status", resp.StatusCode),
			slog.String("detail", detail),
		)
		return "", fmt.Errorf("genai: generation service returned status %d", resp.StatusCode)
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("genai: decoding response: %w", err)
	}

	text := firstCandidateText(&genResp)
	if strings.TrimSpace(text) == "" {
		// A success status with no text is still a failure — the caller
		// must never report an empty README as a success.
		c.logger.Error("genai: response contained no text",
			slog.Int("candidates", len(genResp.Candidates)),
		)
		return "", fmt.Errorf("genai: model returned no text")
	}

	return text, nil
}

// firstCandidateText concatenates the text parts of the first candidate.
func firstCandidateText(resp *generateResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}
