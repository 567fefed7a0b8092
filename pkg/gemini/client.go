// Package gemini is a minimal client for the Gemini generateContent REST endpoint.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Role values understood by the upstream API
const (
	RoleUser  = "user"
	RoleModel = "model"
)

var (
	// ErrNotConfigured is returned when no API key was provided
	ErrNotConfigured = errors.New("gemini: api key not configured")

	// ErrEmptyResponse is returned when the upstream answered without any text
	ErrEmptyResponse = errors.New("gemini: empty response")
)

// Message is one turn of a conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Config holds client settings
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Client calls Gemini over HTTP
type Client struct {
	http   *resty.Client
	apiKey string
	model  string
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	SystemInstruction *content  `json:"systemInstruction,omitempty"`
	Contents          []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// NewClient creates a client. An empty API key yields a client whose calls fail with ErrNotConfigured.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	http := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http:   http,
		apiKey: cfg.APIKey,
		model:  cfg.Model,
	}
}

// Configured reports whether an API key is set
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Chat sends message after history and returns the model's text.
// History roles other than "user" are sent as the model's own turns.
func (c *Client) Chat(ctx context.Context, systemInstruction, message string, history []Message) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	req := generateRequest{
		Contents: make([]content, 0, len(history)+1),
	}
	if systemInstruction != "" {
		req.SystemInstruction = &content{Parts: []part{{Text: systemInstruction}}}
	}
	for _, m := range history {
		role := RoleModel
		if m.Role == RoleUser {
			role = RoleUser
		}
		req.Contents = append(req.Contents, content{Role: role, Parts: []part{{Text: m.Content}}})
	}
	req.Contents = append(req.Contents, content{Role: RoleUser, Parts: []part{{Text: message}}})

	var out generateResponse
	var failure apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetPathParam("model", c.model).
		SetBody(req).
		SetResult(&out).
		SetError(&failure).
		Post("/v1beta/models/{model}:generateContent")
	if err != nil {
		return "", fmt.Errorf("gemini: request failed: %w", err)
	}
	if resp.IsError() {
		if failure.Error.Message != "" {
			return "", fmt.Errorf("gemini: %s (%d)", failure.Error.Message, resp.StatusCode())
		}
		return "", fmt.Errorf("gemini: unexpected status %d", resp.StatusCode())
	}

	if len(out.Candidates) == 0 {
		return "", ErrEmptyResponse
	}
	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	if sb.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}
