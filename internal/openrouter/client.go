// Package openrouter implements the completion client for OpenRouter's
// OpenAI-compatible chat completions endpoint.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/longkey1/runway/internal/runway"
	"github.com/sanity-io/litter"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	ProviderName    = "openrouter"
	DefaultBaseURL  = "https://openrouter.ai/api/v1"
	DefaultTimeout  = 15 * time.Second
	MaxResponseSize = 10 * 1024 * 1024 // 10MB

	tracerName = "github.com/longkey1/runway/internal/openrouter"
)

// ChatMessage represents a message on the wire
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResponseFormat selects the output format
type ResponseFormat struct {
	Type string `json:"type"`
}

// ChatRequest represents the request body for the chat completions endpoint
type ChatRequest struct {
	Model          string         `json:"model"`
	Messages       []ChatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	ResponseFormat ResponseFormat `json:"response_format"`
}

// ChatResponse represents the parts of the response the client reads.
// Pointers distinguish a missing field from an empty one.
type ChatResponse struct {
	Choices []struct {
		Message *struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// StatusError is returned for non-2xx responses
type StatusError struct {
	StatusCode int
	Status     string
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s for url: %s", e.Status, e.URL)
	if body := strings.TrimSpace(e.Body); body != "" {
		if len(body) > 200 {
			body = body[:200] + "..."
		}
		msg += " (" + body + ")"
	}
	return msg
}

// Options configures a Client
type Options struct {
	BaseURL    string
	Referer    string        // sent as HTTP-Referer
	Title      string        // sent as X-Title
	Timeout    time.Duration // per attempt
	Backoff    time.Duration // pause between failed decode attempts, zero disables it
	HTTPClient *http.Client
	Sleep      runway.Sleeper
	Logger     *slog.Logger

	// TracerProvider receives the completion spans; nil means the global provider.
	TracerProvider trace.TracerProvider
}

// Client implements runway.Completer for OpenRouter
type Client struct {
	baseURL    string
	referer    string
	title      string
	timeout    time.Duration
	backoff    time.Duration
	httpClient *http.Client
	sleep      runway.Sleeper
	logger     *slog.Logger
	tracer     trace.Tracer
}

// NewClient creates a new OpenRouter client
func NewClient(opts Options) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(opts.BaseURL, "/"),
		referer:    opts.Referer,
		title:      opts.Title,
		timeout:    opts.Timeout,
		backoff:    opts.Backoff,
		httpClient: opts.HTTPClient,
		sleep:      opts.Sleep,
		logger:     opts.Logger,
	}
	if opts.TracerProvider != nil {
		c.tracer = opts.TracerProvider.Tracer(tracerName)
	} else {
		c.tracer = otel.Tracer(tracerName)
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.backoff < 0 {
		c.backoff = 0
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	if c.sleep == nil {
		c.sleep = runway.Sleep
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Complete sends the request context to the endpoint, retrying only when the
// response body cannot be decoded. Every failure is a *runway.Error.
func (c *Client) Complete(ctx context.Context, rc *runway.RequestContext) (*runway.Completion, error) {
	if strings.TrimSpace(rc.APIKey) == "" {
		return nil, runway.NewError(runway.KindMissingCredential, rc.Attempts, runway.ErrMissingCredential)
	}

	maxRetries := rc.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	ctx, span := c.tracer.Start(ctx, "completion", trace.WithAttributes(
		attribute.String("model", rc.Model),
		attribute.Int("max_retries", maxRetries),
	))
	defer span.End()

	body, err := c.buildBody(rc)
	if err != nil {
		return nil, c.fail(span, runway.NewError(runway.KindUnexpected, rc.Attempts, err))
	}

	for {
		rc.Attempts++
		content, err := c.attempt(ctx, rc, body)
		if err == nil {
			span.SetAttributes(attribute.Int("attempts", rc.Attempts))
			c.logger.Debug("completion received", "attempts", rc.Attempts, "length", len(content))
			return &runway.Completion{Content: content, Attempts: rc.Attempts}, nil
		}
		err.Attempts = rc.Attempts

		// A cancelled turn is not a network failure
		if ctx.Err() != nil && err.Kind != runway.KindUnexpected {
			return nil, c.fail(span, runway.NewError(runway.KindUnexpected, rc.Attempts,
				fmt.Errorf("request interrupted: %w", err.Err)))
		}

		if err.Kind != runway.KindDecode {
			return nil, c.fail(span, err)
		}

		c.logger.Error("JSON error", "kind", err.Kind, "attempt", rc.Attempts, "max_retries", maxRetries, "err", err.Err)
		if rc.Attempts >= maxRetries {
			return nil, c.fail(span, runway.NewError(runway.KindDecode, rc.Attempts,
				fmt.Errorf("no valid response after %d attempts: %w", rc.Attempts, err.Err)))
		}

		if err := c.sleep(ctx, c.backoff); err != nil {
			return nil, c.fail(span, runway.NewError(runway.KindUnexpected, rc.Attempts, err))
		}
	}
}

func (c *Client) fail(span trace.Span, err *runway.Error) error {
	span.SetAttributes(
		attribute.Int("attempts", err.Attempts),
		attribute.String("kind", err.Kind.String()),
	)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Kind.String())
	return err
}

// buildBody marshals the system instruction and the recent messages
func (c *Client) buildBody(rc *runway.RequestContext) ([]byte, error) {
	messages := make([]ChatMessage, 0, len(rc.Recent)+1)
	messages = append(messages, ChatMessage{Role: string(runway.RoleSystem), Content: rc.SystemPrompt})
	for _, m := range rc.Recent {
		messages = append(messages, ChatMessage{Role: string(m.Role), Content: m.Content})
	}

	reqBody := ChatRequest{
		Model:          rc.Model,
		Messages:       messages,
		Temperature:    rc.Temperature,
		ResponseFormat: ResponseFormat{Type: "text"},
	}

	if c.logger.Enabled(context.Background(), slog.LevelDebug) {
		c.logger.Debug("completion request", "payload", litter.Sdump(reqBody))
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("error marshaling request: %w", err)
	}
	return data, nil
}

// attempt performs one request and classifies its failure
func (c *Client) attempt(ctx context.Context, rc *runway.RequestContext, body []byte) (string, *runway.Error) {
	ctx, span := c.tracer.Start(ctx, "completion.attempt", trace.WithAttributes(
		attribute.Int("attempt", rc.Attempts),
	))
	defer span.End()

	content, err := c.do(ctx, rc.APIKey, body)
	if err != nil {
		span.SetAttributes(attribute.String("kind", err.Kind.String()))
		span.RecordError(err.Err)
		span.SetStatus(codes.Error, err.Kind.String())
		return "", err
	}
	return content, nil
}

func (c *Client) do(ctx context.Context, apiKey string, body []byte) (string, *runway.Error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", runway.NewError(runway.KindUnexpected, 0, fmt.Errorf("error creating request: %w", err))
	}
	c.setHeaders(req, apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", runway.NewError(runway.KindTransport, 0, fmt.Errorf("error sending request: %w", err))
	}
	defer resp.Body.Close()
	c.logger.Debug("completion response", "status", resp.StatusCode, "duration", time.Since(start))

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return "", runway.NewError(runway.KindTransport, 0, fmt.Errorf("error reading response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", runway.NewError(runway.KindTransport, 0, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			URL:        url,
			Body:       string(data),
		})
	}

	content, err := decodeContent(data)
	if err != nil {
		return "", runway.NewError(runway.KindDecode, 0, err)
	}
	return content, nil
}

// decodeContent extracts choices[0].message.content
func decodeContent(data []byte) (string, error) {
	var result ChatResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("error parsing response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", errors.New("error parsing response: no choices")
	}
	msg := result.Choices[0].Message
	if msg == nil || msg.Content == nil {
		return "", errors.New("error parsing response: no message content")
	}
	return *msg.Content, nil
}

// setHeaders sets the required headers for OpenRouter API requests
func (c *Client) setHeaders(req *http.Request, apiKey string) {
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")
	if c.referer != "" {
		req.Header.Set("HTTP-Referer", c.referer)
	}
	if c.title != "" {
		req.Header.Set("X-Title", c.title)
	}
}
