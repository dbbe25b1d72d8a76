// Package client talks to the registration service over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/judydsp/provabruno/internal/registration/metrics"
	"github.com/judydsp/provabruno/internal/registration/models"
)

// RegisterPath is the account creation endpoint.
const RegisterPath = "/usuarios"

const maxResponseBytes = 64 << 10

// Client sends registration requests. It never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout bounds each request. Zero keeps the default of no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// New creates a Client for the service rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     slog.New(slog.DiscardHandler),
		tracer:     otel.Tracer("github.com/judydsp/provabruno/internal/registration/client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// Register performs exactly one POST to RegisterPath. Failures are returned
// as *models.SubmissionError classified as Conflict, ServerFault or
// NetworkFailure.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error) {
	ctx, span := c.tracer.Start(ctx, "registration.register", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	resp, err := c.do(ctx, req)
	kind := models.KindOf(err)
	c.metrics.ObserveSubmission(kind)
	span.SetAttributes(attribute.String("registration.outcome", string(kind)))

	if err != nil {
		span.SetStatus(codes.Error, string(kind))
		c.logger.WarnContext(ctx, "registration request failed",
			"outcome", string(kind),
			"error", err.Error(),
		)
		return nil, err
	}
	c.logger.InfoContext(ctx, "registration request succeeded")
	return resp, nil
}

func (c *Client) do(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, models.NewSubmissionError(models.ServerFault, 0, fmt.Errorf("encode request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+RegisterPath, bytes.NewReader(body))
	if err != nil {
		return nil, models.NewSubmissionError(models.ServerFault, 0, fmt.Errorf("build request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, models.NewSubmissionError(models.NetworkFailure, 0, err)
	}
	defer httpResp.Body.Close()

	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("http.response.status_code", httpResp.StatusCode))
	parsed := decodeResponse(httpResp.Body)

	kind := models.ClassifyStatus(httpResp.StatusCode)
	if kind != models.KindNone {
		se := models.NewSubmissionError(kind, httpResp.StatusCode, nil)
		se.Mensagem = parsed.Mensagem
		return nil, se
	}
	return &parsed, nil
}

// decodeResponse reads an optional JSON body. Missing or malformed bodies
// yield an empty response.
func decodeResponse(r io.Reader) models.RegisterResponse {
	var out models.RegisterResponse
	raw, err := io.ReadAll(io.LimitReader(r, maxResponseBytes))
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		return out
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return models.RegisterResponse{}
	}
	return out
}
