// Package onap provides the HTTP core shared by every ONAP service client.
//
// All service packages (sdc, aai, so, clamp, ...) funnel their exchanges
// through Client, which owns retry, circuit breaking, logging and metrics.
package onap

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"net"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// RetryConfig defines retry behavior for a client.
type RetryConfig struct {
	MaxRetries    int
	BaseDelay     time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
	JitterEnabled bool
}

// DefaultRetryConfig mirrors the retry budget ONAP deployments are tuned
// for: up to 10 attempts with a 300ms base delay.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    10,
		BaseDelay:     300 * time.Millisecond,
		MaxDelay:      30 * time.Second,
		BackoffFactor: 2.0,
		JitterEnabled: true,
	}
}

// Request describes a single exchange with an ONAP service.
type Request struct {
	// Method is the HTTP method (GET, POST, PUT, PATCH, DELETE).
	Method string
	// Action names the operation for logs, e.g. "create Vendor".
	Action string
	// URL is the full request URL.
	URL string
	// Headers are merged over the client defaults.
	Headers map[string]string
	// Body is the raw request body. Kept as bytes so retries can replay it.
	Body []byte
	// JSON, when non-nil, is marshaled into Body with an application/json
	// content type.
	JSON any
}

// Client is the HTTP core every ONAP service wrapper is built on.
type Client struct {
	service string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	retry   RetryConfig
	headers map[string]string
	logger  *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithHeaders sets the default header set sent with every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) { c.headers = headers }
}

// WithRetry overrides the retry configuration.
func WithRetry(rc RetryConfig) Option {
	return func(c *Client) { c.retry = rc }
}

// WithLogger sets the logger. Defaults to zap.NewNop.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithTLSVerification enables server certificate verification, which is
// off by default because lab ONAP installs ship self-signed certificates.
func WithTLSVerification() Option {
	return func(c *Client) {
		if tr, ok := c.http.Transport.(*http.Transport); ok {
			tr.TLSClientConfig.InsecureSkipVerify = false
		}
	}
}

// WithClientCertificate attaches a client TLS certificate, required by
// CLAMP deployments fronted by AAF.
func WithClientCertificate(cert tls.Certificate) Option {
	return func(c *Client) {
		if tr, ok := c.http.Transport.(*http.Transport); ok {
			tr.TLSClientConfig.Certificates = []tls.Certificate{cert}
		}
	}
}

// NewClient creates a client for one ONAP service. The service name is
// used in logs, metrics and error messages.
func NewClient(service string, opts ...Option) *Client {
	c := &Client{
		service: service,
		http: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 50,
				IdleConnTimeout:     90 * time.Second,
				TLSClientConfig:     &tls.Config{InsecureSkipVerify: true},
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
			},
		},
		retry:   DefaultRetryConfig(),
		headers: BaseHeaders(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    service,
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("circuit breaker state change",
				zap.String("service", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
	return c
}

// Service returns the service nickname the client was created for.
func (c *Client) Service() string { return c.service }

// Do sends the request and returns the response body. Responses outside
// the 2xx range are returned as *APIError. Connection errors and 5xx
// responses are retried with exponential backoff; 4xx responses fail
// immediately.
func (c *Client) Do(ctx context.Context, req *Request) ([]byte, error) {
	body := req.Body
	if req.JSON != nil {
		data, err := json.Marshal(req.JSON)
		if err != nil {
			return nil, fmt.Errorf("[%s][%s] marshal request body: %w", c.service, req.Action, err)
		}
		body = data
	}

	result, err := c.breaker.Execute(func() (any, error) {
		return c.doWithRetry(ctx, req, body)
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

// DoJSON sends the request and decodes the JSON response body into out.
// A nil out discards the body.
func (c *Client) DoJSON(ctx context.Context, req *Request, out any) error {
	data, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.logger.Error("failed to decode JSON response",
			zap.String("service", c.service),
			zap.String("action", req.Action),
			zap.Error(err))
		return &InvalidResponseError{Service: c.service, Action: req.Action, Err: err}
	}
	return nil
}

func (c *Client) doWithRetry(ctx context.Context, req *Request, body []byte) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.retry.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.backoffDelay(attempt)):
			}
		}

		data, retryable, err := c.doOnce(ctx, req, body)
		if err == nil {
			return data, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
		c.logger.Warn("request failed, retrying",
			zap.String("service", c.service),
			zap.String("action", req.Action),
			zap.Int("attempt", attempt+1),
			zap.Error(err))
	}
	return nil, lastErr
}

// doOnce performs a single exchange. The second return value reports
// whether the failure is worth retrying.
func (c *Client) doOnce(ctx context.Context, req *Request, body []byte) ([]byte, bool, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, reader)
	if err != nil {
		return nil, false, fmt.Errorf("[%s][%s] build request: %w", c.service, req.Action, err)
	}
	for k, v := range c.headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		if v == "" {
			httpReq.Header.Del(k)
			continue
		}
		httpReq.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		recordRequest(c.service, req.Method, "error", time.Since(start))
		return nil, true, fmt.Errorf("[%s][%s] perform request: %w", c.service, req.Action, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	recordRequest(c.service, req.Method, fmt.Sprint(resp.StatusCode), time.Since(start))
	if err != nil {
		return nil, true, fmt.Errorf("[%s][%s] read response: %w", c.service, req.Action, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{
			Service:    c.service,
			Action:     req.Action,
			StatusCode: resp.StatusCode,
			Body:       string(data),
		}
		c.logger.Error("request failed",
			zap.String("service", c.service),
			zap.String("action", req.Action),
			zap.String("url", req.URL),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", data))
		return nil, resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests, apiErr
	}

	c.logger.Info("request ok",
		zap.String("service", c.service),
		zap.String("action", req.Action),
		zap.Int("status", resp.StatusCode))
	c.logger.Debug("exchange details",
		zap.String("service", c.service),
		zap.String("action", req.Action),
		zap.String("url", req.URL),
		zap.ByteString("request", body),
		zap.ByteString("response", data))
	return data, false, nil
}

func (c *Client) backoffDelay(attempt int) time.Duration {
	delay := float64(c.retry.BaseDelay)
	for i := 1; i < attempt; i++ {
		delay *= c.retry.BackoffFactor
	}
	if max := float64(c.retry.MaxDelay); delay > max {
		delay = max
	}
	if c.retry.JitterEnabled {
		delay += delay * 0.1 * rand.Float64()
	}
	return time.Duration(delay)
}

// MultipartUpload builds a multipart/form-data body with a single file
// part, used by SDC package upload and CDS blueprint operations. It
// returns the encoded body and the content type to send with it.
func MultipartUpload(field, filename string, content []byte) ([]byte, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return nil, "", fmt.Errorf("create multipart field %q: %w", field, err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, "", fmt.Errorf("write multipart content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("finish multipart body: %w", err)
	}
	return buf.Bytes(), writer.FormDataContentType(), nil
}
