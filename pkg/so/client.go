// Package so wraps the SO (Service Orchestrator) northbound API:
// a'la carte instantiation of services, VNFs and VF modules, deletion
// requests, and orchestration request polling.
package so

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/adenisiewicz/onapsdk-go/pkg/config"
	"github.com/adenisiewicz/onapsdk-go/pkg/onap"
)

// Client talks to the SO northbound API.
type Client struct {
	rest         *onap.Client
	base         string
	apiVersion   string
	pollInterval time.Duration
	pollTimeout  time.Duration
	logger       *zap.Logger
}

// NewClient creates an SO client from settings.
func NewClient(cfg *config.Settings, opts ...onap.Option) *Client {
	options := append([]onap.Option{onap.WithHeaders(onap.SOHeaders())}, opts...)
	return &Client{
		rest:         onap.NewClient("SO", options...),
		base:         cfg.SOURL,
		apiVersion:   cfg.SOAPIVersion,
		pollInterval: cfg.PollInterval,
		pollTimeout:  cfg.PollTimeout,
		logger:       zap.NewNop(),
	}
}

// WithLogger sets the logger used by the client.
func (c *Client) WithLogger(logger *zap.Logger) *Client {
	c.logger = logger
	return c
}

func (c *Client) orchestrationRequestsURL() string {
	return fmt.Sprintf("%s/onap/so/infra/orchestrationRequests/%s", c.base, c.apiVersion)
}

func (c *Client) serviceInstantiationURL() string {
	return fmt.Sprintf("%s/onap/so/infra/serviceInstantiation/%s/serviceInstances",
		c.base, c.apiVersion)
}

// OrchestrationRequest tracks one SO request by id.
type OrchestrationRequest struct {
	client *Client

	RequestID string
}

// NewOrchestrationRequest returns a handle for an existing request id.
func (c *Client) NewOrchestrationRequest(requestID string) *OrchestrationRequest {
	return &OrchestrationRequest{client: c, RequestID: requestID}
}

type orchestrationRequestDetails struct {
	Request struct {
		RequestID     string `json:"requestId"`
		RequestScope  string `json:"requestScope"`
		RequestType   string `json:"requestType"`
		RequestStatus struct {
			RequestState  string `json:"requestState"`
			StatusMessage string `json:"statusMessage"`
		} `json:"requestStatus"`
	} `json:"request"`
}

// Status fetches the request's current state.
func (r *OrchestrationRequest) Status(ctx context.Context) (InstantiationStatus, error) {
	var details orchestrationRequestDetails
	err := r.client.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: fmt.Sprintf("check request %s status", r.RequestID),
		URL:    fmt.Sprintf("%s/%s", r.client.orchestrationRequestsURL(), r.RequestID),
	}, &details)
	if err != nil {
		return StatusUnknown, err
	}
	return ParseInstantiationStatus(details.Request.RequestStatus.RequestState), nil
}

// Finished reports whether the request reached a terminal state.
func (r *OrchestrationRequest) Finished(ctx context.Context) (bool, error) {
	status, err := r.Status(ctx)
	if err != nil {
		return false, err
	}
	return status.Finished(), nil
}

// WaitForFinish polls the request on the configured interval until it
// reaches a terminal state, the poll timeout expires or ctx is done.
func (r *OrchestrationRequest) WaitForFinish(ctx context.Context) (InstantiationStatus, error) {
	if r.client.pollTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.client.pollTimeout)
		defer cancel()
	}
	ticker := time.NewTicker(r.client.pollInterval)
	defer ticker.Stop()
	for {
		status, err := r.Status(ctx)
		if err != nil {
			return StatusUnknown, err
		}
		if status.Finished() {
			r.client.logger.Info("orchestration request finished",
				zap.String("request_id", r.RequestID), zap.String("status", string(status)))
			return status, nil
		}
		r.client.logger.Debug("orchestration request still running",
			zap.String("request_id", r.RequestID), zap.String("status", string(status)))
		select {
		case <-ctx.Done():
			return StatusUnknown, fmt.Errorf("waiting for request %s: %w", r.RequestID, ctx.Err())
		case <-ticker.C:
		}
	}
}
