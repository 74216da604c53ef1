// Package nbi wraps the ONAP external API (NBI): service specifications,
// the service inventory view and TMF 641 service orders.
package nbi

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/adenisiewicz/onapsdk-go/pkg/config"
	"github.com/adenisiewicz/onapsdk-go/pkg/onap"
)

// Client talks to the NBI API.
type Client struct {
	rest         *onap.Client
	base         string
	apiVersion   string
	pollInterval time.Duration
	pollTimeout  time.Duration
	logger       *zap.Logger
}

// NewClient creates an NBI client from settings.
func NewClient(cfg *config.Settings, opts ...onap.Option) *Client {
	options := append([]onap.Option{onap.WithHeaders(onap.BaseHeaders())}, opts...)
	return &Client{
		rest:         onap.NewClient("NBI", options...),
		base:         cfg.NBIURL,
		apiVersion:   "v4",
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

func (c *Client) apiURL() string {
	return fmt.Sprintf("%s/nbi/api/%s", c.base, c.apiVersion)
}

// StatusOK probes the NBI health endpoint.
func (c *Client) StatusOK(ctx context.Context) bool {
	_, err := c.rest.Do(ctx, &onap.Request{
		Method: "GET",
		Action: "check NBI status",
		URL:    c.apiURL() + "/status",
	})
	if err != nil {
		c.logger.Error("NBI status check failed", zap.Error(err))
		return false
	}
	return true
}

// ServiceSpecification is an SDC service model as NBI presents it.
type ServiceSpecification struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	InvariantUUID      string `json:"invariantUUID"`
	Category           string `json:"category"`
	DistributionStatus string `json:"distributionStatus"`
	Version            string `json:"version"`
	LifecycleStatus    string `json:"lifecycleStatus"`
}

// ServiceSpecifications lists the service specifications NBI knows.
func (c *Client) ServiceSpecifications(ctx context.Context) ([]ServiceSpecification, error) {
	var specifications []ServiceSpecification
	err := c.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: "get service specifications",
		URL:    c.apiURL() + "/serviceSpecification",
	}, &specifications)
	return specifications, err
}

// ServiceSpecificationByID fetches one service specification.
func (c *Client) ServiceSpecificationByID(ctx context.Context, id string) (*ServiceSpecification, error) {
	specification := &ServiceSpecification{}
	err := c.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: fmt.Sprintf("get service specification %s", id),
		URL:    c.apiURL() + "/serviceSpecification/" + id,
	}, specification)
	if err != nil {
		return nil, err
	}
	return specification, nil
}

// Service is an entry of the NBI service inventory.
type Service struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ServiceType string `json:"serviceType"`
	Href        string `json:"href"`
	RelatedParty struct {
		ID   string `json:"id"`
		Role string `json:"role"`
	} `json:"relatedParty"`
}

// Services lists the service inventory.
func (c *Client) Services(ctx context.Context) ([]Service, error) {
	var services []Service
	err := c.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: "get service inventory",
		URL:    c.apiURL() + "/service",
	}, &services)
	return services, err
}
