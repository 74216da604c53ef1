// Package clamp drives CLAMP control loops: loop templates, loop
// instances built from them, policy configuration and deployment of the
// loop microservice to DCAE.
package clamp

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/adenisiewicz/onapsdk-go/pkg/config"
	"github.com/adenisiewicz/onapsdk-go/pkg/onap"
	"github.com/adenisiewicz/onapsdk-go/pkg/sdc"
)

// Client talks to the CLAMP backend. CLAMP installations usually demand
// a client TLS certificate; pass onap.WithClientCertificate to supply
// one.
type Client struct {
	rest         *onap.Client
	base         string
	pollInterval time.Duration
	pollTimeout  time.Duration
	logger       *zap.Logger
}

// NewClient creates a CLAMP client from settings.
func NewClient(cfg *config.Settings, opts ...onap.Option) *Client {
	options := append([]onap.Option{onap.WithHeaders(onap.BaseHeaders())}, opts...)
	return &Client{
		rest:         onap.NewClient("CLAMP", options...),
		base:         cfg.ClampURL,
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

func (c *Client) baseURL() string {
	return c.base + "/restservices/clds/v2"
}

func (c *Client) loopURL(parts ...any) string {
	url := c.baseURL() + "/loop"
	for _, part := range parts {
		url = fmt.Sprintf("%s/%v", url, part)
	}
	return url
}

type loopTemplate struct {
	Name         string `json:"name"`
	ModelService struct {
		ServiceDetails struct {
			Name string `json:"name"`
		} `json:"serviceDetails"`
	} `json:"modelService"`
}

// LoopTemplateName returns the name of the loop template generated for
// the given SDC service. Distribution of a service with an attached
// blueprint artifact is what makes the template appear.
func (c *Client) LoopTemplateName(ctx context.Context, service *sdc.Service) (string, error) {
	var templates []loopTemplate
	err := c.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: "get loop templates",
		URL:    c.baseURL() + "/templates/",
	}, &templates)
	if err != nil {
		return "", err
	}
	for _, template := range templates {
		if template.ModelService.ServiceDetails.Name == service.Name {
			return template.Name, nil
		}
	}
	return "", fmt.Errorf("no loop template for service %q: %w", service.Name, onap.ErrNotFound)
}

// TemplateExists reports whether a loop template exists for the service.
func (c *Client) TemplateExists(ctx context.Context, service *sdc.Service) bool {
	_, err := c.LoopTemplateName(ctx, service)
	return err == nil
}

type toscaPolicyModel struct {
	PolicyAcronym string `json:"policyAcronym"`
}

// PoliciesPresent checks that CLAMP knows at least required policy
// models and that one of them carries the given acronym.
func (c *Client) PoliciesPresent(ctx context.Context, policyName string, required int) (bool, error) {
	var policies []toscaPolicyModel
	err := c.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: "get policy tosca models",
		URL:    c.baseURL() + "/policyToscaModels/",
	}, &policies)
	if err != nil {
		return false, err
	}
	if len(policies) < required {
		return false, nil
	}
	for _, policy := range policies {
		if policy.PolicyAcronym == policyName {
			return true, nil
		}
	}
	return false, nil
}
