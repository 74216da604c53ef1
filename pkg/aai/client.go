// Package aai wraps the AAI (Active and Available Inventory) REST API:
// cloud infrastructure (cloud regions, tenants), business objects
// (customers, subscriptions, owning entities) and the instantiated
// service/VNF/VF-module inventory, including the relationship-list
// edges connecting them.
package aai

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/adenisiewicz/onapsdk-go/pkg/config"
	"github.com/adenisiewicz/onapsdk-go/pkg/onap"
)

// Client talks to the AAI REST API.
type Client struct {
	rest       *onap.Client
	base       string
	apiVersion string
	logger     *zap.Logger
}

// NewClient creates an AAI client from settings.
func NewClient(cfg *config.Settings, opts ...onap.Option) *Client {
	options := append([]onap.Option{onap.WithHeaders(onap.AAIHeaders())}, opts...)
	return &Client{
		rest:       onap.NewClient("AAI", options...),
		base:       cfg.AAIURL,
		apiVersion: cfg.AAIAPIVersion,
		logger:     zap.NewNop(),
	}
}

// WithLogger sets the logger used by the client.
func (c *Client) WithLogger(logger *zap.Logger) *Client {
	c.logger = logger
	return c
}

func (c *Client) rootURL() string {
	return fmt.Sprintf("%s/aai/%s", c.base, c.apiVersion)
}

// absoluteURL turns an AAI related-link (which starts at /aai/...) into
// a full URL.
func (c *Client) absoluteURL(relatedLink string) string {
	return c.base + relatedLink
}
