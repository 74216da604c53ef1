// Package msb wraps the multicloud-k8s plugin reachable through MSB:
// resource bundle definitions, instantiation profiles and cluster
// connectivity info.
package msb

import (
	"go.uber.org/zap"

	"github.com/adenisiewicz/onapsdk-go/pkg/config"
	"github.com/adenisiewicz/onapsdk-go/pkg/onap"
)

// Client talks to the multicloud-k8s API through MSB.
type Client struct {
	rest   *onap.Client
	base   string
	logger *zap.Logger
}

// NewClient creates an MSB client from settings.
func NewClient(cfg *config.Settings, opts ...onap.Option) *Client {
	options := append([]onap.Option{onap.WithHeaders(onap.BaseHeaders())}, opts...)
	return &Client{
		rest:   onap.NewClient("MSB", options...),
		base:   cfg.MSBURL,
		logger: zap.NewNop(),
	}
}

// WithLogger sets the logger used by the client.
func (c *Client) WithLogger(logger *zap.Logger) *Client {
	c.logger = logger
	return c
}

func (c *Client) multicloudURL() string {
	return c.base + "/api/multicloud-k8s/v1/v1"
}
