// Package vid declares the maintenance category parameters (owning
// entities, projects, lines of business, platforms) the VID GUI needs
// before they can be referenced in instantiation requests.
package vid

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/adenisiewicz/onapsdk-go/pkg/config"
	"github.com/adenisiewicz/onapsdk-go/pkg/onap"
)

// Client talks to the VID maintenance API.
type Client struct {
	rest   *onap.Client
	base   string
	logger *zap.Logger
}

// NewClient creates a VID client from settings.
func NewClient(cfg *config.Settings, opts ...onap.Option) *Client {
	options := append([]onap.Option{onap.WithHeaders(onap.BaseHeaders())}, opts...)
	return &Client{
		rest:   onap.NewClient("VID", options...),
		base:   cfg.VIDURL,
		logger: zap.NewNop(),
	}
}

// WithLogger sets the logger used by the client.
func (c *Client) WithLogger(logger *zap.Logger) *Client {
	c.logger = logger
	return c
}

// CategoryParameter names one declared VID category parameter value.
type CategoryParameter struct {
	Name string
}

type categoryOptions struct {
	Options []string `json:"options"`
}

func (c *Client) declare(ctx context.Context, kind, name string) (*CategoryParameter, error) {
	err := c.rest.DoJSON(ctx, &onap.Request{
		Method: "POST",
		Action: fmt.Sprintf("declare VID %s %s", kind, name),
		URL:    fmt.Sprintf("%s/vid/maintenance/category_parameter/%s", c.base, kind),
		JSON:   categoryOptions{Options: []string{name}},
	}, nil)
	if err != nil {
		return nil, err
	}
	c.logger.Info("VID category parameter declared",
		zap.String("kind", kind), zap.String("name", name))
	return &CategoryParameter{Name: name}, nil
}

// CreateOwningEntity declares an owning entity name.
func (c *Client) CreateOwningEntity(ctx context.Context, name string) (*CategoryParameter, error) {
	return c.declare(ctx, "owningEntity", name)
}

// CreateProject declares a project name.
func (c *Client) CreateProject(ctx context.Context, name string) (*CategoryParameter, error) {
	return c.declare(ctx, "project", name)
}

// CreateLineOfBusiness declares a line of business name.
func (c *Client) CreateLineOfBusiness(ctx context.Context, name string) (*CategoryParameter, error) {
	return c.declare(ctx, "lineOfBusiness", name)
}

// CreatePlatform declares a platform name.
func (c *Client) CreatePlatform(ctx context.Context, name string) (*CategoryParameter, error) {
	return c.declare(ctx, "platform", name)
}
