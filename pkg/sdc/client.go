// Package sdc wraps the SDC (Service Design and Creation) APIs: vendor
// and VSP onboarding, VF and Service catalog lifecycle, certification and
// distribution. The onboarding chain a designer walks is
//
//	Vendor -> Vsp -> Vf -> Service
//
// and every type keeps the remote lifecycle state machine honest before
// firing a transition.
package sdc

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/adenisiewicz/onapsdk-go/pkg/config"
	"github.com/adenisiewicz/onapsdk-go/pkg/onap"
)

// Client talks to the SDC frontend and backend APIs.
type Client struct {
	rest   *onap.Client
	fe     string
	be     string
	logger *zap.Logger
}

// NewClient creates an SDC client from settings.
func NewClient(cfg *config.Settings, opts ...onap.Option) *Client {
	options := append([]onap.Option{onap.WithHeaders(onap.SDCCreatorHeaders())}, opts...)
	c := &Client{
		rest:   onap.NewClient("SDC", options...),
		fe:     cfg.SDCFEURL,
		be:     cfg.SDCBEURL,
		logger: zap.NewNop(),
	}
	return c
}

// WithLogger sets the logger used by the client and all resources it
// creates.
func (c *Client) WithLogger(logger *zap.Logger) *Client {
	c.logger = logger
	return c
}

// onboardingURL is the base of the onboarding API (vendors, VSPs).
func (c *Client) onboardingURL() string {
	return c.fe + "/sdc1/feProxy/onboarding-api/v1.0"
}

// catalogFrontURL is the base of the catalog frontend proxy (VFs,
// services, lifecycle actions).
func (c *Client) catalogFrontURL() string {
	return c.fe + "/sdc1/feProxy/rest/v1/catalog"
}

// catalogBackURL is the base of the catalog backend API (listing,
// tosca model download).
func (c *Client) catalogBackURL() string {
	return c.be + "/sdc/v1/catalog"
}

// screenURL lists every catalog object; it is the only endpoint exposing
// the internal uniqueId needed by lifecycle actions.
func (c *Client) screenURL() string {
	return c.fe + "/sdc1/feProxy/rest/v1/screen?excludeTypes=VFCMT&excludeTypes=Configuration"
}

// compareVersions orders SDC version strings such as "1.0" and "2.1".
// Non-numeric segments fall back to string comparison.
func compareVersions(a, b string) int {
	as, bs := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		an, aerr := strconv.Atoi(as[i])
		bn, berr := strconv.Atoi(bs[i])
		if aerr != nil || berr != nil {
			return strings.Compare(as[i], bs[i])
		}
		if an != bn {
			if an < bn {
				return -1
			}
			return 1
		}
	}
	return len(as) - len(bs)
}
