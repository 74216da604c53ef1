package sdc

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/adenisiewicz/onapsdk-go/pkg/onap"
)

// Vendor is an SDC vendor license model. Its lifecycle is the shortest
// of the onboarding chain: Draft -> Certified.
type Vendor struct {
	client *Client

	Name string

	identifier string
	version    string
	status     Status
}

// NewVendor returns a vendor handle. The name defaults to
// "Generic-Vendor" as the SDC GUI does.
func (c *Client) NewVendor(name string) *Vendor {
	if name == "" {
		name = "Generic-Vendor"
	}
	return &Vendor{client: c, Name: name}
}

type vendorListEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type itemVersion struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	State  struct {
		Dirty bool `json:"dirty"`
	} `json:"state"`
}

type resultsPage[T any] struct {
	Results []T `json:"results"`
}

type itemCreateResponse struct {
	ItemID  string      `json:"itemId"`
	Version itemVersion `json:"version"`
}

// Vendors lists every vendor license model known to SDC.
func (c *Client) Vendors(ctx context.Context) ([]*Vendor, error) {
	var page resultsPage[vendorListEntry]
	err := c.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: "get Vendors",
		URL:    c.onboardingURL() + "/vendor-license-models",
	}, &page)
	if err != nil {
		return nil, err
	}
	vendors := make([]*Vendor, 0, len(page.Results))
	for _, entry := range page.Results {
		vendors = append(vendors, &Vendor{client: c, Name: entry.Name, identifier: entry.ID})
	}
	return vendors, nil
}

// Exists checks whether the vendor is present in SDC and, when it is,
// refreshes identifier, version and status from the latest item version.
func (v *Vendor) Exists(ctx context.Context) (bool, error) {
	vendors, err := v.client.Vendors(ctx)
	if err != nil {
		return false, err
	}
	for _, other := range vendors {
		if other.Name != v.Name {
			continue
		}
		v.identifier = other.identifier
		if err := v.loadLatestVersion(ctx); err != nil {
			return false, err
		}
		return true, nil
	}
	v.client.logger.Info("vendor not found in SDC", zap.String("name", v.Name))
	return false, nil
}

func (v *Vendor) loadLatestVersion(ctx context.Context) error {
	var page resultsPage[itemVersion]
	err := v.client.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: fmt.Sprintf("get Vendor %s versions", v.Name),
		URL:    fmt.Sprintf("%s/items/%s/versions", v.client.onboardingURL(), v.identifier),
	}, &page)
	if err != nil {
		return err
	}
	if len(page.Results) == 0 {
		return &onap.InvalidResponseError{Service: "SDC", Action: "get Vendor versions",
			Err: fmt.Errorf("no versions returned for item %s", v.identifier)}
	}
	latest := page.Results[len(page.Results)-1]
	v.version = latest.ID
	v.status = Status(latest.Status)
	return nil
}

// Create creates the vendor in SDC unless it already exists.
func (v *Vendor) Create(ctx context.Context) error {
	exists, err := v.Exists(ctx)
	if err != nil {
		return err
	}
	if exists {
		v.client.logger.Warn("vendor already created in SDC", zap.String("name", v.Name))
		return nil
	}
	var created itemCreateResponse
	err = v.client.rest.DoJSON(ctx, &onap.Request{
		Method: "POST",
		Action: "create Vendor",
		URL:    v.client.onboardingURL() + "/vendor-license-models",
		JSON: map[string]string{
			"vendorName":  v.Name,
			"description": "vendor",
			"iconRef":     "icon",
		},
	}, &created)
	if err != nil {
		return err
	}
	v.identifier = created.ItemID
	v.version = created.Version.ID
	v.status = Status(created.Version.Status)
	v.client.logger.Info("vendor created in SDC", zap.String("name", v.Name),
		zap.String("id", v.identifier))
	return nil
}

// Submit certifies the vendor. Submitting an already certified vendor is
// a no-op.
func (v *Vendor) Submit(ctx context.Context) error {
	status, err := v.Status(ctx)
	if err != nil {
		return err
	}
	if status == StatusCertified {
		v.client.logger.Warn("vendor already certified", zap.String("name", v.Name))
		return nil
	}
	if v.identifier == "" {
		v.client.logger.Warn("vendor is not created in SDC, nothing to submit",
			zap.String("name", v.Name))
		return nil
	}
	err = v.client.rest.DoJSON(ctx, &onap.Request{
		Method: "PUT",
		Action: "submit Vendor",
		URL: fmt.Sprintf("%s/vendor-license-models/%s/versions/%s/actions",
			v.client.onboardingURL(), v.identifier, v.version),
		JSON: map[string]string{"action": actionSubmit},
	}, nil)
	if err != nil {
		return err
	}
	v.status = StatusCertified
	return nil
}

// Onboard drives the vendor to the Certified state, creating it first if
// needed.
func (v *Vendor) Onboard(ctx context.Context) error {
	status, err := v.Status(ctx)
	if err != nil {
		return err
	}
	if status == StatusNone {
		if err := v.Create(ctx); err != nil {
			return err
		}
	}
	return v.Submit(ctx)
}

// Identifier returns the vendor item id, loading it from SDC when not
// known yet.
func (v *Vendor) Identifier(ctx context.Context) (string, error) {
	if v.identifier == "" {
		if _, err := v.Exists(ctx); err != nil {
			return "", err
		}
	}
	return v.identifier, nil
}

// Version returns the vendor's latest version id.
func (v *Vendor) Version(ctx context.Context) (string, error) {
	if v.version == "" {
		if _, err := v.Exists(ctx); err != nil {
			return "", err
		}
	}
	return v.version, nil
}

// Status returns the vendor status, loading it lazily.
func (v *Vendor) Status(ctx context.Context) (Status, error) {
	if v.status == StatusNone {
		if _, err := v.Exists(ctx); err != nil {
			return StatusNone, err
		}
	}
	return v.status, nil
}
