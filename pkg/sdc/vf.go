package sdc

import (
	"context"

	"go.uber.org/zap"

	"github.com/adenisiewicz/onapsdk-go/pkg/onap"
)

// Vf is a virtual function resource in the SDC catalog, built from a
// certified VSP's CSAR package.
type Vf struct {
	resource
	Vsp *Vsp
}

// NewVf returns a VF handle. The name defaults to "ONAP-test-VF".
func (c *Client) NewVf(name string, vsp *Vsp) *Vf {
	if name == "" {
		name = "ONAP-test-VF"
	}
	return &Vf{resource: resource{client: c, Name: name, kind: "resources"}, Vsp: vsp}
}

// Exists checks for the VF in the catalog, taking the highest version.
func (f *Vf) Exists(ctx context.Context) (bool, error) {
	entries, err := f.client.listCatalog(ctx, f.kind, "VF")
	if err != nil {
		return false, err
	}
	entry, found := findLatest(entries, f.Name)
	if !found {
		f.client.logger.Info("vf not found in SDC", zap.String("name", f.Name))
		return false, nil
	}
	f.fillFromEntry(entry)
	return true, nil
}

// Create creates the VF from its VSP's CSAR unless it already exists.
func (f *Vf) Create(ctx context.Context) error {
	exists, err := f.Exists(ctx)
	if err != nil {
		return err
	}
	if exists {
		f.client.logger.Warn("vf already created in SDC", zap.String("name", f.Name))
		return nil
	}
	if f.Vsp == nil {
		return &onap.ParameterError{Message: "no VSP given for VF creation"}
	}
	csarUUID, err := f.Vsp.CsarUUID(ctx)
	if err != nil {
		return err
	}
	var details resourceDetails
	err = f.client.rest.DoJSON(ctx, &onap.Request{
		Method: "POST",
		Action: "create Vf",
		URL:    f.client.catalogFrontURL() + "/resources",
		JSON: map[string]any{
			"name":        f.Name,
			"description": "virtual function",
			"csarUUID":    csarUUID,
			"csarVersion": "1.0",
			"vendorName":  f.Vsp.Vendor.Name,
			"categories": []map[string]any{{
				"name":           "Generic",
				"normalizedName": "generic",
				"uniqueId":       "resourceNewCategory.generic",
				"subcategories": []map[string]any{{
					"name":           "Abstract",
					"normalizedName": "abstract",
					"uniqueId":       "resourceNewCategory.generic.abstract",
				}},
			}},
			"componentType": "RESOURCE",
			"resourceType":  "VF",
			"icon":          "defaulticon",
			"tags":          []string{f.Name},
		},
	}, &details)
	if err != nil {
		return err
	}
	f.fillFromDetails(details)
	f.status = StatusDraft
	f.client.logger.Info("vf created in SDC", zap.String("name", f.Name),
		zap.String("uuid", f.identifier))
	return nil
}

// Onboard drives the VF to certified: create the draft, then certify.
func (f *Vf) Onboard(ctx context.Context) error {
	for {
		switch f.status {
		case StatusNone:
			if err := f.Create(ctx); err != nil {
				return err
			}
		case StatusDraft:
			if err := f.Certify(ctx); err != nil {
				return err
			}
		case StatusCertified, StatusDistributed:
			return nil
		default:
			return &onap.StatusError{Resource: "vf " + f.Name,
				Current: string(f.status), Required: "an onboarding status"}
		}
	}
}
