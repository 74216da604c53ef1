package sdc

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/adenisiewicz/onapsdk-go/pkg/onap"
)

// Vsp is a vendor software product. Its onboarding walks
//
//	Draft -> Uploaded -> Validated -> Committed -> Certified
//
// and once certified a CSAR package is cut for the catalog. SDC never
// reports the intermediate states directly; DeriveStatus reconstructs
// them from the item, version and product detail endpoints.
type Vsp struct {
	client *Client

	Name   string
	Vendor *Vendor
	// Package is the heat/helm zip uploaded as onboarding candidate.
	Package []byte

	identifier string
	version    string
	status     Status
	csarUUID   string
}

// NewVsp returns a VSP handle. The name defaults to "ONAP-test-VSP".
func (c *Client) NewVsp(name string, vendor *Vendor) *Vsp {
	if name == "" {
		name = "ONAP-test-VSP"
	}
	return &Vsp{client: c, Name: name, Vendor: vendor}
}

type vspListEntry struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	VendorName string `json:"vendorName"`
}

type vspDetails struct {
	VendorName         string         `json:"vendorName"`
	NetworkPackageName string         `json:"networkPackageName"`
	ValidationData     map[string]any `json:"validationData"`
}

// Vsps lists every vendor software product known to SDC.
func (c *Client) Vsps(ctx context.Context) ([]*Vsp, error) {
	var page resultsPage[vspListEntry]
	err := c.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: "get Vsps",
		URL:    c.onboardingURL() + "/vendor-software-products",
	}, &page)
	if err != nil {
		return nil, err
	}
	vsps := make([]*Vsp, 0, len(page.Results))
	for _, entry := range page.Results {
		vsps = append(vsps, &Vsp{
			client:     c,
			Name:       entry.Name,
			Vendor:     &Vendor{client: c, Name: entry.VendorName},
			identifier: entry.ID,
		})
	}
	return vsps, nil
}

// Exists checks whether the VSP is present in SDC, refreshing identifier,
// version and derived status when it is.
func (v *Vsp) Exists(ctx context.Context) (bool, error) {
	vsps, err := v.client.Vsps(ctx)
	if err != nil {
		return false, err
	}
	for _, other := range vsps {
		if other.Name != v.Name {
			continue
		}
		v.identifier = other.identifier
		if v.Vendor == nil {
			v.Vendor = other.Vendor
		}
		if err := v.loadLatestVersion(ctx); err != nil {
			return false, err
		}
		if err := v.DeriveStatus(ctx); err != nil {
			return false, err
		}
		return true, nil
	}
	v.client.logger.Info("vsp not found in SDC", zap.String("name", v.Name))
	return false, nil
}

func (v *Vsp) loadLatestVersion(ctx context.Context) error {
	var page resultsPage[itemVersion]
	err := v.client.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: fmt.Sprintf("get Vsp %s versions", v.Name),
		URL:    fmt.Sprintf("%s/items/%s/versions", v.client.onboardingURL(), v.identifier),
	}, &page)
	if err != nil {
		return err
	}
	if len(page.Results) == 0 {
		return &onap.InvalidResponseError{Service: "SDC", Action: "get Vsp versions",
			Err: fmt.Errorf("no versions returned for item %s", v.identifier)}
	}
	v.version = page.Results[len(page.Results)-1].ID
	return nil
}

// Create creates the VSP in SDC unless it already exists. The vendor
// must exist and be certified first.
func (v *Vsp) Create(ctx context.Context) error {
	if v.Vendor == nil {
		return &onap.ParameterError{Message: "no vendor given for VSP creation"}
	}
	exists, err := v.Exists(ctx)
	if err != nil {
		return err
	}
	if exists {
		v.client.logger.Warn("vsp already created in SDC", zap.String("name", v.Name))
		return nil
	}
	vendorID, err := v.Vendor.Identifier(ctx)
	if err != nil {
		return err
	}
	var created itemCreateResponse
	err = v.client.rest.DoJSON(ctx, &onap.Request{
		Method: "POST",
		Action: "create Vsp",
		URL:    v.client.onboardingURL() + "/vendor-software-products",
		JSON: map[string]any{
			"name":             v.Name,
			"description":      "vendor software product",
			"icon":             "icon",
			"category":         "resourceNewCategory.generic",
			"subCategory":      "resourceNewCategory.generic.abstract",
			"vendorName":       v.Vendor.Name,
			"vendorId":         vendorID,
			"licensingVersion": "",
			"licensingData":    map[string]any{},
			"onboardingMethod": "NetworkPackage",
		},
	}, &created)
	if err != nil {
		return err
	}
	v.identifier = created.ItemID
	v.version = created.Version.ID
	v.status = StatusDraft
	v.client.logger.Info("vsp created in SDC", zap.String("name", v.Name),
		zap.String("id", v.identifier))
	return nil
}

func (v *Vsp) productURL() string {
	return fmt.Sprintf("%s/vendor-software-products/%s/versions/%s",
		v.client.onboardingURL(), v.identifier, v.version)
}

// UploadPackage uploads the onboarding zip. The VSP must be in Draft.
func (v *Vsp) UploadPackage(ctx context.Context, pkg []byte) error {
	if err := v.requireStatus(ctx, StatusDraft, "upload package"); err != nil {
		return err
	}
	if len(pkg) == 0 {
		return &onap.ParameterError{Message: "no package given for VSP upload"}
	}
	body, contentType, err := onap.MultipartUpload("upload", v.Name+".zip", pkg)
	if err != nil {
		return err
	}
	err = v.client.rest.DoJSON(ctx, &onap.Request{
		Method:  "POST",
		Action:  "upload package for Vsp",
		URL:     v.productURL() + "/orchestration-template-candidate",
		Body:    body,
		Headers: map[string]string{"Content-Type": contentType, "Accept-Encoding": "gzip, deflate"},
	}, nil)
	if err != nil {
		return err
	}
	v.status = StatusUploaded
	return nil
}

// Validate processes the uploaded candidate. The VSP must be Uploaded.
func (v *Vsp) Validate(ctx context.Context) error {
	if err := v.requireStatus(ctx, StatusUploaded, "validate"); err != nil {
		return err
	}
	var result struct {
		Status string `json:"status"`
	}
	err := v.client.rest.DoJSON(ctx, &onap.Request{
		Method: "PUT",
		Action: "validate Vsp artifacts",
		URL:    v.productURL() + "/orchestration-template-candidate/process",
	}, &result)
	if err != nil {
		return err
	}
	if result.Status != "Success" {
		return &onap.InvalidResponseError{Service: "SDC", Action: "validate Vsp artifacts",
			Err: fmt.Errorf("validation returned status %q", result.Status)}
	}
	v.status = StatusValidated
	return nil
}

// Commit commits the validated candidate.
func (v *Vsp) Commit(ctx context.Context) error {
	if err := v.requireStatus(ctx, StatusValidated, "commit"); err != nil {
		return err
	}
	if err := v.itemAction(ctx, actionCommit); err != nil {
		return err
	}
	v.status = StatusCommitted
	return nil
}

// Submit certifies the committed VSP. Submitting an already certified
// VSP is a no-op.
func (v *Vsp) Submit(ctx context.Context) error {
	status, err := v.Status(ctx)
	if err != nil {
		return err
	}
	if status == StatusCertified {
		v.client.logger.Warn("vsp already certified", zap.String("name", v.Name))
		return nil
	}
	if err := v.requireStatus(ctx, StatusCommitted, "submit"); err != nil {
		return err
	}
	if err := v.itemAction(ctx, actionSubmit); err != nil {
		return err
	}
	v.status = StatusCertified
	return nil
}

// CreateCSAR cuts the CSAR package of a certified VSP and records its id.
func (v *Vsp) CreateCSAR(ctx context.Context) error {
	if err := v.requireStatus(ctx, StatusCertified, "create CSAR package"); err != nil {
		return err
	}
	var result struct {
		PackageID string `json:"packageId"`
	}
	err := v.client.rest.DoJSON(ctx, &onap.Request{
		Method: "PUT",
		Action: "create CSAR package for Vsp",
		URL: fmt.Sprintf("%s/items/%s/versions/%s/actions",
			v.client.onboardingURL(), v.identifier, v.version),
		JSON: map[string]string{"action": actionCreatePackage},
	}, &result)
	if err != nil {
		return err
	}
	v.csarUUID = result.PackageID
	return nil
}

func (v *Vsp) itemAction(ctx context.Context, action string) error {
	return v.client.rest.DoJSON(ctx, &onap.Request{
		Method: "PUT",
		Action: fmt.Sprintf("%s Vsp", action),
		URL: fmt.Sprintf("%s/items/%s/versions/%s/actions",
			v.client.onboardingURL(), v.identifier, v.version),
		JSON: map[string]string{"action": action},
	}, nil)
}

func (v *Vsp) requireStatus(ctx context.Context, required Status, op string) error {
	status, err := v.Status(ctx)
	if err != nil {
		return err
	}
	if status != required {
		return &onap.StatusError{Resource: fmt.Sprintf("vsp %s (%s)", v.Name, op),
			Current: string(status), Required: string(required)}
	}
	return nil
}

// Onboard drives the VSP through its whole chain, ending certified with
// a CSAR package created. Create requires a vendor, upload requires the
// Package bytes.
func (v *Vsp) Onboard(ctx context.Context) error {
	for {
		status, err := v.Status(ctx)
		if err != nil {
			return err
		}
		switch status {
		case StatusNone:
			if err := v.Create(ctx); err != nil {
				return err
			}
		case StatusDraft:
			if err := v.UploadPackage(ctx, v.Package); err != nil {
				return err
			}
		case StatusUploaded:
			if err := v.Validate(ctx); err != nil {
				return err
			}
		case StatusValidated:
			if err := v.Commit(ctx); err != nil {
				return err
			}
		case StatusCommitted:
			if err := v.Submit(ctx); err != nil {
				return err
			}
		case StatusCertified:
			return v.CreateCSAR(ctx)
		default:
			return &onap.StatusError{Resource: "vsp " + v.Name,
				Current: string(status), Required: "an onboarding status"}
		}
	}
}

// DeriveStatus reconstructs the onboarding status:
//
//   - Certified: latest item version status is Certified
//   - Committed: version state is not dirty and validation data exists
//   - Validated: validation data exists
//   - Uploaded: a network package name exists
//   - Draft: the product exists with none of the above
func (v *Vsp) DeriveStatus(ctx context.Context) error {
	var items resultsPage[itemVersion]
	err := v.client.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: "get Vsp item",
		URL:    fmt.Sprintf("%s/items/%s/versions", v.client.onboardingURL(), v.identifier),
	}, &items)
	if err != nil {
		return err
	}
	if n := len(items.Results); n > 0 && Status(items.Results[n-1].Status) == StatusCertified {
		v.status = StatusCertified
		return nil
	}

	var version itemVersion
	err = v.client.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: "get Vsp item version",
		URL: fmt.Sprintf("%s/items/%s/versions/%s",
			v.client.onboardingURL(), v.identifier, v.version),
	}, &version)
	if err != nil {
		return err
	}
	var details vspDetails
	err = v.client.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: "get Vsp details",
		URL:    v.productURL(),
	}, &details)
	if err != nil {
		return err
	}

	switch {
	case !version.State.Dirty && details.ValidationData != nil:
		v.status = StatusCommitted
	case details.ValidationData != nil:
		v.status = StatusValidated
	case details.NetworkPackageName != "":
		v.status = StatusUploaded
	default:
		v.status = StatusDraft
	}
	return nil
}

// Status returns the VSP status, deriving it from SDC when unknown.
func (v *Vsp) Status(ctx context.Context) (Status, error) {
	if v.status == StatusNone && v.identifier == "" {
		if _, err := v.Exists(ctx); err != nil {
			return StatusNone, err
		}
	}
	return v.status, nil
}

// Identifier returns the VSP item id, loading it lazily.
func (v *Vsp) Identifier(ctx context.Context) (string, error) {
	if v.identifier == "" {
		if _, err := v.Exists(ctx); err != nil {
			return "", err
		}
	}
	return v.identifier, nil
}

// CsarUUID returns the package id, cutting the CSAR first when needed.
func (v *Vsp) CsarUUID(ctx context.Context) (string, error) {
	if v.csarUUID == "" {
		if err := v.CreateCSAR(ctx); err != nil {
			return "", err
		}
	}
	return v.csarUUID, nil
}
