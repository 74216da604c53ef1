package aai

import (
	"context"
	"fmt"
	"net/url"

	"github.com/adenisiewicz/onapsdk-go/pkg/onap"
)

// CloudRegion is an AAI cloud region under cloud-infrastructure.
type CloudRegion struct {
	client *Client

	CloudOwner            string `json:"cloud-owner"`
	CloudRegionID         string `json:"cloud-region-id"`
	CloudType             string `json:"cloud-type,omitempty"`
	OwnerDefinedType      string `json:"owner-defined-type,omitempty"`
	CloudRegionVersion    string `json:"cloud-region-version,omitempty"`
	IdentityURL           string `json:"identity-url,omitempty"`
	CloudZone             string `json:"cloud-zone,omitempty"`
	ComplexName           string `json:"complex-name,omitempty"`
	SriovAutomation       string `json:"sriov-automation,omitempty"`
	CloudExtraInfo        string `json:"cloud-extra-info,omitempty"`
	OrchestrationDisabled bool   `json:"orchestration-disabled"`
	InMaint               bool   `json:"in-maint"`
	ResourceVersion       string `json:"resource-version,omitempty"`
}

// Tenant is a tenant within a cloud region.
type Tenant struct {
	client *Client
	region *CloudRegion

	TenantID        string `json:"tenant-id"`
	TenantName      string `json:"tenant-name"`
	TenantContext   string `json:"tenant-context,omitempty"`
	ResourceVersion string `json:"resource-version,omitempty"`
}

// AvailabilityZone is an availability zone within a cloud region.
type AvailabilityZone struct {
	Name              string `json:"availability-zone-name"`
	HypervisorType    string `json:"hypervisor-type"`
	OperationalStatus string `json:"operational-status,omitempty"`
}

func (c *Client) cloudRegionsURL() string {
	return c.rootURL() + "/cloud-infrastructure/cloud-regions"
}

// URL is the cloud region's resource URL.
func (r *CloudRegion) URL() string {
	return fmt.Sprintf("%s/cloud-region/%s/%s",
		r.client.cloudRegionsURL(), r.CloudOwner, r.CloudRegionID)
}

// CloudRegions lists every cloud region in AAI.
func (c *Client) CloudRegions(ctx context.Context) ([]*CloudRegion, error) {
	var result struct {
		CloudRegion []*CloudRegion `json:"cloud-region"`
	}
	err := c.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: "get cloud regions",
		URL:    c.cloudRegionsURL(),
	}, &result)
	if err != nil {
		return nil, err
	}
	for _, region := range result.CloudRegion {
		region.client = c
	}
	return result.CloudRegion, nil
}

// CloudRegionByID fetches one cloud region by owner and region id.
func (c *Client) CloudRegionByID(ctx context.Context, cloudOwner, cloudRegionID string) (*CloudRegion, error) {
	region := &CloudRegion{client: c, CloudOwner: cloudOwner, CloudRegionID: cloudRegionID}
	err := c.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: fmt.Sprintf("get cloud region %s/%s", cloudOwner, cloudRegionID),
		URL:    region.URL(),
	}, region)
	if err != nil {
		return nil, err
	}
	return region, nil
}

// CreateCloudRegion registers the cloud region in AAI.
func (c *Client) CreateCloudRegion(ctx context.Context, region *CloudRegion) (*CloudRegion, error) {
	region.client = c
	err := c.rest.DoJSON(ctx, &onap.Request{
		Method: "PUT",
		Action: fmt.Sprintf("create cloud region %s/%s", region.CloudOwner, region.CloudRegionID),
		URL:    region.URL(),
		JSON:   region,
	}, nil)
	if err != nil {
		return nil, err
	}
	return region, nil
}

// Delete removes the cloud region. AAI requires the current
// resource-version for optimistic concurrency.
func (r *CloudRegion) Delete(ctx context.Context) error {
	return r.client.rest.DoJSON(ctx, &onap.Request{
		Method: "DELETE",
		Action: fmt.Sprintf("delete cloud region %s/%s", r.CloudOwner, r.CloudRegionID),
		URL:    r.URL() + "?resource-version=" + url.QueryEscape(r.ResourceVersion),
	}, nil)
}

// Tenants lists the region's tenants.
func (r *CloudRegion) Tenants(ctx context.Context) ([]*Tenant, error) {
	var result struct {
		Tenant []*Tenant `json:"tenant"`
	}
	err := r.client.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: fmt.Sprintf("get tenants of %s/%s", r.CloudOwner, r.CloudRegionID),
		URL:    r.URL() + "/tenants",
	}, &result)
	if err != nil {
		return nil, err
	}
	for _, tenant := range result.Tenant {
		tenant.client = r.client
		tenant.region = r
	}
	return result.Tenant, nil
}

// TenantByID fetches one tenant of the region.
func (r *CloudRegion) TenantByID(ctx context.Context, tenantID string) (*Tenant, error) {
	tenant := &Tenant{client: r.client, region: r, TenantID: tenantID}
	err := r.client.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: fmt.Sprintf("get tenant %s", tenantID),
		URL:    tenant.URL(),
	}, tenant)
	if err != nil {
		return nil, err
	}
	return tenant, nil
}

// AddTenant registers a tenant in the region.
func (r *CloudRegion) AddTenant(ctx context.Context, tenantID, tenantName, tenantContext string) (*Tenant, error) {
	tenant := &Tenant{
		client:        r.client,
		region:        r,
		TenantID:      tenantID,
		TenantName:    tenantName,
		TenantContext: tenantContext,
	}
	err := r.client.rest.DoJSON(ctx, &onap.Request{
		Method: "PUT",
		Action: fmt.Sprintf("add tenant %s to %s/%s", tenantID, r.CloudOwner, r.CloudRegionID),
		URL:    tenant.URL(),
		JSON:   tenant,
	}, nil)
	if err != nil {
		return nil, err
	}
	return tenant, nil
}

// AddAvailabilityZone registers an availability zone in the region.
func (r *CloudRegion) AddAvailabilityZone(ctx context.Context, zone AvailabilityZone) error {
	return r.client.rest.DoJSON(ctx, &onap.Request{
		Method: "PUT",
		Action: fmt.Sprintf("add availability zone %s", zone.Name),
		URL: fmt.Sprintf("%s/availability-zones/availability-zone/%s",
			r.URL(), url.PathEscape(zone.Name)),
		JSON: zone,
	}, nil)
}

// Relationships lists the region's relationship-list.
func (r *CloudRegion) Relationships(ctx context.Context) ([]Relationship, error) {
	return r.client.relationships(ctx, r.URL())
}

// AddRelationship adds an edge to the region.
func (r *CloudRegion) AddRelationship(ctx context.Context, rel Relationship) error {
	return r.client.addRelationship(ctx, r.URL(), rel)
}

// URL is the tenant's resource URL.
func (t *Tenant) URL() string {
	return fmt.Sprintf("%s/tenants/tenant/%s", t.region.URL(), url.PathEscape(t.TenantID))
}
