package aai

import (
	"context"
	"fmt"
	"net/url"

	"github.com/adenisiewicz/onapsdk-go/pkg/onap"
)

// ServiceInstance is an instantiated service under a customer's
// subscription.
type ServiceInstance struct {
	client       *Client
	subscription *ServiceSubscription

	InstanceID                string `json:"service-instance-id"`
	InstanceName              string `json:"service-instance-name,omitempty"`
	ServiceType               string `json:"service-type,omitempty"`
	ServiceRole               string `json:"service-role,omitempty"`
	EnvironmentContext        string `json:"environment-context,omitempty"`
	WorkloadContext           string `json:"workload-context,omitempty"`
	ModelInvariantID          string `json:"model-invariant-id,omitempty"`
	ModelVersionID            string `json:"model-version-id,omitempty"`
	PersonaModelVersion       string `json:"persona-model-version,omitempty"`
	WidgetModelID             string `json:"widget-model-id,omitempty"`
	WidgetModelVersion        string `json:"widget-model-version,omitempty"`
	BandwidthTotal            string `json:"bandwidth-total,omitempty"`
	VhnPortalURL              string `json:"vhn-portal-url,omitempty"`
	ServiceInstanceLocationID string `json:"service-instance-location-id,omitempty"`
	Selflink                  string `json:"selflink,omitempty"`
	OrchestrationStatus       string `json:"orchestration-status,omitempty"`
	InputParameters           string `json:"input-parameters,omitempty"`
	Description               string `json:"description,omitempty"`
	ResourceVersion           string `json:"resource-version,omitempty"`
}

// VnfInstance is a generic-vnf in the AAI network inventory.
type VnfInstance struct {
	client *Client

	VnfID                string `json:"vnf-id"`
	VnfName              string `json:"vnf-name,omitempty"`
	VnfType              string `json:"vnf-type,omitempty"`
	ServiceID            string `json:"service-id,omitempty"`
	ProvStatus           string `json:"prov-status,omitempty"`
	OrchestrationStatus  string `json:"orchestration-status,omitempty"`
	InMaint              bool   `json:"in-maint"`
	IsClosedLoopDisabled bool   `json:"is-closed-loop-disabled"`
	ModelInvariantID     string `json:"model-invariant-id,omitempty"`
	ModelVersionID       string `json:"model-version-id,omitempty"`
	ModelCustomizationID string `json:"model-customization-id,omitempty"`
	ResourceVersion      string `json:"resource-version,omitempty"`
}

// VfModuleInstance is a vf-module under a generic-vnf.
type VfModuleInstance struct {
	client *Client
	vnf    *VnfInstance

	VfModuleID           string `json:"vf-module-id"`
	VfModuleName         string `json:"vf-module-name,omitempty"`
	HeatStackID          string `json:"heat-stack-id,omitempty"`
	OrchestrationStatus  string `json:"orchestration-status,omitempty"`
	IsBaseVfModule       bool   `json:"is-base-vf-module"`
	AutomatedAssignment  bool   `json:"automated-assignment"`
	ModelInvariantID     string `json:"model-invariant-id,omitempty"`
	ModelVersionID       string `json:"model-version-id,omitempty"`
	ModelCustomizationID string `json:"model-customization-id,omitempty"`
	ResourceVersion      string `json:"resource-version,omitempty"`
}

// URL is the service instance's resource URL.
func (si *ServiceInstance) URL() string {
	return fmt.Sprintf("%s/service-instances/service-instance/%s",
		si.subscription.URL(), url.PathEscape(si.InstanceID))
}

// Subscription returns the subscription the instance lives under.
func (si *ServiceInstance) Subscription() *ServiceSubscription { return si.subscription }

// Relationships lists the instance's relationship-list.
func (si *ServiceInstance) Relationships(ctx context.Context) ([]Relationship, error) {
	return si.client.relationships(ctx, si.URL())
}

// AddRelationship adds an edge to the instance.
func (si *ServiceInstance) AddRelationship(ctx context.Context, rel Relationship) error {
	return si.client.addRelationship(ctx, si.URL(), rel)
}

// VnfInstances lists the generic-vnfs related to the instance, chasing
// the generic-vnf edges of its relationship-list.
func (si *ServiceInstance) VnfInstances(ctx context.Context) ([]*VnfInstance, error) {
	relationships, err := si.Relationships(ctx)
	if err != nil {
		return nil, err
	}
	var vnfs []*VnfInstance
	for _, rel := range relationships {
		if rel.RelatedTo != "generic-vnf" {
			continue
		}
		vnf := &VnfInstance{client: si.client}
		err := si.client.rest.DoJSON(ctx, &onap.Request{
			Method: "GET",
			Action: fmt.Sprintf("get vnf related to %s", si.InstanceID),
			URL:    si.client.absoluteURL(rel.RelatedLink),
		}, vnf)
		if err != nil {
			return nil, err
		}
		vnfs = append(vnfs, vnf)
	}
	return vnfs, nil
}

// URL is the generic-vnf's resource URL.
func (v *VnfInstance) URL() string {
	return fmt.Sprintf("%s/network/generic-vnfs/generic-vnf/%s",
		v.client.rootURL(), url.PathEscape(v.VnfID))
}

// VnfInstanceByID fetches one generic-vnf by id.
func (c *Client) VnfInstanceByID(ctx context.Context, vnfID string) (*VnfInstance, error) {
	vnf := &VnfInstance{client: c, VnfID: vnfID}
	err := c.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: fmt.Sprintf("get vnf %s", vnfID),
		URL:    vnf.URL(),
	}, vnf)
	if err != nil {
		return nil, err
	}
	return vnf, nil
}

// Relationships lists the vnf's relationship-list.
func (v *VnfInstance) Relationships(ctx context.Context) ([]Relationship, error) {
	return v.client.relationships(ctx, v.URL())
}

// VfModules lists the vnf's vf-modules.
func (v *VnfInstance) VfModules(ctx context.Context) ([]*VfModuleInstance, error) {
	var result struct {
		VfModule []*VfModuleInstance `json:"vf-module"`
	}
	err := v.client.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: fmt.Sprintf("get vf modules of %s", v.VnfID),
		URL:    v.URL() + "/vf-modules",
	}, &result)
	if err != nil {
		return nil, err
	}
	for _, module := range result.VfModule {
		module.client = v.client
		module.vnf = v
	}
	return result.VfModule, nil
}

// URL is the vf-module's resource URL.
func (m *VfModuleInstance) URL() string {
	return fmt.Sprintf("%s/vf-modules/vf-module/%s",
		m.vnf.URL(), url.PathEscape(m.VfModuleID))
}

// Vnf returns the owning generic-vnf.
func (m *VfModuleInstance) Vnf() *VnfInstance { return m.vnf }
