package aai

import (
	"context"
	"fmt"
	"net/url"

	"github.com/adenisiewicz/onapsdk-go/pkg/onap"
)

// Customer is an AAI business customer.
type Customer struct {
	client *Client

	GlobalCustomerID string `json:"global-customer-id"`
	SubscriberName   string `json:"subscriber-name"`
	SubscriberType   string `json:"subscriber-type"`
	ResourceVersion  string `json:"resource-version,omitempty"`
}

// ServiceSubscription subscribes a customer to a service type; service
// instances hang below it.
type ServiceSubscription struct {
	client   *Client
	customer *Customer

	ServiceType     string `json:"service-type"`
	ResourceVersion string `json:"resource-version,omitempty"`
}

func (c *Client) customersURL() string {
	return c.rootURL() + "/business/customers"
}

// URL is the customer's resource URL.
func (cu *Customer) URL() string {
	return fmt.Sprintf("%s/customer/%s",
		cu.client.customersURL(), url.PathEscape(cu.GlobalCustomerID))
}

// Customers lists every customer in AAI.
func (c *Client) Customers(ctx context.Context) ([]*Customer, error) {
	var result struct {
		Customer []*Customer `json:"customer"`
	}
	err := c.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: "get customers",
		URL:    c.customersURL(),
	}, &result)
	if err != nil {
		return nil, err
	}
	for _, customer := range result.Customer {
		customer.client = c
	}
	return result.Customer, nil
}

// CustomerByGlobalID fetches one customer.
func (c *Client) CustomerByGlobalID(ctx context.Context, globalCustomerID string) (*Customer, error) {
	customer := &Customer{client: c, GlobalCustomerID: globalCustomerID}
	err := c.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: fmt.Sprintf("get customer %s", globalCustomerID),
		URL:    customer.URL(),
	}, customer)
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// CreateCustomer registers a customer in AAI.
func (c *Client) CreateCustomer(ctx context.Context, globalCustomerID, subscriberName, subscriberType string) (*Customer, error) {
	customer := &Customer{
		client:           c,
		GlobalCustomerID: globalCustomerID,
		SubscriberName:   subscriberName,
		SubscriberType:   subscriberType,
	}
	err := c.rest.DoJSON(ctx, &onap.Request{
		Method: "PUT",
		Action: fmt.Sprintf("create customer %s", globalCustomerID),
		URL:    customer.URL(),
		JSON:   customer,
	}, nil)
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// ServiceSubscriptions lists the customer's subscriptions.
func (cu *Customer) ServiceSubscriptions(ctx context.Context) ([]*ServiceSubscription, error) {
	var result struct {
		ServiceSubscription []*ServiceSubscription `json:"service-subscription"`
	}
	err := cu.client.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: fmt.Sprintf("get subscriptions of %s", cu.GlobalCustomerID),
		URL:    cu.URL() + "/service-subscriptions",
	}, &result)
	if err != nil {
		return nil, err
	}
	for _, sub := range result.ServiceSubscription {
		sub.client = cu.client
		sub.customer = cu
	}
	return result.ServiceSubscription, nil
}

// ServiceSubscription fetches the customer's subscription to a service
// type.
func (cu *Customer) ServiceSubscription(ctx context.Context, serviceType string) (*ServiceSubscription, error) {
	sub := &ServiceSubscription{client: cu.client, customer: cu, ServiceType: serviceType}
	err := cu.client.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: fmt.Sprintf("get %s subscription of %s", serviceType, cu.GlobalCustomerID),
		URL:    sub.URL(),
	}, sub)
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// Subscribe creates a subscription to a service type for the customer.
func (cu *Customer) Subscribe(ctx context.Context, serviceType string) (*ServiceSubscription, error) {
	sub := &ServiceSubscription{client: cu.client, customer: cu, ServiceType: serviceType}
	err := cu.client.rest.DoJSON(ctx, &onap.Request{
		Method: "PUT",
		Action: fmt.Sprintf("subscribe %s to %s", cu.GlobalCustomerID, serviceType),
		URL:    sub.URL(),
		JSON:   sub,
	}, nil)
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// URL is the subscription's resource URL.
func (s *ServiceSubscription) URL() string {
	return fmt.Sprintf("%s/service-subscriptions/service-subscription/%s",
		s.customer.URL(), url.PathEscape(s.ServiceType))
}

// Customer returns the owning customer.
func (s *ServiceSubscription) Customer() *Customer { return s.customer }

// Relationships lists the subscription's relationship-list.
func (s *ServiceSubscription) Relationships(ctx context.Context) ([]Relationship, error) {
	return s.client.relationships(ctx, s.URL())
}

// LinkToCloudRegionAndTenant connects the subscription to the tenant it
// deploys into.
func (s *ServiceSubscription) LinkToCloudRegionAndTenant(ctx context.Context, region *CloudRegion, tenant *Tenant) error {
	return s.client.addRelationship(ctx, s.URL(), Relationship{
		RelatedTo:   "tenant",
		RelatedLink: fmt.Sprintf("/aai/%s/cloud-infrastructure/cloud-regions/cloud-region/%s/%s/tenants/tenant/%s", s.client.apiVersion, region.CloudOwner, region.CloudRegionID, tenant.TenantID),
		RelationshipData: []RelationshipData{
			{Key: "cloud-region.cloud-owner", Value: region.CloudOwner},
			{Key: "cloud-region.cloud-region-id", Value: region.CloudRegionID},
			{Key: "tenant.tenant-id", Value: tenant.TenantID},
		},
		RelatedToProperty: []RelatedToProperty{
			{Key: "tenant.tenant-name", Value: tenant.TenantName},
		},
	})
}

// CloudRegionAndTenant resolves the cloud region and tenant the
// subscription is linked to, walking its tenant relationship.
func (s *ServiceSubscription) CloudRegionAndTenant(ctx context.Context) (*CloudRegion, *Tenant, error) {
	relationships, err := s.Relationships(ctx)
	if err != nil {
		return nil, nil, err
	}
	for _, rel := range relationships {
		if rel.RelatedTo != "tenant" {
			continue
		}
		region := &CloudRegion{client: s.client}
		tenant := &Tenant{client: s.client, region: region}
		for _, data := range rel.RelationshipData {
			switch data.Key {
			case "cloud-region.cloud-owner":
				region.CloudOwner = data.Value
			case "cloud-region.cloud-region-id":
				region.CloudRegionID = data.Value
			case "tenant.tenant-id":
				tenant.TenantID = data.Value
			}
		}
		for _, prop := range rel.RelatedToProperty {
			if prop.Key == "tenant.tenant-name" {
				tenant.TenantName = prop.Value
			}
		}
		return region, tenant, nil
	}
	return nil, nil, fmt.Errorf("tenant relationship of %s subscription: %w",
		s.ServiceType, onap.ErrNotFound)
}

// ServiceInstances lists the instances under the subscription.
func (s *ServiceSubscription) ServiceInstances(ctx context.Context) ([]*ServiceInstance, error) {
	var result struct {
		ServiceInstance []*ServiceInstance `json:"service-instance"`
	}
	err := s.client.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: fmt.Sprintf("get %s service instances", s.ServiceType),
		URL:    s.URL() + "/service-instances",
	}, &result)
	if err != nil {
		return nil, err
	}
	for _, instance := range result.ServiceInstance {
		instance.client = s.client
		instance.subscription = s
	}
	return result.ServiceInstance, nil
}

// ServiceInstanceByID fetches one instance by id.
func (s *ServiceSubscription) ServiceInstanceByID(ctx context.Context, instanceID string) (*ServiceInstance, error) {
	instance := &ServiceInstance{client: s.client, subscription: s, InstanceID: instanceID}
	err := s.client.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: fmt.Sprintf("get service instance %s", instanceID),
		URL:    instance.URL(),
	}, instance)
	if err != nil {
		return nil, err
	}
	return instance, nil
}

// ServiceInstanceByName finds an instance by name, onap.ErrNotFound
// when no instance matches.
func (s *ServiceSubscription) ServiceInstanceByName(ctx context.Context, name string) (*ServiceInstance, error) {
	instances, err := s.ServiceInstances(ctx)
	if err != nil {
		return nil, err
	}
	for _, instance := range instances {
		if instance.InstanceName == name {
			return instance, nil
		}
	}
	return nil, fmt.Errorf("service instance %q: %w", name, onap.ErrNotFound)
}
