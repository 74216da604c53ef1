package so

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/adenisiewicz/onapsdk-go/pkg/aai"
	"github.com/adenisiewicz/onapsdk-go/pkg/onap"
	"github.com/adenisiewicz/onapsdk-go/pkg/sdc"
	"github.com/adenisiewicz/onapsdk-go/pkg/sdnc"
)

// ServiceInstantiation is an a'la carte service creation request.
type ServiceInstantiation struct {
	*OrchestrationRequest

	Name       string
	InstanceID string

	Service  *sdc.Service
	Customer *aai.Customer

	CloudOwner         string
	CloudRegionID      string
	TenantID           string
	GlobalSubscriberID string
	OwningEntityID     string
	ProjectName        string
	ModelName          string
}

// VnfInstantiation is an a'la carte VNF creation request.
type VnfInstantiation struct {
	*OrchestrationRequest

	Name       string
	InstanceID string

	ServiceInstanceID      string
	ModelCustomizationName string
	LineOfBusiness         string
	Platform               string
}

// VfModuleInstantiation is an a'la carte VF module creation request.
type VfModuleInstantiation struct {
	*OrchestrationRequest

	Name       string
	InstanceID string
	VfModule   sdc.VfModule
}

func serviceModelInfo(service *sdc.Service) *modelInfo {
	return &modelInfo{
		ModelType:        "service",
		ModelInvariantID: service.UniqueUUID(),
		ModelVersionID:   service.Identifier(),
		ModelName:        service.Name,
		ModelVersion:     service.Version(),
	}
}

// InstantiateServiceAlaCarte sends an a'la carte service creation
// request. The SDC service must be distributed; a missing instance
// name gets a generated one.
func (c *Client) InstantiateServiceAlaCarte(ctx context.Context, service *sdc.Service,
	cloudRegion *aai.CloudRegion, tenant *aai.Tenant, customer *aai.Customer,
	owningEntity aai.OwningEntity, projectName, instanceName string) (*ServiceInstantiation, error) {
	distributed, err := service.Distributed(ctx)
	if err != nil {
		return nil, err
	}
	if !distributed {
		return nil, &onap.StatusError{Resource: "service " + service.Name,
			Current: string(service.Status()), Required: string(sdc.StatusDistributed)}
	}
	if instanceName == "" {
		instanceName = "onapsdk_service_instance_" + uuid.NewString()
	}
	request := instantiationRequest{RequestDetails: requestDetails{
		RequestInfo: requestInfo{
			InstanceName:    instanceName,
			ProductFamilyID: productFamilyID,
			Source:          requestSource,
			RequestorID:     requestRequestor,
		},
		ModelInfo: serviceModelInfo(service),
		CloudConfiguration: &cloudConfiguration{
			TenantID:         tenant.TenantID,
			CloudOwner:       cloudRegion.CloudOwner,
			LcpCloudRegionID: cloudRegion.CloudRegionID,
		},
		SubscriberInfo: &subscriberInfo{GlobalSubscriberID: customer.GlobalCustomerID},
		RequestParameters: &requestParameters{
			SubscriptionServiceType: service.Name,
			UserParams:              []map[string]any{},
			ALaCarte:                true,
			TestAPI:                 testAPIGR,
		},
		OwningEntity: &owningEntityInfo{
			OwningEntityID:   owningEntity.ID,
			OwningEntityName: owningEntity.Name,
		},
		Project: &projectInfo{ProjectName: projectName},
	}}
	var response instantiationResponse
	err = c.rest.DoJSON(ctx, &onap.Request{
		Method: "POST",
		Action: fmt.Sprintf("instantiate %s service a'la carte", service.Name),
		URL:    c.serviceInstantiationURL(),
		JSON:   request,
	}, &response)
	if err != nil {
		return nil, err
	}
	return &ServiceInstantiation{
		OrchestrationRequest: c.NewOrchestrationRequest(response.RequestReferences.RequestID),
		Name:                 instanceName,
		InstanceID:           response.RequestReferences.InstanceID,
		Service:              service,
		Customer:             customer,
		CloudOwner:           cloudRegion.CloudOwner,
		CloudRegionID:        cloudRegion.CloudRegionID,
		TenantID:             tenant.TenantID,
		GlobalSubscriberID:   customer.GlobalCustomerID,
		OwningEntityID:       owningEntity.ID,
		ProjectName:          projectName,
		ModelName:            service.Name,
	}, nil
}

// AAIServiceInstance resolves the created AAI service instance. The
// request must have completed.
func (si *ServiceInstantiation) AAIServiceInstance(ctx context.Context) (*aai.ServiceInstance, error) {
	status, err := si.Status(ctx)
	if err != nil {
		return nil, err
	}
	if status != StatusCompleted {
		return nil, &onap.StatusError{Resource: "service instantiation " + si.Name,
			Current: string(status), Required: string(StatusCompleted)}
	}
	if si.Customer == nil {
		return nil, &onap.ParameterError{Message: "no customer attached to instantiation request"}
	}
	subscription, err := si.Customer.ServiceSubscription(ctx, si.ModelName)
	if err != nil {
		return nil, err
	}
	return subscription.ServiceInstanceByName(ctx, si.Name)
}

type orchestrationRequestList struct {
	RequestList []orchestrationRequestEntry `json:"requestList"`
}

type orchestrationRequestEntry struct {
	Request struct {
		RequestID          string `json:"requestId"`
		RequestScope       string `json:"requestScope"`
		RequestType        string `json:"requestType"`
		InstanceReferences struct {
			ServiceInstanceID   string `json:"serviceInstanceId"`
			ServiceInstanceName string `json:"serviceInstanceName"`
			VnfInstanceID       string `json:"vnfInstanceId"`
			VnfInstanceName     string `json:"vnfInstanceName"`
		} `json:"instanceReferences"`
		RequestDetails struct {
			ModelInfo          modelInfo           `json:"modelInfo"`
			CloudConfiguration cloudConfiguration  `json:"cloudConfiguration"`
			SubscriberInfo     subscriberInfo      `json:"subscriberInfo"`
			OwningEntity       owningEntityInfo    `json:"owningEntity"`
			Project            projectInfo         `json:"project"`
			Platform           platformInfo        `json:"platform"`
			LineOfBusiness     lineOfBusinessInfo  `json:"lineOfBusiness"`
			RelatedInstances   []relatedInstanceRef `json:"relatedInstanceList"`
		} `json:"requestDetails"`
	} `json:"request"`
}

func (c *Client) filterRequests(ctx context.Context, filter string) ([]orchestrationRequestEntry, error) {
	var list orchestrationRequestList
	err := c.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: fmt.Sprintf("get requests filtered by %s", filter),
		URL:    c.orchestrationRequestsURL() + "?filter=" + url.QueryEscape(filter),
	}, &list)
	if err != nil {
		return nil, err
	}
	return list.RequestList, nil
}

func serviceInstantiationFromEntry(c *Client, entry orchestrationRequestEntry) *ServiceInstantiation {
	request := entry.Request
	return &ServiceInstantiation{
		OrchestrationRequest: c.NewOrchestrationRequest(request.RequestID),
		Name:                 request.InstanceReferences.ServiceInstanceName,
		InstanceID:           request.InstanceReferences.ServiceInstanceID,
		CloudOwner:           request.RequestDetails.CloudConfiguration.CloudOwner,
		CloudRegionID:        request.RequestDetails.CloudConfiguration.LcpCloudRegionID,
		TenantID:             request.RequestDetails.CloudConfiguration.TenantID,
		GlobalSubscriberID:   request.RequestDetails.SubscriberInfo.GlobalSubscriberID,
		OwningEntityID:       request.RequestDetails.OwningEntity.OwningEntityID,
		ProjectName:          request.RequestDetails.Project.ProjectName,
		ModelName:            request.RequestDetails.ModelInfo.ModelName,
	}
}

// GetServiceInstantiationByInstanceID finds the createInstance request
// of a service instance id.
func (c *Client) GetServiceInstantiationByInstanceID(ctx context.Context, instanceID string) (*ServiceInstantiation, error) {
	entries, err := c.filterRequests(ctx, "serviceInstanceId:EQUALS:"+instanceID)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if entry.Request.RequestScope == "service" && entry.Request.RequestType == "createInstance" {
			return serviceInstantiationFromEntry(c, entry), nil
		}
	}
	return nil, fmt.Errorf("createInstance request for service instance %s: %w",
		instanceID, onap.ErrNotFound)
}

// GetServiceInstantiationByName finds the createInstance request of a
// service instance name.
func (c *Client) GetServiceInstantiationByName(ctx context.Context, instanceName string) (*ServiceInstantiation, error) {
	entries, err := c.filterRequests(ctx, "serviceInstanceName:EQUALS:"+instanceName)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if entry.Request.RequestScope == "service" && entry.Request.RequestType == "createInstance" {
			return serviceInstantiationFromEntry(c, entry), nil
		}
	}
	return nil, fmt.Errorf("createInstance request for service instance %s: %w",
		instanceName, onap.ErrNotFound)
}

// InstantiateVnfAlaCarte adds a VNF into a running service instance.
// The AAI service instance must have orchestration status Active.
func (c *Client) InstantiateVnfAlaCarte(ctx context.Context, serviceInstance *aai.ServiceInstance,
	service *sdc.Service, vnf sdc.Vnf, lineOfBusiness, platform, instanceName string) (*VnfInstantiation, error) {
	if serviceInstance.OrchestrationStatus != "Active" {
		return nil, &onap.StatusError{Resource: "service instance " + serviceInstance.InstanceID,
			Current: serviceInstance.OrchestrationStatus, Required: "Active"}
	}
	if instanceName == "" {
		instanceName = "onapsdk_vnf_instance_" + uuid.NewString()
	}
	cloudRegion, tenant, err := serviceInstance.Subscription().CloudRegionAndTenant(ctx)
	if err != nil {
		return nil, err
	}
	request := instantiationRequest{RequestDetails: requestDetails{
		RequestInfo: requestInfo{
			InstanceName:    instanceName,
			ProductFamilyID: productFamilyID,
			Source:          requestSource,
			RequestorID:     requestRequestor,
		},
		ModelInfo: &modelInfo{
			ModelType:              "vnf",
			ModelInvariantID:       vnf.Metadata.InvariantUUID,
			ModelVersionID:         vnf.Metadata.UUID,
			ModelName:              vnf.Metadata.Name,
			ModelVersion:           vnf.Metadata.Version,
			ModelCustomizationID:   vnf.Metadata.CustomizationUUID,
			ModelCustomizationName: vnf.Name,
		},
		CloudConfiguration: &cloudConfiguration{
			TenantID:         tenant.TenantID,
			CloudOwner:       cloudRegion.CloudOwner,
			LcpCloudRegionID: cloudRegion.CloudRegionID,
		},
		RequestParameters: &requestParameters{
			UserParams: []map[string]any{},
			ALaCarte:   true,
			TestAPI:    testAPIGR,
		},
		Platform:       &platformInfo{PlatformName: platform},
		LineOfBusiness: &lineOfBusinessInfo{LineOfBusinessName: lineOfBusiness},
		RelatedInstanceList: []relatedInstanceRef{{RelatedInstance: relatedInstance{
			InstanceID: serviceInstance.InstanceID,
			ModelInfo:  *serviceModelInfo(service),
		}}},
	}}
	var response instantiationResponse
	err = c.rest.DoJSON(ctx, &onap.Request{
		Method: "POST",
		Action: fmt.Sprintf("instantiate %s service vnf %s", service.Name, vnf.Name),
		URL:    fmt.Sprintf("%s/%s/vnfs", c.serviceInstantiationURL(), serviceInstance.InstanceID),
		JSON:   request,
	}, &response)
	if err != nil {
		return nil, err
	}
	return &VnfInstantiation{
		OrchestrationRequest:   c.NewOrchestrationRequest(response.RequestReferences.RequestID),
		Name:                   instanceName,
		InstanceID:             response.RequestReferences.InstanceID,
		ServiceInstanceID:      serviceInstance.InstanceID,
		ModelCustomizationName: vnf.Name,
		LineOfBusiness:         lineOfBusiness,
		Platform:               platform,
	}, nil
}

// vnfInstantiationFromEntry builds a VnfInstantiation from a vnf
// createInstance request entry, resolving the related service
// instance.
func (c *Client) vnfInstantiationFromEntry(entry orchestrationRequestEntry) (*VnfInstantiation, error) {
	request := entry.Request
	if request.RequestScope != "vnf" || request.RequestType != "createInstance" {
		return nil, &onap.ParameterError{Message: "not a vnf createInstance request"}
	}
	serviceInstanceID := ""
	for _, related := range request.RequestDetails.RelatedInstances {
		if related.RelatedInstance.ModelInfo.ModelType == "service" {
			serviceInstanceID = related.RelatedInstance.InstanceID
		}
	}
	if serviceInstanceID == "" {
		return nil, &onap.InvalidResponseError{Service: "SO", Action: "parse vnf request",
			Err: fmt.Errorf("no related service instance in request %s", request.RequestID)}
	}
	return &VnfInstantiation{
		OrchestrationRequest:   c.NewOrchestrationRequest(request.RequestID),
		Name:                   request.InstanceReferences.VnfInstanceName,
		InstanceID:             request.InstanceReferences.VnfInstanceID,
		ServiceInstanceID:      serviceInstanceID,
		ModelCustomizationName: request.RequestDetails.ModelInfo.ModelCustomizationName,
		LineOfBusiness:         request.RequestDetails.LineOfBusiness.LineOfBusinessName,
		Platform:               request.RequestDetails.Platform.PlatformName,
	}, nil
}

// GetVnfInstantiationByName finds the createInstance request of a VNF
// instance name.
func (c *Client) GetVnfInstantiationByName(ctx context.Context, vnfInstanceName string) (*VnfInstantiation, error) {
	entries, err := c.filterRequests(ctx, "vnfInstanceName:EQUALS:"+vnfInstanceName)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if entry.Request.RequestScope == "vnf" && entry.Request.RequestType == "createInstance" {
			return c.vnfInstantiationFromEntry(entry)
		}
	}
	return nil, fmt.Errorf("createInstance request for vnf instance %s: %w",
		vnfInstanceName, onap.ErrNotFound)
}

// InstantiateVfModuleAlaCarte uploads the VF module preload through
// SDNC, then adds the module into the running VNF.
func (c *Client) InstantiateVfModuleAlaCarte(ctx context.Context, preload *sdnc.Client,
	serviceInstance *aai.ServiceInstance, vnfInstance *aai.VnfInstance, service *sdc.Service,
	vnf sdc.Vnf, vfModule sdc.VfModule, instanceName string,
	params []sdnc.VnfParameter) (*VfModuleInstantiation, error) {
	if instanceName == "" {
		instanceName = "onapsdk_vf_module_instance_" + uuid.NewString()
	}
	if err := preload.UploadVfModulePreload(ctx, vnfInstance, instanceName, vfModule, params); err != nil {
		return nil, err
	}
	cloudRegion, tenant, err := serviceInstance.Subscription().CloudRegionAndTenant(ctx)
	if err != nil {
		return nil, err
	}
	request := instantiationRequest{RequestDetails: requestDetails{
		RequestInfo: requestInfo{
			InstanceName: instanceName,
			Source:       requestSource,
			RequestorID:  requestRequestor,
		},
		ModelInfo: &modelInfo{
			ModelType:              "vfModule",
			ModelInvariantID:       vfModule.ModelInvariantUUID,
			ModelVersionID:         vfModule.ModelUUID,
			ModelName:              vfModule.ModelName,
			ModelVersion:           vfModule.ModelVersion,
			ModelCustomizationID:   vfModule.ModelCustomizationUUID,
			ModelCustomizationName: vfModule.Name,
		},
		CloudConfiguration: &cloudConfiguration{
			TenantID:         tenant.TenantID,
			CloudOwner:       cloudRegion.CloudOwner,
			LcpCloudRegionID: cloudRegion.CloudRegionID,
		},
		RequestParameters: &requestParameters{
			UserParams: []map[string]any{},
			ALaCarte:   true,
			TestAPI:    testAPIGR,
		},
		RelatedInstanceList: []relatedInstanceRef{
			{RelatedInstance: relatedInstance{
				InstanceID: serviceInstance.InstanceID,
				ModelInfo:  *serviceModelInfo(service),
			}},
			{RelatedInstance: relatedInstance{
				InstanceID: vnfInstance.VnfID,
				ModelInfo: modelInfo{
					ModelType:              "vnf",
					ModelInvariantID:       vnf.Metadata.InvariantUUID,
					ModelVersionID:         vnf.Metadata.UUID,
					ModelName:              vnf.Metadata.Name,
					ModelVersion:           vnf.Metadata.Version,
					ModelCustomizationID:   vnf.Metadata.CustomizationUUID,
					ModelCustomizationName: vnf.Name,
				},
			}},
		},
	}}
	var response instantiationResponse
	err = c.rest.DoJSON(ctx, &onap.Request{
		Method: "POST",
		Action: fmt.Sprintf("instantiate %s service vf module %s", service.Name, vfModule.Name),
		URL: fmt.Sprintf("%s/%s/vnfs/%s/vfModules",
			c.serviceInstantiationURL(), serviceInstance.InstanceID, vnfInstance.VnfID),
		JSON: request,
	}, &response)
	if err != nil {
		return nil, err
	}
	return &VfModuleInstantiation{
		OrchestrationRequest: c.NewOrchestrationRequest(response.RequestReferences.RequestID),
		Name:                 instanceName,
		InstanceID:           response.RequestReferences.InstanceID,
		VfModule:             vfModule,
	}, nil
}
