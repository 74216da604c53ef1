package so

import (
	"context"
	"fmt"

	"github.com/adenisiewicz/onapsdk-go/pkg/aai"
	"github.com/adenisiewicz/onapsdk-go/pkg/onap"
)

// DeletionRequest tracks a deletion orchestration request.
type DeletionRequest struct {
	*OrchestrationRequest
}

func deletionRequestDetails() instantiationRequest {
	return instantiationRequest{RequestDetails: requestDetails{
		RequestInfo: requestInfo{
			Source:      requestSource,
			RequestorID: requestRequestor,
		},
	}}
}

func (c *Client) sendDeletion(ctx context.Context, action, url string) (*DeletionRequest, error) {
	var response instantiationResponse
	err := c.rest.DoJSON(ctx, &onap.Request{
		Method: "DELETE",
		Action: action,
		URL:    url,
		JSON:   deletionRequestDetails(),
	}, &response)
	if err != nil {
		return nil, err
	}
	return &DeletionRequest{
		OrchestrationRequest: c.NewOrchestrationRequest(response.RequestReferences.RequestID),
	}, nil
}

// DeleteServiceInstance requests deletion of a service instance.
func (c *Client) DeleteServiceInstance(ctx context.Context, instance *aai.ServiceInstance) (*DeletionRequest, error) {
	return c.sendDeletion(ctx,
		fmt.Sprintf("delete service instance %s", instance.InstanceID),
		fmt.Sprintf("%s/%s", c.serviceInstantiationURL(), instance.InstanceID))
}

// DeleteVnfInstance requests deletion of a VNF instance.
func (c *Client) DeleteVnfInstance(ctx context.Context, serviceInstance *aai.ServiceInstance,
	vnfInstance *aai.VnfInstance) (*DeletionRequest, error) {
	return c.sendDeletion(ctx,
		fmt.Sprintf("delete vnf instance %s", vnfInstance.VnfID),
		fmt.Sprintf("%s/%s/vnfs/%s",
			c.serviceInstantiationURL(), serviceInstance.InstanceID, vnfInstance.VnfID))
}

// DeleteVfModuleInstance requests deletion of a VF module instance.
func (c *Client) DeleteVfModuleInstance(ctx context.Context, serviceInstance *aai.ServiceInstance,
	vnfInstance *aai.VnfInstance, vfModule *aai.VfModuleInstance) (*DeletionRequest, error) {
	return c.sendDeletion(ctx,
		fmt.Sprintf("delete vf module instance %s", vfModule.VfModuleID),
		fmt.Sprintf("%s/%s/vnfs/%s/vfModules/%s",
			c.serviceInstantiationURL(), serviceInstance.InstanceID,
			vnfInstance.VnfID, vfModule.VfModuleID))
}
