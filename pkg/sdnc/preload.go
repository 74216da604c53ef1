// Package sdnc wraps the SDNC VNF-API preload operations used ahead of
// VF module instantiation.
package sdnc

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/adenisiewicz/onapsdk-go/pkg/aai"
	"github.com/adenisiewicz/onapsdk-go/pkg/config"
	"github.com/adenisiewicz/onapsdk-go/pkg/onap"
	"github.com/adenisiewicz/onapsdk-go/pkg/sdc"
)

// VnfParameter is one name/value pair of a VF module preload.
type VnfParameter struct {
	Name  string `json:"vnf-parameter-name"`
	Value string `json:"vnf-parameter-value"`
}

// Client talks to the SDNC restconf API.
type Client struct {
	rest   *onap.Client
	base   string
	logger *zap.Logger
}

// NewClient creates an SDNC client from settings.
func NewClient(cfg *config.Settings, opts ...onap.Option) *Client {
	options := append([]onap.Option{onap.WithHeaders(onap.SDNCHeaders())}, opts...)
	return &Client{
		rest:   onap.NewClient("SDNC", options...),
		base:   cfg.SDNCURL,
		logger: zap.NewNop(),
	}
}

// WithLogger sets the logger used by the client.
func (c *Client) WithLogger(logger *zap.Logger) *Client {
	c.logger = logger
	return c
}

type preloadRequest struct {
	Input preloadInput `json:"input"`
}

type preloadInput struct {
	RequestInformation requestInformation `json:"request-information"`
	SdncRequestHeader  sdncRequestHeader  `json:"sdnc-request-header"`
	VnfTopologyInfo    vnfTopologyInfo    `json:"vnf-topology-information"`
}

type requestInformation struct {
	RequestAction string `json:"request-action"`
}

type sdncRequestHeader struct {
	SvcAction string `json:"svc-action"`
}

type vnfTopologyInfo struct {
	VnfTopologyIdentifier vnfTopologyIdentifier `json:"vnf-topology-identifier"`
	VnfParameters         []VnfParameter        `json:"vnf-parameters"`
	VnfAssignments        vnfAssignments        `json:"vnf-assignments"`
}

type vnfTopologyIdentifier struct {
	ServiceType    string `json:"service-type"`
	VnfName        string `json:"vnf-name"`
	VnfType        string `json:"vnf-type"`
	GenericVnfName string `json:"generic-vnf-name"`
	GenericVnfType string `json:"generic-vnf-type"`
}

type vnfAssignments struct {
	VnfNetworks       []any `json:"vnf-networks"`
	VnfVms            []any `json:"vnf-vms"`
	AvailabilityZones []any `json:"availability-zones"`
}

// UploadVfModulePreload uploads a VNF-API preload for a VF module
// about to be instantiated under the given generic-vnf.
func (c *Client) UploadVfModulePreload(ctx context.Context, vnfInstance *aai.VnfInstance,
	vfModuleInstanceName string, vfModule sdc.VfModule, params []VnfParameter) error {
	if params == nil {
		params = []VnfParameter{}
	}
	err := c.rest.DoJSON(ctx, &onap.Request{
		Method: "POST",
		Action: fmt.Sprintf("upload %s preload", vfModuleInstanceName),
		URL:    c.base + "/restconf/operations/VNF-API:preload-vnf-topology-operation",
		JSON: preloadRequest{
			Input: preloadInput{
				RequestInformation: requestInformation{RequestAction: "PreloadVNFRequest"},
				SdncRequestHeader:  sdncRequestHeader{SvcAction: "reserve"},
				VnfTopologyInfo: vnfTopologyInfo{
					VnfTopologyIdentifier: vnfTopologyIdentifier{
						ServiceType:    vnfInstance.ServiceID,
						VnfName:        vfModuleInstanceName,
						VnfType:        vfModule.ModelName,
						GenericVnfName: vnfInstance.VnfName,
						GenericVnfType: vnfInstance.VnfType,
					},
					VnfParameters: params,
					VnfAssignments: vnfAssignments{
						VnfNetworks:       []any{},
						VnfVms:            []any{},
						AvailabilityZones: []any{},
					},
				},
			},
		},
	}, nil)
	if err != nil {
		return err
	}
	c.logger.Info("vf module preload uploaded",
		zap.String("vf_module", vfModuleInstanceName),
		zap.String("vnf", vnfInstance.VnfName))
	return nil
}
