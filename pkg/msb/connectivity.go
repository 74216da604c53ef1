package msb

import (
	"context"
	"fmt"

	"github.com/adenisiewicz/onapsdk-go/pkg/onap"
)

// ConnectivityInfo links a cloud region to a kubernetes cluster.
type ConnectivityInfo struct {
	client *Client

	CloudRegion           string         `json:"cloud-region"`
	CloudOwner            string         `json:"cloud-owner"`
	OtherConnectivityList map[string]any `json:"other-connectivity-list,omitempty"`
	Kubeconfig            string         `json:"kubeconfig"`
}

func (c *Client) connectivityURL(parts ...string) string {
	url := c.multicloudURL() + "/connectivity-info"
	for _, part := range parts {
		url += "/" + part
	}
	return url
}

// ConnectivityInfoByRegionID fetches the connectivity info of a cloud
// region.
func (c *Client) ConnectivityInfoByRegionID(ctx context.Context, cloudRegionID string) (*ConnectivityInfo, error) {
	info := &ConnectivityInfo{client: c}
	err := c.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: fmt.Sprintf("get connectivity info of region %s", cloudRegionID),
		URL:    c.connectivityURL(cloudRegionID),
	}, info)
	if err != nil {
		return nil, err
	}
	return info, nil
}

// CreateConnectivityInfo registers cluster connectivity for a cloud
// region.
func (c *Client) CreateConnectivityInfo(ctx context.Context, info *ConnectivityInfo) (*ConnectivityInfo, error) {
	err := c.rest.DoJSON(ctx, &onap.Request{
		Method: "POST",
		Action: fmt.Sprintf("create connectivity info of region %s", info.CloudRegion),
		URL:    c.connectivityURL(),
		JSON:   info,
	}, nil)
	if err != nil {
		return nil, err
	}
	info.client = c
	return info, nil
}

// Delete removes the connectivity info.
func (i *ConnectivityInfo) Delete(ctx context.Context) error {
	_, err := i.client.rest.Do(ctx, &onap.Request{
		Method: "DELETE",
		Action: fmt.Sprintf("delete connectivity info of region %s", i.CloudRegion),
		URL:    i.client.connectivityURL(i.CloudRegion),
	})
	return err
}
