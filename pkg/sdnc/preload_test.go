package sdnc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adenisiewicz/onapsdk-go/pkg/aai"
	"github.com/adenisiewicz/onapsdk-go/pkg/config"
	"github.com/adenisiewicz/onapsdk-go/pkg/sdc"
)

func TestUploadVfModulePreload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "/restconf/operations/VNF-API:preload-vnf-topology-operation", r.URL.Path)
		var request map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		input := request["input"].(map[string]any)
		assert.Equal(t, "PreloadVNFRequest",
			input["request-information"].(map[string]any)["request-action"])
		assert.Equal(t, "reserve",
			input["sdnc-request-header"].(map[string]any)["svc-action"])
		topology := input["vnf-topology-information"].(map[string]any)
		identifier := topology["vnf-topology-identifier"].(map[string]any)
		assert.Equal(t, "test-module-instance", identifier["vnf-name"])
		assert.Equal(t, "test-vnf", identifier["generic-vnf-name"])
		params := topology["vnf-parameters"].([]any)
		require.Len(t, params, 1)
		assert.Equal(t, "public_net_id", params[0].(map[string]any)["vnf-parameter-name"])
	}))
	defer server.Close()

	client := NewClient(&config.Settings{SDNCURL: server.URL})
	err := client.UploadVfModulePreload(context.Background(),
		&aai.VnfInstance{VnfName: "test-vnf", VnfType: "test-vnf-type", ServiceID: "service-uuid"},
		"test-module-instance",
		sdc.VfModule{ModelName: "TestVfModule..base..module-0"},
		[]VnfParameter{{Name: "public_net_id", Value: "net-id"}})
	require.NoError(t, err)
}
