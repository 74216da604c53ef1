package so

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adenisiewicz/onapsdk-go/pkg/aai"
	"github.com/adenisiewicz/onapsdk-go/pkg/config"
	"github.com/adenisiewicz/onapsdk-go/pkg/onap"
	"github.com/adenisiewicz/onapsdk-go/pkg/sdc"
)

func testClient(server *httptest.Server) *Client {
	return NewClient(&config.Settings{
		SOURL:        server.URL,
		SOAPIVersion: "v7",
		PollInterval: 10 * time.Millisecond,
		PollTimeout:  time.Second,
	})
}

func TestParseInstantiationStatus(t *testing.T) {
	assert.Equal(t, StatusInProgress, ParseInstantiationStatus("IN_PROGRESS"))
	assert.Equal(t, StatusCompleted, ParseInstantiationStatus("COMPLETE"))
	assert.Equal(t, StatusFailed, ParseInstantiationStatus("FAILED"))
	assert.Equal(t, StatusUnknown, ParseInstantiationStatus("PENDING_MANUAL_TASK"))

	assert.True(t, StatusCompleted.Finished())
	assert.True(t, StatusFailed.Finished())
	assert.False(t, StatusInProgress.Finished())
	assert.False(t, StatusUnknown.Finished())
}

func TestWaitForFinish(t *testing.T) {
	var polls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/onap/so/infra/orchestrationRequests/v7/request-id",
		func(w http.ResponseWriter, r *http.Request) {
			state := "IN_PROGRESS"
			if polls.Add(1) >= 3 {
				state = "COMPLETE"
			}
			w.Write([]byte(`{"request": {"requestId": "request-id", "requestStatus": {"requestState": "` + state + `"}}}`))
		})
	server := httptest.NewServer(mux)
	defer server.Close()

	request := testClient(server).NewOrchestrationRequest("request-id")
	status, err := request.WaitForFinish(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, status)
	assert.GreaterOrEqual(t, polls.Load(), int32(3))
}

func TestWaitForFinishContextCancelled(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/onap/so/infra/orchestrationRequests/v7/request-id",
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"request": {"requestStatus": {"requestState": "IN_PROGRESS"}}}`))
		})
	server := httptest.NewServer(mux)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	request := testClient(server).NewOrchestrationRequest("request-id")
	_, err := request.WaitForFinish(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGetVnfInstantiationByName(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/onap/so/infra/orchestrationRequests/v7",
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "vnfInstanceName:EQUALS:test-vnf", r.URL.Query().Get("filter"))
			w.Write([]byte(`{"requestList": [{"request": {
				"requestId": "request-id",
				"requestScope": "vnf",
				"requestType": "createInstance",
				"instanceReferences": {"vnfInstanceId": "vnf-instance-id", "vnfInstanceName": "test-vnf"},
				"requestDetails": {
					"modelInfo": {"modelCustomizationName": "ubuntu16 0"},
					"lineOfBusiness": {"lineOfBusinessName": "lob"},
					"platform": {"platformName": "platform"},
					"relatedInstanceList": [
						{"relatedInstance": {"instanceId": "service-instance-id", "modelInfo": {"modelType": "service"}}}
					]
				}
			}}]}`))
		})
	server := httptest.NewServer(mux)
	defer server.Close()

	instantiation, err := testClient(server).GetVnfInstantiationByName(context.Background(), "test-vnf")
	require.NoError(t, err)
	assert.Equal(t, "vnf-instance-id", instantiation.InstanceID)
	assert.Equal(t, "service-instance-id", instantiation.ServiceInstanceID)
	assert.Equal(t, "ubuntu16 0", instantiation.ModelCustomizationName)
	assert.Equal(t, "lob", instantiation.LineOfBusiness)
}

func TestGetServiceInstantiationByNameNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/onap/so/infra/orchestrationRequests/v7",
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"requestList": []}`))
		})
	server := httptest.NewServer(mux)
	defer server.Close()

	_, err := testClient(server).GetServiceInstantiationByName(context.Background(), "missing")
	assert.True(t, errors.Is(err, onap.ErrNotFound))
}

func TestInstantiateVnfRequiresActiveService(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	instance := &aai.ServiceInstance{InstanceID: "instance-id", OrchestrationStatus: "Inventoried"}
	_, err := testClient(server).InstantiateVnfAlaCarte(context.Background(),
		instance, nil, sdc.Vnf{}, "lob", "platform", "")
	var statusErr *onap.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "Active", statusErr.Required)
}
