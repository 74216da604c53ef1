package sdc

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adenisiewicz/onapsdk-go/pkg/onap"
)

func TestServiceDistributed(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/sdc/v1/catalog/services/service-uuid/distribution",
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"distributionStatusOfServiceList": [
				{"distributionID": "dist-2"},
				{"distributionID": "dist-1"}
			]}`))
		})
	distributed := false
	mux.HandleFunc("/sdc/v1/catalog/services/distribution/dist-2",
		func(w http.ResponseWriter, r *http.Request) {
			status := "DOWNLOAD_NOT_OK"
			if distributed {
				status = "DOWNLOAD_OK"
			}
			w.Write([]byte(`{"distributionStatusList": [
				{"omfComponentID": "aai-ml", "status": "DOWNLOAD_OK", "timestamp": 100},
				{"omfComponentID": "SO", "status": "` + status + `", "timestamp": 100},
				{"omfComponentID": "SO", "status": "DOWNLOAD_NOT_OK", "timestamp": 50}
			]}`))
		})
	server := httptest.NewServer(mux)
	defer server.Close()

	svc := testClient(server).NewService("test-service")
	svc.identifier = "service-uuid"

	ok, err := svc.Distributed(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)

	distributed = true
	ok, err = svc.Distributed(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)

	id, err := svc.DistributionID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "dist-2", id)
}

func TestServiceAddResourceRequiresDraft(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	client := testClient(server)
	svc := client.NewService("test-service")
	svc.status = StatusCertified

	err := svc.AddResource(context.Background(), client.NewVf("test-vf", nil))
	var statusErr *onap.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, string(StatusDraft), statusErr.Required)
}

func TestServiceDistributeRequiresCertified(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	svc := testClient(server).NewService("test-service")
	svc.status = StatusDraft

	err := svc.Distribute(context.Background())
	var statusErr *onap.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, string(StatusCertified), statusErr.Required)
}

func TestServiceDeepLoadResolvesUniqueID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/sdc1/feProxy/rest/v1/screen",
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{
				"services": [
					{"uuid": "other-uuid", "name": "other", "uniqueId": "other-unique"},
					{"uuid": "service-uuid", "name": "test-service", "uniqueId": "service-unique"}
				],
				"resources": []
			}`))
		})
	server := httptest.NewServer(mux)
	defer server.Close()

	svc := testClient(server).NewService("test-service")
	svc.identifier = "service-uuid"

	id, err := svc.UniqueIdentifier(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "service-unique", id)
}
