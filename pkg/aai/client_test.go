package aai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adenisiewicz/onapsdk-go/pkg/config"
	"github.com/adenisiewicz/onapsdk-go/pkg/onap"
)

func testClient(server *httptest.Server) *Client {
	return NewClient(&config.Settings{AAIURL: server.URL, AAIAPIVersion: "v16"})
}

func TestCustomerServiceInstances(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/aai/v16/business/customers/customer/generic/service-subscriptions/service-subscription/vFW/service-instances",
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"service-instance": [
				{"service-instance-id": "instance-1", "service-instance-name": "first", "orchestration-status": "Active"},
				{"service-instance-id": "instance-2", "service-instance-name": "second"}
			]}`))
		})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := testClient(server)
	customer := &Customer{client: client, GlobalCustomerID: "generic"}
	sub := &ServiceSubscription{client: client, customer: customer, ServiceType: "vFW"}

	instance, err := sub.ServiceInstanceByName(context.Background(), "first")
	require.NoError(t, err)
	assert.Equal(t, "instance-1", instance.InstanceID)
	assert.Equal(t, "Active", instance.OrchestrationStatus)

	_, err = sub.ServiceInstanceByName(context.Background(), "missing")
	assert.True(t, errors.Is(err, onap.ErrNotFound))
}

func TestServiceInstanceVnfInstances(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/aai/v16/business/customers/customer/generic/service-subscriptions/service-subscription/vFW/service-instances/service-instance/instance-1/relationship-list",
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"relationship": [
				{"related-to": "generic-vnf", "related-link": "/aai/v16/network/generic-vnfs/generic-vnf/vnf-1"},
				{"related-to": "owning-entity", "related-link": "/aai/v16/business/owning-entities/owning-entity/oe-1"}
			]}`))
		})
	mux.HandleFunc("/aai/v16/network/generic-vnfs/generic-vnf/vnf-1",
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"vnf-id": "vnf-1", "vnf-name": "test-vnf", "orchestration-status": "Active", "in-maint": false}`))
		})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := testClient(server)
	customer := &Customer{client: client, GlobalCustomerID: "generic"}
	sub := &ServiceSubscription{client: client, customer: customer, ServiceType: "vFW"}
	instance := &ServiceInstance{client: client, subscription: sub, InstanceID: "instance-1"}

	vnfs, err := instance.VnfInstances(context.Background())
	require.NoError(t, err)
	require.Len(t, vnfs, 1)
	assert.Equal(t, "test-vnf", vnfs[0].VnfName)
}

func TestLinkToCloudRegionAndTenant(t *testing.T) {
	var sent Relationship
	mux := http.NewServeMux()
	mux.HandleFunc("/aai/v16/business/customers/customer/generic/service-subscriptions/service-subscription/vFW/relationship-list/relationship",
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(body, &sent))
			w.WriteHeader(http.StatusOK)
		})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := testClient(server)
	customer := &Customer{client: client, GlobalCustomerID: "generic"}
	sub := &ServiceSubscription{client: client, customer: customer, ServiceType: "vFW"}
	region := &CloudRegion{client: client, CloudOwner: "DT", CloudRegionID: "RegionOne"}
	tenant := &Tenant{client: client, region: region, TenantID: "tenant-id", TenantName: "tenant-name"}

	require.NoError(t, sub.LinkToCloudRegionAndTenant(context.Background(), region, tenant))
	assert.Equal(t, "tenant", sent.RelatedTo)
	assert.Contains(t, sent.RelatedLink, "DT/RegionOne/tenants/tenant/tenant-id")
	assert.Equal(t, "cloud-region.cloud-owner", sent.RelationshipData[0].Key)
}

func TestCloudRegionTenants(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/aai/v16/cloud-infrastructure/cloud-regions/cloud-region/DT/RegionOne/tenants",
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"tenant": [{"tenant-id": "tenant-id", "tenant-name": "tenant-name"}]}`))
		})
	server := httptest.NewServer(mux)
	defer server.Close()

	region := &CloudRegion{client: testClient(server), CloudOwner: "DT", CloudRegionID: "RegionOne"}
	tenants, err := region.Tenants(context.Background())
	require.NoError(t, err)
	require.Len(t, tenants, 1)
	assert.Equal(t, "tenant-name", tenants[0].TenantName)
}

func TestOwningEntityByID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/aai/v16/business/owning-entities/owning-entity/oe-id",
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"owning-entity-id": "oe-id", "owning-entity-name": "test-oe"}`))
		})
	server := httptest.NewServer(mux)
	defer server.Close()

	entity, err := testClient(server).OwningEntityByID(context.Background(), "oe-id")
	require.NoError(t, err)
	assert.Equal(t, "test-oe", entity.Name)

	_, err = testClient(server).OwningEntityByID(context.Background(), "missing")
	assert.True(t, errors.Is(err, onap.ErrNotFound))
}

func TestCreateNamedBusinessResources(t *testing.T) {
	bodies := map[string]map[string]string{}
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		bodies[r.URL.Path] = body
		w.Write([]byte(`{}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := testClient(server)
	require.NoError(t, client.CreateLineOfBusiness(context.Background(), "test-lob"))
	require.NoError(t, client.CreatePlatform(context.Background(), "test-platform"))
	require.NoError(t, client.CreateProject(context.Background(), "test-project"))

	assert.Equal(t, map[string]string{"line-of-business-name": "test-lob"},
		bodies["/aai/v16/business/lines-of-business/line-of-business/test-lob"])
	assert.Equal(t, map[string]string{"platform-name": "test-platform"},
		bodies["/aai/v16/business/platforms/platform/test-platform"])
	assert.Equal(t, map[string]string{"project-name": "test-project"},
		bodies["/aai/v16/business/projects/project/test-project"])
}
