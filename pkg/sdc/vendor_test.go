package sdc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adenisiewicz/onapsdk-go/pkg/config"
)

func testClient(server *httptest.Server) *Client {
	return NewClient(&config.Settings{
		SDCFEURL: server.URL,
		SDCBEURL: server.URL,
	})
}

func TestVendorOnboard(t *testing.T) {
	var submitted bool
	mux := http.NewServeMux()
	mux.HandleFunc("/sdc1/feProxy/onboarding-api/v1.0/vendor-license-models",
		func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				w.Write([]byte(`{"results": []}`))
			case http.MethodPost:
				w.Write([]byte(`{"itemId": "vendor-id", "version": {"id": "version-id", "status": "Draft"}}`))
			}
		})
	mux.HandleFunc("/sdc1/feProxy/onboarding-api/v1.0/vendor-license-models/vendor-id/versions/version-id/actions",
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			submitted = true
			w.Write([]byte(`{}`))
		})
	server := httptest.NewServer(mux)
	defer server.Close()

	vendor := testClient(server).NewVendor("test-vendor")
	require.NoError(t, vendor.Onboard(context.Background()))
	assert.True(t, submitted)

	status, err := vendor.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusCertified, status)
}

func TestVendorExistsPicksLatestVersion(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/sdc1/feProxy/onboarding-api/v1.0/vendor-license-models",
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"results": [{"id": "vendor-id", "vendorName": "test-vendor"}]}`))
		})
	mux.HandleFunc("/sdc1/feProxy/onboarding-api/v1.0/items/vendor-id/versions",
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"results": [
				{"id": "v1", "status": "Certified"},
				{"id": "v2", "status": "Draft", "state": {"dirty": true}}
			]}`))
		})
	server := httptest.NewServer(mux)
	defer server.Close()

	vendor := testClient(server).NewVendor("test-vendor")
	exists, err := vendor.Exists(context.Background())
	require.NoError(t, err)
	assert.True(t, exists)

	version, err := vendor.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v2", version)
}

func TestVendorSubmitNotCreatedIsNoOp(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/sdc1/feProxy/onboarding-api/v1.0/vendor-license-models",
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			w.Write([]byte(`{"results": []}`))
		})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	vendor := testClient(server).NewVendor("test-vendor")
	require.NoError(t, vendor.Submit(context.Background()))
}

func TestVendorDefaultName(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	vendor := testClient(server).NewVendor("")
	assert.Equal(t, "Generic-Vendor", vendor.Name)
}
