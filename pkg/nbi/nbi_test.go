package nbi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adenisiewicz/onapsdk-go/pkg/aai"
	"github.com/adenisiewicz/onapsdk-go/pkg/config"
)

func testClient(server *httptest.Server) *Client {
	return NewClient(&config.Settings{
		NBIURL:       server.URL,
		PollInterval: 10 * time.Millisecond,
		PollTimeout:  time.Second,
	})
}

func TestStatusOK(t *testing.T) {
	status := http.StatusOK
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/nbi/api/v4/status", r.URL.Path)
		w.WriteHeader(status)
	}))
	defer server.Close()
	client := testClient(server)

	assert.True(t, client.StatusOK(context.Background()))
	status = http.StatusNotFound
	assert.False(t, client.StatusOK(context.Background()))
}

func TestServiceSpecifications(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/nbi/api/v4/serviceSpecification", r.URL.Path)
		fmt.Fprint(w, `[{
			"id": "spec-uuid",
			"name": "test-service",
			"invariantUUID": "invariant-uuid",
			"category": "Network Service",
			"distributionStatus": "DISTRIBUTED",
			"version": "1.0",
			"lifecycleStatus": "CERTIFIED"
		}]`)
	}))
	defer server.Close()

	specifications, err := testClient(server).ServiceSpecifications(context.Background())
	require.NoError(t, err)
	require.Len(t, specifications, 1)
	assert.Equal(t, "test-service", specifications[0].Name)
	assert.Equal(t, "DISTRIBUTED", specifications[0].DistributionStatus)
}

func TestCreateServiceOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "/nbi/api/v4/serviceOrder", r.URL.Path)
		var request map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		assert.Equal(t, "Consumer", request["category"])
		assert.NotEmpty(t, request["requestedStartDate"])
		parties := request["relatedParty"].([]any)
		require.Len(t, parties, 1)
		assert.Equal(t, "ONAPcustomer", parties[0].(map[string]any)["role"])
		fmt.Fprint(w, `{"id": "order-id", "state": "acknowledged"}`)
	}))
	defer server.Close()

	order, err := testClient(server).CreateServiceOrder(context.Background(),
		&aai.Customer{GlobalCustomerID: "generic"},
		&ServiceSpecification{ID: "spec-uuid", Name: "test-service"},
		"test-instance", "")
	require.NoError(t, err)
	assert.Equal(t, "order-id", order.ID)
	assert.False(t, order.Finished())
}

func TestServiceOrderCompleted(t *testing.T) {
	var polls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/nbi/api/v4/serviceOrder/order-id", r.URL.Path)
		state := "inProgress"
		if polls.Add(1) >= 3 {
			state = "completed"
		}
		fmt.Fprintf(w, `{"id": "order-id", "state": %q}`, state)
	}))
	defer server.Close()

	order := &ServiceOrder{client: testClient(server), ID: "order-id"}
	ok, err := order.Completed(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.GreaterOrEqual(t, polls.Load(), int32(3))
}

func TestServiceOrderFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id": "order-id", "state": "failed"}`)
	}))
	defer server.Close()

	order := &ServiceOrder{client: testClient(server), ID: "order-id"}
	ok, err := order.Completed(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}
