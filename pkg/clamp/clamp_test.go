package clamp

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adenisiewicz/onapsdk-go/pkg/config"
	"github.com/adenisiewicz/onapsdk-go/pkg/sdc"
)

func testClient(server *httptest.Server) *Client {
	return NewClient(&config.Settings{
		ClampURL:     server.URL,
		PollInterval: 10 * time.Millisecond,
		PollTimeout:  time.Second,
	})
}

func testService(name string) *sdc.Service {
	return sdc.NewClient(&config.Settings{}).NewService(name)
}

func detailsJSON(policyState, dcaeState string, operationalPolicies int) string {
	policies := ""
	for i := 0; i < operationalPolicies; i++ {
		if i > 0 {
			policies += ","
		}
		policies += fmt.Sprintf(`{"name": "OPERATIONAL_policy_%d"}`, i)
	}
	return fmt.Sprintf(`{
		"name": "LOOP_test",
		"components": {
			"POLICY": {"componentState": {"stateName": %q}},
			"DCAE": {"componentState": {"stateName": %q}}
		},
		"microServicePolicies": [{"name": "MICROSERVICE_test"}],
		"operationalPolicies": [%s]
	}`, policyState, dcaeState, policies)
}

func TestLoopTemplateName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/restservices/clds/v2/templates/", r.URL.Path)
		fmt.Fprint(w, `[
			{"name": "LOOP_TEMPLATE_other", "modelService": {"serviceDetails": {"name": "other-service"}}},
			{"name": "LOOP_TEMPLATE_test", "modelService": {"serviceDetails": {"name": "test-service"}}}
		]`)
	}))
	defer server.Close()
	client := testClient(server)

	name, err := client.LoopTemplateName(context.Background(), testService("test-service"))
	require.NoError(t, err)
	assert.Equal(t, "LOOP_TEMPLATE_test", name)

	_, err = client.LoopTemplateName(context.Background(), testService("missing-service"))
	require.Error(t, err)
	assert.False(t, client.TemplateExists(context.Background(), testService("missing-service")))
	assert.True(t, client.TemplateExists(context.Background(), testService("test-service")))
}

func TestPoliciesPresent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/restservices/clds/v2/policyToscaModels/", r.URL.Path)
		fmt.Fprint(w, `[
			{"policyAcronym": "TCA"},
			{"policyAcronym": "Drools"},
			{"policyAcronym": "FrequencyLimiter"}
		]`)
	}))
	defer server.Close()
	client := testClient(server)

	ok, err := client.PoliciesPresent(context.Background(), "Drools", 3)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = client.PoliciesPresent(context.Background(), "Drools", 30)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = client.PoliciesPresent(context.Background(), "Guard", 3)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoopCreate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/restservices/clds/v2/loop/create/test", r.URL.Path)
		assert.Equal(t, "LOOP_TEMPLATE_test", r.URL.Query().Get("templateName"))
		fmt.Fprint(w, detailsJSON("DESIGN", "BLUEPRINT_DEPLOYED", 0))
	}))
	defer server.Close()

	loop := testClient(server).NewLoopInstance("LOOP_TEMPLATE_test", "test")
	require.NoError(t, loop.Create(context.Background()))
	assert.Equal(t, "LOOP_test", loop.Name)

	details, err := loop.Details(context.Background())
	require.NoError(t, err)
	assert.Len(t, details.MicroServicePolicies, 1)
}

func TestLoopCreateWithoutMicroservicePolicies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"name": "LOOP_test",
			"components": {},
			"microServicePolicies": [],
			"operationalPolicies": []
		}`)
	}))
	defer server.Close()

	loop := testClient(server).NewLoopInstance("LOOP_TEMPLATE_test", "test")
	err := loop.Create(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "without microservice policies")
}

func TestLoopDetailsSchemaRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"components": {}}`)
	}))
	defer server.Close()

	loop := testClient(server).NewLoopInstance("LOOP_TEMPLATE_test", "test")
	err := loop.RefreshDetails(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema")
}

func TestAddOperationalPolicy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == "GET":
			fmt.Fprint(w, detailsJSON("DESIGN", "DESIGN", 0))
		case r.Method == "PUT":
			assert.Equal(t,
				"/restservices/clds/v2/loop/addOperationaPolicy/LOOP_test/policyModel/onap.policies.controlloop.Operational/1.0.0",
				r.URL.Path)
			fmt.Fprint(w, detailsJSON("DESIGN", "DESIGN", 1))
		}
	}))
	defer server.Close()

	loop := testClient(server).NewLoopInstance("LOOP_TEMPLATE_test", "LOOP_test")
	err := loop.AddOperationalPolicy(context.Background(), "onap.policies.controlloop.Operational", "1.0.0")
	require.NoError(t, err)
	assert.Len(t, loop.details.OperationalPolicies, 1)
}

func TestAddOperationalPolicyNotGrown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, detailsJSON("DESIGN", "DESIGN", 1))
	}))
	defer server.Close()

	loop := testClient(server).NewLoopInstance("LOOP_TEMPLATE_test", "LOOP_test")
	err := loop.AddOperationalPolicy(context.Background(), "onap.policies.controlloop.Operational", "1.0.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not added")
}

func TestSubmitComparesPolicyState(t *testing.T) {
	state := "DESIGN"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "PUT" {
			assert.Equal(t, "/restservices/clds/v2/loop/submit/LOOP_test", r.URL.Path)
			state = "SUBMITTED"
			return
		}
		fmt.Fprint(w, detailsJSON(state, "DESIGN", 1))
	}))
	defer server.Close()

	loop := testClient(server).NewLoopInstance("LOOP_TEMPLATE_test", "LOOP_test")
	require.NoError(t, loop.Submit(context.Background()))
}

func TestSubmitStuckOnSent(t *testing.T) {
	state := "DESIGN"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "PUT" {
			state = "SENT"
			return
		}
		fmt.Fprint(w, detailsJSON(state, "DESIGN", 1))
	}))
	defer server.Close()

	loop := testClient(server).NewLoopInstance("LOOP_TEMPLATE_test", "LOOP_test")
	err := loop.Submit(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not take")
}

func TestStopAcceptsSent(t *testing.T) {
	state := "SUBMITTED"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "PUT" {
			state = "SENT"
			return
		}
		fmt.Fprint(w, detailsJSON(state, "DESIGN", 1))
	}))
	defer server.Close()

	loop := testClient(server).NewLoopInstance("LOOP_TEMPLATE_test", "LOOP_test")
	require.NoError(t, loop.Stop(context.Background()))
}

func TestDeployMicroserviceToDCAE(t *testing.T) {
	var polls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "PUT" {
			assert.Equal(t, "/restservices/clds/v2/loop/deploy/LOOP_test", r.URL.Path)
			return
		}
		state := "PROCESSING_MICROSERVICE_INSTALLATION"
		if polls.Add(1) >= 3 {
			state = "MICROSERVICE_INSTALLED_SUCCESSFULLY"
		}
		fmt.Fprint(w, detailsJSON("SUBMITTED", state, 1))
	}))
	defer server.Close()

	loop := testClient(server).NewLoopInstance("LOOP_TEMPLATE_test", "LOOP_test")
	require.NoError(t, loop.DeployMicroserviceToDCAE(context.Background()))
	assert.GreaterOrEqual(t, polls.Load(), int32(3))
}

func TestDeployMicroserviceToDCAEFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "PUT" {
			return
		}
		fmt.Fprint(w, detailsJSON("SUBMITTED", "MICROSERVICE_INSTALLATION_FAILED", 1))
	}))
	defer server.Close()

	loop := testClient(server).NewLoopInstance("LOOP_TEMPLATE_test", "LOOP_test")
	err := loop.DeployMicroserviceToDCAE(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed")
}

func TestUndeployMicroserviceFromDCAE(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/restservices/clds/v2/loop/stop/LOOP_test", r.URL.Path)
	}))
	defer server.Close()

	loop := testClient(server).NewLoopInstance("LOOP_TEMPLATE_test", "LOOP_test")
	require.NoError(t, loop.UndeployMicroserviceFromDCAE(context.Background()))
}

func TestFrequencyLimiterConfig(t *testing.T) {
	loop := &LoopInstance{Name: "LOOP_test"}
	configs := loop.FrequencyLimiterConfig(2)
	require.Len(t, configs, 1)
	assert.Equal(t, "OPERATIONAL_LOOP_test", configs[0].Name)
}
