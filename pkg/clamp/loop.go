package clamp

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"github.com/adenisiewicz/onapsdk-go/pkg/onap"
)

//go:embed schema_details.json
var loopDetailsSchema []byte

const (
	componentPolicy = "POLICY"
	componentDCAE   = "DCAE"

	stateSent = "SENT"

	dcaeDeploySuccess = "MICROSERVICE_INSTALLED_SUCCESSFULLY"
	dcaeDeployFailure = "MICROSERVICE_INSTALLATION_FAILED"
)

// ComponentState is the state CLAMP reports for one loop component
// (POLICY, DCAE).
type ComponentState struct {
	ComponentState struct {
		StateName   string `json:"stateName"`
		Description string `json:"description"`
	} `json:"componentState"`
}

// LoopPolicy is a microservice or operational policy attached to a loop.
type LoopPolicy struct {
	Name               string          `json:"name"`
	PolicyModel        json.RawMessage `json:"policyModel,omitempty"`
	ConfigurationsJSON json.RawMessage `json:"configurationsJson,omitempty"`
}

// VfModuleDetails is the VF module description embedded in the loop's
// model service, used to target operational policies.
type VfModuleDetails struct {
	ModelName              string `json:"vfModuleModelName"`
	ModelInvariantUUID     string `json:"vfModuleModelInvariantUUID"`
	ModelUUID              string `json:"vfModuleModelUUID"`
	ModelVersion           string `json:"vfModuleModelVersion"`
	ModelCustomizationUUID string `json:"vfModuleModelCustomizationUUID"`
}

// LoopDetails is the loop state CLAMP returns for a loop instance.
type LoopDetails struct {
	Name                 string                    `json:"name"`
	Components           map[string]ComponentState `json:"components"`
	MicroServicePolicies []LoopPolicy              `json:"microServicePolicies"`
	OperationalPolicies  []LoopPolicy              `json:"operationalPolicies"`
	ModelService         struct {
		ResourceDetails struct {
			VFModule map[string]VfModuleDetails `json:"VFModule"`
		} `json:"resourceDetails"`
	} `json:"modelService"`
}

func (d *LoopDetails) componentState(name string) string {
	return d.Components[name].ComponentState.StateName
}

// LoopInstance is a control loop created from a loop template.
type LoopInstance struct {
	client *Client

	Template string
	Name     string

	details *LoopDetails
}

// NewLoopInstance returns a handle for a loop to be created from the
// given template. The name is taken as-is; Create prefixes it with
// LOOP_ the way the CLAMP GUI does.
func (c *Client) NewLoopInstance(template, name string) *LoopInstance {
	return &LoopInstance{client: c, Template: template, Name: name}
}

func validateDetails(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(loopDetailsSchema),
		gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("validating loop details: %w", err)
	}
	if !result.Valid() {
		return fmt.Errorf("loop details do not match schema: %v", result.Errors())
	}
	return nil
}

func (l *LoopInstance) setDetails(data []byte) error {
	if err := validateDetails(data); err != nil {
		return err
	}
	details := &LoopDetails{}
	if err := json.Unmarshal(data, details); err != nil {
		return fmt.Errorf("decoding loop details: %w", err)
	}
	l.details = details
	return nil
}

// RefreshDetails fetches the loop state from CLAMP and validates it
// against the details schema.
func (l *LoopInstance) RefreshDetails(ctx context.Context) error {
	data, err := l.client.rest.Do(ctx, &onap.Request{
		Method: "GET",
		Action: fmt.Sprintf("get loop %s details", l.Name),
		URL:    l.client.loopURL(l.Name),
	})
	if err != nil {
		return err
	}
	return l.setDetails(data)
}

// Details returns the loop state, fetching it on first use.
func (l *LoopInstance) Details(ctx context.Context) (*LoopDetails, error) {
	if l.details == nil {
		if err := l.RefreshDetails(ctx); err != nil {
			return nil, err
		}
	}
	return l.details, nil
}

// Create instantiates the loop from its template. The returned loop
// must carry at least one microservice policy, otherwise the template
// was not usable and an error is returned.
func (l *LoopInstance) Create(ctx context.Context) error {
	data, err := l.client.rest.Do(ctx, &onap.Request{
		Method: "POST",
		Action: fmt.Sprintf("create loop %s", l.Name),
		URL:    l.client.loopURL("create", l.Name) + "?templateName=" + l.Template,
	})
	if err != nil {
		return err
	}
	l.Name = "LOOP_" + l.Name
	if err := l.setDetails(data); err != nil {
		return err
	}
	if len(l.details.MicroServicePolicies) == 0 {
		return fmt.Errorf("loop %s created without microservice policies", l.Name)
	}
	l.client.logger.Info("loop instance created", zap.String("loop", l.Name))
	return nil
}

// AddOperationalPolicy attaches an operational policy of the given type
// and version to the loop. CLAMP answers with the full loop state; the
// policy count must have grown for the call to count as a success.
func (l *LoopInstance) AddOperationalPolicy(ctx context.Context, policyType, policyVersion string) error {
	before, err := l.Details(ctx)
	if err != nil {
		return err
	}
	count := len(before.OperationalPolicies)
	data, err := l.client.rest.Do(ctx, &onap.Request{
		Method: "PUT",
		Action: fmt.Sprintf("add operational policy %s to loop %s", policyType, l.Name),
		URL:    l.client.loopURL("addOperationaPolicy", l.Name, "policyModel", policyType, policyVersion),
	})
	if err != nil {
		return err
	}
	if err := l.setDetails(data); err != nil {
		return err
	}
	if len(l.details.OperationalPolicies) <= count {
		return fmt.Errorf("operational policy %s was not added to loop %s", policyType, l.Name)
	}
	return nil
}

// RemoveOperationalPolicy detaches an operational policy from the loop.
func (l *LoopInstance) RemoveOperationalPolicy(ctx context.Context, policyType, policyVersion string) error {
	_, err := l.client.rest.Do(ctx, &onap.Request{
		Method: "PUT",
		Action: fmt.Sprintf("remove operational policy %s from loop %s", policyType, l.Name),
		URL:    l.client.loopURL("removeOperationaPolicy", l.Name, "policyModel", policyType, policyVersion),
	})
	if err != nil {
		return err
	}
	return l.RefreshDetails(ctx)
}

// UpdateMicroservicePolicy pushes the TCA threshold configuration to
// the loop's microservice policy.
func (l *LoopInstance) UpdateMicroservicePolicy(ctx context.Context) error {
	_, err := l.client.rest.Do(ctx, &onap.Request{
		Method: "POST",
		Action: fmt.Sprintf("update microservice policy of loop %s", l.Name),
		URL:    l.client.loopURL("updateMicroservicePolicy", l.Name),
		JSON:   tcaConfig(l.Name),
	})
	if err != nil {
		return fmt.Errorf("uploading TCA config for loop %s: %w", l.Name, err)
	}
	l.client.logger.Info("TCA config uploaded", zap.String("loop", l.Name))
	return nil
}

// UpdateOperationalPolicies pushes an operational policy configuration,
// built with DroolsConfig or FrequencyLimiterConfig, to the loop.
func (l *LoopInstance) UpdateOperationalPolicies(ctx context.Context, configs []OperationalPolicyConfig) error {
	_, err := l.client.rest.Do(ctx, &onap.Request{
		Method: "POST",
		Action: fmt.Sprintf("update operational policies of loop %s", l.Name),
		URL:    l.client.loopURL("updateOperationalPolicies", l.Name),
		JSON:   configs,
	})
	if err != nil {
		return fmt.Errorf("uploading operational policy config for loop %s: %w", l.Name, err)
	}
	l.client.logger.Info("operational policy config uploaded", zap.String("loop", l.Name))
	return nil
}

// DroolsConfig builds the drools operational policy configuration,
// targeting the VF modules of the loop's model service.
func (l *LoopInstance) DroolsConfig(ctx context.Context) ([]OperationalPolicyConfig, error) {
	details, err := l.Details(ctx)
	if err != nil {
		return nil, err
	}
	var target PolicyTarget
	for _, vfModule := range details.ModelService.ResourceDetails.VFModule {
		target = PolicyTarget{
			Type:                 "VFMODULE",
			ResourceID:           vfModule.ModelName,
			ModelInvariantID:     vfModule.ModelInvariantUUID,
			ModelVersionID:       vfModule.ModelUUID,
			ModelName:            vfModule.ModelName,
			ModelVersion:         vfModule.ModelVersion,
			ModelCustomizationID: vfModule.ModelCustomizationUUID,
		}
	}
	return droolsConfig(l.Name, target), nil
}

// FrequencyLimiterConfig builds the frequency limiter operational
// policy configuration.
func (l *LoopInstance) FrequencyLimiterConfig(limit int) []OperationalPolicyConfig {
	return frequencyLimiterConfig(l.Name, limit)
}

// actOnPolicy performs a policy action (submit, stop, restart) and
// checks the POLICY component moved: the action took when the state
// changed and, unless stopping, did not stay on SENT.
func (l *LoopInstance) actOnPolicy(ctx context.Context, action string) error {
	before, err := l.Details(ctx)
	if err != nil {
		return err
	}
	oldState := before.componentState(componentPolicy)
	_, err = l.client.rest.Do(ctx, &onap.Request{
		Method: "PUT",
		Action: fmt.Sprintf("%s policy of loop %s", action, l.Name),
		URL:    l.client.loopURL(action, l.Name),
	})
	if err != nil {
		return err
	}
	if err := l.RefreshDetails(ctx); err != nil {
		return err
	}
	newState := l.details.componentState(componentPolicy)
	if newState == oldState || (action != "stop" && newState == stateSent) {
		return fmt.Errorf("loop %s policy %s did not take: state %s", l.Name, action, newState)
	}
	l.client.logger.Info("loop policy action done",
		zap.String("loop", l.Name), zap.String("action", action), zap.String("state", newState))
	return nil
}

// Submit pushes the loop's policies to the policy engine.
func (l *LoopInstance) Submit(ctx context.Context) error {
	return l.actOnPolicy(ctx, "submit")
}

// Stop stops the loop's policies.
func (l *LoopInstance) Stop(ctx context.Context) error {
	return l.actOnPolicy(ctx, "stop")
}

// Restart restarts the loop's policies.
func (l *LoopInstance) Restart(ctx context.Context) error {
	return l.actOnPolicy(ctx, "restart")
}

// DeployMicroserviceToDCAE deploys the loop's microservice to DCAE and
// polls the loop details until the DCAE component reports the install
// finished one way or the other.
func (l *LoopInstance) DeployMicroserviceToDCAE(ctx context.Context) error {
	_, err := l.client.rest.Do(ctx, &onap.Request{
		Method: "PUT",
		Action: fmt.Sprintf("deploy loop %s microservice to DCAE", l.Name),
		URL:    l.client.loopURL("deploy", l.Name),
	})
	if err != nil {
		return err
	}
	if l.client.pollTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.client.pollTimeout)
		defer cancel()
	}
	ticker := time.NewTicker(l.client.pollInterval)
	defer ticker.Stop()
	for {
		if err := l.RefreshDetails(ctx); err != nil {
			return err
		}
		switch state := l.details.componentState(componentDCAE); state {
		case dcaeDeploySuccess:
			l.client.logger.Info("loop microservice deployed", zap.String("loop", l.Name))
			return nil
		case dcaeDeployFailure:
			return fmt.Errorf("deploying loop %s microservice to DCAE failed", l.Name)
		default:
			l.client.logger.Debug("loop microservice deploy in progress",
				zap.String("loop", l.Name), zap.String("state", state))
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for loop %s DCAE deploy: %w", l.Name, ctx.Err())
		case <-ticker.C:
		}
	}
}

// UndeployMicroserviceFromDCAE stops the running deployment.
func (l *LoopInstance) UndeployMicroserviceFromDCAE(ctx context.Context) error {
	data, err := l.client.rest.Do(ctx, &onap.Request{
		Method: "PUT",
		Action: fmt.Sprintf("undeploy loop %s microservice from DCAE", l.Name),
		URL:    l.client.loopURL("stop", l.Name),
	})
	if err != nil {
		return err
	}
	if len(data) > 0 {
		return fmt.Errorf("undeploying loop %s microservice: %s", l.Name, data)
	}
	return nil
}

// Delete removes the loop instance from CLAMP.
func (l *LoopInstance) Delete(ctx context.Context) error {
	l.client.logger.Debug("deleting loop instance", zap.String("loop", l.Name))
	_, err := l.client.rest.Do(ctx, &onap.Request{
		Method: "PUT",
		Action: fmt.Sprintf("delete loop %s", l.Name),
		URL:    l.client.loopURL("delete", l.Name),
	})
	return err
}
