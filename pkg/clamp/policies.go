package clamp

// Typed renditions of the policy configurations the CLAMP GUI submits.

// MicroservicePolicyConfig configures the loop's TCA microservice
// policy.
type MicroservicePolicyConfig struct {
	Name               string          `json:"name"`
	ConfigurationsJSON tcaPolicyHolder `json:"configurationsJson"`
	Shared             bool            `json:"shared"`
}

type tcaPolicyHolder struct {
	TCAPolicy tcaPolicy `json:"tca.policy"`
}

type tcaPolicy struct {
	Domain              string               `json:"domain"`
	MetricsPerEventName []tcaMetricsPerEvent `json:"metricsPerEventName"`
}

type tcaMetricsPerEvent struct {
	PolicyScope                    string         `json:"policyScope"`
	ThresholdClosedLoopControlName string         `json:"thresholdClosedLoopControlName"`
	PolicyName                     string         `json:"policyName"`
	PolicyVersion                  string         `json:"policyVersion"`
	ControlLoopSchemaType          string         `json:"controlLoopSchemaType"`
	EventName                      string         `json:"eventName"`
	Thresholds                     []tcaThreshold `json:"thresholds"`
}

type tcaThreshold struct {
	Version               string `json:"version"`
	Severity              string `json:"severity"`
	ThresholdValue        int    `json:"thresholdValue"`
	ClosedLoopEventStatus string `json:"closedLoopEventStatus"`
	ClosedLoopControlName string `json:"closedLoopControlName"`
	Direction             string `json:"direction"`
	FieldPath             string `json:"fieldPath"`
}

func tcaConfig(loopName string) MicroservicePolicyConfig {
	return MicroservicePolicyConfig{
		Name: "MICROSERVICE_" + loopName,
		ConfigurationsJSON: tcaPolicyHolder{
			TCAPolicy: tcaPolicy{
				Domain: "measurementsForVfScaling",
				MetricsPerEventName: []tcaMetricsPerEvent{{
					PolicyScope:                    "DCAE",
					ThresholdClosedLoopControlName: loopName,
					PolicyName:                     "DCAE.Config_tca-hi-lo",
					PolicyVersion:                  "v0.0.1",
					ControlLoopSchemaType:          "VM",
					EventName:                      "vLoadBalancer",
					Thresholds: []tcaThreshold{{
						Version:               "1.0.2",
						Severity:              "MAJOR",
						ThresholdValue:        200,
						ClosedLoopEventStatus: "ONSET",
						ClosedLoopControlName: loopName,
						Direction:             "LESS_OR_EQUAL",
						FieldPath: "$.event.measurementsForVfScalingFields" +
							".vNicPerformanceArray[*].receivedTotalPacketsDelta",
					}},
				}},
			},
		},
	}
}

// OperationalPolicyConfig configures one operational policy of a loop.
type OperationalPolicyConfig struct {
	Name               string `json:"name"`
	ConfigurationsJSON any    `json:"configurationsJson"`
}

// PolicyTarget identifies the entity an operational policy acts on.
type PolicyTarget struct {
	Type                 string `json:"type"`
	ResourceID           string `json:"resourceID"`
	ModelInvariantID     string `json:"modelInvariantId"`
	ModelVersionID       string `json:"modelVersionId"`
	ModelName            string `json:"modelName"`
	ModelVersion         string `json:"modelVersion"`
	ModelCustomizationID string `json:"modelCustomizationId"`
}

type droolsControlLoop struct {
	ControlLoopName string `json:"controlLoopName"`
	Version         string `json:"version"`
	TriggerPolicy   string `json:"trigger_policy"`
	Timeout         string `json:"timeout"`
	Abatement       string `json:"abatement"`
}

type droolsPolicy struct {
	ID      string       `json:"id"`
	Recipe  string       `json:"recipe"`
	Retry   string       `json:"retry"`
	Timeout string       `json:"timeout"`
	Actor   string       `json:"actor"`
	Success string       `json:"success"`
	Failure string       `json:"failure"`
	Target  PolicyTarget `json:"target"`
}

type droolsOperationalPolicy struct {
	ControlLoop droolsControlLoop `json:"controlLoop"`
	Policies    []droolsPolicy    `json:"policies"`
}

type droolsConfigurations struct {
	OperationalPolicy droolsOperationalPolicy `json:"operational_policy"`
}

func droolsConfig(loopName string, target PolicyTarget) []OperationalPolicyConfig {
	const triggerPolicy = "unique-policy-id-1-scale-up"
	return []OperationalPolicyConfig{{
		Name: "OPERATIONAL_" + loopName,
		ConfigurationsJSON: droolsConfigurations{
			OperationalPolicy: droolsOperationalPolicy{
				ControlLoop: droolsControlLoop{
					ControlLoopName: loopName,
					Version:         "2.0.0",
					TriggerPolicy:   triggerPolicy,
					Timeout:         "1200",
					Abatement:       "false",
				},
				Policies: []droolsPolicy{{
					ID:      triggerPolicy,
					Recipe:  "VF Module Create",
					Retry:   "1",
					Timeout: "300",
					Actor:   "SO",
					Success: "final_success",
					Failure: "final_failure",
					Target:  target,
				}},
			},
		},
	}}
}

type frequencyLimiterConfigurations struct {
	ID         string `json:"id"`
	Actor      string `json:"actor"`
	Operation  string `json:"operation"`
	Limit      int    `json:"limit"`
	TimeWindow int    `json:"timeWindow"`
	TimeUnits  string `json:"timeUnits"`
}

func frequencyLimiterConfig(loopName string, limit int) []OperationalPolicyConfig {
	return []OperationalPolicyConfig{{
		Name: "OPERATIONAL_" + loopName,
		ConfigurationsJSON: frequencyLimiterConfigurations{
			ID:         loopName,
			Actor:      "SO",
			Operation:  "VF Module Create",
			Limit:      limit,
			TimeWindow: 10,
			TimeUnits:  "minute",
		},
	}}
}
