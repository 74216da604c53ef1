package so

// Typed request payloads for the serviceInstantiation API. SO expects
// the full requestDetails envelope on create and delete calls.

type instantiationRequest struct {
	RequestDetails requestDetails `json:"requestDetails"`
}

type requestDetails struct {
	RequestInfo         requestInfo          `json:"requestInfo"`
	ModelInfo           *modelInfo           `json:"modelInfo,omitempty"`
	CloudConfiguration  *cloudConfiguration  `json:"cloudConfiguration,omitempty"`
	SubscriberInfo      *subscriberInfo      `json:"subscriberInfo,omitempty"`
	RequestParameters   *requestParameters   `json:"requestParameters,omitempty"`
	OwningEntity        *owningEntityInfo    `json:"owningEntity,omitempty"`
	Project             *projectInfo         `json:"project,omitempty"`
	Platform            *platformInfo        `json:"platform,omitempty"`
	LineOfBusiness      *lineOfBusinessInfo  `json:"lineOfBusiness,omitempty"`
	RelatedInstanceList []relatedInstanceRef `json:"relatedInstanceList,omitempty"`
}

type requestInfo struct {
	InstanceName     string `json:"instanceName,omitempty"`
	ProductFamilyID  string `json:"productFamilyId,omitempty"`
	Source           string `json:"source"`
	SuppressRollback bool   `json:"suppressRollback"`
	RequestorID      string `json:"requestorId"`
}

type modelInfo struct {
	ModelType              string `json:"modelType"`
	ModelInvariantID       string `json:"modelInvariantId,omitempty"`
	ModelVersionID         string `json:"modelVersionId,omitempty"`
	ModelName              string `json:"modelName,omitempty"`
	ModelVersion           string `json:"modelVersion,omitempty"`
	ModelCustomizationID   string `json:"modelCustomizationId,omitempty"`
	ModelCustomizationName string `json:"modelCustomizationName,omitempty"`
}

type cloudConfiguration struct {
	TenantID         string `json:"tenantId"`
	CloudOwner       string `json:"cloudOwner"`
	LcpCloudRegionID string `json:"lcpCloudRegionId"`
}

type subscriberInfo struct {
	GlobalSubscriberID string `json:"globalSubscriberId"`
}

type requestParameters struct {
	SubscriptionServiceType string           `json:"subscriptionServiceType,omitempty"`
	UserParams              []map[string]any `json:"userParams"`
	ALaCarte                bool             `json:"aLaCarte"`
	TestAPI                 string           `json:"testApi,omitempty"`
}

type owningEntityInfo struct {
	OwningEntityID   string `json:"owningEntityId"`
	OwningEntityName string `json:"owningEntityName"`
}

type projectInfo struct {
	ProjectName string `json:"projectName"`
}

type platformInfo struct {
	PlatformName string `json:"platformName"`
}

type lineOfBusinessInfo struct {
	LineOfBusinessName string `json:"lineOfBusinessName"`
}

type relatedInstanceRef struct {
	RelatedInstance relatedInstance `json:"relatedInstance"`
}

type relatedInstance struct {
	InstanceID string    `json:"instanceId"`
	ModelInfo  modelInfo `json:"modelInfo"`
}

// instantiationResponse is the answer to every serviceInstantiation
// POST and DELETE.
type instantiationResponse struct {
	RequestReferences struct {
		RequestID  string `json:"requestId"`
		InstanceID string `json:"instanceId"`
	} `json:"requestReferences"`
}

const (
	requestSource    = "VID"
	requestRequestor = "demo"
	productFamilyID  = "1234"
	testAPIGR        = "GR_API"
)
