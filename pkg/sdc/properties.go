package sdc

// Property is a catalog object property.
type Property struct {
	UniqueID       string
	Name           string
	Type           string
	ParentUniqueID string
	Value          string
	Description    string
	GetInputValues []map[string]string
	// DeclareInput asks AddProperty to also promote the property to an
	// input once declared.
	DeclareInput bool
}

// Input is a declared catalog object input.
type Input struct {
	UniqueID     string
	Type         string
	Name         string
	DefaultValue string
}

// Component is a component instance composed into a catalog object,
// such as a VF placed into a service.
type Component struct {
	CreatedFromCsar    bool
	ActualComponentUID string
	UniqueID           string
	NormalizedName     string
	Name               string
	OriginType         string
	CustomizationUUID  string
	ComponentUID       string
	ComponentVersion   string
	ToscaComponentName string
	ComponentName      string
}
