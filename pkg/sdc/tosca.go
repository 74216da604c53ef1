package sdc

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/adenisiewicz/onapsdk-go/pkg/onap"
)

// Vnf is a VNF node template extracted from a distributed service's
// TOSCA model. Its model identifiers feed orchestration requests.
type Vnf struct {
	Name             string
	NodeTemplateType string
	Metadata         VnfMetadata
	VfModules        []VfModule
}

// VnfMetadata carries the model identifiers of a VNF node template.
type VnfMetadata struct {
	UUID              string
	InvariantUUID     string
	CustomizationUUID string
	Name              string
	Version           string
}

// VfModule is a VF module group extracted from the TOSCA model.
type VfModule struct {
	Name                   string
	GroupType              string
	ModelName              string
	ModelUUID              string
	ModelInvariantUUID     string
	ModelCustomizationUUID string
	ModelVersion           string
	// Properties keeps the raw group properties (initial_count,
	// vf_module_type, ...).
	Properties map[string]any
}

const (
	vnfNodeTypePrefix = "org.openecomp.resource.vf."
	vfModuleGroupType = "org.openecomp.groups.VfModule"
)

type serviceTemplate struct {
	TopologyTemplate struct {
		NodeTemplates map[string]templateNode  `yaml:"node_templates"`
		Groups        map[string]templateGroup `yaml:"groups"`
	} `yaml:"topology_template"`
}

type templateNode struct {
	Type     string            `yaml:"type"`
	Metadata map[string]string `yaml:"metadata"`
}

type templateGroup struct {
	Type       string            `yaml:"type"`
	Metadata   map[string]string `yaml:"metadata"`
	Properties map[string]any    `yaml:"properties"`
}

// parseServiceTemplate reads the service template out of a CSAR and
// extracts VNFs from its node templates and VF modules from its
// groups. VF modules attach to the VNF whose normalized name prefixes
// the module name, the way SDC names the groups it generates.
func parseServiceTemplate(csar []byte) ([]Vnf, error) {
	archive, err := zip.NewReader(bytes.NewReader(csar), int64(len(csar)))
	if err != nil {
		return nil, &onap.InvalidResponseError{Service: "SDC",
			Action: "parse tosca model", Err: fmt.Errorf("not a CSAR archive: %w", err)}
	}
	var template serviceTemplate
	found := false
	for _, file := range archive.File {
		if !strings.HasPrefix(file.Name, "Definitions/service-") ||
			!strings.HasSuffix(file.Name, "-template.yml") {
			continue
		}
		reader, err := file.Open()
		if err != nil {
			return nil, err
		}
		content, err := io.ReadAll(reader)
		reader.Close()
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(content, &template); err != nil {
			return nil, &onap.InvalidResponseError{Service: "SDC",
				Action: "parse tosca model", Err: err}
		}
		found = true
		break
	}
	if !found {
		return nil, &onap.InvalidResponseError{Service: "SDC",
			Action: "parse tosca model",
			Err:    fmt.Errorf("no service template found in CSAR")}
	}

	var modules []VfModule
	for name, group := range template.TopologyTemplate.Groups {
		if group.Type != vfModuleGroupType {
			continue
		}
		modules = append(modules, VfModule{
			Name:                   name,
			GroupType:              group.Type,
			ModelName:              group.Metadata["vfModuleModelName"],
			ModelUUID:              group.Metadata["vfModuleModelUUID"],
			ModelInvariantUUID:     group.Metadata["vfModuleModelInvariantUUID"],
			ModelCustomizationUUID: group.Metadata["vfModuleModelCustomizationUUID"],
			ModelVersion:           group.Metadata["vfModuleModelVersion"],
			Properties:             group.Properties,
		})
	}

	var vnfs []Vnf
	for name, node := range template.TopologyTemplate.NodeTemplates {
		if !strings.HasPrefix(node.Type, vnfNodeTypePrefix) {
			continue
		}
		vnf := Vnf{
			Name:             name,
			NodeTemplateType: node.Type,
			Metadata: VnfMetadata{
				UUID:              node.Metadata["UUID"],
				InvariantUUID:     node.Metadata["invariantUUID"],
				CustomizationUUID: node.Metadata["customizationUUID"],
				Name:              node.Metadata["name"],
				Version:           node.Metadata["version"],
			},
		}
		prefix := normalizeModelName(name)
		for _, module := range modules {
			if strings.HasPrefix(normalizeModelName(module.Name), prefix) {
				vnf.VfModules = append(vnf.VfModules, module)
			}
		}
		vnfs = append(vnfs, vnf)
	}
	return vnfs, nil
}

// normalizeModelName folds a model name the way SDC does when deriving
// group names: lowercase, spaces and dashes dropped.
func normalizeModelName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "")
	name = strings.ReplaceAll(name, "-", "")
	return name
}
