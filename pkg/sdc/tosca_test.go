package sdc

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testServiceTemplate = `
tosca_definitions_version: tosca_simple_yaml_1_1
topology_template:
  node_templates:
    ubuntu16 0:
      type: org.openecomp.resource.vf.Ubuntu16
      metadata:
        UUID: vnf-model-uuid
        invariantUUID: vnf-invariant-uuid
        customizationUUID: vnf-customization-uuid
        name: ubuntu16
        version: "1.0"
    extcp0:
      type: org.openecomp.resource.cp.extCP
      metadata:
        UUID: cp-uuid
  groups:
    ubuntu16 0..Ubuntu16..base_ubuntu16..module-0:
      type: org.openecomp.groups.VfModule
      metadata:
        vfModuleModelName: Ubuntu16..base_ubuntu16..module-0
        vfModuleModelUUID: module-model-uuid
        vfModuleModelInvariantUUID: module-invariant-uuid
        vfModuleModelCustomizationUUID: module-customization-uuid
        vfModuleModelVersion: "1"
      properties:
        initial_count: 1
        vf_module_type: Base
    other_group:
      type: org.openecomp.groups.NetworkCollection
`

func buildCsar(t *testing.T, name, content string) []byte {
	t.Helper()
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	entry, err := writer.Create(name)
	require.NoError(t, err)
	_, err = entry.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return buf.Bytes()
}

func TestParseServiceTemplate(t *testing.T) {
	csar := buildCsar(t, "Definitions/service-testservice-template.yml", testServiceTemplate)

	vnfs, err := parseServiceTemplate(csar)
	require.NoError(t, err)
	require.Len(t, vnfs, 1)

	vnf := vnfs[0]
	assert.Equal(t, "ubuntu16 0", vnf.Name)
	assert.Equal(t, "vnf-model-uuid", vnf.Metadata.UUID)
	assert.Equal(t, "vnf-invariant-uuid", vnf.Metadata.InvariantUUID)
	assert.Equal(t, "vnf-customization-uuid", vnf.Metadata.CustomizationUUID)

	require.Len(t, vnf.VfModules, 1)
	module := vnf.VfModules[0]
	assert.Equal(t, "module-model-uuid", module.ModelUUID)
	assert.Equal(t, "module-customization-uuid", module.ModelCustomizationUUID)
	assert.Equal(t, 1, module.Properties["initial_count"])
}

func TestParseServiceTemplateNoTemplate(t *testing.T) {
	csar := buildCsar(t, "Definitions/unrelated.yml", "{}")

	_, err := parseServiceTemplate(csar)
	assert.Error(t, err)
}

func TestParseServiceTemplateNotAnArchive(t *testing.T) {
	_, err := parseServiceTemplate([]byte("not a zip"))
	assert.Error(t, err)
}
