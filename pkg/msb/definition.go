package msb

import (
	"context"
	"fmt"

	"github.com/adenisiewicz/onapsdk-go/pkg/onap"
)

// Definition is a multicloud-k8s resource bundle definition.
type Definition struct {
	client *Client

	RBName      string            `json:"rb-name"`
	RBVersion   string            `json:"rb-version"`
	ChartName   string            `json:"chart-name,omitempty"`
	Description string            `json:"description,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
}

func (c *Client) definitionURL(parts ...string) string {
	url := c.multicloudURL() + "/rb/definition"
	for _, part := range parts {
		url += "/" + part
	}
	return url
}

// Definitions lists all resource bundle definitions.
func (c *Client) Definitions(ctx context.Context) ([]*Definition, error) {
	var definitions []*Definition
	err := c.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: "get definitions",
		URL:    c.definitionURL(),
	}, &definitions)
	if err != nil {
		return nil, err
	}
	for _, definition := range definitions {
		definition.client = c
	}
	return definitions, nil
}

// DefinitionByNameAndVersion fetches one definition.
func (c *Client) DefinitionByNameAndVersion(ctx context.Context, rbName, rbVersion string) (*Definition, error) {
	definition := &Definition{client: c}
	err := c.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: fmt.Sprintf("get definition %s/%s", rbName, rbVersion),
		URL:    c.definitionURL(rbName, rbVersion),
	}, definition)
	if err != nil {
		return nil, err
	}
	return definition, nil
}

// CreateDefinition registers a definition and returns it as multicloud
// stored it.
func (c *Client) CreateDefinition(ctx context.Context, definition *Definition) (*Definition, error) {
	err := c.rest.DoJSON(ctx, &onap.Request{
		Method: "POST",
		Action: fmt.Sprintf("create definition %s/%s", definition.RBName, definition.RBVersion),
		URL:    c.definitionURL(),
		JSON:   definition,
	}, nil)
	if err != nil {
		return nil, err
	}
	return c.DefinitionByNameAndVersion(ctx, definition.RBName, definition.RBVersion)
}

// Delete removes the definition. An empty RBVersion removes every
// version under the name.
func (d *Definition) Delete(ctx context.Context) error {
	url := d.client.definitionURL(d.RBName)
	if d.RBVersion != "" {
		url = d.client.definitionURL(d.RBName, d.RBVersion)
	}
	_, err := d.client.rest.Do(ctx, &onap.Request{
		Method: "DELETE",
		Action: fmt.Sprintf("delete definition %s", d.RBName),
		URL:    url,
	})
	return err
}

// UploadArtifact pushes the definition's helm chart package.
func (d *Definition) UploadArtifact(ctx context.Context, pkg []byte) error {
	_, err := d.client.rest.Do(ctx, &onap.Request{
		Method: "POST",
		Action: fmt.Sprintf("upload definition %s artifact", d.RBName),
		URL:    d.client.definitionURL(d.RBName, d.RBVersion, "content"),
		Headers: map[string]string{
			"Content-Type": "",
			"Accept":       "",
		},
		Body: pkg,
	})
	return err
}

// Profile is an instantiation profile of a definition.
type Profile struct {
	client *Client

	RBName            string            `json:"rb-name"`
	RBVersion         string            `json:"rb-version"`
	ProfileName       string            `json:"profile-name"`
	ReleaseName       string            `json:"release-name,omitempty"`
	Namespace         string            `json:"namespace"`
	KubernetesVersion string            `json:"kubernetes-version"`
	Labels            map[string]string `json:"labels,omitempty"`
}

func (d *Definition) profileURL(parts ...string) string {
	url := d.client.definitionURL(d.RBName, d.RBVersion, "profile")
	for _, part := range parts {
		url += "/" + part
	}
	return url
}

// CreateProfile registers a profile under the definition. The release
// name defaults to the profile name.
func (d *Definition) CreateProfile(ctx context.Context, profileName, namespace, kubernetesVersion string) (*Profile, error) {
	profile := &Profile{
		RBName:            d.RBName,
		RBVersion:         d.RBVersion,
		ProfileName:       profileName,
		ReleaseName:       profileName,
		Namespace:         namespace,
		KubernetesVersion: kubernetesVersion,
	}
	err := d.client.rest.DoJSON(ctx, &onap.Request{
		Method: "POST",
		Action: fmt.Sprintf("create profile %s for definition %s", profileName, d.RBName),
		URL:    d.profileURL(),
		JSON:   profile,
	}, nil)
	if err != nil {
		return nil, err
	}
	return d.ProfileByName(ctx, profileName)
}

// Profiles lists the definition's profiles.
func (d *Definition) Profiles(ctx context.Context) ([]*Profile, error) {
	var profiles []*Profile
	err := d.client.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: fmt.Sprintf("get profiles of definition %s", d.RBName),
		URL:    d.profileURL(),
	}, &profiles)
	if err != nil {
		return nil, err
	}
	for _, profile := range profiles {
		profile.client = d.client
	}
	return profiles, nil
}

// ProfileByName fetches one profile of the definition.
func (d *Definition) ProfileByName(ctx context.Context, profileName string) (*Profile, error) {
	profile := &Profile{client: d.client}
	err := d.client.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: fmt.Sprintf("get profile %s of definition %s", profileName, d.RBName),
		URL:    d.profileURL(profileName),
	}, profile)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (p *Profile) url() string {
	return fmt.Sprintf("%s/rb/definition/%s/%s/profile/%s",
		p.client.multicloudURL(), p.RBName, p.RBVersion, p.ProfileName)
}

// Delete removes the profile.
func (p *Profile) Delete(ctx context.Context) error {
	_, err := p.client.rest.Do(ctx, &onap.Request{
		Method: "DELETE",
		Action: fmt.Sprintf("delete profile %s", p.ProfileName),
		URL:    p.url(),
	})
	return err
}

// UploadArtifact pushes the profile's configuration package.
func (p *Profile) UploadArtifact(ctx context.Context, pkg []byte) error {
	_, err := p.client.rest.Do(ctx, &onap.Request{
		Method: "POST",
		Action: fmt.Sprintf("upload profile %s artifact", p.ProfileName),
		URL:    p.url() + "/content",
		Headers: map[string]string{
			"Content-Type": "",
			"Accept":       "",
		},
		Body: pkg,
	})
	return err
}
