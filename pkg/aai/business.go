package aai

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/adenisiewicz/onapsdk-go/pkg/onap"
)

// OwningEntity is the business entity owning service instances.
type OwningEntity struct {
	ID              string `json:"owning-entity-id"`
	Name            string `json:"owning-entity-name"`
	ResourceVersion string `json:"resource-version,omitempty"`
}

func (c *Client) owningEntitiesURL() string {
	return c.rootURL() + "/business/owning-entities"
}

// OwningEntities lists every owning entity.
func (c *Client) OwningEntities(ctx context.Context) ([]OwningEntity, error) {
	var result struct {
		OwningEntity []OwningEntity `json:"owning-entity"`
	}
	err := c.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: "get owning entities",
		URL:    c.owningEntitiesURL(),
	}, &result)
	if err != nil {
		return nil, err
	}
	return result.OwningEntity, nil
}

// OwningEntityByName finds an owning entity by name, onap.ErrNotFound
// when missing.
func (c *Client) OwningEntityByName(ctx context.Context, name string) (OwningEntity, error) {
	entities, err := c.OwningEntities(ctx)
	if err != nil {
		return OwningEntity{}, err
	}
	for _, entity := range entities {
		if entity.Name == name {
			return entity, nil
		}
	}
	return OwningEntity{}, fmt.Errorf("owning entity %q: %w", name, onap.ErrNotFound)
}

// OwningEntityByID fetches an owning entity by its id.
func (c *Client) OwningEntityByID(ctx context.Context, id string) (OwningEntity, error) {
	var entity OwningEntity
	err := c.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: fmt.Sprintf("get owning entity %s", id),
		URL:    fmt.Sprintf("%s/owning-entity/%s", c.owningEntitiesURL(), url.PathEscape(id)),
	}, &entity)
	if err != nil {
		return OwningEntity{}, err
	}
	return entity, nil
}

// CreateOwningEntity registers an owning entity, generating its id.
func (c *Client) CreateOwningEntity(ctx context.Context, name string) (OwningEntity, error) {
	entity := OwningEntity{ID: uuid.NewString(), Name: name}
	err := c.rest.DoJSON(ctx, &onap.Request{
		Method: "PUT",
		Action: fmt.Sprintf("create owning entity %s", name),
		URL:    fmt.Sprintf("%s/owning-entity/%s", c.owningEntitiesURL(), entity.ID),
		JSON:   entity,
	}, nil)
	if err != nil {
		return OwningEntity{}, err
	}
	return entity, nil
}

// namedBusinessResource covers the simple name-keyed business objects:
// lines of business, platforms, projects. The singular is passed
// explicitly because it is not always collection minus the trailing s.
func (c *Client) createNamedBusinessResource(ctx context.Context, collection, singular, key, name string) error {
	return c.rest.DoJSON(ctx, &onap.Request{
		Method: "PUT",
		Action: fmt.Sprintf("create %s %s", singular, name),
		URL: fmt.Sprintf("%s/business/%s/%s/%s",
			c.rootURL(), collection, singular, url.PathEscape(name)),
		JSON: map[string]string{key: name},
	}, nil)
}

// CreateLineOfBusiness registers a line of business.
func (c *Client) CreateLineOfBusiness(ctx context.Context, name string) error {
	return c.createNamedBusinessResource(ctx, "lines-of-business", "line-of-business",
		"line-of-business-name", name)
}

// CreatePlatform registers a platform.
func (c *Client) CreatePlatform(ctx context.Context, name string) error {
	return c.createNamedBusinessResource(ctx, "platforms", "platform", "platform-name", name)
}

// CreateProject registers a project.
func (c *Client) CreateProject(ctx context.Context, name string) error {
	return c.createNamedBusinessResource(ctx, "projects", "project", "project-name", name)
}
