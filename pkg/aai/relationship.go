package aai

import (
	"context"

	"github.com/adenisiewicz/onapsdk-go/pkg/onap"
)

// RelationshipData is one key/value pair qualifying a relationship
// edge, such as cloud-region.cloud-owner.
type RelationshipData struct {
	Key   string `json:"relationship-key"`
	Value string `json:"relationship-value"`
}

// RelatedToProperty carries extra display properties of the related
// object.
type RelatedToProperty struct {
	Key   string `json:"property-key"`
	Value string `json:"property-value,omitempty"`
}

// Relationship is an edge in the AAI relationship-list connecting two
// inventory objects.
type Relationship struct {
	RelatedTo         string              `json:"related-to"`
	RelationshipLabel string              `json:"relationship-label,omitempty"`
	RelatedLink       string              `json:"related-link"`
	RelationshipData  []RelationshipData  `json:"relationship-data,omitempty"`
	RelatedToProperty []RelatedToProperty `json:"related-to-property,omitempty"`
}

type relationshipList struct {
	Relationship []Relationship `json:"relationship"`
}

// relationships lists the relationship-list of the object at url.
func (c *Client) relationships(ctx context.Context, url string) ([]Relationship, error) {
	var list relationshipList
	err := c.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: "get object relationships",
		URL:    url + "/relationship-list",
	}, &list)
	if err != nil {
		return nil, err
	}
	return list.Relationship, nil
}

// addRelationship adds an edge to the object at url.
func (c *Client) addRelationship(ctx context.Context, url string, rel Relationship) error {
	return c.rest.DoJSON(ctx, &onap.Request{
		Method: "PUT",
		Action: "add relationship",
		URL:    url + "/relationship-list/relationship",
		JSON:   rel,
	}, nil)
}
