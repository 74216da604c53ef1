package sdc

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/adenisiewicz/onapsdk-go/pkg/onap"
)

// catalogEntry is one element of a backend catalog listing.
type catalogEntry struct {
	UUID               string `json:"uuid"`
	InvariantUUID      string `json:"invariantUUID"`
	Name               string `json:"name"`
	Version            string `json:"version"`
	LifecycleState     string `json:"lifecycleState"`
	DistributionStatus string `json:"distributionStatus"`
	Category           string `json:"category"`
}

// resource is the state shared by catalog objects (Vf, Service). The
// catalog tracks three identifiers per object: uuid (stable per
// version), invariantUUID (stable across versions) and uniqueId (the
// internal id lifecycle actions are keyed on, only exposed by the
// screen endpoint).
type resource struct {
	client *Client

	Name string
	// kind is the catalog path segment, "resources" or "services".
	kind string

	identifier       string
	uniqueUUID       string
	uniqueIdentifier string
	version          string
	status           Status
}

func (r *resource) fillFromEntry(entry catalogEntry) {
	r.identifier = entry.UUID
	r.uniqueUUID = entry.InvariantUUID
	r.version = entry.Version
	r.status = ParseStatus(entry.LifecycleState, entry.DistributionStatus)
}

// fillFromDetails refreshes identifiers after a creation or lifecycle
// response, which carries the full object including uniqueId.
type resourceDetails struct {
	UUID               string `json:"uuid"`
	InvariantUUID      string `json:"invariantUUID"`
	UniqueID           string `json:"uniqueId"`
	Version            string `json:"version"`
	LifecycleState     string `json:"lifecycleState"`
	DistributionStatus string `json:"distributionStatus"`
}

func (r *resource) fillFromDetails(d resourceDetails) {
	r.identifier = d.UUID
	r.uniqueUUID = d.InvariantUUID
	r.uniqueIdentifier = d.UniqueID
	r.version = d.Version
	r.status = ParseStatus(d.LifecycleState, d.DistributionStatus)
}

// listCatalog fetches a backend catalog listing. resourceType narrows
// resource listings ("VF"); services take none.
func (c *Client) listCatalog(ctx context.Context, kind, resourceType string) ([]catalogEntry, error) {
	url := fmt.Sprintf("%s/%s", c.catalogBackURL(), kind)
	if resourceType != "" {
		url += "?resourceType=" + resourceType
	}
	var entries []catalogEntry
	err := c.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: fmt.Sprintf("get %s", kind),
		URL:    url,
	}, &entries)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// findLatest filters entries by name and keeps the highest version.
func findLatest(entries []catalogEntry, name string) (catalogEntry, bool) {
	var best catalogEntry
	found := false
	for _, entry := range entries {
		if entry.Name != name {
			continue
		}
		if !found || compareVersions(entry.Version, best.Version) > 0 {
			best = entry
			found = true
		}
	}
	return best, found
}

// deepLoad resolves the internal uniqueId through the screen listing.
// While the object sits in certification the screen is only visible to
// the tester user.
func (r *resource) deepLoad(ctx context.Context) error {
	req := &onap.Request{
		Method: "GET",
		Action: fmt.Sprintf("deep load %s", r.Name),
		URL:    r.client.screenURL(),
	}
	if r.status == StatusUnderCertification {
		req.Headers = onap.SDCTesterHeaders()
	}
	var listing map[string][]struct {
		UUID     string `json:"uuid"`
		Name     string `json:"name"`
		UniqueID string `json:"uniqueId"`
	}
	if err := r.client.rest.DoJSON(ctx, req, &listing); err != nil {
		return err
	}
	for _, entry := range listing[r.kind] {
		if entry.UUID == r.identifier {
			r.uniqueIdentifier = entry.UniqueID
			return nil
		}
	}
	return &onap.InvalidResponseError{Service: "SDC", Action: "deep load",
		Err: fmt.Errorf("%s %s (uuid %s) not present in screen listing", r.kind, r.Name, r.identifier)}
}

// lifecycleAction fires a lifecycle transition:
//
//	POST {catalog}/{kind}/{uniqueId}/lifecycleState/{action}
//
// Certification actions belong to the tester user, so callers pass the
// header set matching the acting role (nil keeps the creator default).
func (r *resource) lifecycleAction(ctx context.Context, action string, headers map[string]string) error {
	if r.uniqueIdentifier == "" {
		if err := r.deepLoad(ctx); err != nil {
			return err
		}
	}
	var details resourceDetails
	err := r.client.rest.DoJSON(ctx, &onap.Request{
		Method: "POST",
		Action: fmt.Sprintf("%s %s", action, r.Name),
		URL: fmt.Sprintf("%s/%s/%s/lifecycleState/%s",
			r.client.catalogFrontURL(), r.kind, r.uniqueIdentifier, action),
		JSON:    map[string]string{"userRemarks": strings.ToLower(action)},
		Headers: headers,
	}, &details)
	if err != nil {
		return err
	}
	r.fillFromDetails(details)
	r.client.logger.Info("lifecycle action performed",
		zap.String("name", r.Name), zap.String("action", action),
		zap.String("status", string(r.status)))
	return nil
}

// Checkin checks the draft in, freezing the current version.
func (r *resource) Checkin(ctx context.Context) error {
	return r.lifecycleAction(ctx, actionCheckin, nil)
}

// Checkout opens a new draft version of a checked-in object.
func (r *resource) Checkout(ctx context.Context) error {
	return r.lifecycleAction(ctx, actionCheckout, nil)
}

// RequestCertification submits the checked-in object for certification.
func (r *resource) RequestCertification(ctx context.Context) error {
	return r.lifecycleAction(ctx, actionCertificationReq, nil)
}

// StartCertification moves a submitted object into certification, an
// action owned by the tester user.
func (r *resource) StartCertification(ctx context.Context) error {
	return r.lifecycleAction(ctx, actionStartCertification, onap.SDCTesterHeaders())
}

// Certify certifies the object.
func (r *resource) Certify(ctx context.Context) error {
	return r.lifecycleAction(ctx, actionCertify, nil)
}

// propertiesURL points at the object's property collection.
func (r *resource) propertiesURL() string {
	return fmt.Sprintf("%s/%s/%s/properties",
		r.client.catalogFrontURL(), r.kind, r.uniqueIdentifier)
}

func (r *resource) inputsURL() string {
	return fmt.Sprintf("%s/%s/%s", r.client.catalogFrontURL(), r.kind, r.uniqueIdentifier)
}

// Properties lists the object's properties. An object without
// properties answers an empty body, which counts as none.
func (r *resource) Properties(ctx context.Context) ([]Property, error) {
	if r.uniqueIdentifier == "" {
		if err := r.deepLoad(ctx); err != nil {
			return nil, err
		}
	}
	body, err := r.client.rest.Do(ctx, &onap.Request{
		Method: "GET",
		Action: fmt.Sprintf("get %s properties", r.Name),
		URL:    r.propertiesURL(),
	})
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, nil
	}
	var raw []struct {
		UniqueID       string              `json:"uniqueId"`
		Name           string              `json:"name"`
		Type           string              `json:"type"`
		ParentUniqueID string              `json:"parentUniqueId"`
		Value          string              `json:"value"`
		Description    string              `json:"description"`
		GetInputValues []map[string]string `json:"getInputValues"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &onap.InvalidResponseError{Service: "SDC",
			Action: "get properties", Err: err}
	}
	props := make([]Property, 0, len(raw))
	for _, p := range raw {
		props = append(props, Property{
			UniqueID:       p.UniqueID,
			Name:           p.Name,
			Type:           p.Type,
			ParentUniqueID: p.ParentUniqueID,
			Value:          p.Value,
			Description:    p.Description,
			GetInputValues: p.GetInputValues,
		})
	}
	return props, nil
}

// Inputs lists the object's declared inputs.
func (r *resource) Inputs(ctx context.Context) ([]Input, error) {
	if r.uniqueIdentifier == "" {
		if err := r.deepLoad(ctx); err != nil {
			return nil, err
		}
	}
	var result struct {
		Inputs []struct {
			UniqueID     string `json:"uniqueId"`
			Type         string `json:"type"`
			Name         string `json:"name"`
			DefaultValue string `json:"defaultValue"`
		} `json:"inputs"`
	}
	err := r.client.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: fmt.Sprintf("get %s inputs", r.Name),
		URL:    r.inputsURL() + "/filteredDataByParams?include=inputs",
	}, &result)
	if err != nil {
		return nil, err
	}
	inputs := make([]Input, 0, len(result.Inputs))
	for _, in := range result.Inputs {
		inputs = append(inputs, Input{
			UniqueID:     in.UniqueID,
			Type:         in.Type,
			Name:         in.Name,
			DefaultValue: in.DefaultValue,
		})
	}
	return inputs, nil
}

// AddProperty declares a new property on the object. Only a draft can
// take new properties. A property flagged DeclareInput is promoted to
// an input right after.
func (r *resource) AddProperty(ctx context.Context, prop Property) error {
	if r.status != StatusDraft {
		return &onap.StatusError{Resource: fmt.Sprintf("%s %s (add property)", r.kind, r.Name),
			Current: string(r.status), Required: string(StatusDraft)}
	}
	if r.uniqueIdentifier == "" {
		if err := r.deepLoad(ctx); err != nil {
			return err
		}
	}
	err := r.client.rest.DoJSON(ctx, &onap.Request{
		Method: "POST",
		Action: fmt.Sprintf("add property %s to %s", prop.Name, r.Name),
		URL:    r.propertiesURL(),
		JSON: map[string]any{
			prop.Name: map[string]any{
				"name":        prop.Name,
				"type":        prop.Type,
				"value":       prop.Value,
				"description": prop.Description,
				"schema":      map[string]any{"property": map[string]any{"type": ""}},
			},
		},
	}, nil)
	if err != nil {
		return err
	}
	if prop.DeclareInput {
		return r.DeclareInputFor(ctx, prop)
	}
	return nil
}

// DeclareInputFor declares an input backed by the given property.
func (r *resource) DeclareInputFor(ctx context.Context, prop Property) error {
	if r.uniqueIdentifier == "" {
		if err := r.deepLoad(ctx); err != nil {
			return err
		}
	}
	if prop.UniqueID == "" || prop.ParentUniqueID == "" {
		// The property was built locally; resolve the server-side ids.
		props, err := r.Properties(ctx)
		if err != nil {
			return err
		}
		found := false
		for _, p := range props {
			if p.Name == prop.Name {
				prop.UniqueID = p.UniqueID
				prop.ParentUniqueID = p.ParentUniqueID
				prop.Type = p.Type
				found = true
				break
			}
		}
		if !found {
			return &onap.ParameterError{
				Message: fmt.Sprintf("property %q not found on %s %s", prop.Name, r.kind, r.Name)}
		}
	}
	return r.client.rest.DoJSON(ctx, &onap.Request{
		Method: "POST",
		Action: fmt.Sprintf("declare input for %s property", prop.Name),
		URL:    r.inputsURL() + "/create/inputs",
		JSON: map[string]any{
			r.uniqueIdentifier: []map[string]any{{
				"uniqueId":       prop.UniqueID,
				"type":           prop.Type,
				"name":           prop.Name,
				"parentUniqueId": prop.ParentUniqueID,
			}},
		},
	}, nil)
}

// Components lists the component instances composed into the object.
func (r *resource) Components(ctx context.Context) ([]Component, error) {
	if r.uniqueIdentifier == "" {
		if err := r.deepLoad(ctx); err != nil {
			return nil, err
		}
	}
	var result struct {
		ComponentInstances []struct {
			CreatedFromCsar    bool   `json:"createdFromCsar"`
			ActualComponentUID string `json:"actualComponentUid"`
			UniqueID           string `json:"uniqueId"`
			NormalizedName     string `json:"normalizedName"`
			Name               string `json:"name"`
			OriginType         string `json:"originType"`
			CustomizationUUID  string `json:"customizationUUID"`
			ComponentUID       string `json:"componentUid"`
			ComponentVersion   string `json:"componentVersion"`
			ToscaComponentName string `json:"toscaComponentName"`
			ComponentName      string `json:"componentName"`
		} `json:"componentInstances"`
	}
	err := r.client.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: fmt.Sprintf("get %s components", r.Name),
		URL:    r.inputsURL() + "/filteredDataByParams?include=componentInstances",
	}, &result)
	if err != nil {
		return nil, err
	}
	components := make([]Component, 0, len(result.ComponentInstances))
	for _, ci := range result.ComponentInstances {
		components = append(components, Component{
			CreatedFromCsar:    ci.CreatedFromCsar,
			ActualComponentUID: ci.ActualComponentUID,
			UniqueID:           ci.UniqueID,
			NormalizedName:     ci.NormalizedName,
			Name:               ci.Name,
			OriginType:         ci.OriginType,
			CustomizationUUID:  ci.CustomizationUUID,
			ComponentUID:       ci.ComponentUID,
			ComponentVersion:   ci.ComponentVersion,
			ToscaComponentName: ci.ToscaComponentName,
			ComponentName:      ci.ComponentName,
		})
	}
	return components, nil
}

// Identifier returns the catalog uuid.
func (r *resource) Identifier() string { return r.identifier }

// UniqueUUID returns the invariant uuid shared across versions.
func (r *resource) UniqueUUID() string { return r.uniqueUUID }

// UniqueIdentifier returns the internal uniqueId, resolving it lazily.
func (r *resource) UniqueIdentifier(ctx context.Context) (string, error) {
	if r.uniqueIdentifier == "" {
		if err := r.deepLoad(ctx); err != nil {
			return "", err
		}
	}
	return r.uniqueIdentifier, nil
}

// Version returns the catalog version string.
func (r *resource) Version() string { return r.version }

// Status returns the last known normalized status.
func (r *resource) Status() Status { return r.status }
