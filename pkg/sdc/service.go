package sdc

import (
	"context"
	"crypto/md5"
	"encoding/base64"
	"fmt"

	"go.uber.org/zap"

	"github.com/adenisiewicz/onapsdk-go/pkg/onap"
)

// Service is a service model in the SDC catalog. On top of the shared
// resource lifecycle it owns composition (adding VFs), distribution and
// the TOSCA model the orchestrator consumes.
type Service struct {
	resource

	// Resources are the VFs Onboard composes into the service.
	Resources []*Vf

	distributionID string
	// Vnfs and VfModules are filled by LoadToscaModel.
	Vnfs []Vnf
}

// NewService returns a service handle. The name defaults to
// "ONAP-test-Service".
func (c *Client) NewService(name string, resources ...*Vf) *Service {
	if name == "" {
		name = "ONAP-test-Service"
	}
	return &Service{
		resource:  resource{client: c, Name: name, kind: "services"},
		Resources: resources,
	}
}

// Services lists every service model in the catalog.
func (c *Client) Services(ctx context.Context) ([]*Service, error) {
	entries, err := c.listCatalog(ctx, "services", "")
	if err != nil {
		return nil, err
	}
	services := make([]*Service, 0, len(entries))
	for _, entry := range entries {
		svc := &Service{resource: resource{client: c, Name: entry.Name, kind: "services"}}
		svc.fillFromEntry(entry)
		services = append(services, svc)
	}
	return services, nil
}

// Exists checks for the service in the catalog, taking the highest
// version.
func (s *Service) Exists(ctx context.Context) (bool, error) {
	entries, err := s.client.listCatalog(ctx, s.kind, "")
	if err != nil {
		return false, err
	}
	entry, found := findLatest(entries, s.Name)
	if !found {
		s.client.logger.Info("service not found in SDC", zap.String("name", s.Name))
		return false, nil
	}
	s.fillFromEntry(entry)
	return true, nil
}

// Create creates the service draft unless it already exists.
func (s *Service) Create(ctx context.Context) error {
	exists, err := s.Exists(ctx)
	if err != nil {
		return err
	}
	if exists {
		s.client.logger.Warn("service already created in SDC", zap.String("name", s.Name))
		return nil
	}
	var details resourceDetails
	err = s.client.rest.DoJSON(ctx, &onap.Request{
		Method: "POST",
		Action: "create Service",
		URL:    s.client.catalogFrontURL() + "/services",
		JSON: map[string]any{
			"name":        s.Name,
			"description": "service",
			"categories": []map[string]any{{
				"name":           "Network Service",
				"normalizedName": "network service",
				"uniqueId":       "serviceNewCategory.network service",
			}},
			"componentType":      "SERVICE",
			"instantiationType":  "A-la-carte",
			"projectCode":        "123456",
			"icon":               "defaulticon",
			"tags":               []string{s.Name},
			"contactId":          "cs0008",
			"environmentContext": "General_Revenue-Bearing",
		},
	}, &details)
	if err != nil {
		return err
	}
	s.fillFromDetails(details)
	s.status = StatusDraft
	s.client.logger.Info("service created in SDC", zap.String("name", s.Name),
		zap.String("uuid", s.identifier))
	return nil
}

// AddResource drops a certified VF onto the service composition canvas.
func (s *Service) AddResource(ctx context.Context, vf *Vf) error {
	if s.status != StatusDraft {
		return &onap.StatusError{Resource: fmt.Sprintf("service %s (add resource)", s.Name),
			Current: string(s.status), Required: string(StatusDraft)}
	}
	serviceID, err := s.UniqueIdentifier(ctx)
	if err != nil {
		return err
	}
	vfID, err := vf.UniqueIdentifier(ctx)
	if err != nil {
		return err
	}
	err = s.client.rest.DoJSON(ctx, &onap.Request{
		Method: "POST",
		Action: fmt.Sprintf("add %s to Service %s", vf.Name, s.Name),
		URL: fmt.Sprintf("%s/services/%s/resourceInstance",
			s.client.catalogFrontURL(), serviceID),
		JSON: map[string]any{
			"name":             vf.Name,
			"componentVersion": vf.Version(),
			"posX":             100,
			"posY":             100,
			"uniqueId":         vfID,
			"originType":       "VF",
			"componentUid":     vfID,
			"icon":             "defaulticon",
		},
	}, nil)
	if err != nil {
		return err
	}
	s.client.logger.Info("resource added to service",
		zap.String("service", s.Name), zap.String("resource", vf.Name))
	return nil
}

// AddArtifactToVf attaches a deployment artifact (for example a DCAE
// blueprint) to a VF instance inside the service.
func (s *Service) AddArtifactToVf(ctx context.Context, vfName, artifactType, artifactName string, payload []byte) error {
	serviceID, err := s.UniqueIdentifier(ctx)
	if err != nil {
		return err
	}
	components, err := s.Components(ctx)
	if err != nil {
		return err
	}
	var instanceID string
	for _, component := range components {
		if component.ComponentName == vfName || component.Name == vfName {
			instanceID = component.UniqueID
			break
		}
	}
	if instanceID == "" {
		return &onap.ParameterError{
			Message: fmt.Sprintf("vf %q is not part of service %q", vfName, s.Name)}
	}
	encoded := base64.StdEncoding.EncodeToString(payload)
	sum := md5.Sum([]byte(encoded))
	return s.client.rest.DoJSON(ctx, &onap.Request{
		Method: "POST",
		Action: fmt.Sprintf("add artifact %s to vf %s", artifactName, vfName),
		URL: fmt.Sprintf("%s/services/%s/resourceInstance/%s/artifacts",
			s.client.catalogFrontURL(), serviceID, instanceID),
		Headers: map[string]string{
			"Content-MD5": base64.StdEncoding.EncodeToString(sum[:]),
		},
		JSON: map[string]any{
			"artifactLabel":     artifactName,
			"artifactName":      artifactName,
			"artifactType":      artifactType,
			"payloadData":       encoded,
			"description":       "deployment artifact",
			"artifactGroupType": "DEPLOYMENT",
		},
	}, nil)
}

// ApproveDistribution records governance approval for distribution, an
// action owned by the governor user.
func (s *Service) ApproveDistribution(ctx context.Context) error {
	serviceID, err := s.UniqueIdentifier(ctx)
	if err != nil {
		return err
	}
	return s.client.rest.DoJSON(ctx, &onap.Request{
		Method: "POST",
		Action: fmt.Sprintf("approve distribution of %s", s.Name),
		URL: fmt.Sprintf("%s/services/%s/distribution-state/approve",
			s.client.catalogFrontURL(), serviceID),
		JSON:    map[string]string{"userRemarks": "approve"},
		Headers: onap.SDCGovernorHeaders(),
	}, nil)
}

// Distribute pushes the certified service to the PROD distribution
// environment.
func (s *Service) Distribute(ctx context.Context) error {
	if s.status != StatusCertified {
		return &onap.StatusError{Resource: fmt.Sprintf("service %s (distribute)", s.Name),
			Current: string(s.status), Required: string(StatusCertified)}
	}
	serviceID, err := s.UniqueIdentifier(ctx)
	if err != nil {
		return err
	}
	err = s.client.rest.DoJSON(ctx, &onap.Request{
		Method: "POST",
		Action: fmt.Sprintf("distribute %s", s.Name),
		URL: fmt.Sprintf("%s/services/%s/distribution/PROD/activate",
			s.client.catalogFrontURL(), serviceID),
	}, nil)
	if err != nil {
		return err
	}
	s.status = StatusDistributed
	s.distributionID = ""
	s.client.logger.Info("service distribution activated", zap.String("name", s.Name))
	return nil
}

// DistributionID returns the id of the latest distribution.
func (s *Service) DistributionID(ctx context.Context) (string, error) {
	if s.distributionID != "" {
		return s.distributionID, nil
	}
	var result struct {
		List []struct {
			DistributionID string `json:"distributionID"`
		} `json:"distributionStatusOfServiceList"`
	}
	err := s.client.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: fmt.Sprintf("get distributions of %s", s.Name),
		URL: fmt.Sprintf("%s/services/%s/distribution",
			s.client.catalogBackURL(), s.identifier),
	}, &result)
	if err != nil {
		return "", err
	}
	if len(result.List) == 0 {
		return "", &onap.InvalidResponseError{Service: "SDC", Action: "get distributions",
			Err: fmt.Errorf("no distribution found for service %s", s.Name)}
	}
	s.distributionID = result.List[0].DistributionID
	return s.distributionID, nil
}

// Distributed reports whether the latest distribution reached every
// consumer: each component's most recent entry must be DOWNLOAD_OK.
func (s *Service) Distributed(ctx context.Context) (bool, error) {
	distributionID, err := s.DistributionID(ctx)
	if err != nil {
		return false, err
	}
	var result struct {
		List []struct {
			ComponentID string `json:"omfComponentID"`
			Status      string `json:"status"`
			Timestamp   int64  `json:"timestamp"`
		} `json:"distributionStatusList"`
	}
	err = s.client.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: fmt.Sprintf("get distribution %s status", distributionID),
		URL: fmt.Sprintf("%s/services/distribution/%s",
			s.client.catalogBackURL(), distributionID),
	}, &result)
	if err != nil {
		return false, err
	}
	latest := map[string]struct {
		status    string
		timestamp int64
	}{}
	for _, entry := range result.List {
		if known, ok := latest[entry.ComponentID]; !ok || entry.Timestamp > known.timestamp {
			latest[entry.ComponentID] = struct {
				status    string
				timestamp int64
			}{entry.Status, entry.Timestamp}
		}
	}
	if len(latest) == 0 {
		return false, nil
	}
	for component, state := range latest {
		if state.status != distributionDownloadOK {
			s.client.logger.Debug("component has not downloaded the distribution",
				zap.String("component", component), zap.String("status", state.status))
			return false, nil
		}
	}
	return true, nil
}

// ToscaModel downloads the service's CSAR from the catalog backend.
func (s *Service) ToscaModel(ctx context.Context) ([]byte, error) {
	if s.identifier == "" {
		if _, err := s.Exists(ctx); err != nil {
			return nil, err
		}
	}
	return s.client.rest.Do(ctx, &onap.Request{
		Method: "GET",
		Action: fmt.Sprintf("get tosca model of %s", s.Name),
		URL: fmt.Sprintf("%s/services/%s/toscaModel",
			s.client.catalogBackURL(), s.identifier),
		Headers: map[string]string{"Accept": "application/octet-stream"},
	})
}

// LoadToscaModel downloads and parses the CSAR, populating Vnfs (and
// their VF modules).
func (s *Service) LoadToscaModel(ctx context.Context) error {
	csar, err := s.ToscaModel(ctx)
	if err != nil {
		return err
	}
	vnfs, err := parseServiceTemplate(csar)
	if err != nil {
		return err
	}
	s.Vnfs = vnfs
	return nil
}

// Onboard drives the service to distributed: create the draft, compose
// the Resources, check in, certify, distribute.
func (s *Service) Onboard(ctx context.Context) error {
	for {
		switch s.status {
		case StatusNone:
			if err := s.Create(ctx); err != nil {
				return err
			}
		case StatusDraft:
			for _, vf := range s.Resources {
				if err := s.AddResource(ctx, vf); err != nil {
					return err
				}
			}
			if err := s.Checkin(ctx); err != nil {
				return err
			}
		case StatusCheckedIn:
			if err := s.Certify(ctx); err != nil {
				return err
			}
		case StatusCertified:
			if err := s.Distribute(ctx); err != nil {
				return err
			}
		case StatusDistributed:
			return nil
		default:
			return &onap.StatusError{Resource: "service " + s.Name,
				Current: string(s.status), Required: "an onboarding status"}
		}
	}
}
