package nbi

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adenisiewicz/onapsdk-go/pkg/aai"
	"github.com/adenisiewicz/onapsdk-go/pkg/onap"
)

// Terminal service order states per TMF 641.
const (
	OrderStateCompleted = "completed"
	OrderStateFailed    = "failed"
	OrderStateRejected  = "rejected"
)

func zuluNow() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}

type orderRelatedParty struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	Name string `json:"name"`
}

type orderItemService struct {
	Name                 string `json:"name"`
	ServiceState         string `json:"serviceState"`
	ServiceSpecification struct {
		ID string `json:"id"`
	} `json:"serviceSpecification"`
}

type orderItem struct {
	ID      string           `json:"id"`
	Action  string           `json:"action"`
	Service orderItemService `json:"service"`
}

type serviceOrderRequest struct {
	ExternalID              string              `json:"externalId"`
	Priority                string              `json:"priority"`
	Description             string              `json:"description"`
	Category                string              `json:"category"`
	RequestedStartDate      string              `json:"requestedStartDate"`
	RequestedCompletionDate string              `json:"requestedCompletionDate"`
	RelatedParty            []orderRelatedParty `json:"relatedParty"`
	OrderItem               []orderItem         `json:"orderItem"`
}

// ServiceOrder is a TMF 641 order NBI executes against SO.
type ServiceOrder struct {
	client *Client

	ID          string `json:"id"`
	Href        string `json:"href"`
	ExternalID  string `json:"externalId"`
	Priority    string `json:"priority"`
	Description string `json:"description"`
	Category    string `json:"category"`
	State       string `json:"state"`
}

// ServiceOrders lists all service orders.
func (c *Client) ServiceOrders(ctx context.Context) ([]*ServiceOrder, error) {
	var orders []*ServiceOrder
	err := c.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: "get service orders",
		URL:    c.apiURL() + "/serviceOrder",
	}, &orders)
	if err != nil {
		return nil, err
	}
	for _, order := range orders {
		order.client = c
	}
	return orders, nil
}

// ServiceOrderByID fetches one service order.
func (c *Client) ServiceOrderByID(ctx context.Context, id string) (*ServiceOrder, error) {
	order := &ServiceOrder{client: c}
	err := c.rest.DoJSON(ctx, &onap.Request{
		Method: "GET",
		Action: fmt.Sprintf("get service order %s", id),
		URL:    c.apiURL() + "/serviceOrder/" + id,
	}, order)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// CreateServiceOrder orders a new service instance of the given
// specification for the customer. Empty name and externalID are filled
// with fresh uuids.
func (c *Client) CreateServiceOrder(ctx context.Context, customer *aai.Customer,
	specification *ServiceSpecification, name, externalID string) (*ServiceOrder, error) {
	if name == "" {
		name = uuid.NewString()
	}
	if externalID == "" {
		externalID = uuid.NewString()
	}
	now := zuluNow()
	request := serviceOrderRequest{
		ExternalID:              externalID,
		Priority:                "1",
		Description:             fmt.Sprintf("%s ordering on service %s", name, specification.Name),
		Category:                "Consumer",
		RequestedStartDate:      now,
		RequestedCompletionDate: now,
		RelatedParty: []orderRelatedParty{{
			ID:   customer.GlobalCustomerID,
			Role: "ONAPcustomer",
			Name: customer.GlobalCustomerID,
		}},
	}
	item := orderItem{ID: "1", Action: "add"}
	item.Service.Name = name
	item.Service.ServiceState = "active"
	item.Service.ServiceSpecification.ID = specification.ID
	request.OrderItem = []orderItem{item}

	order := &ServiceOrder{client: c}
	err := c.rest.DoJSON(ctx, &onap.Request{
		Method: "POST",
		Action: fmt.Sprintf("order service instance %s", name),
		URL:    c.apiURL() + "/serviceOrder",
		JSON:   request,
	}, order)
	if err != nil {
		return nil, err
	}
	c.logger.Info("service order created",
		zap.String("order_id", order.ID), zap.String("service_instance", name))
	return order, nil
}

// Refresh reloads the order state.
func (o *ServiceOrder) Refresh(ctx context.Context) error {
	refreshed, err := o.client.ServiceOrderByID(ctx, o.ID)
	if err != nil {
		return err
	}
	*o = *refreshed
	return nil
}

// Finished reports whether the order reached a terminal state.
func (o *ServiceOrder) Finished() bool {
	switch o.State {
	case OrderStateCompleted, OrderStateFailed, OrderStateRejected:
		return true
	}
	return false
}

// Completed polls the order on the configured interval until it reaches
// a terminal state, then reports whether it completed successfully.
func (o *ServiceOrder) Completed(ctx context.Context) (bool, error) {
	if o.client.pollTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.client.pollTimeout)
		defer cancel()
	}
	ticker := time.NewTicker(o.client.pollInterval)
	defer ticker.Stop()
	for {
		if err := o.Refresh(ctx); err != nil {
			return false, err
		}
		if o.Finished() {
			return o.State == OrderStateCompleted, nil
		}
		o.client.logger.Debug("service order still running",
			zap.String("order_id", o.ID), zap.String("state", o.State))
		select {
		case <-ctx.Done():
			return false, fmt.Errorf("waiting for service order %s: %w", o.ID, ctx.Err())
		case <-ticker.C:
		}
	}
}
