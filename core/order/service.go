package order

import (
	"context"

	"github.com/kondoo/console/core"
	"github.com/kondoo/console/core/entity"
)

type (
	Client interface {
		ListOrders(ctx context.Context, filter Filter) ([]Order, *entity.Pagination, error)
		GetOrder(ctx context.Context, id string) (Order, error)
		UpdateOrderStatus(ctx context.Context, id, status string) (Order, error)
	}

	// Service holds the paginated store variant: items are the current page,
	// with the envelope's pagination block alongside.
	Service struct {
		client Client
		store  *entity.Store[Order]
		log    core.Logger
	}
)

func NewService(client Client, log core.Logger) *Service {
	return &Service{
		client: client,
		store:  entity.NewStore[Order](),
		log:    log,
	}
}

func (svc *Service) Store() *entity.Store[Order] { return svc.store }

// FetchAll loads one page of orders.
func (svc *Service) FetchAll(ctx context.Context, filter Filter) ([]Order, *entity.Pagination, error) {
	seq := svc.store.Issue()
	svc.store.Begin()
	items, page, err := svc.client.ListOrders(ctx, filter)
	if err != nil {
		svc.store.Fail(core.ErrorMessage(err, "could not load orders"))
		return nil, nil, err
	}
	svc.store.ReplaceAll(seq, items)
	svc.store.SetPagination(page)
	return svc.store.Items(), page, nil
}

func (svc *Service) FetchByID(ctx context.Context, id string) (Order, error) {
	seq := svc.store.Issue()
	svc.store.Begin()
	ord, err := svc.client.GetOrder(ctx, id)
	if err != nil {
		svc.store.Fail(core.ErrorMessage(err, "could not load order"))
		return Order{}, err
	}
	svc.store.Insert(seq, ord)
	return ord, nil
}

func (svc *Service) UpdateStatus(ctx context.Context, id, status string) (Order, error) {
	if !ValidStatus(status) {
		return Order{}, core.NewValidationError(nil, core.FieldError{Field: "status", Error: "unknown order status"})
	}
	seq := svc.store.Issue()
	svc.store.Begin()
	ord, err := svc.client.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		svc.store.Fail(core.ErrorMessage(err, "could not update order status"))
		return Order{}, err
	}
	svc.store.Apply(seq, ord)
	return ord, nil
}
