package coupon

import (
	"context"

	"github.com/kondoo/console/core"
	"github.com/kondoo/console/core/entity"
)

type (
	Client interface {
		ListCoupons(ctx context.Context) ([]Coupon, error)
		GetCoupon(ctx context.Context, id string) (Coupon, error)
		CreateCoupon(ctx context.Context, data NewCoupon) (Coupon, error)
		UpdateCoupon(ctx context.Context, id string, data UpdateCoupon) (Coupon, error)
		DeleteCoupon(ctx context.Context, id string) error
	}

	Service struct {
		client Client
		store  *entity.Store[Coupon]
		log    core.Logger
	}
)

func NewService(client Client, log core.Logger) *Service {
	return &Service{
		client: client,
		store:  entity.NewStore[Coupon](),
		log:    log,
	}
}

func (svc *Service) Store() *entity.Store[Coupon] { return svc.store }

func (svc *Service) FetchAll(ctx context.Context) ([]Coupon, error) {
	seq := svc.store.Issue()
	svc.store.Begin()
	items, err := svc.client.ListCoupons(ctx)
	if err != nil {
		svc.store.Fail(core.ErrorMessage(err, "could not load coupons"))
		return nil, err
	}
	svc.store.ReplaceAll(seq, items)
	return svc.store.Items(), nil
}

func (svc *Service) FetchByID(ctx context.Context, id string) (Coupon, error) {
	seq := svc.store.Issue()
	svc.store.Begin()
	cpn, err := svc.client.GetCoupon(ctx, id)
	if err != nil {
		svc.store.Fail(core.ErrorMessage(err, "could not load coupon"))
		return Coupon{}, err
	}
	svc.store.Insert(seq, cpn)
	return cpn, nil
}

func (svc *Service) Create(ctx context.Context, data NewCoupon) (Coupon, error) {
	if err := data.Validate(); err != nil {
		return Coupon{}, err
	}
	seq := svc.store.Issue()
	svc.store.Begin()
	cpn, err := svc.client.CreateCoupon(ctx, data)
	if err != nil {
		svc.store.Fail(core.ErrorMessage(err, "could not create coupon"))
		return Coupon{}, err
	}
	svc.store.Insert(seq, cpn)
	return cpn, nil
}

func (svc *Service) Update(ctx context.Context, id string, data UpdateCoupon) (Coupon, error) {
	if err := data.Validate(); err != nil {
		return Coupon{}, err
	}
	seq := svc.store.Issue()
	svc.store.Begin()
	cpn, err := svc.client.UpdateCoupon(ctx, id, data)
	if err != nil {
		svc.store.Fail(core.ErrorMessage(err, "could not update coupon"))
		return Coupon{}, err
	}
	svc.store.Apply(seq, cpn)
	return cpn, nil
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	svc.store.Begin()
	if err := svc.client.DeleteCoupon(ctx, id); err != nil {
		svc.store.Fail(core.ErrorMessage(err, "could not delete coupon"))
		return err
	}
	svc.store.Remove(id)
	return nil
}
