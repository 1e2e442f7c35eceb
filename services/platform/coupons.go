package platform

import (
	"context"

	"github.com/kondoo/console/core/coupon"
	"github.com/kondoo/console/services/rest"
)

var _ coupon.Client = (*CouponClient)(nil)

type CouponClient struct {
	rest *rest.Client
}

func NewCouponClient(rc *rest.Client) *CouponClient {
	return &CouponClient{rest: rc}
}

func (c *CouponClient) ListCoupons(ctx context.Context) ([]coupon.Coupon, error) {
	var out []coupon.Coupon
	if err := c.rest.Get(ctx, "/coupons", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CouponClient) GetCoupon(ctx context.Context, id string) (coupon.Coupon, error) {
	var out coupon.Coupon
	err := c.rest.Get(ctx, "/coupons/"+id, nil, &out)
	return out, err
}

func (c *CouponClient) CreateCoupon(ctx context.Context, data coupon.NewCoupon) (coupon.Coupon, error) {
	var out coupon.Coupon
	err := c.rest.Post(ctx, "/coupons", data, &out)
	return out, err
}

func (c *CouponClient) UpdateCoupon(ctx context.Context, id string, data coupon.UpdateCoupon) (coupon.Coupon, error) {
	var out coupon.Coupon
	err := c.rest.Put(ctx, "/coupons/"+id, data, &out)
	return out, err
}

func (c *CouponClient) DeleteCoupon(ctx context.Context, id string) error {
	return c.rest.Delete(ctx, "/coupons/"+id, nil)
}
