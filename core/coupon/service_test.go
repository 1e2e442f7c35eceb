package coupon

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kondoo/console/core"
)

type fakeClient struct {
	list []Coupon
	err  error
}

var _ Client = (*fakeClient)(nil)

func (f *fakeClient) ListCoupons(ctx context.Context) ([]Coupon, error) { return f.list, f.err }

func (f *fakeClient) GetCoupon(ctx context.Context, id string) (Coupon, error) {
	if f.err != nil {
		return Coupon{}, f.err
	}
	return Coupon{ID: id}, nil
}

func (f *fakeClient) CreateCoupon(ctx context.Context, data NewCoupon) (Coupon, error) {
	if f.err != nil {
		return Coupon{}, f.err
	}
	return Coupon{ID: "cp-new", Code: data.Code, DiscountPercent: data.DiscountPercent}, nil
}

func (f *fakeClient) UpdateCoupon(ctx context.Context, id string, data UpdateCoupon) (Coupon, error) {
	if f.err != nil {
		return Coupon{}, f.err
	}
	cpn := Coupon{ID: id}
	if data.DiscountPercent != nil {
		cpn.DiscountPercent = *data.DiscountPercent
	}
	return cpn, nil
}

func (f *fakeClient) DeleteCoupon(ctx context.Context, id string) error { return f.err }

func Test_Service_CreateAndDelete(t *testing.T) {
	client := &fakeClient{list: []Coupon{{ID: "cp1", Code: "WELCOME10"}}}
	svc := NewService(client, core.NewNopLogger())
	_, err := svc.FetchAll(context.Background())
	require.NoError(t, err)

	cpn, err := svc.Create(context.Background(), NewCoupon{
		Code:            "DIWALI-25",
		DiscountPercent: 25,
		ExpiresAt:       time.Now().Add(30 * 24 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "cp-new", cpn.ID)
	assert.Equal(t, "cp-new", svc.Store().Items()[0].ID)

	require.NoError(t, svc.Delete(context.Background(), "cp-new"))
	assert.Equal(t, 1, svc.Store().Len())
}

func Test_NewCoupon_Validate(t *testing.T) {
	tests := []struct {
		name    string
		data    NewCoupon
		wantFld string
	}{
		{name: "lowercase code", data: NewCoupon{Code: "diwali", DiscountPercent: 10}, wantFld: "code"},
		{name: "percent out of range", data: NewCoupon{Code: "DIWALI", DiscountPercent: 150}, wantFld: "discountPercent"},
		{name: "expiry in the past", data: NewCoupon{Code: "DIWALI", DiscountPercent: 10, ExpiresAt: time.Now().Add(-time.Hour)}, wantFld: "expiresAt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.data.Validate()
			var vErr *core.ValidationError
			require.ErrorAs(t, err, &vErr)
			require.NotEmpty(t, vErr.Fields)
			assert.Equal(t, tt.wantFld, vErr.Fields[0].Field)
		})
	}
}
