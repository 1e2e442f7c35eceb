package coupon

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/kondoo/console/core"
)

// Coupon is a discount code applied at checkout; pricing rules live
// server-side, the console only manages the records.
type Coupon struct {
	ID              string    `json:"_id"`
	Code            string    `json:"code"`
	DiscountPercent int       `json:"discountPercent"`
	MaxUses         int       `json:"maxUses,omitempty"`
	Uses            int       `json:"uses,omitempty"`
	ExpiresAt       time.Time `json:"expiresAt,omitempty"`
	IsActive        null.Bool `json:"isActive,omitempty"`
	CreatedAt       time.Time `json:"createdAt,omitempty"`
}

func (c Coupon) EntityID() string { return c.ID }

type NewCoupon struct {
	Code            string    `json:"code" validate:"required,couponcode"`
	DiscountPercent int       `json:"discountPercent" validate:"required,gte=1,lte=100"`
	MaxUses         int       `json:"maxUses" validate:"gte=0"`
	ExpiresAt       time.Time `json:"expiresAt"`
}

type UpdateCoupon struct {
	DiscountPercent *int       `json:"discountPercent" validate:"omitempty,gte=1,lte=100"`
	MaxUses         *int       `json:"maxUses" validate:"omitempty,gte=0"`
	ExpiresAt       *time.Time `json:"expiresAt"`
}

func (nc NewCoupon) Validate() error {
	if err := core.TranslateValidationErrors(core.Validate.Struct(nc)); err != nil {
		return err
	}
	if !nc.ExpiresAt.IsZero() && nc.ExpiresAt.Before(time.Now()) {
		return core.NewValidationError(nil, core.FieldError{Field: "expiresAt", Error: "expiry must be in the future"})
	}
	return nil
}

func (uc UpdateCoupon) Validate() error {
	return core.TranslateValidationErrors(core.Validate.Struct(uc))
}
