package stubapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/volatiletech/null/v8"

	"github.com/kondoo/console/core/coupon"
)

var errCouponNotFound = echo.NewHTTPError(http.StatusNotFound, "coupon not found")

func (s *server) registerCouponAPI(g *echo.Group) {
	g.GET("/coupons", s.listCoupons)
	g.POST("/coupons", s.createCoupon)
	g.GET("/coupons/:id", s.getCoupon)
	g.PUT("/coupons/:id", s.updateCoupon)
	g.DELETE("/coupons/:id", s.deleteCoupon)
}

func (s *server) listCoupons(c echo.Context) error {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return respond(c, http.StatusOK, s.db.coupons)
}

func (s *server) getCoupon(c echo.Context) error {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	if cp, ok := s.findCoupon(c.Param("id")); ok {
		return respond(c, http.StatusOK, cp)
	}
	return errCouponNotFound
}

func (s *server) createCoupon(c echo.Context) error {
	var payload coupon.NewCoupon
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed coupon payload")
	}
	if payload.Code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "code is required")
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	code := strings.ToUpper(payload.Code)
	for _, cp := range s.db.coupons {
		if cp.Code == code {
			return echo.NewHTTPError(http.StatusConflict, "coupon code already exists")
		}
	}
	cp := coupon.Coupon{
		ID:              newID(),
		Code:            code,
		DiscountPercent: payload.DiscountPercent,
		MaxUses:         payload.MaxUses,
		ExpiresAt:       payload.ExpiresAt,
		IsActive:        null.BoolFrom(true),
		CreatedAt:       time.Now().UTC(),
	}
	s.db.coupons = append([]coupon.Coupon{cp}, s.db.coupons...)
	return respond(c, http.StatusCreated, cp)
}

func (s *server) updateCoupon(c echo.Context) error {
	var payload coupon.UpdateCoupon
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed coupon payload")
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	cp, ok := s.findCoupon(c.Param("id"))
	if !ok {
		return errCouponNotFound
	}
	if payload.DiscountPercent != nil {
		cp.DiscountPercent = *payload.DiscountPercent
	}
	if payload.MaxUses != nil {
		cp.MaxUses = *payload.MaxUses
	}
	if payload.ExpiresAt != nil {
		cp.ExpiresAt = *payload.ExpiresAt
	}
	s.saveCoupon(cp)
	return respond(c, http.StatusOK, cp)
}

func (s *server) deleteCoupon(c echo.Context) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	id := c.Param("id")
	for i, cp := range s.db.coupons {
		if cp.ID == id {
			s.db.coupons = append(s.db.coupons[:i], s.db.coupons[i+1:]...)
			return c.NoContent(http.StatusNoContent)
		}
	}
	return errCouponNotFound
}

func (s *server) findCoupon(id string) (coupon.Coupon, bool) {
	for _, cp := range s.db.coupons {
		if cp.ID == id {
			return cp, true
		}
	}
	return coupon.Coupon{}, false
}

func (s *server) saveCoupon(cp coupon.Coupon) {
	for i := range s.db.coupons {
		if s.db.coupons[i].ID == cp.ID {
			s.db.coupons[i] = cp
			return
		}
	}
}
