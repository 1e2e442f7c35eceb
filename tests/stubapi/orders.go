package stubapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kondoo/console/core/entity"
	"github.com/kondoo/console/core/order"
)

const defaultPageSize = 10

var errOrderNotFound = echo.NewHTTPError(http.StatusNotFound, "order not found")

func (s *server) registerOrderAPI(g *echo.Group) {
	g.GET("/orders", s.listOrders)
	g.GET("/orders/:id", s.getOrder)
	g.PATCH("/orders/:id/status", s.updateOrderStatus)
}

func (s *server) listOrders(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = defaultPageSize
	}
	status := c.QueryParam("status")

	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	matched := make([]order.Order, 0, len(s.db.orders))
	for _, ord := range s.db.orders {
		if status != "" && ord.Status != status {
			continue
		}
		matched = append(matched, ord)
	}

	total := len(matched)
	totalPages := (total + limit - 1) / limit
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return respondPage(c, matched[start:end], &entity.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	})
}

func (s *server) getOrder(c echo.Context) error {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	if ord, ok := s.findOrder(c.Param("id")); ok {
		return respond(c, http.StatusOK, ord)
	}
	return errOrderNotFound
}

func (s *server) updateOrderStatus(c echo.Context) error {
	var payload struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed status payload")
	}
	if !order.ValidStatus(payload.Status) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order status")
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	ord, ok := s.findOrder(c.Param("id"))
	if !ok {
		return errOrderNotFound
	}
	ord.Status = payload.Status
	for i := range s.db.orders {
		if s.db.orders[i].ID == ord.ID {
			s.db.orders[i] = ord
			break
		}
	}
	return respond(c, http.StatusOK, ord)
}

func (s *server) findOrder(id string) (order.Order, bool) {
	for _, ord := range s.db.orders {
		if ord.ID == id {
			return ord, true
		}
	}
	return order.Order{}, false
}
