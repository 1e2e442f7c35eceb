package platform

import (
	"context"
	"strconv"

	"github.com/kondoo/console/core/entity"
	"github.com/kondoo/console/core/order"
	"github.com/kondoo/console/services/rest"
)

var _ order.Client = (*OrderClient)(nil)

type OrderClient struct {
	rest *rest.Client
}

func NewOrderClient(rc *rest.Client) *OrderClient {
	return &OrderClient{rest: rc}
}

func (c *OrderClient) ListOrders(ctx context.Context, filter order.Filter) ([]order.Order, *entity.Pagination, error) {
	var page, limit string
	if filter.Page > 0 {
		page = strconv.Itoa(filter.Page)
	}
	if filter.Limit > 0 {
		limit = strconv.Itoa(filter.Limit)
	}
	params := listParams("status", filter.Status, "page", page, "limit", limit)

	var out []order.Order
	pg, err := c.rest.GetPage(ctx, "/orders", params, &out)
	if err != nil {
		return nil, nil, err
	}
	return out, pg, nil
}

func (c *OrderClient) GetOrder(ctx context.Context, id string) (order.Order, error) {
	var out order.Order
	err := c.rest.Get(ctx, "/orders/"+id, nil, &out)
	return out, err
}

func (c *OrderClient) UpdateOrderStatus(ctx context.Context, id, status string) (order.Order, error) {
	body := map[string]string{"status": status}
	var out order.Order
	err := c.rest.Patch(ctx, "/orders/"+id+"/status", body, &out)
	return out, err
}
