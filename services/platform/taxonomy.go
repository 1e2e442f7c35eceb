package platform

import (
	"context"

	"github.com/kondoo/console/core/taxonomy"
	"github.com/kondoo/console/services/rest"
)

var _ taxonomy.Client = (*TaxonomyClient)(nil)

type TaxonomyClient struct {
	rest *rest.Client
}

func NewTaxonomyClient(rc *rest.Client) *TaxonomyClient {
	return &TaxonomyClient{rest: rc}
}

func (c *TaxonomyClient) ListCategories(ctx context.Context) ([]taxonomy.Category, error) {
	var out []taxonomy.Category
	if err := c.rest.Get(ctx, "/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TaxonomyClient) CreateCategory(ctx context.Context, data taxonomy.NewCategory) (taxonomy.Category, error) {
	var out taxonomy.Category
	err := c.rest.Post(ctx, "/categories", data, &out)
	return out, err
}

func (c *TaxonomyClient) UpdateCategory(ctx context.Context, id string, data taxonomy.NewCategory) (taxonomy.Category, error) {
	var out taxonomy.Category
	err := c.rest.Put(ctx, "/categories/"+id, data, &out)
	return out, err
}

func (c *TaxonomyClient) DeleteCategory(ctx context.Context, id string) error {
	return c.rest.Delete(ctx, "/categories/"+id, nil)
}

func (c *TaxonomyClient) ListSubCategories(ctx context.Context) ([]taxonomy.SubCategory, error) {
	var out []taxonomy.SubCategory
	if err := c.rest.Get(ctx, "/sub-categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TaxonomyClient) CreateSubCategory(ctx context.Context, data taxonomy.NewSubCategory) (taxonomy.SubCategory, error) {
	var out taxonomy.SubCategory
	err := c.rest.Post(ctx, "/sub-categories", data, &out)
	return out, err
}

func (c *TaxonomyClient) UpdateSubCategory(ctx context.Context, id string, data taxonomy.NewSubCategory) (taxonomy.SubCategory, error) {
	var out taxonomy.SubCategory
	err := c.rest.Put(ctx, "/sub-categories/"+id, data, &out)
	return out, err
}

func (c *TaxonomyClient) DeleteSubCategory(ctx context.Context, id string) error {
	return c.rest.Delete(ctx, "/sub-categories/"+id, nil)
}
