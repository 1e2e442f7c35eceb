package taxonomy

import (
	"context"

	"github.com/kondoo/console/core"
	"github.com/kondoo/console/core/entity"
)

type (
	Client interface {
		ListCategories(ctx context.Context) ([]Category, error)
		CreateCategory(ctx context.Context, data NewCategory) (Category, error)
		UpdateCategory(ctx context.Context, id string, data NewCategory) (Category, error)
		DeleteCategory(ctx context.Context, id string) error

		ListSubCategories(ctx context.Context) ([]SubCategory, error)
		CreateSubCategory(ctx context.Context, data NewSubCategory) (SubCategory, error)
		UpdateSubCategory(ctx context.Context, id string, data NewSubCategory) (SubCategory, error)
		DeleteSubCategory(ctx context.Context, id string) error
	}

	// Service manages the two classification stores. Deleting a category
	// does not cascade into the subcategory store; the server owns
	// referential integrity.
	Service struct {
		client    Client
		cats      *entity.Store[Category]
		subs      *entity.Store[SubCategory]
		log       core.Logger
	}
)

func NewService(client Client, log core.Logger) *Service {
	return &Service{
		client: client,
		cats:   entity.NewStore[Category](),
		subs:   entity.NewStore[SubCategory](),
		log:    log,
	}
}

func (svc *Service) Categories() *entity.Store[Category]       { return svc.cats }
func (svc *Service) SubCategories() *entity.Store[SubCategory] { return svc.subs }

// Grouped returns the current subcategory collection grouped by parent id.
func (svc *Service) Grouped() map[string][]SubCategory {
	return GroupByCategory(svc.subs.Items())
}

func (svc *Service) FetchCategories(ctx context.Context) ([]Category, error) {
	seq := svc.cats.Issue()
	svc.cats.Begin()
	items, err := svc.client.ListCategories(ctx)
	if err != nil {
		svc.cats.Fail(core.ErrorMessage(err, "could not load categories"))
		return nil, err
	}
	svc.cats.ReplaceAll(seq, items)
	return svc.cats.Items(), nil
}

func (svc *Service) CreateCategory(ctx context.Context, data NewCategory) (Category, error) {
	if err := data.Validate(); err != nil {
		return Category{}, err
	}
	seq := svc.cats.Issue()
	svc.cats.Begin()
	cat, err := svc.client.CreateCategory(ctx, data)
	if err != nil {
		svc.cats.Fail(core.ErrorMessage(err, "could not create category"))
		return Category{}, err
	}
	svc.cats.Insert(seq, cat)
	return cat, nil
}

func (svc *Service) UpdateCategory(ctx context.Context, id string, data NewCategory) (Category, error) {
	if err := data.Validate(); err != nil {
		return Category{}, err
	}
	seq := svc.cats.Issue()
	svc.cats.Begin()
	cat, err := svc.client.UpdateCategory(ctx, id, data)
	if err != nil {
		svc.cats.Fail(core.ErrorMessage(err, "could not update category"))
		return Category{}, err
	}
	svc.cats.Apply(seq, cat)
	return cat, nil
}

func (svc *Service) DeleteCategory(ctx context.Context, id string) error {
	svc.cats.Begin()
	if err := svc.client.DeleteCategory(ctx, id); err != nil {
		svc.cats.Fail(core.ErrorMessage(err, "could not delete category"))
		return err
	}
	svc.cats.Remove(id)
	return nil
}

func (svc *Service) FetchSubCategories(ctx context.Context) ([]SubCategory, error) {
	seq := svc.subs.Issue()
	svc.subs.Begin()
	items, err := svc.client.ListSubCategories(ctx)
	if err != nil {
		svc.subs.Fail(core.ErrorMessage(err, "could not load subcategories"))
		return nil, err
	}
	svc.subs.ReplaceAll(seq, items)
	return svc.subs.Items(), nil
}

func (svc *Service) CreateSubCategory(ctx context.Context, data NewSubCategory) (SubCategory, error) {
	if err := data.Validate(); err != nil {
		return SubCategory{}, err
	}
	seq := svc.subs.Issue()
	svc.subs.Begin()
	sub, err := svc.client.CreateSubCategory(ctx, data)
	if err != nil {
		svc.subs.Fail(core.ErrorMessage(err, "could not create subcategory"))
		return SubCategory{}, err
	}
	svc.subs.Insert(seq, sub)
	return sub, nil
}

func (svc *Service) UpdateSubCategory(ctx context.Context, id string, data NewSubCategory) (SubCategory, error) {
	if err := data.Validate(); err != nil {
		return SubCategory{}, err
	}
	seq := svc.subs.Issue()
	svc.subs.Begin()
	sub, err := svc.client.UpdateSubCategory(ctx, id, data)
	if err != nil {
		svc.subs.Fail(core.ErrorMessage(err, "could not update subcategory"))
		return SubCategory{}, err
	}
	svc.subs.Apply(seq, sub)
	return sub, nil
}

func (svc *Service) DeleteSubCategory(ctx context.Context, id string) error {
	svc.subs.Begin()
	if err := svc.client.DeleteSubCategory(ctx, id); err != nil {
		svc.subs.Fail(core.ErrorMessage(err, "could not delete subcategory"))
		return err
	}
	svc.subs.Remove(id)
	return nil
}
