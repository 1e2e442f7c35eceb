package platform

import (
	"context"

	"github.com/kondoo/console/core/entity"
	"github.com/kondoo/console/core/refdata"
	"github.com/kondoo/console/services/rest"
)

var (
	_ refdata.Client[refdata.Language]    = (*RefClient[refdata.Language])(nil)
	_ refdata.Client[refdata.Validity]    = (*RefClient[refdata.Validity])(nil)
	_ refdata.Client[refdata.Publication] = (*RefClient[refdata.Publication])(nil)
)

// RefClient serves the reference kinds, which share one plain CRUD shape
// and differ only in their base path.
type RefClient[E entity.Record] struct {
	rest *rest.Client
	path string
}

func NewLanguageClient(rc *rest.Client) *RefClient[refdata.Language] {
	return &RefClient[refdata.Language]{rest: rc, path: "/languages"}
}

func NewValidityClient(rc *rest.Client) *RefClient[refdata.Validity] {
	return &RefClient[refdata.Validity]{rest: rc, path: "/validities"}
}

func NewPublicationClient(rc *rest.Client) *RefClient[refdata.Publication] {
	return &RefClient[refdata.Publication]{rest: rc, path: "/publications"}
}

func (c *RefClient[E]) List(ctx context.Context) ([]E, error) {
	var out []E
	if err := c.rest.Get(ctx, c.path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *RefClient[E]) Get(ctx context.Context, id string) (E, error) {
	var out E
	err := c.rest.Get(ctx, c.path+"/"+id, nil, &out)
	return out, err
}

func (c *RefClient[E]) Create(ctx context.Context, data E) (E, error) {
	var out E
	err := c.rest.Post(ctx, c.path, data, &out)
	return out, err
}

func (c *RefClient[E]) Update(ctx context.Context, id string, data E) (E, error) {
	var out E
	err := c.rest.Put(ctx, c.path+"/"+id, data, &out)
	return out, err
}

func (c *RefClient[E]) Delete(ctx context.Context, id string) error {
	return c.rest.Delete(ctx, c.path+"/"+id, nil)
}
