package refdata

import (
	"context"
	"fmt"

	"github.com/kondoo/console/core"
	"github.com/kondoo/console/core/entity"
)

type (
	// Client is the uniform CRUD surface the reference kinds share; the
	// platform layer provides one per kind. Payload and record are the same
	// shape for these kinds (the server just assigns the id).
	Client[E entity.Record] interface {
		List(ctx context.Context) ([]E, error)
		Get(ctx context.Context, id string) (E, error)
		Create(ctx context.Context, data E) (E, error)
		Update(ctx context.Context, id string, data E) (E, error)
		Delete(ctx context.Context, id string) error
	}

	Service[E entity.Record] struct {
		kind   string // for fallback error messages
		client Client[E]
		store  *entity.Store[E]
		log    core.Logger
	}
)

func NewLanguageService(client Client[Language], log core.Logger) *Service[Language] {
	return newService[Language]("language", client, log)
}

func NewValidityService(client Client[Validity], log core.Logger) *Service[Validity] {
	return newService[Validity]("validity", client, log)
}

func NewPublicationService(client Client[Publication], log core.Logger) *Service[Publication] {
	return newService[Publication]("publication", client, log)
}

func newService[E entity.Record](kind string, client Client[E], log core.Logger) *Service[E] {
	return &Service[E]{
		kind:   kind,
		client: client,
		store:  entity.NewStore[E](),
		log:    log,
	}
}

func (svc *Service[E]) Store() *entity.Store[E] { return svc.store }

func (svc *Service[E]) FetchAll(ctx context.Context) ([]E, error) {
	seq := svc.store.Issue()
	svc.store.Begin()
	items, err := svc.client.List(ctx)
	if err != nil {
		svc.store.Fail(core.ErrorMessage(err, fmt.Sprintf("could not load %s list", svc.kind)))
		return nil, err
	}
	svc.store.ReplaceAll(seq, items)
	return svc.store.Items(), nil
}

func (svc *Service[E]) FetchByID(ctx context.Context, id string) (E, error) {
	var zero E
	seq := svc.store.Issue()
	svc.store.Begin()
	item, err := svc.client.Get(ctx, id)
	if err != nil {
		svc.store.Fail(core.ErrorMessage(err, fmt.Sprintf("could not load %s", svc.kind)))
		return zero, err
	}
	svc.store.Insert(seq, item)
	return item, nil
}

func (svc *Service[E]) Create(ctx context.Context, data E) (E, error) {
	var zero E
	if err := validate(data); err != nil {
		return zero, err
	}
	seq := svc.store.Issue()
	svc.store.Begin()
	item, err := svc.client.Create(ctx, data)
	if err != nil {
		svc.store.Fail(core.ErrorMessage(err, fmt.Sprintf("could not create %s", svc.kind)))
		return zero, err
	}
	svc.store.Insert(seq, item)
	return item, nil
}

func (svc *Service[E]) Update(ctx context.Context, id string, data E) (E, error) {
	var zero E
	if err := validate(data); err != nil {
		return zero, err
	}
	seq := svc.store.Issue()
	svc.store.Begin()
	item, err := svc.client.Update(ctx, id, data)
	if err != nil {
		svc.store.Fail(core.ErrorMessage(err, fmt.Sprintf("could not update %s", svc.kind)))
		return zero, err
	}
	svc.store.Apply(seq, item)
	return item, nil
}

func (svc *Service[E]) Delete(ctx context.Context, id string) error {
	svc.store.Begin()
	if err := svc.client.Delete(ctx, id); err != nil {
		svc.store.Fail(core.ErrorMessage(err, fmt.Sprintf("could not delete %s", svc.kind)))
		return err
	}
	svc.store.Remove(id)
	return nil
}
