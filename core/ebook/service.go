package ebook

import (
	"context"
	"fmt"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/kondoo/console/core"
	"github.com/kondoo/console/core/entity"
)

// ClassificationMismatchError flags a partial success: the server accepted
// a classification update but kept a different category set than the one
// sent. Callers surface it as a warning; the cache has already been
// converged to the server's canonical record.
type ClassificationMismatchError struct {
	Sent []string
	Got  []string
}

func (e *ClassificationMismatchError) Error() string {
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(joinLines(e.Sent)),
		B:        difflib.SplitLines(joinLines(e.Got)),
		FromFile: "sent",
		ToFile:   "applied",
		Context:  1,
	})
	return fmt.Sprintf("classification partially applied: sent %d categories, server kept %d\n%s",
		len(e.Sent), len(e.Got), diff)
}

func joinLines(ids []string) string {
	var s string
	for _, id := range ids {
		s += id + "\n"
	}
	return s
}

type (
	Client interface {
		ListEbooks(ctx context.Context, filter Filter) ([]Ebook, error)
		GetEbook(ctx context.Context, id string) (Ebook, error)
		CreateEbook(ctx context.Context, data NewEbook) (Ebook, error)
		UpdateEbook(ctx context.Context, id string, data UpdateEbook) (Ebook, error)
		DeleteEbook(ctx context.Context, id string) error
		SetEbookCategories(ctx context.Context, id string, categoryIDs []string) (Ebook, error)
		UpdateEbookFile(ctx context.Context, id string, file *core.Attachment) (Ebook, error)
		UpdateEbookThumbnail(ctx context.Context, id string, thumb *core.Attachment) (Ebook, error)
	}

	Service struct {
		client Client
		store  *entity.Store[Ebook]
		log    core.Logger
	}
)

func NewService(client Client, log core.Logger) *Service {
	return &Service{
		client: client,
		store:  entity.NewStore[Ebook](entity.WithMerge(merge)),
		log:    log,
	}
}

func (svc *Service) Store() *entity.Store[Ebook] { return svc.store }

func (svc *Service) FetchAll(ctx context.Context, filter Filter) ([]Ebook, error) {
	seq := svc.store.Issue()
	svc.store.Begin()
	items, err := svc.client.ListEbooks(ctx, filter)
	if err != nil {
		svc.store.Fail(core.ErrorMessage(err, "could not load e-books"))
		return nil, err
	}
	svc.store.ReplaceAll(seq, items)
	return svc.store.Items(), nil
}

func (svc *Service) FetchByID(ctx context.Context, id string) (Ebook, error) {
	seq := svc.store.Issue()
	svc.store.Begin()
	bk, err := svc.client.GetEbook(ctx, id)
	if err != nil {
		svc.store.Fail(core.ErrorMessage(err, "could not load e-book"))
		return Ebook{}, err
	}
	svc.store.Insert(seq, bk)
	return bk, nil
}

func (svc *Service) Create(ctx context.Context, data NewEbook) (Ebook, error) {
	if err := data.Validate(); err != nil {
		return Ebook{}, err
	}
	seq := svc.store.Issue()
	svc.store.Begin()
	bk, err := svc.client.CreateEbook(ctx, data)
	if err != nil {
		svc.store.Fail(core.ErrorMessage(err, "could not create e-book"))
		return Ebook{}, err
	}
	svc.store.Insert(seq, bk)
	return bk, nil
}

func (svc *Service) Update(ctx context.Context, id string, data UpdateEbook) (Ebook, error) {
	if err := data.Validate(); err != nil {
		return Ebook{}, err
	}
	return svc.apply(ctx, "could not update e-book", func(ctx context.Context) (Ebook, error) {
		return svc.client.UpdateEbook(ctx, id, data)
	})
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	svc.store.Begin()
	if err := svc.client.DeleteEbook(ctx, id); err != nil {
		svc.store.Fail(core.ErrorMessage(err, "could not delete e-book"))
		return err
	}
	svc.store.Remove(id)
	return nil
}

// UpdateClassification replaces the e-book's category set. The server has
// been observed to accept the update but keep fewer categories than sent;
// that partial success is detected by comparing counts, the cache is
// re-synced from the canonical detail record, and a
// ClassificationMismatchError is returned for the caller to surface.
func (svc *Service) UpdateClassification(ctx context.Context, id string, categoryIDs []string) (Ebook, error) {
	seq := svc.store.Issue()
	svc.store.Begin()
	bk, err := svc.client.SetEbookCategories(ctx, id, categoryIDs)
	if err != nil {
		svc.store.Fail(core.ErrorMessage(err, "could not update classification"))
		return Ebook{}, err
	}
	svc.store.Apply(seq, bk)

	if len(bk.Categories) != len(categoryIDs) {
		mismatch := &ClassificationMismatchError{Sent: categoryIDs, Got: entity.RefIDs(bk.Categories)}
		svc.log.Warn("e-book classification mismatch", map[string]interface{}{"id": id}, mismatch)

		refetchSeq := svc.store.Issue()
		full, ferr := svc.client.GetEbook(ctx, id)
		if ferr != nil {
			svc.log.Warn("could not re-fetch e-book after classification mismatch", map[string]interface{}{"id": id}, ferr)
			return bk, mismatch
		}
		svc.store.Apply(refetchSeq, full)
		return full, mismatch
	}
	return bk, nil
}

func (svc *Service) UpdateBookFile(ctx context.Context, id string, file *core.Attachment) (Ebook, error) {
	return svc.apply(ctx, "could not update book file", func(ctx context.Context) (Ebook, error) {
		return svc.client.UpdateEbookFile(ctx, id, file)
	})
}

func (svc *Service) UpdateThumbnail(ctx context.Context, id string, thumb *core.Attachment) (Ebook, error) {
	return svc.apply(ctx, "could not update e-book thumbnail", func(ctx context.Context) (Ebook, error) {
		return svc.client.UpdateEbookThumbnail(ctx, id, thumb)
	})
}

func (svc *Service) apply(ctx context.Context, fallback string, call func(context.Context) (Ebook, error)) (Ebook, error) {
	seq := svc.store.Issue()
	svc.store.Begin()
	bk, err := call(ctx)
	if err != nil {
		svc.store.Fail(core.ErrorMessage(err, fallback))
		return Ebook{}, err
	}
	svc.store.Apply(seq, bk)
	return bk, nil
}
