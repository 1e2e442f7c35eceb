package ebook

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kondoo/console/core"
	"github.com/kondoo/console/core/entity"
)

type fakeClient struct {
	list []Ebook
	byID map[string]Ebook
	err  error

	// category ids the fake "server" silently refuses to attach
	rejected map[string]bool
}

var _ Client = (*fakeClient)(nil)

func (f *fakeClient) ListEbooks(ctx context.Context, filter Filter) ([]Ebook, error) {
	return f.list, f.err
}

func (f *fakeClient) GetEbook(ctx context.Context, id string) (Ebook, error) {
	if f.err != nil {
		return Ebook{}, f.err
	}
	return f.byID[id], nil
}

func (f *fakeClient) CreateEbook(ctx context.Context, data NewEbook) (Ebook, error) {
	if f.err != nil {
		return Ebook{}, f.err
	}
	return Ebook{ID: "b-new", Title: data.Title}, nil
}

func (f *fakeClient) UpdateEbook(ctx context.Context, id string, data UpdateEbook) (Ebook, error) {
	if f.err != nil {
		return Ebook{}, f.err
	}
	bk := f.byID[id]
	bk.ID = id
	bk.Title = data.Title
	return bk, nil
}

func (f *fakeClient) DeleteEbook(ctx context.Context, id string) error { return f.err }

func (f *fakeClient) SetEbookCategories(ctx context.Context, id string, categoryIDs []string) (Ebook, error) {
	if f.err != nil {
		return Ebook{}, f.err
	}
	bk := f.byID[id]
	bk.ID = id
	bk.Categories = nil
	for _, cid := range categoryIDs {
		if f.rejected[cid] {
			continue
		}
		bk.Categories = append(bk.Categories, entity.Ref{ID: cid})
	}
	f.byID[id] = bk
	return bk, nil
}

func (f *fakeClient) UpdateEbookFile(ctx context.Context, id string, file *core.Attachment) (Ebook, error) {
	if f.err != nil {
		return Ebook{}, f.err
	}
	bk := f.byID[id]
	bk.ID = id
	bk.BookFile = "https://cdn.local/" + file.Filename
	return bk, nil
}

func (f *fakeClient) UpdateEbookThumbnail(ctx context.Context, id string, thumb *core.Attachment) (Ebook, error) {
	if f.err != nil {
		return Ebook{}, f.err
	}
	return f.byID[id], nil
}

func Test_Service_UpdateClassification(t *testing.T) {
	client := &fakeClient{
		list: []Ebook{{ID: "b1", Title: "Physics"}},
		byID: map[string]Ebook{"b1": {ID: "b1", Title: "Physics"}},
	}
	svc := NewService(client, core.NewNopLogger())
	_, err := svc.FetchAll(context.Background(), Filter{})
	require.NoError(t, err)

	sent := []string{"64a1f0c2e7b9a4d3f8c1b2e3", "64a1f0c2e7b9a4d3f8c1b2e4"}
	bk, err := svc.UpdateClassification(context.Background(), "b1", sent)
	require.NoError(t, err)
	assert.Len(t, bk.Categories, 2)
}

func Test_Service_UpdateClassification_mismatch(t *testing.T) {
	client := &fakeClient{
		list:     []Ebook{{ID: "b1", Title: "Physics"}},
		byID:     map[string]Ebook{"b1": {ID: "b1", Title: "Physics"}},
		rejected: map[string]bool{"64a1f0c2e7b9a4d3f8c1b2e4": true},
	}
	svc := NewService(client, core.NewNopLogger())
	_, err := svc.FetchAll(context.Background(), Filter{})
	require.NoError(t, err)

	sent := []string{"64a1f0c2e7b9a4d3f8c1b2e3", "64a1f0c2e7b9a4d3f8c1b2e4"}
	bk, err := svc.UpdateClassification(context.Background(), "b1", sent)

	// partial success: distinct warning, not a plain success and not a Fail
	var mismatch *ClassificationMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, sent, mismatch.Sent)
	assert.Equal(t, []string{"64a1f0c2e7b9a4d3f8c1b2e3"}, mismatch.Got)
	assert.Contains(t, mismatch.Error(), "sent 2 categories, server kept 1")

	// the cache converged to the canonical record
	assert.Len(t, bk.Categories, 1)
	got, _ := svc.Store().Get("b1")
	assert.Len(t, got.Categories, 1)
	assert.Empty(t, svc.Store().Err())
}

func Test_Service_Create_validation(t *testing.T) {
	svc := NewService(&fakeClient{}, core.NewNopLogger())

	_, err := svc.Create(context.Background(), NewEbook{Title: ""})
	var vErr *core.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func Test_Service_UpdateBookFile(t *testing.T) {
	client := &fakeClient{
		list: []Ebook{{ID: "b1", Title: "Physics"}},
		byID: map[string]Ebook{"b1": {ID: "b1", Title: "Physics"}},
	}
	svc := NewService(client, core.NewNopLogger())
	_, err := svc.FetchAll(context.Background(), Filter{})
	require.NoError(t, err)

	bk, err := svc.UpdateBookFile(context.Background(), "b1", &core.Attachment{Filename: "physics.pdf"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.local/physics.pdf", bk.BookFile)

	got, _ := svc.Store().Get("b1")
	assert.Equal(t, bk.BookFile, got.BookFile)
}
