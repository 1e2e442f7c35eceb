package taxonomy

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kondoo/console/core"
	"github.com/kondoo/console/core/entity"
)

func Test_GroupByCategory(t *testing.T) {
	subs := []SubCategory{
		{ID: "s1", Name: "Algebra", Category: entity.Ref{ID: "math"}},
		{ID: "s2", Name: "Geometry", Category: entity.Ref{ID: "math", Name: "Mathematics"}},
		{ID: "s3", Name: "Optics", Category: entity.Ref{ID: "physics"}},
		{ID: "s4", Name: "Orphan"}, // no parent: dropped
	}

	grouped := GroupByCategory(subs)

	require.Len(t, grouped, 2)
	assert.Len(t, grouped["math"], 2)
	assert.Len(t, grouped["physics"], 1)

	// childless parent: absent key, zero-value lookup
	assert.Empty(t, grouped["history"])
}

// the parent reference arrives as a bare id from the list endpoint but as
// an embedded object from the detail endpoint; both group identically.
func Test_GroupByCategory_mixedRefForms(t *testing.T) {
	var subs []SubCategory
	raw := `[
		{"_id":"s1","name":"Algebra","category":"math"},
		{"_id":"s2","name":"Geometry","category":{"_id":"math","name":"Mathematics"}}
	]`
	require.NoError(t, json.Unmarshal([]byte(raw), &subs))

	grouped := GroupByCategory(subs)
	assert.Len(t, grouped["math"], 2)
}

type fakeClient struct {
	cats []Category
	subs []SubCategory
	err  error
}

var _ Client = (*fakeClient)(nil)

func (f *fakeClient) ListCategories(ctx context.Context) ([]Category, error) { return f.cats, f.err }

func (f *fakeClient) CreateCategory(ctx context.Context, data NewCategory) (Category, error) {
	if f.err != nil {
		return Category{}, f.err
	}
	return Category{ID: "cat-new", Name: data.Name}, nil
}

func (f *fakeClient) UpdateCategory(ctx context.Context, id string, data NewCategory) (Category, error) {
	if f.err != nil {
		return Category{}, f.err
	}
	return Category{ID: id, Name: data.Name}, nil
}

func (f *fakeClient) DeleteCategory(ctx context.Context, id string) error { return f.err }

func (f *fakeClient) ListSubCategories(ctx context.Context) ([]SubCategory, error) {
	return f.subs, f.err
}

func (f *fakeClient) CreateSubCategory(ctx context.Context, data NewSubCategory) (SubCategory, error) {
	if f.err != nil {
		return SubCategory{}, f.err
	}
	return SubCategory{ID: "sub-new", Name: data.Name, Category: entity.Ref{ID: data.CategoryID}}, nil
}

func (f *fakeClient) UpdateSubCategory(ctx context.Context, id string, data NewSubCategory) (SubCategory, error) {
	if f.err != nil {
		return SubCategory{}, f.err
	}
	return SubCategory{ID: id, Name: data.Name, Category: entity.Ref{ID: data.CategoryID}}, nil
}

func (f *fakeClient) DeleteSubCategory(ctx context.Context, id string) error { return f.err }

func Test_Service_categoryDeleteDoesNotCascade(t *testing.T) {
	client := &fakeClient{
		cats: []Category{{ID: "64a1f0c2e7b9a4d3f8c1b2e3", Name: "Math"}},
		subs: []SubCategory{{ID: "s1", Name: "Algebra", Category: entity.Ref{ID: "64a1f0c2e7b9a4d3f8c1b2e3"}}},
	}
	svc := NewService(client, core.NewNopLogger())
	_, err := svc.FetchCategories(context.Background())
	require.NoError(t, err)
	_, err = svc.FetchSubCategories(context.Background())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory(context.Background(), "64a1f0c2e7b9a4d3f8c1b2e3"))

	assert.Zero(t, svc.Categories().Len())
	assert.Equal(t, 1, svc.SubCategories().Len()) // server owns the cascade
}

func Test_Service_CreateSubCategory(t *testing.T) {
	svc := NewService(&fakeClient{}, core.NewNopLogger())

	sub, err := svc.CreateSubCategory(context.Background(), NewSubCategory{
		Name:       "Algebra",
		CategoryID: "64a1f0c2e7b9a4d3f8c1b2e3",
	})
	require.NoError(t, err)
	assert.Equal(t, "sub-new", sub.ID)
	assert.Len(t, svc.Grouped()["64a1f0c2e7b9a4d3f8c1b2e3"], 1)

	// invalid parent id is caught before any network call
	_, err = svc.CreateSubCategory(context.Background(), NewSubCategory{Name: "X", CategoryID: "not-an-id"})
	var vErr *core.ValidationError
	require.ErrorAs(t, err, &vErr)
}
