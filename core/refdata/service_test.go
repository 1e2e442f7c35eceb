package refdata

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kondoo/console/core"
)

type fakeLanguageClient struct {
	list []Language
	err  error
}

var _ Client[Language] = (*fakeLanguageClient)(nil)

func (f *fakeLanguageClient) List(ctx context.Context) ([]Language, error) { return f.list, f.err }

func (f *fakeLanguageClient) Get(ctx context.Context, id string) (Language, error) {
	if f.err != nil {
		return Language{}, f.err
	}
	return Language{ID: id}, nil
}

func (f *fakeLanguageClient) Create(ctx context.Context, data Language) (Language, error) {
	if f.err != nil {
		return Language{}, f.err
	}
	data.ID = "lang-new"
	return data, nil
}

func (f *fakeLanguageClient) Update(ctx context.Context, id string, data Language) (Language, error) {
	if f.err != nil {
		return Language{}, f.err
	}
	data.ID = id
	return data, nil
}

func (f *fakeLanguageClient) Delete(ctx context.Context, id string) error { return f.err }

func Test_Service_languageCRUD(t *testing.T) {
	client := &fakeLanguageClient{list: []Language{{ID: "l1", Name: "Swahili", Code: "sw"}}}
	svc := NewLanguageService(client, core.NewNopLogger())

	_, err := svc.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, svc.Store().Len())

	lang, err := svc.Create(context.Background(), Language{Name: "English", Code: "en"})
	require.NoError(t, err)
	assert.Equal(t, "lang-new", lang.ID)
	assert.Equal(t, "lang-new", svc.Store().Items()[0].ID)

	require.NoError(t, svc.Delete(context.Background(), "l1"))
	assert.Equal(t, 1, svc.Store().Len())
}

func Test_Service_languageValidation(t *testing.T) {
	svc := NewLanguageService(&fakeLanguageClient{}, core.NewNopLogger())

	_, err := svc.Create(context.Background(), Language{Name: ""})
	var vErr *core.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func Test_Service_failureKeepsItems(t *testing.T) {
	client := &fakeLanguageClient{list: []Language{{ID: "l1", Name: "Swahili"}}}
	svc := NewLanguageService(client, core.NewNopLogger())
	_, err := svc.FetchAll(context.Background())
	require.NoError(t, err)

	client.err = &core.APIError{Status: 503, Message: "maintenance"}
	_, err = svc.FetchAll(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, svc.Store().Len())
	assert.Equal(t, "maintenance", svc.Store().Err())
}

func Test_Validity_validation(t *testing.T) {
	err := validate(Validity{Label: "6 months", Days: 0})
	var vErr *core.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "days", vErr.Fields[0].Field)
}
