package platform

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kondoo/console/core"
	"github.com/kondoo/console/core/course"
	"github.com/kondoo/console/core/order"
	"github.com/kondoo/console/services/rest"
)

func restClient(baseURL string) *rest.Client {
	conf := &core.Config{}
	conf.API.BaseURL = baseURL
	conf.API.Timeout = 5 * time.Second
	return rest.NewClient(conf, core.NewNopLogger())
}

func videoAttachment(name string) *core.Attachment {
	return &core.Attachment{
		Content:     bytes.NewBufferString(name + "-bytes"),
		ContentType: "video/mp4",
		Filename:    name,
	}
}

func TestCourseClient_createCorrelatesClassFilesByPosition(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/courses", r.URL.Path)
		assert.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "Algebra Basics", r.FormValue("name"))
		assert.JSONEq(t, `["64a000000000000000000001"]`, r.FormValue("categories"))
		assert.JSONEq(t, `[{"title":"Intro"},{"title":"Middle"},{"title":"Outro"}]`, r.FormValue("classes"))

		// second class has no video, so only two parts arrive and they
		// keep source order
		videos := r.MultipartForm.File["classVideos"]
		if assert.Len(t, videos, 2) {
			assert.Equal(t, "intro.mp4", videos[0].Filename)
			assert.Equal(t, "outro.mp4", videos[1].Filename)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": {"_id": "64a0000000000000000000ff", "name": "Algebra Basics"}}`))
	}))
	defer srv.Close()

	client := NewCourseClient(restClient(srv.URL))
	crs, err := client.CreateCourse(context.Background(), course.NewCourse{
		Name:        "Algebra Basics",
		Price:       499,
		CategoryIDs: []string{"64a000000000000000000001"},
		Classes: []course.NewClass{
			{Title: "Intro", Video: videoAttachment("intro.mp4")},
			{Title: "Middle"},
			{Title: "Outro", Video: videoAttachment("outro.mp4")},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, "Algebra Basics", crs.Name)
}

func TestCourseClient_publishHitsActionPath(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": {"_id": "abc", "isActive": true}}`))
	}))
	defer srv.Close()

	client := NewCourseClient(restClient(srv.URL))
	crs, err := client.SetCourseActive(context.Background(), "abc", true)
	assert.NoError(t, err)
	assert.Equal(t, "/courses/abc/publish", gotPath)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.True(t, crs.IsActive.Bool)

	_, err = client.SetCourseActive(context.Background(), "abc", false)
	assert.NoError(t, err)
	assert.Equal(t, "/courses/abc/unpublish", gotPath)
}

func TestOrderClient_listSendsFilterParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "10", q.Get("limit"))
		assert.Equal(t, "paid", q.Get("status"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": [{"_id": "o1", "status": "paid", "amount": 499}],
			"pagination": {"page": 2, "limit": 10, "total": 35, "totalPages": 4}}`))
	}))
	defer srv.Close()

	client := NewOrderClient(restClient(srv.URL))
	items, pg, err := client.ListOrders(context.Background(), order.Filter{Page: 2, Limit: 10, Status: order.StatusPaid})
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	if assert.NotNil(t, pg) {
		assert.Equal(t, 4, pg.TotalPages)
	}
}

func TestListParams_skipsEmptyValues(t *testing.T) {
	assert.Nil(t, listParams("search", "", "category", ""))

	params := listParams("search", "algebra", "category", "")
	assert.Equal(t, "algebra", params.Get("search"))
	assert.False(t, params.Has("category"))
}
