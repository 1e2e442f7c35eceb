package platform

import (
	"context"
	"fmt"

	"github.com/kondoo/console/core/testseries"
	"github.com/kondoo/console/services/rest"
)

var _ testseries.Client = (*TestSeriesClient)(nil)

type TestSeriesClient struct {
	rest *rest.Client
}

func NewTestSeriesClient(rc *rest.Client) *TestSeriesClient {
	return &TestSeriesClient{rest: rc}
}

func (c *TestSeriesClient) ListTestSeries(ctx context.Context, filter testseries.Filter) ([]testseries.TestSeries, error) {
	params := listParams(
		"search", filter.Search,
		"category", filter.Category,
	)
	var out []testseries.TestSeries
	if err := c.rest.Get(ctx, "/test-series", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TestSeriesClient) GetTestSeries(ctx context.Context, id string) (testseries.TestSeries, error) {
	var out testseries.TestSeries
	err := c.rest.Get(ctx, "/test-series/"+id, nil, &out)
	return out, err
}

func (c *TestSeriesClient) CreateTestSeries(ctx context.Context, data testseries.NewTestSeries) (testseries.TestSeries, error) {
	var out testseries.TestSeries
	err := c.rest.Post(ctx, "/test-series", data, &out)
	return out, err
}

func (c *TestSeriesClient) UpdateTestSeries(ctx context.Context, id string, data testseries.UpdateTestSeries) (testseries.TestSeries, error) {
	var out testseries.TestSeries
	err := c.rest.Put(ctx, "/test-series/"+id, data, &out)
	return out, err
}

func (c *TestSeriesClient) DeleteTestSeries(ctx context.Context, id string) error {
	return c.rest.Delete(ctx, "/test-series/"+id, nil)
}

func (c *TestSeriesClient) SetTestSeriesActive(ctx context.Context, id string, active bool) (testseries.TestSeries, error) {
	action := "publish"
	if !active {
		action = "unpublish"
	}
	var out testseries.TestSeries
	err := c.rest.Patch(ctx, fmt.Sprintf("/test-series/%s/%s", id, action), nil, &out)
	return out, err
}

// Sections

func (c *TestSeriesClient) AddSection(ctx context.Context, seriesID string, data testseries.NewSection) (testseries.TestSeries, error) {
	var out testseries.TestSeries
	err := c.rest.Post(ctx, "/test-series/"+seriesID+"/sections", data, &out)
	return out, err
}

func (c *TestSeriesClient) UpdateSection(ctx context.Context, seriesID, sectionID string, data testseries.NewSection) (testseries.TestSeries, error) {
	var out testseries.TestSeries
	err := c.rest.Put(ctx, fmt.Sprintf("/test-series/%s/sections/%s", seriesID, sectionID), data, &out)
	return out, err
}

func (c *TestSeriesClient) RemoveSection(ctx context.Context, seriesID, sectionID string) (testseries.TestSeries, error) {
	var out testseries.TestSeries
	err := c.rest.Delete(ctx, fmt.Sprintf("/test-series/%s/sections/%s", seriesID, sectionID), &out)
	return out, err
}

// Questions

func (c *TestSeriesClient) AddQuestion(ctx context.Context, seriesID, sectionID string, data testseries.NewQuestion) (testseries.TestSeries, error) {
	var out testseries.TestSeries
	err := c.rest.Post(ctx, fmt.Sprintf("/test-series/%s/sections/%s/questions", seriesID, sectionID), data, &out)
	return out, err
}

func (c *TestSeriesClient) UpdateQuestion(ctx context.Context, seriesID, sectionID, questionID string, data testseries.NewQuestion) (testseries.TestSeries, error) {
	var out testseries.TestSeries
	err := c.rest.Put(ctx, fmt.Sprintf("/test-series/%s/sections/%s/questions/%s", seriesID, sectionID, questionID), data, &out)
	return out, err
}

func (c *TestSeriesClient) RemoveQuestion(ctx context.Context, seriesID, sectionID, questionID string) (testseries.TestSeries, error) {
	var out testseries.TestSeries
	err := c.rest.Delete(ctx, fmt.Sprintf("/test-series/%s/sections/%s/questions/%s", seriesID, sectionID, questionID), &out)
	return out, err
}
