package testseries

import (
	"context"
	"errors"

	"github.com/volatiletech/null/v8"

	"github.com/kondoo/console/core"
	"github.com/kondoo/console/core/entity"
)

var ErrNotFound = errors.New("test series not found")

type (
	Client interface {
		ListTestSeries(ctx context.Context, filter Filter) ([]TestSeries, error)
		GetTestSeries(ctx context.Context, id string) (TestSeries, error)
		CreateTestSeries(ctx context.Context, data NewTestSeries) (TestSeries, error)
		UpdateTestSeries(ctx context.Context, id string, data UpdateTestSeries) (TestSeries, error)
		DeleteTestSeries(ctx context.Context, id string) error
		SetTestSeriesActive(ctx context.Context, id string, active bool) (TestSeries, error)
		AddSection(ctx context.Context, seriesID string, data NewSection) (TestSeries, error)
		UpdateSection(ctx context.Context, seriesID, sectionID string, data NewSection) (TestSeries, error)
		RemoveSection(ctx context.Context, seriesID, sectionID string) (TestSeries, error)
		AddQuestion(ctx context.Context, seriesID, sectionID string, data NewQuestion) (TestSeries, error)
		UpdateQuestion(ctx context.Context, seriesID, sectionID, questionID string, data NewQuestion) (TestSeries, error)
		RemoveQuestion(ctx context.Context, seriesID, sectionID, questionID string) (TestSeries, error)
	}

	Service struct {
		client Client
		store  *entity.Store[TestSeries]
		log    core.Logger
	}
)

func NewService(client Client, log core.Logger) *Service {
	return &Service{
		client: client,
		store:  entity.NewStore[TestSeries](entity.WithMerge(merge)),
		log:    log,
	}
}

func (svc *Service) Store() *entity.Store[TestSeries] { return svc.store }

func (svc *Service) FetchAll(ctx context.Context, filter Filter) ([]TestSeries, error) {
	seq := svc.store.Issue()
	svc.store.Begin()
	items, err := svc.client.ListTestSeries(ctx, filter)
	if err != nil {
		svc.store.Fail(core.ErrorMessage(err, "could not load test series"))
		return nil, err
	}
	svc.store.ReplaceAll(seq, items)
	return svc.store.Items(), nil
}

func (svc *Service) FetchByID(ctx context.Context, id string) (TestSeries, error) {
	seq := svc.store.Issue()
	svc.store.Begin()
	ts, err := svc.client.GetTestSeries(ctx, id)
	if err != nil {
		svc.store.Fail(core.ErrorMessage(err, "could not load test series"))
		return TestSeries{}, err
	}
	svc.store.Insert(seq, ts)
	return ts, nil
}

func (svc *Service) Create(ctx context.Context, data NewTestSeries) (TestSeries, error) {
	if err := data.Validate(); err != nil {
		return TestSeries{}, err
	}
	seq := svc.store.Issue()
	svc.store.Begin()
	ts, err := svc.client.CreateTestSeries(ctx, data)
	if err != nil {
		svc.store.Fail(core.ErrorMessage(err, "could not create test series"))
		return TestSeries{}, err
	}
	svc.store.Insert(seq, ts)
	return ts, nil
}

func (svc *Service) Update(ctx context.Context, id string, data UpdateTestSeries) (TestSeries, error) {
	if err := data.Validate(); err != nil {
		return TestSeries{}, err
	}
	return svc.apply(ctx, "could not update test series", func(ctx context.Context) (TestSeries, error) {
		return svc.client.UpdateTestSeries(ctx, id, data)
	})
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	svc.store.Begin()
	if err := svc.client.DeleteTestSeries(ctx, id); err != nil {
		svc.store.Fail(core.ErrorMessage(err, "could not delete test series"))
		return err
	}
	svc.store.Remove(id)
	return nil
}

func (svc *Service) Publish(ctx context.Context, id string) (TestSeries, error) {
	return svc.setActive(ctx, id, true)
}

func (svc *Service) Unpublish(ctx context.Context, id string) (TestSeries, error) {
	return svc.setActive(ctx, id, false)
}

func (svc *Service) setActive(ctx context.Context, id string, active bool) (TestSeries, error) {
	prev, ok := svc.store.Get(id)
	if !ok {
		return TestSeries{}, ErrNotFound
	}
	seq := svc.store.Issue()
	svc.store.Patch(id, func(ts *TestSeries) { ts.IsActive = null.BoolFrom(active) })
	svc.store.Begin()

	ts, err := svc.client.SetTestSeriesActive(ctx, id, active)
	if err != nil {
		svc.store.Patch(id, func(ts *TestSeries) { ts.IsActive = prev.IsActive })
		svc.store.Fail(core.ErrorMessage(err, "could not update test series status"))
		return TestSeries{}, err
	}
	svc.store.Apply(seq, ts)
	return ts, nil
}

// Sections

func (svc *Service) AddSection(ctx context.Context, seriesID string, data NewSection) (TestSeries, error) {
	if err := data.Validate(); err != nil {
		return TestSeries{}, err
	}
	return svc.apply(ctx, "could not add section", func(ctx context.Context) (TestSeries, error) {
		return svc.client.AddSection(ctx, seriesID, data)
	})
}

func (svc *Service) UpdateSection(ctx context.Context, seriesID, sectionID string, data NewSection) (TestSeries, error) {
	if err := data.Validate(); err != nil {
		return TestSeries{}, err
	}
	return svc.apply(ctx, "could not update section", func(ctx context.Context) (TestSeries, error) {
		return svc.client.UpdateSection(ctx, seriesID, sectionID, data)
	})
}

func (svc *Service) RemoveSection(ctx context.Context, seriesID, sectionID string) (TestSeries, error) {
	return svc.apply(ctx, "could not remove section", func(ctx context.Context) (TestSeries, error) {
		return svc.client.RemoveSection(ctx, seriesID, sectionID)
	})
}

// Questions

func (svc *Service) AddQuestion(ctx context.Context, seriesID, sectionID string, data NewQuestion) (TestSeries, error) {
	if err := data.Validate(); err != nil {
		return TestSeries{}, err
	}
	return svc.apply(ctx, "could not add question", func(ctx context.Context) (TestSeries, error) {
		return svc.client.AddQuestion(ctx, seriesID, sectionID, data)
	})
}

func (svc *Service) UpdateQuestion(ctx context.Context, seriesID, sectionID, questionID string, data NewQuestion) (TestSeries, error) {
	if err := data.Validate(); err != nil {
		return TestSeries{}, err
	}
	return svc.apply(ctx, "could not update question", func(ctx context.Context) (TestSeries, error) {
		return svc.client.UpdateQuestion(ctx, seriesID, sectionID, questionID, data)
	})
}

func (svc *Service) RemoveQuestion(ctx context.Context, seriesID, sectionID, questionID string) (TestSeries, error) {
	return svc.apply(ctx, "could not remove question", func(ctx context.Context) (TestSeries, error) {
		return svc.client.RemoveQuestion(ctx, seriesID, sectionID, questionID)
	})
}

func (svc *Service) apply(ctx context.Context, fallback string, call func(context.Context) (TestSeries, error)) (TestSeries, error) {
	seq := svc.store.Issue()
	svc.store.Begin()
	ts, err := call(ctx)
	if err != nil {
		svc.store.Fail(core.ErrorMessage(err, fallback))
		return TestSeries{}, err
	}
	svc.store.Apply(seq, ts)
	return ts, nil
}
