package course

import (
	"context"
	"errors"

	"github.com/volatiletech/null/v8"

	"github.com/kondoo/console/core"
	"github.com/kondoo/console/core/entity"
)

var ErrNotFound = errors.New("course not found")

type (
	// Client shapes requests against the platform's course API; implemented
	// under services/platform. Pure translation, no state.
	Client interface {
		ListCourses(ctx context.Context, filter Filter) ([]Course, error)
		GetCourse(ctx context.Context, id string) (Course, error)
		CreateCourse(ctx context.Context, data NewCourse) (Course, error)
		UpdateCourse(ctx context.Context, id string, data UpdateCourse) (Course, error)
		DeleteCourse(ctx context.Context, id string) error
		SetCourseActive(ctx context.Context, id string, active bool) (Course, error)
		UpdateCourseThumbnail(ctx context.Context, id string, thumb *core.Attachment) (Course, error)
		AddTutor(ctx context.Context, courseID string, data NewTutor) (Course, error)
		UpdateTutor(ctx context.Context, courseID, tutorID string, data NewTutor) (Course, error)
		RemoveTutor(ctx context.Context, courseID, tutorID string) (Course, error)
		AddClass(ctx context.Context, courseID string, data NewClass) (Course, error)
		UpdateClass(ctx context.Context, courseID, classID string, data NewClass) (Course, error)
		RemoveClass(ctx context.Context, courseID, classID string) (Course, error)
	}

	Service struct {
		client Client
		store  *entity.Store[Course]
		hydr   *entity.Hydrator[Course]
		log    core.Logger
	}
)

func NewService(client Client, log core.Logger) *Service {
	store := entity.NewStore[Course](entity.WithMerge(merge))
	return &Service{
		client: client,
		store:  store,
		hydr:   entity.NewHydrator(store, isSparse, client.GetCourse, log),
		log:    log,
	}
}

// Store exposes the course collection to the view layer.
func (svc *Service) Store() *entity.Store[Course] { return svc.store }

// WaitHydrated blocks until the detail fetches currently in flight resolve.
func (svc *Service) WaitHydrated() { svc.hydr.Wait() }

// Rehydrate retries detail fetches for records still missing detail fields.
func (svc *Service) Rehydrate(ctx context.Context) { svc.hydr.Rehydrate(ctx) }

func (svc *Service) FetchAll(ctx context.Context, filter Filter) ([]Course, error) {
	seq := svc.store.Issue()
	svc.store.Begin()
	items, err := svc.client.ListCourses(ctx, filter)
	if err != nil {
		svc.store.Fail(core.ErrorMessage(err, "could not load courses"))
		return nil, err
	}
	svc.hydr.ReplaceAll(ctx, seq, items)
	return svc.store.Items(), nil
}

func (svc *Service) FetchByID(ctx context.Context, id string) (Course, error) {
	seq := svc.store.Issue()
	svc.store.Begin()
	crs, err := svc.client.GetCourse(ctx, id)
	if err != nil {
		svc.store.Fail(core.ErrorMessage(err, "could not load course"))
		return Course{}, err
	}
	svc.store.Insert(seq, crs)
	return crs, nil
}

func (svc *Service) Create(ctx context.Context, data NewCourse) (Course, error) {
	if err := data.Validate(); err != nil {
		return Course{}, err
	}
	seq := svc.store.Issue()
	svc.store.Begin()
	crs, err := svc.client.CreateCourse(ctx, data)
	if err != nil {
		svc.store.Fail(core.ErrorMessage(err, "could not create course"))
		return Course{}, err
	}
	svc.store.Insert(seq, crs)
	return crs, nil
}

func (svc *Service) Update(ctx context.Context, id string, data UpdateCourse) (Course, error) {
	if err := data.Validate(); err != nil {
		return Course{}, err
	}
	return svc.apply(ctx, "could not update course", func(ctx context.Context) (Course, error) {
		return svc.client.UpdateCourse(ctx, id, data)
	})
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	svc.store.Begin()
	if err := svc.client.DeleteCourse(ctx, id); err != nil {
		svc.store.Fail(core.ErrorMessage(err, "could not delete course"))
		return err
	}
	svc.store.Remove(id)
	return nil
}

func (svc *Service) Publish(ctx context.Context, id string) (Course, error) {
	return svc.setActive(ctx, id, true)
}

func (svc *Service) Unpublish(ctx context.Context, id string) (Course, error) {
	return svc.setActive(ctx, id, false)
}

// setActive flips isActive locally before the call so the toggle feels
// instant; on failure exactly that field reverts to its captured prior
// value, on success the server record (authoritative for timestamps etc.)
// merges over the optimistic one.
func (svc *Service) setActive(ctx context.Context, id string, active bool) (Course, error) {
	prev, ok := svc.store.Get(id)
	if !ok {
		return Course{}, ErrNotFound
	}
	seq := svc.store.Issue()
	svc.store.Patch(id, func(c *Course) { c.IsActive = null.BoolFrom(active) })
	svc.store.Begin()

	crs, err := svc.client.SetCourseActive(ctx, id, active)
	if err != nil {
		svc.store.Patch(id, func(c *Course) { c.IsActive = prev.IsActive })
		svc.store.Fail(core.ErrorMessage(err, "could not update course status"))
		return Course{}, err
	}
	svc.store.Apply(seq, crs)
	return crs, nil
}

func (svc *Service) UpdateThumbnail(ctx context.Context, id string, thumb *core.Attachment) (Course, error) {
	return svc.apply(ctx, "could not update course thumbnail", func(ctx context.Context) (Course, error) {
		return svc.client.UpdateCourseThumbnail(ctx, id, thumb)
	})
}

// Tutors

func (svc *Service) AddTutor(ctx context.Context, courseID string, data NewTutor) (Course, error) {
	if err := data.Validate(); err != nil {
		return Course{}, err
	}
	return svc.apply(ctx, "could not add tutor", func(ctx context.Context) (Course, error) {
		return svc.client.AddTutor(ctx, courseID, data)
	})
}

func (svc *Service) UpdateTutor(ctx context.Context, courseID, tutorID string, data NewTutor) (Course, error) {
	if err := data.Validate(); err != nil {
		return Course{}, err
	}
	return svc.apply(ctx, "could not update tutor", func(ctx context.Context) (Course, error) {
		return svc.client.UpdateTutor(ctx, courseID, tutorID, data)
	})
}

func (svc *Service) RemoveTutor(ctx context.Context, courseID, tutorID string) (Course, error) {
	return svc.apply(ctx, "could not remove tutor", func(ctx context.Context) (Course, error) {
		return svc.client.RemoveTutor(ctx, courseID, tutorID)
	})
}

// Classes

func (svc *Service) AddClass(ctx context.Context, courseID string, data NewClass) (Course, error) {
	if err := data.Validate(); err != nil {
		return Course{}, err
	}
	return svc.apply(ctx, "could not add class", func(ctx context.Context) (Course, error) {
		return svc.client.AddClass(ctx, courseID, data)
	})
}

func (svc *Service) UpdateClass(ctx context.Context, courseID, classID string, data NewClass) (Course, error) {
	if err := data.Validate(); err != nil {
		return Course{}, err
	}
	return svc.apply(ctx, "could not update class", func(ctx context.Context) (Course, error) {
		return svc.client.UpdateClass(ctx, courseID, classID, data)
	})
}

func (svc *Service) RemoveClass(ctx context.Context, courseID, classID string) (Course, error) {
	return svc.apply(ctx, "could not remove class", func(ctx context.Context) (Course, error) {
		return svc.client.RemoveClass(ctx, courseID, classID)
	})
}

// apply runs a call whose response is the updated course and merges it in
// (position-preserving; a no-longer-resident id is a tolerated race).
func (svc *Service) apply(ctx context.Context, fallback string, call func(context.Context) (Course, error)) (Course, error) {
	seq := svc.store.Issue()
	svc.store.Begin()
	crs, err := call(ctx)
	if err != nil {
		svc.store.Fail(core.ErrorMessage(err, fallback))
		return Course{}, err
	}
	svc.store.Apply(seq, crs)
	return crs, nil
}
