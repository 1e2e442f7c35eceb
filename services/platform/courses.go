package platform

import (
	"context"
	"fmt"

	"github.com/kondoo/console/core"
	"github.com/kondoo/console/core/course"
	"github.com/kondoo/console/services/rest"
)

var _ course.Client = (*CourseClient)(nil)

type CourseClient struct {
	rest *rest.Client
}

func NewCourseClient(rc *rest.Client) *CourseClient {
	return &CourseClient{rest: rc}
}

func (c *CourseClient) ListCourses(ctx context.Context, filter course.Filter) ([]course.Course, error) {
	params := listParams(
		"search", filter.Search,
		"category", filter.Category,
		"language", filter.Language,
	)
	var out []course.Course
	if err := c.rest.Get(ctx, "/courses", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CourseClient) GetCourse(ctx context.Context, id string) (course.Course, error) {
	var out course.Course
	err := c.rest.Get(ctx, "/courses/"+id, nil, &out)
	return out, err
}

func (c *CourseClient) CreateCourse(ctx context.Context, data course.NewCourse) (course.Course, error) {
	form := rest.NewForm().
		Set("name", data.Name).
		Set("description", data.Description).
		Set("price", data.Price).
		Set("categories", data.CategoryIDs)
	if data.LanguageID != "" {
		form.Set("language", data.LanguageID)
	}
	if len(data.ValidityIDs) > 0 {
		form.Set("validities", data.ValidityIDs)
	}
	if len(data.Tutors) > 0 {
		form.Set("tutors", data.Tutors)
	}
	if len(data.Classes) > 0 {
		form.Set("classes", data.Classes)
	}
	form.AddFile("thumbnail", data.Thumbnail)
	addTutorFiles(form, data.Tutors)
	addClassFiles(form, data.Classes)

	var out course.Course
	err := c.rest.Post(ctx, "/courses", form, &out)
	return out, err
}

func (c *CourseClient) UpdateCourse(ctx context.Context, id string, data course.UpdateCourse) (course.Course, error) {
	form := rest.NewForm()
	if data.Name != "" {
		form.Set("name", data.Name)
	}
	if data.Description != "" {
		form.Set("description", data.Description)
	}
	if data.Price != nil {
		form.Set("price", *data.Price)
	}
	if len(data.CategoryIDs) > 0 {
		form.Set("categories", data.CategoryIDs)
	}
	if data.LanguageID != "" {
		form.Set("language", data.LanguageID)
	}
	if len(data.ValidityIDs) > 0 {
		form.Set("validities", data.ValidityIDs)
	}
	form.AddFile("thumbnail", data.Thumbnail)

	var out course.Course
	err := c.rest.Put(ctx, "/courses/"+id, form, &out)
	return out, err
}

func (c *CourseClient) DeleteCourse(ctx context.Context, id string) error {
	return c.rest.Delete(ctx, "/courses/"+id, nil)
}

func (c *CourseClient) SetCourseActive(ctx context.Context, id string, active bool) (course.Course, error) {
	action := "publish"
	if !active {
		action = "unpublish"
	}
	var out course.Course
	err := c.rest.Patch(ctx, fmt.Sprintf("/courses/%s/%s", id, action), nil, &out)
	return out, err
}

func (c *CourseClient) UpdateCourseThumbnail(ctx context.Context, id string, thumb *core.Attachment) (course.Course, error) {
	form := rest.NewForm().AddFile("thumbnail", thumb)
	var out course.Course
	err := c.rest.Patch(ctx, "/courses/"+id+"/thumbnail", form, &out)
	return out, err
}

// Tutors

func (c *CourseClient) AddTutor(ctx context.Context, courseID string, data course.NewTutor) (course.Course, error) {
	var out course.Course
	err := c.rest.Post(ctx, "/courses/"+courseID+"/tutors", tutorForm(data), &out)
	return out, err
}

func (c *CourseClient) UpdateTutor(ctx context.Context, courseID, tutorID string, data course.NewTutor) (course.Course, error) {
	var out course.Course
	err := c.rest.Put(ctx, fmt.Sprintf("/courses/%s/tutors/%s", courseID, tutorID), tutorForm(data), &out)
	return out, err
}

func (c *CourseClient) RemoveTutor(ctx context.Context, courseID, tutorID string) (course.Course, error) {
	var out course.Course
	err := c.rest.Delete(ctx, fmt.Sprintf("/courses/%s/tutors/%s", courseID, tutorID), &out)
	return out, err
}

// Classes

func (c *CourseClient) AddClass(ctx context.Context, courseID string, data course.NewClass) (course.Course, error) {
	var out course.Course
	err := c.rest.Post(ctx, "/courses/"+courseID+"/classes", classForm(data), &out)
	return out, err
}

func (c *CourseClient) UpdateClass(ctx context.Context, courseID, classID string, data course.NewClass) (course.Course, error) {
	var out course.Course
	err := c.rest.Put(ctx, fmt.Sprintf("/courses/%s/classes/%s", courseID, classID), classForm(data), &out)
	return out, err
}

func (c *CourseClient) RemoveClass(ctx context.Context, courseID, classID string) (course.Course, error) {
	var out course.Course
	err := c.rest.Delete(ctx, fmt.Sprintf("/courses/%s/classes/%s", courseID, classID), &out)
	return out, err
}

func tutorForm(data course.NewTutor) *rest.Form {
	form := rest.NewForm().
		Set("name", data.Name).
		Set("about", data.About)
	form.AddFile("photo", data.Photo)
	return form
}

func classForm(data course.NewClass) *rest.Form {
	form := rest.NewForm().Set("title", data.Title)
	form.AddFile("video", data.Video)
	form.AddFile("thumbnail", data.Thumbnail)
	form.AddFile("lecturePhoto", data.LecturePhoto)
	return form
}

// addTutorFiles / addClassFiles append the nested attachments in array
// order under repeated field names; the server re-attaches each part to
// its array entry by position among that field's parts.
func addTutorFiles(form *rest.Form, tutors []course.NewTutor) {
	for _, t := range tutors {
		form.AddFile("tutorPhotos", t.Photo)
	}
}

func addClassFiles(form *rest.Form, classes []course.NewClass) {
	for _, cl := range classes {
		form.AddFile("classVideos", cl.Video)
	}
	for _, cl := range classes {
		form.AddFile("classThumbnails", cl.Thumbnail)
	}
	for _, cl := range classes {
		form.AddFile("classLecturePhotos", cl.LecturePhoto)
	}
}
