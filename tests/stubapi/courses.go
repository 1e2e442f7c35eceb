package stubapi

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/volatiletech/null/v8"

	"github.com/kondoo/console/core/course"
	"github.com/kondoo/console/core/entity"
)

var errCourseNotFound = echo.NewHTTPError(http.StatusNotFound, "course not found")

func (s *server) registerCourseAPI(g *echo.Group) {
	g.GET("/courses", s.listCourses)
	g.POST("/courses", s.createCourse)
	g.GET("/courses/:id", s.getCourse)
	g.PUT("/courses/:id", s.updateCourse)
	g.DELETE("/courses/:id", s.deleteCourse)
	g.PATCH("/courses/:id/publish", s.setCourseActive(true))
	g.PATCH("/courses/:id/unpublish", s.setCourseActive(false))
	g.PATCH("/courses/:id/thumbnail", s.updateCourseThumbnail)
	g.POST("/courses/:id/tutors", s.addTutor)
	g.PUT("/courses/:id/tutors/:tid", s.updateTutor)
	g.DELETE("/courses/:id/tutors/:tid", s.removeTutor)
	g.POST("/courses/:id/classes", s.addClass)
	g.PUT("/courses/:id/classes/:cid", s.updateClass)
	g.DELETE("/courses/:id/classes/:cid", s.removeClass)
}

// sparseCourse is the list projection: the real API trims detail fields
// (status, classes, tutors) off the course list to keep it light, which is
// exactly what forces the console to hydrate.
type sparseCourse struct {
	ID          string       `json:"_id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Price       float64      `json:"price"`
	Thumbnail   string       `json:"thumbnail,omitempty"`
	Categories  []entity.Ref `json:"categories,omitempty"`
	Language    entity.Ref   `json:"language,omitempty"`
	CreatedAt   time.Time    `json:"createdAt,omitempty"`
	UpdatedAt   time.Time    `json:"updatedAt,omitempty"`
}

func sparse(crs course.Course) sparseCourse {
	return sparseCourse{
		ID:          crs.ID,
		Name:        crs.Name,
		Description: crs.Description,
		Price:       crs.Price,
		Thumbnail:   crs.Thumbnail,
		Categories:  crs.Categories,
		Language:    crs.Language,
		CreatedAt:   crs.CreatedAt,
		UpdatedAt:   crs.UpdatedAt,
	}
}

func (s *server) listCourses(c echo.Context) error {
	search := strings.ToLower(c.QueryParam("search"))
	category := c.QueryParam("category")
	language := c.QueryParam("language")

	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := make([]sparseCourse, 0, len(s.db.courses))
	for _, crs := range s.db.courses {
		if search != "" && !strings.Contains(strings.ToLower(crs.Name), search) {
			continue
		}
		if category != "" && !hasRef(crs.Categories, category) {
			continue
		}
		if language != "" && crs.Language.ID != language {
			continue
		}
		out = append(out, sparse(crs))
	}
	return respond(c, http.StatusOK, out)
}

func (s *server) getCourse(c echo.Context) error {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	if crs, ok := s.findCourse(c.Param("id")); ok {
		return respond(c, http.StatusOK, crs)
	}
	return errCourseNotFound
}

func (s *server) createCourse(c echo.Context) error {
	payload, files, err := bindCoursePayload(c)
	if err != nil {
		return err
	}
	if payload.Name == "" || len(payload.CategoryIDs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "name and categories are required")
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	now := time.Now().UTC()
	crs := course.Course{
		ID:          newID(),
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		IsActive:    null.BoolFrom(false),
		Categories:  s.db.categoryRefs(payload.CategoryIDs),
		Language:    s.db.languageRef(payload.LanguageID),
		Validities:  s.db.validityRefs(payload.ValidityIDs),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, t := range payload.Tutors {
		crs.Tutors = append(crs.Tutors, course.Tutor{ID: newID(), Name: t.Name, About: t.About})
	}
	for _, cl := range payload.Classes {
		crs.Classes = append(crs.Classes, course.Class{ID: newID(), Title: cl.Title})
	}
	files.attach(&crs)

	s.db.courses = append([]course.Course{crs}, s.db.courses...)
	return respond(c, http.StatusCreated, crs)
}

func (s *server) updateCourse(c echo.Context) error {
	payload, files, err := bindCoursePayload(c)
	if err != nil {
		return err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	crs, ok := s.findCourse(c.Param("id"))
	if !ok {
		return errCourseNotFound
	}
	if payload.Name != "" {
		crs.Name = payload.Name
	}
	if payload.Description != "" {
		crs.Description = payload.Description
	}
	if payload.priceSet {
		crs.Price = payload.Price
	}
	if len(payload.CategoryIDs) > 0 {
		crs.Categories = s.db.categoryRefs(payload.CategoryIDs)
	}
	if payload.LanguageID != "" {
		crs.Language = s.db.languageRef(payload.LanguageID)
	}
	if len(payload.ValidityIDs) > 0 {
		crs.Validities = s.db.validityRefs(payload.ValidityIDs)
	}
	files.attach(&crs)
	crs.UpdatedAt = time.Now().UTC()

	s.saveCourse(crs)
	return respond(c, http.StatusOK, crs)
}

func (s *server) deleteCourse(c echo.Context) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	id := c.Param("id")
	for i, crs := range s.db.courses {
		if crs.ID == id {
			s.db.courses = append(s.db.courses[:i], s.db.courses[i+1:]...)
			return c.NoContent(http.StatusNoContent)
		}
	}
	return errCourseNotFound
}

func (s *server) setCourseActive(active bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.db.mu.Lock()
		defer s.db.mu.Unlock()

		crs, ok := s.findCourse(c.Param("id"))
		if !ok {
			return errCourseNotFound
		}
		crs.IsActive = null.BoolFrom(active)
		crs.UpdatedAt = time.Now().UTC()
		s.saveCourse(crs)
		return respond(c, http.StatusOK, crs)
	}
}

func (s *server) updateCourseThumbnail(c echo.Context) error {
	header, err := c.FormFile("thumbnail")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "thumbnail file is required")
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	crs, ok := s.findCourse(c.Param("id"))
	if !ok {
		return errCourseNotFound
	}
	crs.Thumbnail = mediaURL(header.Filename)
	crs.UpdatedAt = time.Now().UTC()
	s.saveCourse(crs)
	return respond(c, http.StatusOK, crs)
}

// Tutors

func (s *server) addTutor(c echo.Context) error {
	payload, photo, err := bindTutorPayload(c)
	if err != nil {
		return err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	crs, ok := s.findCourse(c.Param("id"))
	if !ok {
		return errCourseNotFound
	}
	tutor := course.Tutor{ID: newID(), Name: payload.Name, About: payload.About}
	if photo != nil {
		tutor.Photo = mediaURL(photo.Filename)
	}
	crs.Tutors = append(crs.Tutors, tutor)
	crs.UpdatedAt = time.Now().UTC()
	s.saveCourse(crs)
	return respond(c, http.StatusOK, crs)
}

func (s *server) updateTutor(c echo.Context) error {
	payload, photo, err := bindTutorPayload(c)
	if err != nil {
		return err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	crs, ok := s.findCourse(c.Param("id"))
	if !ok {
		return errCourseNotFound
	}
	tid := c.Param("tid")
	for i, t := range crs.Tutors {
		if t.ID == tid {
			crs.Tutors[i].Name = payload.Name
			crs.Tutors[i].About = payload.About
			if photo != nil {
				crs.Tutors[i].Photo = mediaURL(photo.Filename)
			}
			crs.UpdatedAt = time.Now().UTC()
			s.saveCourse(crs)
			return respond(c, http.StatusOK, crs)
		}
	}
	return echo.NewHTTPError(http.StatusNotFound, "tutor not found")
}

func (s *server) removeTutor(c echo.Context) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	crs, ok := s.findCourse(c.Param("id"))
	if !ok {
		return errCourseNotFound
	}
	tid := c.Param("tid")
	for i, t := range crs.Tutors {
		if t.ID == tid {
			crs.Tutors = append(crs.Tutors[:i], crs.Tutors[i+1:]...)
			crs.UpdatedAt = time.Now().UTC()
			s.saveCourse(crs)
			return respond(c, http.StatusOK, crs)
		}
	}
	return echo.NewHTTPError(http.StatusNotFound, "tutor not found")
}

// Classes

func (s *server) addClass(c echo.Context) error {
	payload, files, err := bindClassPayload(c)
	if err != nil {
		return err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	crs, ok := s.findCourse(c.Param("id"))
	if !ok {
		return errCourseNotFound
	}
	class := course.Class{ID: newID(), Title: payload.Title}
	files.apply(&class)
	crs.Classes = append(crs.Classes, class)
	crs.UpdatedAt = time.Now().UTC()
	s.saveCourse(crs)
	return respond(c, http.StatusOK, crs)
}

func (s *server) updateClass(c echo.Context) error {
	payload, files, err := bindClassPayload(c)
	if err != nil {
		return err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	crs, ok := s.findCourse(c.Param("id"))
	if !ok {
		return errCourseNotFound
	}
	cid := c.Param("cid")
	for i, cl := range crs.Classes {
		if cl.ID == cid {
			crs.Classes[i].Title = payload.Title
			files.apply(&crs.Classes[i])
			crs.UpdatedAt = time.Now().UTC()
			s.saveCourse(crs)
			return respond(c, http.StatusOK, crs)
		}
	}
	return echo.NewHTTPError(http.StatusNotFound, "class not found")
}

func (s *server) removeClass(c echo.Context) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	crs, ok := s.findCourse(c.Param("id"))
	if !ok {
		return errCourseNotFound
	}
	cid := c.Param("cid")
	for i, cl := range crs.Classes {
		if cl.ID == cid {
			crs.Classes = append(crs.Classes[:i], crs.Classes[i+1:]...)
			crs.UpdatedAt = time.Now().UTC()
			s.saveCourse(crs)
			return respond(c, http.StatusOK, crs)
		}
	}
	return echo.NewHTTPError(http.StatusNotFound, "class not found")
}

// helpers

func (s *server) findCourse(id string) (course.Course, bool) {
	for _, crs := range s.db.courses {
		if crs.ID == id {
			return crs, true
		}
	}
	return course.Course{}, false
}

func (s *server) saveCourse(crs course.Course) {
	for i := range s.db.courses {
		if s.db.courses[i].ID == crs.ID {
			s.db.courses[i] = crs
			return
		}
	}
}

func hasRef(refs []entity.Ref, id string) bool {
	for _, ref := range refs {
		if ref.ID == id {
			return true
		}
	}
	return false
}

func mediaURL(filename string) string {
	return "/media/" + newID() + "/" + filename
}

type coursePayload struct {
	Name        string
	Description string
	Price       float64
	priceSet    bool
	CategoryIDs []string
	LanguageID  string
	ValidityIDs []string
	Tutors      []course.NewTutor
	Classes     []course.NewClass
}

type courseFiles struct {
	thumbnail     *multipart.FileHeader
	tutorPhotos   []*multipart.FileHeader
	classVideos   []*multipart.FileHeader
	classThumbs   []*multipart.FileHeader
	lecturePhotos []*multipart.FileHeader
}

// attach pairs repeated file parts with nested entries in order; the k-th
// part under a field goes to the k-th entry.
func (f courseFiles) attach(crs *course.Course) {
	if f.thumbnail != nil {
		crs.Thumbnail = mediaURL(f.thumbnail.Filename)
	}
	for i, h := range f.tutorPhotos {
		if i < len(crs.Tutors) {
			crs.Tutors[i].Photo = mediaURL(h.Filename)
		}
	}
	for i, h := range f.classVideos {
		if i < len(crs.Classes) {
			crs.Classes[i].Video = mediaURL(h.Filename)
		}
	}
	for i, h := range f.classThumbs {
		if i < len(crs.Classes) {
			crs.Classes[i].Thumbnail = mediaURL(h.Filename)
		}
	}
	for i, h := range f.lecturePhotos {
		if i < len(crs.Classes) {
			crs.Classes[i].LecturePhoto = mediaURL(h.Filename)
		}
	}
}

func bindCoursePayload(c echo.Context) (coursePayload, courseFiles, error) {
	var payload coursePayload
	var files courseFiles

	if !isMultipart(c) {
		var body struct {
			Name        string            `json:"name"`
			Description string            `json:"description"`
			Price       *float64          `json:"price"`
			CategoryIDs []string          `json:"categories"`
			LanguageID  string            `json:"language"`
			ValidityIDs []string          `json:"validities"`
			Tutors      []course.NewTutor `json:"tutors"`
			Classes     []course.NewClass `json:"classes"`
		}
		if err := c.Bind(&body); err != nil {
			return payload, files, echo.NewHTTPError(http.StatusBadRequest, "malformed course payload")
		}
		payload = coursePayload{
			Name:        body.Name,
			Description: body.Description,
			CategoryIDs: body.CategoryIDs,
			LanguageID:  body.LanguageID,
			ValidityIDs: body.ValidityIDs,
			Tutors:      body.Tutors,
			Classes:     body.Classes,
		}
		if body.Price != nil {
			payload.Price, payload.priceSet = *body.Price, true
		}
		return payload, files, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return payload, files, echo.NewHTTPError(http.StatusBadRequest, "malformed multipart payload")
	}

	payload.Name = c.FormValue("name")
	payload.Description = c.FormValue("description")
	if raw := c.FormValue("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return payload, files, echo.NewHTTPError(http.StatusBadRequest, "price must be a number")
		}
		payload.Price, payload.priceSet = price, true
	}
	if err := decodeJSONField(c, "categories", &payload.CategoryIDs); err != nil {
		return payload, files, err
	}
	payload.LanguageID = c.FormValue("language")
	if err := decodeJSONField(c, "validities", &payload.ValidityIDs); err != nil {
		return payload, files, err
	}
	if err := decodeJSONField(c, "tutors", &payload.Tutors); err != nil {
		return payload, files, err
	}
	if err := decodeJSONField(c, "classes", &payload.Classes); err != nil {
		return payload, files, err
	}

	if headers := form.File["thumbnail"]; len(headers) > 0 {
		files.thumbnail = headers[0]
	}
	files.tutorPhotos = form.File["tutorPhotos"]
	files.classVideos = form.File["classVideos"]
	files.classThumbs = form.File["classThumbnails"]
	files.lecturePhotos = form.File["classLecturePhotos"]
	return payload, files, nil
}

func bindTutorPayload(c echo.Context) (course.NewTutor, *multipart.FileHeader, error) {
	var payload course.NewTutor
	if !isMultipart(c) {
		if err := c.Bind(&payload); err != nil {
			return payload, nil, echo.NewHTTPError(http.StatusBadRequest, "malformed tutor payload")
		}
		return payload, nil, nil
	}
	payload.Name = c.FormValue("name")
	payload.About = c.FormValue("about")
	photo, err := c.FormFile("photo")
	if err != nil {
		photo = nil
	}
	return payload, photo, nil
}

type classFiles struct {
	video        *multipart.FileHeader
	thumbnail    *multipart.FileHeader
	lecturePhoto *multipart.FileHeader
}

func (f classFiles) apply(class *course.Class) {
	if f.video != nil {
		class.Video = mediaURL(f.video.Filename)
	}
	if f.thumbnail != nil {
		class.Thumbnail = mediaURL(f.thumbnail.Filename)
	}
	if f.lecturePhoto != nil {
		class.LecturePhoto = mediaURL(f.lecturePhoto.Filename)
	}
}

func bindClassPayload(c echo.Context) (course.NewClass, classFiles, error) {
	var payload course.NewClass
	var files classFiles
	if !isMultipart(c) {
		if err := c.Bind(&payload); err != nil {
			return payload, files, echo.NewHTTPError(http.StatusBadRequest, "malformed class payload")
		}
		return payload, files, nil
	}
	payload.Title = c.FormValue("title")
	files.video, _ = c.FormFile("video")
	files.thumbnail, _ = c.FormFile("thumbnail")
	files.lecturePhoto, _ = c.FormFile("lecturePhoto")
	return payload, files, nil
}

func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}

func decodeJSONField(c echo.Context, field string, out interface{}) error {
	raw := c.FormValue(field)
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, field+" must be a JSON value")
	}
	return nil
}
