package stubapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/volatiletech/null/v8"

	"github.com/kondoo/console/core/testseries"
)

var (
	errSeriesNotFound   = echo.NewHTTPError(http.StatusNotFound, "test series not found")
	errSectionNotFound  = echo.NewHTTPError(http.StatusNotFound, "section not found")
	errQuestionNotFound = echo.NewHTTPError(http.StatusNotFound, "question not found")
)

func (s *server) registerTestSeriesAPI(g *echo.Group) {
	g.GET("/test-series", s.listTestSeries)
	g.POST("/test-series", s.createTestSeries)
	g.GET("/test-series/:id", s.getTestSeries)
	g.PUT("/test-series/:id", s.updateTestSeries)
	g.DELETE("/test-series/:id", s.deleteTestSeries)
	g.PATCH("/test-series/:id/publish", s.setTestSeriesActive(true))
	g.PATCH("/test-series/:id/unpublish", s.setTestSeriesActive(false))
	g.POST("/test-series/:id/sections", s.addSection)
	g.PUT("/test-series/:id/sections/:sid", s.updateSection)
	g.DELETE("/test-series/:id/sections/:sid", s.removeSection)
	g.POST("/test-series/:id/sections/:sid/questions", s.addQuestion)
	g.PUT("/test-series/:id/sections/:sid/questions/:qid", s.updateQuestion)
	g.DELETE("/test-series/:id/sections/:sid/questions/:qid", s.removeQuestion)
}

func (s *server) listTestSeries(c echo.Context) error {
	search := strings.ToLower(c.QueryParam("search"))
	category := c.QueryParam("category")

	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := make([]testseries.TestSeries, 0, len(s.db.series))
	for _, ts := range s.db.series {
		if search != "" && !strings.Contains(strings.ToLower(ts.Name), search) {
			continue
		}
		if category != "" && !hasRef(ts.Categories, category) {
			continue
		}
		out = append(out, ts)
	}
	return respond(c, http.StatusOK, out)
}

func (s *server) getTestSeries(c echo.Context) error {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	if ts, ok := s.findSeries(c.Param("id")); ok {
		return respond(c, http.StatusOK, ts)
	}
	return errSeriesNotFound
}

func (s *server) createTestSeries(c echo.Context) error {
	var payload testseries.NewTestSeries
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed test series payload")
	}
	if payload.Name == "" || len(payload.CategoryIDs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "name and categories are required")
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	now := time.Now().UTC()
	ts := testseries.TestSeries{
		ID:          newID(),
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		IsActive:    null.BoolFrom(false),
		Categories:  s.db.categoryRefs(payload.CategoryIDs),
		Language:    s.db.languageRef(payload.LanguageID),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.db.series = append([]testseries.TestSeries{ts}, s.db.series...)
	return respond(c, http.StatusCreated, ts)
}

func (s *server) updateTestSeries(c echo.Context) error {
	var payload testseries.UpdateTestSeries
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed test series payload")
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	ts, ok := s.findSeries(c.Param("id"))
	if !ok {
		return errSeriesNotFound
	}
	if payload.Name != "" {
		ts.Name = payload.Name
	}
	if payload.Description != "" {
		ts.Description = payload.Description
	}
	if payload.Price != nil {
		ts.Price = *payload.Price
	}
	if len(payload.CategoryIDs) > 0 {
		ts.Categories = s.db.categoryRefs(payload.CategoryIDs)
	}
	if payload.LanguageID != "" {
		ts.Language = s.db.languageRef(payload.LanguageID)
	}
	ts.UpdatedAt = time.Now().UTC()
	s.saveSeries(ts)
	return respond(c, http.StatusOK, ts)
}

func (s *server) deleteTestSeries(c echo.Context) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	id := c.Param("id")
	for i, ts := range s.db.series {
		if ts.ID == id {
			s.db.series = append(s.db.series[:i], s.db.series[i+1:]...)
			return c.NoContent(http.StatusNoContent)
		}
	}
	return errSeriesNotFound
}

func (s *server) setTestSeriesActive(active bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.db.mu.Lock()
		defer s.db.mu.Unlock()

		ts, ok := s.findSeries(c.Param("id"))
		if !ok {
			return errSeriesNotFound
		}
		ts.IsActive = null.BoolFrom(active)
		ts.UpdatedAt = time.Now().UTC()
		s.saveSeries(ts)
		return respond(c, http.StatusOK, ts)
	}
}

// Sections

func (s *server) addSection(c echo.Context) error {
	var payload testseries.NewSection
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed section payload")
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	ts, ok := s.findSeries(c.Param("id"))
	if !ok {
		return errSeriesNotFound
	}
	ts.Sections = append(ts.Sections, testseries.Section{
		ID:       newID(),
		Name:     payload.Name,
		Duration: payload.Duration,
	})
	ts.UpdatedAt = time.Now().UTC()
	s.saveSeries(ts)
	return respond(c, http.StatusOK, ts)
}

func (s *server) updateSection(c echo.Context) error {
	var payload testseries.NewSection
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed section payload")
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	ts, ok := s.findSeries(c.Param("id"))
	if !ok {
		return errSeriesNotFound
	}
	sid := c.Param("sid")
	for i := range ts.Sections {
		if ts.Sections[i].ID == sid {
			ts.Sections[i].Name = payload.Name
			ts.Sections[i].Duration = payload.Duration
			ts.UpdatedAt = time.Now().UTC()
			s.saveSeries(ts)
			return respond(c, http.StatusOK, ts)
		}
	}
	return errSectionNotFound
}

func (s *server) removeSection(c echo.Context) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	ts, ok := s.findSeries(c.Param("id"))
	if !ok {
		return errSeriesNotFound
	}
	sid := c.Param("sid")
	for i := range ts.Sections {
		if ts.Sections[i].ID == sid {
			ts.Sections = append(ts.Sections[:i], ts.Sections[i+1:]...)
			ts.UpdatedAt = time.Now().UTC()
			s.saveSeries(ts)
			return respond(c, http.StatusOK, ts)
		}
	}
	return errSectionNotFound
}

// Questions

func (s *server) addQuestion(c echo.Context) error {
	var payload testseries.NewQuestion
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed question payload")
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	ts, ok := s.findSeries(c.Param("id"))
	if !ok {
		return errSeriesNotFound
	}
	sid := c.Param("sid")
	for i := range ts.Sections {
		if ts.Sections[i].ID == sid {
			ts.Sections[i].Questions = append(ts.Sections[i].Questions, testseries.Question{
				ID:      newID(),
				Text:    payload.Text,
				Options: payload.Options,
				Answer:  payload.Answer,
				Marks:   payload.Marks,
			})
			ts.UpdatedAt = time.Now().UTC()
			s.saveSeries(ts)
			return respond(c, http.StatusOK, ts)
		}
	}
	return errSectionNotFound
}

func (s *server) updateQuestion(c echo.Context) error {
	var payload testseries.NewQuestion
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed question payload")
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	ts, ok := s.findSeries(c.Param("id"))
	if !ok {
		return errSeriesNotFound
	}
	sid, qid := c.Param("sid"), c.Param("qid")
	for i := range ts.Sections {
		if ts.Sections[i].ID != sid {
			continue
		}
		for j := range ts.Sections[i].Questions {
			if ts.Sections[i].Questions[j].ID == qid {
				ts.Sections[i].Questions[j].Text = payload.Text
				ts.Sections[i].Questions[j].Options = payload.Options
				ts.Sections[i].Questions[j].Answer = payload.Answer
				ts.Sections[i].Questions[j].Marks = payload.Marks
				ts.UpdatedAt = time.Now().UTC()
				s.saveSeries(ts)
				return respond(c, http.StatusOK, ts)
			}
		}
		return errQuestionNotFound
	}
	return errSectionNotFound
}

func (s *server) removeQuestion(c echo.Context) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	ts, ok := s.findSeries(c.Param("id"))
	if !ok {
		return errSeriesNotFound
	}
	sid, qid := c.Param("sid"), c.Param("qid")
	for i := range ts.Sections {
		if ts.Sections[i].ID != sid {
			continue
		}
		for j := range ts.Sections[i].Questions {
			if ts.Sections[i].Questions[j].ID == qid {
				ts.Sections[i].Questions = append(ts.Sections[i].Questions[:j], ts.Sections[i].Questions[j+1:]...)
				ts.UpdatedAt = time.Now().UTC()
				s.saveSeries(ts)
				return respond(c, http.StatusOK, ts)
			}
		}
		return errQuestionNotFound
	}
	return errSectionNotFound
}

func (s *server) findSeries(id string) (testseries.TestSeries, bool) {
	for _, ts := range s.db.series {
		if ts.ID == id {
			return ts, true
		}
	}
	return testseries.TestSeries{}, false
}

func (s *server) saveSeries(ts testseries.TestSeries) {
	for i := range s.db.series {
		if s.db.series[i].ID == ts.ID {
			s.db.series[i] = ts
			return
		}
	}
}
