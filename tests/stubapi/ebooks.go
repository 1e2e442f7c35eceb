package stubapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/volatiletech/null/v8"

	"github.com/kondoo/console/core/ebook"
)

var errEbookNotFound = echo.NewHTTPError(http.StatusNotFound, "e-book not found")

func (s *server) registerEbookAPI(g *echo.Group) {
	g.GET("/ebooks", s.listEbooks)
	g.POST("/ebooks", s.createEbook)
	g.GET("/ebooks/:id", s.getEbook)
	g.PUT("/ebooks/:id", s.updateEbook)
	g.DELETE("/ebooks/:id", s.deleteEbook)
	g.PATCH("/ebooks/:id/categories", s.setEbookCategories)
	g.PATCH("/ebooks/:id/book-file", s.updateEbookFile)
	g.PATCH("/ebooks/:id/thumbnail", s.updateEbookThumbnail)
}

func (s *server) listEbooks(c echo.Context) error {
	search := strings.ToLower(c.QueryParam("search"))
	category := c.QueryParam("category")
	publication := c.QueryParam("publication")

	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := make([]ebook.Ebook, 0, len(s.db.ebooks))
	for _, bk := range s.db.ebooks {
		if search != "" && !strings.Contains(strings.ToLower(bk.Title), search) {
			continue
		}
		if category != "" && !hasRef(bk.Categories, category) {
			continue
		}
		if publication != "" && bk.Publication.ID != publication {
			continue
		}
		out = append(out, bk)
	}
	return respond(c, http.StatusOK, out)
}

func (s *server) getEbook(c echo.Context) error {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	if bk, ok := s.findEbook(c.Param("id")); ok {
		return respond(c, http.StatusOK, bk)
	}
	return errEbookNotFound
}

func (s *server) createEbook(c echo.Context) error {
	var payload struct {
		Title         string   `json:"title"`
		Author        string   `json:"author"`
		Description   string   `json:"description"`
		Price         float64  `json:"price"`
		CategoryIDs   []string `json:"categories"`
		PublicationID string   `json:"publication"`
		LanguageID    string   `json:"language"`
	}
	var bookFile, thumb string
	if isMultipart(c) {
		payload.Title = c.FormValue("title")
		payload.Author = c.FormValue("author")
		payload.Description = c.FormValue("description")
		if raw := c.FormValue("price"); raw != "" {
			price, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "price must be a number")
			}
			payload.Price = price
		}
		if err := decodeJSONField(c, "categories", &payload.CategoryIDs); err != nil {
			return err
		}
		payload.PublicationID = c.FormValue("publication")
		payload.LanguageID = c.FormValue("language")
		if h, err := c.FormFile("bookFile"); err == nil {
			bookFile = mediaURL(h.Filename)
		}
		if h, err := c.FormFile("thumbnail"); err == nil {
			thumb = mediaURL(h.Filename)
		}
	} else if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed e-book payload")
	}
	if payload.Title == "" || len(payload.CategoryIDs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "title and categories are required")
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	now := time.Now().UTC()
	bk := ebook.Ebook{
		ID:          newID(),
		Title:       payload.Title,
		Author:      payload.Author,
		Description: payload.Description,
		Price:       payload.Price,
		IsActive:    null.BoolFrom(false),
		BookFile:    bookFile,
		Thumbnail:   thumb,
		Categories:  s.db.categoryRefs(payload.CategoryIDs),
		Publication: s.db.publicationRef(payload.PublicationID),
		Language:    s.db.languageRef(payload.LanguageID),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.db.ebooks = append([]ebook.Ebook{bk}, s.db.ebooks...)
	return respond(c, http.StatusCreated, bk)
}

func (s *server) updateEbook(c echo.Context) error {
	var payload ebook.UpdateEbook
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed e-book payload")
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	bk, ok := s.findEbook(c.Param("id"))
	if !ok {
		return errEbookNotFound
	}
	if payload.Title != "" {
		bk.Title = payload.Title
	}
	if payload.Author != "" {
		bk.Author = payload.Author
	}
	if payload.Description != "" {
		bk.Description = payload.Description
	}
	if payload.Price != nil {
		bk.Price = *payload.Price
	}
	if payload.PublicationID != "" {
		bk.Publication = s.db.publicationRef(payload.PublicationID)
	}
	if payload.LanguageID != "" {
		bk.Language = s.db.languageRef(payload.LanguageID)
	}
	bk.UpdatedAt = time.Now().UTC()
	s.saveEbook(bk)
	return respond(c, http.StatusOK, bk)
}

func (s *server) deleteEbook(c echo.Context) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	id := c.Param("id")
	for i, bk := range s.db.ebooks {
		if bk.ID == id {
			s.db.ebooks = append(s.db.ebooks[:i], s.db.ebooks[i+1:]...)
			return c.NoContent(http.StatusNoContent)
		}
	}
	return errEbookNotFound
}

// setEbookCategories keeps only the ids present in the category table and
// silently drops the rest, reproducing the production quirk the console
// detects as a classification mismatch.
func (s *server) setEbookCategories(c echo.Context) error {
	var payload struct {
		CategoryIDs []string `json:"categories"`
	}
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed categories payload")
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	bk, ok := s.findEbook(c.Param("id"))
	if !ok {
		return errEbookNotFound
	}
	bk.Categories = s.db.categoryRefs(payload.CategoryIDs)
	bk.UpdatedAt = time.Now().UTC()
	s.saveEbook(bk)
	return respond(c, http.StatusOK, bk)
}

func (s *server) updateEbookFile(c echo.Context) error {
	header, err := c.FormFile("bookFile")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "book file is required")
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	bk, ok := s.findEbook(c.Param("id"))
	if !ok {
		return errEbookNotFound
	}
	bk.BookFile = mediaURL(header.Filename)
	bk.UpdatedAt = time.Now().UTC()
	s.saveEbook(bk)
	return respond(c, http.StatusOK, bk)
}

func (s *server) updateEbookThumbnail(c echo.Context) error {
	header, err := c.FormFile("thumbnail")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "thumbnail file is required")
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	bk, ok := s.findEbook(c.Param("id"))
	if !ok {
		return errEbookNotFound
	}
	bk.Thumbnail = mediaURL(header.Filename)
	bk.UpdatedAt = time.Now().UTC()
	s.saveEbook(bk)
	return respond(c, http.StatusOK, bk)
}

func (s *server) findEbook(id string) (ebook.Ebook, bool) {
	for _, bk := range s.db.ebooks {
		if bk.ID == id {
			return bk, true
		}
	}
	return ebook.Ebook{}, false
}

func (s *server) saveEbook(bk ebook.Ebook) {
	for i := range s.db.ebooks {
		if s.db.ebooks[i].ID == bk.ID {
			s.db.ebooks[i] = bk
			return
		}
	}
}
