package stubapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kondoo/console/core/entity"
	"github.com/kondoo/console/core/taxonomy"
)

var (
	errCategoryNotFound    = echo.NewHTTPError(http.StatusNotFound, "category not found")
	errSubCategoryNotFound = echo.NewHTTPError(http.StatusNotFound, "sub-category not found")
)

func (s *server) registerTaxonomyAPI(g *echo.Group) {
	g.GET("/categories", s.listCategories)
	g.POST("/categories", s.createCategory)
	g.PUT("/categories/:id", s.updateCategory)
	g.DELETE("/categories/:id", s.deleteCategory)

	g.GET("/sub-categories", s.listSubCategories)
	g.POST("/sub-categories", s.createSubCategory)
	g.PUT("/sub-categories/:id", s.updateSubCategory)
	g.DELETE("/sub-categories/:id", s.deleteSubCategory)
}

func (s *server) listCategories(c echo.Context) error {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return respond(c, http.StatusOK, s.db.categories)
}

func (s *server) createCategory(c echo.Context) error {
	var payload taxonomy.NewCategory
	if err := c.Bind(&payload); err != nil || payload.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	cat := taxonomy.Category{ID: newID(), Name: payload.Name, Icon: payload.Icon}
	s.db.categories = append(s.db.categories, cat)
	return respond(c, http.StatusCreated, cat)
}

func (s *server) updateCategory(c echo.Context) error {
	var payload taxonomy.NewCategory
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed category payload")
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	id := c.Param("id")
	for i := range s.db.categories {
		if s.db.categories[i].ID == id {
			if payload.Name != "" {
				s.db.categories[i].Name = payload.Name
			}
			if payload.Icon != "" {
				s.db.categories[i].Icon = payload.Icon
			}
			return respond(c, http.StatusOK, s.db.categories[i])
		}
	}
	return errCategoryNotFound
}

// deleteCategory removes the category only; sub-categories keep their
// dangling parent ref, like the real API.
func (s *server) deleteCategory(c echo.Context) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	id := c.Param("id")
	for i, cat := range s.db.categories {
		if cat.ID == id {
			s.db.categories = append(s.db.categories[:i], s.db.categories[i+1:]...)
			return c.NoContent(http.StatusNoContent)
		}
	}
	return errCategoryNotFound
}

func (s *server) listSubCategories(c echo.Context) error {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return respond(c, http.StatusOK, s.db.subCategories)
}

func (s *server) createSubCategory(c echo.Context) error {
	var payload taxonomy.NewSubCategory
	if err := c.Bind(&payload); err != nil || payload.Name == "" || payload.CategoryID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name and category are required")
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	var parent entity.Ref
	for _, cat := range s.db.categories {
		if cat.ID == payload.CategoryID {
			parent = entity.Ref{ID: cat.ID, Name: cat.Name}
			break
		}
	}
	if parent.IsZero() {
		return errCategoryNotFound
	}
	sub := taxonomy.SubCategory{ID: newID(), Name: payload.Name, Category: parent}
	s.db.subCategories = append(s.db.subCategories, sub)
	return respond(c, http.StatusCreated, sub)
}

func (s *server) updateSubCategory(c echo.Context) error {
	var payload taxonomy.NewSubCategory
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed sub-category payload")
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	id := c.Param("id")
	for i := range s.db.subCategories {
		if s.db.subCategories[i].ID == id {
			if payload.Name != "" {
				s.db.subCategories[i].Name = payload.Name
			}
			if payload.CategoryID != "" {
				for _, cat := range s.db.categories {
					if cat.ID == payload.CategoryID {
						s.db.subCategories[i].Category = entity.Ref{ID: cat.ID, Name: cat.Name}
						break
					}
				}
			}
			return respond(c, http.StatusOK, s.db.subCategories[i])
		}
	}
	return errSubCategoryNotFound
}

func (s *server) deleteSubCategory(c echo.Context) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	id := c.Param("id")
	for i, sub := range s.db.subCategories {
		if sub.ID == id {
			s.db.subCategories = append(s.db.subCategories[:i], s.db.subCategories[i+1:]...)
			return c.NoContent(http.StatusNoContent)
		}
	}
	return errSubCategoryNotFound
}
