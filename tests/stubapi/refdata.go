package stubapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kondoo/console/core/entity"
	"github.com/kondoo/console/core/refdata"
)

// refKind serves one reference collection; the three kinds share the CRUD
// shape and differ only in record type and base path.
type refKind[E entity.Record] struct {
	db       *database
	items    *[]E
	notFound *echo.HTTPError
	withID   func(E, string) E
	valid    func(E) bool
}

func (s *server) registerRefDataAPI(g *echo.Group) {
	languages := &refKind[refdata.Language]{
		db:       s.db,
		items:    &s.db.languages,
		notFound: echo.NewHTTPError(http.StatusNotFound, "language not found"),
		withID:   func(l refdata.Language, id string) refdata.Language { l.ID = id; return l },
		valid:    func(l refdata.Language) bool { return l.Name != "" },
	}
	validities := &refKind[refdata.Validity]{
		db:       s.db,
		items:    &s.db.validities,
		notFound: echo.NewHTTPError(http.StatusNotFound, "validity not found"),
		withID:   func(v refdata.Validity, id string) refdata.Validity { v.ID = id; return v },
		valid:    func(v refdata.Validity) bool { return v.Label != "" && v.Days > 0 },
	}
	publications := &refKind[refdata.Publication]{
		db:       s.db,
		items:    &s.db.publications,
		notFound: echo.NewHTTPError(http.StatusNotFound, "publication not found"),
		withID:   func(p refdata.Publication, id string) refdata.Publication { p.ID = id; return p },
		valid:    func(p refdata.Publication) bool { return p.Name != "" },
	}

	languages.register(g, "/languages")
	validities.register(g, "/validities")
	publications.register(g, "/publications")
}

func (k *refKind[E]) register(g *echo.Group, path string) {
	g.GET(path, k.list)
	g.POST(path, k.create)
	g.GET(path+"/:id", k.get)
	g.PUT(path+"/:id", k.update)
	g.DELETE(path+"/:id", k.delete)
}

func (k *refKind[E]) list(c echo.Context) error {
	k.db.mu.RLock()
	defer k.db.mu.RUnlock()
	return respond(c, http.StatusOK, *k.items)
}

func (k *refKind[E]) get(c echo.Context) error {
	k.db.mu.RLock()
	defer k.db.mu.RUnlock()

	id := c.Param("id")
	for _, item := range *k.items {
		if item.EntityID() == id {
			return respond(c, http.StatusOK, item)
		}
	}
	return k.notFound
}

func (k *refKind[E]) create(c echo.Context) error {
	var payload E
	if err := c.Bind(&payload); err != nil || !k.valid(payload) {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed payload")
	}

	k.db.mu.Lock()
	defer k.db.mu.Unlock()

	item := k.withID(payload, newID())
	*k.items = append(*k.items, item)
	return respond(c, http.StatusCreated, item)
}

func (k *refKind[E]) update(c echo.Context) error {
	var payload E
	if err := c.Bind(&payload); err != nil || !k.valid(payload) {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed payload")
	}

	k.db.mu.Lock()
	defer k.db.mu.Unlock()

	id := c.Param("id")
	items := *k.items
	for i := range items {
		if items[i].EntityID() == id {
			items[i] = k.withID(payload, id)
			return respond(c, http.StatusOK, items[i])
		}
	}
	return k.notFound
}

func (k *refKind[E]) delete(c echo.Context) error {
	k.db.mu.Lock()
	defer k.db.mu.Unlock()

	id := c.Param("id")
	items := *k.items
	for i := range items {
		if items[i].EntityID() == id {
			*k.items = append(items[:i], items[i+1:]...)
			return c.NoContent(http.StatusNoContent)
		}
	}
	return k.notFound
}
