package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"
)

type testCourse struct {
	ID       string
	Name     string
	IsActive null.Bool
	Classes  []string
}

func (c testCourse) EntityID() string { return c.ID }

func mergeTestCourse(incoming, prev testCourse) testCourse {
	if !incoming.IsActive.Valid {
		incoming.IsActive = prev.IsActive
	}
	if incoming.Classes == nil {
		incoming.Classes = prev.Classes
	}
	return incoming
}

func newTestStore() *Store[testCourse] {
	return NewStore[testCourse](WithMerge(mergeTestCourse))
}

func Test_Store_ReplaceAll(t *testing.T) {
	store := newTestStore()

	store.ReplaceAll(store.Issue(), []testCourse{
		{ID: "c1", Name: "Algebra"},
		{ID: "c2", Name: "Biology"},
		{ID: "c1", Name: "Algebra dup"}, // same id arriving twice: first wins
	})

	items := store.Items()
	if assert.Len(t, items, 2) {
		assert.Equal(t, "c1", items[0].ID)
		assert.Equal(t, "Algebra", items[0].Name)
		assert.Equal(t, "c2", items[1].ID)
	}
	assert.False(t, store.Loading())
}

func Test_Store_ReplaceAll_keepsHydratedFields(t *testing.T) {
	store := newTestStore()

	store.ReplaceAll(store.Issue(), []testCourse{{ID: "c1", Name: "Algebra"}})
	store.Apply(store.Issue(), testCourse{
		ID: "c1", Name: "Algebra", IsActive: null.BoolFrom(true), Classes: []string{"intro"},
	})

	// a sparse list refresh must not erase the hydrated fields
	store.ReplaceAll(store.Issue(), []testCourse{{ID: "c1", Name: "Algebra II"}})

	got, ok := store.Get("c1")
	if assert.True(t, ok) {
		assert.Equal(t, "Algebra II", got.Name) // fresh list wins where it has data
		assert.Equal(t, null.BoolFrom(true), got.IsActive)
		assert.Equal(t, []string{"intro"}, got.Classes)
	}
}

func Test_Store_Apply_isIdempotent(t *testing.T) {
	store := newTestStore()
	store.ReplaceAll(store.Issue(), []testCourse{{ID: "c1"}, {ID: "c2"}})

	full := testCourse{ID: "c1", Name: "Algebra", IsActive: null.BoolFrom(true)}
	store.Apply(store.Issue(), full)
	once := store.Items()

	store.Apply(store.Issue(), full)
	assert.Equal(t, once, store.Items())
}

func Test_Store_Apply_preservesPosition(t *testing.T) {
	store := newTestStore()
	store.ReplaceAll(store.Issue(), []testCourse{
		{ID: "c1"}, {ID: "c2"}, {ID: "c3"}, {ID: "c4"}, {ID: "c5"},
	})

	store.Apply(store.Issue(), testCourse{ID: "c3", Name: "renamed"})

	items := store.Items()
	if assert.Len(t, items, 5) {
		assert.Equal(t, "c3", items[2].ID)
		assert.Equal(t, "renamed", items[2].Name)
	}
}

func Test_Store_Apply_missingIDIsNoop(t *testing.T) {
	store := newTestStore()
	store.ReplaceAll(store.Issue(), []testCourse{{ID: "c1"}})

	// the record was dropped locally while the update was in flight
	assert.NotPanics(t, func() {
		store.Apply(store.Issue(), testCourse{ID: "gone", Name: "late"})
	})
	assert.Equal(t, 1, store.Len())
}

func Test_Store_Insert(t *testing.T) {
	store := newTestStore()
	store.ReplaceAll(store.Issue(), []testCourse{{ID: "c1"}, {ID: "c2"}})

	store.Insert(store.Issue(), testCourse{ID: "new1", Name: "X"})

	items := store.Items()
	if assert.Len(t, items, 3) {
		assert.Equal(t, "new1", items[0].ID) // creates land at the head
	}

	// inserting an id that already exists replaces it in place
	store.Insert(store.Issue(), testCourse{ID: "c2", Name: "replaced"})
	items = store.Items()
	if assert.Len(t, items, 3) {
		assert.Equal(t, "replaced", items[2].Name)
	}
}

func Test_Store_Remove(t *testing.T) {
	store := newTestStore()
	store.ReplaceAll(store.Issue(), []testCourse{{ID: "abc"}, {ID: "c2"}, {ID: "c3"}})

	store.Remove("abc")

	items := store.Items()
	assert.Len(t, items, 2)
	for _, item := range items {
		assert.NotEqual(t, "abc", item.ID)
	}

	assert.NotPanics(t, func() { store.Remove("abc") }) // already gone
	assert.Equal(t, 2, store.Len())
}

func Test_Store_sequenceGuard(t *testing.T) {
	store := newTestStore()
	store.ReplaceAll(store.Issue(), []testCourse{{ID: "c1", Name: "v0"}})

	// update A issued before update B, but resolving after it
	seqA := store.Issue()
	seqB := store.Issue()
	store.Apply(seqB, testCourse{ID: "c1", Name: "B"})
	store.Apply(seqA, testCourse{ID: "c1", Name: "A"})

	got, _ := store.Get("c1")
	assert.Equal(t, "B", got.Name)
}

func Test_Store_sequenceGuard_staleListReplace(t *testing.T) {
	store := newTestStore()
	store.ReplaceAll(store.Issue(), []testCourse{{ID: "c1", Name: "v0"}})

	listSeq := store.Issue() // list fetch issued first...
	store.Apply(store.Issue(), testCourse{ID: "c1", Name: "updated"})

	// ...but resolving after the update: it must not resurrect the old record
	store.ReplaceAll(listSeq, []testCourse{{ID: "c1", Name: "v0"}, {ID: "c2"}})

	got, _ := store.Get("c1")
	assert.Equal(t, "updated", got.Name)
	assert.Equal(t, 2, store.Len()) // membership still comes from the list
}

func Test_Store_statusDiscipline(t *testing.T) {
	store := newTestStore()
	store.ReplaceAll(store.Issue(), []testCourse{{ID: "c1"}, {ID: "c2"}})

	store.Begin()
	assert.True(t, store.Loading())
	assert.Empty(t, store.Err())

	store.Fail("network unreachable")
	assert.False(t, store.Loading())
	assert.Equal(t, "network unreachable", store.Err())
	assert.Equal(t, 2, store.Len()) // a failed fetch never clears items

	store.Begin()
	assert.Empty(t, store.Err()) // dispatching clears the previous error
	store.Finish()
	assert.False(t, store.Loading())
}

func Test_Store_Patch(t *testing.T) {
	store := newTestStore()
	store.ReplaceAll(store.Issue(), []testCourse{{ID: "c1", IsActive: null.BoolFrom(false)}})

	ok := store.Patch("c1", func(c *testCourse) { c.IsActive = null.BoolFrom(true) })
	assert.True(t, ok)
	got, _ := store.Get("c1")
	assert.Equal(t, null.BoolFrom(true), got.IsActive)

	assert.False(t, store.Patch("nope", func(c *testCourse) {}))
}

func Test_Store_Pagination(t *testing.T) {
	store := NewStore[testCourse]()
	assert.Nil(t, store.Pagination())

	store.SetPagination(&Pagination{Page: 2, Limit: 10, Total: 42, TotalPages: 5})
	page := store.Pagination()
	if assert.NotNil(t, page) {
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, 42, page.Total)
	}
}
