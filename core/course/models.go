package course

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/kondoo/console/core/entity"
)

// Course is the remote-backed course record. The list endpoint returns a
// strict subset of the detail endpoint's fields: IsActive, Classes and
// Tutors only arrive on detail responses, so their absence is tracked
// (null.Bool / nil slices) rather than zero-valued.
type Course struct {
	ID            string       `json:"_id"`
	Name          string       `json:"name"`
	Description   string       `json:"description,omitempty"`
	Price         float64      `json:"price"`
	DiscountPrice null.Float64 `json:"discountPrice,omitempty"`
	Thumbnail     string       `json:"thumbnail,omitempty"`
	IsActive      null.Bool    `json:"isActive,omitempty"`
	Categories    []entity.Ref `json:"categories,omitempty"`
	Language      entity.Ref   `json:"language,omitempty"`
	Validities    []entity.Ref `json:"validities,omitempty"`
	Tutors        []Tutor      `json:"tutors,omitempty"`
	Classes       []Class      `json:"classes,omitempty"`
	CreatedAt     time.Time    `json:"createdAt,omitempty"`
	UpdatedAt     time.Time    `json:"updatedAt,omitempty"`
}

func (c Course) EntityID() string { return c.ID }

type Tutor struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name"`
	About string `json:"about,omitempty"`
	Photo string `json:"photo,omitempty"` // media URL, server-assigned
}

type Class struct {
	ID           string `json:"_id,omitempty"`
	Title        string `json:"title"`
	Video        string `json:"video,omitempty"`
	Thumbnail    string `json:"thumbnail,omitempty"`
	LecturePhoto string `json:"lecturePhoto,omitempty"`
}

// isSparse reports whether a record is missing the detail-only fields
// (i.e. it came from the list endpoint and has not been hydrated yet).
func isSparse(c Course) bool { return !c.IsActive.Valid }

// merge backfills fields the incoming record lacks from the resident one,
// so a sparse list refresh never downgrades a hydrated record.
func merge(incoming, prev Course) Course {
	if !incoming.IsActive.Valid {
		incoming.IsActive = prev.IsActive
	}
	if !incoming.DiscountPrice.Valid {
		incoming.DiscountPrice = prev.DiscountPrice
	}
	if incoming.Classes == nil {
		incoming.Classes = prev.Classes
	}
	if incoming.Tutors == nil {
		incoming.Tutors = prev.Tutors
	}
	return incoming
}

// Filter narrows FetchAll.
type Filter struct {
	Search   string
	Category string
	Language string
}
