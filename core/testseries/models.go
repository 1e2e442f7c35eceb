package testseries

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/kondoo/console/core"
	"github.com/kondoo/console/core/entity"
)

// TestSeries is the remote-backed test-series record, including its nested
// section/question bank. Sub-resource operations return the whole updated
// series; the store always merges at the series level.
type TestSeries struct {
	ID          string       `json:"_id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Price       float64      `json:"price"`
	IsActive    null.Bool    `json:"isActive,omitempty"`
	Categories  []entity.Ref `json:"categories,omitempty"`
	Language    entity.Ref   `json:"language,omitempty"`
	Sections    []Section    `json:"sections,omitempty"`
	CreatedAt   time.Time    `json:"createdAt,omitempty"`
	UpdatedAt   time.Time    `json:"updatedAt,omitempty"`
}

func (ts TestSeries) EntityID() string { return ts.ID }

type Section struct {
	ID        string     `json:"_id,omitempty"`
	Name      string     `json:"name"`
	Duration  int        `json:"duration,omitempty"` // minutes
	Questions []Question `json:"questions,omitempty"`
}

type Question struct {
	ID      string   `json:"_id,omitempty"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Answer  int      `json:"answer"` // index into Options
	Marks   float64  `json:"marks,omitempty"`
}

func merge(incoming, prev TestSeries) TestSeries {
	if !incoming.IsActive.Valid {
		incoming.IsActive = prev.IsActive
	}
	if incoming.Sections == nil {
		incoming.Sections = prev.Sections
	}
	return incoming
}

type Filter struct {
	Search   string
	Category string
}

type NewTestSeries struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"gte=0"`
	CategoryIDs []string `json:"categories" validate:"required,min=1,dive,objectid"`
	LanguageID  string   `json:"language" validate:"omitempty,objectid"`
}

type UpdateTestSeries struct {
	Name        string   `json:"name" validate:"omitempty"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	CategoryIDs []string `json:"categories" validate:"omitempty,min=1,dive,objectid"`
	LanguageID  string   `json:"language" validate:"omitempty,objectid"`
}

type NewSection struct {
	Name     string `json:"name" validate:"required"`
	Duration int    `json:"duration" validate:"gte=0"`
}

type NewQuestion struct {
	Text    string   `json:"text" validate:"required"`
	Options []string `json:"options" validate:"required,min=2,dive,required"`
	Answer  int      `json:"answer" validate:"gte=0"`
	Marks   float64  `json:"marks" validate:"gte=0"`
}

func (nts NewTestSeries) Validate() error {
	return core.TranslateValidationErrors(core.Validate.Struct(nts))
}

func (uts UpdateTestSeries) Validate() error {
	return core.TranslateValidationErrors(core.Validate.Struct(uts))
}

func (ns NewSection) Validate() error {
	return core.TranslateValidationErrors(core.Validate.Struct(ns))
}

func (nq NewQuestion) Validate() error {
	if err := core.TranslateValidationErrors(core.Validate.Struct(nq)); err != nil {
		return err
	}
	if nq.Answer >= len(nq.Options) {
		return core.NewValidationError(nil, core.FieldError{Field: "answer", Error: "answer must index one of the options"})
	}
	return nil
}
