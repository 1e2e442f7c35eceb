// Package refdata covers the small reference kinds (languages, validity
// options, publications) which share one plain CRUD surface.
package refdata

import "github.com/kondoo/console/core"

type Language struct {
	ID   string `json:"_id"`
	Name string `json:"name" validate:"required"`
	Code string `json:"code,omitempty" validate:"omitempty,bcp47_language_tag"`
}

func (l Language) EntityID() string { return l.ID }

// Validity is a purchase-duration option (e.g. "6 months") courses and
// test series can offer.
type Validity struct {
	ID    string `json:"_id"`
	Label string `json:"label" validate:"required"`
	Days  int    `json:"days" validate:"required,gt=0"`
}

func (v Validity) EntityID() string { return v.ID }

type Publication struct {
	ID   string `json:"_id"`
	Name string `json:"name" validate:"required"`
}

func (p Publication) EntityID() string { return p.ID }

func validate(v interface{}) error {
	return core.TranslateValidationErrors(core.Validate.Struct(v))
}
