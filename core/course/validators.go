package course

import "github.com/kondoo/console/core"

type NewCourse struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"gte=0"`
	CategoryIDs []string `json:"categories" validate:"required,min=1,dive,objectid"`
	LanguageID  string   `json:"language" validate:"omitempty,objectid"`
	ValidityIDs []string `json:"validities" validate:"omitempty,dive,objectid"`
	Tutors      []NewTutor `json:"tutors" validate:"omitempty,dive"`
	Classes     []NewClass `json:"classes" validate:"omitempty,dive"`

	Thumbnail *core.Attachment `json:"-"`
}

type UpdateCourse struct {
	Name        string   `json:"name" validate:"omitempty"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	CategoryIDs []string `json:"categories" validate:"omitempty,min=1,dive,objectid"`
	LanguageID  string   `json:"language" validate:"omitempty,objectid"`
	ValidityIDs []string `json:"validities" validate:"omitempty,dive,objectid"`

	Thumbnail *core.Attachment `json:"-"`
}

type NewTutor struct {
	Name  string `json:"name" validate:"required"`
	About string `json:"about"`

	Photo *core.Attachment `json:"-"`
}

type NewClass struct {
	Title string `json:"title" validate:"required"`

	Video        *core.Attachment `json:"-"`
	Thumbnail    *core.Attachment `json:"-"`
	LecturePhoto *core.Attachment `json:"-"`
}

func (nc NewCourse) Validate() error {
	return core.TranslateValidationErrors(core.Validate.Struct(nc))
}

func (uc UpdateCourse) Validate() error {
	return core.TranslateValidationErrors(core.Validate.Struct(uc))
}

func (nt NewTutor) Validate() error {
	return core.TranslateValidationErrors(core.Validate.Struct(nt))
}

func (ncl NewClass) Validate() error {
	return core.TranslateValidationErrors(core.Validate.Struct(ncl))
}
