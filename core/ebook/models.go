package ebook

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/kondoo/console/core"
	"github.com/kondoo/console/core/entity"
)

// Ebook is the remote-backed e-book record.
type Ebook struct {
	ID            string       `json:"_id"`
	Title         string       `json:"title"`
	Author        string       `json:"author,omitempty"`
	Description   string       `json:"description,omitempty"`
	Price         float64      `json:"price"`
	DiscountPrice null.Float64 `json:"discountPrice,omitempty"`
	IsActive      null.Bool    `json:"isActive,omitempty"`
	BookFile      string       `json:"bookFile,omitempty"` // media URL, server-assigned
	Thumbnail     string       `json:"thumbnail,omitempty"`
	Categories    []entity.Ref `json:"categories,omitempty"`
	Publication   entity.Ref   `json:"publication,omitempty"`
	Language      entity.Ref   `json:"language,omitempty"`
	CreatedAt     time.Time    `json:"createdAt,omitempty"`
	UpdatedAt     time.Time    `json:"updatedAt,omitempty"`
}

func (e Ebook) EntityID() string { return e.ID }

func merge(incoming, prev Ebook) Ebook {
	if !incoming.IsActive.Valid {
		incoming.IsActive = prev.IsActive
	}
	if !incoming.DiscountPrice.Valid {
		incoming.DiscountPrice = prev.DiscountPrice
	}
	return incoming
}

type Filter struct {
	Search      string
	Category    string
	Publication string
}

type NewEbook struct {
	Title         string   `json:"title" validate:"required"`
	Author        string   `json:"author"`
	Description   string   `json:"description"`
	Price         float64  `json:"price" validate:"gte=0"`
	CategoryIDs   []string `json:"categories" validate:"required,min=1,dive,objectid"`
	PublicationID string   `json:"publication" validate:"omitempty,objectid"`
	LanguageID    string   `json:"language" validate:"omitempty,objectid"`

	BookFile  *core.Attachment `json:"-"`
	Thumbnail *core.Attachment `json:"-"`
}

type UpdateEbook struct {
	Title         string   `json:"title" validate:"omitempty"`
	Author        string   `json:"author"`
	Description   string   `json:"description"`
	Price         *float64 `json:"price" validate:"omitempty,gte=0"`
	PublicationID string   `json:"publication" validate:"omitempty,objectid"`
	LanguageID    string   `json:"language" validate:"omitempty,objectid"`
}

func (ne NewEbook) Validate() error {
	return core.TranslateValidationErrors(core.Validate.Struct(ne))
}

func (ue UpdateEbook) Validate() error {
	return core.TranslateValidationErrors(core.Validate.Struct(ue))
}
