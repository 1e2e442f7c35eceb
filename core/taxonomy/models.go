package taxonomy

import (
	"github.com/kondoo/console/core"
	"github.com/kondoo/console/core/entity"
)

type Category struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

func (c Category) EntityID() string { return c.ID }

// SubCategory carries its parent category reference, which the API returns
// either as a bare id or as an embedded {_id,name} object; entity.Ref
// normalizes both.
type SubCategory struct {
	ID       string     `json:"_id"`
	Name     string     `json:"name"`
	Category entity.Ref `json:"category"`
}

func (sc SubCategory) EntityID() string { return sc.ID }

type NewCategory struct {
	Name string `json:"name" validate:"required"`
	Icon string `json:"icon"`
}

type NewSubCategory struct {
	Name       string `json:"name" validate:"required"`
	CategoryID string `json:"category" validate:"required,objectid"`
}

func (nc NewCategory) Validate() error {
	return core.TranslateValidationErrors(core.Validate.Struct(nc))
}

func (nsc NewSubCategory) Validate() error {
	return core.TranslateValidationErrors(core.Validate.Struct(nsc))
}

// GroupByCategory groups a flat subcategory collection by normalized parent
// id. Childless parents are simply absent; callers default to nil/empty on
// lookup. Orphans (zero parent ref) are dropped.
func GroupByCategory(subs []SubCategory) map[string][]SubCategory {
	grouped := make(map[string][]SubCategory)
	for _, sub := range subs {
		if sub.Category.IsZero() {
			continue
		}
		grouped[sub.Category.ID] = append(grouped[sub.Category.ID], sub)
	}
	return grouped
}
