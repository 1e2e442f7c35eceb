package stubapi

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"golang.org/x/crypto/bcrypt"

	"github.com/kondoo/console/core"
	"github.com/kondoo/console/core/coupon"
	"github.com/kondoo/console/core/course"
	"github.com/kondoo/console/core/ebook"
	"github.com/kondoo/console/core/entity"
	"github.com/kondoo/console/core/order"
	"github.com/kondoo/console/core/refdata"
	"github.com/kondoo/console/core/taxonomy"
	"github.com/kondoo/console/core/testseries"
)

// newID mints object ids in the 24-hex shape the real API uses.
func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:24]
}

type adminUser struct {
	Email        string
	PasswordHash []byte
}

// database is the whole stub state behind one lock. Contention is not a
// concern here; fidelity of responses is.
type database struct {
	mu sync.RWMutex

	admin adminUser

	courses       []course.Course
	ebooks        []ebook.Ebook
	series        []testseries.TestSeries
	coupons       []coupon.Coupon
	orders        []order.Order
	categories    []taxonomy.Category
	subCategories []taxonomy.SubCategory
	languages     []refdata.Language
	validities    []refdata.Validity
	publications  []refdata.Publication
}

func newDatabase(conf *core.Config) *database {
	hash, err := bcrypt.GenerateFromPassword([]byte(conf.Stub.AdminPwd), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	db := &database{
		admin: adminUser{
			Email:        core.CleanString(conf.Stub.AdminEmail, true),
			PasswordHash: hash,
		},
	}
	db.seed()
	return db
}

func (db *database) seed() {
	now := time.Now().UTC()

	english := refdata.Language{ID: newID(), Name: "English", Code: "en"}
	hindi := refdata.Language{ID: newID(), Name: "Hindi", Code: "hi"}
	db.languages = []refdata.Language{english, hindi}

	sixMonths := refdata.Validity{ID: newID(), Label: "6 months", Days: 180}
	oneYear := refdata.Validity{ID: newID(), Label: "1 year", Days: 365}
	db.validities = []refdata.Validity{sixMonths, oneYear}

	press := refdata.Publication{ID: newID(), Name: "Horizon Press"}
	db.publications = []refdata.Publication{press}

	maths := taxonomy.Category{ID: newID(), Name: "Mathematics"}
	science := taxonomy.Category{ID: newID(), Name: "Science"}
	db.categories = []taxonomy.Category{maths, science}
	db.subCategories = []taxonomy.SubCategory{
		{ID: newID(), Name: "Algebra", Category: entity.Ref{ID: maths.ID, Name: maths.Name}},
		{ID: newID(), Name: "Physics", Category: entity.Ref{ID: science.ID, Name: science.Name}},
	}

	crs := course.Course{
		ID:          newID(),
		Name:        "Algebra Basics",
		Description: "From expressions to equations.",
		Price:       499,
		IsActive:    null.BoolFrom(true),
		Categories:  []entity.Ref{{ID: maths.ID, Name: maths.Name}},
		Language:    entity.Ref{ID: english.ID, Name: english.Name},
		Validities:  []entity.Ref{{ID: sixMonths.ID, Name: sixMonths.Label}},
		Tutors:      []course.Tutor{{ID: newID(), Name: "A. Sharma"}},
		Classes: []course.Class{
			{ID: newID(), Title: "Expressions"},
			{ID: newID(), Title: "Linear equations"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	db.courses = []course.Course{crs}

	bk := ebook.Ebook{
		ID:          newID(),
		Title:       "Mechanics Primer",
		Author:      "R. Verma",
		Price:       199,
		IsActive:    null.BoolFrom(true),
		Categories:  []entity.Ref{{ID: science.ID, Name: science.Name}},
		Publication: entity.Ref{ID: press.ID, Name: press.Name},
		Language:    entity.Ref{ID: english.ID, Name: english.Name},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	db.ebooks = []ebook.Ebook{bk}

	ts := testseries.TestSeries{
		ID:         newID(),
		Name:       "Algebra Mock Tests",
		Price:      299,
		IsActive:   null.BoolFrom(false),
		Categories: []entity.Ref{{ID: maths.ID, Name: maths.Name}},
		Language:   entity.Ref{ID: hindi.ID, Name: hindi.Name},
		Sections: []testseries.Section{
			{ID: newID(), Name: "Warm up", Duration: 30, Questions: []testseries.Question{
				{ID: newID(), Text: "2 + 2 = ?", Options: []string{"3", "4", "5"}, Answer: 1, Marks: 1},
			}},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	db.series = []testseries.TestSeries{ts}

	db.coupons = []coupon.Coupon{{
		ID:              newID(),
		Code:            "WELCOME-10",
		DiscountPercent: 10,
		MaxUses:         100,
		ExpiresAt:       now.AddDate(0, 3, 0),
		IsActive:        null.BoolFrom(true),
		CreatedAt:       now,
	}}

	for i := 0; i < 12; i++ {
		status := order.StatusPaid
		if i%3 == 0 {
			status = order.StatusPending
		}
		db.orders = append(db.orders, order.Order{
			ID:     newID(),
			User:   entity.Ref{ID: newID(), Name: fmt.Sprintf("Student %02d", i+1)},
			Items:  []order.OrderItem{{Kind: "course", Item: entity.Ref{ID: crs.ID, Name: crs.Name}, Price: crs.Price}},
			Amount: crs.Price,
			Status: status,
			// newest first, like the real API
			CreatedAt: now.Add(-time.Duration(i) * time.Hour),
		})
	}
}

func (db *database) categoryRefs(ids []string) []entity.Ref {
	var refs []entity.Ref
	for _, id := range ids {
		for _, cat := range db.categories {
			if cat.ID == id {
				refs = append(refs, entity.Ref{ID: cat.ID, Name: cat.Name})
				break
			}
		}
	}
	return refs
}

func (db *database) languageRef(id string) entity.Ref {
	for _, lang := range db.languages {
		if lang.ID == id {
			return entity.Ref{ID: lang.ID, Name: lang.Name}
		}
	}
	return entity.Ref{}
}

func (db *database) validityRefs(ids []string) []entity.Ref {
	var refs []entity.Ref
	for _, id := range ids {
		for _, v := range db.validities {
			if v.ID == id {
				refs = append(refs, entity.Ref{ID: v.ID, Name: v.Label})
				break
			}
		}
	}
	return refs
}

func (db *database) publicationRef(id string) entity.Ref {
	for _, pub := range db.publications {
		if pub.ID == id {
			return entity.Ref{ID: pub.ID, Name: pub.Name}
		}
	}
	return entity.Ref{}
}
