package order

import (
	"time"

	"github.com/kondoo/console/core/entity"
)

// Order statuses
const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusFulfilled = "fulfilled"
	StatusRefunded  = "refunded"
	StatusCancelled = "cancelled"
)

var Statuses = []string{StatusPending, StatusPaid, StatusFulfilled, StatusRefunded, StatusCancelled}

// Order is a fulfilled or pending purchase; the console reads and advances
// its status, fulfillment itself is a server concern.
type Order struct {
	ID        string      `json:"_id"`
	User      entity.Ref  `json:"user"`
	Items     []OrderItem `json:"items"`
	Amount    float64     `json:"amount"`
	Coupon    entity.Ref  `json:"coupon,omitempty"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"createdAt,omitempty"`
}

func (o Order) EntityID() string { return o.ID }

type OrderItem struct {
	Kind  string     `json:"kind"` // course | ebook | testseries
	Item  entity.Ref `json:"item"`
	Price float64    `json:"price"`
}

// Filter narrows the paginated order list.
type Filter struct {
	Page   int
	Limit  int
	Status string
}

func ValidStatus(status string) bool {
	for _, s := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}
