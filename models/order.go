package models

import "time"

const (
	OrderTable     = "ld_orders"
	OrderUnitTable = "ld_order_units"
)

// OrderStatus is persisted as a string.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusApproved  OrderStatus = "approved"
	StatusRejected  OrderStatus = "rejected"
	StatusDelivered OrderStatus = "delivered"
	StatusReturned  OrderStatus = "returned"
	StatusCancelled OrderStatus = "cancelled"
)

// BlockingStatuses are the statuses under which an order still holds a live
// claim on its units. Rejected, returned and cancelled orders release their
// units implicitly: the availability query simply stops counting them.
var BlockingStatuses = []OrderStatus{StatusPending, StatusApproved, StatusDelivered}

// Order reserves specific units for a user over [OrderDate, ReturnDate).
// The unit set is fixed once allocation commits; orders are never hard-deleted
// (cancellation is a status, not a row removal).
type Order struct {
	ID           string      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       string      `gorm:"type:uuid;index;not null" json:"userId"`
	OrderDate    time.Time   `gorm:"index;not null" json:"orderDate"`
	ReturnDate   time.Time   `gorm:"index;not null" json:"returnDate"`
	Status       OrderStatus `gorm:"type:varchar(16);index;not null;default:'pending'" json:"status"`
	ApprovedByID *string     `gorm:"type:uuid" json:"approvedById,omitempty"`
	Units        []Unit      `gorm:"many2many:ld_order_units" json:"units,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

func (Order) TableName() string { return OrderTable }

// Blocking reports whether the order currently counts against availability.
func (o *Order) Blocking() bool {
	for _, s := range BlockingStatuses {
		if o.Status == s {
			return true
		}
	}
	return false
}

// Overlaps reports whether two half-open windows [aStart,aEnd) and
// [bStart,bEnd) conflict.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
