package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order statuses. Any status is settable at update time; there is no enforced
// forward-only progression.
const (
	StatusPending        = "Pending"
	StatusOutForDelivery = "Out for Delivery"
	StatusDelivered      = "Delivered"
)

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusOutForDelivery || s == StatusDelivered
}

// Order references a customer and a product. Both references are nullable:
// deleting either entity clears the reference instead of cascading.
type Order struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID *uuid.UUID `gorm:"type:uuid;index" json:"customerId"`
	ProductID  *uuid.UUID `gorm:"type:uuid;index" json:"productId"`

	Status string `gorm:"not null" json:"status"`
	Note   string `gorm:"type:varchar(1000)" json:"note"`

	Customer *Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:SET NULL" json:"customer,omitempty"`
	Product  *Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:SET NULL" json:"product,omitempty"`

	gorm.Model
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return
}
