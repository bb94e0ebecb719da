package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is the profile a staff member manages. It may exist without a
// linked login; registration links it one-to-one to a User.
type Customer struct {
	ID     uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"userId"`

	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	ProfilePic string `gorm:"default:'default.png'" json:"profilePic"`

	Orders []Order `gorm:"foreignKey:CustomerID" json:"orders,omitempty"`

	gorm.Model
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
