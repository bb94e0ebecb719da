package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerQuery is a support message submitted through the customer portal.
type CustomerQuery struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	Subject string    `gorm:"not null" json:"subject"`
	Message string    `gorm:"type:text;not null" json:"message"`

	gorm.Model
}

func (q *CustomerQuery) BeforeCreate(tx *gorm.DB) (err error) {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return
}
