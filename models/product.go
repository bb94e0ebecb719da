package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductCategories is the fixed catalog category set.
var ProductCategories = []string{
	"Sports",
	"Formal Attire",
	"Traditional Clothing",
	"Kids Wear",
	"Men's fashion",
	"Women's fashion",
	"Out Door",
	"In Door",
	"Home Decor",
	"Beauty Products",
}

// ValidCategory reports whether name is one of the fixed category labels.
func ValidCategory(name string) bool {
	for _, c := range ProductCategories {
		if c == name {
			return true
		}
	}
	return false
}

type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Category    string    `json:"category"`
	Description string    `json:"description"`

	Tags []Tag `gorm:"many2many:product_tags" json:"tags"`

	gorm.Model
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

type Tag struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name string    `gorm:"uniqueIndex;not null" json:"name"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
