package models

import (
	"time"

	"crmsystem-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role names used by the authorization gates. Matching is exact and
// case-sensitive.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Username string    `gorm:"uniqueIndex;not null" json:"username"`
	Email    string    `json:"email"`
	Password string    `gorm:"not null" json:"-"`

	// Superuser bypasses every role check.
	Superuser bool   `gorm:"default:false" json:"superuser"`
	Roles     []Role `gorm:"many2many:user_roles" json:"roles"`

	LastLogin *time.Time `json:"lastLogin"`

	gorm.Model
}

// BeforeCreate assigns the ID and hashes the password.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}

// RoleNames returns the user's role set as plain names. A user with no roles
// yields an empty slice, never nil dereferences.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

type Role struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name string    `gorm:"uniqueIndex;not null" json:"name"`
}

func (r *Role) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
