package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles. The admin role gates the broker dashboard endpoints; it replaces
// any comparison against a hardcoded admin email.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	// Login information
	Username string `gorm:"unique;not null;size:50" json:"username"`
	Email    string `gorm:"unique;not null;size:100" json:"email"`
	Password string `gorm:"not null" json:"-"`

	// Profile
	FullName string  `gorm:"size:100" json:"full_name"`
	Phone    *string `gorm:"size:20" json:"phone,omitempty"`
	ImageURL string  `json:"image_url"`

	// Role & status
	Role       string `gorm:"default:'user';size:20" json:"role"`
	IsVerified bool   `gorm:"default:false" json:"is_verified"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
