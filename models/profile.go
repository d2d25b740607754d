package models

import (
	"time"

	"salondesk-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// Profile is a staff member account. Profiles are never hard-deleted,
// only deactivated, so historical line items keep a valid employee reference.
type Profile struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	Email    string    `gorm:"uniqueIndex;not null"`
	Password string    `gorm:"not null" json:"-"`
	Name     string    `gorm:"not null"`
	Phone    string

	Role     string `gorm:"type:varchar(20);not null;default:'employee'"` // 'admin' or 'employee'
	IsActive bool   `gorm:"default:true"`

	LastLogin *time.Time

	gorm.Model
}

// Hash password and assign UUID before creating
func (p *Profile) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	hashed, err := utils.HashPassword(p.Password)
	if err != nil {
		return err
	}
	p.Password = hashed
	return
}

func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}
