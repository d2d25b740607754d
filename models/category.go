package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceCategory is a named grouping for services, managed by admins.
type ServiceCategory struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Description string

	Services []Service `gorm:"foreignKey:CategoryID"`

	gorm.Model
}

func (sc *ServiceCategory) BeforeCreate(tx *gorm.DB) (err error) {
	if sc.ID == uuid.Nil {
		sc.ID = uuid.New()
	}
	return
}
