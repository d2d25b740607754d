package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service is a sellable offering. Services are soft-deactivated, never
// hard-deleted, so historical line items keep their service reference.
type Service struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	Name            string    `gorm:"not null"`
	Description     string
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DurationMinutes int             `gorm:"not null"`
	IsActive        bool            `gorm:"default:true"`
	CategoryID      *uuid.UUID      `gorm:"type:uuid;index"`

	Items []VisitService `gorm:"foreignKey:ServiceID"`

	gorm.Model
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
