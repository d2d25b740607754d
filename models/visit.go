package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment methods accepted at checkout.
const (
	PaymentCash   = "cash"
	PaymentCard   = "card"
	PaymentUPI    = "upi"
	PaymentWallet = "wallet"
)

// Visit is one recorded customer transaction. The customer phone may be
// empty for anonymous walk-ins. Line items are immutable once created.
type Visit struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	CustomerName  string    `gorm:"not null"`
	CustomerPhone string    `gorm:"index"`
	Notes         string
	CheckInAt     time.Time `gorm:"index;default:CURRENT_TIMESTAMP"`

	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Discount    decimal.Decimal `gorm:"type:decimal(10,2);default:0.0"`
	// FinalAmount = TotalAmount - Discount. A discount larger than the
	// subtotal yields a negative final amount; the value is stored as-is.
	FinalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	PaymentMethod string `gorm:"type:varchar(20);not null"`
	PaymentStatus string `gorm:"type:varchar(20);default:'paid'"`

	CreatedByID uuid.UUID `gorm:"type:uuid;index;not null"`

	Items []VisitService `gorm:"foreignKey:VisitID"`

	gorm.Model
}

func (v *Visit) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return
}

// VisitService links a visit to a performed service and the employee who
// performed it. Price and name are copied at sale time so later catalog
// edits do not retroactively alter historical totals.
type VisitService struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	VisitID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	ServiceID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	EmployeeID  uuid.UUID       `gorm:"type:uuid;index;not null"`
	ServiceName string          `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

func (vs *VisitService) BeforeCreate(tx *gorm.DB) (err error) {
	if vs.ID == uuid.Nil {
		vs.ID = uuid.New()
	}
	return
}

// ComputeTotals returns the subtotal of the given line prices and the final
// amount after discount. The final amount is not clamped at zero.
func ComputeTotals(prices []decimal.Decimal, discount decimal.Decimal) (subtotal, final decimal.Decimal) {
	subtotal = decimal.Zero
	for _, p := range prices {
		subtotal = subtotal.Add(p)
	}
	return subtotal, subtotal.Sub(discount)
}
