// controllers/visit.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"salondesk-backend/config"
	"salondesk-backend/models"
	"salondesk-backend/services"
	"salondesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNoServices      = errors.New("no services selected")
	ErrMissingEmployee = errors.New("missing employee assignment")
)

// VisitItemInput is one (service, assigned employee) pair of a candidate visit
type VisitItemInput struct {
	ServiceID  uuid.UUID `json:"serviceId" binding:"required"`
	EmployeeID uuid.UUID `json:"employeeId"`
}

// CreateVisitInput defines the expected JSON structure for recording a visit
type CreateVisitInput struct {
	CustomerName  string           `json:"customerName" binding:"required"`
	CustomerPhone string           `json:"customerPhone"`
	Notes         string           `json:"notes"`
	CheckInAt     *time.Time       `json:"checkInAt"`
	Items         []VisitItemInput `json:"items"`
	Discount      decimal.Decimal  `json:"discount"`
	PaymentMethod string           `json:"paymentMethod" binding:"required,oneof=cash card upi wallet"`
	PaymentStatus string           `json:"paymentStatus" binding:"omitempty,oneof=paid unpaid partial"`
}

// ValidateVisitItems enforces the submission rules before any write: at
// least one service must be selected, and every selected service must have
// an assigned employee.
func ValidateVisitItems(items []VisitItemInput) error {
	if len(items) == 0 {
		return ErrNoServices
	}
	for _, item := range items {
		if item.EmployeeID == uuid.Nil {
			return ErrMissingEmployee
		}
	}
	return nil
}

// CreateVisit records a walk-in visit: one visit header plus one line item
// per selected service, each carrying a price snapshot. Header and items are
// written in a single transaction so a failure never leaves an orphaned
// header row.
func CreateVisit(c *gin.Context) {
	var input CreateVisitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := ValidateVisitItems(input.Items); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "unauthenticated")
		return
	}
	creatorUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "unauthenticated")
		return
	}

	if input.Discount.IsNegative() {
		utils.RespondWithError(c, http.StatusBadRequest, "Discount must not be negative")
		return
	}

	if input.CustomerPhone != "" && !utils.ValidatePhone(input.CustomerPhone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	// Resolve selected services and snapshot their current prices
	var items []models.VisitService
	var prices []decimal.Decimal
	for _, item := range input.Items {
		var service models.Service
		if err := config.DB.Where("id = ? AND is_active = ?", item.ServiceID, true).
			First(&service).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Service not found or inactive: "+item.ServiceID.String())
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}

		var employee models.Profile
		if err := config.DB.Where("id = ? AND is_active = ?", item.EmployeeID, true).
			First(&employee).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Employee not found or inactive: "+item.EmployeeID.String())
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}

		prices = append(prices, service.Price)
		items = append(items, models.VisitService{
			ServiceID:   service.ID,
			EmployeeID:  employee.ID,
			ServiceName: service.Name,
			Price:       service.Price,
		})
	}

	// FinalAmount is not clamped at zero: a discount larger than the
	// subtotal is stored as a negative amount, visible for correction.
	subtotal, finalAmount := models.ComputeTotals(prices, input.Discount)

	checkInAt := time.Now()
	if input.CheckInAt != nil {
		checkInAt = *input.CheckInAt
	}

	paymentStatus := input.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = "paid"
	}

	visit := models.Visit{
		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
		Notes:         input.Notes,
		CheckInAt:     checkInAt,
		TotalAmount:   subtotal,
		Discount:      input.Discount,
		FinalAmount:   finalAmount,
		PaymentMethod: input.PaymentMethod,
		PaymentStatus: paymentStatus,
		CreatedByID:   creatorUUID,
		Items:         items,
	}

	// Start transaction
	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&visit).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record visit")
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record visit")
		return
	}

	// Fire-and-forget receipt; failures are logged, never surfaced here
	go services.SendVisitReceipt(visit)

	c.JSON(http.StatusCreated, visit)
}

// GetVisits retrieves visits in an inclusive [start, end] window, optionally
// filtered by a customer name/phone substring via ?q=.
func GetVisits(c *gin.Context) {
	start, end, err := utils.ParseDateRange(c.Query("start"), c.Query("end"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date range")
		return
	}

	query := config.DB.Preload("Items").
		Where("check_in_at >= ? AND check_in_at <= ?", start, end)

	if q := c.Query("q"); q != "" {
		query = query.Where("customer_name ILIKE ? OR customer_phone ILIKE ?", "%"+q+"%", "%"+q+"%")
	}

	var visits []models.Visit
	if err := query.Order("check_in_at DESC").Find(&visits).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve visits")
		return
	}

	c.JSON(http.StatusOK, visits)
}

// GetVisit retrieves a specific visit by ID
func GetVisit(c *gin.Context) {
	visitUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid visit ID format")
		return
	}

	var visit models.Visit
	if err := config.DB.Preload("Items").First(&visit, "id = ?", visitUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Visit not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, visit)
}
