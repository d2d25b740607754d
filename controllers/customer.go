package controllers

import (
	"net/http"

	"salondesk-backend/config"
	"salondesk-backend/models"
	"salondesk-backend/utils"

	"github.com/gin-gonic/gin"
)

// Resolver result and candidate-row caps. The candidate cap bounds the scan
// on broad partial matches; the suggestion cap bounds the response.
const (
	lookupMinDigits     = 3
	lookupCandidateRows = 50
	lookupMaxResults    = 10
)

// LookupCustomers suggests (name, phone) pairs for a partial phone number
// typed into the walk-in form. Input shorter than 3 characters yields an
// empty list to avoid overly broad matches. Rows arrive most-recent-first,
// so deduplication keeps each customer's latest recorded name.
func LookupCustomers(c *gin.Context) {
	partial := c.Query("phone")
	if len(partial) < lookupMinDigits {
		c.JSON(http.StatusOK, []models.CustomerSuggestion{})
		return
	}

	var visits []models.Visit
	if err := config.DB.
		Where("customer_phone ILIKE ?", "%"+partial+"%").
		Order("check_in_at DESC").
		Limit(lookupCandidateRows).
		Find(&visits).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to look up customers")
		return
	}

	suggestions := models.DedupeSuggestions(visits)
	if len(suggestions) > lookupMaxResults {
		suggestions = suggestions[:lookupMaxResults]
	}

	c.JSON(http.StatusOK, suggestions)
}

// GetCustomers returns per-customer rollups derived from visit history:
// visit count, total and average spend, last visit, distinct services used.
// Customers are identified by phone; anonymous walk-ins are excluded.
func GetCustomers(c *gin.Context) {
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
	if err := query.Order("check_in_at ASC").Find(&visits).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	c.JSON(http.StatusOK, models.CustomerRollups(visits))
}
