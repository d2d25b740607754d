package controllers

import (
	"fmt"
	"net/http"
	"time"

	"salondesk-backend/config"
	"salondesk-backend/models"
	"salondesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type RecentVisit struct {
	CustomerName string          `json:"customerName"`
	Services     string          `json:"services"`
	Amount       decimal.Decimal `json:"amount"`
	When         string          `json:"when"` // e.g. "Today", "Yesterday"
}

// GetDashboardOverview returns the landing-screen summary: today's and this
// month's totals, the month's best service and employee, and recent visits.
func GetDashboardOverview(c *gin.Context) {
	now := time.Now()
	todayStart := utils.BeginningOfDay(now)
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	rc := ReportController{}

	todayVisits, err := rc.fetchVisits(todayStart, utils.EndOfDay(now))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get dashboard")
		return
	}

	monthVisits, err := rc.fetchVisits(firstOfMonth, utils.EndOfDay(now))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get dashboard")
		return
	}

	todayRevenue := decimal.Zero
	for _, v := range todayVisits {
		todayRevenue = todayRevenue.Add(v.FinalAmount)
	}
	monthRevenue := decimal.Zero
	for _, v := range monthVisits {
		monthRevenue = monthRevenue.Add(v.FinalAmount)
	}

	monthItems, err := rc.fetchLineItems(firstOfMonth, utils.EndOfDay(now))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get dashboard")
		return
	}

	names, err := rc.employeeNames(monthItems)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get dashboard")
		return
	}

	bestService := ""
	if top, ok := models.TopBucket(models.GroupLineItems(monthItems, func(it models.VisitService) string {
		if it.ServiceName == "" {
			return models.UnknownLabel
		}
		return it.ServiceName
	})); ok {
		bestService = top.Key
	}

	bestEmployee := ""
	if top, ok := models.TopBucket(models.GroupLineItems(monthItems, func(it models.VisitService) string {
		if name, ok := names[it.EmployeeID]; ok && name != "" {
			return name
		}
		return models.UnknownLabel
	})); ok {
		bestEmployee = top.Key
	}

	// Recent visits (latest 5)
	var latest []models.Visit
	if err := config.DB.Preload("Items").
		Order("check_in_at DESC").Limit(5).Find(&latest).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get dashboard")
		return
	}

	recent := make([]RecentVisit, 0, len(latest))
	for _, v := range latest {
		serviceNames := ""
		for i, it := range v.Items {
			if i > 0 {
				serviceNames += ", "
			}
			serviceNames += it.ServiceName
		}

		daysAgo := utils.DaysBetween(v.CheckInAt, now)
		var when string
		switch daysAgo {
		case 0:
			when = "Today"
		case 1:
			when = "Yesterday"
		default:
			when = fmt.Sprintf("%d days ago", daysAgo)
		}

		recent = append(recent, RecentVisit{
			CustomerName: v.CustomerName,
			Services:     serviceNames,
			Amount:       v.FinalAmount,
			When:         when,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"todayRevenue": todayRevenue,
		"todayVisits":  len(todayVisits),
		"monthRevenue": monthRevenue,
		"monthVisits":  len(monthVisits),
		"bestService":  bestService,
		"bestEmployee": bestEmployee,
		"recentVisits": recent,
	})
}
