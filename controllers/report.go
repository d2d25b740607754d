// controllers/report.go
package controllers

import (
	"net/http"
	"time"

	"salondesk-backend/config"
	"salondesk-backend/models"
	"salondesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReportController handles all reporting functions
type ReportController struct{}

// DailySales is one per-day row of the sales report
type DailySales struct {
	Date          string          `json:"date"`
	Visits        int             `json:"visits"`
	Revenue       decimal.Decimal `json:"revenue"`
	AverageTicket decimal.Decimal `json:"averageTicket"`
}

// SalesReport is the date-window sales summary
type SalesReport struct {
	Start         string          `json:"start"`
	End           string          `json:"end"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	VisitCount    int             `json:"visitCount"`
	AverageTicket decimal.Decimal `json:"averageTicket"`
	Growth        float64         `json:"growth"`
	Days          []DailySales    `json:"days"`
	PeakHours     []models.Bucket `json:"peakHours"`
}

// GroupReport is a rollup keyed by employee, service or payment method
type GroupReport struct {
	Start  string          `json:"start"`
	End    string          `json:"end"`
	Total  decimal.Decimal `json:"total"`
	Groups []GroupRow      `json:"groups"`
	Best   string          `json:"best"`
}

// GroupRow is one rollup group with its derived average
type GroupRow struct {
	Key     string          `json:"key"`
	Count   int             `json:"count"`
	Sum     decimal.Decimal `json:"sum"`
	Average decimal.Decimal `json:"average"`
}

// RetentionReport is the new-vs-returning customer summary
type RetentionReport struct {
	Start              string  `json:"start"`
	End                string  `json:"end"`
	NewCustomers       int     `json:"newCustomers"`
	ReturningCustomers int     `json:"returningCustomers"`
	RetentionRate      float64 `json:"retentionRate"`
}

func (rc *ReportController) fetchVisits(start, end time.Time) ([]models.Visit, error) {
	var visits []models.Visit
	err := config.DB.
		Where("check_in_at >= ? AND check_in_at <= ?", start, end).
		Order("check_in_at ASC").
		Find(&visits).Error
	return visits, err
}

func (rc *ReportController) fetchLineItems(start, end time.Time) ([]models.VisitService, error) {
	var items []models.VisitService
	err := config.DB.
		Joins("JOIN visits ON visits.id = visit_services.visit_id").
		Where("visits.check_in_at >= ? AND visits.check_in_at <= ? AND visits.deleted_at IS NULL", start, end).
		Find(&items).Error
	return items, err
}

// employeeNames resolves the profiles referenced by the given line items.
// A dangling employee reference maps to the Unknown label downstream.
func (rc *ReportController) employeeNames(items []models.VisitService) (map[uuid.UUID]string, error) {
	ids := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]bool)
	for _, it := range items {
		if !seen[it.EmployeeID] {
			seen[it.EmployeeID] = true
			ids = append(ids, it.EmployeeID)
		}
	}

	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var profiles []models.Profile
	if err := config.DB.Where("id IN ?", ids).Find(&profiles).Error; err != nil {
		return nil, err
	}
	for _, p := range profiles {
		names[p.ID] = p.Name
	}
	return names, nil
}

func (rc *ReportController) dailySales(visits []models.Visit) []DailySales {
	buckets := models.GroupVisits(visits, func(v models.Visit) string {
		return v.CheckInAt.Format("2006-01-02")
	})

	days := make([]DailySales, 0, len(buckets))
	for _, b := range buckets {
		days = append(days, DailySales{
			Date:          b.Key,
			Visits:        b.Count,
			Revenue:       b.Sum,
			AverageTicket: b.Average(),
		})
	}
	return days
}

func toGroupRows(buckets []models.Bucket) []GroupRow {
	rows := make([]GroupRow, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, GroupRow{Key: b.Key, Count: b.Count, Sum: b.Sum, Average: b.Average()})
	}
	return rows
}

// GetSalesReport returns per-day revenue, the overall average ticket and
// growth against the preceding window of equal length.
func (rc *ReportController) GetSalesReport(c *gin.Context) {
	start, end, err := utils.ParseDateRange(c.Query("start"), c.Query("end"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date range")
		return
	}

	visits, err := rc.fetchVisits(start, end)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get sales report")
		return
	}

	windowLen := end.Sub(start)
	previous, err := rc.fetchVisits(start.Add(-windowLen), start.Add(-time.Nanosecond))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get sales report")
		return
	}

	total := decimal.Zero
	for _, v := range visits {
		total = total.Add(v.FinalAmount)
	}
	previousTotal := decimal.Zero
	for _, v := range previous {
		previousTotal = previousTotal.Add(v.FinalAmount)
	}

	peakHours := models.GroupVisits(visits, func(v models.Visit) string {
		return v.CheckInAt.Format("15:00")
	})
	models.SortByKeyAsc(peakHours)

	overall := models.Bucket{Count: len(visits), Sum: total}

	c.JSON(http.StatusOK, SalesReport{
		Start:         start.Format("2006-01-02"),
		End:           end.Format("2006-01-02"),
		TotalRevenue:  total,
		VisitCount:    len(visits),
		AverageTicket: overall.Average(),
		Growth:        models.GrowthRate(total, previousTotal),
		Days:          rc.dailySales(visits),
		PeakHours:     peakHours,
	})
}

// GetEmployeeReport rolls up line items by performing employee, using the
// price snapshot of each item. Deleted employees aggregate under "Unknown".
func (rc *ReportController) GetEmployeeReport(c *gin.Context) {
	start, end, err := utils.ParseDateRange(c.Query("start"), c.Query("end"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date range")
		return
	}

	items, err := rc.fetchLineItems(start, end)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get employee report")
		return
	}

	names, err := rc.employeeNames(items)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get employee report")
		return
	}

	buckets := models.GroupLineItems(items, func(it models.VisitService) string {
		if name, ok := names[it.EmployeeID]; ok && name != "" {
			return name
		}
		return models.UnknownLabel
	})
	models.SortBySumDesc(buckets)

	rc.respondGroupReport(c, start, end, buckets)
}

// GetServiceReport rolls up line items by service name snapshot.
func (rc *ReportController) GetServiceReport(c *gin.Context) {
	start, end, err := utils.ParseDateRange(c.Query("start"), c.Query("end"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date range")
		return
	}

	items, err := rc.fetchLineItems(start, end)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get service report")
		return
	}

	buckets := models.GroupLineItems(items, func(it models.VisitService) string {
		if it.ServiceName == "" {
			return models.UnknownLabel
		}
		return it.ServiceName
	})
	models.SortBySumDesc(buckets)

	rc.respondGroupReport(c, start, end, buckets)
}

// GetPaymentReport rolls up visits by payment method using the final amount.
func (rc *ReportController) GetPaymentReport(c *gin.Context) {
	start, end, err := utils.ParseDateRange(c.Query("start"), c.Query("end"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date range")
		return
	}

	visits, err := rc.fetchVisits(start, end)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get payment report")
		return
	}

	buckets := models.GroupVisits(visits, func(v models.Visit) string {
		if v.PaymentMethod == "" {
			return models.UnknownLabel
		}
		return v.PaymentMethod
	})
	models.SortBySumDesc(buckets)

	rc.respondGroupReport(c, start, end, buckets)
}

func (rc *ReportController) respondGroupReport(c *gin.Context, start, end time.Time, buckets []models.Bucket) {
	best := ""
	if top, ok := models.TopBucket(buckets); ok {
		best = top.Key
	}

	c.JSON(http.StatusOK, GroupReport{
		Start:  start.Format("2006-01-02"),
		End:    end.Format("2006-01-02"),
		Total:  models.TotalOf(buckets),
		Groups: toGroupRows(buckets),
		Best:   best,
	})
}

// GetRetentionReport classifies in-range customers as new or returning by
// their earliest visit on record and reports the retention rate.
func (rc *ReportController) GetRetentionReport(c *gin.Context) {
	start, end, err := utils.ParseDateRange(c.Query("start"), c.Query("end"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date range")
		return
	}

	visits, err := rc.fetchVisits(start, end)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get retention report")
		return
	}

	type firstVisitRow struct {
		CustomerPhone string
		FirstVisit    time.Time
	}
	var firstVisits []firstVisitRow
	if err := config.DB.Model(&models.Visit{}).
		Select("customer_phone, MIN(check_in_at) AS first_visit").
		Where("customer_phone <> ''").
		Group("customer_phone").
		Scan(&firstVisits).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get retention report")
		return
	}

	earliest := make(map[string]time.Time, len(firstVisits))
	for _, row := range firstVisits {
		earliest[row.CustomerPhone] = row.FirstVisit
	}

	newCustomers, returningCustomers := models.RetentionBreakdown(visits, earliest, start)

	c.JSON(http.StatusOK, RetentionReport{
		Start:              start.Format("2006-01-02"),
		End:                end.Format("2006-01-02"),
		NewCustomers:       newCustomers,
		ReturningCustomers: returningCustomers,
		RetentionRate:      models.RetentionRate(newCustomers, returningCustomers),
	})
}
