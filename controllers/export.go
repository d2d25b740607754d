// controllers/export.go
package controllers

import (
	"fmt"
	"net/http"

	"salondesk-backend/config"
	"salondesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportSalesReport writes the per-day sales rollup for the requested
// window as an .xlsx attachment. Admin only.
func (rc *ReportController) ExportSalesReport(c *gin.Context) {
	start, end, err := utils.ParseDateRange(c.Query("start"), c.Query("end"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date range")
		return
	}

	visits, err := rc.fetchVisits(start, end)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to export sales report")
		return
	}
	days := rc.dailySales(visits)

	f := excelize.NewFile()
	sheet := "Sheet1"

	// Add headers
	f.SetCellValue(sheet, "A1", "Date")
	f.SetCellValue(sheet, "B1", "Visits")
	f.SetCellValue(sheet, "C1", "Revenue")
	f.SetCellValue(sheet, "D1", "AverageTicket")

	// Add data
	for i, d := range days {
		row := fmt.Sprint(i + 2)
		f.SetCellValue(sheet, "A"+row, d.Date)
		f.SetCellValue(sheet, "B"+row, d.Visits)
		f.SetCellValue(sheet, "C"+row, d.Revenue.InexactFloat64())
		f.SetCellValue(sheet, "D"+row, d.AverageTicket.InexactFloat64())
	}

	filename := fmt.Sprintf("sales_%s_%s.xlsx", start.Format("20060102"), end.Format("20060102"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+filename)

	if err := f.Write(c.Writer); err != nil {
		config.GetLogger().WithField("error", err.Error()).Error("failed to write export")
	}
}
