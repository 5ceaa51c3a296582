package handlers

import (
	"errors"
	"fmt"
	"time"

	"praxiszeit/internal/core/services"
	"praxiszeit/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles the report and export endpoints
type ReportHandler struct {
	reportService *services.ReportService
	exportService *services.ExportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService, exportService *services.ExportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		exportService: exportService,
	}
}

// GetMonthlyReport returns the caller's monthly aggregation
// @Summary Get monthly report
// @Description Monthly working time aggregation with overtime balance
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param year query int false "Year (default: current)"
// @Param month query int false "Month 1-12 (default: current)"
// @Success 200 {object} response.Response
// @Router /time-tracking/report [get]
func (h *ReportHandler) GetMonthlyReport(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	year, month, err := parseYearMonth(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	report, err := h.reportService.GetMonthlyReport(c.Context(), userID, year, month)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to build report")
	}

	return response.Success(c, "Report retrieved successfully", report)
}

// GetTeamStatus returns the live state of the whole practice
// @Summary Get team status
// @Description Live punch-clock state of every active user in the practice
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /time-tracking/team [get]
func (h *ReportHandler) GetTeamStatus(c *fiber.Ctx) error {
	practiceID, ok := c.Locals("practiceID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	team, err := h.reportService.GetTeamStatus(c.Context(), practiceID)
	if err != nil {
		return response.InternalServerError(c, "Failed to load team status")
	}

	return response.Success(c, "Team status retrieved successfully", fiber.Map{
		"team": team,
	})
}

// ExportMonthlyReport streams the monthly report as a file
// @Summary Export monthly report
// @Description Download the monthly report as XLSX or CSV
// @Tags Reports
// @Produce application/octet-stream
// @Security BearerAuth
// @Param format query string false "xlsx or csv (default: xlsx)"
// @Param year query int false "Year (default: current)"
// @Param month query int false "Month 1-12 (default: current)"
// @Success 200 {file} binary
// @Router /time-tracking/export [get]
func (h *ReportHandler) ExportMonthlyReport(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	year, month, err := parseYearMonth(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	var data []byte
	var filename, contentType string

	switch c.Query("format", "xlsx") {
	case "xlsx":
		data, filename, err = h.exportService.MonthlyXLSX(c.Context(), userID, year, month)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "csv":
		data, filename, err = h.exportService.MonthlyCSV(c.Context(), userID, year, month)
		contentType = "text/csv"
	default:
		return response.BadRequest(c, "format must be xlsx or csv")
	}
	if err != nil {
		return response.InternalServerError(c, "Failed to build export")
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(data)
}

// parseYearMonth reads year/month query params, defaulting to the current
// month
func parseYearMonth(c *fiber.Ctx) (int, int, error) {
	now := time.Now()

	year := c.QueryInt("year", now.Year())
	if year < 2000 || year > 2100 {
		return 0, 0, errors.New("year out of range")
	}

	month := c.QueryInt("month", int(now.Month()))
	if month < 1 || month > 12 {
		return 0, 0, errors.New("month must be 1-12")
	}

	return year, month, nil
}
