package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// ExportService renders monthly reports as downloadable files
type ExportService struct {
	reportService *ReportService
}

// NewExportService creates a new export service
func NewExportService(reportService *ReportService) *ExportService {
	return &ExportService{reportService: reportService}
}

var exportHeader = []string{"Date", "Gross (min)", "Break (min)", "Net (min)", "Overtime (min)", "Location", "Blocks"}

// MonthlyXLSX renders a user's monthly report as an Excel workbook
func (s *ExportService) MonthlyXLSX(ctx context.Context, userID uint, year, month int) ([]byte, string, error) {
	report, err := s.reportService.GetMonthlyReport(ctx, userID, year, month)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Timesheet"
	f.SetSheetName("Sheet1", sheet)

	title := fmt.Sprintf("Timesheet %04d-%02d", year, month)
	if report.User != nil {
		title = fmt.Sprintf("%s - %s %s", title, report.User.FirstName, report.User.LastName)
	}
	f.SetCellValue(sheet, "A1", title)

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, "", err
	}
	f.SetCellStyle(sheet, "A1", "A1", bold)

	for col, name := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 3)
		f.SetCellValue(sheet, cell, name)
	}
	f.SetCellStyle(sheet, "A3", "G3", bold)

	row := 4
	for _, day := range report.Days {
		values := []interface{}{
			day.Date, day.GrossMinutes, day.BreakMinutes, day.NetMinutes,
			day.OvertimeMinutes, day.Location, day.Blocks,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	row++
	summary := [][]interface{}{
		{"Workdays", report.Summary.Workdays},
		{"Homeoffice days", report.Summary.HomeofficeDays},
		{"Net total (min)", report.Summary.TotalNetMinutes},
		{"Target (min)", report.Summary.TargetMinutes},
		{"Balance", report.Balance},
	}
	for _, pair := range summary {
		cellA, _ := excelize.CoordinatesToCellName(1, row)
		cellB, _ := excelize.CoordinatesToCellName(2, row)
		f.SetCellValue(sheet, cellA, pair[0])
		f.SetCellValue(sheet, cellB, pair[1])
		row++
	}

	f.SetColWidth(sheet, "A", "G", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("timesheet_%04d-%02d.xlsx", year, month)
	return buf.Bytes(), filename, nil
}

// MonthlyCSV renders a user's monthly report as CSV
func (s *ExportService) MonthlyCSV(ctx context.Context, userID uint, year, month int) ([]byte, string, error) {
	report, err := s.reportService.GetMonthlyReport(ctx, userID, year, month)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, "", err
	}
	for _, day := range report.Days {
		record := []string{
			day.Date,
			strconv.Itoa(day.GrossMinutes),
			strconv.Itoa(day.BreakMinutes),
			strconv.Itoa(day.NetMinutes),
			strconv.Itoa(day.OvertimeMinutes),
			day.Location,
			strconv.Itoa(day.Blocks),
		}
		if err := w.Write(record); err != nil {
			return nil, "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("timesheet_%04d-%02d.csv", year, month)
	return buf.Bytes(), filename, nil
}
