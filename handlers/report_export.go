// handlers/report_export.go
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"
)

// ExportBeamReport downloads the beam report as a styled Excel workbook.
func ExportBeamReport(w http.ResponseWriter, r *http.Request) {
	startDate := r.URL.Query().Get("start_date")
	endDate := r.URL.Query().Get("end_date")
	if startDate == "" || endDate == "" {
		http.Error(w, "start_date and end_date are required", http.StatusBadRequest)
		return
	}

	rows, err := queryBeamReport(startDate, endDate)
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	headers := []string{
		"Beam Number", "Fabric Type", "Total Meters", "Start Date", "End Date",
		"Status", "Workshop", "Customer", "Machine", "Good Pieces",
		"Damaged Pieces", "Total Pieces", "Total Amount",
	}
	data := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		data = append(data, []interface{}{
			row.BeamNumber, row.FabricType, row.TotalBeamMeters, row.StartDate,
			stringOrNA(row.EndDate), row.Status, stringOrNA(row.Workshop),
			stringOrNA(row.Customer), intOrNA(row.MachineNumber), row.TotalGood,
			row.TotalDamaged, row.TotalPieces, row.TotalAmount,
		})
	}

	title := fmt.Sprintf("Beam Report %s to %s", startDate, endDate)
	writeExcelResponse(w, "beam_report", title, headers, data)
}

// ExportDeliveryReport downloads the delivery report as a styled Excel workbook.
func ExportDeliveryReport(w http.ResponseWriter, r *http.Request) {
	startDate := r.URL.Query().Get("start_date")
	endDate := r.URL.Query().Get("end_date")
	if startDate == "" || endDate == "" {
		http.Error(w, "start_date and end_date are required", http.StatusBadRequest)
		return
	}

	rows, err := queryDeliveryReport(startDate, endDate, r.URL.Query().Get("workshop_id"))
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	headers := []string{
		"Date", "Design", "Price/Piece", "Good Pieces", "Damaged Pieces",
		"Meters Used", "Total Amount", "Beam Number", "Fabric Type",
		"Workshop", "Customer", "Machine", "Notes",
	}
	data := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		data = append(data, []interface{}{
			row.DeliveryDate, row.DesignName, row.PricePerPiece, row.GoodPieces,
			row.DamagedPieces, row.MetersUsed, row.TotalAmount, row.BeamNumber,
			row.FabricType, stringOrNA(row.Workshop), stringOrNA(row.Customer),
			intOrNA(row.MachineNumber), stringOrEmpty(row.Notes),
		})
	}

	title := fmt.Sprintf("Delivery Report %s to %s", startDate, endDate)
	writeExcelResponse(w, "delivery_report", title, headers, data)
}

// writeExcelResponse builds the workbook and streams it as an attachment.
func writeExcelResponse(w http.ResponseWriter, baseName, title string, headers []string, data [][]interface{}) {
	f, err := buildReportWorkbook(title, headers, data)
	if err != nil {
		http.Error(w, "Failed to generate Excel file", http.StatusInternalServerError)
		return
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		http.Error(w, "Failed to write Excel file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("%s_%s.xlsx", baseName, time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))

	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}

// buildReportWorkbook lays out a single sheet with a title, generation
// timestamp, a styled header row, and the data rows below it.
func buildReportWorkbook(title string, headers []string, data [][]interface{}) (*excelize.File, error) {
	f := excelize.NewFile()
	sheetName := "Report"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 16,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "left",
			Vertical:   "center",
		},
	})
	f.SetCellValue(sheetName, "A1", title)
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	f.SetRowHeight(sheetName, 1, 30)

	f.SetCellValue(sheetName, "A2", fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04:05")))

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#4472C4"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	for colIdx, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 4)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
		col, _ := excelize.ColumnNumberToName(colIdx + 1)
		f.SetColWidth(sheetName, col, col, 18)
	}

	dataStyle, _ := f.NewStyle(&excelize.Style{
		Border: []excelize.Border{
			{Type: "left", Color: "CCCCCC", Style: 1},
			{Type: "right", Color: "CCCCCC", Style: 1},
			{Type: "top", Color: "CCCCCC", Style: 1},
			{Type: "bottom", Color: "CCCCCC", Style: 1},
		},
	})
	for rowIdx, row := range data {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+5)
			f.SetCellValue(sheetName, cell, value)
			f.SetCellStyle(sheetName, cell, cell, dataStyle)
		}
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

func stringOrNA(s *string) string {
	if s == nil {
		return "N/A"
	}
	return *s
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intOrNA(n *int) interface{} {
	if n == nil {
		return "N/A"
	}
	return *n
}
