// handlers/reports.go
package handlers

import (
	"encoding/json"
	"net/http"

	"thari.in/powerloom/config"
	"thari.in/powerloom/models"
)

type beamReportRow struct {
	BeamNumber      string  `json:"beam_number"`
	FabricType      string  `json:"fabric_type"`
	TotalBeamMeters float64 `json:"total_beam_meters"`
	StartDate       string  `json:"start_date"`
	EndDate         *string `json:"end_date"`
	Status          string  `json:"status"`
	Workshop        *string `json:"workshop"`
	Customer        *string `json:"customer"`
	MachineNumber   *int    `json:"machine_number"`
	TotalGood       int     `json:"total_good"`
	TotalDamaged    int     `json:"total_damaged"`
	TotalPieces     int     `json:"total_pieces"`
	TotalAmount     float64 `json:"total_amount"`
}

// queryBeamReport returns every beam whose life overlaps the requested range:
// started in range, ended in range, spans the whole range, or started before
// it and is still active.
func queryBeamReport(startDate, endDate string) ([]beamReportRow, error) {
	rows := []beamReportRow{}
	err := config.DB.Table("beams").
		Select(`beams.beam_number, beams.fabric_type, beams.total_beam_meters,
			beams.start_date, beams.end_date, beams.status,
			workshops.name AS workshop, customers.name AS customer, machines.machine_number,
			COALESCE(SUM(deliveries.good_pieces), 0) AS total_good,
			COALESCE(SUM(deliveries.damaged_pieces), 0) AS total_damaged,
			COALESCE(SUM(deliveries.good_pieces + deliveries.damaged_pieces), 0) AS total_pieces,
			COALESCE(SUM(deliveries.total_amount), 0) AS total_amount`).
		Joins("LEFT JOIN workshops ON workshops.id = beams.workshop_id").
		Joins("LEFT JOIN customers ON customers.id = beams.customer_id").
		Joins("LEFT JOIN machines ON machines.id = beams.machine_id").
		Joins("LEFT JOIN deliveries ON deliveries.beam_id = beams.id").
		Where(`(beams.start_date >= ? AND beams.start_date <= ?)
			OR (beams.end_date >= ? AND beams.end_date <= ?)
			OR (beams.start_date <= ? AND beams.end_date >= ?)
			OR (beams.start_date <= ? AND beams.status = ?)`,
			startDate, endDate,
			startDate, endDate,
			startDate, endDate,
			startDate, models.BeamStatusActive).
		Group(`beams.id, beams.beam_number, beams.fabric_type, beams.total_beam_meters,
			beams.start_date, beams.end_date, beams.status,
			workshops.name, customers.name, machines.machine_number`).
		Order("beams.start_date DESC").
		Scan(&rows).Error
	return rows, err
}

// GetBeamReport lists beams overlapping a date range with their delivery
// totals. Both start_date and end_date are required.
func GetBeamReport(w http.ResponseWriter, r *http.Request) {
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

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"beams": rows})
}

type deliveryReportRow struct {
	DeliveryDate  string  `json:"delivery_date"`
	DesignName    string  `json:"design_name"`
	PricePerPiece float64 `json:"price_per_piece"`
	GoodPieces    int     `json:"good_pieces"`
	DamagedPieces int     `json:"damaged_pieces"`
	MetersUsed    float64 `json:"meters_used"`
	TotalAmount   float64 `json:"total_amount"`
	Notes         *string `json:"notes"`
	BeamNumber    string  `json:"beam_number"`
	FabricType    string  `json:"fabric_type"`
	Workshop      *string `json:"workshop"`
	Customer      *string `json:"customer"`
	MachineNumber *int    `json:"machine_number"`
}

func queryDeliveryReport(startDate, endDate, workshopID string) ([]deliveryReportRow, error) {
	q := config.DB.Table("deliveries").
		Select(`deliveries.delivery_date, deliveries.design_name, deliveries.price_per_piece,
			deliveries.good_pieces, deliveries.damaged_pieces, deliveries.meters_used,
			deliveries.total_amount, deliveries.notes,
			beams.beam_number, beams.fabric_type,
			workshops.name AS workshop, customers.name AS customer, machines.machine_number`).
		Joins("JOIN beams ON beams.id = deliveries.beam_id").
		Joins("LEFT JOIN workshops ON workshops.id = beams.workshop_id").
		Joins("LEFT JOIN customers ON customers.id = beams.customer_id").
		Joins("LEFT JOIN machines ON machines.id = beams.machine_id").
		Where("deliveries.delivery_date >= ? AND deliveries.delivery_date <= ?", startDate, endDate)
	if workshopID != "" {
		q = q.Where("beams.workshop_id = ?", workshopID)
	}

	rows := []deliveryReportRow{}
	err := q.Order("deliveries.delivery_date DESC").Scan(&rows).Error
	return rows, err
}

// GetDeliveryReport lists individual deliveries in a date range, optionally
// restricted to one workshop.
func GetDeliveryReport(w http.ResponseWriter, r *http.Request) {
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

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"deliveries": rows})
}
