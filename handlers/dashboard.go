// handlers/dashboard.go
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"gorm.io/gorm"
	"thari.in/powerloom/config"
	"thari.in/powerloom/models"
)

// deliveryScope builds a fresh deliveries-joined-beams query with the shared
// dashboard filters applied. Dates are ISO strings, so range filters compare
// lexicographically. The fabric filter always matches the fabric type frozen
// on the beam, never the machine's current label.
func deliveryScope(start, end, fabricType string) *gorm.DB {
	q := config.DB.Table("deliveries").
		Joins("JOIN beams ON beams.id = deliveries.beam_id")
	if start != "" {
		q = q.Where("deliveries.delivery_date >= ?", start)
	}
	if end != "" {
		q = q.Where("deliveries.delivery_date <= ?", end)
	}
	if fabricType != "" {
		q = q.Where("beams.fabric_type = ?", fabricType)
	}
	return q
}

type workshopProductionRow struct {
	WorkshopName string `json:"workshop_name"`
	TotalPieces  int    `json:"total_pieces"`
}

type customerSummaryRow struct {
	CustomerName string  `json:"customer_name"`
	TotalPieces  int     `json:"total_pieces"`
	TotalAmount  float64 `json:"total_amount"`
}

// GetDashboardOverview returns the landing-page numbers: active beam count
// plus piece/amount totals and per-workshop / per-customer breakdowns for the
// requested range (default: the current calendar month).
func GetDashboardOverview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start := q.Get("start_date")
	end := q.Get("end_date")
	fabricType := q.Get("fabric_type")
	if start == "" && end == "" {
		now := time.Now()
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02")
	}

	var activeBeams int64
	if err := config.DB.Model(&models.Beam{}).Where("status = ?", models.BeamStatusActive).Count(&activeBeams).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var production struct {
		TotalPieces   int
		TotalDamaged  int
		PendingAmount float64
	}
	err := deliveryScope(start, end, fabricType).
		Select(`COALESCE(SUM(deliveries.good_pieces), 0) AS total_pieces,
			COALESCE(SUM(deliveries.damaged_pieces), 0) AS total_damaged,
			COALESCE(SUM(deliveries.total_amount), 0) AS pending_amount`).
		Scan(&production).Error
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var workshopProduction []workshopProductionRow
	err = deliveryScope(start, end, fabricType).
		Joins("JOIN workshops ON workshops.id = beams.workshop_id").
		Select("workshops.name AS workshop_name, COALESCE(SUM(deliveries.good_pieces), 0) AS total_pieces").
		Group("workshops.name").
		Order("workshops.name").
		Scan(&workshopProduction).Error
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var customerSummary []customerSummaryRow
	err = deliveryScope(start, end, fabricType).
		Joins("JOIN customers ON customers.id = beams.customer_id").
		Select(`customers.name AS customer_name,
			COALESCE(SUM(deliveries.good_pieces), 0) AS total_pieces,
			COALESCE(SUM(deliveries.total_amount), 0) AS total_amount`).
		Group("customers.name").
		Order("customers.name").
		Scan(&customerSummary).Error
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"active_beams":              activeBeams,
		"total_pieces_this_month":   production.TotalPieces,
		"total_damaged_this_month":  production.TotalDamaged,
		"pending_amount_this_month": production.PendingAmount,
		"workshop_production":       workshopProduction,
		"customer_summary":          customerSummary,
	})
}
