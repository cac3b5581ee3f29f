// handlers/analytics.go
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"thari.in/powerloom/config"
	"thari.in/powerloom/models"
)

// GetProductionTrend returns total pieces per day per workshop for the last N
// days (default 30), pivoted so each workshop becomes a series key — the
// shape the dashboard's line chart consumes directly.
func GetProductionTrend(w http.ResponseWriter, r *http.Request) {
	days := 30
	if d, err := strconv.Atoi(r.URL.Query().Get("days")); err == nil && d > 0 {
		days = d
	}
	fabricType := r.URL.Query().Get("fabric_type")
	fromDate := time.Now().AddDate(0, 0, -days).Format("2006-01-02")

	var rows []struct {
		Date         string
		WorkshopName string
		TotalPieces  int
	}
	err := deliveryScope(fromDate, "", fabricType).
		Joins("JOIN workshops ON workshops.id = beams.workshop_id").
		Select(`deliveries.delivery_date AS date, workshops.name AS workshop_name,
			COALESCE(SUM(deliveries.good_pieces + deliveries.damaged_pieces), 0) AS total_pieces`).
		Group("deliveries.delivery_date, workshops.name").
		Order("deliveries.delivery_date").
		Scan(&rows).Error
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	daily := map[string]map[string]interface{}{}
	workshopSet := map[string]bool{}
	for _, row := range rows {
		workshopSet[row.WorkshopName] = true
		if daily[row.Date] == nil {
			daily[row.Date] = map[string]interface{}{"date": row.Date}
		}
		daily[row.Date][row.WorkshopName] = row.TotalPieces
	}

	workshops := make([]string, 0, len(workshopSet))
	for name := range workshopSet {
		workshops = append(workshops, name)
	}
	sort.Strings(workshops)

	dates := make([]string, 0, len(daily))
	for date := range daily {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	data := make([]map[string]interface{}, 0, len(dates))
	for _, date := range dates {
		point := daily[date]
		for _, name := range workshops {
			if _, ok := point[name]; !ok {
				point[name] = 0
			}
		}
		data = append(data, point)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"data": data, "workshops": workshops})
}

type fabricDistributionRow struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Beams int    `json:"beams"`
}

// GetFabricDistribution returns total pieces and beam count per fabric type.
func GetFabricDistribution(w http.ResponseWriter, r *http.Request) {
	var rows []fabricDistributionRow
	err := config.DB.Table("beams").
		Select(`beams.fabric_type AS name,
			COALESCE(SUM(deliveries.good_pieces + deliveries.damaged_pieces), 0) AS value,
			COUNT(DISTINCT beams.id) AS beams`).
		Joins("LEFT JOIN deliveries ON deliveries.beam_id = beams.id").
		Group("beams.fabric_type").
		Order("beams.fabric_type").
		Scan(&rows).Error
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"data": rows})
}

type machineQualityRow struct {
	WorkshopName  *string `json:"workshop_name"`
	MachineNumber int     `json:"machine_number"`
	MachineName   string  `json:"machine_name"`
	GoodPieces    int     `json:"good_pieces"`
	DamagedPieces int     `json:"damaged_pieces"`
	TotalPieces   int     `json:"total_pieces"`
}

// GetMachineQuality returns good/damaged splits per machine, skipping
// machines with no recorded output.
func GetMachineQuality(w http.ResponseWriter, r *http.Request) {
	fabricType := r.URL.Query().Get("fabric_type")

	q := config.DB.Table("machines").
		Select(`workshops.name AS workshop_name, machines.machine_number,
			COALESCE(SUM(deliveries.good_pieces), 0) AS good_pieces,
			COALESCE(SUM(deliveries.damaged_pieces), 0) AS damaged_pieces,
			COALESCE(SUM(deliveries.good_pieces + deliveries.damaged_pieces), 0) AS total_pieces`).
		Joins("LEFT JOIN workshops ON workshops.id = machines.workshop_id").
		Joins("JOIN beams ON beams.machine_id = machines.id").
		Joins("JOIN deliveries ON deliveries.beam_id = beams.id").
		Group("workshops.name, machines.machine_number").
		Having("SUM(deliveries.good_pieces + deliveries.damaged_pieces) > 0").
		Order("workshops.name, machines.machine_number")
	if fabricType != "" {
		q = q.Where("beams.fabric_type = ?", fabricType)
	}

	var rows []machineQualityRow
	if err := q.Scan(&rows).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	for i := range rows {
		name := "N/A"
		if rows[i].WorkshopName != nil {
			name = *rows[i].WorkshopName
		}
		rows[i].MachineName = fmt.Sprintf("%s M%d", name, rows[i].MachineNumber)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"data": rows})
}

type workshopMachineRow struct {
	MachineNumber int `json:"machine_number"`
	Production    int `json:"production"`
}

type workshopMachineGroup struct {
	WorkshopName string               `json:"workshop_name"`
	Machines     []workshopMachineRow `json:"machines"`
}

// GetWorkshopMachineProduction returns per-machine output grouped by
// workshop, restricted to machines currently weaving an active beam.
func GetWorkshopMachineProduction(w http.ResponseWriter, r *http.Request) {
	fabricType := r.URL.Query().Get("fabric_type")

	q := config.DB.Table("beams").
		Select(`workshops.name AS workshop_name, machines.machine_number,
			COALESCE(SUM(deliveries.good_pieces + deliveries.damaged_pieces), 0) AS production`).
		Joins("JOIN machines ON machines.id = beams.machine_id").
		Joins("JOIN workshops ON workshops.id = machines.workshop_id").
		Joins("LEFT JOIN deliveries ON deliveries.beam_id = beams.id").
		Where("beams.status = ?", models.BeamStatusActive).
		Group("workshops.name, machines.machine_number").
		Order("workshops.name, machines.machine_number")
	if fabricType != "" {
		q = q.Where("beams.fabric_type = ?", fabricType)
	}

	var rows []struct {
		WorkshopName  string
		MachineNumber int
		Production    int
	}
	if err := q.Scan(&rows).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	groups := []workshopMachineGroup{}
	for _, row := range rows {
		if len(groups) == 0 || groups[len(groups)-1].WorkshopName != row.WorkshopName {
			groups = append(groups, workshopMachineGroup{WorkshopName: row.WorkshopName})
		}
		g := &groups[len(groups)-1]
		g.Machines = append(g.Machines, workshopMachineRow{MachineNumber: row.MachineNumber, Production: row.Production})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"data": groups})
}
