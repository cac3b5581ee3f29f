// handlers/workshops.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"thari.in/powerloom/config"
	"thari.in/powerloom/models"
)

type workshopRow struct {
	models.Workshop
	ActualMachineCount int64 `json:"actual_machine_count"`
}

// GetAllWorkshops lists active workshops with the live machine count next to
// the declared one.
func GetAllWorkshops(w http.ResponseWriter, r *http.Request) {
	var rows []workshopRow
	err := config.DB.Table("workshops").
		Select("workshops.*, (SELECT COUNT(*) FROM machines WHERE machines.workshop_id = workshops.id) AS actual_machine_count").
		Where("workshops.is_active = ?", true).
		Order("workshops.name").
		Scan(&rows).Error
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"workshops": rows})
}

type workshopCreateReq struct {
	Name         string `json:"name"`
	Location     string `json:"location"`
	MachineCount int    `json:"machine_count"`
	WorkshopType string `json:"workshop_type"`
}

func CreateWorkshop(w http.ResponseWriter, r *http.Request) {
	var req workshopCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	workshop := models.Workshop{
		Name:         req.Name,
		Location:     req.Location,
		MachineCount: req.MachineCount,
		WorkshopType: req.WorkshopType,
		IsActive:     true,
	}
	if err := config.DB.Create(&workshop).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":     "Workshop created successfully",
		"workshop_id": workshop.ID.String(),
	})
}

// DeleteWorkshop refuses to delete a workshop that still owns machines.
func DeleteWorkshop(w http.ResponseWriter, r *http.Request) {
	workshopID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid workshop ID", http.StatusBadRequest)
		return
	}

	var machineCount int64
	if err := config.DB.Model(&models.Machine{}).Where("workshop_id = ?", workshopID).Count(&machineCount).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if machineCount > 0 {
		http.Error(w, "Cannot delete workshop with existing machines", http.StatusConflict)
		return
	}

	result := config.DB.Delete(&models.Workshop{}, "id = ?", workshopID)
	if result.Error != nil {
		http.Error(w, "db error: "+result.Error.Error(), http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "Workshop not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Workshop deleted successfully"})
}

type machineBoardRow struct {
	ID              uuid.UUID  `json:"id"`
	MachineNumber   int        `json:"machine_number"`
	FabricType      string     `json:"fabric_type"`
	IsActive        bool       `json:"is_active"`
	BeamID          *uuid.UUID `json:"beam_id"`
	BeamNumber      *string    `json:"beam_number"`
	CustomerName    *string    `json:"customer_name"`
	TotalBeamMeters *float64   `json:"total_beam_meters"`
	MetersPerPiece  *float64   `json:"meters_per_piece"`
	TotalGood       int        `json:"total_good"`
	TotalDamaged    int        `json:"total_damaged"`
	TotalProduction int        `json:"total_production"`
	MetersUsed      float64    `json:"meters_used"`
	RemainingMeters float64    `json:"remaining_meters"`
}

// GetWorkshopMachines renders the workshop board: every active machine with
// its active beam (if any), the customer it weaves for and the running
// meter/piece figures.
func GetWorkshopMachines(w http.ResponseWriter, r *http.Request) {
	workshopID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid workshop ID", http.StatusBadRequest)
		return
	}

	var machines []models.Machine
	if err := config.DB.Where("workshop_id = ? AND is_active = ?", workshopID, true).
		Order("machine_number").Find(&machines).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	rows := make([]machineBoardRow, 0, len(machines))
	for _, m := range machines {
		row := machineBoardRow{
			ID:            m.ID,
			MachineNumber: m.MachineNumber,
			FabricType:    m.FabricType,
			IsActive:      m.IsActive,
		}

		var beam models.Beam
		err := config.DB.Where("machine_id = ? AND status = ?", m.ID, models.BeamStatusActive).First(&beam).Error
		if err == nil {
			row.BeamID = &beam.ID
			row.BeamNumber = &beam.BeamNumber
			row.FabricType = beam.FabricType
			row.TotalBeamMeters = &beam.TotalBeamMeters
			row.MetersPerPiece = &beam.MetersPerPiece

			var customer models.Customer
			if err := config.DB.First(&customer, "id = ?", beam.CustomerID).Error; err == nil {
				row.CustomerName = &customer.Name
			}

			var stats struct {
				TotalGood    int
				TotalDamaged int
			}
			config.DB.Model(&models.Delivery{}).
				Where("beam_id = ?", beam.ID).
				Select("COALESCE(SUM(good_pieces), 0) AS total_good, COALESCE(SUM(damaged_pieces), 0) AS total_damaged").
				Scan(&stats)
			row.TotalGood = stats.TotalGood
			row.TotalDamaged = stats.TotalDamaged
			row.TotalProduction = stats.TotalGood + stats.TotalDamaged
			row.MetersUsed = float64(row.TotalProduction) * beam.MetersPerPiece
			row.RemainingMeters = beam.TotalBeamMeters - row.MetersUsed
		}
		rows = append(rows, row)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"machines": rows})
}
