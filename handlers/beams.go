// handlers/beams.go
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"thari.in/powerloom/config"
	"thari.in/powerloom/models"
)

type beamListRow struct {
	ID                 uuid.UUID `json:"id"`
	BeamNumber         string    `json:"beam_number"`
	FabricType         string    `json:"fabric_type"`
	TotalBeamMeters    float64   `json:"total_beam_meters"`
	MetersPerPiece     float64   `json:"meters_per_piece"`
	StartDate          string    `json:"start_date"`
	EndDate            *string   `json:"end_date"`
	Status             string    `json:"status"`
	WorkshopName       *string   `json:"workshop_name"`
	CustomerName       *string   `json:"customer_name"`
	MachineNumber      *int      `json:"machine_number"`
	TotalGoodPieces    int       `json:"total_good_pieces"`
	TotalDamagedPieces int       `json:"total_damaged_pieces"`
	TotalMetersUsed    float64   `json:"total_meters_used"`
	RemainingMeters    float64   `json:"remaining_meters"`
}

// GetAllBeams lists beams by status (default active) with display names and
// running totals resolved per beam.
func GetAllBeams(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = models.BeamStatusActive
	}

	var rows []beamListRow
	err := config.DB.Table("beams").
		Select(`beams.id, beams.beam_number, beams.fabric_type, beams.total_beam_meters,
			beams.meters_per_piece, beams.start_date, beams.end_date, beams.status,
			workshops.name AS workshop_name, customers.name AS customer_name,
			machines.machine_number,
			COALESCE(SUM(deliveries.good_pieces), 0) AS total_good_pieces,
			COALESCE(SUM(deliveries.damaged_pieces), 0) AS total_damaged_pieces,
			COALESCE(SUM(deliveries.meters_used), 0) AS total_meters_used,
			beams.total_beam_meters - COALESCE(SUM(deliveries.meters_used), 0) AS remaining_meters`).
		Joins("LEFT JOIN workshops ON workshops.id = beams.workshop_id").
		Joins("LEFT JOIN customers ON customers.id = beams.customer_id").
		Joins("LEFT JOIN machines ON machines.id = beams.machine_id").
		Joins("LEFT JOIN deliveries ON deliveries.beam_id = beams.id").
		Where("beams.status = ?", status).
		Group("beams.id, beams.beam_number, beams.fabric_type, beams.total_beam_meters, beams.meters_per_piece, beams.start_date, beams.end_date, beams.status, workshops.name, customers.name, machines.machine_number").
		Order("beams.start_date DESC").
		Scan(&rows).Error
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"beams": rows})
}

type beamDetailResp struct {
	models.Beam
	WorkshopName  string      `json:"workshop_name"`
	CustomerName  string      `json:"customer_name"`
	MachineNumber interface{} `json:"machine_number"`
}

// GetBeamDetails returns one beam with its deliveries (newest first) and the
// derived totals block.
func GetBeamDetails(w http.ResponseWriter, r *http.Request) {
	beamID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid beam ID", http.StatusBadRequest)
		return
	}

	var beam models.Beam
	if err := config.DB.First(&beam, "id = ?", beamID).Error; err != nil {
		http.Error(w, "Beam not found", http.StatusNotFound)
		return
	}

	detail := beamDetailResp{Beam: beam, WorkshopName: "N/A", CustomerName: "N/A", MachineNumber: "N/A"}
	var workshop models.Workshop
	if err := config.DB.First(&workshop, "id = ?", beam.WorkshopID).Error; err == nil {
		detail.WorkshopName = workshop.Name
	}
	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", beam.CustomerID).Error; err == nil {
		detail.CustomerName = customer.Name
	}
	var machine models.Machine
	if err := config.DB.First(&machine, "id = ?", beam.MachineID).Error; err == nil {
		detail.MachineNumber = machine.MachineNumber
	}

	var deliveries []models.Delivery
	if err := config.DB.Where("beam_id = ?", beam.ID).Order("delivery_date DESC").Find(&deliveries).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"beam":       detail,
		"deliveries": deliveries,
		"totals":     beam.Totals(deliveries),
	})
}

type beamStartReq struct {
	BeamNumber      string  `json:"beam_number"`
	CustomerID      string  `json:"customer_id"`
	MachineID       string  `json:"machine_id"`
	TotalBeamMeters float64 `json:"total_beam_meters"`
	MetersPerPiece  float64 `json:"meters_per_piece"`
	StartDate       string  `json:"start_date"`
}

// StartBeam loads a new beam onto a machine. The machine must be free of
// active beams and the beam number globally unused; workshop and fabric type
// are copied off the machine at this instant.
func StartBeam(w http.ResponseWriter, r *http.Request) {
	var req beamStartReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	machineID, err := uuid.Parse(req.MachineID)
	if err != nil {
		http.Error(w, "Invalid machine ID", http.StatusBadRequest)
		return
	}
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		http.Error(w, "Invalid customer ID", http.StatusBadRequest)
		return
	}

	var beam models.Beam
	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		var machine models.Machine
		if err := tx.First(&machine, "id = ?", machineID).Error; err != nil {
			return statusError{http.StatusNotFound, "Machine not found"}
		}

		var existing models.Beam
		if err := tx.Where("machine_id = ? AND status = ?", machineID, models.BeamStatusActive).
			First(&existing).Error; err == nil {
			return statusError{http.StatusConflict,
				fmt.Sprintf("Machine already has an active beam '%s'", existing.BeamNumber)}
		}

		var count int64
		if err := tx.Model(&models.Beam{}).Where("beam_number = ?", req.BeamNumber).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return statusError{http.StatusConflict,
				fmt.Sprintf("Duplicate entry '%s' for beam_number", req.BeamNumber)}
		}

		beam = models.Beam{
			BeamNumber:      req.BeamNumber,
			MachineID:       machineID,
			WorkshopID:      machine.WorkshopID,
			CustomerID:      customerID,
			FabricType:      machine.FabricType,
			TotalBeamMeters: req.TotalBeamMeters,
			MetersPerPiece:  req.MetersPerPiece,
			StartDate:       req.StartDate,
			Status:          models.BeamStatusActive,
		}
		return tx.Create(&beam).Error
	})
	if txErr != nil {
		writeTxError(w, txErr)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Beam started successfully",
		"beam_id": beam.ID.String(),
	})
}

// EndBeam closes an active beam with today's server date. Completed beams
// cannot be re-ended or reactivated.
func EndBeam(w http.ResponseWriter, r *http.Request) {
	beamID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid beam ID", http.StatusBadRequest)
		return
	}

	var beam models.Beam
	if err := config.DB.First(&beam, "id = ?", beamID).Error; err != nil {
		http.Error(w, "Beam not found", http.StatusNotFound)
		return
	}
	if beam.Status != models.BeamStatusActive {
		http.Error(w, "Beam is already completed", http.StatusConflict)
		return
	}

	today := time.Now().Format("2006-01-02")
	result := config.DB.Model(&models.Beam{}).
		Where("id = ? AND status = ?", beamID, models.BeamStatusActive).
		Updates(map[string]interface{}{"status": models.BeamStatusCompleted, "end_date": today})
	if result.Error != nil {
		http.Error(w, "db error: "+result.Error.Error(), http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		// lost the race to an auto-completion
		http.Error(w, "Beam is already completed", http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Beam ended successfully",
		"beam_id": beamID.String(),
	})
}

// DeleteBeam removes a beam and all deliveries recorded against it.
func DeleteBeam(w http.ResponseWriter, r *http.Request) {
	beamID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid beam ID", http.StatusBadRequest)
		return
	}

	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Beam{}, "id = ?", beamID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return statusError{http.StatusNotFound, "Beam not found"}
		}
		return tx.Where("beam_id = ?", beamID).Delete(&models.Delivery{}).Error
	})
	if txErr != nil {
		writeTxError(w, txErr)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Beam deleted successfully"})
}
