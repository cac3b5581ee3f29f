// handlers/machines.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"thari.in/powerloom/config"
	"thari.in/powerloom/models"
)

type machineListRow struct {
	ID            uuid.UUID `json:"id"`
	MachineNumber int       `json:"machine_number"`
	FabricType    string    `json:"fabric_type"`
	WorkshopID    uuid.UUID `json:"workshop_id"`
	WorkshopName  *string   `json:"workshop_name"`
	IsActive      bool      `json:"is_active"`
}

// GetAllMachines lists every active machine with its workshop name.
func GetAllMachines(w http.ResponseWriter, r *http.Request) {
	var rows []machineListRow
	err := config.DB.Table("machines").
		Select("machines.id, machines.machine_number, machines.fabric_type, machines.workshop_id, workshops.name AS workshop_name, machines.is_active").
		Joins("LEFT JOIN workshops ON workshops.id = machines.workshop_id").
		Where("machines.is_active = ?", true).
		Order("workshops.name, machines.machine_number").
		Scan(&rows).Error
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"machines": rows})
}

type machineCreateReq struct {
	WorkshopID    string `json:"workshop_id"`
	MachineNumber int    `json:"machine_number"`
	FabricType    string `json:"fabric_type"`
}

func CreateMachine(w http.ResponseWriter, r *http.Request) {
	var req machineCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	workshopID, err := uuid.Parse(req.WorkshopID)
	if err != nil {
		http.Error(w, "Invalid workshop ID", http.StatusBadRequest)
		return
	}

	var workshop models.Workshop
	if err := config.DB.First(&workshop, "id = ?", workshopID).Error; err != nil {
		http.Error(w, "Workshop not found", http.StatusNotFound)
		return
	}

	var count int64
	if err := config.DB.Model(&models.Machine{}).
		Where("workshop_id = ? AND machine_number = ?", workshopID, req.MachineNumber).
		Count(&count).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if count > 0 {
		http.Error(w, "Machine number already exists in this workshop", http.StatusConflict)
		return
	}

	machine := models.Machine{
		WorkshopID:    workshopID,
		MachineNumber: req.MachineNumber,
		FabricType:    req.FabricType,
		IsActive:      true,
	}
	if err := config.DB.Create(&machine).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":    "Machine created successfully",
		"machine_id": machine.ID.String(),
	})
}

// DeleteMachine refuses to delete a machine that is still weaving an active
// beam; completed history does not block it.
func DeleteMachine(w http.ResponseWriter, r *http.Request) {
	machineID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid machine ID", http.StatusBadRequest)
		return
	}

	var activeBeams int64
	if err := config.DB.Model(&models.Beam{}).
		Where("machine_id = ? AND status = ?", machineID, models.BeamStatusActive).
		Count(&activeBeams).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if activeBeams > 0 {
		http.Error(w, "Cannot delete machine with active beams", http.StatusConflict)
		return
	}

	result := config.DB.Delete(&models.Machine{}, "id = ?", machineID)
	if result.Error != nil {
		http.Error(w, "db error: "+result.Error.Error(), http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "Machine not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Machine deleted successfully"})
}
