// handlers/design_presets.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/lib/pq"
	"thari.in/powerloom/config"
	"thari.in/powerloom/models"
)

func GetDesignPresets(w http.ResponseWriter, r *http.Request) {
	var presets []models.DesignPreset
	if err := config.DB.Where("is_active = ?", true).Order("label").Find(&presets).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"presets": presets})
}

type designPresetCreateReq struct {
	Label       string   `json:"label"`
	Price       float64  `json:"price"`
	FabricTypes []string `json:"fabric_types"`
}

func CreateDesignPreset(w http.ResponseWriter, r *http.Request) {
	var req designPresetCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Label == "" {
		http.Error(w, "label is required", http.StatusBadRequest)
		return
	}

	preset := models.DesignPreset{
		Label:       req.Label,
		Price:       req.Price,
		FabricTypes: pq.StringArray(req.FabricTypes),
		IsActive:    true,
	}
	if err := config.DB.Create(&preset).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":   "Design preset created successfully",
		"preset_id": preset.ID.String(),
	})
}

func DeleteDesignPreset(w http.ResponseWriter, r *http.Request) {
	presetID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid preset ID", http.StatusBadRequest)
		return
	}

	result := config.DB.Delete(&models.DesignPreset{}, "id = ?", presetID)
	if result.Error != nil {
		http.Error(w, "db error: "+result.Error.Error(), http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "Design preset not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Design preset deleted successfully"})
}
