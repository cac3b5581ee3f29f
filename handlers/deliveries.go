// handlers/deliveries.go
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"thari.in/powerloom/config"
	"thari.in/powerloom/models"
)

type deliveryCreateReq struct {
	BeamID        string         `json:"beam_id"`
	DeliveryDate  string         `json:"delivery_date"`
	DesignName    string         `json:"design_name"`
	PricePerPiece float64        `json:"price_per_piece"`
	GoodPieces    int            `json:"good_pieces"`
	DamagedPieces int            `json:"damaged_pieces"`
	Notes         *string        `json:"notes"`
	Photos        datatypes.JSON `json:"photos"`
}

// AddDelivery records a batch of finished pieces against a beam, freezing
// meters_used and total_amount with the beam's current rate, then closes the
// beam when its capacity is reached. Insert and auto-completion run in one
// transaction.
func AddDelivery(w http.ResponseWriter, r *http.Request) {
	var req deliveryCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	beamID, err := uuid.Parse(req.BeamID)
	if err != nil {
		http.Error(w, "Invalid beam ID", http.StatusBadRequest)
		return
	}
	if req.GoodPieces < 0 || req.DamagedPieces < 0 {
		http.Error(w, "Piece counts cannot be negative", http.StatusBadRequest)
		return
	}

	var delivery models.Delivery
	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		var beam models.Beam
		if err := tx.First(&beam, "id = ?", beamID).Error; err != nil {
			return statusError{http.StatusNotFound, "Beam not found"}
		}

		delivery = models.Delivery{
			BeamID:        beam.ID,
			DeliveryDate:  req.DeliveryDate,
			DesignName:    req.DesignName,
			PricePerPiece: req.PricePerPiece,
			GoodPieces:    req.GoodPieces,
			DamagedPieces: req.DamagedPieces,
			Notes:         req.Notes,
			Photos:        req.Photos,
		}
		delivery.DeriveQuantities(beam.MetersPerPiece)
		if err := tx.Create(&delivery).Error; err != nil {
			return err
		}

		var totalMetersUsed float64
		if err := tx.Model(&models.Delivery{}).
			Where("beam_id = ?", beam.ID).
			Select("COALESCE(SUM(meters_used), 0)").
			Scan(&totalMetersUsed).Error; err != nil {
			return err
		}

		if beam.ShouldComplete(totalMetersUsed) {
			today := time.Now().Format("2006-01-02")
			return tx.Model(&models.Beam{}).
				Where("id = ? AND status = ?", beam.ID, models.BeamStatusActive).
				Updates(map[string]interface{}{"status": models.BeamStatusCompleted, "end_date": today}).Error
		}
		return nil
	})
	if txErr != nil {
		writeTxError(w, txErr)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":     "Delivery added successfully",
		"delivery_id": delivery.ID.String(),
	})
}

// DeleteDelivery removes one delivery row. The parent beam's status is left
// untouched: deleting output from a completed beam does not reopen it.
func DeleteDelivery(w http.ResponseWriter, r *http.Request) {
	deliveryID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid delivery ID", http.StatusBadRequest)
		return
	}

	result := config.DB.Delete(&models.Delivery{}, "id = ?", deliveryID)
	if result.Error != nil {
		http.Error(w, "db error: "+result.Error.Error(), http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "Delivery not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Delivery deleted successfully"})
}
