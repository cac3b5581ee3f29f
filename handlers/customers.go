// handlers/customers.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"thari.in/powerloom/config"
	"thari.in/powerloom/models"
)

func GetAllCustomers(w http.ResponseWriter, r *http.Request) {
	var customers []models.Customer
	if err := config.DB.Where("is_active = ?", true).Order("name").Find(&customers).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"customers": customers})
}

type customerCreateReq struct {
	Name          string  `json:"name"`
	ContactPerson *string `json:"contact_person"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	Address       *string `json:"address"`
}

func CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	var count int64
	if err := config.DB.Model(&models.Customer{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if count > 0 {
		http.Error(w, "Customer with this name already exists", http.StatusConflict)
		return
	}

	customer := models.Customer{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		IsActive:      true,
	}
	if err := config.DB.Create(&customer).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":     "Customer created successfully",
		"customer_id": customer.ID.String(),
	})
}

type customerStatusReq struct {
	Status string `json:"status"`
}

// ToggleCustomerStatus flips a customer between active and inactive, the soft
// alternative to deleting a customer who still has beam history.
func ToggleCustomerStatus(w http.ResponseWriter, r *http.Request) {
	customerID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid customer ID", http.StatusBadRequest)
		return
	}

	var req customerStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Status != "active" && req.Status != "inactive" {
		http.Error(w, "Status must be 'active' or 'inactive'", http.StatusBadRequest)
		return
	}

	result := config.DB.Model(&models.Customer{}).
		Where("id = ?", customerID).
		Update("is_active", req.Status == "active")
	if result.Error != nil {
		http.Error(w, "db error: "+result.Error.Error(), http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "Customer not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Customer status updated to " + req.Status})
}

// DeleteCustomer hard-deletes a customer. Blocked while any beam, active or
// completed, references them; deactivate instead to keep the history intact.
func DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid customer ID", http.StatusBadRequest)
		return
	}

	var beamCount int64
	if err := config.DB.Model(&models.Beam{}).Where("customer_id = ?", customerID).Count(&beamCount).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if beamCount > 0 {
		http.Error(w, "Cannot delete customer with existing beams", http.StatusConflict)
		return
	}

	result := config.DB.Delete(&models.Customer{}, "id = ?", customerID)
	if result.Error != nil {
		http.Error(w, "db error: "+result.Error.Error(), http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "Customer not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Customer deleted successfully"})
}
