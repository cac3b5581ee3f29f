// handlers/auth.go
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"thari.in/powerloom/config"
	"thari.in/powerloom/middleware"
	"thari.in/powerloom/models"
)

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResp struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	var u models.AdminUser
	if err := config.DB.Where("username = ?", req.Username).First(&u).Error; err != nil {
		http.Error(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}
	if !u.IsActive {
		http.Error(w, "Account is disabled", http.StatusUnauthorized)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		http.Error(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}

	now := time.Now()
	config.DB.Model(&u).Update("last_login", now)

	token, err := middleware.GenerateToken(u.Username)
	if err != nil {
		http.Error(w, "couldn't create token", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(loginResp{AccessToken: token, TokenType: "bearer"})
}

type resetPasswordReq struct {
	Username    string `json:"username"`
	NewPassword string `json:"new_password"`
}

func ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.NewPassword == "" {
		http.Error(w, "username and new_password are required", http.StatusBadRequest)
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "error hashing password", http.StatusInternalServerError)
		return
	}
	result := config.DB.Model(&models.AdminUser{}).
		Where("username = ?", req.Username).
		Update("password_hash", string(hash))
	if result.Error != nil {
		http.Error(w, "db error: "+result.Error.Error(), http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Password reset successful"})
}

type resetDatabaseReq struct {
	AdminPassword string `json:"admin_password"`
}

// ResetDatabase wipes all operational data. Admin accounts survive; the
// caller must re-confirm the admin password on top of the bearer token.
func ResetDatabase(w http.ResponseWriter, r *http.Request) {
	var req resetDatabaseReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	var admin models.AdminUser
	if err := config.DB.Where("username = ?", "admin").First(&admin).Error; err != nil {
		http.Error(w, "Invalid admin password", http.StatusUnauthorized)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.AdminPassword)); err != nil {
		http.Error(w, "Invalid admin password", http.StatusUnauthorized)
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"deliveries", "beams", "design_presets", "machines", "workshops", "customers"} {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Database reset successfully. All data deleted."})
}
