package routes

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"thari.in/powerloom/config"
	"thari.in/powerloom/middleware"
	"thari.in/powerloom/models"
)

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.AdminUser{},
		&models.Customer{},
		&models.Workshop{},
		&models.Machine{},
		&models.DesignPreset{},
		&models.Beam{},
		&models.Delivery{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	config.DB = db
	return RegisterRoutes()
}

func TestPublicReadsNeedNoToken(t *testing.T) {
	router := setupRouter(t)

	for _, path := range []string{"/api/workshops", "/api/customers", "/api/beams", "/api/machines/all", "/api/design-presets"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("GET %s: expected 200 got %d body=%s", path, w.Code, w.Body.String())
		}
	}
}

func TestMutationsRequireToken(t *testing.T) {
	router := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/workshops", strings.NewReader(`{"name":"Unit A"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", w.Code)
	}

	token, err := middleware.GenerateToken("admin")
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	req = httptest.NewRequest(http.MethodPost, "/api/workshops", strings.NewReader(`{"name":"Unit A"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with token got %d body=%s", w.Code, w.Body.String())
	}
}

func TestDeliveryAddAlias(t *testing.T) {
	router := setupRouter(t)
	token, err := middleware.GenerateToken("admin")
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	// both spellings hit the same handler; a bad beam id proves routing worked
	for _, path := range []string{"/api/deliveries", "/api/deliveries/add"} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"beam_id":"nope"}`))
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("POST %s: expected 400 got %d", path, w.Code)
		}
	}
}
