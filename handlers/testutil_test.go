package handlers

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"thari.in/powerloom/config"
	"thari.in/powerloom/models"
)

// setupTestDB opens a per-test in-memory database, migrates the schema and
// points the global handle at it.
func setupTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func seedWorkshop(t *testing.T, db *gorm.DB, name string) models.Workshop {
	t.Helper()
	workshop := models.Workshop{Name: name, Location: "Erode", MachineCount: 4, WorkshopType: "powerloom", IsActive: true}
	if err := db.Create(&workshop).Error; err != nil {
		t.Fatalf("workshop: %v", err)
	}
	return workshop
}

func seedMachine(t *testing.T, db *gorm.DB, workshopID uuid.UUID, number int) models.Machine {
	t.Helper()
	machine := models.Machine{WorkshopID: workshopID, MachineNumber: number, FabricType: "cotton", IsActive: true}
	if err := db.Create(&machine).Error; err != nil {
		t.Fatalf("machine: %v", err)
	}
	return machine
}

func seedCustomer(t *testing.T, db *gorm.DB, name string) models.Customer {
	t.Helper()
	customer := models.Customer{Name: name, IsActive: true}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("customer: %v", err)
	}
	return customer
}

// seedBeam writes an active beam directly, bypassing the start handler.
func seedBeam(t *testing.T, db *gorm.DB, machine models.Machine, customerID uuid.UUID, number string, totalMeters, metersPerPiece float64) models.Beam {
	t.Helper()
	beam := models.Beam{
		BeamNumber:      number,
		MachineID:       machine.ID,
		WorkshopID:      machine.WorkshopID,
		CustomerID:      customerID,
		FabricType:      machine.FabricType,
		TotalBeamMeters: totalMeters,
		MetersPerPiece:  metersPerPiece,
		StartDate:       "2026-08-01",
		Status:          models.BeamStatusActive,
	}
	if err := db.Create(&beam).Error; err != nil {
		t.Fatalf("beam: %v", err)
	}
	return beam
}

func seedDelivery(t *testing.T, db *gorm.DB, beam models.Beam, date string, good, damaged int, price float64) models.Delivery {
	t.Helper()
	delivery := models.Delivery{
		BeamID:        beam.ID,
		DeliveryDate:  date,
		DesignName:    "checks",
		PricePerPiece: price,
		GoodPieces:    good,
		DamagedPieces: damaged,
	}
	delivery.DeriveQuantities(beam.MetersPerPiece)
	if err := db.Create(&delivery).Error; err != nil {
		t.Fatalf("delivery: %v", err)
	}
	return delivery
}

func seedAdmin(t *testing.T, db *gorm.DB, username, password string) models.AdminUser {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	admin := models.AdminUser{Username: username, PasswordHash: string(hash), IsActive: true}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("admin: %v", err)
	}
	return admin
}

func nowDate() string {
	return time.Now().Format("2006-01-02")
}

func decodeJSON(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()
	out := map[string]interface{}{}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode response: %v (%s)", err, body)
	}
	return out
}
