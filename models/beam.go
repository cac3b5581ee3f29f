// models/beam.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BeamStatusActive    = "active"
	BeamStatusCompleted = "completed"
)

// Beam is one loaded run of raw fabric on a machine, tracked from start to
// completion. WorkshopID and FabricType are copied from the machine when the
// beam starts and never re-derived, so later machine edits don't rewrite
// history. References to machine/workshop/customer are plain ids: a machine
// may be scrapped while completed beams still point at it.
type Beam struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BeamNumber      string    `gorm:"size:50;uniqueIndex;not null" json:"beam_number"`
	MachineID       uuid.UUID `gorm:"type:uuid;not null;index" json:"machine_id"`
	WorkshopID      uuid.UUID `gorm:"type:uuid;not null;index" json:"workshop_id"`
	CustomerID      uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	FabricType      string    `gorm:"size:50;not null" json:"fabric_type"`
	TotalBeamMeters float64   `gorm:"not null" json:"total_beam_meters"`
	MetersPerPiece  float64   `gorm:"not null" json:"meters_per_piece"`
	StartDate       string    `gorm:"size:10;not null;index" json:"start_date"`
	EndDate         *string   `gorm:"size:10" json:"end_date"`
	Status          string    `gorm:"size:20;not null;default:active;index" json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (b *Beam) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}

// BeamTotals are the running figures derived from a beam's deliveries.
type BeamTotals struct {
	TotalGood                int     `json:"total_good"`
	TotalDamaged             int     `json:"total_damaged"`
	TotalMetersUsed          float64 `json:"total_meters_used"`
	TotalAmount              float64 `json:"total_amount"`
	RemainingMeters          float64 `json:"remaining_meters"`
	EstimatedPiecesRemaining int     `json:"estimated_pieces_remaining"`
	MeterUsagePercentage     float64 `json:"meter_usage_percentage"`
}

// Totals sums the beam's deliveries into the derived figures. A beam with no
// deliveries yields all zeros, including the usage percentage.
func (b *Beam) Totals(deliveries []Delivery) BeamTotals {
	var t BeamTotals
	for _, d := range deliveries {
		t.TotalGood += d.GoodPieces
		t.TotalDamaged += d.DamagedPieces
		t.TotalMetersUsed += d.MetersUsed
		t.TotalAmount += d.TotalAmount
	}
	t.RemainingMeters = b.TotalBeamMeters - t.TotalMetersUsed
	if b.MetersPerPiece > 0 {
		t.EstimatedPiecesRemaining = int(t.RemainingMeters / b.MetersPerPiece)
	}
	if b.TotalBeamMeters > 0 {
		t.MeterUsagePercentage = t.TotalMetersUsed / b.TotalBeamMeters * 100
	}
	return t
}

// ShouldComplete reports whether the beam's capacity is exhausted and it is
// still active. Completed beams stay completed.
func (b *Beam) ShouldComplete(totalMetersUsed float64) bool {
	return b.Status == BeamStatusActive && totalMetersUsed >= b.TotalBeamMeters
}
