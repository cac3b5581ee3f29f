// models/delivery.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Delivery is one dated batch of finished pieces recorded against a beam.
// MetersUsed and TotalAmount are frozen at insert time using the beam's rate
// of that moment; rows are immutable afterwards except for deletion.
type Delivery struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	BeamID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"beam_id"`
	Beam          *Beam          `gorm:"foreignKey:BeamID;constraint:OnDelete:CASCADE" json:"-"`
	DeliveryDate  string         `gorm:"size:10;not null;index" json:"delivery_date"`
	DesignName    string         `gorm:"size:100;not null" json:"design_name"`
	PricePerPiece float64        `gorm:"not null" json:"price_per_piece"`
	GoodPieces    int            `gorm:"not null" json:"good_pieces"`
	DamagedPieces int            `gorm:"not null" json:"damaged_pieces"`
	MetersUsed    float64        `gorm:"not null" json:"meters_used"`
	TotalAmount   float64        `gorm:"not null" json:"total_amount"`
	Notes         *string        `gorm:"size:500" json:"notes,omitempty"`
	Photos        datatypes.JSON `gorm:"type:jsonb" json:"photos,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (d *Delivery) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return
}

// DeriveQuantities fills the frozen figures: damaged pieces consume meters
// but are not billed.
func (d *Delivery) DeriveQuantities(metersPerPiece float64) {
	d.MetersUsed = float64(d.GoodPieces+d.DamagedPieces) * metersPerPiece
	d.TotalAmount = float64(d.GoodPieces) * d.PricePerPiece
}
