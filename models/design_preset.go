// models/design_preset.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// DesignPreset is a reusable design/price pair the delivery form offers.
// FabricTypes limits which machines' beams the preset is suggested for;
// empty means all.
type DesignPreset struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Label       string         `gorm:"size:100;not null" json:"label"`
	Price       float64        `gorm:"not null" json:"price"`
	FabricTypes pq.StringArray `gorm:"type:text[]" json:"fabric_types"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (p *DesignPreset) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
