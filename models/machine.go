// models/machine.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Machine is a single loom. Machine numbers repeat across workshops but are
// unique within one.
type Machine struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	WorkshopID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_machines_workshop_number" json:"workshop_id"`
	MachineNumber int       `gorm:"not null;uniqueIndex:idx_machines_workshop_number" json:"machine_number"`
	FabricType    string    `gorm:"size:50;not null" json:"fabric_type"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (m *Machine) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}
