// models/workshop.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Workshop is a physical site housing looms. MachineCount is the declared
// size from the owner; the live count comes from the machines table.
type Workshop struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Location     string    `gorm:"size:255" json:"location"`
	MachineCount int       `json:"machine_count"`
	WorkshopType string    `gorm:"size:50" json:"workshop_type"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (w *Workshop) BeforeCreate(tx *gorm.DB) (err error) {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return
}
