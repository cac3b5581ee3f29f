// models/customer.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is a buyer beams are woven for. Customers with history are
// deactivated rather than deleted; hard delete is blocked while beams
// reference them.
type Customer struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	ContactPerson *string   `gorm:"size:100" json:"contact_person,omitempty"`
	Phone         *string   `gorm:"size:20" json:"phone,omitempty"`
	Email         *string   `gorm:"size:100" json:"email,omitempty"`
	Address       *string   `gorm:"size:255" json:"address,omitempty"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
