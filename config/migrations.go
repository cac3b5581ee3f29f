package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
	"thari.in/powerloom/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "01092026_create_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.AdminUser{}, &models.Customer{}, &models.Workshop{},
					&models.Machine{}, &models.DesignPreset{}, &models.Beam{}, &models.Delivery{})
			},
		},
		{
			ID: "01092026_one_active_beam_per_machine",
			Migrate: func(tx *gorm.DB) error {
				// A machine can only weave one beam at a time. The handlers
				// check this before inserting, the index makes it hold under
				// concurrent starts as well.
				return tx.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_beams_active_machine ON beams(machine_id) WHERE status = 'active'").Error
			},
		},
	})
	return m.Migrate()
}
