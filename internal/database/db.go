package database

import (
	"fmt"
	"os"
	"path/filepath"

	"gymbeauty/internal/config"
	"gymbeauty/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection opens the configured database using GORM and migrates the
// schema. SQLite is the default; Postgres is selected via DB_DRIVER.
func NewConnection(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	if err := seedAdmin(db); err != nil {
		log.Warn().Err(err).Msg("failed to seed default admin user")
	}

	return db, nil
}

func dialectorFor(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return postgres.Open(cfg.PostgresDSN), nil
	case config.DriverSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
		return sqlite.Open(cfg.SQLitePath), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.DBDriver)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Member{},
		&model.CheckIn{},
		&model.GymMembership{},
		&model.BeautyService{},
		&model.GymInfo{},
		&model.BeautyHealthInfo{},
		&model.GymPayment{},
		&model.Staff{},
		&model.Room{},
		&model.Appointment{},
		&model.ProductCategory{},
		&model.Product{},
		&model.InventoryMovement{},
		&model.Sale{},
		&model.SaleItem{},
		&model.Refund{},
		&model.RefundItem{},
	)
}

// seedAdmin creates the default admin login on first boot so the system is
// usable before any users exist.
func seedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := model.User{Username: "admin", Password: string(hash), Role: "admin"}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Info().Msg("seeded default admin user")
	return nil
}
