package database

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/treido/treido-go/app/models"
	"github.com/treido/treido-go/internal/pkg/env"
)

const maxRetries = 5
const retryDelay = 5 * time.Second

// SetupDatabase opens the MySQL connection, retrying while the server comes
// up, and auto-migrates the models.
func SetupDatabase(cfg env.DBConfig, debug bool) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}
	if debug {
		gormCfg.Logger = logger.Default.LogMode(logger.Info)
	}

	var err error
	for i := 0; i < maxRetries; i++ {
		var db *gorm.DB
		db, err = gorm.Open(mysql.New(mysql.Config{
			DSN:                       cfg.DSN(),
			DefaultStringSize:         256,
			DisableDatetimePrecision:  true,
			DontSupportRenameIndex:    true,
			DontSupportRenameColumn:   true,
			SkipInitializeWithVersion: false,
		}), gormCfg)
		if err == nil {
			if err = AutoMigrate(db); err != nil {
				return nil, err
			}
			return db, nil
		}

		log.Warn().Err(err).Int("attempt", i+1).Int("max", maxRetries).Msg("failed to connect to database")
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	return nil, fmt.Errorf("connect database: %w", err)
}

// AutoMigrate creates or updates the tables this service owns.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Profile{},
		&models.Product{},
		&models.ListingBoost{},
		&models.BoostPrice{},
		&models.SubscriptionPlan{},
		&models.Subscription{},
		&models.Order{},
		&models.OrderItem{},
		&models.ReturnRequest{},
		&models.Conversation{},
		&models.Message{},
		&models.Notification{},
		&models.BillingWebhookEvent{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// SeedBoostPrices inserts the default boost price list for currency. Existing
// rows are left untouched.
func SeedBoostPrices(db *gorm.DB, currency string) error {
	prices := models.DefaultBoostPrices(currency)
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&prices).Error
}
