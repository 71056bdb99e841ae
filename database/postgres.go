package database

import (
	"fmt"
	"log"

	"petcare/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PostgresDB is set when bookings are persisted in Postgres.
var PostgresDB *gorm.DB

// InitPostgres opens the GORM connection used by the SQL booking store.
func InitPostgres() error {
	if config.AppConfig.PostgresDSN == "" {
		return fmt.Errorf("POSTGRES_DSN is required when BOOKING_STORE=postgres")
	}
	db, err := gorm.Open(postgres.Open(config.AppConfig.PostgresDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	PostgresDB = db
	log.Println("Connected to Postgres successfully!")
	return nil
}
