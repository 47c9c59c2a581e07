package config

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nomadfest/api/internal/models"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
}

func LoadConfig() (*Config, error) {
	return &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
	}, nil
}

func enableUUIDExtension(db *gorm.DB) error {
	return db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := enableUUIDExtension(db); err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.EventType{},
		&models.Event{},
		&models.Microevent{},
		&models.UserCollection{},
		&models.CampingProfile{},
	)
	if err != nil {
		return nil, err
	}

	seedEventTypes(db)

	return db, nil
}

func seedEventTypes(db *gorm.DB) {
	eventTypes := []models.EventType{
		{Name: "Music Festival", Description: "Multi-day music event", MapIndicator: "music", Category: "music"},
		{Name: "Renaissance Faire", Description: "Historical reenactment fair", MapIndicator: "faire", Category: "culture"},
		{Name: "Car Show", Description: "Automotive gathering", MapIndicator: "car", Category: "automotive"},
		{Name: "Food Festival", Description: "Regional food and drink event", MapIndicator: "food", Category: "food"},
	}

	for _, eventType := range eventTypes {
		var existing models.EventType
		result := db.Where("name = ?", eventType.Name).First(&existing)
		if result.Error != nil {
			db.Create(&eventType)
		}
	}
}
