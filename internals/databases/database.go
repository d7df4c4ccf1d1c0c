package database

import (
	"fmt"
	"log"
	"net/url"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"obehod_backend/internals/configs"
	wizardModel "obehod_backend/internals/features/hod/clo_wizard/model"
)

var DB *gorm.DB

// DSN builds the connection string from DB_* variables.
func DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(configs.GetEnv("DB_USER"), configs.GetEnv("DB_PASSWORD")),
		Host:   configs.GetEnv("DB_HOST", "localhost") + ":" + configs.GetEnv("DB_PORT", "5432"),
		Path:   "/" + configs.GetEnv("DB_NAME"),
	}
	q := url.Values{}
	q.Set("sslmode", configs.GetEnv("DB_SSLMODE", "require"))
	q.Set("application_name", "obehod")
	q.Set("options", "-c statement_timeout=3000")
	u.RawQuery = q.Encode()
	return u.String()
}

func ConnectDB() error {
	log.Println("🔌 Connecting to PostgreSQL...")

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  DSN(),
		PreferSimpleProtocol: true, // PgBouncer transaction pooling
	}), &gorm.Config{Logger: configs.NewGormLogger()})
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	DB = db
	log.Println("✅ DB connected.")
	return nil
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("[WARN] pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate creates the wizard session table.
func Migrate() error {
	if err := DB.AutoMigrate(&wizardModel.CLOWizardSessionModel{}); err != nil {
		return fmt.Errorf("migrate wizard sessions: %w", err)
	}
	return nil
}

func Ping() error {
	if DB == nil {
		return fmt.Errorf("db not connected")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func Close() {
	if DB == nil {
		return
	}
	if sqlDB, err := DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
