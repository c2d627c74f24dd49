package config

import (
	"encoding/base64"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port          string
	MONGOSTRING   string
	DBName        string
	PASETO_SECRET string
	Location      *time.Location
	SeedData      bool
}

// LoadConfig loads configuration from .env file
func LoadConfig() *AppConfig {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Warning: Error loading .env file (might not exist in production): %v", err)
	}

	mongoString := getEnv("MONGOSTRING", "")
	if mongoString == "" {
		log.Fatal("MONGOSTRING belum di setting di env")
	}

	secretBase64 := getEnv("PASETO_SECRET", "")
	if secretBase64 == "" {
		log.Fatal("PASETO_SECRET belum di setting di env")
	}

	// Lakukan decoding untuk validasi panjang byte
	secretBytes, err := DecodeSecret(secretBase64)
	if err != nil {
		log.Fatalf("PASETO_SECRET in .env is not a valid Base64 string: %v", err)
	}

	if len(secretBytes) != 32 {
		log.Fatalf("PASETO_SECRET (decoded) must be exactly 32 bytes long. Current length: %d", len(secretBytes))
	}

	tz := getEnv("APP_TIMEZONE", "Asia/Jakarta")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Fatalf("APP_TIMEZONE %q tidak valid: %v", tz, err)
	}

	return &AppConfig{
		Port:          getEnv("PORT", "3000"),
		MONGOSTRING:   mongoString,
		DBName:        getEnv("DB_NAME", DBName),
		PASETO_SECRET: secretBase64,
		Location:      loc,
		SeedData:      strings.EqualFold(getEnv("SEED_DATA", "false"), "true"),
	}
}

// DecodeSecret accepts URL-safe base64 with or without padding, or standard base64.
func DecodeSecret(secret string) ([]byte, error) {
	decoded, err := base64.URLEncoding.DecodeString(secret)
	if err == nil {
		return decoded, nil
	}
	decoded, err = base64.RawURLEncoding.DecodeString(secret)
	if err == nil {
		return decoded, nil
	}
	return base64.StdEncoding.DecodeString(secret)
}

// Helper function to get environment variable or fallback to default
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
