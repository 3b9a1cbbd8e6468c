package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Client   ClientConfig
}

type AppConfig struct {
	Env  string
	Port string
}

type DatabaseConfig struct {
	URL      string // full connection string; takes precedence when set
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type CORSConfig struct {
	Origins []string
}

type ClientConfig struct {
	APIBaseURL string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Env:  getEnv("APP_ENV", "development"),
			Port: getEnv("APP_PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL:      getEnv("DATABASE_URL", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "feedback"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "feedback"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		CORS: CORSConfig{
			Origins: func() []string {
				raw := strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ",")
				var normalized []string
				for _, o := range raw {
					o = strings.TrimSpace(o)
					o = strings.TrimSuffix(o, "/")
					if o != "" {
						normalized = append(normalized, o)
					}
				}
				return normalized
			}(),
		},
		Client: ClientConfig{
			APIBaseURL: getEnv("API_URL", "http://localhost:8080"),
		},
	}

	return cfg, nil
}

// DSN returns the connection string for the feedback database. A full
// DATABASE_URL wins over the discrete DB_* fields.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// AdminDSN connects to the maintenance database instead of the feedback
// database, for the create/drop operations in cmd/dbcli.
func (d DatabaseConfig) AdminDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=postgres sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
