package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for our application
type Config struct {
	Port                      string
	Origin                    string
	Environment               string
	JWTSecret                 string
	JWTRefreshSecret          string
	Database                  DatabaseConfig
	Redis                     RedisConfig
	Mailer                    MailerConfig
	JWTExpirationMinutes      int
	JWTRefreshExpirationHours int
	SlotDurationMinutes       int
	SlotCacheTTLSeconds       int
	ReportDir                 string
	RecordingDir              string
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

// RedisConfig holds the slot-cache connection details. Leave Addr empty
// to run without the cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// MailerConfig holds SMTP settings for outgoing notification mail.
// Leave Host empty to disable outgoing mail.
type MailerConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	DefaultFrom string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load database configuration
	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "psychcare"),
	}

	// Build DSN (Data Source Name) for MySQL connection
	dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	jwtExpMinutes, err := strconv.Atoi(getEnv("JWT_EXPIRATION_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_MINUTES: %w", err)
	}

	jwtRefreshExpHours, err := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_HOURS", "168")) // 7 days
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_EXPIRATION_HOURS: %w", err)
	}

	slotMinutes, err := strconv.Atoi(getEnv("SLOT_DURATION_MINUTES", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid SLOT_DURATION_MINUTES: %w", err)
	}

	slotCacheTTL, err := strconv.Atoi(getEnv("SLOT_CACHE_TTL_SECONDS", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid SLOT_CACHE_TTL_SECONDS: %w", err)
	}

	// Return complete configuration
	return &Config{
		Port:             getEnv("PORT", "3001"),
		Origin:           getEnv("ORIGIN", "http://localhost:4200"),
		Environment:      getEnv("APP_ENV", "development"),
		JWTSecret:        getEnv("JWT_SECRET", "default_jwt_secret"),
		JWTRefreshSecret: getEnv("JWT_REFRESH_SECRET", "default_refresh_secret"),
		Database:         dbConfig,
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Mailer: MailerConfig{
			Host:        getEnv("SMTP_HOST", ""),
			Port:        smtpPort,
			Username:    getEnv("SMTP_USERNAME", ""),
			Password:    getEnv("SMTP_PASSWORD", ""),
			DefaultFrom: getEnv("SMTP_FROM", "noreply@psychcare.local"),
		},
		JWTExpirationMinutes:      jwtExpMinutes,
		JWTRefreshExpirationHours: jwtRefreshExpHours,
		SlotDurationMinutes:       slotMinutes,
		SlotCacheTTLSeconds:       slotCacheTTL,
		ReportDir:                 getEnv("REPORT_DIR", "static/reports"),
		RecordingDir:              getEnv("RECORDING_DIR", "static/recordings"),
	}, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
