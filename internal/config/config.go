package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	// Server
	ServerPort int

	// MongoDB
	MongoURI string
	MongoDB  string

	// InfluxDB production mirror
	InfluxEnabled       bool
	InfluxURL           string
	InfluxToken         string
	InfluxDatabase      string
	MirrorBatchSize     int
	MirrorFlushInterval int // milliseconds

	// Auth
	AuthMode            string // "jwt" or "firebase"
	JWTSecret           string
	JWTIssuer           string
	JWTExpiryHours      int
	FirebaseProjectID   string
	FirebaseCredentials string

	// Uploads
	UploadDir      string
	PublicFileBase string

	// Production pricing
	UnitPrice            float64 // TL/kWh
	DistributionFeeRatio float64
	CO2Factor            float64 // kg/kWh
	Timezone             string

	// Mail
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	// Dashboard
	DashboardCacheTTL int // seconds

	// Logging
	LogLevel      string
	LogDir        string
	LogFileMaxAge int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort: getEnvInt("SERVER_PORT", 8080),

		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DATABASE", "edeon_enerji"),

		InfluxEnabled:       getEnvBool("INFLUX_ENABLED", false),
		InfluxURL:           getEnv("INFLUXDB_URL", "http://localhost:8181"),
		InfluxToken:         getEnv("INFLUXDB_TOKEN", ""),
		InfluxDatabase:      getEnv("INFLUXDB_DATABASE", "edeon_uretim"),
		MirrorBatchSize:     getEnvInt("MIRROR_BATCH_SIZE", 50),
		MirrorFlushInterval: getEnvInt("MIRROR_FLUSH_INTERVAL", 1000),

		AuthMode:            getEnv("AUTH_MODE", "jwt"),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		JWTIssuer:           getEnv("JWT_ISSUER", "edeon-enerji"),
		JWTExpiryHours:      getEnvInt("JWT_EXPIRY_HOURS", 24),
		FirebaseProjectID:   getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseCredentials: getEnv("FIREBASE_CREDENTIALS", ""),

		UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
		PublicFileBase: getEnv("PUBLIC_FILE_BASE", "/files"),

		UnitPrice:            getEnvFloat("UNIT_PRICE", 2.5),
		DistributionFeeRatio: getEnvFloat("DISTRIBUTION_FEE_RATIO", 0.2),
		CO2Factor:            getEnvFloat("CO2_FACTOR", 0.5),
		Timezone:             getEnv("TIMEZONE", "Europe/Istanbul"),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", "bildirim@edeonenerji.com"),

		DashboardCacheTTL: getEnvInt("DASHBOARD_CACHE_TTL", 15),

		LogLevel:      getEnv("LOG_LEVEL", "INFO"),
		LogDir:        getEnv("LOG_DIRECTORY", ""),
		LogFileMaxAge: getEnvInt("LOG_FILE_MAX_AGE", 2),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	switch c.AuthMode {
	case "jwt":
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required when AUTH_MODE=jwt")
		}
	case "firebase":
		if c.FirebaseProjectID == "" {
			return fmt.Errorf("FIREBASE_PROJECT_ID is required when AUTH_MODE=firebase")
		}
	default:
		return fmt.Errorf("invalid AUTH_MODE: %s (use 'jwt' or 'firebase')", c.AuthMode)
	}

	if c.UnitPrice <= 0 {
		return fmt.Errorf("invalid UNIT_PRICE: %v (must be > 0)", c.UnitPrice)
	}

	if c.DistributionFeeRatio < 0 || c.DistributionFeeRatio >= 1 {
		return fmt.Errorf("invalid DISTRIBUTION_FEE_RATIO: %v (must be in [0,1))", c.DistributionFeeRatio)
	}

	if c.CO2Factor < 0 {
		return fmt.Errorf("invalid CO2_FACTOR: %v", c.CO2Factor)
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}

	if c.InfluxEnabled {
		if c.InfluxURL == "" || c.InfluxDatabase == "" {
			return fmt.Errorf("INFLUXDB_URL and INFLUXDB_DATABASE are required when INFLUX_ENABLED=true")
		}
		if c.MirrorBatchSize < 1 || c.MirrorBatchSize > 10000 {
			return fmt.Errorf("invalid MIRROR_BATCH_SIZE: %d (must be 1-10000)", c.MirrorBatchSize)
		}
		if c.MirrorFlushInterval < 50 || c.MirrorFlushInterval > 60000 {
			return fmt.Errorf("invalid MIRROR_FLUSH_INTERVAL: %d (must be 50-60000ms)", c.MirrorFlushInterval)
		}
	}

	return nil
}

// Location returns the configured time zone. Validate has already
// checked that it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// MailEnabled reports whether SMTP delivery is configured.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != ""
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
