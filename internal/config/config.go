package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	JWT       JWTConfig
	S3        S3Config
	Log       LogConfig
	CORS      CORSConfig
	Queue     QueueConfig
	OCR       OCRConfig
	Nutrition NutritionAPIConfig
	Risk      RiskAPIConfig
	Pricing   PricingConfig
	Email     EmailConfig
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// QueueConfig holds receipt scan queue worker settings.
type QueueConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	Concurrency      int `mapstructure:"concurrency"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// OCRConfig holds tesseract invocation settings.
type OCRConfig struct {
	Binary      string        `mapstructure:"binary"`
	Language    string        `mapstructure:"language"`
	PageSegMode int           `mapstructure:"psm"`
	EngineMode  int           `mapstructure:"oem"`
	TessdataDir string        `mapstructure:"tessdata_dir"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// NutritionAPIConfig holds settings for the external food nutrition API.
type NutritionAPIConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	APIKey      string `mapstructure:"api_key"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// RiskAPIConfig holds settings for the dietary risk scoring API.
type RiskAPIConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	APIKey      string `mapstructure:"api_key"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// PricingConfig holds settings for store price comparison clients. Stores
// maps a store name to its search endpoint, configured as comma-separated
// name=url pairs.
type PricingConfig struct {
	TimeoutSecs    int     `mapstructure:"timeout_secs"`
	RequestsPerSec float64 `mapstructure:"requests_per_sec"`
	Burst          int     `mapstructure:"burst"`
	Stores         map[string]string
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings for receipt image storage.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the PANTRY_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PANTRY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "pantry")
	v.SetDefault("db.password", "pantry_secret")
	v.SetDefault("db.name", "pantry_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "smartpantry")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "smartpantry-receipts")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 20)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Queue defaults
	v.SetDefault("queue.poll_interval_secs", 10)
	v.SetDefault("queue.concurrency", 4)

	// OCR defaults
	v.SetDefault("ocr.binary", "tesseract")
	v.SetDefault("ocr.language", "eng")
	v.SetDefault("ocr.psm", 6)
	v.SetDefault("ocr.oem", 3)
	v.SetDefault("ocr.tessdata_dir", "")
	v.SetDefault("ocr.timeout", "30s")

	// Nutrition API defaults
	v.SetDefault("nutrition.base_url", "https://api.spoonacular.com")
	v.SetDefault("nutrition.api_key", "")
	v.SetDefault("nutrition.timeout_secs", 10)

	// Risk API defaults
	v.SetDefault("risk.base_url", "")
	v.SetDefault("risk.api_key", "")
	v.SetDefault("risk.timeout_secs", 10)

	// Pricing defaults
	v.SetDefault("pricing.timeout_secs", 10)
	v.SetDefault("pricing.requests_per_sec", 2.0)
	v.SetDefault("pricing.burst", 1)
	v.SetDefault("pricing.stores", "")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@smartpantry.app")
	v.SetDefault("email.from_name", "SmartPantry")
	v.SetDefault("email.frontend_url", "http://localhost:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "PANTRY_SERVER_PORT",
		"server.read_timeout":      "PANTRY_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "PANTRY_SERVER_WRITE_TIMEOUT",
		"server.environment":       "PANTRY_SERVER_ENVIRONMENT",
		"db.host":                  "PANTRY_DB_HOST",
		"db.port":                  "PANTRY_DB_PORT",
		"db.user":                  "PANTRY_DB_USER",
		"db.password":              "PANTRY_DB_PASSWORD",
		"db.name":                  "PANTRY_DB_NAME",
		"db.sslmode":               "PANTRY_DB_SSLMODE",
		"db.max_open":              "PANTRY_DB_MAX_OPEN",
		"db.max_idle":              "PANTRY_DB_MAX_IDLE",
		"jwt.secret":               "PANTRY_JWT_SECRET",
		"jwt.access_expiry":        "PANTRY_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":       "PANTRY_JWT_REFRESH_EXPIRY",
		"jwt.issuer":               "PANTRY_JWT_ISSUER",
		"s3.region":                "PANTRY_S3_REGION",
		"s3.bucket":                "PANTRY_S3_BUCKET",
		"s3.endpoint":              "PANTRY_S3_ENDPOINT",
		"s3.access_key":            "PANTRY_S3_ACCESS_KEY",
		"s3.secret_key":            "PANTRY_S3_SECRET_KEY",
		"s3.max_file_size_mb":      "PANTRY_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":        "PANTRY_S3_PRESIGN_EXPIRY",
		"log.level":                "PANTRY_LOG_LEVEL",
		"log.format":               "PANTRY_LOG_FORMAT",
		"cors.allowed_origins":     "PANTRY_CORS_ALLOWED_ORIGINS",
		"queue.poll_interval_secs": "PANTRY_QUEUE_POLL_INTERVAL_SECS",
		"queue.concurrency":        "PANTRY_QUEUE_CONCURRENCY",
		"ocr.binary":               "PANTRY_OCR_BINARY",
		"ocr.language":             "PANTRY_OCR_LANGUAGE",
		"ocr.psm":                  "PANTRY_OCR_PSM",
		"ocr.oem":                  "PANTRY_OCR_OEM",
		"ocr.tessdata_dir":         "PANTRY_OCR_TESSDATA_DIR",
		"ocr.timeout":              "PANTRY_OCR_TIMEOUT",
		"nutrition.base_url":       "PANTRY_NUTRITION_BASE_URL",
		"nutrition.api_key":        "PANTRY_NUTRITION_API_KEY",
		"nutrition.timeout_secs":   "PANTRY_NUTRITION_TIMEOUT_SECS",
		"risk.base_url":            "PANTRY_RISK_BASE_URL",
		"risk.api_key":             "PANTRY_RISK_API_KEY",
		"risk.timeout_secs":        "PANTRY_RISK_TIMEOUT_SECS",
		"pricing.timeout_secs":     "PANTRY_PRICING_TIMEOUT_SECS",
		"pricing.requests_per_sec": "PANTRY_PRICING_REQUESTS_PER_SEC",
		"pricing.burst":            "PANTRY_PRICING_BURST",
		"pricing.stores":           "PANTRY_PRICING_STORES",
		"email.provider":           "PANTRY_EMAIL_PROVIDER",
		"email.region":             "PANTRY_EMAIL_REGION",
		"email.from_address":       "PANTRY_EMAIL_FROM_ADDRESS",
		"email.from_name":          "PANTRY_EMAIL_FROM_NAME",
		"email.frontend_url":       "PANTRY_EMAIL_FRONTEND_URL",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if PANTRY_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("PANTRY_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Queue = QueueConfig{
		PollIntervalSecs: v.GetInt("queue.poll_interval_secs"),
		Concurrency:      v.GetInt("queue.concurrency"),
	}
	cfg.OCR = OCRConfig{
		Binary:      v.GetString("ocr.binary"),
		Language:    v.GetString("ocr.language"),
		PageSegMode: v.GetInt("ocr.psm"),
		EngineMode:  v.GetInt("ocr.oem"),
		TessdataDir: v.GetString("ocr.tessdata_dir"),
		Timeout:     v.GetDuration("ocr.timeout"),
	}
	cfg.Nutrition = NutritionAPIConfig{
		BaseURL:     v.GetString("nutrition.base_url"),
		APIKey:      v.GetString("nutrition.api_key"),
		TimeoutSecs: v.GetInt("nutrition.timeout_secs"),
	}
	cfg.Risk = RiskAPIConfig{
		BaseURL:     v.GetString("risk.base_url"),
		APIKey:      v.GetString("risk.api_key"),
		TimeoutSecs: v.GetInt("risk.timeout_secs"),
	}
	// Parse store endpoints from comma-separated name=url pairs
	stores := map[string]string{}
	for _, pair := range strings.Split(v.GetString("pricing.stores"), ",") {
		name, url, found := strings.Cut(strings.TrimSpace(pair), "=")
		if found && name != "" && url != "" {
			stores[name] = url
		}
	}
	cfg.Pricing = PricingConfig{
		TimeoutSecs:    v.GetInt("pricing.timeout_secs"),
		RequestsPerSec: v.GetFloat64("pricing.requests_per_sec"),
		Burst:          v.GetInt("pricing.burst"),
		Stores:         stores,
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		FrontendURL: v.GetString("email.frontend_url"),
	}

	return cfg, nil
}
