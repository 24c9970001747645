package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Backing spreadsheet.
	SpreadsheetID   string `mapstructure:"SPREADSHEET_ID"`
	CredentialsFile string `mapstructure:"GOOGLE_CREDENTIALS_FILE"`

	// Sheet layout. DirectorySheet maps locations to providers; every sheet
	// named in ReservedSheets is excluded from date scanning.
	DirectorySheet string   `mapstructure:"DIRECTORY_SHEET"`
	ReservedSheets []string `mapstructure:"RESERVED_SHEETS"`
	LocationColumn string   `mapstructure:"LOCATION_COLUMN"`
	ProviderColumn string   `mapstructure:"PROVIDER_COLUMN"`
	TimeColumn     string   `mapstructure:"TIME_COLUMN"`
	ClientColumn   string   `mapstructure:"CLIENT_COLUMN"`

	// Scanning.
	Timezone    string `mapstructure:"TIMEZONE"`
	HorizonDays int    `mapstructure:"HORIZON_DAYS"`
	ScanWorkers int    `mapstructure:"SCAN_WORKERS"`

	// Caching.
	MetadataTTL           time.Duration `mapstructure:"METADATA_TTL"`
	AvailabilityTTL       time.Duration `mapstructure:"AVAILABILITY_TTL"`
	AvailabilityCacheSize int           `mapstructure:"AVAILABILITY_CACHE_SIZE"`

	// Sessions and reminders.
	SessionTTL   time.Duration `mapstructure:"SESSION_TTL"`
	ReminderLead time.Duration `mapstructure:"REMINDER_LEAD"`

	MaxRequestsPerMin int `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("SPREADSHEET_ID", "")
	viper.SetDefault("GOOGLE_CREDENTIALS_FILE", "service-account.json")
	viper.SetDefault("DIRECTORY_SHEET", "Providers")
	viper.SetDefault("RESERVED_SHEETS", []string{"Providers"})
	viper.SetDefault("LOCATION_COLUMN", "Location")
	viper.SetDefault("PROVIDER_COLUMN", "Provider")
	viper.SetDefault("TIME_COLUMN", "Time")
	viper.SetDefault("CLIENT_COLUMN", "Client")
	viper.SetDefault("TIMEZONE", "Europe/Moscow")
	viper.SetDefault("HORIZON_DAYS", 7)
	viper.SetDefault("SCAN_WORKERS", 2)
	viper.SetDefault("METADATA_TTL", "12h")
	viper.SetDefault("AVAILABILITY_TTL", "15m")
	viper.SetDefault("AVAILABILITY_CACHE_SIZE", 6)
	viper.SetDefault("SESSION_TTL", "10m")
	viper.SetDefault("REMINDER_LEAD", "24h")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// Location resolves the configured timezone, falling back to UTC if the
// identifier is unknown.
func Location() *time.Location {
	loc, err := time.LoadLocation(AppConfig.Timezone)
	if err != nil {
		log.Printf("Unknown timezone %q, falling back to UTC", AppConfig.Timezone)
		return time.UTC
	}
	return loc
}
