package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	Chapa    ChapaConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type SessionConfig struct {
	ExpiryHours int
}

type ChapaConfig struct {
	SecretKey          string
	WebhookSecret      string
	BaseURL            string
	CallbackURL        string
	ReturnURL          string
	TimeoutSeconds     int
	AdminBankCode      string
	AdminAccountNumber string
}

func (c ChapaConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("CHAPA_BASE_URL", "https://api.chapa.co/v1")
	viper.SetDefault("CHAPA_TIMEOUT_SECONDS", 10)
	viper.SetDefault("CHAPA_ADMIN_BANK_CODE", "946")
	viper.SetDefault("CHAPA_ADMIN_ACCOUNT_NUMBER", "1000000000")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
		Chapa: ChapaConfig{
			SecretKey:          viper.GetString("CHAPA_SECRET_KEY"),
			WebhookSecret:      viper.GetString("CHAPA_WEBHOOK_SECRET"),
			BaseURL:            viper.GetString("CHAPA_BASE_URL"),
			CallbackURL:        viper.GetString("CHAPA_CALLBACK_URL"),
			ReturnURL:          viper.GetString("CHAPA_RETURN_URL"),
			TimeoutSeconds:     viper.GetInt("CHAPA_TIMEOUT_SECONDS"),
			AdminBankCode:      viper.GetString("CHAPA_ADMIN_BANK_CODE"),
			AdminAccountNumber: viper.GetString("CHAPA_ADMIN_ACCOUNT_NUMBER"),
		},
	}

	return config, nil
}

// Validate checks settings the process cannot run without. The payment
// processor settings are required up front: without them every payment
// operation would fail at runtime instead of at startup.
func (c *Config) Validate() error {
	var missing []string

	if c.Chapa.SecretKey == "" {
		missing = append(missing, "CHAPA_SECRET_KEY")
	}
	if c.Chapa.WebhookSecret == "" {
		missing = append(missing, "CHAPA_WEBHOOK_SECRET")
	}
	if c.Chapa.CallbackURL == "" {
		missing = append(missing, "CHAPA_CALLBACK_URL")
	}
	if c.Chapa.ReturnURL == "" {
		missing = append(missing, "CHAPA_RETURN_URL")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	return nil
}
