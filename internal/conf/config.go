package conf

import (
	"path/filepath"
)

type Database struct {
	Type        string `json:"type" env:"TYPE"`
	Host        string `json:"host" env:"HOST"`
	Port        int    `json:"port" env:"PORT"`
	User        string `json:"user" env:"USER"`
	Password    string `json:"password" env:"PASS"`
	Name        string `json:"name" env:"NAME"`
	DBFile      string `json:"db_file" env:"FILE"`
	TablePrefix string `json:"table_prefix" env:"TABLE_PREFIX"`
	SSLMode     string `json:"ssl_mode" env:"SSL_MODE"`
}

type LogConfig struct {
	Enable     bool   `json:"enable" env:"ENABLE"`
	Name       string `json:"name" env:"NAME"`
	MaxSize    int    `json:"max_size" env:"MAX_SIZE"`
	MaxBackups int    `json:"max_backups" env:"MAX_BACKUPS"`
	MaxAge     int    `json:"max_age" env:"MAX_AGE"`
	Compress   bool   `json:"compress" env:"COMPRESS"`
}

type SessionConfig struct {
	// MaxConcurrent is the per-user cap on active sessions. Creating a
	// session beyond the cap evicts the oldest active one.
	MaxConcurrent int `json:"max_concurrent" env:"MAX_CONCURRENT_SESSIONS"`
	// DurationHours fixes expires_at at creation time.
	DurationHours int `json:"duration_hours" env:"SESSION_DURATION_HOURS"`
}

type EmailChannel struct {
	APIKey string `json:"api_key" env:"API_KEY"`
	From   string `json:"from" env:"FROM"`
	To     string `json:"to" env:"TO"`
}

type AlertConfig struct {
	CooldownMinutes int          `json:"cooldown_minutes" env:"ALERT_COOLDOWN_MINUTES"`
	Email           EmailChannel `json:"email" envPrefix:"EMAIL_"`
	SlackWebhookURL string       `json:"slack_webhook_url" env:"SLACK_WEBHOOK_URL"`
	DiscordWebhook  string       `json:"discord_webhook_url" env:"DISCORD_WEBHOOK_URL"`
	// AdminBaseURL, when set, is used to build action links in alerts.
	AdminBaseURL string `json:"admin_base_url" env:"ADMIN_BASE_URL"`
}

type SchemeConfig struct {
	Address  string `json:"address" env:"ADDR"`
	HTTPPort int    `json:"http_port" env:"HTTP_PORT"`
}

type Config struct {
	TempDir  string        `json:"temp_dir" env:"TEMP_DIR"`
	Scheme   SchemeConfig  `json:"scheme" envPrefix:"SCHEME_"`
	Database Database      `json:"database" envPrefix:"DB_"`
	Log      LogConfig     `json:"log" envPrefix:"LOG_"`
	Session  SessionConfig `json:"session"`
	Alert    AlertConfig   `json:"alert"`
}

func DefaultConfig() *Config {
	return &Config{
		TempDir: "data/temp",
		Scheme: SchemeConfig{
			Address:  "0.0.0.0",
			HTTPPort: 5244,
		},
		Database: Database{
			Type:        "sqlite3",
			DBFile:      filepath.Join("data", "data.db"),
			TablePrefix: "x_",
		},
		Log: LogConfig{
			Enable:     true,
			Name:       filepath.Join("data", "log", "log.log"),
			MaxSize:    50,
			MaxBackups: 30,
			MaxAge:     28,
		},
		Session: SessionConfig{
			MaxConcurrent: 3,
			DurationHours: 24,
		},
		Alert: AlertConfig{
			CooldownMinutes: 5,
		},
	}
}

// Conf holds the loaded configuration. Bootstrap assigns it once at startup;
// treat it as read-only afterwards.
var Conf *Config
