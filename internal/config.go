package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"http_server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Security      SecurityConfig      `mapstructure:"security"`
	Uploads       UploadConfig        `mapstructure:"uploads"`
	Sweeper       SweeperConfig       `mapstructure:"sweeper"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	BaseURL           string        `mapstructure:"base_url"`
	AllowedOrigins    string        `mapstructure:"allowed_origins"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Source          string        `mapstructure:"source"`
}

type SecurityConfig struct {
	AccessTokenSecret   string        `mapstructure:"access_token_secret"`
	RefreshTokenSecret  string        `mapstructure:"refresh_token_secret"`
	AccessTokenDuration time.Duration `mapstructure:"access_token_duration"`
	RefreshTokenTTL     time.Duration `mapstructure:"refresh_token_duration"`
	BCryptCost          int           `mapstructure:"bcrypt_cost"`
}

type UploadConfig struct {
	Dir          string `mapstructure:"dir"`
	BaseURL      string `mapstructure:"base_url"`
	MaxSizeBytes int64  `mapstructure:"max_size_bytes"`
}

type SweeperConfig struct {
	// Schedule is a cron expression; the default runs the sweep once a day.
	Schedule string `mapstructure:"schedule"`
	// Reminder look-ahead windows relative to "now" at sweep time.
	EventReminderFrom    time.Duration `mapstructure:"event_reminder_from"`
	EventReminderTo      time.Duration `mapstructure:"event_reminder_to"`
	DeadlineReminderFrom time.Duration `mapstructure:"deadline_reminder_from"`
	DeadlineReminderTo   time.Duration `mapstructure:"deadline_reminder_to"`
}

type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ----------------- ENV LOADING -----------------

// LoadConfigFromEnv builds a Config from environment variables for container
// deployments where no config.yml is mounted.
func LoadConfigFromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              getEnvAsInt("HTTP_PORT", 8080),
			BaseURL:           getEnv("BASE_URL", "http://localhost:8080"),
			AllowedOrigins:    getEnv("ALLOWED_ORIGINS", "*"),
			ReadHeaderTimeout: getEnvAsDuration("READ_HEADER_TIMEOUT", 5*time.Second),
			ReadTimeout:       getEnvAsDuration("READ_TIMEOUT", 15*time.Second),
			IdleTimeout:       getEnvAsDuration("IDLE_TIMEOUT", 60*time.Second),
			WriteTimeout:      getEnvAsDuration("WRITE_TIMEOUT", 15*time.Second),
		},
		Database: DatabaseConfig{
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime: getEnvAsDuration("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
			Source:          getEnv("DATABASE_URL", ""),
		},
		Security: SecurityConfig{
			AccessTokenSecret:   getEnv("ACCESS_TOKEN_SECRET", ""),
			RefreshTokenSecret:  getEnv("REFRESH_TOKEN_SECRET", ""),
			AccessTokenDuration: getEnvAsDuration("ACCESS_TOKEN_DURATION", 15*time.Minute),
			RefreshTokenTTL:     getEnvAsDuration("REFRESH_TOKEN_DURATION", 7*24*time.Hour),
			BCryptCost:          getEnvAsInt("BCRYPT_COST", 10),
		},
		Uploads: UploadConfig{
			Dir:          getEnv("UPLOAD_DIR", "uploads"),
			BaseURL:      getEnv("UPLOAD_BASE_URL", "/uploads"),
			MaxSizeBytes: int64(getEnvAsInt("UPLOAD_MAX_SIZE_BYTES", 5<<20)),
		},
		Sweeper: SweeperConfig{
			Schedule:             getEnv("SWEEPER_SCHEDULE", "0 6 * * *"),
			EventReminderFrom:    getEnvAsDuration("EVENT_REMINDER_FROM", 23*time.Hour),
			EventReminderTo:      getEnvAsDuration("EVENT_REMINDER_TO", 25*time.Hour),
			DeadlineReminderFrom: getEnvAsDuration("DEADLINE_REMINDER_FROM", 47*time.Hour),
			DeadlineReminderTo:   getEnvAsDuration("DEADLINE_REMINDER_TO", 49*time.Hour),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "json"),
			},
		},
	}
}

// ----------------- HELPERS -----------------

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.Security.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("security config: %v", err))
	}

	if err := c.Uploads.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("uploads config: %v", err))
	}

	if err := c.Sweeper.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("sweeper config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.AllowedOrigins != "" {
		origins := strings.Split(c.AllowedOrigins, ",")
		for _, origin := range origins {
			origin = strings.TrimSpace(origin)
			if origin == "*" {
				continue
			}
			if _, err := url.Parse(origin); err != nil {
				return fmt.Errorf("invalid allowed origin %s: %w", origin, err)
			}
		}
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.Source == "" {
		return errors.New("source is required")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *DatabaseConfig) GetDSN() string {
	return c.Source
}

func (c *SecurityConfig) Validate() error {
	if len(c.AccessTokenSecret) < 32 {
		return errors.New("access token secret must be at least 32 characters")
	}
	if len(c.RefreshTokenSecret) < 32 {
		return errors.New("refresh token secret must be at least 32 characters")
	}
	if c.BCryptCost < 10 || c.BCryptCost > 15 {
		return errors.New("bcrypt cost must be between 10 and 15")
	}
	return nil
}

func (c *UploadConfig) Validate() error {
	if c.Dir == "" {
		return errors.New("upload dir is required")
	}
	if c.MaxSizeBytes <= 0 {
		return errors.New("max_size_bytes must be positive")
	}
	return nil
}

func (c *SweeperConfig) Validate() error {
	if c.Schedule == "" {
		return errors.New("schedule is required")
	}
	if c.EventReminderFrom >= c.EventReminderTo {
		return errors.New("event reminder window is empty")
	}
	if c.DeadlineReminderFrom >= c.DeadlineReminderTo {
		return errors.New("deadline reminder window is empty")
	}
	return nil
}
