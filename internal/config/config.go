package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPathEnv names the optional YAML file loaded before env overrides
const ConfigPathEnv = "TEAMHEALTH_CONFIG"

type Config struct {
	HTTP  HTTPConfig  `yaml:"http"`
	Mongo MongoConfig `yaml:"mongo"`
	Redis RedisConfig `yaml:"redis"`
	Auth  AuthConfig  `yaml:"auth"`
	Mail  MailConfig  `yaml:"mail"`
	Log   LogConfig   `yaml:"log"`
}

type HTTPConfig struct {
	Port            string        `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type RedisConfig struct {
	Addr      string        `yaml:"addr"`
	Password  string        `yaml:"password"`
	DB        int           `yaml:"db"`
	ReportTTL time.Duration `yaml:"report_ttl"`
}

type AuthConfig struct {
	AdminPassword string        `yaml:"admin_password"`
	JWTSecret     string        `yaml:"jwt_secret"`
	TokenTTL      time.Duration `yaml:"token_ttl"`
}

// MailConfig configures the transactional mail API. An empty APIKey disables sending.
type MailConfig struct {
	APIKey    string        `yaml:"api_key"`
	BaseURL   string        `yaml:"base_url"`
	From      string        `yaml:"from"`
	SurveyURL string        `yaml:"survey_url"` // participant code is appended
	SendDelay time.Duration `yaml:"send_delay"`
	Timeout   time.Duration `yaml:"timeout"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Port:            "8080",
			ShutdownTimeout: 30 * time.Second,
		},
		Mongo: MongoConfig{
			URI:      "mongodb://localhost:27017",
			Database: "teamhealth",
		},
		Redis: RedisConfig{
			Addr:      "localhost:6379",
			ReportTTL: time.Hour,
		},
		Auth: AuthConfig{
			JWTSecret: "change-me-in-production",
			TokenTTL:  24 * time.Hour,
		},
		Mail: MailConfig{
			BaseURL:   "https://api.mailersend.com/v1",
			From:      "team-health@localhost",
			SendDelay: 150 * time.Millisecond,
			Timeout:   10 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file named by
// TEAMHEALTH_CONFIG, and environment variables, in that order.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv(ConfigPathEnv); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.HTTP.Port = getEnv("PORT", c.HTTP.Port)
	c.Mongo.URI = getEnv("MONGO_URI", c.Mongo.URI)
	c.Mongo.Database = getEnv("MONGO_DATABASE", c.Mongo.Database)

	// REDIS_URI may carry a redis:// prefix
	c.Redis.Addr = strings.TrimPrefix(getEnv("REDIS_URI", c.Redis.Addr), "redis://")
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)

	c.Auth.AdminPassword = getEnv("ADMIN_PASSWORD", c.Auth.AdminPassword)
	c.Auth.JWTSecret = getEnv("JWT_SECRET", c.Auth.JWTSecret)

	c.Mail.APIKey = getEnv("MAIL_API_KEY", c.Mail.APIKey)
	c.Mail.BaseURL = getEnv("MAIL_BASE_URL", c.Mail.BaseURL)
	c.Mail.From = getEnv("MAIL_FROM", c.Mail.From)
	c.Mail.SurveyURL = getEnv("SURVEY_URL", c.Mail.SurveyURL)

	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)

	var err error
	if c.Redis.DB, err = getEnvInt("REDIS_DB", c.Redis.DB); err != nil {
		return err
	}
	if c.Redis.ReportTTL, err = getEnvDuration("REPORT_CACHE_TTL", c.Redis.ReportTTL); err != nil {
		return err
	}
	if c.Mail.SendDelay, err = getEnvDuration("MAIL_SEND_DELAY", c.Mail.SendDelay); err != nil {
		return err
	}
	if c.Log.Development, err = getEnvBool("LOG_DEVELOPMENT", c.Log.Development); err != nil {
		return err
	}
	return nil
}

// Validate rejects configurations the server cannot start with
func (c *Config) Validate() error {
	var errs []error
	if c.Mongo.URI == "" {
		errs = append(errs, errors.New("mongo uri is required"))
	}
	if c.Mongo.Database == "" {
		errs = append(errs, errors.New("mongo database is required"))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("jwt secret is required"))
	}
	if c.Mail.SendDelay < 0 {
		errs = append(errs, errors.New("mail send delay must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// MailEnabled reports whether mail should actually be sent
func (c *Config) MailEnabled() bool {
	return c.Mail.APIKey != ""
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
