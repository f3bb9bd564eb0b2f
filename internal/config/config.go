package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	// StoreMongo selects the MongoDB document store.
	StoreMongo = "mongo"
	// StoreMySQL selects the GORM/MySQL store.
	StoreMySQL = "mysql"
)

// Config holds application level configuration. It is built once by Load
// and handed to each component; nothing reads the environment afterwards.
type Config struct {
	ServerPort string `koanf:"port"`

	StoreDriver   string `koanf:"store_driver"`
	MongoURI      string `koanf:"mongo_uri"`
	MongoDatabase string `koanf:"mongo_database"`
	MySQLDSN      string `koanf:"mysql_dsn"`
	ResetDB       bool   `koanf:"reset_db"`

	RedisAddr string `koanf:"redis_addr"`
	RedisDB   int    `koanf:"redis_db"`
	RedisPass string `koanf:"redis_password"`

	JWTSecret       string        `koanf:"jwt_secret"`
	AccessTokenTTL  time.Duration `koanf:"access_token_ttl"`
	RefreshTokenTTL time.Duration `koanf:"refresh_token_ttl"`

	EmailHost string `koanf:"email_host"`
	EmailPort int    `koanf:"email_port"`
	EmailUser string `koanf:"email_user"`
	EmailPass string `koanf:"email_pass"`
	EmailFrom string `koanf:"email_from"`

	FrontendURL string `koanf:"frontend_url"`

	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`

	SwaggerHost string `koanf:"swagger_host"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		ServerPort:      "4000",
		StoreDriver:     StoreMongo,
		MongoURI:        "mongodb://localhost:27017",
		MongoDatabase:   "uptask",
		MySQLDSN:        "user:password@tcp(localhost:3306)/uptask?charset=utf8mb4&parseTime=True&loc=Local",
		RedisAddr:       "localhost:6379",
		JWTSecret:       "change-me",
		AccessTokenTTL:  30 * 24 * time.Hour,
		RefreshTokenTTL: 7 * 24 * time.Hour,
		EmailPort:       2525,
		EmailFrom:       `"UpTask" <cuentas@uptask.com>`,
		FrontendURL:     "http://localhost:5173",
		LogLevel:        "info",
		LogFormat:       "json",
	}
}

// Load builds Config from defaults, an optional YAML file named by
// CONFIG_FILE, and the environment, in increasing order of precedence.
// Environment keys are the lowercased variable names (PORT -> port,
// EMAIL_HOST -> email_host).
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks invariants that would otherwise fail late at runtime.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreMongo, StoreMySQL:
	default:
		return fmt.Errorf("unsupported store_driver %q", c.StoreDriver)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("jwt_secret is required")
	}
	if c.FrontendURL == "" {
		return fmt.Errorf("frontend_url is required")
	}
	if c.ServerPort == "" {
		return fmt.Errorf("port is required")
	}
	return nil
}

// Addr is the listen address derived from ServerPort.
func (c *Config) Addr() string {
	return ":" + c.ServerPort
}

// SMTPEnabled reports whether outgoing mail has a transport configured.
func (c *Config) SMTPEnabled() bool {
	return c.EmailHost != ""
}
