package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"sba-portal/internal/domain/document"
)

// Prefix is prepended to every key, e.g. PORTAL_APP_PORT.
const Prefix = "PORTAL"

type Config struct {
	AppPort     string `envconfig:"APP_PORT" default:"8080"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	DBDriver    string `envconfig:"DB_DRIVER" default:"mysql"`
	DatabaseURL string `envconfig:"DATABASE_URL"`

	MySQLHost string `envconfig:"MYSQL_HOST" default:"mysql"`
	MySQLPort string `envconfig:"MYSQL_PORT" default:"3306"`
	MySQLDB   string `envconfig:"MYSQL_DB" default:"sba_portal"`
	MySQLUser string `envconfig:"MYSQL_USER" default:"sba"`
	MySQLPass string `envconfig:"MYSQL_PASS"`

	RedisAddr    string `envconfig:"REDIS_ADDR" default:"redis:6379"`
	RedisDB      int    `envconfig:"REDIS_DB" default:"0"`
	IdempTTLSecs int    `envconfig:"IDEMPOTENCY_TTL_SECONDS" default:"300"`

	AuthRateLimit  int           `envconfig:"AUTH_RATE_LIMIT" default:"10"`
	AuthRateWindow time.Duration `envconfig:"AUTH_RATE_WINDOW" default:"1m"`

	S3Bucket         string        `envconfig:"S3_BUCKET" default:"borrower-documents"`
	S3Endpoint       string        `envconfig:"S3_ENDPOINT"`
	SignedURLTTL     time.Duration `envconfig:"SIGNED_URL_TTL" default:"1h"`
	MaxUploadBytes   int64         `envconfig:"MAX_UPLOAD_BYTES" default:"10485760"`
	AllowedMIMETypes []string      `envconfig:"ALLOWED_MIME_TYPES" default:"application/pdf,image/jpeg,image/png,application/msword,application/vnd.openxmlformats-officedocument.wordprocessingml.document"`

	CognitoClientID  string `envconfig:"COGNITO_CLIENT_ID"`
	CognitoIssuerURL string `envconfig:"COGNITO_ISSUER_URL"`

	CookieName       string `envconfig:"SESSION_COOKIE_NAME" default:"sba_session"`
	SessionMaxAgeSec int    `envconfig:"SESSION_MAX_AGE_SEC" default:"3600"`
	CookieHashKey    string `envconfig:"COOKIE_HASH_KEY"`
	CookieBlockKey   string `envconfig:"COOKIE_BLOCK_KEY"`

	KafkaBrokers []string `envconfig:"KAFKA_BROKERS"`
	KafkaTopic   string   `envconfig:"KAFKA_TOPIC" default:"sba-portal.events"`

	RequiredCategories []string `envconfig:"REQUIRED_DOCUMENT_CATEGORIES"`
	OptionalCategories []string `envconfig:"OPTIONAL_DOCUMENT_CATEGORIES"`
	MinimumDocuments   int      `envconfig:"MINIMUM_DOCUMENT_COUNT" default:"5"`
}

func Load() (*Config, error) {
	c := new(Config)
	if err := envconfig.Process(Prefix, c); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}
	return c, nil
}

// Validate checks what every command needs. Serve-only settings are
// checked by ValidateServe.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "mysql":
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return errors.New("missing DATABASE_URL for postgres driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if _, err := c.Checklist(); err != nil {
		return err
	}
	return nil
}

func (c *Config) ValidateServe() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.CognitoClientID == "" || c.CognitoIssuerURL == "" {
		return errors.New("missing COGNITO_CLIENT_ID/COGNITO_ISSUER_URL")
	}
	if c.S3Bucket == "" {
		return errors.New("missing S3_BUCKET")
	}
	if _, _, err := c.CookieKeys(); err != nil {
		return err
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New("MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == "postgres" {
		return c.DatabaseURL
	}
	return c.MySQLDSN()
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development")
}

func (c *Config) IdempotencyTTL() time.Duration {
	return time.Duration(c.IdempTTLSecs) * time.Second
}

// Checklist builds the document checklist. The required list has no
// default; an empty one is a startup error.
func (c *Config) Checklist() (document.Checklist, error) {
	if len(c.RequiredCategories) == 0 {
		return document.Checklist{}, errors.New("missing REQUIRED_DOCUMENT_CATEGORIES")
	}
	cl, err := document.NewChecklist(c.RequiredCategories, c.OptionalCategories, c.MinimumDocuments)
	if err != nil {
		return document.Checklist{}, fmt.Errorf("document checklist: %w", err)
	}
	return cl, nil
}

// CookieKeys decodes the base64 session cookie keys. The hash key must be
// 32 or 64 bytes; the block key 16, 24 or 32 bytes.
func (c *Config) CookieKeys() (hash, block []byte, err error) {
	hash, err = base64.StdEncoding.DecodeString(c.CookieHashKey)
	if err != nil {
		return nil, nil, fmt.Errorf("COOKIE_HASH_KEY: %w", err)
	}
	if n := len(hash); n != 32 && n != 64 {
		return nil, nil, fmt.Errorf("COOKIE_HASH_KEY must decode to 32 or 64 bytes, got %d", n)
	}
	block, err = base64.StdEncoding.DecodeString(c.CookieBlockKey)
	if err != nil {
		return nil, nil, fmt.Errorf("COOKIE_BLOCK_KEY: %w", err)
	}
	if n := len(block); n != 16 && n != 24 && n != 32 {
		return nil, nil, fmt.Errorf("COOKIE_BLOCK_KEY must decode to 16, 24 or 32 bytes, got %d", n)
	}
	return hash, block, nil
}
