package config

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("PORTAL_REQUIRED_DOCUMENT_CATEGORIES", "Tax Returns, Bank Statements,Business License")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.AppPort != "8080" || c.DBDriver != "mysql" || c.IdempTTLSecs != 300 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.SignedURLTTL != time.Hour {
		t.Fatalf("SignedURLTTL = %v, want 1h", c.SignedURLTTL)
	}
	if c.MaxUploadBytes != 10<<20 {
		t.Fatalf("MaxUploadBytes = %d", c.MaxUploadBytes)
	}
	if len(c.AllowedMIMETypes) != 5 || c.AllowedMIMETypes[0] != "application/pdf" {
		t.Fatalf("AllowedMIMETypes = %v", c.AllowedMIMETypes)
	}
	if c.MinimumDocuments != 5 {
		t.Fatalf("MinimumDocuments = %d", c.MinimumDocuments)
	}
	if c.IdempotencyTTL() != 5*time.Minute {
		t.Fatalf("IdempotencyTTL = %v", c.IdempotencyTTL())
	}
	if c.AuthRateLimit != 10 || c.AuthRateWindow != time.Minute {
		t.Fatalf("auth rate limit = %d per %v", c.AuthRateLimit, c.AuthRateWindow)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORTAL_APP_PORT", "9090")
	t.Setenv("PORTAL_REDIS_DB", "3")
	t.Setenv("PORTAL_KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("PORTAL_SIGNED_URL_TTL", "15m")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.AppPort != "9090" || c.RedisDB != 3 || c.SignedURLTTL != 15*time.Minute {
		t.Fatalf("overrides not applied: %+v", c)
	}
	if len(c.KafkaBrokers) != 2 || c.KafkaBrokers[1] != "k2:9092" {
		t.Fatalf("KafkaBrokers = %v", c.KafkaBrokers)
	}
}

func TestLoad_BadInt(t *testing.T) {
	t.Setenv("PORTAL_REDIS_DB", "not-a-number")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed int")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			AppPort:            "8080",
			DBDriver:           "mysql",
			MySQLHost:          "db",
			MySQLPort:          "3306",
			MySQLDB:            "sba",
			MySQLUser:          "sba",
			RequiredCategories: []string{"Tax Returns"},
			MinimumDocuments:   1,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "ok", mutate: func(c *Config) {}},
		{name: "missing mysql host", mutate: func(c *Config) { c.MySQLHost = "" }, wantErr: "missing MySQL config"},
		{name: "bad port", mutate: func(c *Config) { c.MySQLPort = "abc" }, wantErr: "invalid MYSQL_PORT"},
		{name: "postgres without url", mutate: func(c *Config) { c.DBDriver = "postgres" }, wantErr: "DATABASE_URL"},
		{name: "postgres with url", mutate: func(c *Config) { c.DBDriver = "postgres"; c.DatabaseURL = "postgres://x" }},
		{name: "unknown driver", mutate: func(c *Config) { c.DBDriver = "oracle" }, wantErr: "unsupported DB_DRIVER"},
		{name: "missing app port", mutate: func(c *Config) { c.AppPort = "" }, wantErr: "APP_PORT"},
		{name: "no required categories", mutate: func(c *Config) { c.RequiredCategories = nil }, wantErr: "REQUIRED_DOCUMENT_CATEGORIES"},
		{name: "negative minimum", mutate: func(c *Config) { c.MinimumDocuments = -1 }, wantErr: "document checklist"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestDSN(t *testing.T) {
	c := &Config{DBDriver: "mysql", MySQLUser: "u", MySQLPass: "p", MySQLHost: "h", MySQLPort: "3306", MySQLDB: "d"}
	want := "u:p@tcp(h:3306)/d?multiStatements=true&parseTime=true&charset=utf8mb4,utf8"
	if got := c.DSN(); got != want {
		t.Fatalf("DSN = %q, want %q", got, want)
	}

	c.DBDriver = "postgres"
	c.DatabaseURL = "postgres://u:p@h/d"
	if got := c.DSN(); got != c.DatabaseURL {
		t.Fatalf("DSN = %q, want %q", got, c.DatabaseURL)
	}
}

func TestChecklist(t *testing.T) {
	c := &Config{
		RequiredCategories: []string{"Tax Returns", "Bank Statements"},
		OptionalCategories: []string{"Resume"},
		MinimumDocuments:   2,
	}
	cl, err := c.Checklist()
	if err != nil {
		t.Fatalf("Checklist: %v", err)
	}
	if !cl.Allows("Resume") || !cl.Allows("Tax Returns") || cl.Allows("Other") {
		t.Fatalf("unexpected catalog: %+v", cl)
	}
	if cl.Minimum != 2 {
		t.Fatalf("Minimum = %d", cl.Minimum)
	}
}

func TestCookieKeys(t *testing.T) {
	enc := func(n int) string { return base64.StdEncoding.EncodeToString(make([]byte, n)) }

	tests := []struct {
		name    string
		hash    string
		block   string
		wantErr bool
	}{
		{name: "32/32", hash: enc(32), block: enc(32)},
		{name: "64/16", hash: enc(64), block: enc(16)},
		{name: "short hash", hash: enc(10), block: enc(16), wantErr: true},
		{name: "bad block size", hash: enc(32), block: enc(20), wantErr: true},
		{name: "not base64", hash: "%%%", block: enc(16), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{CookieHashKey: tt.hash, CookieBlockKey: tt.block}
			_, _, err := c.CookieKeys()
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
