package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var configKeys = []string{
	"APP_PORT", "LOG_LEVEL", "STORE_DRIVER", "MONGODB_URI", "MONGODB_DB_NAME",
	"WHATSAPP_TOKEN", "WHATSAPP_PHONE_NUMBER_ID", "WHATSAPP_BASE_URL",
	"WHATSAPP_API_VERSION", "WHATSAPP_QA_MANAGER_ID",
	"GOOGLE_SHEETS_CREDENTIALS_PATH", "GOOGLE_SHEET_DATABASE_ID",
	"REPORT_CRON_SCHEDULE", "TIMEZONE", "LIST_LIMIT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Store.Driver != StoreMongoDB {
		t.Errorf("expected mongodb driver, got %s", cfg.Store.Driver)
	}
	if cfg.MongoDB.DBName != "finalqc" {
		t.Errorf("expected db finalqc, got %s", cfg.MongoDB.DBName)
	}
	if cfg.Inspections.ListLimit != MaxListLimit {
		t.Errorf("expected list limit %d, got %d", MaxListLimit, cfg.Inspections.ListLimit)
	}
	if cfg.Reporting.CronSchedule != "0 8 * * MON" {
		t.Errorf("unexpected cron schedule %s", cfg.Reporting.CronSchedule)
	}
	if cfg.WhatsApp.Enabled() || cfg.Sheets.Enabled() {
		t.Errorf("integrations should be disabled without credentials")
	}
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv does not override variables that already exist, even empty ones.
	for _, key := range []string{"STORE_DRIVER", "LIST_LIMIT", "WHATSAPP_TOKEN", "WHATSAPP_PHONE_NUMBER_ID"} {
		os.Unsetenv(key)
	}

	path := filepath.Join(t.TempDir(), ".env")
	content := "STORE_DRIVER=memory\nLIST_LIMIT=25\nWHATSAPP_TOKEN=tok\nWHATSAPP_PHONE_NUMBER_ID=123\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Cleanup(func() {
		for _, key := range []string{"STORE_DRIVER", "LIST_LIMIT", "WHATSAPP_TOKEN", "WHATSAPP_PHONE_NUMBER_ID"} {
			os.Unsetenv(key)
		}
	})

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store.Driver != StoreMemory {
		t.Errorf("expected memory driver, got %s", cfg.Store.Driver)
	}
	if cfg.Inspections.ListLimit != 25 {
		t.Errorf("expected list limit 25, got %d", cfg.Inspections.ListLimit)
	}
	if !cfg.WhatsApp.Enabled() {
		t.Errorf("expected WhatsApp to be enabled")
	}
}

func TestLoadRejectsBadListLimit(t *testing.T) {
	clearEnv(t)
	t.Setenv("LIST_LIMIT", "many")

	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil || !strings.Contains(err.Error(), "LIST_LIMIT") {
		t.Fatalf("expected LIST_LIMIT error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:      ServerConfig{Port: "8080"},
			Store:       StoreConfig{Driver: StoreMemory},
			WhatsApp:    WhatsAppConfig{BaseURL: "https://graph.facebook.com", APIVersion: "v20.0"},
			Reporting:   ReportingConfig{CronSchedule: "0 8 * * MON", Timezone: "UTC"},
			Inspections: InspectionsConfig{ListLimit: 50},
		}
	}

	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"unknown driver", func(c *Config) { c.Store.Driver = "postgres" }, "STORE_DRIVER"},
		{"mongo without uri", func(c *Config) { c.Store.Driver = StoreMongoDB; c.MongoDB.DBName = "qc" }, "MONGODB_URI"},
		{"token without phone", func(c *Config) { c.WhatsApp.AccessToken = "tok" }, "WHATSAPP_PHONE_NUMBER_ID"},
		{"half sheets config", func(c *Config) { c.Sheets.SpreadsheetID = "sheet" }, "GOOGLE_SHEETS_CREDENTIALS_PATH"},
		{"bad timezone", func(c *Config) { c.Reporting.Timezone = "Mars/Olympus" }, "TIMEZONE"},
		{"limit too large", func(c *Config) { c.Inspections.ListLimit = 500 }, "LIST_LIMIT"},
		{"missing port", func(c *Config) { c.Server.Port = "" }, "APP_PORT"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error mentioning %s, got %v", tc.wantErr, err)
			}
		})
	}
}
