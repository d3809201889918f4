package config

import (
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_PORT", "DATA_DIR", "BACKUP_ENABLED", "BACKUP_CRON_SCHEDULE", "BACKUP_DIR", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"server.port", cfg.Server.Port, "8080"},
		{"storage.data_dir", cfg.Storage.DataDir, "data"},
		{"backup.enabled", cfg.Backup.Enabled, false},
		{"backup.cron_schedule", cfg.Backup.CronSchedule, "0 2 * * *"},
		{"backup.dir", cfg.Backup.Dir, filepath.Join("data", "backups")},
		{"logging.level", cfg.Logging.Level, "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %v, want %v", tt.got, tt.expected)
			}
		})
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DATA_DIR", "/var/lib/fleettrack")
	t.Setenv("BACKUP_ENABLED", "true")
	t.Setenv("BACKUP_CRON_SCHEDULE", "30 1 * * *")
	t.Setenv("BACKUP_DIR", "/var/backups/fleettrack")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Storage.DataDir != "/var/lib/fleettrack" {
		t.Errorf("data dir = %q", cfg.Storage.DataDir)
	}
	if !cfg.Backup.Enabled {
		t.Error("backups should be enabled")
	}
	if cfg.Backup.CronSchedule != "30 1 * * *" {
		t.Errorf("cron schedule = %q", cfg.Backup.CronSchedule)
	}
	if cfg.Backup.Dir != "/var/backups/fleettrack" {
		t.Errorf("backup dir = %q", cfg.Backup.Dir)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q", cfg.Logging.Level)
	}
}

func TestStoragePaths(t *testing.T) {
	s := StorageConfig{DataDir: "data"}

	if got := s.CSVPath(); got != filepath.Join("data", "vehicle_status.csv") {
		t.Errorf("CSVPath() = %q", got)
	}
	if got := s.ExcelPath(); got != filepath.Join("data", "vehicle_status.xlsx") {
		t.Errorf("ExcelPath() = %q", got)
	}
	if got := s.PDFPath(); got != filepath.Join("data", "vehicle_status.pdf") {
		t.Errorf("PDFPath() = %q", got)
	}
}

func TestValidate(t *testing.T) {
	t.Run("missing data dir", func(t *testing.T) {
		cfg := &Config{Server: ServerConfig{Port: "8080"}}
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for empty DATA_DIR")
		}
	})

	t.Run("backup enabled without schedule", func(t *testing.T) {
		cfg := &Config{
			Server:  ServerConfig{Port: "8080"},
			Storage: StorageConfig{DataDir: "data"},
			Backup:  BackupConfig{Enabled: true, Dir: "backups"},
		}
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for empty BACKUP_CRON_SCHEDULE")
		}
	})
}
