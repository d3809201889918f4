package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Backup  BackupConfig
	Logging LoggingConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// StorageConfig locates the record store file and the export artifacts it feeds.
type StorageConfig struct {
	DataDir string
}

// BackupConfig holds the optional scheduled snapshot settings.
type BackupConfig struct {
	Enabled      bool
	CronSchedule string
	Dir          string
}

// LoggingConfig holds logger options.
type LoggingConfig struct {
	Level string
}

// CSVPath returns the path of the record store file.
func (s StorageConfig) CSVPath() string {
	return filepath.Join(s.DataDir, "vehicle_status.csv")
}

// ExcelPath returns the fixed path of the spreadsheet artifact.
func (s StorageConfig) ExcelPath() string {
	return filepath.Join(s.DataDir, "vehicle_status.xlsx")
}

// PDFPath returns the fixed path of the document artifact.
func (s StorageConfig) PDFPath() string {
	return filepath.Join(s.DataDir, "vehicle_status.pdf")
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	dataDir := getenvWithDefault("DATA_DIR", "data")

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Storage: StorageConfig{
			DataDir: dataDir,
		},
		Backup: BackupConfig{
			Enabled:      os.Getenv("BACKUP_ENABLED") == "true",
			CronSchedule: getenvWithDefault("BACKUP_CRON_SCHEDULE", "0 2 * * *"),
			Dir:          getenvWithDefault("BACKUP_DIR", filepath.Join(dataDir, "backups")),
		},
		Logging: LoggingConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.Storage.DataDir == "" {
		return errors.New("DATA_DIR must be provided")
	}

	if c.Backup.Enabled {
		if c.Backup.CronSchedule == "" {
			return errors.New("BACKUP_CRON_SCHEDULE must be provided when backups are enabled")
		}
		if c.Backup.Dir == "" {
			return errors.New("BACKUP_DIR must be provided when backups are enabled")
		}
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
