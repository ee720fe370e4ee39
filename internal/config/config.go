package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverSQLite    = "sqlite"
	DriverMemory    = "memory"
	DriverFirestore = "firestore"
)

// Transport modes.
const (
	TransportHTTP  = "http"
	TransportStdio = "stdio"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	Storage   StorageConfig   `yaml:"storage"`
	Admin     AdminConfig     `yaml:"admin"`
	Transport TransportConfig `yaml:"transport"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

type StorageConfig struct {
	Driver string `yaml:"driver"`
	Slot   string `yaml:"slot"`
	// QuotaBytes caps the serialized document size. Zero disables the cap.
	QuotaBytes int             `yaml:"quota_bytes"`
	Firestore  FirestoreConfig `yaml:"firestore"`
}

type FirestoreConfig struct {
	ProjectID          string `yaml:"project_id"`
	Collection         string `yaml:"collection"`
	ActivityCollection string `yaml:"activity_collection"`
}

type AdminConfig struct {
	PIN string `yaml:"pin"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "folio.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Storage: StorageConfig{
			Driver:     DriverSQLite,
			Slot:       "portfolio_data",
			QuotaBytes: 5 * 1024 * 1024,
			Firestore: FirestoreConfig{
				Collection:         "folio_slots",
				ActivityCollection: "folio_activity",
			},
		},
		Admin: AdminConfig{
			PIN: "1996",
		},
		Transport: TransportConfig{
			Mode: TransportHTTP,
		},
	}
}

// Load reads configuration from an optional YAML file and environment
// variables. path overrides FOLIO_CONFIG_PATH when non-empty.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("FOLIO_CONFIG_PATH")
	}
	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Transport.Mode = strings.ToLower(cfg.Transport.Mode)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if host := os.Getenv("FOLIO_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("FOLIO_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid FOLIO_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("FOLIO_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("FOLIO_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("FOLIO_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	if driver := os.Getenv("FOLIO_STORAGE_DRIVER"); driver != "" {
		cfg.Storage.Driver = driver
	}
	if slot := os.Getenv("FOLIO_STORAGE_SLOT"); slot != "" {
		cfg.Storage.Slot = slot
	}
	if quotaStr := os.Getenv("FOLIO_STORAGE_QUOTA_BYTES"); quotaStr != "" {
		quota, err := strconv.Atoi(quotaStr)
		if err != nil {
			return fmt.Errorf("invalid FOLIO_STORAGE_QUOTA_BYTES: %w", err)
		}
		cfg.Storage.QuotaBytes = quota
	}
	if project := os.Getenv("FOLIO_FIRESTORE_PROJECT"); project != "" {
		cfg.Storage.Firestore.ProjectID = project
	}
	if collection := os.Getenv("FOLIO_FIRESTORE_COLLECTION"); collection != "" {
		cfg.Storage.Firestore.Collection = collection
	}
	if pin := os.Getenv("FOLIO_ADMIN_PIN"); pin != "" {
		cfg.Admin.PIN = pin
	}
	if mode := os.Getenv("FOLIO_TRANSPORT"); mode != "" {
		cfg.Transport.Mode = mode
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite, DriverMemory:
	case DriverFirestore:
		if c.Storage.Firestore.ProjectID == "" {
			return fmt.Errorf("storage.firestore.project_id is required for the firestore driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	switch strings.ToLower(c.Transport.Mode) {
	case TransportHTTP, TransportStdio:
	default:
		return fmt.Errorf("unknown transport mode %q", c.Transport.Mode)
	}

	if c.Storage.QuotaBytes < 0 {
		return fmt.Errorf("storage.quota_bytes must not be negative")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if len(c.Admin.PIN) != 4 || strings.Trim(c.Admin.PIN, "0123456789") != "" {
		return fmt.Errorf("admin.pin must be exactly 4 digits")
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
