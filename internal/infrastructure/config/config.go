// Package config loads the billing settings from config.yaml, with
// SHRIMP_* and LOG_* environment variables filling anything the file leaves
// out (or standing in for the file when there is none):
//
//	cfg := config.LoadOrEnv()
//	store, err := storage.Open(cfg.Storage)
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Print formats.
const (
	PrintHTML = "html"
	PrintPDF  = "pdf"
)

// Config is the full set of settings.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Assets  AssetsConfig  `yaml:"assets"`
	Printer PrinterConfig `yaml:"printer"`
	Logging LoggingConfig `yaml:"logging"`
}

// StorageConfig selects the state store and, for SQLite, its file.
type StorageConfig struct {
	Driver       string `yaml:"driver"`
	DatabasePath string `yaml:"database_path"`
}

// AssetsConfig points at the catalog seed file used when no catalog has been
// saved yet.
type AssetsConfig struct {
	SeedFile string `yaml:"seed_file"`
}

// PrinterConfig controls where and how bills are printed.
type PrinterConfig struct {
	Format    string `yaml:"format"`
	OutputDir string `yaml:"output_dir"`
	ChromeBin string `yaml:"chrome_bin"` // optional, rod downloads a browser when empty
}

// LoggingConfig picks the slog level and handler format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads and parses the config file. Missing values take the
// environment defaults.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// ${SHRIMP_DB_PATH} style references are resolved before parsing
	expanded := os.ExpandEnv(string(raw))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.applyDefaults(LoadFromEnv())
	return &cfg, nil
}

// LoadFromEnv builds a Config from the environment and built-in defaults.
func LoadFromEnv() *Config {
	return &Config{
		Storage: StorageConfig{
			Driver:       getEnv("SHRIMP_STORE", DriverSQLite),
			DatabasePath: getEnv("SHRIMP_DB_PATH", "shrimp_bill.db"),
		},
		Assets: AssetsConfig{
			SeedFile: getEnv("SHRIMP_ASSET_FILE", "Asset.txt"),
		},
		Printer: PrinterConfig{
			Format:    getEnv("SHRIMP_PRINT_FORMAT", PrintHTML),
			OutputDir: getEnv("SHRIMP_PRINT_DIR", "bills"),
			ChromeBin: os.Getenv("SHRIMP_CHROME_BIN"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}
}

// LoadOrEnv reads ./config.yaml when present and the environment otherwise.
func LoadOrEnv() *Config {
	return LoadOrEnvWithPath("config.yaml")
}

// LoadOrEnvWithPath is LoadOrEnv with an explicit file.
func LoadOrEnvWithPath(path string) *Config {
	if cfg, err := Load(path); err == nil {
		return cfg
	}
	return LoadFromEnv()
}

func (c *Config) applyDefaults(d *Config) {
	setDefault(&c.Storage.Driver, d.Storage.Driver)
	setDefault(&c.Storage.DatabasePath, d.Storage.DatabasePath)
	setDefault(&c.Assets.SeedFile, d.Assets.SeedFile)
	setDefault(&c.Printer.Format, d.Printer.Format)
	setDefault(&c.Printer.OutputDir, d.Printer.OutputDir)
	setDefault(&c.Printer.ChromeBin, d.Printer.ChromeBin)
	setDefault(&c.Logging.Level, d.Logging.Level)
	setDefault(&c.Logging.Format, d.Logging.Format)
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("storage.driver: unknown driver %q", c.Storage.Driver)
	}
	switch c.Printer.Format {
	case PrintHTML, PrintPDF:
	default:
		return fmt.Errorf("printer.format: unknown format %q", c.Printer.Format)
	}
	return nil
}

func setDefault(field *string, fallback string) {
	if *field == "" {
		*field = fallback
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
