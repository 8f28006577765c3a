package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Scan    ScanConfig    `yaml:"scan" envconfig:"SCAN"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" validate:"min=0,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps" envconfig:"RATE_LIMIT_RPS"`
	RateLimitBurst  int           `yaml:"rate_limit_burst" envconfig:"RATE_LIMIT_BURST"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"omitempty,oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"omitempty,oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"omitempty,oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// ScanConfig contains the outlier scan configuration
type ScanConfig struct {
	// DataDir is the directory scanned for CSV/XLSX price files.
	DataDir string `yaml:"data_dir" envconfig:"DATA_DIR" validate:"required"`
	// ReportDir receives the generated reports. Empty means reports are
	// written next to their input files, matching the original tool.
	ReportDir string `yaml:"report_dir" envconfig:"REPORT_DIR"`
	// SampleSize is the number of peer points drawn per evaluated row.
	SampleSize int `yaml:"sample_size" envconfig:"SAMPLE_SIZE" validate:"min=1"`
	// Threshold is the outlier boundary in sample standard deviations.
	Threshold float64 `yaml:"threshold" envconfig:"THRESHOLD" validate:"gt=0"`
	// Workers bounds how many input files are processed concurrently.
	Workers int `yaml:"workers" envconfig:"WORKERS" validate:"min=1"`
	// Schedule is an optional cron expression for periodic re-scans in
	// server mode, e.g. "@every 1h" or "0 18 * * MON-FRI".
	Schedule string `yaml:"schedule" envconfig:"SCHEDULE"`
}

// Default values applied for fields neither the environment nor the
// config file set.
const (
	DefaultPort        = 8080
	DefaultSampleSize  = 30
	DefaultThreshold   = 2.0
	DefaultScanWorkers = 4
)

// Load loads configuration from an optional YAML file and environment
// variables (PRICESCAN_ prefix). Environment values override file values;
// defaults fill whatever remains unset.
func Load() (*Config, error) {
	return LoadFromFile(configFilePath())
}

// LoadFromFile is Load with an explicit config file path. A missing file
// is not an error; the file is optional.
func LoadFromFile(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	if err := envconfig.Process("PRICESCAN", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// configFilePath returns the config file location, overridable via
// PRICESCAN_CONFIG.
func configFilePath() string {
	if path := os.Getenv("PRICESCAN_CONFIG"); path != "" {
		return path
	}
	return "pricescan.yaml"
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 60 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 30 * time.Second
	}
	if c.Server.RateLimitRPS == 0 {
		c.Server.RateLimitRPS = 10
	}
	if c.Server.RateLimitBurst == 0 {
		c.Server.RateLimitBurst = 20
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "console"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/pricescan.log"
	}

	if c.Scan.DataDir == "" {
		c.Scan.DataDir = "data"
	}
	if c.Scan.SampleSize == 0 {
		c.Scan.SampleSize = DefaultSampleSize
	}
	if c.Scan.Threshold == 0 {
		c.Scan.Threshold = DefaultThreshold
	}
	if c.Scan.Workers == 0 {
		c.Scan.Workers = DefaultScanWorkers
	}
}

// Validate checks the configuration using struct tags.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	return nil
}
