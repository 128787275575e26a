package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/iwvelando/unit-analytics/internal/config"
	"github.com/iwvelando/unit-analytics/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Server timeout defaults.
const (
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

// Environment variables that override the server config file.
const (
	AddressEnvVar       = "UNIT_ANALYTICS_ADDRESS"
	MaxUploadSizeEnvVar = "UNIT_ANALYTICS_MAX_UPLOAD_SIZE"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address         string                  `yaml:"address"`
	MaxUploadSize   string                  `yaml:"maxUploadSize"`
	ReadTimeout     string                  `yaml:"readTimeout"`
	WriteTimeout    string                  `yaml:"writeTimeout"`
	ShutdownTimeout string                  `yaml:"shutdownTimeout"`
	Logging         config.LoggingConfig    `yaml:"logging"`
	Formatting      config.FormattingConfig `yaml:"formatting"`

	uploadSizeBytes int64
	readTimeout     time.Duration
	writeTimeout    time.Duration
	shutdownTimeout time.Duration
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Address:         constants.DefaultServerAddress,
		MaxUploadSize:   fmt.Sprintf("%d", constants.DefaultMaxUploadSizeBytes),
		uploadSizeBytes: constants.DefaultMaxUploadSizeBytes,
		readTimeout:     DefaultReadTimeout,
		writeTimeout:    DefaultWriteTimeout,
		shutdownTimeout: DefaultShutdownTimeout,
	}
}

// LoadConfig loads the server configuration from YAML and then applies
// environment overrides. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read server config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse server config: %w", err)
			}
		}
	}

	cfg.applyEnv(os.LookupEnv)

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(AddressEnvVar); ok && strings.TrimSpace(v) != "" {
		c.Address = strings.TrimSpace(v)
	}
	if v, ok := lookup(MaxUploadSizeEnvVar); ok && strings.TrimSpace(v) != "" {
		c.MaxUploadSize = strings.TrimSpace(v)
	}
}

// UploadSizeBytes returns the configured upload size in bytes.
func (c *Config) UploadSizeBytes() int64 {
	if c == nil || c.uploadSizeBytes <= 0 {
		return constants.DefaultMaxUploadSizeBytes
	}
	return c.uploadSizeBytes
}

// SetUploadSizeBytes overrides the configured upload size.
func (c *Config) SetUploadSizeBytes(size int64) {
	if size > 0 {
		c.uploadSizeBytes = size
		c.MaxUploadSize = fmt.Sprintf("%d", size)
	}
}

// Timeouts returns the read, write and shutdown timeouts.
func (c *Config) Timeouts() (read, write, shutdown time.Duration) {
	return c.readTimeout, c.writeTimeout, c.shutdownTimeout
}

func (c *Config) normalize() error {
	if strings.TrimSpace(c.Address) == "" {
		c.Address = constants.DefaultServerAddress
	}

	bytes, err := ParseSize(c.MaxUploadSize)
	if err != nil {
		return err
	}
	if bytes <= 0 {
		bytes = constants.DefaultMaxUploadSizeBytes
	}
	c.uploadSizeBytes = bytes

	timeouts := []struct {
		name     string
		value    string
		fallback time.Duration
		target   *time.Duration
	}{
		{"readTimeout", c.ReadTimeout, DefaultReadTimeout, &c.readTimeout},
		{"writeTimeout", c.WriteTimeout, DefaultWriteTimeout, &c.writeTimeout},
		{"shutdownTimeout", c.ShutdownTimeout, DefaultShutdownTimeout, &c.shutdownTimeout},
	}
	for _, t := range timeouts {
		d, err := parseTimeout(t.value, t.fallback)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", t.name, err)
		}
		*t.target = d
	}
	return nil
}

func parseTimeout(value string, fallback time.Duration) (time.Duration, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return fallback, nil
	}
	return d, nil
}

// ParseSize converts a human-friendly byte string (e.g., "256K", "10M") into bytes.
func ParseSize(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return constants.DefaultMaxUploadSizeBytes, nil
	}

	upper := strings.ToUpper(trimmed)
	idx := len(upper)
	for idx > 0 && !unicode.IsDigit(rune(upper[idx-1])) {
		idx--
	}
	if idx == 0 {
		return 0, fmt.Errorf("invalid size: %s", value)
	}
	numPart := strings.TrimSpace(upper[:idx])
	unitPart := strings.TrimSpace(upper[idx:])

	n, err := strconv.ParseInt(numPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}

	var multiplier int64
	switch unitPart {
	case "", "B":
		multiplier = 1
	case "K", "KB":
		multiplier = 1024
	case "M", "MB":
		multiplier = 1024 * 1024
	case "G", "GB":
		multiplier = 1024 * 1024 * 1024
	default:
		return 0, fmt.Errorf("unsupported size unit %q", unitPart)
	}

	result := n * multiplier
	if result < 0 {
		return 0, fmt.Errorf("size overflow for value %s", value)
	}
	return result, nil
}
