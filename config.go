package dirwatch

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// validate is the shared validator instance.
var validate = validator.New()

// Config is the file form of a Watcher's settings.
//
//	directories:
//	  - ./lib
//	  - ./src
//	settle_delay: 100ms
//	stop_timeout: 60s
//	start_delay: 0s
//	dispatch_timeout: 0s
//	error_history_size: 16
//
// Omitted durations keep their defaults.
type Config struct {
	Directories      []string      `yaml:"directories" validate:"required,min=1,dive,required"`
	SettleDelay      time.Duration `yaml:"settle_delay" validate:"gte=0"`
	StopTimeout      time.Duration `yaml:"stop_timeout" validate:"gt=0"`
	StartDelay       time.Duration `yaml:"start_delay" validate:"gte=0"`
	DispatchTimeout  time.Duration `yaml:"dispatch_timeout" validate:"gte=0"`
	ErrorHistorySize int           `yaml:"error_history_size" validate:"gte=0,lte=4096"`
}

// DefaultConfig returns a Config with default durations and no directories.
func DefaultConfig() Config {
	return Config{
		SettleDelay:      DefaultSettleDelay,
		StopTimeout:      DefaultStopTimeout,
		ErrorHistorySize: DefaultErrorHistorySize,
	}
}

// LoadConfig reads and validates a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML over DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal failed: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// Options converts the configuration to Watcher options.
func (c Config) Options() []Option {
	return []Option{
		WithSettleDelay(c.SettleDelay),
		WithStopTimeout(c.StopTimeout),
		WithDispatchTimeout(c.DispatchTimeout),
		WithErrorHistorySize(c.ErrorHistorySize),
	}
}

// NewFromConfig creates a Watcher for every configured directory. Unlike
// AddDirectories, every directory must register: a configuration naming a
// directory that cannot be watched is rejected. Extra options are applied
// after the configuration's own.
func NewFromConfig(cfg Config, opts ...Option) (*Watcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	w, err := New(cfg.Directories[0], append(cfg.Options(), opts...)...)
	if err != nil {
		return nil, err
	}
	if err := w.AddDirectories(cfg.Directories[1:]...); err != nil {
		return nil, errors.Join(err, w.Stop())
	}
	return w, nil
}
