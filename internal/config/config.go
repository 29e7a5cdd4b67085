package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"UCLA-Rocket-Project/NSRT/internal/commander"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

type SerialConfig struct {
	Port        string        `yaml:"port"`      // "/dev/ttyACM0" or "COM12"
	BaudRate    int           `yaml:"baud_rate"` // the instrument is a USB CDC device, any rate works
	ReadTimeout time.Duration `yaml:"read_timeout"`
}

type LogConfig struct {
	FilePath   string `yaml:"file_path"`
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// InstrumentConfig is written to the instrument at startup. Zero values are
// left untouched.
type InstrumentConfig struct {
	Weighting         string  `yaml:"weighting"` // DB_C, DB_A, DB_Z
	SamplingFrequency int     `yaml:"sampling_frequency"`
	TimeConstant      float32 `yaml:"time_constant"`
	UserID            string  `yaml:"user_id"`
}

type Config struct {
	Serial     SerialConfig     `yaml:"serial"`
	Log        LogConfig        `yaml:"log"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Instrument InstrumentConfig `yaml:"instrument"`
}

// Load reads path on top of the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("cannot parse yaml %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	var err error

	if c.Serial.Port == "" {
		err = multierr.Append(err, errors.New("serial.port is required"))
	}
	if c.Serial.BaudRate <= 0 {
		err = multierr.Append(err, fmt.Errorf("serial.baud_rate must be positive, got %d", c.Serial.BaudRate))
	}
	if c.Serial.ReadTimeout < 0 {
		err = multierr.Append(err, fmt.Errorf("serial.read_timeout must not be negative, got %s", c.Serial.ReadTimeout))
	}
	if c.Log.FilePath == "" {
		err = multierr.Append(err, errors.New("log.file_path is required"))
	}
	if c.Metrics.Enabled && c.Metrics.Listen == "" {
		err = multierr.Append(err, errors.New("metrics.listen is required when metrics are enabled"))
	}

	inst := c.Instrument
	if inst.Weighting != "" {
		if _, werr := commander.ParseWeighting(inst.Weighting); werr != nil {
			err = multierr.Append(err, fmt.Errorf("instrument.weighting: %w", werr))
		}
	}
	if inst.SamplingFrequency != 0 {
		if ferr := commander.ValidateSamplingFrequency(inst.SamplingFrequency); ferr != nil {
			err = multierr.Append(err, fmt.Errorf("instrument.sampling_frequency: %w", ferr))
		}
	}
	if inst.TimeConstant < 0 {
		err = multierr.Append(err, fmt.Errorf("instrument.time_constant must be positive, got %g", inst.TimeConstant))
	}
	if inst.UserID != "" {
		if uerr := commander.ValidateUserID(inst.UserID); uerr != nil {
			err = multierr.Append(err, fmt.Errorf("instrument.user_id: %w", uerr))
		}
	}

	return err
}
