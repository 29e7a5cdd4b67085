package config

import (
	"time"
)

func Defaults() *Config {

	return &Config{
		Serial: SerialConfig{
			Port:        "/dev/ttyACM0",
			BaudRate:    115200,
			ReadTimeout: 2 * time.Second,
		},

		Log: LogConfig{
			FilePath:   "NSRT.logs",
			Level:      "debug",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},

		Metrics: MetricsConfig{
			Enabled: false,
			Listen:  ":9105",
		},
	}
}
