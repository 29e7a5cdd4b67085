package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"UCLA-Rocket-Project/NSRT/internal/commander"
	"UCLA-Rocket-Project/NSRT/internal/config"
	"UCLA-Rocket-Project/NSRT/internal/globals"
	"UCLA-Rocket-Project/NSRT/internal/logger"
	"UCLA-Rocket-Project/NSRT/internal/monitor"
	"UCLA-Rocket-Project/NSRT/internal/nsrtSerial"
	"UCLA-Rocket-Project/NSRT/internal/terminal"

	"go.uber.org/zap"
)

const DEFAULT_CONFIG_PATH = "./configs/nsrt.yml"

func main() {
	configPath := flag.String("config", DEFAULT_CONFIG_PATH, "path to the yaml config")
	portName := flag.String("port", "", "serial port of the instrument, overrides serial.port")
	info := flag.Bool("info", false, "print identity, settings and a measurement, then exit")
	flag.Parse()

	if err := run(*configPath, *portName, *info); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, portName string, info bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if portName != "" {
		cfg.Serial.Port = portName
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", configPath, err)
	}

	log, err := logger.NewLogger(logger.Options{
		FilePath:   cfg.Log.FilePath,
		Level:      cfg.Log.Level,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Stdout:     info,
	})
	if err != nil {
		return err
	}
	defer log.Sync()

	port, err := nsrtSerial.Open(cfg.Serial.Port, nsrtSerial.Options{
		BaudRate:    cfg.Serial.BaudRate,
		ReadTimeout: cfg.Serial.ReadTimeout,
	}, log)
	if err != nil {
		return err
	}
	defer port.Close()

	var opts []commander.Option
	if cfg.Metrics.Enabled {
		metrics := monitor.NewMetrics(log)
		server := metrics.Serve(cfg.Metrics.Listen)
		defer server.Close()
		opts = append(opts, commander.WithObserver(metrics))
	}

	channel := commander.NewChannel(port, log, opts...)

	if err := provision(channel, cfg.Instrument, log); err != nil {
		return err
	}

	if info {
		return printInfo(channel, os.Stdout)
	}

	return terminal.StartApplication(channel, cfg.Serial.Port, log)
}

func printInfo(channel *commander.Channel, out io.Writer) error {
	id, err := channel.ReadIdentity()
	if err != nil {
		return err
	}
	settings, err := channel.ReadSettings()
	if err != nil {
		return err
	}
	m, err := channel.ReadMeasurement()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "model:              %s\n", id.Model)
	fmt.Fprintf(out, "serial number:      %s\n", id.SerialNumber)
	fmt.Fprintf(out, "firmware revision:  %s\n", id.FirmwareRevision)
	fmt.Fprintf(out, "calibration date:   %s\n", commander.DeviceDate(id.CalibrationDate))
	fmt.Fprintf(out, "manufacture date:   %s\n", commander.DeviceDate(id.ManufactureDate))
	fmt.Fprintf(out, "user id:            %s\n", id.UserID)
	fmt.Fprintf(out, "weighting:          %s\n", settings.Weighting)
	fmt.Fprintf(out, "sampling frequency: %d Hz\n", settings.SamplingFrequency)
	fmt.Fprintf(out, "time constant:      %g s\n", settings.TimeConstant)
	fmt.Fprintf(out, "level:              %.2f dB\n", m.Level)
	fmt.Fprintf(out, "leq:                %.2f dB\n", m.Leq)
	fmt.Fprintf(out, "temperature:        %.2f degC\n", m.Temperature)
	return nil
}

// provision writes the configured settings, stopping at the first one the
// instrument does not acknowledge.
func provision(channel *commander.Channel, inst config.InstrumentConfig, log *zap.Logger) error {
	if inst.Weighting != "" {
		w, err := commander.ParseWeighting(inst.Weighting)
		if err != nil {
			return err
		}
		ok, err := channel.WriteWeighting(w)
		if err := commander.RequireAck("write weighting", globals.CMD_WRITE_WEIGHTING, ok, err); err != nil {
			return err
		}
		log.Info("Weighting set", zap.Stringer("weighting", w))
	}

	if inst.SamplingFrequency != 0 {
		ok, err := channel.WriteSamplingFrequency(inst.SamplingFrequency)
		if err := commander.RequireAck("write sampling frequency", globals.CMD_WRITE_FS, ok, err); err != nil {
			return err
		}
		log.Info("Sampling frequency set", zap.Int("hz", inst.SamplingFrequency))
	}

	if inst.TimeConstant > 0 {
		ok, err := channel.WriteTimeConstant(inst.TimeConstant)
		if err := commander.RequireAck("write time constant", globals.CMD_WRITE_TAU, ok, err); err != nil {
			return err
		}
		log.Info("Time constant set", zap.Float32("seconds", inst.TimeConstant))
	}

	if inst.UserID != "" {
		ok, err := channel.WriteUserID(inst.UserID)
		if err := commander.RequireAck("write user id", globals.CMD_WRITE_USER_ID, ok, err); err != nil {
			return err
		}
		log.Info("User id set", zap.String("userID", inst.UserID))
	}

	return nil
}
