package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	FilePath   string
	Level      string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	// the TUI owns stdout while it runs
	Stdout bool
}

func NewLogger(opts Options) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	logFile := &lumberjack.Logger{
		Filename:   opts.FilePath,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
	}

	encoderConfig := zap.NewDevelopmentConfig()

	encoder := zapcore.NewConsoleEncoder(encoderConfig.EncoderConfig)

	cores := []zapcore.Core{
		zapcore.NewCore(
			encoder,
			zapcore.AddSync(logFile),
			level,
		),
	}

	if opts.Stdout {
		cores = append(cores, zapcore.NewCore(
			encoder,
			zapcore.AddSync(os.Stdout),
			level,
		))
	}

	logger := zap.New(
		zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.WarnLevel),
		zap.Development(),
	)

	return logger, nil
}
