/**
Wrapper around the regular serial package for the NSRT command protocol

This wrapper should:
1. Open the port the instrument enumerated as and configure it
2. Write complete command frames
3. Read back exactly as many bytes as the command expects
*/

package nsrtSerial

import (
	"errors"
	"fmt"
	"time"

	"go.bug.st/serial"
	"go.uber.org/zap"
)

var ErrShortRead = errors.New("short read")

type Options struct {
	BaudRate int
	// zero blocks until the bytes arrive
	ReadTimeout time.Duration
}

type NsrtSerial struct {
	serial.Port

	logger   *zap.Logger
	portName string
}

func Open(portName string, opts Options, logger *zap.Logger) (*NsrtSerial, error) {
	mode := &serial.Mode{
		BaudRate: opts.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		logger.Error("Error opening serial port", zap.Error(err), zap.String("portName", portName))
		return nil, fmt.Errorf("open %s: %w", portName, err)
	}

	s, err := newNsrtSerial(port, portName, opts, logger)
	if err != nil {
		_ = port.Close()
		return nil, err
	}

	logger.Info("Opened serial port", zap.String("portName", portName), zap.Int("baudRate", opts.BaudRate), zap.Duration("readTimeout", opts.ReadTimeout))
	return s, nil
}

func newNsrtSerial(port serial.Port, portName string, opts Options, logger *zap.Logger) (*NsrtSerial, error) {
	timeout := serial.NoTimeout
	if opts.ReadTimeout > 0 {
		timeout = opts.ReadTimeout
	}
	if err := port.SetReadTimeout(timeout); err != nil {
		return nil, fmt.Errorf("set read timeout on %s: %w", portName, err)
	}

	// anything already buffered would be taken for the first reply
	if err := port.ResetInputBuffer(); err != nil {
		return nil, fmt.Errorf("reset input buffer on %s: %w", portName, err)
	}

	return &NsrtSerial{
		Port:     port,
		logger:   logger,
		portName: portName,
	}, nil
}

// WriteMessage writes the whole frame or returns the error that stopped it.
func (s *NsrtSerial) WriteMessage(message []byte) error {
	written := 0
	for written < len(message) {
		n, err := s.Write(message[written:])
		if err != nil {
			s.logger.Error("Error while trying to send message", zap.Error(err), zap.Int("bytesWritten", written))
			return err
		}
		written += n
	}

	s.logger.Debug("Wrote message to serial port", zap.Int("bytesWritten", written))
	return nil
}

// ReadExactly blocks until n bytes arrived. A read that returns nothing means
// the read timeout expired and is reported as ErrShortRead.
func (s *NsrtSerial) ReadExactly(n int) ([]byte, error) {
	buf := make([]byte, n)
	got := 0

	for got < n {
		m, err := s.Read(buf[got:])
		if err != nil {
			s.logger.Error("Error while trying to read reply", zap.Error(err), zap.Int("expected", n), zap.Int("got", got))
			return nil, err
		}
		if m == 0 {
			s.logger.Warn("Read timed out", zap.String("portName", s.portName), zap.Int("expected", n), zap.Int("got", got))
			return nil, fmt.Errorf("%w: got %d of %d bytes", ErrShortRead, got, n)
		}
		got += m
	}

	return buf, nil
}
