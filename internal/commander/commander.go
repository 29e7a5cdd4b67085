package commander

import (
	"encoding/binary"
	"sync"
	"time"

	"UCLA-Rocket-Project/NSRT/internal/globals"

	"go.uber.org/zap"
)

const ACK_REPLY_SIZE = 1

// SerialReaderWriter is the transport the channel talks over. It must already
// be open and configured. WriteMessage writes the whole buffer or fails,
// ReadExactly blocks until n bytes arrived or fails.
type SerialReaderWriter interface {
	WriteMessage(message []byte) error
	ReadExactly(n int) ([]byte, error)
}

// Observer is told about every command the channel executes.
type Observer interface {
	ObserveCommand(command uint32, elapsed time.Duration, err error)
}

// Channel executes request/reply exchanges with the instrument. The protocol
// has no request identifiers, so a reply always belongs to the last frame
// sent: the mutex keeps one exchange on the wire at a time.
type Channel struct {
	mu       sync.Mutex
	conn     SerialReaderWriter
	logger   *zap.Logger
	observer Observer
}

type Option func(*Channel)

func WithObserver(o Observer) Option {
	return func(c *Channel) {
		c.observer = o
	}
}

func NewChannel(conn SerialReaderWriter, logger *zap.Logger, opts ...Option) *Channel {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Channel{
		conn:   conn,
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func isRead(command uint32) bool {
	return command&globals.DIRECTION_IN == globals.DIRECTION_IN
}

// encodeFrame lays out command | address | count as little endian uint32s
// followed by the payload.
func encodeFrame(command, address, count uint32, payload []byte) []byte {
	frame := make([]byte, globals.HEADER_SIZE, globals.HEADER_SIZE+len(payload))
	binary.LittleEndian.PutUint32(frame[0:4], command)
	binary.LittleEndian.PutUint32(frame[4:8], address)
	binary.LittleEndian.PutUint32(frame[8:12], count)
	return append(frame, payload...)
}

// Execute sends one command frame and returns the reply. For read commands
// (bit 31 set) the reply is exactly count bytes, otherwise it is the single
// acknowledgment byte. Nothing is retried.
func (c *Channel) Execute(command, address, count uint32, payload []byte) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()
	reply, err := c.exchange(command, address, count, payload)
	if c.observer != nil {
		c.observer.ObserveCommand(command, time.Since(start), err)
	}
	return reply, err
}

func (c *Channel) exchange(command, address, count uint32, payload []byte) ([]byte, error) {
	frame := encodeFrame(command, address, count, payload)
	name := globals.CommandName(command)

	c.logger.Debug("Sending command frame",
		zap.String("command", name),
		zap.Uint32("address", address),
		zap.Uint32("count", count),
		zap.Binary("frame", frame),
	)

	if err := c.conn.WriteMessage(frame); err != nil {
		c.logger.Error("Error while trying to send command", zap.String("command", name), zap.Error(err))
		return nil, &CommandError{Op: "write", Command: command, Kind: ErrTransport, Err: err}
	}

	expected := ACK_REPLY_SIZE
	if isRead(command) {
		expected = int(count)
	}

	reply, err := c.conn.ReadExactly(expected)
	if err != nil {
		c.logger.Error("Error while waiting for reply", zap.String("command", name), zap.Int("expected", expected), zap.Error(err))
		return nil, &CommandError{Op: "read", Command: command, Kind: ErrTransport, Err: err}
	}
	if len(reply) != expected {
		c.logger.Error("Reply length mismatch", zap.String("command", name), zap.Int("expected", expected), zap.Int("got", len(reply)))
		return nil, &CommandError{Op: "read", Command: command, Kind: ErrTransport, Err: errShortReply(expected, len(reply))}
	}

	c.logger.Debug("Received reply", zap.String("command", name), zap.Binary("reply", reply))
	return reply, nil
}
