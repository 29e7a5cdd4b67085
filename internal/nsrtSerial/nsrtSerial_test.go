package nsrtSerial

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial"
	"go.uber.org/zap/zaptest"
)

// fakePort only implements what NsrtSerial touches, the embedded nil Port
// panics on anything else.
type fakePort struct {
	serial.Port

	timeout  time.Duration
	resets   int
	written  bytes.Buffer
	maxWrite int
	writeErr error
	chunks   [][]byte
	readErr  error
}

func (f *fakePort) SetReadTimeout(t time.Duration) error {
	f.timeout = t
	return nil
}

func (f *fakePort) ResetInputBuffer() error {
	f.resets++
	return nil
}

func (f *fakePort) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	if f.maxWrite > 0 && len(p) > f.maxWrite {
		p = p[:f.maxWrite]
	}
	return f.written.Write(p)
}

func (f *fakePort) Read(p []byte) (int, error) {
	if f.readErr != nil {
		return 0, f.readErr
	}
	if len(f.chunks) == 0 {
		return 0, nil
	}
	n := copy(p, f.chunks[0])
	f.chunks[0] = f.chunks[0][n:]
	if len(f.chunks[0]) == 0 {
		f.chunks = f.chunks[1:]
	}
	return n, nil
}

func TestNewConfiguresPort(t *testing.T) {
	port := &fakePort{}
	_, err := newNsrtSerial(port, "/dev/ttyACM0", Options{BaudRate: 115200, ReadTimeout: 2 * time.Second}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, port.timeout)
	assert.Equal(t, 1, port.resets)

	port = &fakePort{}
	_, err = newNsrtSerial(port, "/dev/ttyACM0", Options{BaudRate: 115200}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, serial.NoTimeout, port.timeout)
}

func TestWriteMessageWritesEverything(t *testing.T) {
	port := &fakePort{maxWrite: 5}
	s, err := newNsrtSerial(port, "test", Options{}, zaptest.NewLogger(t))
	require.NoError(t, err)

	frame := []byte{0x20, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 1}
	require.NoError(t, s.WriteMessage(frame))
	assert.Equal(t, frame, port.written.Bytes())
}

func TestWriteMessagePropagatesError(t *testing.T) {
	port := &fakePort{writeErr: errors.New("device gone")}
	s, err := newNsrtSerial(port, "test", Options{}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.EqualError(t, s.WriteMessage([]byte{1, 2, 3}), "device gone")
}

func TestReadExactlyAssemblesChunks(t *testing.T) {
	port := &fakePort{chunks: [][]byte{{1, 2}, {3}, {4, 5, 6}}}
	s, err := newNsrtSerial(port, "test", Options{}, zaptest.NewLogger(t))
	require.NoError(t, err)

	got, err := s.ReadExactly(4)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, got)

	got, err = s.ReadExactly(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{5, 6}, got)
}

func TestReadExactlyTimeout(t *testing.T) {
	port := &fakePort{chunks: [][]byte{{1, 2}}}
	s, err := newNsrtSerial(port, "test", Options{ReadTimeout: time.Second}, zaptest.NewLogger(t))
	require.NoError(t, err)

	_, err = s.ReadExactly(4)
	assert.ErrorIs(t, err, ErrShortRead)
	assert.Contains(t, err.Error(), "got 2 of 4 bytes")
}

func TestReadExactlyPropagatesError(t *testing.T) {
	readErr := errors.New("port closed")
	port := &fakePort{readErr: readErr}
	s, err := newNsrtSerial(port, "test", Options{}, zaptest.NewLogger(t))
	require.NoError(t, err)

	_, err = s.ReadExactly(1)
	assert.ErrorIs(t, err, readErr)
}
