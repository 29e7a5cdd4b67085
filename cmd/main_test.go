package main

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"UCLA-Rocket-Project/NSRT/internal/commander"
	"UCLA-Rocket-Project/NSRT/internal/config"
	"UCLA-Rocket-Project/NSRT/internal/globals"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// ackingPort acknowledges writes and answers reads from a fixed table.
type ackingPort struct {
	commands []uint32
	ack      byte
	reads    map[uint32][]byte
	reply    []byte
}

func (p *ackingPort) WriteMessage(message []byte) error {
	command := binary.LittleEndian.Uint32(message[0:4])
	count := binary.LittleEndian.Uint32(message[8:12])
	p.commands = append(p.commands, command)

	if command&globals.DIRECTION_IN != 0 {
		p.reply = make([]byte, count)
		copy(p.reply, p.reads[command])
		return nil
	}
	p.reply = []byte{p.ack}
	return nil
}

func (p *ackingPort) ReadExactly(n int) ([]byte, error) {
	return p.reply[:n], nil
}

func TestProvisionWritesConfiguredFields(t *testing.T) {
	port := &ackingPort{ack: globals.ACK}
	channel := commander.NewChannel(port, nil)

	err := provision(channel, config.InstrumentConfig{
		Weighting:         "DB_Z",
		SamplingFrequency: 48000,
		TimeConstant:      0.125,
		UserID:            "bench-3",
	}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Equal(t, []uint32{
		globals.CMD_WRITE_WEIGHTING,
		globals.CMD_WRITE_FS,
		globals.CMD_WRITE_TAU,
		globals.CMD_WRITE_USER_ID,
	}, port.commands)
}

func TestProvisionSkipsUnsetFields(t *testing.T) {
	port := &ackingPort{ack: globals.ACK}
	channel := commander.NewChannel(port, nil)

	require.NoError(t, provision(channel, config.InstrumentConfig{SamplingFrequency: 32000}, zaptest.NewLogger(t)))
	assert.Equal(t, []uint32{globals.CMD_WRITE_FS}, port.commands)
}

func TestProvisionStopsOnNak(t *testing.T) {
	port := &ackingPort{ack: 0x15}
	channel := commander.NewChannel(port, nil)

	err := provision(channel, config.InstrumentConfig{Weighting: "DB_A", UserID: "x"}, zaptest.NewLogger(t))
	assert.ErrorIs(t, err, commander.ErrNegativeAck)
	assert.Equal(t, []uint32{globals.CMD_WRITE_WEIGHTING}, port.commands)
}

func TestPrintInfo(t *testing.T) {
	f32 := func(v float32) []byte { return binary.LittleEndian.AppendUint32(nil, math.Float32bits(v)) }
	port := &ackingPort{reads: map[uint32][]byte{
		globals.CMD_READ_MODEL:            []byte("NSRT_mk3_Dev_Audio"),
		globals.CMD_READ_CALIBRATION_DATE: binary.LittleEndian.AppendUint64(nil, globals.SECONDS_FROM_1904_TO_1970+1700000000),
		globals.CMD_READ_MANUFACTURE_DATE: binary.LittleEndian.AppendUint64(nil, globals.SECONDS_FROM_1904_TO_1970),
		globals.CMD_READ_WEIGHTING:        {byte(commander.DB_C)},
		globals.CMD_READ_FS:               binary.LittleEndian.AppendUint16(nil, 48000),
		globals.CMD_READ_LEVEL:            f32(51.25),
	}}

	var out bytes.Buffer
	require.NoError(t, printInfo(commander.NewChannel(port, nil), &out))

	assert.Contains(t, out.String(), "model:              NSRT_mk3_Dev_Audio")
	assert.Contains(t, out.String(), "calibration date:   2023-11-14 22:13:20")
	assert.Contains(t, out.String(), "manufacture date:   1970-01-01 00:00:00")
	assert.Contains(t, out.String(), "weighting:          DB_C")
	assert.Contains(t, out.String(), "sampling frequency: 48000 Hz")
	assert.Contains(t, out.String(), "level:              51.25 dB")
}
