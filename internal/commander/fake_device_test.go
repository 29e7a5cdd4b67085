package commander

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"

	"UCLA-Rocket-Project/NSRT/internal/globals"
)

// fakeDevice behaves like an instrument on the other end of the serial line:
// it decodes every frame, updates its registers and queues the reply.
type fakeDevice struct {
	level       float32
	leq         float32
	temperature float32
	weighting   byte
	fs          uint16
	tau         float32
	model       string
	serial      string
	fwRev       string
	doc         uint64
	dob         uint64
	userID      string

	nak    bool
	writes int
	frames [][]byte
	reply  bytes.Buffer
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		level:       45.5,
		leq:         42.25,
		temperature: 23.5,
		weighting:   byte(DB_A),
		fs:          globals.FS_48K,
		tau:         0.125,
		model:       "NSRT_mk3_Dev_Audio",
		serial:      "SN-000123",
		fwRev:       "1.4.2",
		doc:         globals.SECONDS_FROM_1904_TO_1970 + 1700000000,
		dob:         globals.SECONDS_FROM_1904_TO_1970 + 1600000000,
	}
}

func textField(s string) []byte {
	field := make([]byte, globals.TEXT_FIELD_SIZE)
	copy(field, s)
	return field
}

func float32Bytes(v float32) []byte {
	return binary.LittleEndian.AppendUint32(nil, math.Float32bits(v))
}

func (d *fakeDevice) WriteMessage(message []byte) error {
	d.writes++
	d.frames = append(d.frames, append([]byte(nil), message...))

	if len(message) < globals.HEADER_SIZE {
		return errors.New("short frame")
	}
	command := binary.LittleEndian.Uint32(message[0:4])
	payload := message[globals.HEADER_SIZE:]

	switch command {
	case globals.CMD_READ_LEVEL:
		d.reply.Write(float32Bytes(d.level))
	case globals.CMD_READ_LEQ:
		d.reply.Write(float32Bytes(d.leq))
		d.leq = 0
	case globals.CMD_READ_TEMPERATURE:
		d.reply.Write(float32Bytes(d.temperature))
	case globals.CMD_READ_WEIGHTING:
		d.reply.WriteByte(d.weighting)
	case globals.CMD_READ_FS:
		d.reply.Write(binary.LittleEndian.AppendUint16(nil, d.fs))
	case globals.CMD_READ_TAU:
		d.reply.Write(float32Bytes(d.tau))
	case globals.CMD_READ_MODEL:
		d.reply.Write(textField(d.model))
	case globals.CMD_READ_SERIAL_NUMBER:
		d.reply.Write(textField(d.serial))
	case globals.CMD_READ_FW_REV:
		d.reply.Write(textField(d.fwRev))
	case globals.CMD_READ_CALIBRATION_DATE:
		d.reply.Write(binary.LittleEndian.AppendUint64(nil, d.doc))
	case globals.CMD_READ_MANUFACTURE_DATE:
		d.reply.Write(binary.LittleEndian.AppendUint64(nil, d.dob))
	case globals.CMD_READ_USER_ID:
		d.reply.Write(textField(d.userID))
	case globals.CMD_WRITE_WEIGHTING:
		d.weighting = payload[0]
		d.ack()
	case globals.CMD_WRITE_FS:
		d.fs = binary.LittleEndian.Uint16(payload)
		d.ack()
	case globals.CMD_WRITE_TAU:
		d.tau = math.Float32frombits(binary.LittleEndian.Uint32(payload))
		d.ack()
	case globals.CMD_WRITE_USER_ID:
		d.userID = string(bytes.TrimRight(payload, "\x00"))
		d.ack()
	}
	return nil
}

func (d *fakeDevice) ack() {
	if d.nak {
		d.reply.WriteByte(0x15)
		return
	}
	d.reply.WriteByte(globals.ACK)
}

func (d *fakeDevice) ReadExactly(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(&d.reply, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// scriptedConn records frames and answers with a fixed reply.
type scriptedConn struct {
	written  [][]byte
	reply    []byte
	writeErr error
	readErr  error
	reads    []int
}

func (s *scriptedConn) WriteMessage(message []byte) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.written = append(s.written, append([]byte(nil), message...))
	return nil
}

func (s *scriptedConn) ReadExactly(n int) ([]byte, error) {
	s.reads = append(s.reads, n)
	if s.readErr != nil {
		return nil, s.readErr
	}
	return s.reply, nil
}
