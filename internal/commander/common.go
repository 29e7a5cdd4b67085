package commander

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"UCLA-Rocket-Project/NSRT/internal/globals"
)

func errShortReply(expected, got int) error {
	return fmt.Errorf("expected %d reply bytes, got %d", expected, got)
}

func isAck(reply []byte) bool {
	return len(reply) == ACK_REPLY_SIZE && reply[0] == globals.ACK
}

func decodeFloat32(reply []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(reply))
}

func encodeFloat32(value float32) []byte {
	return binary.LittleEndian.AppendUint32(nil, math.Float32bits(value))
}

// decodeText returns the content of a null padded text field up to the first
// null byte.
func decodeText(reply []byte) string {
	if idx := bytes.IndexByte(reply, 0); idx >= 0 {
		return string(reply[:idx])
	}
	return string(reply)
}

// decodeDeviceDate converts seconds since 1904-01-01 into UTC time.
func decodeDeviceDate(reply []byte) (time.Time, error) {
	var raw uint64
	if err := binary.Read(bytes.NewReader(reply), binary.LittleEndian, &raw); err != nil {
		return time.Time{}, err
	}
	return time.Unix(int64(raw)-globals.SECONDS_FROM_1904_TO_1970, 0).UTC(), nil
}

// DeviceDate renders an instrument date the way the vendor tools print it.
func DeviceDate(t time.Time) string {
	return t.Format(time.DateTime)
}
