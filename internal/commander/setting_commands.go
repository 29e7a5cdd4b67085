package commander

import (
	"encoding/binary"

	"UCLA-Rocket-Project/NSRT/internal/globals"
)

// the instrument expects count=1 on every settings write regardless of the
// payload width
const SETTING_WRITE_COUNT = 1

const FS_REPLY_SIZE = 2

type Settings struct {
	Weighting         Weighting
	SamplingFrequency uint16
	TimeConstant      float32
}

func (c *Channel) ReadWeighting() (Weighting, error) {
	reply, err := c.Execute(globals.CMD_READ_WEIGHTING, 0, 1, nil)
	if err != nil {
		return 0, err
	}

	w, err := WeightingFromByte(reply[0])
	if err != nil {
		return 0, decodeError("read weighting", globals.CMD_READ_WEIGHTING, "%v", err)
	}
	return w, nil
}

func (c *Channel) WriteWeighting(w Weighting) (bool, error) {
	if !w.Valid() {
		return false, preconditionError("write weighting", globals.CMD_WRITE_WEIGHTING, "invalid weighting %d", byte(w))
	}

	reply, err := c.Execute(globals.CMD_WRITE_WEIGHTING, 0, SETTING_WRITE_COUNT, []byte{byte(w)})
	if err != nil {
		return false, err
	}
	return isAck(reply), nil
}

// ReadSamplingFrequency returns the sampling frequency in Hz.
func (c *Channel) ReadSamplingFrequency() (uint16, error) {
	reply, err := c.Execute(globals.CMD_READ_FS, 0, FS_REPLY_SIZE, nil)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(reply), nil
}

// ValidateSamplingFrequency accepts only the rates the instrument supports.
func ValidateSamplingFrequency(hz int) error {
	if hz != globals.FS_32K && hz != globals.FS_48K {
		return preconditionError("write sampling frequency", globals.CMD_WRITE_FS, "%d not supported, value can only be %d or %d", hz, globals.FS_32K, globals.FS_48K)
	}
	return nil
}

// WriteSamplingFrequency sets the sampling frequency. Unsupported rates are
// rejected before anything is sent.
func (c *Channel) WriteSamplingFrequency(hz int) (bool, error) {
	if err := ValidateSamplingFrequency(hz); err != nil {
		return false, err
	}

	payload := binary.LittleEndian.AppendUint16(nil, uint16(hz))
	reply, err := c.Execute(globals.CMD_WRITE_FS, 0, SETTING_WRITE_COUNT, payload)
	if err != nil {
		return false, err
	}
	return isAck(reply), nil
}

// ReadTimeConstant returns the time constant in seconds.
func (c *Channel) ReadTimeConstant() (float32, error) {
	return c.readFloat(globals.CMD_READ_TAU)
}

func (c *Channel) WriteTimeConstant(tau float32) (bool, error) {
	reply, err := c.Execute(globals.CMD_WRITE_TAU, 0, SETTING_WRITE_COUNT, encodeFloat32(tau))
	if err != nil {
		return false, err
	}
	return isAck(reply), nil
}

func (c *Channel) ReadSettings() (Settings, error) {
	var s Settings
	var err error

	if s.Weighting, err = c.ReadWeighting(); err != nil {
		return s, err
	}
	if s.SamplingFrequency, err = c.ReadSamplingFrequency(); err != nil {
		return s, err
	}
	if s.TimeConstant, err = c.ReadTimeConstant(); err != nil {
		return s, err
	}
	return s, nil
}
