package commander

import "UCLA-Rocket-Project/NSRT/internal/globals"

const FLOAT_REPLY_SIZE = 4

type Measurement struct {
	Level       float32
	Leq         float32
	Temperature float32
}

func (c *Channel) readFloat(command uint32) (float32, error) {
	reply, err := c.Execute(command, 0, FLOAT_REPLY_SIZE, nil)
	if err != nil {
		return 0, err
	}
	return decodeFloat32(reply), nil
}

// ReadLevel returns the running level in dB, exponentially averaged with the
// configured time constant and weighting. It is not an LEQ.
func (c *Channel) ReadLevel() (float32, error) {
	return c.readFloat(globals.CMD_READ_LEVEL)
}

// ReadLeq returns the LEQ in dB integrated since the previous ReadLeq and
// starts a new integration window on the instrument.
func (c *Channel) ReadLeq() (float32, error) {
	return c.readFloat(globals.CMD_READ_LEQ)
}

// ReadTemperature returns the instrument temperature in degC.
func (c *Channel) ReadTemperature() (float32, error) {
	return c.readFloat(globals.CMD_READ_TEMPERATURE)
}

// ReadMeasurement reads level, LEQ and temperature one after another. The LEQ
// window is reset as a side effect.
func (c *Channel) ReadMeasurement() (Measurement, error) {
	var m Measurement
	var err error

	if m.Level, err = c.ReadLevel(); err != nil {
		return m, err
	}
	if m.Leq, err = c.ReadLeq(); err != nil {
		return m, err
	}
	if m.Temperature, err = c.ReadTemperature(); err != nil {
		return m, err
	}
	return m, nil
}
