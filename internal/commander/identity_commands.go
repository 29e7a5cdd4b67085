package commander

import (
	"time"

	"UCLA-Rocket-Project/NSRT/internal/globals"
)

type Identity struct {
	Model            string
	SerialNumber     string
	FirmwareRevision string
	CalibrationDate  time.Time
	ManufactureDate  time.Time
	UserID           string
}

func (c *Channel) readText(command uint32) (string, error) {
	reply, err := c.Execute(command, 0, globals.TEXT_FIELD_SIZE, nil)
	if err != nil {
		return "", err
	}
	return decodeText(reply), nil
}

func (c *Channel) readDate(op string, command uint32) (time.Time, error) {
	reply, err := c.Execute(command, 0, globals.DATE_FIELD_SIZE, nil)
	if err != nil {
		return time.Time{}, err
	}

	date, err := decodeDeviceDate(reply)
	if err != nil {
		return time.Time{}, decodeError(op, command, "%v", err)
	}
	return date, nil
}

func (c *Channel) ReadModel() (string, error) {
	return c.readText(globals.CMD_READ_MODEL)
}

func (c *Channel) ReadSerialNumber() (string, error) {
	return c.readText(globals.CMD_READ_SERIAL_NUMBER)
}

func (c *Channel) ReadFirmwareRevision() (string, error) {
	return c.readText(globals.CMD_READ_FW_REV)
}

// ReadCalibrationDate returns the date of the last calibration in UTC.
func (c *Channel) ReadCalibrationDate() (time.Time, error) {
	return c.readDate("read calibration date", globals.CMD_READ_CALIBRATION_DATE)
}

// ReadManufactureDate returns the manufacturing date in UTC.
func (c *Channel) ReadManufactureDate() (time.Time, error) {
	return c.readDate("read manufacture date", globals.CMD_READ_MANUFACTURE_DATE)
}

func (c *Channel) ReadUserID() (string, error) {
	return c.readText(globals.CMD_READ_USER_ID)
}

// ValidateUserID checks that the id and its null terminator fit in the
// 32 byte field.
func ValidateUserID(userID string) error {
	if len(userID) >= globals.TEXT_FIELD_SIZE {
		return preconditionError("write user id", globals.CMD_WRITE_USER_ID, "maximum length for the user id is %d characters, got %d", globals.TEXT_FIELD_SIZE-1, len(userID))
	}
	return nil
}

func (c *Channel) WriteUserID(userID string) (bool, error) {
	if err := ValidateUserID(userID); err != nil {
		return false, err
	}

	payload := append([]byte(userID), 0)
	reply, err := c.Execute(globals.CMD_WRITE_USER_ID, 0, uint32(len(payload)), payload)
	if err != nil {
		return false, err
	}
	return isAck(reply), nil
}

func (c *Channel) ReadIdentity() (Identity, error) {
	var id Identity
	var err error

	if id.Model, err = c.ReadModel(); err != nil {
		return id, err
	}
	if id.SerialNumber, err = c.ReadSerialNumber(); err != nil {
		return id, err
	}
	if id.FirmwareRevision, err = c.ReadFirmwareRevision(); err != nil {
		return id, err
	}
	if id.CalibrationDate, err = c.ReadCalibrationDate(); err != nil {
		return id, err
	}
	if id.ManufactureDate, err = c.ReadManufactureDate(); err != nil {
		return id, err
	}
	if id.UserID, err = c.ReadUserID(); err != nil {
		return id, err
	}
	return id, nil
}
