package globals

import "fmt"

// command words, bit 31 set means the device answers with data
const (
	CMD_READ_LEVEL            uint32 = 0x80000010
	CMD_READ_LEQ              uint32 = 0x80000011
	CMD_READ_TEMPERATURE      uint32 = 0x80000012
	CMD_READ_WEIGHTING        uint32 = 0x80000020
	CMD_WRITE_WEIGHTING       uint32 = 0x00000020
	CMD_READ_FS               uint32 = 0x80000021
	CMD_WRITE_FS              uint32 = 0x00000021
	CMD_READ_TAU              uint32 = 0x80000022
	CMD_WRITE_TAU             uint32 = 0x00000022
	CMD_READ_MODEL            uint32 = 0x80000031
	CMD_READ_SERIAL_NUMBER    uint32 = 0x80000032
	CMD_READ_FW_REV           uint32 = 0x80000033
	CMD_READ_CALIBRATION_DATE uint32 = 0x80000034
	CMD_READ_MANUFACTURE_DATE uint32 = 0x80000035
	CMD_READ_USER_ID          uint32 = 0x80000036
	CMD_WRITE_USER_ID         uint32 = 0x00000036
)

const DIRECTION_IN uint32 = 0x80000000

const (
	ACK = 0x06

	// seconds between 1904-01-01 and 1970-01-01
	SECONDS_FROM_1904_TO_1970 = 2082844800

	HEADER_SIZE     = 12
	TEXT_FIELD_SIZE = 32
	DATE_FIELD_SIZE = 8
)

const (
	FS_32K = 32000
	FS_48K = 48000
)

var commandNames = map[uint32]string{
	CMD_READ_LEVEL:            "read_level",
	CMD_READ_LEQ:              "read_leq",
	CMD_READ_TEMPERATURE:      "read_temperature",
	CMD_READ_WEIGHTING:        "read_weighting",
	CMD_WRITE_WEIGHTING:       "write_weighting",
	CMD_READ_FS:               "read_fs",
	CMD_WRITE_FS:              "write_fs",
	CMD_READ_TAU:              "read_tau",
	CMD_WRITE_TAU:             "write_tau",
	CMD_READ_MODEL:            "read_model",
	CMD_READ_SERIAL_NUMBER:    "read_sn",
	CMD_READ_FW_REV:           "read_fw_rev",
	CMD_READ_CALIBRATION_DATE: "read_doc",
	CMD_READ_MANUFACTURE_DATE: "read_dob",
	CMD_READ_USER_ID:          "read_user_id",
	CMD_WRITE_USER_ID:         "write_user_id",
}

// CommandName gives a stable label for logs and metrics. Unknown words are
// rendered in hex.
func CommandName(command uint32) string {
	if name, ok := commandNames[command]; ok {
		return name
	}
	return fmt.Sprintf("0x%08X", command)
}
