package terminal

import (
	"fmt"
	"io"
	"math"

	"UCLA-Rocket-Project/NSRT/internal/commander"
	"UCLA-Rocket-Project/NSRT/internal/globals"
)

const CHECK_USER_ID = "nsrt-check"

type check struct {
	name string
	run  func(ch *commander.Channel, log io.Writer) bool
}

var availableChecks = []check{
	{name: "Select All"},
	{name: "Read Level", run: ReadLevelCheck},
	{name: "Read And Reset LEQ", run: ReadLeqCheck},
	{name: "Read Temperature", run: ReadTemperatureCheck},
	{name: "Read Identity", run: ReadIdentityCheck},
	{name: "Read Settings", run: ReadSettingsCheck},
	{name: "Weighting Round Trip", run: WeightingRoundTripCheck},
	{name: "Sampling Frequency Round Trip", run: SamplingFrequencyRoundTripCheck},
	{name: "Time Constant Round Trip", run: TimeConstantRoundTripCheck},
	{name: "User ID Round Trip", run: UserIDRoundTripCheck},
}

func readFloatCheck(tag, unit string, read func() (float32, error), log io.Writer) bool {
	fmt.Fprintf(log, "[%s]: sending read command\n", tag)

	value, err := read()
	if err != nil {
		fmt.Fprintf(log, "[%s]: %v\n", tag, err)
		return false
	}
	if math.IsNaN(float64(value)) || math.IsInf(float64(value), 0) {
		fmt.Fprintf(log, "[%s]: instrument returned %v\n", tag, value)
		return false
	}

	fmt.Fprintf(log, "[%s]: %.2f %s\n", tag, value, unit)
	return true
}

func ReadLevelCheck(ch *commander.Channel, log io.Writer) bool {
	return readFloatCheck("Read Level", "dB", ch.ReadLevel, log)
}

func ReadLeqCheck(ch *commander.Channel, log io.Writer) bool {
	return readFloatCheck("Read LEQ", "dB", ch.ReadLeq, log)
}

func ReadTemperatureCheck(ch *commander.Channel, log io.Writer) bool {
	return readFloatCheck("Read Temperature", "degC", ch.ReadTemperature, log)
}

func ReadIdentityCheck(ch *commander.Channel, log io.Writer) bool {
	fmt.Fprintf(log, "[Read Identity]: reading identity fields\n")

	id, err := ch.ReadIdentity()
	if err != nil {
		fmt.Fprintf(log, "[Read Identity]: %v\n", err)
		return false
	}

	fmt.Fprintf(log, "[Read Identity]: model: %s, serial number: %s, firmware: %s\n", id.Model, id.SerialNumber, id.FirmwareRevision)
	fmt.Fprintf(log, "[Read Identity]: calibrated: %s, manufactured: %s\n", commander.DeviceDate(id.CalibrationDate), commander.DeviceDate(id.ManufactureDate))
	fmt.Fprintf(log, "[Read Identity]: user id: %q\n", id.UserID)
	return true
}

func ReadSettingsCheck(ch *commander.Channel, log io.Writer) bool {
	fmt.Fprintf(log, "[Read Settings]: reading settings\n")

	s, err := ch.ReadSettings()
	if err != nil {
		fmt.Fprintf(log, "[Read Settings]: %v\n", err)
		return false
	}

	fmt.Fprintf(log, "[Read Settings]: weighting: %s, sampling frequency: %d Hz, time constant: %g s\n", s.Weighting, s.SamplingFrequency, s.TimeConstant)
	return true
}

// writeCheck reports a write and whether the instrument acknowledged it
func writeCheck(tag string, command uint32, ok bool, err error, log io.Writer) bool {
	if err := commander.RequireAck(tag, command, ok, err); err != nil {
		fmt.Fprintf(log, "[%s]: %v\n", tag, err)
		return false
	}
	fmt.Fprintf(log, "[%s]: write acknowledged\n", tag)
	return true
}

// round trip checks
// 1. Read the current value
// 2. Write a different value and read it back
// 3. Put the original value back
func WeightingRoundTripCheck(ch *commander.Channel, log io.Writer) bool {
	const tag = "Weighting Round Trip"

	original, err := ch.ReadWeighting()
	if err != nil {
		fmt.Fprintf(log, "[%s]: %v\n", tag, err)
		return false
	}

	target := original.Next()
	fmt.Fprintf(log, "[%s]: switching %s -> %s\n", tag, original, target)
	ok, err := ch.WriteWeighting(target)
	if !writeCheck(tag, globals.CMD_WRITE_WEIGHTING, ok, err, log) {
		return false
	}

	got, err := ch.ReadWeighting()
	if err != nil {
		fmt.Fprintf(log, "[%s]: %v\n", tag, err)
		return false
	}

	fmt.Fprintf(log, "[%s]: restoring %s\n", tag, original)
	ok, err = ch.WriteWeighting(original)
	restored := writeCheck(tag, globals.CMD_WRITE_WEIGHTING, ok, err, log)

	if got != target {
		fmt.Fprintf(log, "[%s]: read back %s, expected %s\n", tag, got, target)
		return false
	}
	return restored
}

func SamplingFrequencyRoundTripCheck(ch *commander.Channel, log io.Writer) bool {
	const tag = "Sampling Frequency Round Trip"

	original, err := ch.ReadSamplingFrequency()
	if err != nil {
		fmt.Fprintf(log, "[%s]: %v\n", tag, err)
		return false
	}

	target := globals.FS_48K
	if original == globals.FS_48K {
		target = globals.FS_32K
	}

	fmt.Fprintf(log, "[%s]: switching %d Hz -> %d Hz\n", tag, original, target)
	ok, err := ch.WriteSamplingFrequency(target)
	if !writeCheck(tag, globals.CMD_WRITE_FS, ok, err, log) {
		return false
	}

	got, err := ch.ReadSamplingFrequency()
	if err != nil {
		fmt.Fprintf(log, "[%s]: %v\n", tag, err)
		return false
	}

	restored := true
	if commander.ValidateSamplingFrequency(int(original)) == nil {
		fmt.Fprintf(log, "[%s]: restoring %d Hz\n", tag, original)
		ok, err = ch.WriteSamplingFrequency(int(original))
		restored = writeCheck(tag, globals.CMD_WRITE_FS, ok, err, log)
	} else {
		fmt.Fprintf(log, "[%s]: original %d Hz is not writable, leaving %d Hz\n", tag, original, target)
	}

	if int(got) != target {
		fmt.Fprintf(log, "[%s]: read back %d Hz, expected %d Hz\n", tag, got, target)
		return false
	}
	return restored
}

func TimeConstantRoundTripCheck(ch *commander.Channel, log io.Writer) bool {
	const tag = "Time Constant Round Trip"

	original, err := ch.ReadTimeConstant()
	if err != nil {
		fmt.Fprintf(log, "[%s]: %v\n", tag, err)
		return false
	}

	target := original * 2
	if target == 0 {
		target = 1
	}

	fmt.Fprintf(log, "[%s]: switching %g s -> %g s\n", tag, original, target)
	ok, err := ch.WriteTimeConstant(target)
	if !writeCheck(tag, globals.CMD_WRITE_TAU, ok, err, log) {
		return false
	}

	got, err := ch.ReadTimeConstant()
	if err != nil {
		fmt.Fprintf(log, "[%s]: %v\n", tag, err)
		return false
	}

	fmt.Fprintf(log, "[%s]: restoring %g s\n", tag, original)
	ok, err = ch.WriteTimeConstant(original)
	restored := writeCheck(tag, globals.CMD_WRITE_TAU, ok, err, log)

	if got != target {
		fmt.Fprintf(log, "[%s]: read back %g s, expected %g s\n", tag, got, target)
		return false
	}
	return restored
}

func UserIDRoundTripCheck(ch *commander.Channel, log io.Writer) bool {
	const tag = "User ID Round Trip"

	original, err := ch.ReadUserID()
	if err != nil {
		fmt.Fprintf(log, "[%s]: %v\n", tag, err)
		return false
	}

	fmt.Fprintf(log, "[%s]: switching %q -> %q\n", tag, original, CHECK_USER_ID)
	ok, err := ch.WriteUserID(CHECK_USER_ID)
	if !writeCheck(tag, globals.CMD_WRITE_USER_ID, ok, err, log) {
		return false
	}

	got, err := ch.ReadUserID()
	if err != nil {
		fmt.Fprintf(log, "[%s]: %v\n", tag, err)
		return false
	}

	fmt.Fprintf(log, "[%s]: restoring %q\n", tag, original)
	ok, err = ch.WriteUserID(original)
	restored := writeCheck(tag, globals.CMD_WRITE_USER_ID, ok, err, log)

	if got != CHECK_USER_ID {
		fmt.Fprintf(log, "[%s]: read back %q, expected %q\n", tag, got, CHECK_USER_ID)
		return false
	}
	return restored
}
