package commander

import (
	"errors"
	"fmt"

	"UCLA-Rocket-Project/NSRT/internal/globals"
)

// Error kinds. A CommandError always wraps exactly one of these.
var (
	ErrPrecondition = errors.New("precondition rejected")
	ErrTransport    = errors.New("transport failure")
	ErrNegativeAck  = errors.New("negative acknowledgment")
	ErrDecode       = errors.New("decode error")
)

// CommandError is returned by every channel operation that fails. Kind tells
// the caller which category the failure falls into, Err carries the cause.
type CommandError struct {
	Op      string
	Command uint32
	Kind    error
	Err     error
}

func (e *CommandError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s (%s): %v", e.Op, globals.CommandName(e.Command), e.Kind)
	}
	return fmt.Sprintf("%s (%s): %v: %v", e.Op, globals.CommandName(e.Command), e.Kind, e.Err)
}

func (e *CommandError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func preconditionError(op string, command uint32, format string, args ...any) error {
	return &CommandError{Op: op, Command: command, Kind: ErrPrecondition, Err: fmt.Errorf(format, args...)}
}

func decodeError(op string, command uint32, format string, args ...any) error {
	return &CommandError{Op: op, Command: command, Kind: ErrDecode, Err: fmt.Errorf(format, args...)}
}

// RequireAck turns the (ok, err) pair returned by the write accessors into a
// single error, treating a negative acknowledgment as a failure.
func RequireAck(op string, command uint32, ok bool, err error) error {
	if err != nil {
		return err
	}
	if !ok {
		return &CommandError{Op: op, Command: command, Kind: ErrNegativeAck}
	}
	return nil
}

// ErrorKind names the category of err for logs and metric labels.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrPrecondition):
		return "precondition"
	case errors.Is(err, ErrTransport):
		return "transport"
	case errors.Is(err, ErrNegativeAck):
		return "nak"
	case errors.Is(err, ErrDecode):
		return "decode"
	default:
		return "unknown"
	}
}
