package session

import (
	"errors"
	"fmt"
)

// ErrNotConnected is returned by Execute when no session is established.
var ErrNotConnected = errors.New("not connected to SSH server")

// ErrAlreadyConnected is returned by Connect on an already-connected manager.
var ErrAlreadyConnected = errors.New("session already connected")

// ConnectError reports a failed connection attempt. The underlying cause is
// preserved and available through errors.Unwrap.
type ConnectError struct {
	Err error
}

func (e *ConnectError) Error() string {
	if e.Err == nil {
		return "failed to connect: unknown error"
	}
	return fmt.Sprintf("failed to connect: %s", e.Err.Error())
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}

// CommandError reports a failed remote command. Either the underlying call
// itself failed (Err is set) or the command wrote to stderr (Stderr is set,
// verbatim).
type CommandError struct {
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("command execution failed: %s", e.Err.Error())
	}
	return fmt.Sprintf("command execution failed: %s", e.Stderr)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
