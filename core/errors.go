package core

import "errors"

// InvalidArgumentError reports a misuse of the library API, such as
// applying a settings profile to something that is not a property test.
type InvalidArgumentError struct {
	Msg string
}

func (e *InvalidArgumentError) Error() string {
	return e.Msg
}

// NewInvalidArgument returns an InvalidArgumentError with the given message.
func NewInvalidArgument(msg string) error {
	return &InvalidArgumentError{Msg: msg}
}

// IsInvalidArgument reports whether err is an InvalidArgumentError.
func IsInvalidArgument(err error) bool {
	var target *InvalidArgumentError
	return errors.As(err, &target)
}
