package cli

import "errors"

// ErrUsage marks command-line misuse so main can exit with a distinct
// code and print help-like output instead of a bare error.
var ErrUsage = errors.New("cli usage error")

type usageError struct {
	msg string
}

func newUsageError(msg string) error { return usageError{msg: msg} }

func (e usageError) Error() string { return e.msg }

func (e usageError) Is(target error) bool { return target == ErrUsage }
