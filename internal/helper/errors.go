package helper

import (
	"errors"
	"fmt"
)

// ErrMissingArgument matches any MissingArgumentError with errors.Is
var ErrMissingArgument = errors.New("missing argument")

// MissingArgumentError reports a block helper called without its positional parameter
type MissingArgumentError struct {
	Helper string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("param not found for helper %q", e.Helper)
}

// Is reports whether target is ErrMissingArgument
func (e *MissingArgumentError) Is(target error) bool {
	return target == ErrMissingArgument
}
