package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("plan not found")
	ErrMalformedInput = errors.New("malformed input")
	ErrInvalidCard    = errors.New("invalid card")
	ErrInvalidColumn  = errors.New("invalid column")
	ErrUnknownCard    = errors.New("unknown card")
	ErrUnknownColumn  = errors.New("unknown column")
)

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedInput, fmt.Sprintf(format, args...))
}
