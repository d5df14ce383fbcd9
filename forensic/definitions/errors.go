package definitions

import (
	"errors"
	"fmt"
)

// Tool failures. These never escape a backend; they end up as step notes
// or missing fields.
var (
	ErrToolAbsent      = errors.New("tool not found")
	ErrToolTimeout     = errors.New("tool timed out")
	ErrToolNonZeroExit = errors.New("tool exited with non-zero status")
	ErrParseMiss       = errors.New("output did not match expected format")
)

// ErrInput is the only error class returned to callers of an operation.
var ErrInput = errors.New("invalid input")

var (
	ErrMissingDeviceID  = fmt.Errorf("%w: device id is required", ErrInput)
	ErrUnknownOperation = fmt.Errorf("%w: unknown operation", ErrInput)
	ErrUnknownPlatform  = fmt.Errorf("%w: unknown platform", ErrInput)
)
