package rho

import "errors"

// Errors
var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrOutOfRange       = errors.New("node index out of range")
	ErrParse            = errors.New("malformed sequence")
	ErrDegenerateVector = errors.New("zero-length vector cannot be resized")
	ErrMismatch         = errors.New("cycle detection disagrees with walk oracle")
	ErrNilGraph         = errors.New("nil graph")
)
