package types

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidArgument is returned when a caller passes a value outside the
	// accepted domain, e.g. a negative count or a non-positive page size.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound is returned when a looked up record does not exist.
	ErrNotFound = errors.New("not found")
)
