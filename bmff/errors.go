// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package bmff

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncated is returned when a box or one of its fields extends
	// past the end of its parent or of the source.
	ErrTruncated = errors.New("bmff: truncated box")

	// ErrInvalidBox is returned for a malformed box header,
	// e.g. a declared size smaller than the header itself.
	ErrInvalidBox = errors.New("bmff: invalid box")

	// ErrMaxDepth is returned when boxes are nested deeper than Options.MaxDepth.
	ErrMaxDepth = errors.New("bmff: max box depth exceeded")
)

// errStop is used to abort parsing from deep inside the decoders.
// It carries the error that is returned from Parse.
type errStop struct {
	err error
}

func (e *errStop) Error() string {
	return e.err.Error()
}

func newBoxError(sentinel error, t BoxType, offset int64, format string, args ...any) error {
	return fmt.Errorf("%w: %s box at offset %d: %s", sentinel, t, offset, fmt.Sprintf(format, args...))
}
