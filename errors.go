// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package imagetype

import (
	"errors"
	"fmt"
	"io"
)

var (
	errInvalidFormat = errors.New("imagetype: invalid format")

	// Internal error to signal that we should stop any further processing.
	errStop = errors.New("stop")

	errShortRead = errors.New("short read")
)

type invalidFormatError struct {
	err error
}

func (e *invalidFormatError) Error() string {
	return fmt.Sprintf("%s: %s", errInvalidFormat, e.err)
}

func (e *invalidFormatError) Is(target error) bool {
	return target == errInvalidFormat
}

func (e *invalidFormatError) Unwrap() error {
	return e.err
}

func newInvalidFormatError(err error) error {
	if err == nil || IsInvalidFormat(err) {
		return err
	}
	return &invalidFormatError{err: err}
}

func newInvalidFormatErrorf(format string, args ...any) error {
	return newInvalidFormatError(fmt.Errorf(format, args...))
}

// IsInvalidFormat reports whether err was caused by an unknown,
// truncated or corrupt image.
func IsInvalidFormat(err error) bool {
	return errors.Is(err, errInvalidFormat)
}

func isInvalidFormatErrorCandidate(err error) bool {
	return errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, errShortRead)
}
