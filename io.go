// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package imagetype

import (
	"encoding/binary"
	"fmt"
	"io"
)

type decoder interface {
	decode() error
}

type baseStreamingDecoder struct {
	*streamReader
	opts   Options
	result Dimension
}

func (d *baseStreamingDecoder) streamErr(err error) error {
	if err == errStop {
		err = d.readErr
	}
	if err == nil || err == io.EOF {
		return nil
	}
	if isInvalidFormatErrorCandidate(err) {
		return newInvalidFormatError(err)
	}
	return err
}

// decodeStream runs the decoder created by newDecoder from the start of opts.R.
// Read failures inside the decoder panic with errStop and are turned
// into a returned error here.
func decodeStream(opts Options, newDecoder func(*baseStreamingDecoder) decoder) (dim Dimension, err error) {
	base := &baseStreamingDecoder{
		streamReader: newStreamReader(opts.R, binary.BigEndian),
		opts:         opts,
	}

	defer func() {
		if r := recover(); r != nil {
			if errp, ok := r.(error); ok {
				err = errp
			} else {
				err = fmt.Errorf("unknown panic: %v", r)
			}
		}
		err = base.streamErr(err)
		if err == nil {
			dim = base.result
		}
	}()

	base.seek(0)

	return dim, newDecoder(base).decode()
}

func newStreamReader(r io.ReadSeeker, byteOrder binary.ByteOrder) *streamReader {
	return &streamReader{
		r:         r,
		byteOrder: byteOrder,
		buf:       make([]byte, 8),
	}
}

// streamReader is a wrapper around a ReadSeeker that provides methods to read binary data.
// Note that this is not thread safe.
type streamReader struct {
	r         io.ReadSeeker
	byteOrder binary.ByteOrder

	buf []byte

	isEOF   bool
	readErr error
}

func (e *streamReader) pos() int64 {
	n, err := e.r.Seek(0, io.SeekCurrent)
	if err != nil {
		e.stop(err)
	}
	return n
}

func (e *streamReader) read1() uint8 {
	e.readNIntoBuf(1)
	return e.buf[0]
}

func (e *streamReader) read2() uint16 {
	e.readNIntoBuf(2)
	return e.byteOrder.Uint16(e.buf[:2])
}

// read2s reads a signed 16 bit integer.
func (e *streamReader) read2s() int16 {
	return int16(e.read2())
}

func (e *streamReader) read4() uint32 {
	e.readNIntoBuf(4)
	return e.byteOrder.Uint32(e.buf[:4])
}

func (e *streamReader) readNIntoBuf(n int) {
	if n > cap(e.buf) {
		e.buf = make([]byte, n)
	}
	n2, err := io.ReadFull(e.r, e.buf[:n])
	if err == nil && n2 != n {
		err = errShortRead
	}
	if err != nil {
		e.stop(err)
		// Silent EOF: leave zeros in the buffer.
		clear(e.buf[:n])
	}
}

func (e *streamReader) seek(pos int64) {
	if _, err := e.r.Seek(pos, io.SeekStart); err != nil {
		e.stop(err)
	}
}

func (e *streamReader) skip(n int64) {
	if _, err := e.r.Seek(n, io.SeekCurrent); err != nil {
		e.stop(err)
	}
}

func (e *streamReader) stop(err error) {
	// Allow one silent EOF.
	// This allows the client to not having to check for EOF on every read.
	if err == io.EOF && !e.isEOF {
		e.isEOF = true
		return
	}
	if err != nil {
		e.readErr = err
	}
	panic(errStop)
}
