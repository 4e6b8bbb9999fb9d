// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package bmff

import (
	"encoding/binary"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// maxRawSize is the max number of bytes kept for opaque payloads.
const maxRawSize = 1 << 16

// reader is a cursor over the source.
// Every read is bounded by end, the end of the body of the box being decoded.
// Failed reads panic with *errStop, see Parse.
type reader struct {
	r   io.ReadSeeker
	pos int64
	end int64

	// The box currently being decoded, used in error messages.
	box *Box

	buf [16]byte
}

func (r *reader) remaining() int64 {
	return r.end - r.pos
}

func (r *reader) stop(err error) {
	panic(&errStop{err: err})
}

func (r *reader) truncated(format string, args ...any) {
	t, offset := TypeUnset, r.pos
	if r.box != nil {
		t, offset = r.box.Type, r.box.Offset
	}
	r.stop(newBoxError(ErrTruncated, t, offset, format, args...))
}

func (r *reader) readFull(b []byte) {
	if int64(len(b)) > r.remaining() {
		r.truncated("need %d bytes at %d, have %d", len(b), r.pos, r.remaining())
	}
	n, err := io.ReadFull(r.r, b)
	r.pos += int64(n)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			r.truncated("unexpected end of source at %d", r.pos)
		}
		r.stop(err)
	}
}

func (r *reader) read1() uint8 {
	r.readFull(r.buf[:1])
	return r.buf[0]
}

func (r *reader) read2() uint16 {
	r.readFull(r.buf[:2])
	return binary.BigEndian.Uint16(r.buf[:2])
}

func (r *reader) read3() uint32 {
	r.readFull(r.buf[:3])
	return uint32(r.buf[0])<<16 | uint32(r.buf[1])<<8 | uint32(r.buf[2])
}

func (r *reader) read4() uint32 {
	r.readFull(r.buf[:4])
	return binary.BigEndian.Uint32(r.buf[:4])
}

func (r *reader) read6() uint64 {
	r.readFull(r.buf[:6])
	var v uint64
	for _, b := range r.buf[:6] {
		v = v<<8 | uint64(b)
	}
	return v
}

func (r *reader) read8() uint64 {
	r.readFull(r.buf[:8])
	return binary.BigEndian.Uint64(r.buf[:8])
}

// readN reads an n byte big endian integer, n being one of 0, 1, 2, 4 or 8.
// A zero size field is absent and reads as 0.
func (r *reader) readN(n uint8) uint64 {
	switch n {
	case 0:
		return 0
	case 1:
		return uint64(r.read1())
	case 2:
		return uint64(r.read2())
	case 4:
		return uint64(r.read4())
	case 8:
		return r.read8()
	default:
		r.stop(newBoxError(ErrInvalidBox, r.box.Type, r.box.Offset, "invalid field size %d", n))
		return 0
	}
}

// read4or8 reads the 64 bit variant of a field for version 1 boxes.
func (r *reader) read4or8(version uint8) uint64 {
	if version == 1 {
		return r.read8()
	}
	return uint64(r.read4())
}

func (r *reader) readFourCC() string {
	r.readFull(r.buf[:4])
	return string(r.buf[:4])
}

func (r *reader) readBytes(n int64) []byte {
	if n > r.remaining() {
		r.truncated("need %d bytes at %d, have %d", n, r.pos, r.remaining())
	}
	b := make([]byte, n)
	r.readFull(b)
	return b
}

// readRaw reads the rest of the body, up to maxRawSize bytes.
func (r *reader) readRaw() []byte {
	return r.readBytes(min(r.remaining(), maxRawSize))
}

// readCString reads a NUL terminated string.
// A missing terminator at the end of the body ends the string.
func (r *reader) readCString() string {
	var b []byte
	for r.remaining() > 0 {
		c := r.read1()
		if c == 0 {
			break
		}
		b = append(b, c)
	}
	return decodeString(b)
}

// readCount reads a 4 byte entry count and checks that count entries
// of elemSize bytes fit in the rest of the body.
func (r *reader) readCount(elemSize int64) uint32 {
	count := r.read4()
	r.checkCount(int64(count), elemSize)
	return count
}

func (r *reader) checkCount(count, elemSize int64) {
	if count*elemSize > r.remaining() {
		r.truncated("%d entries of %d bytes do not fit in %d bytes", count, elemSize, r.remaining())
	}
}

func (r *reader) seek(pos int64) {
	if pos == r.pos {
		return
	}
	if _, err := r.r.Seek(pos, io.SeekStart); err != nil {
		r.stop(err)
	}
	r.pos = pos
}

// decodeString decodes b as UTF-8, or as ISO-8859-1 if it is not valid UTF-8.
func decodeString(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(s)
}
