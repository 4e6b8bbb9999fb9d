// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package imagetype

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestReadUint(t *testing.T) {
	c := qt.New(t)

	b := []byte{0x01, 0x02, 0x03, 0x04, 0xff}

	v, ok := readUint(b, 0, 2, binary.BigEndian)
	c.Assert(ok, qt.IsTrue)
	c.Assert(v, qt.Equals, uint64(0x0102))

	v, ok = readUint(b, 1, 3, binary.LittleEndian)
	c.Assert(ok, qt.IsTrue)
	c.Assert(v, qt.Equals, uint64(0x040302))

	v, ok = readUint(b, 4, 1, binary.BigEndian)
	c.Assert(ok, qt.IsTrue)
	c.Assert(v, qt.Equals, uint64(0xff))

	for _, args := range [][2]int{{4, 2}, {-1, 1}, {0, 0}, {0, 9}, {5, 1}} {
		_, ok = readUint(b, args[0], args[1], binary.BigEndian)
		c.Assert(ok, qt.IsFalse, qt.Commentf("offset %d, n %d", args[0], args[1]))
	}

	c.Assert(readUint16(b, 0, binary.LittleEndian), qt.Equals, uint16(0x0201))
	c.Assert(readUint32(b, 0, binary.BigEndian), qt.Equals, uint32(0x01020304))
	// Out of range reads are zero.
	c.Assert(readUint32(b, 2, binary.BigEndian), qt.Equals, uint32(0))
}

func TestReadInt(t *testing.T) {
	c := qt.New(t)

	v, ok := readInt([]byte{0xff, 0xfe}, 0, 2, binary.BigEndian)
	c.Assert(ok, qt.IsTrue)
	c.Assert(v, qt.Equals, int64(-2))

	v, _ = readInt([]byte{0xb0, 0xff, 0xff, 0xff}, 0, 4, binary.LittleEndian)
	c.Assert(v, qt.Equals, int64(-80))

	v, _ = readInt([]byte{0x7f, 0xff}, 0, 2, binary.BigEndian)
	c.Assert(v, qt.Equals, int64(32767))

	v, _ = readInt([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, 0, 8, binary.BigEndian)
	c.Assert(v, qt.Equals, int64(-1))

	_, ok = readInt([]byte{0xff}, 0, 2, binary.BigEndian)
	c.Assert(ok, qt.IsFalse)
}

func TestReadString(t *testing.T) {
	c := qt.New(t)

	b := []byte("gimp xcf v")
	c.Assert(readString(b, 5, 3), qt.Equals, "xcf")
	c.Assert(readString(b, 8, 3), qt.Equals, "")
	c.Assert(readString(b, -1, 3), qt.Equals, "")
	c.Assert(hasPrefixAt(b, 0, "gimp"), qt.IsTrue)
	c.Assert(hasPrefixAt(b, 9, "v"), qt.IsTrue)
	c.Assert(hasPrefixAt(b, 9, "v0"), qt.IsFalse)
}

func TestTIFFByteOrder(t *testing.T) {
	c := qt.New(t)

	c.Assert(tiffByteOrder([]byte("II*\x00")), qt.Equals, binary.ByteOrder(binary.LittleEndian))
	c.Assert(tiffByteOrder([]byte("MM\x00*")), qt.Equals, binary.ByteOrder(binary.BigEndian))
	c.Assert(tiffByteOrder([]byte("MM*\x00")), qt.IsNil)
	c.Assert(tiffByteOrder([]byte("II")), qt.IsNil)
}

func TestNewDimension(t *testing.T) {
	c := qt.New(t)

	c.Assert(newDimension(uint16(3), uint16(4)), qt.Equals, Dimension{Width: 3, Height: 4})
	c.Assert(newDimension(uint8(0), uint8(4)), qt.Equals, Dimension{})
	c.Assert(newDimension(uint64(3), uint64(0)), qt.Equals, Dimension{})
	c.Assert(Dimension{}.IsZero(), qt.IsTrue)
	c.Assert(Dimension{Width: 1}.IsZero(), qt.IsFalse)
}

func TestStreamReader(t *testing.T) {
	c := qt.New(t)

	run := func(b []byte, f func(r *streamReader)) (err error) {
		r := newStreamReader(bytes.NewReader(b), binary.BigEndian)
		defer func() {
			if rec := recover(); rec != nil {
				c.Assert(rec, qt.Equals, errStop)
				err = r.readErr
			}
		}()
		f(r)
		return nil
	}

	err := run([]byte{0x01, 0x02, 0xff, 0xfe, 0, 0, 0, 9}, func(r *streamReader) {
		c.Assert(r.read2(), qt.Equals, uint16(0x0102))
		c.Assert(r.read2s(), qt.Equals, int16(-2))
		r.skip(2)
		c.Assert(r.pos(), qt.Equals, int64(6))
		r.seek(4)
		c.Assert(r.read4(), qt.Equals, uint32(9))
	})
	c.Assert(err, qt.IsNil)

	// The first EOF is silent and leaves zeros.
	err = run([]byte{0x01}, func(r *streamReader) {
		c.Assert(r.read1(), qt.Equals, uint8(1))
		c.Assert(r.read2(), qt.Equals, uint16(0))
		c.Assert(r.isEOF, qt.IsTrue)
		r.read1()
	})
	c.Assert(err, qt.Equals, io.EOF)

	// A partial read is not an EOF.
	err = run([]byte{0x01}, func(r *streamReader) {
		r.read4()
	})
	c.Assert(err, qt.Equals, io.ErrUnexpectedEOF)
	c.Assert(isInvalidFormatErrorCandidate(err), qt.IsTrue)
}

func TestInvalidFormatError(t *testing.T) {
	c := qt.New(t)

	err := newInvalidFormatErrorf("bad %s", "thing")
	c.Assert(IsInvalidFormat(err), qt.IsTrue)
	c.Assert(err, qt.ErrorMatches, "imagetype: invalid format: bad thing")
	// Wrapping twice is a no-op.
	c.Assert(newInvalidFormatError(err), qt.Equals, err)
	c.Assert(newInvalidFormatError(nil), qt.IsNil)

	wrapped := newInvalidFormatError(io.ErrUnexpectedEOF)
	c.Assert(wrapped, qt.ErrorIs, io.ErrUnexpectedEOF)
}

func BenchmarkReadUint(b *testing.B) {
	buf := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	for i := 0; i < b.N; i++ {
		_, _ = readUint(buf, 0, 4, binary.LittleEndian)
		_, _ = readUint(buf, 0, 8, binary.BigEndian)
	}
}
