// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package imagetype

import (
	"encoding/binary"
)

// readUint reads an n byte (1-8) unsigned integer at offset in b.
// It returns false if the read would go outside of b.
func readUint(b []byte, offset, n int, byteOrder binary.ByteOrder) (uint64, bool) {
	if offset < 0 || n < 1 || n > 8 || offset+n > len(b) {
		return 0, false
	}
	p := b[offset : offset+n]
	var v uint64
	if byteOrder == binary.LittleEndian {
		for i := n - 1; i >= 0; i-- {
			v = v<<8 | uint64(p[i])
		}
	} else {
		for _, c := range p {
			v = v<<8 | uint64(c)
		}
	}
	return v, true
}

// readInt is readUint with sign extension from the n byte width.
func readInt(b []byte, offset, n int, byteOrder binary.ByteOrder) (int64, bool) {
	v, ok := readUint(b, offset, n, byteOrder)
	if !ok {
		return 0, false
	}
	if shift := uint(64 - 8*n); shift > 0 {
		// Arithmetic shift right restores the sign bit.
		return int64(v<<shift) >> shift, true
	}
	return int64(v), true
}

func readUint16(b []byte, offset int, byteOrder binary.ByteOrder) uint16 {
	v, _ := readUint(b, offset, 2, byteOrder)
	return uint16(v)
}

func readUint32(b []byte, offset int, byteOrder binary.ByteOrder) uint32 {
	v, _ := readUint(b, offset, 4, byteOrder)
	return uint32(v)
}

// readString returns the n bytes at offset as a string, or "" if b is too short.
func readString(b []byte, offset, n int) string {
	if offset < 0 || n < 0 || offset+n > len(b) {
		return ""
	}
	return string(b[offset : offset+n])
}

// hasPrefixAt reports whether b holds magic at offset.
func hasPrefixAt(b []byte, offset int, magic string) bool {
	return readString(b, offset, len(magic)) == magic
}

// tiffByteOrder returns the byte order signalled by a TIFF header, or nil.
func tiffByteOrder(b []byte) binary.ByteOrder {
	switch {
	case hasPrefixAt(b, 0, "II*\x00"):
		return binary.LittleEndian
	case hasPrefixAt(b, 0, "MM\x00*"):
		return binary.BigEndian
	default:
		return nil
	}
}
