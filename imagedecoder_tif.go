// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package imagetype

import (
	"encoding/binary"
)

const (
	tiffTagImageWidth  = 0x0100
	tiffTagImageHeight = 0x0101

	tiffIFDEntrySize = 12

	byteOrderBigEndian    = 0x4d4d
	byteOrderLittleEndian = 0x4949
)

// tiffDimensions reads ImageWidth and ImageHeight from IFD0.
// The value is always read as a 4 byte integer from the value field
// of the entry. That is correct for LONG values and for little endian
// SHORT values, but not for big endian SHORT values.
func tiffDimensions(b []byte) Dimension {
	byteOrder := tiffByteOrder(b)
	if byteOrder == nil || len(b) < 8 {
		return Dimension{}
	}
	i := int64(readUint32(b, 4, byteOrder))
	if i+2 > int64(len(b)) {
		return Dimension{}
	}
	count := int(readUint16(b, int(i), byteOrder))
	pos := int(i) + 2

	var width, height uint32
	for range count {
		if pos+tiffIFDEntrySize > len(b) {
			break
		}
		switch readUint16(b, pos, byteOrder) {
		case tiffTagImageWidth:
			width = readUint32(b, pos+8, byteOrder)
		case tiffTagImageHeight:
			height = readUint32(b, pos+8, byteOrder)
		}
		if width > 0 && height > 0 {
			break
		}
		pos += tiffIFDEntrySize
	}
	return newDimension(width, height)
}

func newImageDecoderTIFF(base *baseStreamingDecoder) decoder {
	return &imageDecoderTIF{baseStreamingDecoder: base}
}

type imageDecoderTIF struct {
	*baseStreamingDecoder
}

func (e *imageDecoderTIF) decode() error {
	const meaningOfLife = 42

	byteOrderTag := e.read2()
	switch byteOrderTag {
	case byteOrderBigEndian:
		e.byteOrder = binary.BigEndian
	case byteOrderLittleEndian:
		e.byteOrder = binary.LittleEndian
	default:
		return errInvalidFormat
	}

	if id := e.read2(); id != meaningOfLife {
		return errInvalidFormat
	}

	ifdOffset := e.read4()
	if ifdOffset < 8 {
		return newInvalidFormatErrorf("IFD0 offset %d inside the header", ifdOffset)
	}
	e.seek(int64(ifdOffset))

	entryCount := e.read2()

	var width, height uint32
	for range entryCount {
		if e.isEOF {
			return nil
		}
		tag := e.read2()
		// Skip type and count.
		e.skip(6)
		value := e.read4()
		switch tag {
		case tiffTagImageWidth:
			width = value
		case tiffTagImageHeight:
			height = value
		}
		if width > 0 && height > 0 {
			break
		}
	}

	if !e.isEOF {
		e.result = newDimension(width, height)
	}

	return nil
}
