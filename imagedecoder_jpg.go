// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package imagetype

import "encoding/binary"

const (
	markerPrefix = 0xff
	markerSOF0   = 0xc0 // Baseline.
	markerSOF2   = 0xc2 // Progressive.
)

// jpegDimensions walks the marker segments after SOI until it finds
// a baseline or progressive start of frame.
func jpegDimensions(b []byte) Dimension {
	i := 2
	// A SOF needs 9 bytes from the marker prefix to the end of the width.
	for i+8 < len(b) && b[i] == markerPrefix {
		marker := b[i+1]
		// The segment length is read as a signed 16 bit value.
		length, _ := readInt(b, i+2, 2, binary.BigEndian)
		if marker == markerSOF0 || marker == markerSOF2 {
			// Precision, then height before width.
			height := readUint16(b, i+5, binary.BigEndian)
			width := readUint16(b, i+7, binary.BigEndian)
			return newDimension(width, height)
		}
		if length < 0 {
			length += 1 << 16
		}
		// The length includes its own two bytes.
		i += 4 + int(length) - 2
	}
	return Dimension{}
}

func newImageDecoderJPEG(base *baseStreamingDecoder) decoder {
	return &imageDecoderJPEG{baseStreamingDecoder: base}
}

type imageDecoderJPEG struct {
	*baseStreamingDecoder
}

func (e *imageDecoderJPEG) decode() error {
	// Skip SOI.
	e.skip(2)

	for {
		if e.read1() != markerPrefix || e.isEOF {
			return nil
		}
		marker := e.read1()
		length := int64(e.read2s())
		if e.isEOF {
			return nil
		}

		if marker == markerSOF0 || marker == markerSOF2 {
			e.skip(1)
			height, width := e.read2(), e.read2()
			if e.isEOF {
				return nil
			}
			e.result = newDimension(width, height)
			return nil
		}

		if length < 0 {
			length += 1 << 16
		}
		e.skip(length - 2)
	}
}
