// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package imagetype

import (
	"bytes"
	"encoding/binary"
	"io"

	"golang.org/x/image/riff"
)

var (
	fccWEBP = riff.FourCC{'W', 'E', 'B', 'P'}
	fccVP8  = riff.FourCC{'V', 'P', '8', ' '}
	fccVP8L = riff.FourCC{'V', 'P', '8', 'L'}
	fccVP8X = riff.FourCC{'V', 'P', '8', 'X'}
)

// webpDimensions reads the size from the first chunk, whose
// layout depends on the kind of WebP file (byte 15).
func webpDimensions(b []byte) Dimension {
	if len(b) < 16 {
		return Dimension{}
	}
	switch b[15] {
	case ' ':
		// Lossy: frame header with the 9d 01 2a start code.
		if len(b) < 30 || !hasPrefixAt(b, 23, "\x9d\x01\x2a") {
			return Dimension{}
		}
		// The two top bits of each value hold the scale, they are kept as is.
		return newDimension(binary.LittleEndian.Uint16(b[26:]), binary.LittleEndian.Uint16(b[28:]))
	case 'L':
		// Lossless: 14 bit width-1 and height-1 after the 0x2f signature byte.
		if len(b) < 25 || b[20] != 0x2f {
			return Dimension{}
		}
		width := 1 + (uint32(b[22]&0x3f)<<8 | uint32(b[21]))
		height := 1 + (uint32(b[24]&0x0f)<<10 | uint32(b[23])<<2 | uint32(b[22]&0xc0)>>6)
		return newDimension(width, height)
	case 'X':
		// Extended: 24 bit canvas width-1 and height-1.
		if len(b) < 30 {
			return Dimension{}
		}
		width, _ := readUint(b, 24, 3, binary.LittleEndian)
		height, _ := readUint(b, 27, 3, binary.LittleEndian)
		return newDimension(width+1, height+1)
	}
	return Dimension{}
}

// WebPKind is the kind of bitstream in a WebP file.
type WebPKind string

const (
	WebPLossy    WebPKind = "lossy"
	WebPLossless WebPKind = "lossless"
	WebPExtended WebPKind = "extended"
)

// WebPFeatures describes the first chunk of a WebP file.
type WebPFeatures struct {
	Kind WebPKind

	ICC       bool
	Alpha     bool
	EXIF      bool
	XMP       bool
	Animation bool
}

// ReadWebPFeatures reads the kind and feature flags of the WebP file starting in b.
// For lossy files all flags are false, for lossless files only Alpha is read.
// It returns false if b is not a WebP file or the first chunk is not inside b.
func ReadWebPFeatures(b []byte) (WebPFeatures, bool) {
	var features WebPFeatures
	if !matchWebP(b) {
		return features, false
	}

	formType, r, err := riff.NewReader(bytes.NewReader(b))
	if err != nil || formType != fccWEBP {
		return features, false
	}
	chunkID, chunkLen, chunkData, err := r.Next()
	if err != nil {
		return features, false
	}

	var buf [10]byte

	switch chunkID {
	case fccVP8:
		features.Kind = WebPLossy
	case fccVP8L:
		features.Kind = WebPLossless
		if chunkLen < 5 {
			return features, false
		}
		if _, err := io.ReadFull(chunkData, buf[:5]); err != nil {
			return features, false
		}
		// The alpha hint follows the two 14 bit size fields.
		features.Alpha = buf[4]&0x10 != 0
	case fccVP8X:
		features.Kind = WebPExtended
		if chunkLen != 10 {
			return features, false
		}
		if _, err := io.ReadFull(chunkData, buf[:]); err != nil {
			return features, false
		}
		const (
			animationBit = 1 << 1
			xmpBit       = 1 << 2
			exifBit      = 1 << 3
			alphaBit     = 1 << 4
			iccBit       = 1 << 5
		)
		flags := buf[0]
		features.ICC = flags&iccBit != 0
		features.Alpha = flags&alphaBit != 0
		features.EXIF = flags&exifBit != 0
		features.XMP = flags&xmpBit != 0
		features.Animation = flags&animationBit != 0
	default:
		return features, false
	}

	return features, true
}
