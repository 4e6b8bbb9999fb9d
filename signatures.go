// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package imagetype

import "encoding/binary"

// Signature predicates. Each returns false for a buffer that is too short
// and only reads the bytes it needs.

func matchDWG(b []byte) bool {
	return hasPrefixAt(b, 0, "AC10")
}

func matchXCF(b []byte) bool {
	return hasPrefixAt(b, 0, "gimp xcf v")
}

func matchJPEG(b []byte) bool {
	return hasPrefixAt(b, 0, "\xff\xd8\xff")
}

func matchJPX(b []byte) bool {
	return hasPrefixAt(b, 0, "\x00\x00\x00\x0c") && hasPrefixAt(b, 16, "ftypjp2 ")
}

const pngSignature = "\x89PNG\r\n\x1a\n"

func matchPNG(b []byte) bool {
	return hasPrefixAt(b, 0, pngSignature) && !isAnimatedPNG(b)
}

func matchAPNG(b []byte) bool {
	return hasPrefixAt(b, 0, pngSignature) && isAnimatedPNG(b)
}

// isAnimatedPNG walks the chunks after the PNG signature and reports
// whether an acTL chunk comes before the first IDAT or IEND chunk.
// Running out of buffer before a decisive chunk counts as not animated.
func isAnimatedPNG(b []byte) bool {
	i := len(pngSignature)
	for i+8 <= len(b) {
		length := binary.BigEndian.Uint32(b[i:])
		switch string(b[i+4 : i+8]) {
		case "acTL":
			return true
		case "IDAT", "IEND":
			return false
		}
		// Skip the chunk header, data and CRC.
		next := uint64(i) + 8 + uint64(length) + 4
		if next > uint64(len(b)) {
			return false
		}
		i = int(next)
	}
	return false
}

func matchGIF(b []byte) bool {
	return len(b) > 5 && hasPrefixAt(b, 0, "GIF8") && (b[4] == '9' || b[4] == '7') && b[5] == 'a'
}

func matchWebP(b []byte) bool {
	if len(b) < 16 || !hasPrefixAt(b, 0, "RIFF") || !hasPrefixAt(b, 8, "WEBPVP8") {
		return false
	}
	switch b[15] {
	case ' ', 'L', 'X':
		return true
	}
	return false
}

func isCR2Marker(b []byte) bool {
	return b[8] == 'C' && b[9] == 'R'
}

func matchTIFF(b []byte) bool {
	return len(b) > 9 && tiffByteOrder(b) != nil && !isCR2Marker(b)
}

func matchCR2(b []byte) bool {
	return len(b) > 9 && tiffByteOrder(b) != nil && isCR2Marker(b)
}

func matchBMP(b []byte) bool {
	return hasPrefixAt(b, 0, "BM")
}

func matchJXR(b []byte) bool {
	return hasPrefixAt(b, 0, "II\xbc")
}

func matchPSD(b []byte) bool {
	return hasPrefixAt(b, 0, "8BPS")
}

func matchICO(b []byte) bool {
	return hasPrefixAt(b, 0, "\x00\x00\x01\x00")
}

func matchDCM(b []byte) bool {
	return hasPrefixAt(b, 128, "DICM")
}

func matchHEIC(b []byte) bool {
	return matchISOBMFFBrand(b, "heic")
}

func matchAVIF(b []byte) bool {
	return matchISOBMFFBrand(b, "avif")
}
