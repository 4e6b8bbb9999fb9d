// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package imagetype

import "encoding/binary"

// bmpDimensions reads the size from the BITMAPINFOHEADER.
// A negative height marks a top-down bitmap; its absolute value is used.
func bmpDimensions(b []byte) Dimension {
	if len(b) < 26 {
		return Dimension{}
	}
	width := binary.LittleEndian.Uint32(b[18:])
	height, _ := readInt(b, 22, 4, binary.LittleEndian)
	if height < 0 {
		height = -height
	}
	return newDimension(width, uint32(height))
}
