// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package imagetype

import "encoding/binary"

// psdDimensions reads the file header, where the height comes before the width.
func psdDimensions(b []byte) Dimension {
	if len(b) < 22 {
		return Dimension{}
	}
	height := binary.BigEndian.Uint32(b[14:])
	width := binary.BigEndian.Uint32(b[18:])
	return newDimension(width, height)
}
