// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package imagetype

import "encoding/binary"

// gifDimensions reads the logical screen size.
func gifDimensions(b []byte) Dimension {
	if len(b) < 10 {
		return Dimension{}
	}
	return newDimension(binary.LittleEndian.Uint16(b[6:]), binary.LittleEndian.Uint16(b[8:]))
}
