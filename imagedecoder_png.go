// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package imagetype

import "encoding/binary"

// pngDimensions reads the IHDR chunk, which must directly follow the signature.
func pngDimensions(b []byte) Dimension {
	if len(b) < 24 {
		return Dimension{}
	}
	return newDimension(binary.BigEndian.Uint32(b[16:]), binary.BigEndian.Uint32(b[20:]))
}
