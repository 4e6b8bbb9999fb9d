// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package imagetype

import "encoding/binary"

const icoDirEntrySize = 16

// ICODimensions returns the size of every image in the ICO directory in b,
// in directory order. A stored size of 0 means 256.
// Entries that are not inside b are left out.
func ICODimensions(b []byte) []Dimension {
	if !matchICO(b) || len(b) < 6 {
		return nil
	}
	count := int(binary.LittleEndian.Uint16(b[4:]))

	var dims []Dimension
	for i, n := 6, 0; n < count; i, n = i+icoDirEntrySize, n+1 {
		if i+2 > len(b) {
			break
		}
		dims = append(dims, Dimension{Width: icoSize(b[i]), Height: icoSize(b[i+1])})
	}
	return dims
}

func icoSize(v byte) uint32 {
	if v == 0 {
		return 256
	}
	return uint32(v)
}

func icoDimensions(b []byte) Dimension {
	dims := ICODimensions(b)
	if len(dims) == 0 {
		return Dimension{}
	}
	return dims[0]
}
