// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package imagetype

import (
	"bytes"
	"encoding/binary"
	"iter"
)

// Ftyp is the content of the leading ftyp box of an ISO-BMFF file.
type Ftyp struct {
	MajorBrand   string
	MinorVersion uint32

	// CompatibleBrands yields the compatible brands in file order.
	// It reads from the buffer passed to ReadFtyp on every iteration,
	// so that buffer must not be modified while this is in use.
	CompatibleBrands iter.Seq[string]
}

// HasBrand reports whether brand is the major brand or, for the
// generic mif1 and msf1 major brands, one of the compatible brands.
func (f Ftyp) HasBrand(brand string) bool {
	if f.MajorBrand == brand {
		return true
	}
	if f.MajorBrand != "mif1" && f.MajorBrand != "msf1" {
		return false
	}
	for b := range f.CompatibleBrands {
		if b == brand {
			return true
		}
	}
	return false
}

// IsISOBMFF reports whether b starts with a complete ftyp box.
func IsISOBMFF(b []byte) bool {
	if len(b) < 16 || !hasPrefixAt(b, 4, "ftyp") {
		return false
	}
	return uint64(binary.BigEndian.Uint32(b)) <= uint64(len(b))
}

// ReadFtyp reads the ftyp box at the start of b.
// It returns false if b does not start with a complete ftyp box.
func ReadFtyp(b []byte) (Ftyp, bool) {
	if !IsISOBMFF(b) {
		return Ftyp{}, false
	}
	end := int(binary.BigEndian.Uint32(b))
	return Ftyp{
		MajorBrand:   string(b[8:12]),
		MinorVersion: binary.BigEndian.Uint32(b[12:16]),
		CompatibleBrands: func(yield func(string) bool) {
			for i := 16; i+4 <= end; i += 4 {
				if !yield(string(b[i : i+4])) {
					return
				}
			}
		},
	}, true
}

func matchISOBMFFBrand(b []byte, brand string) bool {
	ftyp, ok := ReadFtyp(b)
	return ok && ftyp.HasBrand(brand)
}

var ispeMarker = []byte("ispe")

// isobmffDimensions looks for the first "ispe" byte sequence after the ftyp
// header and reads the width and height that follow its version and flags.
// This is a byte scan and not a box walk, so a coincidental "ispe" in other
// data gives a wrong answer.
func isobmffDimensions(b []byte) Dimension {
	if !IsISOBMFF(b) {
		return Dimension{}
	}
	i := bytes.Index(b[16:], ispeMarker)
	if i < 0 {
		return Dimension{}
	}
	i += 16
	if i+16 > len(b) {
		return Dimension{}
	}
	return newDimension(binary.BigEndian.Uint32(b[i+8:]), binary.BigEndian.Uint32(b[i+12:]))
}
