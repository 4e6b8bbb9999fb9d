// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package imagetype_test

import (
	"bytes"
	"encoding/binary"
	"slices"
	"testing"

	"github.com/bep/imagetype"
)

func FuzzClassify(f *testing.F) {
	for _, fixture := range minimalFixtures() {
		f.Add(fixture.data)
	}
	f.Add(icoFile([2]byte{0, 0}, [2]byte{16, 16}))
	f.Add(webpLossless([4]byte{0xff, 0xff, 0xff, 0xff}))
	f.Add(webpExtended(0x3e, 100, 100))

	f.Fuzz(func(t *testing.T, b []byte) {
		orig := slices.Clone(b)

		d := imagetype.Classify(b)
		for _, other := range imagetype.Descriptors() {
			dim := other.Dimensions(b)
			all := other.AllDimensions(b)
			if !other.Match(b) {
				if !dim.IsZero() || all != nil {
					t.Fatalf("%s: got a size for a buffer that does not match", other.Format())
				}
				continue
			}
			if d == nil {
				t.Fatalf("%s matches, but Classify returned nil", other.Format())
			}
			if dim.IsZero() != (dim.Width == 0 || dim.Height == 0) {
				t.Fatalf("%s: partial size %s", other.Format(), dim)
			}
		}

		imagetype.ReadWebPFeatures(b)
		if ftyp, ok := imagetype.ReadFtyp(b); ok {
			for brand := range ftyp.CompatibleBrands {
				if len(brand) != 4 {
					t.Fatalf("brand %q", brand)
				}
			}
		}

		if !bytes.Equal(b, orig) {
			t.Fatal("input modified")
		}
	})
}

func FuzzDecode(f *testing.F) {
	for _, fixture := range minimalFixtures() {
		f.Add(fixture.data)
	}
	f.Add(cat([]byte{0xff, 0xd8}, jpegSegment(0xe1, zeros(9000)), jpegSOF(0xc0, 10, 10)))
	f.Add(tiffFile(binary.BigEndian, "", 8200, tiffLong(256, 1), tiffLong(257, 2)))
	f.Add(cat(ftypBox("heic", "mif1"), isoBox("free", zeros(8200)), isoBox("meta", zeros(4))))

	f.Fuzz(func(t *testing.T, b []byte) {
		res, err := imagetype.Decode(imagetype.Options{R: bytes.NewReader(b)})
		if err != nil {
			if !imagetype.IsInvalidFormat(err) {
				t.Fatalf("unexpected error type %T: %s", err, err)
			}
			return
		}
		if res.Format != imagetype.Classify(imagetype.Signature(b)) {
			t.Fatalf("format mismatch: %s", res.Format)
		}
	})
}
