// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package bmff_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/bep/imagetype/bmff"
)

func FuzzParse(f *testing.F) {
	f.Add(heifFile())
	f.Add(box("moov", box("trak", box("mdia", box("minf", box("stbl", fullBox("stsd", 0, 0, u32(1), box("hvc1", make([]byte, 78)))))))))
	f.Add(fullBox("iloc", 1, 0, u8(0x48), u8(0x84), u16(1), u16(1), u16(0), u16(0), u64(0), u16(1), u32(0), u32(0), u64(0)))
	f.Add(box("hvcC", make([]byte, 23)))

	f.Fuzz(func(t *testing.T, b []byte) {
		for _, skip := range []bool{false, true} {
			root, err := bmff.Parse(bmff.Options{R: bytes.NewReader(b), SkipUnknown: skip})
			if err != nil {
				if !errors.Is(err, bmff.ErrTruncated) && !errors.Is(err, bmff.ErrInvalidBox) && !errors.Is(err, bmff.ErrMaxDepth) {
					t.Fatalf("unexpected error: %v", err)
				}
				continue
			}
			root.Walk(func(box *bmff.Box, depth int) error {
				if box.End() > int64(len(b)) {
					t.Fatalf("box %s ends at %d, past the end of the source", box.Type, box.End())
				}
				return nil
			})
		}
	})
}
