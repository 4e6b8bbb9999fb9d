// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

// Package bmff reads the box tree of ISO base media files (MP4, HEIF, AVIF and friends).
//
// Every box type the package knows is decoded into a typed Record. Boxes of
// unknown type end the scan of their siblings unless Options.SkipUnknown is set,
// in which case they are kept without a Record and skipped by their declared size.
package bmff

import (
	"errors"
	"fmt"
)

// BoxType is a four character box type code.
type BoxType [4]byte

// NewBoxType returns the BoxType for s, which must be 4 bytes long.
func NewBoxType(s string) BoxType {
	if len(s) != 4 {
		panic(fmt.Sprintf("bmff: invalid box type %q", s))
	}
	return BoxType{s[0], s[1], s[2], s[3]}
}

func (t BoxType) String() string {
	return string(t[:])
}

// Box types.
var (
	TypeAudio  = BoxType{'s', 'o', 'u', 'n'}
	TypeAuxC   = BoxType{'a', 'u', 'x', 'C'}
	TypeAv01   = BoxType{'a', 'v', '0', '1'}
	TypeAv1C   = BoxType{'a', 'v', '1', 'C'}
	TypeAvc1   = BoxType{'a', 'v', 'c', '1'}
	TypeAvcC   = BoxType{'a', 'v', 'c', 'C'}
	TypeBtrt   = BoxType{'b', 't', 'r', 't'}
	TypeCcst   = BoxType{'c', 'c', 's', 't'}
	TypeClap   = BoxType{'c', 'l', 'a', 'p'}
	TypeColr   = BoxType{'c', 'o', 'l', 'r'}
	TypeDinf   = BoxType{'d', 'i', 'n', 'f'}
	TypeDref   = BoxType{'d', 'r', 'e', 'f'}
	TypeFree   = BoxType{'f', 'r', 'e', 'e'}
	TypeFrma   = BoxType{'f', 'r', 'm', 'a'}
	TypeFtyp   = BoxType{'f', 't', 'y', 'p'}
	TypeHdlr   = BoxType{'h', 'd', 'l', 'r'}
	TypeHev1   = BoxType{'h', 'e', 'v', '1'}
	TypeHint   = BoxType{'h', 'i', 'n', 't'}
	TypeHmhd   = BoxType{'h', 'm', 'h', 'd'}
	TypeHvc1   = BoxType{'h', 'v', 'c', '1'}
	TypeHvcC   = BoxType{'h', 'v', 'c', 'C'}
	TypeIdat   = BoxType{'i', 'd', 'a', 't'}
	TypeIinf   = BoxType{'i', 'i', 'n', 'f'}
	TypeIloc   = BoxType{'i', 'l', 'o', 'c'}
	TypeImir   = BoxType{'i', 'm', 'i', 'r'}
	TypeInfe   = BoxType{'i', 'n', 'f', 'e'}
	TypeIpco   = BoxType{'i', 'p', 'c', 'o'}
	TypeIpma   = BoxType{'i', 'p', 'm', 'a'}
	TypeIpro   = BoxType{'i', 'p', 'r', 'o'}
	TypeIprp   = BoxType{'i', 'p', 'r', 'p'}
	TypeIref   = BoxType{'i', 'r', 'e', 'f'}
	TypeIrot   = BoxType{'i', 'r', 'o', 't'}
	TypeIspe   = BoxType{'i', 's', 'p', 'e'}
	TypeMdat   = BoxType{'m', 'd', 'a', 't'}
	TypeMdhd   = BoxType{'m', 'd', 'h', 'd'}
	TypeMdia   = BoxType{'m', 'd', 'i', 'a'}
	TypeMeta   = BoxType{'m', 'e', 't', 'a'}
	TypeMinf   = BoxType{'m', 'i', 'n', 'f'}
	TypeMoov   = BoxType{'m', 'o', 'o', 'v'}
	TypeMp4a   = BoxType{'m', 'p', '4', 'a'}
	TypeMvhd   = BoxType{'m', 'v', 'h', 'd'}
	TypeNmhd   = BoxType{'n', 'm', 'h', 'd'}
	TypePasp   = BoxType{'p', 'a', 's', 'p'}
	TypePitm   = BoxType{'p', 'i', 't', 'm'}
	TypePixi   = BoxType{'p', 'i', 'x', 'i'}
	TypeRloc   = BoxType{'r', 'l', 'o', 'c'}
	TypeSchi   = BoxType{'s', 'c', 'h', 'i'}
	TypeSchm   = BoxType{'s', 'c', 'h', 'm'}
	TypeSinf   = BoxType{'s', 'i', 'n', 'f'}
	TypeSkip   = BoxType{'s', 'k', 'i', 'p'}
	TypeSmhd   = BoxType{'s', 'm', 'h', 'd'}
	TypeStbl   = BoxType{'s', 't', 'b', 'l'}
	TypeStco   = BoxType{'s', 't', 'c', 'o'}
	TypeStsc   = BoxType{'s', 't', 's', 'c'}
	TypeStsd   = BoxType{'s', 't', 's', 'd'}
	TypeStss   = BoxType{'s', 't', 's', 's'}
	TypeStsz   = BoxType{'s', 't', 's', 'z'}
	TypeStts   = BoxType{'s', 't', 't', 's'}
	TypeTkhd   = BoxType{'t', 'k', 'h', 'd'}
	TypeTrak   = BoxType{'t', 'r', 'a', 'k'}
	TypeURL    = BoxType{'u', 'r', 'l', ' '}
	TypeURN    = BoxType{'u', 'r', 'n', ' '}
	TypeVideo  = BoxType{'v', 'i', 'd', 'e'}
	TypeVmhd   = BoxType{'v', 'm', 'h', 'd'}
	TypeUnset  = BoxType{}
	typeRootID = TypeUnset
)

// ErrStopWalking is a sentinel error to signal that Walk should stop.
var ErrStopWalking = errors.New("stop walking")

// Box is a node in the box tree.
// The root returned by Parse has the zero BoxType and holds the top level boxes.
type Box struct {
	Type BoxType

	// Offset is the position of the box header in the source.
	Offset int64

	// Size is the declared size of the box including its header.
	Size uint64

	// HeaderSize is the size of the header: 8, or 16 with a 64 bit size,
	// plus 4 for full boxes.
	HeaderSize int

	// Full is set for boxes with a version and flags field.
	Full    bool
	Version uint8
	Flags   uint32

	// Record holds the decoded fields, see the Record types in this package.
	// It is nil for plain containers, empty boxes and skipped unknown boxes.
	Record Record

	// Children holds the child boxes in file order.
	Children []*Box

	byType map[BoxType]*Box
}

// BodySize is the size of the box without its header.
func (b *Box) BodySize() uint64 {
	return b.Size - uint64(b.HeaderSize)
}

// End returns the offset of the first byte after the box.
func (b *Box) End() int64 {
	return b.Offset + int64(b.Size)
}

// Child returns the child box of type t.
// If there is more than one, the last one is returned.
func (b *Box) Child(t BoxType) *Box {
	return b.byType[t]
}

// ChildrenOf returns all child boxes of type t in file order.
func (b *Box) ChildrenOf(t BoxType) []*Box {
	var boxes []*Box
	for _, c := range b.Children {
		if c.Type == t {
			boxes = append(boxes, c)
		}
	}
	return boxes
}

// MediaData returns the mdat child boxes in file order.
func (b *Box) MediaData() []*Box {
	return b.ChildrenOf(TypeMdat)
}

// add appends c and reports whether it replaced an earlier child of the same type
// in the keyed lookup.
func (b *Box) add(c *Box) bool {
	b.Children = append(b.Children, c)
	if b.byType == nil {
		b.byType = make(map[BoxType]*Box)
	}
	_, found := b.byType[c.Type]
	b.byType[c.Type] = c
	return found
}

// Walk calls fn for b and all its descendants in depth first pre-order.
// The depth of b is 0. Walk stops without error if fn returns ErrStopWalking.
func (b *Box) Walk(fn func(box *Box, depth int) error) error {
	err := b.walk(fn, 0)
	if err == ErrStopWalking {
		return nil
	}
	return err
}

func (b *Box) walk(fn func(box *Box, depth int) error, depth int) error {
	if err := fn(b, depth); err != nil {
		return err
	}
	for _, c := range b.Children {
		if err := c.walk(fn, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// FindFirst returns the first descendant of b of type t in depth first
// pre-order, or nil. b itself is not considered.
func (b *Box) FindFirst(t BoxType) *Box {
	return FindFirst(b, t)
}

// FindFirst returns the first box of type t below root in depth first
// pre-order, or nil if there is none.
func FindFirst(root *Box, t BoxType) *Box {
	if root == nil {
		return nil
	}
	var found *Box
	for _, c := range root.Children {
		c.Walk(func(box *Box, depth int) error {
			if box.Type == t {
				found = box
				return ErrStopWalking
			}
			return nil
		})
		if found != nil {
			return found
		}
	}
	return nil
}

func (b *Box) String() string {
	if b.Type == typeRootID {
		return fmt.Sprintf("root (%d bytes, %d boxes)", b.Size, len(b.Children))
	}
	if b.Full {
		return fmt.Sprintf("%s (%d bytes at %d, v%d flags %#x)", b.Type, b.Size, b.Offset, b.Version, b.Flags)
	}
	return fmt.Sprintf("%s (%d bytes at %d)", b.Type, b.Size, b.Offset)
}
