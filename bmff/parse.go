// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package bmff

import (
	"errors"
	"io"
)

// DefaultMaxDepth is the default value of Options.MaxDepth.
const DefaultMaxDepth = 32

// Options contains the options for Parse.
type Options struct {
	// The source to read from. Parsing starts at the current position.
	R io.ReadSeeker

	// If set, recoverable oddities, e.g. skipped unknown boxes, are reported here.
	Warnf func(string, ...any)

	// MaxDepth is the max nesting level of boxes.
	// Defaults to DefaultMaxDepth.
	MaxDepth int

	// By default an unknown box type ends the scan of its siblings,
	// as there is no way to tell if the declared size can be trusted.
	// If SkipUnknown is set, unknown boxes are kept without a Record
	// and skipped by their declared size.
	SkipUnknown bool
}

// Parse reads all boxes from the current position of opts.R to its end.
// The returned root box has the zero BoxType, the top level boxes are its children.
// The position of opts.R after Parse is undefined.
func Parse(opts Options) (root *Box, err error) {
	if opts.R == nil {
		return nil, errors.New("bmff: no reader provided")
	}
	if opts.Warnf == nil {
		opts.Warnf = func(string, ...any) {}
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}

	start, err := opts.R.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	end, err := opts.R.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	if _, err := opts.R.Seek(start, io.SeekStart); err != nil {
		return nil, err
	}

	p := &parser{
		opts:   opts,
		reader: reader{r: opts.R, pos: start, end: end},
	}

	defer func() {
		if r := recover(); r != nil {
			if errp, ok := r.(*errStop); ok {
				root, err = nil, errp.err
				return
			}
			panic(r)
		}
	}()

	root = &Box{Offset: start, Size: uint64(end - start)}
	p.readBoxes(root, end, -1)

	return root, nil
}

type parser struct {
	reader
	opts  Options
	depth int
}

// readBoxes reads child boxes of parent until end.
// If count >= 0, at most count boxes are read.
func (p *parser) readBoxes(parent *Box, end int64, count int64) {
	p.depth++
	if p.depth > p.opts.MaxDepth {
		p.stop(newBoxError(ErrMaxDepth, parent.Type, parent.Offset, "depth %d", p.depth))
	}

	for n := int64(0); count < 0 || n < count; n++ {
		left := end - p.pos
		if left == 0 {
			break
		}
		if left < 8 {
			p.opts.Warnf("bmff: %d trailing bytes in %s box at offset %d", left, parent.Type, parent.Offset)
			break
		}
		child, ok := p.readBox(end)
		if !ok {
			break
		}
		if parent.add(child) && count < 0 && !multiple[child.Type] && !indexed[parent.Type] {
			p.opts.Warnf("bmff: repeated %s box in %s box at offset %d, the last one wins", child.Type, parent.Type, parent.Offset)
		}
	}

	p.depth--
}

// readBox reads the box at the current position.
// limit is the end of the enclosing body.
// It returns false on an unknown box type unless SkipUnknown is set.
func (p *parser) readBox(limit int64) (*Box, bool) {
	offset := p.pos
	p.box = nil
	p.end = limit

	size := uint64(p.read4())
	t := BoxType{}
	p.readFull(t[:])
	headerSize := 8

	switch size {
	case 0:
		// Extends to the end of the enclosing body.
		size = uint64(limit - offset)
	case 1:
		size = p.read8()
		headerSize = 16
	}

	if size < uint64(headerSize) {
		p.stop(newBoxError(ErrInvalidBox, t, offset, "declared size %d is smaller than the header", size))
	}
	if size > uint64(limit-offset) {
		p.stop(newBoxError(ErrTruncated, t, offset, "declared size %d overruns the %d bytes left", size, limit-offset))
	}

	box := &Box{
		Type:       t,
		Offset:     offset,
		Size:       size,
		HeaderSize: headerSize,
	}
	end := box.End()

	dec, found := registry[t]
	if !found {
		if !p.opts.SkipUnknown {
			return nil, false
		}
		p.opts.Warnf("bmff: skipping unknown %s box at offset %d", t, offset)
		p.seek(end)
		p.end = limit
		return box, true
	}

	p.box = box
	p.end = end

	if dec.full {
		if size < uint64(headerSize+4) {
			p.stop(newBoxError(ErrInvalidBox, t, offset, "declared size %d is too small for a full box", size))
		}
		box.Full = true
		box.Version = p.read1()
		box.Flags = p.read3()
		box.HeaderSize += 4
	}

	if box.BodySize() > 0 && dec.decode != nil {
		dec.decode(p, box)
	}

	p.seek(end)
	p.box = nil
	p.end = limit

	return box, true
}

// readChildren reads the child boxes in the rest of the body of box.
func (p *parser) readChildren(box *Box) {
	p.readBoxes(box, box.End(), -1)
	p.box = box
	p.end = box.End()
}

// readEntries reads count child boxes of box.
func (p *parser) readEntries(box *Box, count int64) {
	p.readBoxes(box, box.End(), count)
	p.box = box
	p.end = box.End()
}
