// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package imagetype

import (
	"errors"

	"github.com/bep/imagetype/bmff"
)

const defaultMaxBoxDepth = bmff.DefaultMaxDepth

func newImageDecoderHEIF(base *baseStreamingDecoder) decoder {
	return &imageDecoderHEIF{baseStreamingDecoder: base}
}

// imageDecoderHEIF reads the box tree of HEIC and AVIF files.
type imageDecoderHEIF struct {
	*baseStreamingDecoder
}

func (e *imageDecoderHEIF) decode() error {
	root, err := bmff.Parse(bmff.Options{
		R:           e.r,
		Warnf:       e.opts.Warnf,
		MaxDepth:    e.opts.MaxBoxDepth,
		SkipUnknown: true,
	})
	if err != nil {
		if errors.Is(err, bmff.ErrTruncated) || errors.Is(err, bmff.ErrInvalidBox) || errors.Is(err, bmff.ErrMaxDepth) {
			return newInvalidFormatError(err)
		}
		return err
	}

	if ft := root.Child(bmff.TypeFtyp); ft == nil {
		return newInvalidFormatErrorf("heif: no ftyp box")
	}

	// Prefer the extents of the primary item, the first ispe
	// may belong to a thumbnail or a grid tile.
	for _, prop := range bmff.PrimaryItemProperties(root.Child(bmff.TypeMeta)) {
		if ispe, ok := prop.Record.(*bmff.SpatialExtents); ok {
			e.result = newDimension(ispe.Width, ispe.Height)
			return nil
		}
	}

	if box := root.FindFirst(bmff.TypeIspe); box != nil {
		if ispe, ok := box.Record.(*bmff.SpatialExtents); ok {
			e.opts.Warnf("heif: no ispe property for the primary item, using the ispe box at offset %d", box.Offset)
			e.result = newDimension(ispe.Width, ispe.Height)
		}
	}

	return nil
}
