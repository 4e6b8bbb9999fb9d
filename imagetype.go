// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

// Package imagetype identifies image formats from their leading bytes and
// reads their pixel dimensions without decoding any pixel data.
package imagetype

import (
	"errors"
	"fmt"
	"io"
	"slices"
)

const (
	// FormatUnknown is the zero Format.
	FormatUnknown Format = iota
	// DWG is the AutoCAD drawing format.
	DWG
	// XCF is the GIMP native image format.
	XCF
	// JPEG is the JPEG image format.
	JPEG
	// JPX is the JPEG 2000 image format.
	JPX
	// APNG is the animated PNG image format.
	APNG
	// PNG is the PNG image format.
	PNG
	// GIF is the GIF image format.
	GIF
	// WebP is the WebP image format.
	WebP
	// TIFF is the TIFF image format.
	TIFF
	// CR2 is the Canon RAW version 2 format.
	CR2
	// BMP is the Windows bitmap format.
	BMP
	// JXR is the JPEG XR image format.
	JXR
	// PSD is the Adobe Photoshop document format.
	PSD
	// ICO is the Windows icon format.
	ICO
	// HEIC is the HEIF image format with HEVC coded images.
	HEIC
	// DCM is the DICOM medical image format.
	DCM
	// AVIF is the HEIF image format with AV1 coded images.
	AVIF
)

// Format is an image format.
//
//go:generate stringer -type=Format
type Format int

// Dimension holds the pixel size of an image.
// The zero value means that the size could not be determined.
type Dimension struct {
	Width  uint32
	Height uint32
}

// newDimension returns the zero Dimension unless both width and height are set.
func newDimension[T ~uint8 | ~uint16 | ~uint32 | ~uint64](width, height T) Dimension {
	if width == 0 || height == 0 {
		return Dimension{}
	}
	return Dimension{Width: uint32(width), Height: uint32(height)}
}

// IsZero reports whether d is unknown.
func (d Dimension) IsZero() bool {
	return d.Width == 0 && d.Height == 0
}

func (d Dimension) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// FormatDescriptor describes a supported format.
// Descriptors are created once and never modified.
type FormatDescriptor struct {
	format     Format
	mime       string
	extension  string
	alternates []string

	match         func(b []byte) bool
	dimensions    func(b []byte) Dimension
	allDimensions func(b []byte) []Dimension

	// newStreamDecoder is used when the dimensions are not inside the signature window.
	newStreamDecoder func(base *baseStreamingDecoder) decoder
}

// Format returns the format d describes.
func (d *FormatDescriptor) Format() Format {
	return d.format
}

// MIME returns the canonical MIME type, e.g. "image/png".
func (d *FormatDescriptor) MIME() string {
	return d.mime
}

// Extension returns the primary file extension without the leading dot.
func (d *FormatDescriptor) Extension() string {
	return d.extension
}

// ExtensionAlternates returns the alternate file extensions in preference order.
func (d *FormatDescriptor) ExtensionAlternates() []string {
	return slices.Clone(d.alternates)
}

// IsExtension reports whether ext is the primary extension of d.
func (d *FormatDescriptor) IsExtension(ext string) bool {
	return d.extension == ext
}

// IsMIME reports whether mime is the MIME type of d.
func (d *FormatDescriptor) IsMIME(mime string) bool {
	return d.mime == mime
}

// Match reports whether b starts with the signature of d.
// It never reads outside of b and never modifies it.
func (d *FormatDescriptor) Match(b []byte) bool {
	return d.match(b)
}

// Dimensions returns the pixel size stored in the header in b.
// The zero Dimension is returned if b does not match d, if the
// header is not inside b or if the format has no known size field.
func (d *FormatDescriptor) Dimensions(b []byte) Dimension {
	if d.dimensions == nil || !d.match(b) {
		return Dimension{}
	}
	return d.dimensions(b)
}

// AllDimensions returns every image size stored in b.
// For ICO this is one Dimension per directory entry in directory order.
// Other formats return the single Dimension, or nil if it is unknown.
func (d *FormatDescriptor) AllDimensions(b []byte) []Dimension {
	if !d.match(b) {
		return nil
	}
	if d.allDimensions != nil {
		return d.allDimensions(b)
	}
	if dim := d.Dimensions(b); !dim.IsZero() {
		return []Dimension{dim}
	}
	return nil
}

func (d *FormatDescriptor) String() string {
	return d.mime
}

// descriptors is the ordered registry used by Classify.
// Every match func is self-sufficient, the order only decides
// the winner for inputs that are valid in more than one format.
var descriptors = []*FormatDescriptor{
	{format: DWG, mime: "image/vnd.dwg", extension: "dwg", match: matchDWG},
	{format: XCF, mime: "image/x-xcf", extension: "xcf", match: matchXCF},
	{
		format: JPEG, mime: "image/jpeg", extension: "jpg",
		alternates:       []string{"jpeg", "jfif", "jpe", "jif", "jfi"},
		match:            matchJPEG,
		dimensions:       jpegDimensions,
		newStreamDecoder: newImageDecoderJPEG,
	},
	{format: JPX, mime: "image/jpx", extension: "jpx", match: matchJPX},
	{
		format: APNG, mime: "image/apng", extension: "apng",
		alternates: []string{"png"},
		match:      matchAPNG,
		dimensions: pngDimensions,
	},
	{format: PNG, mime: "image/png", extension: "png", match: matchPNG, dimensions: pngDimensions},
	{format: GIF, mime: "image/gif", extension: "gif", match: matchGIF, dimensions: gifDimensions},
	{format: WebP, mime: "image/webp", extension: "webp", match: matchWebP, dimensions: webpDimensions},
	{
		format: TIFF, mime: "image/tiff", extension: "tif",
		match:            matchTIFF,
		dimensions:       tiffDimensions,
		newStreamDecoder: newImageDecoderTIFF,
	},
	{
		format: CR2, mime: "image/x-canon-cr2", extension: "cr2",
		match:            matchCR2,
		dimensions:       tiffDimensions,
		newStreamDecoder: newImageDecoderTIFF,
	},
	{format: BMP, mime: "image/bmp", extension: "bmp", match: matchBMP, dimensions: bmpDimensions},
	{format: JXR, mime: "image/vnd.ms-photo", extension: "jxr", match: matchJXR},
	{format: PSD, mime: "image/vnd.adobe.photoshop", extension: "psd", match: matchPSD, dimensions: psdDimensions},
	{
		format: ICO, mime: "image/x-icon", extension: "ico",
		match:         matchICO,
		dimensions:    icoDimensions,
		allDimensions: ICODimensions,
	},
	{
		format: HEIC, mime: "image/heic", extension: "heic",
		match:            matchHEIC,
		dimensions:       isobmffDimensions,
		newStreamDecoder: newImageDecoderHEIF,
	},
	{format: DCM, mime: "application/dicom", extension: "dcm", match: matchDCM},
	{
		format: AVIF, mime: "image/avif", extension: "avif",
		match:            matchAVIF,
		dimensions:       isobmffDimensions,
		newStreamDecoder: newImageDecoderHEIF,
	},
}

// Classify returns the descriptor of the first format whose signature
// matches b, or nil if none does.
// b is typically the first SignatureSize bytes of a file, see Signature.
func Classify(b []byte) *FormatDescriptor {
	for _, d := range descriptors {
		if d.match(b) {
			return d
		}
	}
	return nil
}

// Descriptors returns all supported formats in classification order.
func Descriptors() []*FormatDescriptor {
	return slices.Clone(descriptors)
}

// Lookup returns the descriptor of f, or nil if f is not supported.
func Lookup(f Format) *FormatDescriptor {
	for _, d := range descriptors {
		if d.format == f {
			return d
		}
	}
	return nil
}

// DimensionsOf is a shorthand for Lookup(f).Dimensions(b).
func DimensionsOf(f Format, b []byte) Dimension {
	d := Lookup(f)
	if d == nil {
		return Dimension{}
	}
	return d.Dimensions(b)
}

// Options contains the options for the Decode function.
type Options struct {
	// The Reader (typically a *os.File) to read the image from.
	// Decode reads from the start of R and restores its position before
	// returning unless it has to fall back to a stream decoder.
	R io.ReadSeeker

	// Warnf will be called for each warning.
	Warnf func(string, ...any)

	// SignatureSize is the number of leading bytes used for classification.
	// Default value is SignatureSize.
	SignatureSize int

	// If set, Decode will only look inside the signature window.
	DisableStreamFallback bool

	// MaxBoxDepth limits box nesting when HEIC and AVIF files are
	// read as a box tree. Default value is 32.
	MaxBoxDepth int
}

// Result contains the result of a Decode operation.
type Result struct {
	// Format is the detected format.
	Format *FormatDescriptor

	// Dimension is the primary image size, zero if it could not be determined.
	Dimension Dimension

	// AllDimensions is set for formats storing more than one image size (ICO).
	AllDimensions []Dimension
}

// Decode detects the format of the image in opts.R and reads its dimensions.
// The signature window is tried first. If the size is not found there,
// formats that can store their size further out (JPEG, TIFF, CR2, HEIC and AVIF)
// are read from opts.R as a stream.
// An error satisfying IsInvalidFormat is returned for unknown or corrupt input.
func Decode(opts Options) (result Result, err error) {
	if opts.R == nil {
		return result, errors.New("imagetype: no reader provided")
	}
	if opts.SignatureSize <= 0 {
		opts.SignatureSize = SignatureSize
	}
	if opts.MaxBoxDepth <= 0 {
		opts.MaxBoxDepth = defaultMaxBoxDepth
	}
	if opts.Warnf == nil {
		opts.Warnf = func(string, ...any) {}
	}

	b, err := readSignature(opts.R, opts.SignatureSize)
	if err != nil {
		return result, err
	}

	d := Classify(b)
	if d == nil {
		return result, newInvalidFormatErrorf("no known signature in %d bytes", len(b))
	}
	result.Format = d
	result.Dimension = d.Dimensions(b)
	if d.allDimensions != nil {
		result.AllDimensions = d.allDimensions(b)
	}

	if !result.Dimension.IsZero() || opts.DisableStreamFallback || d.newStreamDecoder == nil {
		return result, nil
	}

	opts.Warnf("imagetype: %s size not found in the first %d bytes, reading stream", d.format, len(b))

	result.Dimension, err = decodeStream(opts, d.newStreamDecoder)

	return result, err
}
