// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package bmff

// Record is the decoded content of a box.
// The implementations are the pointer types in this package, e.g. *SpatialExtents.
type Record interface {
	isRecord()
}

// FileType is the content of a ftyp box.
type FileType struct {
	MajorBrand       string
	MinorVersion     uint32
	CompatibleBrands []string
}

// Raw holds the payload of a box that is not decoded further,
// e.g. colr or av1C. Payloads larger than 64 KiB are cut.
type Raw struct {
	Data []byte
}

// MediaData describes a mdat box. The payload is not read.
type MediaData struct {
	// DataOffset is the position of the payload in the source.
	DataOffset int64
	Length     uint64
}

// BitRate is the content of a btrt box.
type BitRate struct {
	BufferSizeDB uint32
	MaxBitrate   uint32
	AvgBitrate   uint32
}

// DataReference is the content of a dref box. The entries are its children.
type DataReference struct {
	EntryCount uint32
}

// DataEntryURL is the content of a "url " box.
// The location is empty for self contained media.
type DataEntryURL struct {
	Location string
}

// DataEntryURN is the content of a "urn " box.
type DataEntryURN struct {
	Name     string
	Location string
}

// Handler is the content of a hdlr box.
type Handler struct {
	HandlerType string
	Name        string
}

// OriginalFormat is the content of a frma box.
type OriginalFormat struct {
	DataFormat string
}

// SchemeType is the content of a schm box.
type SchemeType struct {
	SchemeType    string
	SchemeVersion uint32
	SchemeURI     string
}

// PrimaryItem is the content of a pitm box.
type PrimaryItem struct {
	ItemID uint32
}

// ItemInfo is the content of an iinf box. The infe entries are its children.
type ItemInfo struct {
	EntryCount uint32
}

// ItemInfoEntry is the content of an infe box.
// ItemType is only set for version 2 and later.
type ItemInfoEntry struct {
	ItemID          uint32
	ProtectionIndex uint16
	ItemType        string
	Name            string
	ContentType     string
	ContentEncoding string
	URIType         string

	// Set for version 1 entries with a "fdel" extension.
	Extension *FDItemInfoExtension
}

// FDItemInfoExtension is the file delivery extension of a version 1 infe box.
type FDItemInfoExtension struct {
	ContentLocation string
	ContentMD5      string
	ContentLength   uint64
	TransferLength  uint64
	GroupIDs        []uint32
}

// ItemLocation is the content of an iloc box.
type ItemLocation struct {
	OffsetSize     uint8
	LengthSize     uint8
	BaseOffsetSize uint8
	IndexSize      uint8
	Items          []ItemLocationItem
}

// ItemLocationItem is an item in an iloc box.
type ItemLocationItem struct {
	ItemID             uint32
	ConstructionMethod uint8
	DataReferenceIndex uint16
	BaseOffset         uint64
	Extents            []ItemLocationExtent
}

// ItemLocationExtent is an extent of an ItemLocationItem.
type ItemLocationExtent struct {
	Index  uint64
	Offset uint64
	Length uint64
}

// ItemProtection is the content of an ipro box. The sinf boxes are its children.
type ItemProtection struct {
	Count uint16
}

// SpatialExtents is the content of an ispe box.
type SpatialExtents struct {
	Width  uint32
	Height uint32
}

// ImageRotation is the content of an irot box.
type ImageRotation struct {
	// Angle is the anti-clockwise rotation in degrees, one of 0, 90, 180 and 270.
	Angle uint16
}

// PropertyAssociation is the content of an ipma box.
type PropertyAssociation struct {
	Entries []PropertyAssociationEntry
}

// PropertyAssociationEntry lists the properties of one item.
type PropertyAssociationEntry struct {
	ItemID       uint32
	Associations []ItemProperty
}

// ItemProperty points to a property box in ipco.
type ItemProperty struct {
	Essential bool

	// Index is the 1-based index into the children of ipco, 0 means none.
	Index uint16
}

// MediaHeader is the content of a mdhd box.
type MediaHeader struct {
	CreationTime     uint64
	ModificationTime uint64
	Timescale        uint32
	Duration         uint64

	// Language is the ISO-639-2/T code.
	Language string
}

// VideoMediaHeader is the content of a vmhd box.
type VideoMediaHeader struct {
	GraphicsMode uint16
	OpColor      [3]uint16
}

// SoundMediaHeader is the content of a smhd box.
type SoundMediaHeader struct {
	// Balance is a signed 8.8 fixed point number.
	Balance int16
}

// HintMediaHeader is the content of a hmhd box.
type HintMediaHeader struct {
	MaxPDUSize uint16
	AvgPDUSize uint16
	MaxBitrate uint32
	AvgBitrate uint32
}

// MovieHeader is the content of a mvhd box.
type MovieHeader struct {
	CreationTime     uint64
	ModificationTime uint64
	Timescale        uint32
	Duration         uint64

	// Rate is a 16.16 and Volume a 8.8 fixed point number.
	Rate   uint32
	Volume uint16

	Matrix      [9]uint32
	NextTrackID uint32
}

// TrackHeader is the content of a tkhd box.
type TrackHeader struct {
	CreationTime     uint64
	ModificationTime uint64
	TrackID          uint32
	Duration         uint64
	Layer            int16
	AlternateGroup   int16
	Volume           uint16
	Matrix           [9]uint32

	// Width and Height are 16.16 fixed point numbers.
	Width  uint32
	Height uint32
}

// SampleDescription is the content of a stsd box. The sample entries are its children.
type SampleDescription struct {
	EntryCount uint32
}

// VisualSampleEntry is the content of a visual sample entry, e.g. hvc1 or av01.
// Boxes such as hvcC and pasp are its children.
type VisualSampleEntry struct {
	DataReferenceIndex uint16
	Width              uint16
	Height             uint16

	// 16.16 fixed point pixels per inch.
	HorizResolution uint32
	VertResolution  uint32

	FrameCount     uint16
	CompressorName string
	Depth          uint16
}

// AudioSampleEntry is the content of an audio sample entry, e.g. mp4a.
type AudioSampleEntry struct {
	DataReferenceIndex uint16
	ChannelCount       uint16
	SampleSize         uint16

	// SampleRate is a 16.16 fixed point number.
	SampleRate uint32
}

// HintSampleEntry is the content of a hint sample entry.
type HintSampleEntry struct {
	DataReferenceIndex uint16
	Data               []byte
}

// ChunkOffsets is the content of a stco box.
type ChunkOffsets struct {
	Offsets []uint32
}

// SampleToChunk is the content of a stsc box.
type SampleToChunk struct {
	Entries []SampleToChunkEntry
}

type SampleToChunkEntry struct {
	FirstChunk             uint32
	SamplesPerChunk        uint32
	SampleDescriptionIndex uint32
}

// SyncSamples is the content of a stss box.
type SyncSamples struct {
	SampleNumbers []uint32
}

// SampleSizes is the content of a stsz box.
// EntrySizes is only set when SampleSize is 0.
type SampleSizes struct {
	SampleSize  uint32
	SampleCount uint32
	EntrySizes  []uint32
}

// TimeToSample is the content of a stts box.
type TimeToSample struct {
	Entries []TimeToSampleEntry
}

type TimeToSampleEntry struct {
	SampleCount uint32
	SampleDelta uint32
}

func (*FileType) isRecord()            {}
func (*Raw) isRecord()                 {}
func (*MediaData) isRecord()           {}
func (*BitRate) isRecord()             {}
func (*DataReference) isRecord()       {}
func (*DataEntryURL) isRecord()        {}
func (*DataEntryURN) isRecord()        {}
func (*Handler) isRecord()             {}
func (*OriginalFormat) isRecord()      {}
func (*SchemeType) isRecord()          {}
func (*PrimaryItem) isRecord()         {}
func (*ItemInfo) isRecord()            {}
func (*ItemInfoEntry) isRecord()       {}
func (*ItemLocation) isRecord()        {}
func (*ItemProtection) isRecord()      {}
func (*SpatialExtents) isRecord()      {}
func (*ImageRotation) isRecord()       {}
func (*PropertyAssociation) isRecord() {}
func (*MediaHeader) isRecord()         {}
func (*VideoMediaHeader) isRecord()    {}
func (*SoundMediaHeader) isRecord()    {}
func (*HintMediaHeader) isRecord()     {}
func (*MovieHeader) isRecord()         {}
func (*TrackHeader) isRecord()         {}
func (*SampleDescription) isRecord()   {}
func (*VisualSampleEntry) isRecord()   {}
func (*AudioSampleEntry) isRecord()    {}
func (*HintSampleEntry) isRecord()     {}
func (*ChunkOffsets) isRecord()        {}
func (*SampleToChunk) isRecord()       {}
func (*SyncSamples) isRecord()         {}
func (*SampleSizes) isRecord()         {}
func (*TimeToSample) isRecord()        {}
func (*HEVCConfiguration) isRecord()   {}
