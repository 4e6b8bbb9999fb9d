// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package bmff

type boxDecoder struct {
	// Full boxes have a version and flags field after the header.
	full bool

	// decode reads the body of box. It is only called for a non empty body.
	// A nil decode leaves the body unread.
	decode func(p *parser, box *Box)
}

// registry maps the known box types to their decoders.
// It is filled in init, as the container decoders refer back to it.
var registry map[BoxType]boxDecoder

// multiple lists box types that may legitimately repeat within a parent.
var multiple = map[BoxType]bool{
	TypeMdat: true,
	TypeFree: true,
	TypeSkip: true,
	TypeTrak: true,
}

// indexed lists container types whose children are referenced by position,
// so any child type may repeat.
var indexed = map[BoxType]bool{
	TypeIpco: true,
}

// IsKnown reports whether boxes of type t are decoded by Parse.
func IsKnown(t BoxType) bool {
	_, found := registry[t]
	return found
}

func init() {
	container := boxDecoder{decode: decodeContainer}
	raw := boxDecoder{decode: decodeRaw}
	visual := boxDecoder{decode: decodeVisualSampleEntry}
	audio := boxDecoder{decode: decodeAudioSampleEntry}

	registry = map[BoxType]boxDecoder{
		// Containers.
		TypeDinf: container,
		TypeIprp: container,
		TypeIpco: container,
		TypeMdia: container,
		TypeMinf: container,
		TypeMoov: container,
		TypeSinf: container,
		TypeSchi: container,
		TypeStbl: container,
		TypeTrak: container,
		TypeMeta: {full: true, decode: decodeContainer},

		// Opaque payloads.
		TypeAuxC: raw,
		TypeAv1C: raw,
		TypeAvcC: raw,
		TypeCcst: raw,
		TypeClap: raw,
		TypeColr: raw,
		TypeIdat: raw,
		TypeImir: raw,
		TypeIref: raw,
		TypePasp: raw,
		TypePixi: raw,
		TypeRloc: raw,
		TypeFree: {},
		TypeSkip: {},
		TypeMdat: {decode: decodeMediaData},

		TypeFtyp: {decode: decodeFileType},
		TypeBtrt: {decode: decodeBitRate},
		TypeFrma: {decode: decodeOriginalFormat},
		TypeIrot: {decode: decodeImageRotation},
		TypeHvcC: {decode: decodeHEVCConfiguration},

		TypeDref: {full: true, decode: decodeDataReference},
		TypeURL:  {full: true, decode: decodeDataEntryURL},
		TypeURN:  {full: true, decode: decodeDataEntryURN},
		TypeHdlr: {full: true, decode: decodeHandler},
		TypeSchm: {full: true, decode: decodeSchemeType},

		TypeIinf: {full: true, decode: decodeItemInfo},
		TypeInfe: {full: true, decode: decodeItemInfoEntry},
		TypeIloc: {full: true, decode: decodeItemLocation},
		TypeIpro: {full: true, decode: decodeItemProtection},
		TypeIspe: {full: true, decode: decodeSpatialExtents},
		TypeIpma: {full: true, decode: decodePropertyAssociation},
		TypePitm: {full: true, decode: decodePrimaryItem},

		TypeMvhd: {full: true, decode: decodeMovieHeader},
		TypeTkhd: {full: true, decode: decodeTrackHeader},
		TypeMdhd: {full: true, decode: decodeMediaHeader},
		TypeVmhd: {full: true, decode: decodeVideoMediaHeader},
		TypeSmhd: {full: true, decode: decodeSoundMediaHeader},
		TypeHmhd: {full: true, decode: decodeHintMediaHeader},
		TypeNmhd: {full: true},

		TypeStsd: {full: true, decode: decodeSampleDescription},
		TypeStco: {full: true, decode: decodeChunkOffsets},
		TypeStsc: {full: true, decode: decodeSampleToChunk},
		TypeStss: {full: true, decode: decodeSyncSamples},
		TypeStsz: {full: true, decode: decodeSampleSizes},
		TypeStts: {full: true, decode: decodeTimeToSample},

		// Sample entries.
		TypeVideo: visual,
		TypeHvc1:  visual,
		TypeHev1:  visual,
		TypeAvc1:  visual,
		TypeAv01:  visual,
		TypeAudio: audio,
		TypeMp4a:  audio,
		TypeHint:  {decode: decodeHintSampleEntry},
	}
}
