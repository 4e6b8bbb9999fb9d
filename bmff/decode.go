// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package bmff

func decodeContainer(p *parser, box *Box) {
	p.readChildren(box)
}

func decodeRaw(p *parser, box *Box) {
	box.Record = &Raw{Data: p.readRaw()}
}

func decodeMediaData(p *parser, box *Box) {
	box.Record = &MediaData{DataOffset: p.pos, Length: box.BodySize()}
}

func decodeFileType(p *parser, box *Box) {
	rec := &FileType{
		MajorBrand:   p.readFourCC(),
		MinorVersion: p.read4(),
	}
	for p.remaining() >= 4 {
		rec.CompatibleBrands = append(rec.CompatibleBrands, p.readFourCC())
	}
	box.Record = rec
}

func decodeBitRate(p *parser, box *Box) {
	box.Record = &BitRate{
		BufferSizeDB: p.read4(),
		MaxBitrate:   p.read4(),
		AvgBitrate:   p.read4(),
	}
}

func decodeOriginalFormat(p *parser, box *Box) {
	box.Record = &OriginalFormat{DataFormat: p.readFourCC()}
}

func decodeDataReference(p *parser, box *Box) {
	count := p.readCount(8)
	box.Record = &DataReference{EntryCount: count}
	p.readEntries(box, int64(count))
}

func decodeDataEntryURL(p *parser, box *Box) {
	box.Record = &DataEntryURL{Location: p.readCString()}
}

func decodeDataEntryURN(p *parser, box *Box) {
	box.Record = &DataEntryURN{
		Name:     p.readCString(),
		Location: p.readCString(),
	}
}

func decodeHandler(p *parser, box *Box) {
	p.read4() // pre_defined
	rec := &Handler{HandlerType: p.readFourCC()}
	p.readBytes(12)
	rec.Name = p.readCString()
	box.Record = rec
}

func decodeSchemeType(p *parser, box *Box) {
	rec := &SchemeType{
		SchemeType:    p.readFourCC(),
		SchemeVersion: p.read4(),
	}
	if box.Flags&1 != 0 {
		rec.SchemeURI = p.readCString()
	}
	box.Record = rec
}

func decodeMovieHeader(p *parser, box *Box) {
	rec := &MovieHeader{
		CreationTime:     p.read4or8(box.Version),
		ModificationTime: p.read4or8(box.Version),
		Timescale:        p.read4(),
		Duration:         p.read4or8(box.Version),
		Rate:             p.read4(),
		Volume:           p.read2(),
	}
	// reserved
	p.readBytes(10)
	for i := range rec.Matrix {
		rec.Matrix[i] = p.read4()
	}
	// pre_defined
	p.readBytes(24)
	rec.NextTrackID = p.read4()
	box.Record = rec
}

func decodeTrackHeader(p *parser, box *Box) {
	rec := &TrackHeader{
		CreationTime:     p.read4or8(box.Version),
		ModificationTime: p.read4or8(box.Version),
		TrackID:          p.read4(),
	}
	p.read4()
	rec.Duration = p.read4or8(box.Version)
	p.readBytes(8)
	rec.Layer = int16(p.read2())
	rec.AlternateGroup = int16(p.read2())
	rec.Volume = p.read2()
	p.read2()
	for i := range rec.Matrix {
		rec.Matrix[i] = p.read4()
	}
	rec.Width = p.read4()
	rec.Height = p.read4()
	box.Record = rec
}

func decodeMediaHeader(p *parser, box *Box) {
	rec := &MediaHeader{
		CreationTime:     p.read4or8(box.Version),
		ModificationTime: p.read4or8(box.Version),
		Timescale:        p.read4(),
		Duration:         p.read4or8(box.Version),
	}
	// One pad bit and three 5 bit letters, each stored as the letter minus 0x60.
	lang := p.read2()
	rec.Language = string([]byte{
		byte(lang>>10&0x1f) + 0x60,
		byte(lang>>5&0x1f) + 0x60,
		byte(lang&0x1f) + 0x60,
	})
	p.read2()
	box.Record = rec
}

func decodeVideoMediaHeader(p *parser, box *Box) {
	rec := &VideoMediaHeader{GraphicsMode: p.read2()}
	for i := range rec.OpColor {
		rec.OpColor[i] = p.read2()
	}
	box.Record = rec
}

func decodeSoundMediaHeader(p *parser, box *Box) {
	box.Record = &SoundMediaHeader{Balance: int16(p.read2())}
	p.read2()
}

func decodeHintMediaHeader(p *parser, box *Box) {
	box.Record = &HintMediaHeader{
		MaxPDUSize: p.read2(),
		AvgPDUSize: p.read2(),
		MaxBitrate: p.read4(),
		AvgBitrate: p.read4(),
	}
	p.read4()
}

func decodeSampleDescription(p *parser, box *Box) {
	count := p.readCount(8)
	box.Record = &SampleDescription{EntryCount: count}
	p.readEntries(box, int64(count))
}

// readSampleEntry reads the fields common to all sample entries.
func readSampleEntry(p *parser) uint16 {
	p.readBytes(6)
	return p.read2()
}

func decodeVisualSampleEntry(p *parser, box *Box) {
	rec := &VisualSampleEntry{DataReferenceIndex: readSampleEntry(p)}
	p.readBytes(16)
	rec.Width = p.read2()
	rec.Height = p.read2()
	rec.HorizResolution = p.read4()
	rec.VertResolution = p.read4()
	p.read4()
	rec.FrameCount = p.read2()

	// A length byte followed by the name, padded to 32 bytes.
	name := p.readBytes(32)
	n := min(int(name[0]), 31)
	rec.CompressorName = decodeString(name[1 : 1+n])

	rec.Depth = p.read2()
	p.read2()
	box.Record = rec

	p.readChildren(box)
}

func decodeAudioSampleEntry(p *parser, box *Box) {
	rec := &AudioSampleEntry{DataReferenceIndex: readSampleEntry(p)}
	p.readBytes(8)
	rec.ChannelCount = p.read2()
	rec.SampleSize = p.read2()
	p.read4()
	rec.SampleRate = p.read4()
	box.Record = rec

	p.readChildren(box)
}

func decodeHintSampleEntry(p *parser, box *Box) {
	rec := &HintSampleEntry{DataReferenceIndex: readSampleEntry(p)}
	rec.Data = p.readRaw()
	box.Record = rec
}

func decodeChunkOffsets(p *parser, box *Box) {
	count := p.readCount(4)
	rec := &ChunkOffsets{Offsets: make([]uint32, count)}
	for i := range rec.Offsets {
		rec.Offsets[i] = p.read4()
	}
	box.Record = rec
}

func decodeSampleToChunk(p *parser, box *Box) {
	count := p.readCount(12)
	rec := &SampleToChunk{Entries: make([]SampleToChunkEntry, count)}
	for i := range rec.Entries {
		rec.Entries[i] = SampleToChunkEntry{
			FirstChunk:             p.read4(),
			SamplesPerChunk:        p.read4(),
			SampleDescriptionIndex: p.read4(),
		}
	}
	box.Record = rec
}

func decodeSyncSamples(p *parser, box *Box) {
	count := p.readCount(4)
	rec := &SyncSamples{SampleNumbers: make([]uint32, count)}
	for i := range rec.SampleNumbers {
		rec.SampleNumbers[i] = p.read4()
	}
	box.Record = rec
}

func decodeSampleSizes(p *parser, box *Box) {
	rec := &SampleSizes{
		SampleSize:  p.read4(),
		SampleCount: p.read4(),
	}
	if rec.SampleSize == 0 {
		p.checkCount(int64(rec.SampleCount), 4)
		rec.EntrySizes = make([]uint32, rec.SampleCount)
		for i := range rec.EntrySizes {
			rec.EntrySizes[i] = p.read4()
		}
	}
	box.Record = rec
}

func decodeTimeToSample(p *parser, box *Box) {
	count := p.readCount(8)
	rec := &TimeToSample{Entries: make([]TimeToSampleEntry, count)}
	for i := range rec.Entries {
		rec.Entries[i] = TimeToSampleEntry{
			SampleCount: p.read4(),
			SampleDelta: p.read4(),
		}
	}
	box.Record = rec
}
