// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package bmff

// HEVCConfiguration is the HEVC decoder configuration record in a hvcC box.
// Bit widths are noted where a field does not fill its type.
type HEVCConfiguration struct {
	ConfigurationVersion uint8

	GeneralProfileSpace uint8 // 2 bits
	GeneralTierFlag     bool
	GeneralProfileIDC   uint8 // 5 bits

	GeneralProfileCompatibilityFlags uint32
	GeneralConstraintIndicatorFlags  uint64 // 48 bits
	GeneralLevelIDC                  uint8

	MinSpatialSegmentationIDC uint16 // 12 bits
	ParallelismType           uint8  // 2 bits
	ChromaFormat              uint8  // 2 bits
	BitDepthLumaMinus8        uint8  // 3 bits
	BitDepthChromaMinus8      uint8  // 3 bits

	AvgFrameRate       uint16
	ConstantFrameRate  uint8 // 2 bits
	NumTemporalLayers  uint8 // 3 bits
	TemporalIDNested   bool
	LengthSizeMinusOne uint8 // 2 bits

	Arrays []HEVCNALArray
}

// HEVCNALArray holds the NAL units of one type, e.g. the parameter sets.
type HEVCNALArray struct {
	Completeness bool
	NALUnitType  uint8 // 6 bits
	NALUnits     [][]byte
}

func decodeHEVCConfiguration(p *parser, box *Box) {
	c := &HEVCConfiguration{}
	box.Record = c

	c.ConfigurationVersion = p.read1()

	b := p.read1()
	c.GeneralProfileSpace = b >> 6
	c.GeneralTierFlag = b>>5&0x1 == 1
	c.GeneralProfileIDC = b & 0x1f

	c.GeneralProfileCompatibilityFlags = p.read4()
	c.GeneralConstraintIndicatorFlags = p.read6()
	c.GeneralLevelIDC = p.read1()

	// 4 reserved bits, then 12 bits spanning two bytes.
	c.MinSpatialSegmentationIDC = p.read2() & 0x0fff

	// The following bytes start with 6, 6, 5 and 5 reserved bits.
	c.ParallelismType = p.read1() & 0x3
	c.ChromaFormat = p.read1() & 0x3
	c.BitDepthLumaMinus8 = p.read1() & 0x7
	c.BitDepthChromaMinus8 = p.read1() & 0x7

	c.AvgFrameRate = p.read2()

	b = p.read1()
	c.ConstantFrameRate = b >> 6
	c.NumTemporalLayers = b >> 3 & 0x7
	c.TemporalIDNested = b>>2&0x1 == 1
	c.LengthSizeMinusOne = b & 0x3

	numArrays := int64(p.read1())
	// Type byte and unit count.
	p.checkCount(numArrays, 3)
	c.Arrays = make([]HEVCNALArray, numArrays)
	for i := range c.Arrays {
		a := &c.Arrays[i]
		b := p.read1()
		a.Completeness = b>>7 == 1
		a.NALUnitType = b & 0x3f

		numUnits := int64(p.read2())
		p.checkCount(numUnits, 2)
		a.NALUnits = make([][]byte, numUnits)
		for j := range a.NALUnits {
			n := int64(p.read2())
			a.NALUnits[j] = p.readBytes(n)
		}
	}
}
