// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package bmff

func decodePrimaryItem(p *parser, box *Box) {
	rec := &PrimaryItem{}
	if box.Version == 0 {
		rec.ItemID = uint32(p.read2())
	} else {
		rec.ItemID = p.read4()
	}
	box.Record = rec
}

func decodeSpatialExtents(p *parser, box *Box) {
	box.Record = &SpatialExtents{
		Width:  p.read4(),
		Height: p.read4(),
	}
}

func decodeImageRotation(p *parser, box *Box) {
	// 6 reserved bits, then the angle in steps of 90 degrees.
	box.Record = &ImageRotation{Angle: uint16(p.read1()&0x3) * 90}
}

func decodeItemProtection(p *parser, box *Box) {
	count := p.read2()
	box.Record = &ItemProtection{Count: count}
	p.readEntries(box, int64(count))
}

func decodeItemInfo(p *parser, box *Box) {
	var count uint32
	if box.Version == 0 {
		count = uint32(p.read2())
	} else {
		count = p.read4()
	}
	box.Record = &ItemInfo{EntryCount: count}
	p.readEntries(box, int64(count))
}

func decodeItemInfoEntry(p *parser, box *Box) {
	rec := &ItemInfoEntry{}
	box.Record = rec

	if box.Version < 2 {
		rec.ItemID = uint32(p.read2())
		rec.ProtectionIndex = p.read2()
		rec.Name = p.readCString()
		rec.ContentType = p.readCString()
		// Optional.
		rec.ContentEncoding = p.readCString()

		if box.Version == 1 && p.remaining() >= 4 {
			if p.readFourCC() == "fdel" {
				rec.Extension = readFDItemInfoExtension(p)
			}
		}
		return
	}

	if box.Version == 2 {
		rec.ItemID = uint32(p.read2())
	} else {
		rec.ItemID = p.read4()
	}
	rec.ProtectionIndex = p.read2()
	rec.ItemType = p.readFourCC()
	rec.Name = p.readCString()

	switch rec.ItemType {
	case "mime":
		rec.ContentType = p.readCString()
		rec.ContentEncoding = p.readCString()
	case "uri ":
		rec.URIType = p.readCString()
	}
}

func readFDItemInfoExtension(p *parser) *FDItemInfoExtension {
	ext := &FDItemInfoExtension{
		ContentLocation: p.readCString(),
		ContentMD5:      p.readCString(),
		ContentLength:   p.read8(),
		TransferLength:  p.read8(),
	}
	count := int64(p.read1())
	p.checkCount(count, 4)
	ext.GroupIDs = make([]uint32, count)
	for i := range ext.GroupIDs {
		ext.GroupIDs[i] = p.read4()
	}
	return ext
}

func decodeItemLocation(p *parser, box *Box) {
	rec := &ItemLocation{}
	box.Record = rec

	b := p.read1()
	rec.OffsetSize = b >> 4
	rec.LengthSize = b & 0xf
	b = p.read1()
	rec.BaseOffsetSize = b >> 4
	hasIndex := box.Version == 1 || box.Version == 2
	if hasIndex {
		rec.IndexSize = b & 0xf
	}

	var itemCount uint32
	if box.Version < 2 {
		itemCount = uint32(p.read2())
	} else {
		itemCount = p.read4()
	}
	// Item ID, data reference index and extent count.
	p.checkCount(int64(itemCount), 6)

	rec.Items = make([]ItemLocationItem, itemCount)
	for i := range rec.Items {
		item := &rec.Items[i]
		if box.Version < 2 {
			item.ItemID = uint32(p.read2())
		} else {
			item.ItemID = p.read4()
		}
		if hasIndex {
			item.ConstructionMethod = uint8(p.read2() & 0xf)
		}
		item.DataReferenceIndex = p.read2()
		item.BaseOffset = p.readN(rec.BaseOffsetSize)

		extentCount := int64(p.read2())
		// Extents with no fields at all still count as one byte here.
		p.checkCount(extentCount, max(1, int64(rec.IndexSize)+int64(rec.OffsetSize)+int64(rec.LengthSize)))
		item.Extents = make([]ItemLocationExtent, extentCount)
		for j := range item.Extents {
			extent := &item.Extents[j]
			if rec.IndexSize > 0 {
				extent.Index = p.readN(rec.IndexSize)
			}
			extent.Offset = p.readN(rec.OffsetSize)
			extent.Length = p.readN(rec.LengthSize)
		}
	}
}

func decodePropertyAssociation(p *parser, box *Box) {
	count := p.read4()
	// Item ID and association count.
	p.checkCount(int64(count), 3)

	rec := &PropertyAssociation{Entries: make([]PropertyAssociationEntry, count)}
	box.Record = rec

	wide := box.Flags&1 != 0
	for i := range rec.Entries {
		entry := &rec.Entries[i]
		if box.Version < 1 {
			entry.ItemID = uint32(p.read2())
		} else {
			entry.ItemID = p.read4()
		}
		n := int64(p.read1())
		if wide {
			p.checkCount(n, 2)
		} else {
			p.checkCount(n, 1)
		}
		entry.Associations = make([]ItemProperty, n)
		for j := range entry.Associations {
			// The high bit is the essential flag, the rest is the index.
			if wide {
				v := p.read2()
				entry.Associations[j] = ItemProperty{Essential: v>>15 == 1, Index: v & 0x7fff}
			} else {
				v := p.read1()
				entry.Associations[j] = ItemProperty{Essential: v>>7 == 1, Index: uint16(v & 0x7f)}
			}
		}
	}
}

// PrimaryItemProperties returns the property boxes associated with the
// primary item of the meta box, in association order.
// It returns nil if meta has no pitm, iprp/ipco or ipma box.
func PrimaryItemProperties(meta *Box) []*Box {
	if meta == nil {
		return nil
	}
	pitm := meta.Child(TypePitm)
	iprp := meta.Child(TypeIprp)
	if pitm == nil || iprp == nil {
		return nil
	}
	primary, ok := pitm.Record.(*PrimaryItem)
	if !ok {
		return nil
	}
	ipco := iprp.Child(TypeIpco)
	if ipco == nil {
		return nil
	}

	var props []*Box
	for _, ipma := range iprp.ChildrenOf(TypeIpma) {
		assoc, ok := ipma.Record.(*PropertyAssociation)
		if !ok {
			continue
		}
		for _, entry := range assoc.Entries {
			if entry.ItemID != primary.ItemID {
				continue
			}
			for _, prop := range entry.Associations {
				if prop.Index == 0 || int(prop.Index) > len(ipco.Children) {
					continue
				}
				props = append(props, ipco.Children[prop.Index-1])
			}
		}
	}
	return props
}
