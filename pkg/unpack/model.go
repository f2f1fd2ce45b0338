// pkg/unpack/model.go
package unpack

import (
	"fmt"

	"github.com/kelvane/go-datpack/pkg/store"
)

// readModel reassembles a composite model file. The extended metadata
// record is re-read in full at off, so the dispatcher's base record never
// crosses into this path.
//
// Decode walks the regions in their fixed order, pulling one on-disk
// stride per block from a single contiguous size table. Output positions
// and decoded lengths are tracked per region and written back over the
// reserved range at the front of the buffer as the synthesized header,
// replacing the storage layout with the reconstructed one downstream
// consumers expect.
func (r *Reader) readModel(off int64) ([]byte, *store.ModelHeader, error) {
	mm, err := store.ReadModelMetadata(r.rs, off)
	if err != nil {
		return nil, nil, err
	}

	total := mm.TotalBlocks()
	if total > int(mm.BlockCount) {
		return nil, nil, fmt.Errorf("%d region blocks against %d declared: %w", total, mm.BlockCount, ErrBlockCountOverflow)
	}

	// One contiguous run of stride values, consumed across all regions in
	// decode order. Reading it after the overflow check keeps a corrupt
	// record from indexing past the table.
	sizes, err := store.ReadBlockSizes(r.rs, total)
	if err != nil {
		return nil, nil, err
	}

	capacity := int(mm.RawSize)
	if capacity < store.ModelHeaderSize {
		capacity = store.ModelHeaderSize
	}
	data := make([]byte, store.ModelHeaderSize, capacity)

	hdr := &store.ModelHeader{
		Version:         mm.Version,
		VertexDeclCount: mm.VertexDeclCount,
		MaterialCount:   mm.MaterialCount,
		LODCount:        mm.LODCount,
		IndexStreaming:  mm.IndexStreaming,
		EdgeGeometry:    mm.EdgeGeometry,
	}

	dataBase := off + int64(mm.HeaderSize)
	table := 0
	for _, region := range mm.Regions() {
		start := len(data)
		diskOff := dataBase + int64(region.Offset)
		for b := uint16(0); b < region.BlockCount; b++ {
			if _, data, err = DecodeBlockAt(r.rs, diskOff, data); err != nil {
				return nil, nil, fmt.Errorf("%s region block %d: %w", region.Class, b, err)
			}
			diskOff += int64(sizes[table])
			table++
		}
		decoded := uint32(len(data) - start)

		switch region.Class {
		case store.RegionStack:
			hdr.StackSize = decoded
		case store.RegionRuntime:
			hdr.RuntimeSize = decoded
		case store.RegionVertex:
			if region.BlockCount > 0 {
				hdr.VertexOffset[region.Slot] = uint32(start)
				hdr.VertexSize[region.Slot] = decoded
			}
		case store.RegionIndex:
			if region.BlockCount > 0 {
				hdr.IndexOffset[region.Slot] = uint32(start)
				hdr.IndexSize[region.Slot] = decoded
			}
		case store.RegionEdge:
			// Decoded into place, but the synthesized header has no slot
			// for edge geometry.
		}
	}

	hdr.EncodeTo(data[:store.ModelHeaderSize])
	return data, hdr, nil
}
