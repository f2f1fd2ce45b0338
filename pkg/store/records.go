// pkg/store/records.go
package store

// On-disk record layouts of the archive store. All integers are
// little-endian and records are packed, so binary.Size matches the
// constants below exactly.

const (
	// ArchiveHeaderSize is the fixed size of the record at offset 0.
	ArchiveHeaderSize = 24

	// FileMetadataSize is the size of the base per-file metadata record.
	FileMetadataSize = 16

	// ModelMetadataSize is the size of the extended record model files
	// carry in place of the base one (base prefix included).
	ModelMetadataSize = 94

	// StandardBlockSize is the size of one standard block-offset record.
	StandardBlockSize = 8

	// TextureBlockSize is the size of one texture LOD descriptor.
	TextureBlockSize = 20
)

// ArchiveHeader sits at offset 0 of every archive stream. The decoder only
// anchors offsets against it; none of the fields are interpreted here.
type ArchiveHeader struct {
	Magic        [8]byte
	HeaderLength uint32
	Version      uint32
	ContentKind  uint32
	Reserved     uint32
}

// FileMetadata is the base record at a file's offset. HeaderSize counts the
// metadata record plus the kind-specific tables that follow it; the block
// data area begins at fileOffset+HeaderSize.
type FileMetadata struct {
	HeaderSize uint32
	Kind       FileKind
	RawSize    uint32
	BlockCount uint32
}

// ModelLayout is the model-only suffix of the extended metadata record:
// where each region's blocks sit on disk (offsets relative to the data
// area), how many blocks each region has, and the scalars carried into the
// synthesized header.
type ModelLayout struct {
	Version           uint32
	StackOffset       uint32
	RuntimeOffset     uint32
	VertexOffset      [3]uint32
	EdgeOffset        [3]uint32
	IndexOffset       [3]uint32
	StackBlockCount   uint16
	RuntimeBlockCount uint16
	VertexBlockCount  [3]uint16
	EdgeBlockCount    [3]uint16
	IndexBlockCount   [3]uint16
	VertexDeclCount   uint16
	MaterialCount     uint16
	LODCount          uint8
	IndexStreaming    bool
	EdgeGeometry      bool
	Padding           uint8
}

// ModelMetadata is the extended metadata record read for KindModel files.
// The base prefix is decoded first and the suffix only afterwards, so a
// record of another kind can never be punned into the model shape.
type ModelMetadata struct {
	FileMetadata
	ModelLayout
}

// RegionClass names the kinds of contiguous regions a model file is
// split into.
type RegionClass int

const (
	RegionStack RegionClass = iota
	RegionRuntime
	RegionVertex
	RegionEdge
	RegionIndex
)

// String returns the string representation of the region class.
func (c RegionClass) String() string {
	switch c {
	case RegionStack:
		return "stack"
	case RegionRuntime:
		return "runtime"
	case RegionVertex:
		return "vertex"
	case RegionEdge:
		return "edge"
	case RegionIndex:
		return "index"
	default:
		return "unknown"
	}
}

// ModelRegion is one decode unit of a model file: a run of BlockCount
// blocks starting Offset bytes into the data area.
type ModelRegion struct {
	Class      RegionClass
	Slot       int // buffer-set slot for vertex/edge/index, 0 otherwise
	Offset     uint32
	BlockCount uint16
}

// Regions returns the model's regions in decode order: stack, runtime,
// then vertex/edge/index for each of the three buffer-set slots. The
// per-block compressed-size table is consumed in exactly this order.
func (l *ModelLayout) Regions() []ModelRegion {
	regions := make([]ModelRegion, 0, 11)
	regions = append(regions,
		ModelRegion{Class: RegionStack, Offset: l.StackOffset, BlockCount: l.StackBlockCount},
		ModelRegion{Class: RegionRuntime, Offset: l.RuntimeOffset, BlockCount: l.RuntimeBlockCount},
	)
	for slot := 0; slot < 3; slot++ {
		regions = append(regions,
			ModelRegion{Class: RegionVertex, Slot: slot, Offset: l.VertexOffset[slot], BlockCount: l.VertexBlockCount[slot]},
			ModelRegion{Class: RegionEdge, Slot: slot, Offset: l.EdgeOffset[slot], BlockCount: l.EdgeBlockCount[slot]},
			ModelRegion{Class: RegionIndex, Slot: slot, Offset: l.IndexOffset[slot], BlockCount: l.IndexBlockCount[slot]},
		)
	}
	return regions
}

// TotalBlocks sums the block counts of every region.
func (l *ModelLayout) TotalBlocks() int {
	total := 0
	for _, r := range l.Regions() {
		total += int(r.BlockCount)
	}
	return total
}

// StandardBlock is one entry of the block table that follows a standard
// file's metadata record. Offset is relative to the data area. The two
// size fields mirror the block's own header and are advisory only; the
// header at Offset stays authoritative during reconstruction.
type StandardBlock struct {
	Offset           uint32
	CompressedSize   uint16
	DecompressedSize uint16
}

// TextureBlock describes one LOD of a texture file: where its compressed
// region starts (relative to the data area), its compressed and
// decompressed totals, the LOD's offset inside the reconstructed mip
// chain, and how many chained blocks make it up. A zero CompressedSize
// means the LOD contributes nothing.
type TextureBlock struct {
	CompressedOffset uint32
	CompressedSize   uint32
	DecompressedSize uint32
	BlockOffset      uint32
	BlockCount       uint32
}
