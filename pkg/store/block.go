// pkg/store/block.go
package store

const (
	// BlockHeaderSize is the fixed size of the header preceding every
	// block payload.
	BlockHeaderSize = 16

	// RawBlockSentinel is the CompressedSize value marking a block whose
	// payload is stored verbatim instead of deflate-compressed.
	RawBlockSentinel = 32000
)

// BlockHeader precedes every block payload on disk.
type BlockHeader struct {
	Size             uint32 // on-disk block size hint; the format leaves it unused
	Reserved         uint32
	CompressedSize   uint32
	DecompressedSize uint32
}

// BlockCoding tells how a block's payload is stored.
type BlockCoding byte

const (
	CodingDeflate BlockCoding = iota
	CodingRaw
)

// String returns the string representation of the coding.
func (c BlockCoding) String() string {
	switch c {
	case CodingDeflate:
		return "deflate"
	case CodingRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// Coding classifies the block under the raw-storage escape rule: a
// CompressedSize equal to RawBlockSentinel means the payload is stored
// uncompressed. This method is the one place that rule lives.
func (h BlockHeader) Coding() BlockCoding {
	if h.CompressedSize == RawBlockSentinel {
		return CodingRaw
	}
	return CodingDeflate
}

// PayloadSize returns the number of on-disk payload bytes following the
// header: the compressed run for deflate blocks, the verbatim run for raw
// blocks.
func (h BlockHeader) PayloadSize() uint32 {
	if h.Coding() == CodingRaw {
		return h.DecompressedSize
	}
	return h.CompressedSize
}
