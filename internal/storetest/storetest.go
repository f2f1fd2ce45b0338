// internal/storetest/storetest.go

// Package storetest assembles archive images in memory so decoder tests
// can work against known inputs. The library itself never writes archives.
package storetest

import (
	"bytes"
	"encoding/binary"

	"github.com/klauspost/compress/flate"

	"github.com/kelvane/go-datpack/pkg/store"
)

// Block is one block to place in a file's data area.
type Block struct {
	Data []byte // decoded content
	Raw  bool   // store verbatim under the sentinel instead of deflate
}

// Deflate compresses data as a raw deflate stream.
func Deflate(data []byte) []byte {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		panic(err)
	}
	if _, err := w.Write(data); err != nil {
		panic(err)
	}
	if err := w.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// EncodeBlock encodes one block as its 16-byte header plus payload.
func EncodeBlock(blk Block) []byte {
	payload := blk.Data
	hdr := store.BlockHeader{DecompressedSize: uint32(len(blk.Data))}
	if blk.Raw {
		hdr.CompressedSize = store.RawBlockSentinel
	} else {
		payload = Deflate(blk.Data)
		hdr.CompressedSize = uint32(len(payload))
	}
	hdr.Size = store.BlockHeaderSize + uint32(len(payload))

	var buf bytes.Buffer
	mustWrite(binary.Write(&buf, binary.LittleEndian, hdr))
	buf.Write(payload)
	return buf.Bytes()
}

// Builder accumulates an archive image file by file.
type Builder struct {
	buf bytes.Buffer

	// HeaderSlack pads every file's declared HeaderSize past the records
	// and tables actually written, pushing the data area back. Zero keeps
	// headers tight.
	HeaderSlack uint32
}

// NewArchive starts an image with the archive header at offset 0.
func NewArchive() *Builder {
	b := &Builder{}
	hdr := store.ArchiveHeader{HeaderLength: store.ArchiveHeaderSize, Version: 1}
	copy(hdr.Magic[:], "DatPack\x00")
	mustWrite(binary.Write(&b.buf, binary.LittleEndian, hdr))
	return b
}

// Pos returns the offset the next file will be placed at.
func (b *Builder) Pos() int64 { return int64(b.buf.Len()) }

// Pad appends n zero bytes.
func (b *Builder) Pad(n int) { b.buf.Write(make([]byte, n)) }

// Bytes returns the assembled image.
func (b *Builder) Bytes() []byte { return b.buf.Bytes() }

// Reader returns a fresh stream over the assembled image.
func (b *Builder) Reader() *bytes.Reader { return bytes.NewReader(b.Bytes()) }

// AddEmpty appends an empty-slot metadata record and returns its offset.
func (b *Builder) AddEmpty() int64 {
	return b.AddKind(uint32(store.KindEmpty))
}

// AddKind appends a bare metadata record with an arbitrary discriminant
// and no data, for dispatch tests.
func (b *Builder) AddKind(kind uint32) int64 {
	off := b.Pos()
	m := store.FileMetadata{HeaderSize: store.FileMetadataSize, Kind: store.FileKind(kind)}
	mustWrite(binary.Write(&b.buf, binary.LittleEndian, m))
	return off
}

// AddStandard appends a standard file whose table lists the blocks in the
// order given.
func (b *Builder) AddStandard(blocks []Block) int64 {
	order := make([]int, len(blocks))
	for i := range order {
		order[i] = i
	}
	return b.AddStandardShuffled(blocks, order)
}

// AddStandardShuffled lays blocks out sequentially on disk but writes the
// offset table in the given record order, so reconstruction must follow
// the table rather than disk position.
func (b *Builder) AddStandardShuffled(blocks []Block, order []int) int64 {
	off := b.Pos()

	encoded := make([][]byte, len(blocks))
	offsets := make([]uint32, len(blocks))
	pos := uint32(0)
	var rawSize uint32
	for i, blk := range blocks {
		encoded[i] = EncodeBlock(blk)
		offsets[i] = pos
		pos += uint32(len(encoded[i]))
		rawSize += uint32(len(blk.Data))
	}

	meta := store.FileMetadata{
		HeaderSize: uint32(store.FileMetadataSize+len(blocks)*store.StandardBlockSize) + b.HeaderSlack,
		Kind:       store.KindStandard,
		RawSize:    rawSize,
		BlockCount: uint32(len(blocks)),
	}
	mustWrite(binary.Write(&b.buf, binary.LittleEndian, meta))
	for _, i := range order {
		rec := store.StandardBlock{
			Offset:           offsets[i],
			CompressedSize:   uint16(len(encoded[i])),
			DecompressedSize: uint16(len(blocks[i].Data)),
		}
		mustWrite(binary.Write(&b.buf, binary.LittleEndian, rec))
	}
	b.Pad(int(b.HeaderSlack))
	for _, e := range encoded {
		b.buf.Write(e)
	}
	return off
}

// TextureLOD is one mip level of a texture file. A level without blocks
// gets a zero-compressed-size descriptor.
type TextureLOD struct {
	Blocks []Block
}

// AddTexture appends a texture file: the preamble is stored verbatim ahead
// of the first chain, and each lod's blocks are chained back to back with
// the on-disk 2-byte trailer after every chain.
func (b *Builder) AddTexture(preamble []byte, lods []TextureLOD) int64 {
	off := b.Pos()

	type chain struct {
		encoded [][]byte
		diskLen uint32
		decoded uint32
	}
	chains := make([]chain, len(lods))
	for i, lod := range lods {
		for _, blk := range lod.Blocks {
			e := EncodeBlock(blk)
			chains[i].encoded = append(chains[i].encoded, e)
			chains[i].diskLen += uint32(len(e))
			chains[i].decoded += uint32(len(blk.Data))
		}
	}

	rawSize := uint32(len(preamble))
	descs := make([]store.TextureBlock, len(lods))
	pos := uint32(len(preamble))
	outPos := uint32(len(preamble))
	for i := range lods {
		descs[i] = store.TextureBlock{
			CompressedOffset: pos,
			CompressedSize:   chains[i].diskLen,
			DecompressedSize: chains[i].decoded,
			BlockOffset:      outPos,
			BlockCount:       uint32(len(chains[i].encoded)),
		}
		if chains[i].diskLen > 0 {
			pos += chains[i].diskLen + 2
		}
		outPos += chains[i].decoded
		rawSize += chains[i].decoded
	}

	meta := store.FileMetadata{
		HeaderSize: uint32(store.FileMetadataSize+len(lods)*store.TextureBlockSize) + b.HeaderSlack,
		Kind:       store.KindTexture,
		RawSize:    rawSize,
		BlockCount: uint32(len(lods)),
	}
	mustWrite(binary.Write(&b.buf, binary.LittleEndian, meta))
	if len(descs) > 0 {
		mustWrite(binary.Write(&b.buf, binary.LittleEndian, descs))
	}
	b.Pad(int(b.HeaderSlack))
	b.buf.Write(preamble)
	for _, c := range chains {
		if c.diskLen == 0 {
			continue
		}
		for _, e := range c.encoded {
			b.buf.Write(e)
		}
		b.buf.Write([]byte{0, 0})
	}
	return off
}

// ModelSpec lays out a model file region by region.
type ModelSpec struct {
	Version             uint32
	Stack, Runtime      []Block
	Vertex, Edge, Index [3][]Block

	VertexDeclCount uint16
	MaterialCount   uint16
	LODCount        uint8
	IndexStreaming  bool
	EdgeGeometry    bool

	// BlockPad inserts zero bytes after every encoded block. The stride
	// table accounts for the padding, so decoders must position blocks from
	// the table rather than assume disk adjacency.
	BlockPad int

	// DeclaredBlockDelta offsets the metadata's declared block count from
	// the real region total, to provoke the overflow check.
	DeclaredBlockDelta int
}

// AddModel appends a model file: extended metadata, the contiguous stride
// table, then every region's blocks in decode order.
func (b *Builder) AddModel(spec ModelSpec) int64 {
	off := b.Pos()

	regionBlocks := [][]Block{spec.Stack, spec.Runtime}
	for slot := 0; slot < 3; slot++ {
		regionBlocks = append(regionBlocks, spec.Vertex[slot], spec.Edge[slot], spec.Index[slot])
	}

	var (
		area    bytes.Buffer
		strides []uint16
		offsets = make([]uint32, len(regionBlocks))
		total   int
	)
	for ri, blocks := range regionBlocks {
		offsets[ri] = uint32(area.Len())
		for _, blk := range blocks {
			e := EncodeBlock(blk)
			area.Write(e)
			area.Write(make([]byte, spec.BlockPad))
			strides = append(strides, uint16(len(e)+spec.BlockPad))
			total++
		}
	}

	layout := store.ModelLayout{
		Version:           spec.Version,
		StackOffset:       offsets[0],
		RuntimeOffset:     offsets[1],
		StackBlockCount:   uint16(len(spec.Stack)),
		RuntimeBlockCount: uint16(len(spec.Runtime)),
		VertexDeclCount:   spec.VertexDeclCount,
		MaterialCount:     spec.MaterialCount,
		LODCount:          spec.LODCount,
		IndexStreaming:    spec.IndexStreaming,
		EdgeGeometry:      spec.EdgeGeometry,
	}
	for slot := 0; slot < 3; slot++ {
		layout.VertexOffset[slot] = offsets[2+slot*3]
		layout.EdgeOffset[slot] = offsets[3+slot*3]
		layout.IndexOffset[slot] = offsets[4+slot*3]
		layout.VertexBlockCount[slot] = uint16(len(spec.Vertex[slot]))
		layout.EdgeBlockCount[slot] = uint16(len(spec.Edge[slot]))
		layout.IndexBlockCount[slot] = uint16(len(spec.Index[slot]))
	}

	rawSize := uint32(store.ModelHeaderSize)
	for _, blocks := range regionBlocks {
		for _, blk := range blocks {
			rawSize += uint32(len(blk.Data))
		}
	}

	meta := store.FileMetadata{
		HeaderSize: uint32(store.ModelMetadataSize+2*total) + b.HeaderSlack,
		Kind:       store.KindModel,
		RawSize:    rawSize,
		BlockCount: uint32(total + spec.DeclaredBlockDelta),
	}
	mustWrite(binary.Write(&b.buf, binary.LittleEndian, meta))
	mustWrite(binary.Write(&b.buf, binary.LittleEndian, layout))
	if len(strides) > 0 {
		mustWrite(binary.Write(&b.buf, binary.LittleEndian, strides))
	}
	b.Pad(int(b.HeaderSlack))
	b.buf.Write(area.Bytes())
	return off
}

func mustWrite(err error) {
	if err != nil {
		panic(err)
	}
}
