// pkg/unpack/texture.go
package unpack

import (
	"fmt"

	"github.com/kelvane/go-datpack/internal/binio"
	"github.com/kelvane/go-datpack/pkg/store"
)

// readTexture reassembles a texture file: an optional verbatim mip-chain
// preamble, then one compressed block chain per lod.
func (r *Reader) readTexture(off int64, meta store.FileMetadata) ([]byte, error) {
	lods, err := store.ReadTextureBlocks(r.rs, int(meta.BlockCount))
	if err != nil {
		return nil, err
	}

	dataBase := off + int64(meta.HeaderSize)
	data := make([]byte, 0, meta.RawSize)

	// The bytes before the first lod's compressed region are the texture's
	// own header, stored uncompressed and passed through as-is. A zero
	// offset means there is none.
	if len(lods) > 0 && lods[0].CompressedOffset > 0 {
		preamble, err := binio.ReadBytesAt(r.rs, dataBase, int(lods[0].CompressedOffset))
		if err != nil {
			return nil, fmt.Errorf("texture preamble: %w", err)
		}
		data = append(data, preamble...)
	}

	for i, lod := range lods {
		if lod.CompressedSize == 0 {
			// Empty lod, contributes nothing.
			continue
		}

		// Chained blocks sit back to back: each next block starts right
		// after the previous block's declared on-disk payload. A 2-byte
		// trailer closes each chain on disk; positions computed from the
		// declared sizes never touch it.
		next := dataBase + int64(lod.CompressedOffset)
		for j := uint32(0); j < lod.BlockCount; j++ {
			hdr, grown, err := DecodeBlockAt(r.rs, next, data)
			if err != nil {
				return nil, fmt.Errorf("texture lod %d block %d: %w", i, j, err)
			}
			data = grown
			next += store.BlockHeaderSize + int64(hdr.PayloadSize())
		}
	}
	return data, nil
}
