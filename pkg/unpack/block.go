// pkg/unpack/block.go
package unpack

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"

	"github.com/kelvane/go-datpack/internal/binio"
	"github.com/kelvane/go-datpack/pkg/store"
)

// DecodeBlock reads one block from the current cursor and appends its
// decoded bytes to dst, returning the block's header and the grown slice.
// Raw blocks are copied verbatim; deflate blocks are inflated and must
// produce exactly the declared decompressed size.
//
// The cursor ends exactly past the block's on-disk payload, so chained
// layouts can derive the next block position from the returned header. On
// error the visible contents of dst are unchanged.
func DecodeBlock(r io.ReadSeeker, dst []byte) (store.BlockHeader, []byte, error) {
	hdr, err := store.ReadBlockHeader(r)
	if err != nil {
		return store.BlockHeader{}, dst, err
	}

	// Pull the whole on-disk payload into memory first. The cursor
	// postcondition then holds even when inflation fails midway.
	payload, err := binio.ReadBytes(r, int(hdr.PayloadSize()))
	if err != nil {
		return hdr, dst, fmt.Errorf("read block payload: %w", err)
	}

	if hdr.Coding() == store.CodingRaw {
		return hdr, append(dst, payload...), nil
	}

	fr := flate.NewReader(bytes.NewReader(payload))
	defer fr.Close()

	out := make([]byte, hdr.DecompressedSize)
	if _, err := io.ReadFull(fr, out); err != nil {
		return hdr, dst, fmt.Errorf("%w: inflate: %v", ErrDecompression, err)
	}

	// The declared size is authoritative: a stream that keeps producing
	// bytes past it is corrupt, same as one that stops short.
	var probe [1]byte
	if n, _ := fr.Read(probe[:]); n != 0 {
		return hdr, dst, fmt.Errorf("%w: stream exceeds declared size %d", ErrDecompression, hdr.DecompressedSize)
	}

	return hdr, append(dst, out...), nil
}

// DecodeBlockAt seeks to off and decodes the block there. See DecodeBlock
// for the cursor and ownership contract.
func DecodeBlockAt(r io.ReadSeeker, off int64, dst []byte) (store.BlockHeader, []byte, error) {
	if _, err := r.Seek(off, io.SeekStart); err != nil {
		return store.BlockHeader{}, dst, fmt.Errorf("seek to block at %#x: %w", off, err)
	}
	return DecodeBlock(r, dst)
}
