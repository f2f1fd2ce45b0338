// pkg/unpack/standard.go
package unpack

import (
	"fmt"

	"github.com/kelvane/go-datpack/pkg/store"
)

// readStandard reassembles a flat file. Each table entry names a block
// offset inside the data area; blocks are decoded and concatenated in
// table order, which is also storage order. No header synthesis: the
// concatenation is the file.
func (r *Reader) readStandard(off int64, meta store.FileMetadata) ([]byte, error) {
	blocks, err := store.ReadStandardBlocks(r.rs, int(meta.BlockCount))
	if err != nil {
		return nil, err
	}

	dataBase := off + int64(meta.HeaderSize)
	data := make([]byte, 0, meta.RawSize)
	for i, b := range blocks {
		if _, data, err = DecodeBlockAt(r.rs, dataBase+int64(b.Offset), data); err != nil {
			return nil, fmt.Errorf("standard block %d: %w", i, err)
		}
	}
	return data, nil
}
