// pkg/store/modelheader.go
package store

import (
	"encoding/binary"
	"fmt"
)

// ModelHeaderSize is the fixed binary size of the header synthesized at
// the front of a reassembled model payload.
const ModelHeaderSize = 68

// ModelHeader describes where each decoded model region landed in the
// output buffer. It is written over the reserved bytes at the front of the
// payload once all regions have been decoded, so consumers can locate
// vertex and index data without re-parsing the archive.
type ModelHeader struct {
	Version         uint32
	StackSize       uint32
	RuntimeSize     uint32
	VertexDeclCount uint16
	MaterialCount   uint16
	VertexOffset    [3]uint32
	IndexOffset     [3]uint32
	VertexSize      [3]uint32
	IndexSize       [3]uint32
	LODCount        uint8
	IndexStreaming  bool
	EdgeGeometry    bool
}

// EncodeTo writes the header to the given buffer.
// The buffer must be at least ModelHeaderSize bytes.
func (h *ModelHeader) EncodeTo(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], h.Version)
	binary.LittleEndian.PutUint32(buf[4:8], h.StackSize)
	binary.LittleEndian.PutUint32(buf[8:12], h.RuntimeSize)
	binary.LittleEndian.PutUint16(buf[12:14], h.VertexDeclCount)
	binary.LittleEndian.PutUint16(buf[14:16], h.MaterialCount)
	for i := 0; i < 3; i++ {
		binary.LittleEndian.PutUint32(buf[16+i*4:20+i*4], h.VertexOffset[i])
		binary.LittleEndian.PutUint32(buf[28+i*4:32+i*4], h.IndexOffset[i])
		binary.LittleEndian.PutUint32(buf[40+i*4:44+i*4], h.VertexSize[i])
		binary.LittleEndian.PutUint32(buf[52+i*4:56+i*4], h.IndexSize[i])
	}
	buf[64] = h.LODCount
	buf[65] = boolByte(h.IndexStreaming)
	buf[66] = boolByte(h.EdgeGeometry)
	buf[67] = 0
}

// DecodeFrom reads the header from the given buffer.
func (h *ModelHeader) DecodeFrom(data []byte) error {
	if len(data) < ModelHeaderSize {
		return fmt.Errorf("model header too short: need %d, got %d", ModelHeaderSize, len(data))
	}
	h.Version = binary.LittleEndian.Uint32(data[0:4])
	h.StackSize = binary.LittleEndian.Uint32(data[4:8])
	h.RuntimeSize = binary.LittleEndian.Uint32(data[8:12])
	h.VertexDeclCount = binary.LittleEndian.Uint16(data[12:14])
	h.MaterialCount = binary.LittleEndian.Uint16(data[14:16])
	for i := 0; i < 3; i++ {
		h.VertexOffset[i] = binary.LittleEndian.Uint32(data[16+i*4 : 20+i*4])
		h.IndexOffset[i] = binary.LittleEndian.Uint32(data[28+i*4 : 32+i*4])
		h.VertexSize[i] = binary.LittleEndian.Uint32(data[40+i*4 : 44+i*4])
		h.IndexSize[i] = binary.LittleEndian.Uint32(data[52+i*4 : 56+i*4])
	}
	h.LODCount = data[64]
	h.IndexStreaming = data[65] != 0
	h.EdgeGeometry = data[66] != 0
	return nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
