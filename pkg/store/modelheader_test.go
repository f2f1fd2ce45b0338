// pkg/store/modelheader_test.go
package store

import (
	"encoding/binary"
	"testing"
)

func TestModelHeaderEncodeTo(t *testing.T) {
	h := ModelHeader{
		Version:         16777221,
		StackSize:       2048,
		RuntimeSize:     8192,
		VertexDeclCount: 3,
		MaterialCount:   2,
		VertexOffset:    [3]uint32{68, 11000, 0},
		IndexOffset:     [3]uint32{9000, 15000, 0},
		VertexSize:      [3]uint32{8932, 4000, 0},
		IndexSize:       [3]uint32{2000, 1000, 0},
		LODCount:        2,
		IndexStreaming:  false,
		EdgeGeometry:    true,
	}

	buf := make([]byte, ModelHeaderSize)
	h.EncodeTo(buf)

	// Spot-check the fixed field offsets.
	if got := binary.LittleEndian.Uint32(buf[0:4]); got != 16777221 {
		t.Errorf("Expected version at offset 0, got %d", got)
	}
	if got := binary.LittleEndian.Uint32(buf[4:8]); got != 2048 {
		t.Errorf("Expected stack size at offset 4, got %d", got)
	}
	if got := binary.LittleEndian.Uint32(buf[8:12]); got != 8192 {
		t.Errorf("Expected runtime size at offset 8, got %d", got)
	}
	if got := binary.LittleEndian.Uint16(buf[12:14]); got != 3 {
		t.Errorf("Expected vertex declaration count at offset 12, got %d", got)
	}
	if got := binary.LittleEndian.Uint16(buf[14:16]); got != 2 {
		t.Errorf("Expected material count at offset 14, got %d", got)
	}
	if got := binary.LittleEndian.Uint32(buf[16:20]); got != 68 {
		t.Errorf("Expected first vertex offset at offset 16, got %d", got)
	}
	if got := binary.LittleEndian.Uint32(buf[28:32]); got != 9000 {
		t.Errorf("Expected first index offset at offset 28, got %d", got)
	}
	if got := binary.LittleEndian.Uint32(buf[40:44]); got != 8932 {
		t.Errorf("Expected first vertex size at offset 40, got %d", got)
	}
	if got := binary.LittleEndian.Uint32(buf[52:56]); got != 2000 {
		t.Errorf("Expected first index size at offset 52, got %d", got)
	}
	if buf[64] != 2 {
		t.Errorf("Expected lod count at offset 64, got %d", buf[64])
	}
	if buf[65] != 0 {
		t.Errorf("Expected index streaming flag 0, got %d", buf[65])
	}
	if buf[66] != 1 {
		t.Errorf("Expected edge geometry flag 1, got %d", buf[66])
	}
	if buf[67] != 0 {
		t.Errorf("Expected zero padding byte, got %d", buf[67])
	}
}

func TestModelHeaderRoundTrip(t *testing.T) {
	want := ModelHeader{
		Version:        16777220,
		StackSize:      100,
		RuntimeSize:    200,
		VertexOffset:   [3]uint32{68, 0, 0},
		IndexOffset:    [3]uint32{500, 0, 0},
		VertexSize:     [3]uint32{432, 0, 0},
		IndexSize:      [3]uint32{96, 0, 0},
		LODCount:       1,
		IndexStreaming: true,
	}

	buf := make([]byte, ModelHeaderSize)
	want.EncodeTo(buf)

	var got ModelHeader
	if err := got.DecodeFrom(buf); err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("Round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestModelHeaderDecodeShort(t *testing.T) {
	var h ModelHeader
	if err := h.DecodeFrom(make([]byte, ModelHeaderSize-1)); err == nil {
		t.Error("Expected error for short buffer")
	}
}

func TestModelHeaderEncodeOverwritesPadding(t *testing.T) {
	// The header is written over a reserved range that is not otherwise
	// initialized, so EncodeTo must cover every byte of it.
	buf := make([]byte, ModelHeaderSize)
	for i := range buf {
		buf[i] = 0xAA
	}

	var h ModelHeader
	h.EncodeTo(buf)

	for i, b := range buf {
		if b != 0 {
			t.Fatalf("Byte %d not overwritten: %#x", i, b)
		}
	}
}
