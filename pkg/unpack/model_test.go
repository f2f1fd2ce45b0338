// pkg/unpack/model_test.go
package unpack

import (
	"bytes"
	"errors"
	"testing"

	"github.com/kelvane/go-datpack/internal/storetest"
	"github.com/kelvane/go-datpack/pkg/store"
)

func TestReadFileModel(t *testing.T) {
	stack := bytes.Repeat([]byte{0x51}, 40)
	runtime := bytes.Repeat([]byte{0x52}, 30)
	v0a := bytes.Repeat([]byte{0x60}, 50)
	v0b := bytes.Repeat([]byte{0x61}, 60)
	e0 := bytes.Repeat([]byte{0x70}, 20)
	i0 := bytes.Repeat([]byte{0x80}, 24)
	v1 := bytes.Repeat([]byte{0x62}, 16)
	i1 := bytes.Repeat([]byte{0x81}, 8)

	spec := storetest.ModelSpec{
		Version:         16777221,
		Stack:           []storetest.Block{{Data: stack}},
		Runtime:         []storetest.Block{{Data: runtime}},
		VertexDeclCount: 2,
		MaterialCount:   3,
		LODCount:        2,
		IndexStreaming:  true,
		EdgeGeometry:    true,
	}
	spec.Vertex[0] = []storetest.Block{{Data: v0a}, {Data: v0b}}
	spec.Edge[0] = []storetest.Block{{Data: e0, Raw: true}}
	spec.Index[0] = []storetest.Block{{Data: i0}}
	spec.Vertex[1] = []storetest.Block{{Data: v1}}
	spec.Index[1] = []storetest.Block{{Data: i1}}

	b := storetest.NewArchive()
	off := b.AddModel(spec)

	f, err := NewReader(b.Reader()).ReadFile(off)
	if err != nil {
		t.Fatal(err)
	}
	if f.Meta.Kind != store.KindModel {
		t.Errorf("Expected model kind, got %v", f.Meta.Kind)
	}
	if f.Model == nil {
		t.Fatal("Expected synthesized model header")
	}

	// Content: header range, then regions in decode order.
	want := make([]byte, store.ModelHeaderSize)
	for _, region := range [][]byte{stack, runtime, v0a, v0b, e0, i0, v1, i1} {
		want = append(want, region...)
	}
	if len(f.Data) != len(want) {
		t.Fatalf("Expected %d bytes, got %d", len(want), len(f.Data))
	}
	if !bytes.Equal(f.Data[store.ModelHeaderSize:], want[store.ModelHeaderSize:]) {
		t.Error("Region bytes not concatenated in decode order")
	}

	hdr := f.Model
	if hdr.StackSize != 40 {
		t.Errorf("Expected stack size 40, got %d", hdr.StackSize)
	}
	if hdr.RuntimeSize != 30 {
		t.Errorf("Expected runtime size 30, got %d", hdr.RuntimeSize)
	}

	// Output walk: header 68, stack 40, runtime 30 puts vertex slot 0 at
	// 138; its 110 bytes plus 20 edge bytes put index slot 0 at 268; and
	// so on through slot 1.
	if hdr.VertexOffset[0] != 138 || hdr.VertexSize[0] != 110 {
		t.Errorf("Vertex slot 0: expected offset 138 size 110, got %d/%d", hdr.VertexOffset[0], hdr.VertexSize[0])
	}
	if hdr.IndexOffset[0] != 268 || hdr.IndexSize[0] != 24 {
		t.Errorf("Index slot 0: expected offset 268 size 24, got %d/%d", hdr.IndexOffset[0], hdr.IndexSize[0])
	}
	if hdr.VertexOffset[1] != 292 || hdr.VertexSize[1] != 16 {
		t.Errorf("Vertex slot 1: expected offset 292 size 16, got %d/%d", hdr.VertexOffset[1], hdr.VertexSize[1])
	}
	if hdr.IndexOffset[1] != 308 || hdr.IndexSize[1] != 8 {
		t.Errorf("Index slot 1: expected offset 308 size 8, got %d/%d", hdr.IndexOffset[1], hdr.IndexSize[1])
	}
	if hdr.VertexOffset[2] != 0 || hdr.VertexSize[2] != 0 {
		t.Errorf("Unpopulated vertex slot 2 must stay zero, got %d/%d", hdr.VertexOffset[2], hdr.VertexSize[2])
	}

	// Populated vertex offsets must not decrease slot to slot.
	if hdr.VertexOffset[1] < hdr.VertexOffset[0] {
		t.Errorf("Vertex offsets decreased: %d then %d", hdr.VertexOffset[0], hdr.VertexOffset[1])
	}

	// Region bytes land at the recorded offsets.
	if got := f.Data[hdr.VertexOffset[0] : hdr.VertexOffset[0]+hdr.VertexSize[0]]; !bytes.Equal(got, append(append([]byte{}, v0a...), v0b...)) {
		t.Error("Vertex slot 0 bytes not at recorded offset")
	}
	if got := f.Data[hdr.IndexOffset[1] : hdr.IndexOffset[1]+hdr.IndexSize[1]]; !bytes.Equal(got, i1) {
		t.Error("Index slot 1 bytes not at recorded offset")
	}

	// Carried scalars.
	if hdr.Version != 16777221 {
		t.Errorf("Expected version carried through, got %d", hdr.Version)
	}
	if hdr.VertexDeclCount != 2 || hdr.MaterialCount != 3 || hdr.LODCount != 2 {
		t.Errorf("Scalars not carried: %+v", hdr)
	}
	if !hdr.IndexStreaming || !hdr.EdgeGeometry {
		t.Errorf("Flags not carried: %+v", hdr)
	}

	// The header at the front of the buffer is the same one returned.
	var onDisk store.ModelHeader
	if err := onDisk.DecodeFrom(f.Data[:store.ModelHeaderSize]); err != nil {
		t.Fatal(err)
	}
	if onDisk != *hdr {
		t.Errorf("Buffer header differs from returned header:\n got %+v\nwant %+v", onDisk, *hdr)
	}
}

func TestReadFileModelEmptyStackBlock(t *testing.T) {
	// One stack block that decodes to nothing, one 48-byte vertex block:
	// the vertex region starts right after the synthesized header.
	vertex := bytes.Repeat([]byte{0x42}, 48)

	spec := storetest.ModelSpec{
		Stack:    []storetest.Block{{Data: nil}},
		LODCount: 1,
	}
	spec.Vertex[0] = []storetest.Block{{Data: vertex}}

	b := storetest.NewArchive()
	off := b.AddModel(spec)

	f, err := NewReader(b.Reader()).ReadFile(off)
	if err != nil {
		t.Fatal(err)
	}
	hdr := f.Model
	if hdr.StackSize != 0 {
		t.Errorf("Expected empty stack region, got %d bytes", hdr.StackSize)
	}
	if hdr.VertexOffset[0] != store.ModelHeaderSize {
		t.Errorf("Expected vertex region at %d, got %d", store.ModelHeaderSize, hdr.VertexOffset[0])
	}
	if hdr.VertexSize[0] != 48 {
		t.Errorf("Expected vertex size 48, got %d", hdr.VertexSize[0])
	}
	if len(f.Data) != store.ModelHeaderSize+48 {
		t.Errorf("Expected %d bytes, got %d", store.ModelHeaderSize+48, len(f.Data))
	}
}

func TestReadFileModelBlockCountOverflow(t *testing.T) {
	spec := storetest.ModelSpec{
		Stack:              []storetest.Block{{Data: []byte("one")}, {Data: []byte("two")}},
		DeclaredBlockDelta: -1,
	}

	b := storetest.NewArchive()
	off := b.AddModel(spec)

	// Truncate right after the metadata record: reaching the size table
	// at all would fail with an EOF error, so getting the overflow error
	// proves the check runs first.
	img := b.Bytes()[:off+store.ModelMetadataSize]

	_, err := NewReader(bytes.NewReader(img)).ReadFile(off)
	if err == nil {
		t.Fatal("Expected error for overflowing block counts")
	}
	if !errors.Is(err, ErrBlockCountOverflow) {
		t.Errorf("Expected ErrBlockCountOverflow, got %v", err)
	}
}

func TestReadFileModelDeclaredOvercount(t *testing.T) {
	// A declared count above the region total leaves table entries
	// unused; that is tolerated.
	spec := storetest.ModelSpec{
		Stack:              []storetest.Block{{Data: []byte("stack bytes")}},
		DeclaredBlockDelta: 3,
	}

	b := storetest.NewArchive()
	off := b.AddModel(spec)

	f, err := NewReader(b.Reader()).ReadFile(off)
	if err != nil {
		t.Fatal(err)
	}
	if f.Model.StackSize != 11 {
		t.Errorf("Expected stack size 11, got %d", f.Model.StackSize)
	}
}

func TestReadFileModelStridePadding(t *testing.T) {
	// Blocks separated by padding: positions must come from the stride
	// table, not from assuming blocks sit back to back.
	parts := [][]byte{
		bytes.Repeat([]byte{0x01}, 33),
		bytes.Repeat([]byte{0x02}, 57),
		bytes.Repeat([]byte{0x03}, 12),
	}

	spec := storetest.ModelSpec{BlockPad: 4}
	for _, p := range parts {
		spec.Stack = append(spec.Stack, storetest.Block{Data: p})
	}

	b := storetest.NewArchive()
	off := b.AddModel(spec)

	f, err := NewReader(b.Reader()).ReadFile(off)
	if err != nil {
		t.Fatal(err)
	}

	var want []byte
	for _, p := range parts {
		want = append(want, p...)
	}
	if !bytes.Equal(f.Data[store.ModelHeaderSize:], want) {
		t.Errorf("Padded stride reconstruction mismatch: %d bytes vs %d wanted",
			len(f.Data)-store.ModelHeaderSize, len(want))
	}
	if f.Model.StackSize != uint32(len(want)) {
		t.Errorf("Expected stack size %d, got %d", len(want), f.Model.StackSize)
	}
}

func TestReadFileModelNoRegions(t *testing.T) {
	spec := storetest.ModelSpec{Version: 7, LODCount: 1}

	b := storetest.NewArchive()
	off := b.AddModel(spec)

	f, err := NewReader(b.Reader()).ReadFile(off)
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Data) != store.ModelHeaderSize {
		t.Errorf("Expected header-only output, got %d bytes", len(f.Data))
	}
	if f.Model.Version != 7 {
		t.Errorf("Expected version 7, got %d", f.Model.Version)
	}
}
