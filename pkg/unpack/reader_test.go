// pkg/unpack/reader_test.go
package unpack

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"testing"

	"github.com/kelvane/go-datpack/internal/storetest"
	"github.com/kelvane/go-datpack/pkg/store"
)

func TestReadFileEmptySlot(t *testing.T) {
	b := storetest.NewArchive()
	off := b.AddEmpty()

	// The record is the last thing in the image, so any attempt to read
	// past it would surface as an EOF error instead.
	_, err := NewReader(b.Reader()).ReadFile(off)
	if err == nil {
		t.Fatal("Expected error for empty slot")
	}
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Expected ErrFileNotFound, got %v", err)
	}
}

func TestReadFileUnsupportedKind(t *testing.T) {
	for _, kind := range []uint32{1, 5, 99} {
		t.Run(fmt.Sprintf("kind %d", kind), func(t *testing.T) {
			b := storetest.NewArchive()
			off := b.AddKind(kind)

			_, err := NewReader(b.Reader()).ReadFile(off)
			if !errors.Is(err, ErrUnsupportedKind) {
				t.Errorf("Expected ErrUnsupportedKind, got %v", err)
			}
		})
	}
}

func TestReadFileStandardTwoRawBlocks(t *testing.T) {
	first := []byte("0123456789")           // 10 bytes
	second := bytes.Repeat([]byte("x"), 20) // 20 bytes

	b := storetest.NewArchive()
	off := b.AddStandard([]storetest.Block{
		{Data: first, Raw: true},
		{Data: second, Raw: true},
	})

	f, err := NewReader(b.Reader()).ReadFile(off)
	if err != nil {
		t.Fatal(err)
	}
	if f.Meta.Kind != store.KindStandard {
		t.Errorf("Expected standard kind, got %v", f.Meta.Kind)
	}
	if len(f.Data) != 30 {
		t.Errorf("Expected 30 bytes, got %d", len(f.Data))
	}
	if want := append(append([]byte{}, first...), second...); !bytes.Equal(f.Data, want) {
		t.Errorf("Expected both payloads concatenated in order, got %q", f.Data)
	}
	if f.Model != nil {
		t.Error("Standard file should carry no model header")
	}
}

func TestReadFileStandardTableOrder(t *testing.T) {
	blocks := []storetest.Block{
		{Data: []byte("alpha-")},
		{Data: []byte("bravo-")},
		{Data: []byte("charlie")},
	}

	// Disk layout stays 0,1,2 but the table lists 2,0,1; output must
	// follow the table.
	b := storetest.NewArchive()
	off := b.AddStandardShuffled(blocks, []int{2, 0, 1})

	f, err := NewReader(b.Reader()).ReadFile(off)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(f.Data), "charliealpha-bravo-"; got != want {
		t.Errorf("Expected table-ordered output %q, got %q", want, got)
	}
}

func TestReadFileStandardMixedCoding(t *testing.T) {
	b := storetest.NewArchive()
	off := b.AddStandard([]storetest.Block{
		{Data: bytes.Repeat([]byte("compress me "), 20)},
		{Data: []byte{0xDE, 0xAD, 0xBE, 0xEF}, Raw: true},
		{Data: bytes.Repeat([]byte("and me too "), 10)},
	})

	f, err := NewReader(b.Reader()).ReadFile(off)
	if err != nil {
		t.Fatal(err)
	}
	want := append(bytes.Repeat([]byte("compress me "), 20), 0xDE, 0xAD, 0xBE, 0xEF)
	want = append(want, bytes.Repeat([]byte("and me too "), 10)...)
	if !bytes.Equal(f.Data, want) {
		t.Errorf("Mixed coding reconstruction mismatch: %d bytes vs %d wanted", len(f.Data), len(want))
	}
}

func TestReadFileStandardHeaderSlack(t *testing.T) {
	// Padded headers move the data area; the declared HeaderSize must be
	// honored over the written table length.
	b := storetest.NewArchive()
	b.HeaderSlack = 48
	off := b.AddStandard([]storetest.Block{{Data: []byte("past the slack")}})

	f, err := NewReader(b.Reader()).ReadFile(off)
	if err != nil {
		t.Fatal(err)
	}
	if string(f.Data) != "past the slack" {
		t.Errorf("Expected data past slack, got %q", f.Data)
	}
}

func TestReadFileRawSizeMismatchIsDiagnostic(t *testing.T) {
	b := storetest.NewArchive()
	off := b.AddStandard([]storetest.Block{{Data: []byte("eight by")}})

	// Corrupt the declared raw size in place; offset 8 is the RawSize
	// field of the metadata record.
	img := b.Bytes()
	binary.LittleEndian.PutUint32(img[off+8:], 9999)

	var logged []string
	logf := func(format string, args ...any) {
		logged = append(logged, fmt.Sprintf(format, args...))
	}

	f, err := NewReader(bytes.NewReader(img), WithLogf(logf)).ReadFile(off)
	if err != nil {
		t.Fatalf("Size mismatch must not fail the read: %v", err)
	}
	if string(f.Data) != "eight by" {
		t.Errorf("Expected content despite mismatch, got %q", f.Data)
	}
	if f.Meta.RawSize != 9999 {
		t.Errorf("Expected declared size surfaced as 9999, got %d", f.Meta.RawSize)
	}
	if len(logged) != 1 {
		t.Fatalf("Expected one diagnostic, got %d: %v", len(logged), logged)
	}
}

func TestReadFileMatchingSizeStaysSilent(t *testing.T) {
	b := storetest.NewArchive()
	off := b.AddStandard([]storetest.Block{{Data: []byte("exact")}})

	var logged int
	f, err := NewReader(b.Reader(), WithLogf(func(string, ...any) { logged++ })).ReadFile(off)
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Data) != 5 {
		t.Errorf("Expected 5 bytes, got %d", len(f.Data))
	}
	if logged != 0 {
		t.Errorf("Expected no diagnostics, got %d", logged)
	}
}

func TestReadFileMetadataPastEnd(t *testing.T) {
	b := storetest.NewArchive()
	_, err := NewReader(b.Reader()).ReadFile(4096)
	if !errors.Is(err, ErrUnexpectedEOF) {
		t.Errorf("Expected ErrUnexpectedEOF, got %v", err)
	}
}

func TestReadFileCorruptBlockFails(t *testing.T) {
	b := storetest.NewArchive()
	off := b.AddStandard([]storetest.Block{{Data: bytes.Repeat([]byte("block"), 40)}})

	// Flip bytes inside the compressed payload.
	img := append([]byte{}, b.Bytes()...)
	for i := len(img) - 8; i < len(img); i++ {
		img[i] ^= 0xFF
	}

	_, err := NewReader(bytes.NewReader(img)).ReadFile(off)
	if err == nil {
		t.Fatal("Expected error for corrupt block")
	}
	if !errors.Is(err, ErrDecompression) && !errors.Is(err, ErrUnexpectedEOF) {
		t.Errorf("Expected decompression or EOF error, got %v", err)
	}
}
