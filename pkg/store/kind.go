// pkg/store/kind.go
package store

import "fmt"

// FileKind is the discriminant a file metadata record carries to describe
// the structural layout of the stored file.
type FileKind uint32

const (
	// KindEmpty marks a slot with no stored data. Reading it is an error.
	KindEmpty FileKind = 0

	// KindStandard is a flat file split into offset-addressed blocks.
	KindStandard FileKind = 2

	// KindModel is the composite kind: content split into named regions
	// (stack, runtime, vertex/edge/index buffer groups), each independently
	// block-compressed. Reconstruction synthesizes a new header for it.
	KindModel FileKind = 3

	// KindTexture is a file with per-LOD block chains and an optional
	// verbatim mip-chain preamble.
	KindTexture FileKind = 4
)

// Supported reports whether the kind has a reconstruction strategy. Any
// discriminant outside the known set is unsupported by definition.
func (k FileKind) Supported() bool {
	switch k {
	case KindStandard, KindModel, KindTexture:
		return true
	default:
		return false
	}
}

// Ext returns the conventional output extension for files of this kind.
func (k FileKind) Ext() string {
	switch k {
	case KindModel:
		return ".mdl"
	case KindTexture:
		return ".tex"
	default:
		return ".dat"
	}
}

// String returns the string representation of the kind.
func (k FileKind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindStandard:
		return "standard"
	case KindModel:
		return "model"
	case KindTexture:
		return "texture"
	default:
		return fmt.Sprintf("unsupported(%d)", uint32(k))
	}
}
