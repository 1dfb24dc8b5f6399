// Package chunk defines the unit of payload moved by the streaming output
// layer and the lazy, single-pass sequences it travels in.
//
// A Chunk is a tagged union of two representations: a typed numeric block
// (contiguous elements of one DType over a native byte buffer) and a generic
// byte chunk with no element interpretation. Sequences are pull-based and
// non-restartable: each chunk is produced once, consumed once, and never
// retained after it is written.
package chunk

import (
	"fmt"
	"iter"
	"unsafe"
)

// DType identifies the element type of a typed chunk. DTypeNone marks a
// generic byte chunk.
type DType uint8

const (
	DTypeNone DType = iota
	Uint8
	Int32
	Int64
	Float32
	Float64
)

// Size returns the element size in bytes, or 1 for DTypeNone.
func (d DType) Size() int {
	switch d {
	case Int32, Float32:
		return 4
	case Int64, Float64:
		return 8
	default:
		return 1
	}
}

func (d DType) String() string {
	switch d {
	case DTypeNone:
		return "none"
	case Uint8:
		return "uint8"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return fmt.Sprintf("dtype(%d)", uint8(d))
	}
}

// Chunk is one unit of payload. Typed chunks view their elements' native
// little-endian buffer; generic chunks carry arbitrary bytes. Chunks are
// immutable once produced and carry no identity beyond their position in
// the sequence.
type Chunk struct {
	dtype DType
	data  []byte
}

// Seq is a lazy sequence of chunks. Sequences are single-pass: ranging a
// second time over the same Seq is undefined. An error element terminates
// the sequence.
type Seq = iter.Seq2[Chunk, error]

// Source is a lazy sequence of heterogeneous values awaiting normalization
// into chunks.
type Source = iter.Seq2[any, error]

// FromBytes returns a generic chunk over b. The chunk aliases b; the caller
// must not mutate it afterwards.
func FromBytes(b []byte) Chunk { return Chunk{data: b} }

// FromString returns a generic chunk over the bytes of s.
func FromString(s string) Chunk { return Chunk{data: []byte(s)} }

// FromUint8s returns a typed chunk viewing v.
func FromUint8s(v []uint8) Chunk { return Chunk{dtype: Uint8, data: v} }

// FromInt32s returns a typed chunk viewing v's backing array. No copy.
func FromInt32s(v []int32) Chunk { return Chunk{dtype: Int32, data: view(v)} }

// FromInt64s returns a typed chunk viewing v's backing array. No copy.
func FromInt64s(v []int64) Chunk { return Chunk{dtype: Int64, data: view(v)} }

// FromFloat32s returns a typed chunk viewing v's backing array. No copy.
func FromFloat32s(v []float32) Chunk { return Chunk{dtype: Float32, data: view(v)} }

// FromFloat64s returns a typed chunk viewing v's backing array. No copy.
func FromFloat64s(v []float64) Chunk { return Chunk{dtype: Float64, data: view(v)} }

// DType reports the chunk's element type, DTypeNone for generic chunks.
func (c Chunk) DType() DType { return c.dtype }

// Typed reports whether the chunk is a typed numeric block.
func (c Chunk) Typed() bool { return c.dtype != DTypeNone }

// Bytes returns the chunk's byte representation: the native element buffer
// for typed chunks, the raw payload for generic chunks. The returned slice
// aliases the chunk; callers must not mutate it.
func (c Chunk) Bytes() []byte { return c.data }

// Len returns the element count for typed chunks and the byte count for
// generic chunks.
func (c Chunk) Len() int { return len(c.data) / c.dtype.Size() }

// Generic returns the chunk re-tagged as a generic byte chunk. The byte
// content is unchanged (the native buffer is already the portable
// little-endian layout), only the typed fast-path eligibility is dropped.
func (c Chunk) Generic() Chunk { return Chunk{data: c.data} }

// Int32s views the chunk's buffer as int32 elements. The chunk must have
// DType Int32.
func (c Chunk) Int32s() []int32 { return elems[int32](c, Int32) }

// Int64s views the chunk's buffer as int64 elements. The chunk must have
// DType Int64.
func (c Chunk) Int64s() []int64 { return elems[int64](c, Int64) }

// Float32s views the chunk's buffer as float32 elements. The chunk must
// have DType Float32.
func (c Chunk) Float32s() []float32 { return elems[float32](c, Float32) }

// Float64s views the chunk's buffer as float64 elements. The chunk must
// have DType Float64.
func (c Chunk) Float64s() []float64 { return elems[float64](c, Float64) }

type element interface {
	uint8 | int32 | int64 | float32 | float64
}

// view reinterprets a numeric slice as its native byte buffer. Layout is
// host order; supported platforms are little-endian (the same assumption
// parquet-go makes).
func view[T element](v []T) []byte {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*int(unsafe.Sizeof(v[0])))
}

func elems[T element](c Chunk, want DType) []T {
	if c.dtype != want {
		panic(fmt.Sprintf("chunk: %s view of %s chunk", want, c.dtype))
	}
	if len(c.data) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*T)(unsafe.Pointer(&c.data[0])), len(c.data)/int(unsafe.Sizeof(zero)))
}
