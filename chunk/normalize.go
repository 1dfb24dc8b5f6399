package chunk

import "fmt"

// Values adapts already-produced values into a Source. Useful for callers
// that hold a batch in memory and for tests.
func Values(vals ...any) Source {
	return func(yield func(any, error) bool) {
		for _, v := range vals {
			if !yield(v, nil) {
				return
			}
		}
	}
}

// AsSource re-exposes an already-normalized chunk sequence as a Source, so
// transformed sequences (hashed, encoded) can feed back into operations
// that normalize their input. Normalization passes chunks through
// unchanged, so the round trip is free.
func AsSource(seq Seq) Source {
	return func(yield func(any, error) bool) {
		for c, err := range seq {
			if !yield(c, err) {
				return
			}
		}
	}
}

// Normalize turns a sequence of heterogeneous pieces into canonical chunks
// without forcing an element representation: typed slices become typed
// chunks, bytes and strings become generic chunks, chunks pass through
// unchanged. An unsupported value terminates the sequence with an error.
func Normalize(src Source) Seq {
	return func(yield func(Chunk, error) bool) {
		for v, err := range src {
			if err != nil {
				yield(Chunk{}, err)
				return
			}
			c, err := normalizeValue(v)
			if err != nil {
				yield(Chunk{}, err)
				return
			}
			if !yield(c, nil) {
				return
			}
		}
	}
}

func normalizeValue(v any) (Chunk, error) {
	switch v := v.(type) {
	case Chunk:
		return v, nil
	case []byte:
		return FromBytes(v), nil
	case string:
		return FromString(v), nil
	case []int32:
		return FromInt32s(v), nil
	case []int64:
		return FromInt64s(v), nil
	case []float32:
		return FromFloat32s(v), nil
	case []float64:
		return FromFloat64s(v), nil
	default:
		return Chunk{}, fmt.Errorf("normalize: unsupported value type %T", v)
	}
}

// Coerce converts each typed chunk in src toward dtype. DTypeNone drops the
// typed tagging, yielding the portable generic byte representation without
// copying. Generic chunks always pass through unchanged.
func Coerce(src Seq, dtype DType) Seq {
	return func(yield func(Chunk, error) bool) {
		for c, err := range src {
			if err != nil {
				yield(Chunk{}, err)
				return
			}
			out := c
			if c.Typed() {
				if dtype == DTypeNone {
					out = c.Generic()
				} else if c.dtype != dtype {
					out = convert(c, dtype)
				}
			}
			if !yield(out, nil) {
				return
			}
		}
	}
}

// convert re-encodes a typed chunk's elements as dtype. Conversions follow
// Go's numeric conversion rules per element.
func convert(c Chunk, to DType) Chunk {
	n := c.Len()
	switch to {
	case Uint8:
		out := make([]uint8, n)
		copyElems(c, out)
		return FromUint8s(out)
	case Int32:
		out := make([]int32, n)
		copyElems(c, out)
		return FromInt32s(out)
	case Int64:
		out := make([]int64, n)
		copyElems(c, out)
		return FromInt64s(out)
	case Float32:
		out := make([]float32, n)
		copyElems(c, out)
		return FromFloat32s(out)
	case Float64:
		out := make([]float64, n)
		copyElems(c, out)
		return FromFloat64s(out)
	default:
		panic(fmt.Sprintf("chunk: convert to %s", to))
	}
}

func copyElems[T element](c Chunk, out []T) {
	switch c.dtype {
	case Uint8:
		for i, v := range c.data {
			out[i] = T(v)
		}
	case Int32:
		for i, v := range c.Int32s() {
			out[i] = T(v)
		}
	case Int64:
		for i, v := range c.Int64s() {
			out[i] = T(v)
		}
	case Float32:
		for i, v := range c.Float32s() {
			out[i] = T(v)
		}
	case Float64:
		for i, v := range c.Float64s() {
			out[i] = T(v)
		}
	}
}
