package writer

import (
	"bytes"
	"testing"

	"github.com/zeebo/blake3"

	"github.com/baldanca/chunkio/chunk"
)

func TestTapHash_MatchesDirectAbsorption(t *testing.T) {
	pieces := [][]byte{[]byte("c1"), []byte("c2"), []byte("c3")}

	direct := blake3.New()
	for _, p := range pieces {
		direct.Write(p)
	}

	tapped := blake3.New()
	seq := TapHash(chunk.Normalize(chunk.Values([]byte("c1"), []byte("c2"), []byte("c3"))), tapped)

	var got [][]byte
	for c, err := range seq {
		if err != nil {
			t.Fatalf("sequence error: %v", err)
		}
		got = append(got, c.Bytes())
	}

	if len(got) != len(pieces) {
		t.Fatalf("yielded %d chunks, want %d", len(got), len(pieces))
	}
	for i := range pieces {
		if !bytes.Equal(got[i], pieces[i]) {
			t.Fatalf("chunk %d altered by tap: %q", i, got[i])
		}
	}
	if !bytes.Equal(tapped.Sum(nil), direct.Sum(nil)) {
		t.Fatalf("tapped digest differs from direct absorption")
	}
}

func TestTapHash_EarlyAbortReflectsConsumedChunks(t *testing.T) {
	digest := blake3.New()
	seq := TapHash(chunk.Normalize(chunk.Values([]byte("a"), []byte("b"), []byte("c"))), digest)

	var consumed int
	for _, err := range seq {
		if err != nil {
			t.Fatalf("sequence error: %v", err)
		}
		consumed++
		if consumed == 2 {
			break
		}
	}

	want := blake3.New()
	want.Write([]byte("a"))
	want.Write([]byte("b"))
	if !bytes.Equal(digest.Sum(nil), want.Sum(nil)) {
		t.Fatalf("digest does not reflect exactly the consumed chunks")
	}
}

func TestTapHash_TypedChunksAbsorbNativeBytes(t *testing.T) {
	floats := []float64{1.0, 2.0}

	digest := blake3.New()
	seq := TapHash(chunk.Normalize(chunk.Values(floats)), digest)
	for _, err := range seq {
		if err != nil {
			t.Fatalf("sequence error: %v", err)
		}
	}

	want := blake3.New()
	want.Write(chunk.FromFloat64s(floats).Bytes())
	if !bytes.Equal(digest.Sum(nil), want.Sum(nil)) {
		t.Fatalf("typed chunk digest mismatch")
	}
}
