package encoder

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/baldanca/chunkio/chunk"
)

type event struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func drain(t *testing.T, seq chunk.Seq) []chunk.Chunk {
	t.Helper()
	var out []chunk.Chunk
	for c, err := range seq {
		if err != nil {
			t.Fatalf("sequence error: %v", err)
		}
		out = append(out, c)
	}
	return out
}

func TestNDJSON_OneLinePerRecord(t *testing.T) {
	items := []event{{ID: 1, Name: "a"}, {ID: 2, Name: "b&c"}}
	enc := NDJSON[event]{}

	if enc.FileExtension() != ".ndjson" {
		t.Fatalf("extension = %q", enc.FileExtension())
	}

	chunks := drain(t, enc.Chunks(context.Background(), items))
	if len(chunks) != len(items) {
		t.Fatalf("got %d chunks, want %d", len(chunks), len(items))
	}

	for i, c := range chunks {
		line := c.Bytes()
		if line[len(line)-1] != '\n' {
			t.Fatalf("chunk %d not newline-terminated: %q", i, line)
		}
		var got event
		if err := json.Unmarshal(line, &got); err != nil {
			t.Fatalf("chunk %d unmarshal: %v", i, err)
		}
		if got != items[i] {
			t.Fatalf("chunk %d = %+v, want %+v", i, got, items[i])
		}
	}

	// SetEscapeHTML(false): "&" must remain literal.
	if !bytes.Contains(chunks[1].Bytes(), []byte("b&c")) {
		t.Fatalf("HTML escaping applied: %q", chunks[1].Bytes())
	}
}

func TestNDJSON_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var sawErr error
	for _, err := range (NDJSON[event]{}).Chunks(ctx, []event{{ID: 1}}) {
		sawErr = err
	}
	if sawErr == nil {
		t.Fatalf("expected context error")
	}
}

func TestNDJSON_EarlyStop(t *testing.T) {
	items := []event{{ID: 1}, {ID: 2}, {ID: 3}}

	var pulled int
	for _, err := range (NDJSON[event]{}).Chunks(context.Background(), items) {
		if err != nil {
			t.Fatalf("sequence error: %v", err)
		}
		pulled++
		break
	}
	if pulled != 1 {
		t.Fatalf("pulled = %d, want 1", pulled)
	}
}
