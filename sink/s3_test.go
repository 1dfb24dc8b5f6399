package sink

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakeS3API struct {
	mu sync.Mutex

	putCalls int
	lastIn   *s3.PutObjectInput
	lastBody []byte

	putErr error
}

func (f *fakeS3API) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.mu.Lock()
	f.putCalls++
	f.lastIn = in
	putErr := f.putErr
	f.mu.Unlock()

	if putErr != nil {
		return nil, putErr
	}

	if in.Body != nil {
		b, err := io.ReadAll(in.Body)
		if err != nil {
			return nil, err
		}
		f.mu.Lock()
		f.lastBody = b
		f.mu.Unlock()
	}
	return &s3.PutObjectOutput{}, nil
}

func TestNewS3_RequiresClientAndBucket(t *testing.T) {
	assertPanics := func(name string, fn func()) {
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		fn()
	}
	assertPanics("nil client", func() { NewS3(nil, "bucket", "") })
	assertPanics("empty bucket", func() { NewS3(&fakeS3API{}, "  ", "") })
}

func TestS3_Put(t *testing.T) {
	fake := &fakeS3API{}
	s := NewS3(fake, "bucket", "/exports/")

	if err := s.Put(context.Background(), "a/b.csv", "text/csv", []byte("1,2\n")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if fake.putCalls != 1 {
		t.Fatalf("putCalls = %d, want 1", fake.putCalls)
	}
	if got := *fake.lastIn.Key; got != "exports/a/b.csv" {
		t.Fatalf("key = %q", got)
	}
	if got := *fake.lastIn.Bucket; got != "bucket" {
		t.Fatalf("bucket = %q", got)
	}
	if got := *fake.lastIn.ContentType; got != "text/csv" {
		t.Fatalf("content type = %q", got)
	}
	if string(fake.lastBody) != "1,2\n" {
		t.Fatalf("body = %q", fake.lastBody)
	}
}

func TestS3_Put_EmptyKey(t *testing.T) {
	s := NewS3(&fakeS3API{}, "bucket", "")
	if err := s.Put(context.Background(), "", "", nil); err == nil {
		t.Fatalf("expected error for empty key")
	}
}

func TestS3_Open_StreamsBody(t *testing.T) {
	fake := &fakeS3API{}
	s := NewS3(fake, "bucket", "exports")

	obj, err := s.Open(context.Background(), "out.gz", "application/gzip")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	var want bytes.Buffer
	for _, piece := range []string{"first ", "second ", "third"} {
		if _, err := obj.Write([]byte(piece)); err != nil {
			t.Fatalf("Write: %v", err)
		}
		want.WriteString(piece)
	}
	if err := obj.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if got := *fake.lastIn.Key; got != "exports/out.gz" {
		t.Fatalf("key = %q", got)
	}
	if !bytes.Equal(fake.lastBody, want.Bytes()) {
		t.Fatalf("body = %q, want %q", fake.lastBody, want.Bytes())
	}
}

func TestS3_Open_UploadErrorSurfacesOnClose(t *testing.T) {
	boom := errors.New("access denied")
	fake := &fakeS3API{putErr: boom}
	s := NewS3(fake, "bucket", "")

	obj, err := s.Open(context.Background(), "out.bin", "")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	// The upload may fail before or after this write lands; only Close's
	// verdict is contractual.
	_, _ = obj.Write([]byte("payload"))
	if err := obj.Close(); !errors.Is(err, boom) {
		t.Fatalf("Close error = %v, want %v", err, boom)
	}
}
