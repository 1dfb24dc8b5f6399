package sink

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3 uploads written streams as objects under a bucket/prefix. It is a
// destination opener: Open returns a caller-owned handle that streams the
// upload as bytes are written.
type S3 struct {
	client s3API

	bucket    string
	bucketPtr *string
	prefix    string
}

func NewS3(client s3API, bucket, prefix string) *S3 {
	if client == nil {
		panic("s3 client is required")
	}
	if strings.TrimSpace(bucket) == "" {
		panic("bucket is required")
	}

	s := &S3{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
	s.bucketPtr = &s.bucket
	return s
}

func (s *S3) key(key string) string {
	key = strings.TrimLeft(key, "/")
	if s.prefix != "" {
		key = s.prefix + "/" + key
	}
	return key
}

// Put uploads data as one object. Buffered path for payloads already in
// memory.
func (s *S3) Put(ctx context.Context, key, contentType string, data []byte) error {
	if key == "" {
		return fmt.Errorf("empty key")
	}
	key = s.key(key)

	cl := int64(len(data))
	input := s3.PutObjectInput{
		Bucket:        s.bucketPtr,
		Key:           &key,
		Body:          strings.NewReader(string(data)),
		ContentLength: &cl,
	}
	if contentType != "" {
		input.ContentType = &contentType
	}

	if _, err := s.client.PutObject(ctx, &input); err != nil {
		return fmt.Errorf("put s3 object key=%q: %w", key, err)
	}
	return nil
}

// Open starts a streaming upload to key and returns the write side. Bytes
// are transferred as they are written; the object is committed when the
// returned stream is closed, and Close reports the upload result.
func (s *S3) Open(ctx context.Context, key, contentType string) (io.WriteCloser, error) {
	if key == "" {
		return nil, fmt.Errorf("empty key")
	}
	key = s.key(key)

	pr, pw := io.Pipe()
	obj := &s3Object{pw: pw, done: make(chan error, 1)}

	go func() {
		input := s3.PutObjectInput{
			Bucket: s.bucketPtr,
			Key:    &key,
			Body:   pr,
		}
		if contentType != "" {
			input.ContentType = &contentType
		}
		_, err := s.client.PutObject(ctx, &input)
		if err != nil {
			err = fmt.Errorf("put s3 object key=%q: %w", key, err)
		}
		// Unblock the writer if the upload failed mid-stream.
		pr.CloseWithError(err)
		obj.done <- err
	}()

	return obj, nil
}

type s3Object struct {
	pw   *io.PipeWriter
	done chan error
}

func (o *s3Object) Write(p []byte) (int, error) { return o.pw.Write(p) }

func (o *s3Object) Close() error {
	o.pw.Close()
	return <-o.done
}
