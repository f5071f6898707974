package cloudwriter

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakeS3 struct {
	calls  int
	bucket string
	key    string
	body   []byte
	err    error
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.calls++
	f.bucket = *params.Bucket
	f.key = *params.Key
	f.body, _ = io.ReadAll(params.Body)
	return &s3.PutObjectOutput{}, f.err
}

func TestS3WriterUploadsOnClose(t *testing.T) {
	client := &fakeS3{}
	w, err := NewS3WriterFactoryWithClient(client).NewWriter("events", "order_status_events/data.parquet")
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	if _, err := w.Write([]byte("PAR1")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := w.Write([]byte("rows")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if client.calls != 0 {
		t.Fatalf("uploaded before Close")
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if client.calls != 1 || client.bucket != "events" || client.key != "order_status_events/data.parquet" {
		t.Fatalf("upload = %+v", client)
	}
	if string(client.body) != "PAR1rows" {
		t.Fatalf("body = %q", client.body)
	}
	if _, err := w.Write([]byte("late")); err == nil {
		t.Fatalf("expected write after close to fail")
	}
}

func TestS3WriterReportsUploadError(t *testing.T) {
	client := &fakeS3{err: errors.New("access denied")}
	w, _ := NewS3WriterFactoryWithClient(client).NewWriter("events", "x")
	if err := w.Close(); err == nil {
		t.Fatalf("expected upload error")
	}
}

func TestS3WriterNeedsBucket(t *testing.T) {
	if _, err := NewS3WriterFactoryWithClient(&fakeS3{}).NewWriter("", "x"); err == nil {
		t.Fatalf("expected error without bucket")
	}
}
