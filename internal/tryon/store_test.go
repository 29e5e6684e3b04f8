package tryon

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakeS3 struct {
	inputs []*s3.PutObjectInput
	err    error
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.inputs = append(f.inputs, params)
	return &s3.PutObjectOutput{}, nil
}

func TestS3PreviewStorePut(t *testing.T) {
	client := &fakeS3{}
	store := NewS3PreviewStore(client, "salon-previews", "https://cdn.salon.test", nil)
	if store == nil {
		t.Fatal("expected store")
	}

	url, err := store.Put(context.Background(), Image{MIMEType: "image/png", Data: []byte("png")})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !strings.HasPrefix(url, "https://cdn.salon.test/previews/") {
		t.Errorf("unexpected url: %s", url)
	}
	if !strings.HasSuffix(url, ".png") {
		t.Errorf("png upload must keep png extension: %s", url)
	}
	if len(client.inputs) != 1 || *client.inputs[0].Bucket != "salon-previews" {
		t.Fatalf("unexpected upload: %+v", client.inputs)
	}
	if *client.inputs[0].ContentType != "image/png" {
		t.Errorf("wrong content type: %s", *client.inputs[0].ContentType)
	}
}

func TestS3PreviewStorePutError(t *testing.T) {
	store := NewS3PreviewStore(&fakeS3{err: errors.New("denied")}, "salon-previews", "", nil)
	if _, err := store.Put(context.Background(), Image{MIMEType: "image/jpeg", Data: []byte("x")}); err == nil {
		t.Fatal("expected upload error")
	}
}

func TestNewS3PreviewStoreUnconfigured(t *testing.T) {
	if s := NewS3PreviewStore(nil, "bucket", "", nil); s != nil {
		t.Error("expected nil store without a client")
	}
	if s := NewS3PreviewStore(&fakeS3{}, "", "", nil); s != nil {
		t.Error("expected nil store without a bucket")
	}
}

func TestNewS3PreviewStoreDefaultBaseURL(t *testing.T) {
	store := NewS3PreviewStore(&fakeS3{}, "salon-previews", "", nil)
	url, err := store.Put(context.Background(), Image{MIMEType: "image/jpeg", Data: []byte("x")})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !strings.HasPrefix(url, "https://salon-previews.s3.amazonaws.com/") {
		t.Errorf("unexpected default base url: %s", url)
	}
}
