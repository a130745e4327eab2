package receipt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const gcsScheme = "gs://"

// GCS keeps receipts in a Google Cloud Storage bucket. Credentials come from
// Application Default Credentials unless options say otherwise.
type GCS struct {
	client *storage.Client
	bucket string
}

func NewGCS(ctx context.Context, bucket string, opts ...option.ClientOption) (*GCS, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &GCS{client: client, bucket: bucket}, nil
}

func (g *GCS) Close() error {
	return g.client.Close()
}

func (g *GCS) Put(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := g.client.Bucket(g.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		// Cancelling before Close aborts the upload.
		cancel()
		_ = w.Close()

		return "", fmt.Errorf("copy to GCS writer: %w", err)
	}

	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize upload: %w", err)
	}

	return gcsScheme + g.bucket + "/" + key, nil
}

func (g *GCS) Open(ctx context.Context, uri string) (*Object, error) {
	key, err := g.key(uri)
	if err != nil {
		return nil, err
	}

	rc, err := g.client.Bucket(g.bucket).Object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, ErrObjectNotFound
		}

		return nil, fmt.Errorf("open object %s: %w", key, err)
	}

	return &Object{
		Name:        displayName(key),
		ContentType: rc.Attrs.ContentType,
		Size:        rc.Attrs.Size,
		Body:        rc,
	}, nil
}

func (g *GCS) List(ctx context.Context, prefix string) ([]string, error) {
	it := g.client.Bucket(g.bucket).Objects(ctx, &storage.Query{Prefix: prefix})

	var uris []string

	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("list objects under %s: %w", prefix, err)
		}

		uris = append(uris, gcsScheme+g.bucket+"/"+attrs.Name)
	}

	return uris, nil
}

func (g *GCS) Delete(ctx context.Context, uri string) error {
	key, err := g.key(uri)
	if err != nil {
		return err
	}

	err = g.client.Bucket(g.bucket).Object(key).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("delete object %s: %w", key, err)
	}

	return nil
}

// key extracts the object key from a gs:// URI of this bucket.
func (g *GCS) key(uri string) (string, error) {
	bucket, key, ok := parseGCSURI(uri)
	if !ok {
		return "", fmt.Errorf("invalid GCS URI: %s", uri)
	}

	if bucket != g.bucket {
		return "", fmt.Errorf("object %s is not in bucket %s", uri, g.bucket)
	}

	return key, nil
}

func parseGCSURI(uri string) (bucket, key string, ok bool) {
	if !strings.HasPrefix(uri, gcsScheme) {
		return "", "", false
	}

	bucket, key, ok = strings.Cut(strings.TrimPrefix(uri, gcsScheme), "/")
	if !ok || bucket == "" || key == "" {
		return "", "", false
	}

	return bucket, key, true
}
