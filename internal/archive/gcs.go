// Package archive uploads processed documents and generated workbooks
// to Google Cloud Storage for long-term retention. Archiving is
// optional; an empty bucket name produces a no-op archiver.
package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"cloud.google.com/go/storage"
)

// Archiver stores a local file under a retention prefix.
type Archiver interface {
	Store(ctx context.Context, localPath string) error
}

// GCS is an Archiver backed by a Cloud Storage bucket. It assumes
// Application Default Credentials are configured.
type GCS struct {
	bucket string
	prefix string
}

// NewGCS creates an archiver writing into gs://bucket/prefix/.
func NewGCS(bucket, prefix string) *GCS {
	return &GCS{bucket: bucket, prefix: prefix}
}

// Store implements Archiver. The object name is the prefix plus the
// file's base name.
func (g *GCS) Store(ctx context.Context, localPath string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("archive: open file %q: %w", localPath, err)
	}
	defer f.Close()

	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("archive: create storage client: %w", err)
	}
	defer client.Close()

	objectName := path.Join(g.prefix, path.Base(localPath))

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := client.Bucket(g.bucket).Object(objectName).NewWriter(ctx)
	if _, err := io.Copy(w, f); err != nil {
		_ = w.Close()
		return fmt.Errorf("archive: copy %q to gs://%s/%s: %w", localPath, g.bucket, objectName, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("archive: finalize upload of %q: %w", localPath, err)
	}
	return nil
}

// Discard is a no-op Archiver used when no bucket is configured.
type Discard struct{}

// Store implements Archiver.
func (Discard) Store(ctx context.Context, localPath string) error { return nil }
