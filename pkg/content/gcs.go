package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// GCSSource reads the content document from a Cloud Storage object
type GCSSource struct {
	Bucket string
	Object string
}

// ParseGCSSource parses a gs://bucket/object location
func ParseGCSSource(location string) (*GCSSource, error) {
	rest, ok := strings.CutPrefix(location, "gs://")
	parts := strings.SplitN(rest, "/", 2)
	if !ok || len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("invalid cloud storage location: %s", location)
	}
	return &GCSSource{Bucket: parts[0], Object: parts[1]}, nil
}

// Fetch implements Source
func (s *GCSSource) Fetch(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create storage client: %v", ErrFetch, err)
	}
	defer client.Close()

	reader, err := client.Bucket(s.Bucket).Object(s.Object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	return data, nil
}

// ListObjects returns the names of all objects in the source bucket under prefix
func (s *GCSSource) ListObjects(ctx context.Context, prefix string) (map[string]bool, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	defer client.Close()

	names := make(map[string]bool)
	it := client.Bucket(s.Bucket).Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating objects: %w", err)
		}
		names[attrs.Name] = true
	}
	return names, nil
}
