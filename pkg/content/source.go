package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

var (
	// ErrFetch is returned when the content document could not be retrieved
	ErrFetch = errors.New("failed to fetch content")

	// ErrUnavailable is returned when neither a fresh nor a cached document exists
	ErrUnavailable = errors.New("content unavailable")
)

// Source retrieves the raw content document
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// NewSource picks a Source from a location string.
// http(s):// URLs are fetched over HTTP, gs://bucket/object from Cloud Storage,
// anything else is read from the local filesystem.
func NewSource(location string) (Source, error) {
	switch {
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return &HTTPSource{URL: location}, nil
	case strings.HasPrefix(location, "gs://"):
		return ParseGCSSource(location)
	case location == "":
		return nil, fmt.Errorf("empty content location")
	default:
		return &FileSource{Path: location}, nil
	}
}

// HTTPSource issues a single GET for the content document
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// Fetch implements Source
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	return body, nil
}

// FileSource reads the content document from disk
type FileSource struct {
	Path string
}

// Fetch implements Source
func (s *FileSource) Fetch(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	return data, nil
}
