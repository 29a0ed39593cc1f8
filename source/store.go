package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
)

// ErrNotFound is returned when an input does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// ErrInvalidURI is returned when an input location cannot be parsed.
var ErrInvalidURI = errors.New("source: invalid uri")

// Store is an abstraction for reading immutable input objects.
type Store interface {
	// Open opens the named object for reading.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// Scheme names a storage backend.
type Scheme string

const (
	SchemeFile  Scheme = "file"
	SchemeS3    Scheme = "s3"
	SchemeMinIO Scheme = "minio"
	SchemeGCS   Scheme = "gs"
)

// URI is a parsed input location.
type URI struct {
	Scheme Scheme
	// Bucket is empty for local files.
	Bucket string
	// Key is the object key, or the file path for local files.
	Key string
}

// String returns the canonical form of the location.
func (u URI) String() string {
	if u.Scheme == SchemeFile {
		return u.Key
	}
	return fmt.Sprintf("%s://%s/%s", u.Scheme, u.Bucket, u.Key)
}

// ParseURI parses an input location. Plain paths and file:// URIs refer to
// local files; s3://, minio:// and gs:// URIs name a bucket and a key.
func ParseURI(raw string) (URI, error) {
	if raw == "" {
		return URI{}, fmt.Errorf("%w: empty location", ErrInvalidURI)
	}
	if !strings.Contains(raw, "://") {
		return URI{Scheme: SchemeFile, Key: raw}, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return URI{}, fmt.Errorf("%w: %v", ErrInvalidURI, err)
	}

	switch scheme := Scheme(strings.ToLower(u.Scheme)); scheme {
	case SchemeFile:
		return URI{Scheme: SchemeFile, Key: u.Path}, nil
	case SchemeS3, SchemeMinIO, SchemeGCS:
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return URI{}, fmt.Errorf("%w: %q needs a bucket and a key", ErrInvalidURI, raw)
		}
		return URI{Scheme: scheme, Bucket: u.Host, Key: key}, nil
	default:
		return URI{}, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURI, u.Scheme)
	}
}

// Open opens name from s and wraps the stream in a decompressor chosen by
// its extension.
func Open(ctx context.Context, s Store, name string) (io.ReadCloser, error) {
	rc, err := s.Open(ctx, name)
	if err != nil {
		return nil, err
	}

	dec, err := Decompress(name, rc)
	if err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	return dec, nil
}
