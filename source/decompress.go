package source

import (
	"io"
	"path"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies a stream compression format.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZstd
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return "none"
	}
}

// CompressionFor derives the compression format from a file name.
func CompressionFor(name string) Compression {
	switch strings.ToLower(path.Ext(name)) {
	case ".gz", ".gzip":
		return CompressionGzip
	case ".zst", ".zstd":
		return CompressionZstd
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// Decompress wraps rc in a decompressing reader chosen by name. Closing the
// returned reader also closes rc.
func Decompress(name string, rc io.ReadCloser) (io.ReadCloser, error) {
	switch CompressionFor(name) {
	case CompressionGzip:
		zr, err := gzip.NewReader(rc)
		if err != nil {
			return nil, err
		}
		return &decompressor{Reader: zr, close: zr.Close, src: rc}, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(rc)
		if err != nil {
			return nil, err
		}
		return &decompressor{Reader: zr, close: func() error { zr.Close(); return nil }, src: rc}, nil
	case CompressionLZ4:
		return &decompressor{Reader: lz4.NewReader(rc), src: rc}, nil
	default:
		return rc, nil
	}
}

type decompressor struct {
	io.Reader
	close func() error
	src   io.Closer
}

func (d *decompressor) Close() error {
	var err error
	if d.close != nil {
		err = d.close()
	}
	if cerr := d.src.Close(); err == nil {
		err = cerr
	}
	return err
}
