// Package codec encodes scan results as JSON lines or tab-separated rows.
//
// Undefined statistics (NaN) are written as JSON null and as "nan" in TSV.
package codec

import (
	"errors"
	"fmt"
	"io"
)

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Format names an output encoding.
type Format string

const (
	FormatTSV   Format = "tsv"
	FormatJSONL Format = "jsonl"
)

var (
	// ErrUnknownFormat is returned by NewEncoder for an unsupported format.
	ErrUnknownFormat = errors.New("codec: unknown format")
	// ErrMixedRecords is returned when a TSV stream receives a second record shape.
	ErrMixedRecords = errors.New("codec: cannot mix record kinds in one tsv stream")
)

// Encoder writes records to an output stream.
type Encoder interface {
	// EncodeSite writes one per-site row.
	EncodeSite(r SiteRecord) error
	// EncodeSummary writes the extremes of one replicate.
	EncodeSummary(s Summary) error
	// Flush writes any buffered data.
	Flush() error
}

// NewEncoder returns an Encoder for format. standardized adds the z-score
// columns to TSV site rows.
func NewEncoder(format Format, w io.Writer, standardized bool) (Encoder, error) {
	switch format {
	case FormatTSV:
		return NewTSVEncoder(w, standardized), nil
	case FormatJSONL:
		return NewJSONLEncoder(w, Default), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}
