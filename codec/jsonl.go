package codec

import (
	"bufio"
	"io"
)

// JSONLEncoder writes one JSON object per line.
type JSONLEncoder struct {
	w     *bufio.Writer
	codec Codec
}

// NewJSONLEncoder creates a JSONLEncoder that marshals with c.
func NewJSONLEncoder(w io.Writer, c Codec) *JSONLEncoder {
	if c == nil {
		c = Default
	}
	return &JSONLEncoder{w: bufio.NewWriter(w), codec: c}
}

func (e *JSONLEncoder) encode(v any) error {
	b, err := e.codec.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := e.w.Write(b); err != nil {
		return err
	}
	return e.w.WriteByte('\n')
}

// EncodeSite implements Encoder.
func (e *JSONLEncoder) EncodeSite(r SiteRecord) error { return e.encode(r) }

// EncodeSummary implements Encoder.
func (e *JSONLEncoder) EncodeSummary(s Summary) error { return e.encode(s) }

// Flush implements Encoder.
func (e *JSONLEncoder) Flush() error { return e.w.Flush() }
