package codec

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

type tsvKind int

const (
	tsvNone tsvKind = iota
	tsvSite
	tsvSummary
)

// TSVEncoder writes tab-separated rows preceded by a header line. A stream
// holds either site rows or summaries, never both.
type TSVEncoder struct {
	w            *bufio.Writer
	standardized bool
	kind         tsvKind
	fields       []string
}

// NewTSVEncoder creates a TSVEncoder. standardized adds z_nsl and z_ihs
// columns to site rows.
func NewTSVEncoder(w io.Writer, standardized bool) *TSVEncoder {
	return &TSVEncoder{w: bufio.NewWriter(w), standardized: standardized}
}

func (e *TSVEncoder) begin(kind tsvKind, header ...string) error {
	if e.kind == kind {
		return nil
	}
	if e.kind != tsvNone {
		return ErrMixedRecords
	}
	e.kind = kind
	return e.row(header)
}

func (e *TSVEncoder) row(fields []string) error {
	_, err := e.w.WriteString(strings.Join(fields, "\t") + "\n")
	return err
}

// EncodeSite implements Encoder.
func (e *TSVEncoder) EncodeSite(r SiteRecord) error {
	header := []string{"replicate", "site", "position", "frequency", "nsl", "ihs"}
	if e.standardized {
		header = append(header, "z_nsl", "z_ihs")
	}
	if err := e.begin(tsvSite, header...); err != nil {
		return err
	}

	e.fields = append(e.fields[:0],
		strconv.Itoa(r.Replicate),
		strconv.Itoa(r.Site),
		formatFloat(r.Position),
		formatFloat(r.Frequency),
		formatFloat(float64(r.NSL)),
		formatFloat(float64(r.IHS)),
	)
	if e.standardized {
		e.fields = append(e.fields, optional(r.ZNSL), optional(r.ZIHS))
	}
	return e.row(e.fields)
}

// EncodeSummary implements Encoder.
func (e *TSVEncoder) EncodeSummary(s Summary) error {
	if err := e.begin(tsvSummary, "replicate", "sites", "nsl", "ihs"); err != nil {
		return err
	}

	e.fields = append(e.fields[:0],
		strconv.Itoa(s.Replicate),
		strconv.Itoa(s.Sites),
		formatFloat(float64(s.NSL)),
		formatFloat(float64(s.IHS)),
	)
	return e.row(e.fields)
}

// Flush implements Encoder.
func (e *TSVEncoder) Flush() error { return e.w.Flush() }

func optional(f *Float) string {
	if f == nil {
		return "nan"
	}
	return formatFloat(float64(*f))
}
