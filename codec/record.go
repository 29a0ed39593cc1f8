package codec

import (
	"bytes"
	"math"
	"strconv"
)

// Float is a float64 whose non-finite values encode as JSON null.
// Decoding null yields NaN.
type Float float64

var null = []byte("null")

// MarshalJSON implements json.Marshaler.
func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return null, nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Float) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, null) {
		*f = Float(math.NaN())
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

// SiteRecord is the output row of one core site.
type SiteRecord struct {
	Replicate int     `json:"replicate"`
	Site      int     `json:"site"`
	Position  float64 `json:"position"`
	Frequency float64 `json:"frequency"`
	NSL       Float   `json:"nsl"`
	IHS       Float   `json:"ihs"`
	// ZNSL and ZIHS are set for standardized output only.
	ZNSL *Float `json:"z_nsl,omitempty"`
	ZIHS *Float `json:"z_ihs,omitempty"`
}

// Summary is the reduced result of a standardized scan of one replicate.
type Summary struct {
	Replicate int   `json:"replicate"`
	Sites     int   `json:"sites"`
	NSL       Float `json:"nsl"`
	IHS       Float `json:"ihs"`
}

// formatFloat renders v for TSV output.
func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	default:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
}
