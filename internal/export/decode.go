package export

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/klauspost/compress/s2"
)

// Decoder reads records back from an export
type Decoder struct {
	dec  *jsoniter.Decoder
	line int
}

// NewDecoder reads NDJSON records from r. compressed must match the
// Options.Compress setting the export was written with.
func NewDecoder(r io.Reader, compressed bool) *Decoder {
	if compressed {
		r = s2.NewReader(r)
	}
	return &Decoder{dec: json.NewDecoder(r)}
}

// Next returns the next record, or io.EOF when the export is exhausted
func (d *Decoder) Next() (Record, error) {
	var rec Record
	if !d.dec.More() {
		return rec, io.EOF
	}
	d.line++
	if err := d.dec.Decode(&rec); err != nil {
		return rec, fmt.Errorf("failed to decode record %d: %w", d.line, err)
	}
	return rec, nil
}

// ReadAll decodes every remaining record
func (d *Decoder) ReadAll() ([]Record, error) {
	var records []Record
	for {
		rec, err := d.Next()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
}
