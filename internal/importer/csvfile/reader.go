// Package csvfile reads header-keyed CSV exports with tolerant decoding:
// a UTF-8 byte order mark is stripped and files that are not valid UTF-8
// are decoded as EUC-KR (cp949), matching how the source exports are
// produced.
package csvfile

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Record is one CSV row addressed by header name.
type Record struct {
	columns map[string]int
	fields  []string
}

// Get returns the value of the named column, or the empty string when the
// column is absent from the header.
func (r Record) Get(name string) string {
	idx, ok := r.columns[name]
	if !ok || idx >= len(r.fields) {
		return ""
	}
	return r.fields[idx]
}

// Reader streams records from one CSV file.
type Reader struct {
	file    *os.File
	csv     *csv.Reader
	columns map[string]int
}

// Open opens the CSV at path, decodes it tolerantly and consumes the header
// row.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	decoded, err := decode(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}

	return &Reader{file: f, csv: cr, columns: columns}, nil
}

// RequireColumns verifies that every named column is present in the header.
func (r *Reader) RequireColumns(names ...string) error {
	var missing []string
	for _, name := range names {
		if _, ok := r.columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("CSV is missing required columns: %v", missing)
	}
	return nil
}

// Next returns the next record, or io.EOF after the last row.
func (r *Reader) Next() (Record, error) {
	fields, err := r.csv.Read()
	if err != nil {
		return Record{}, err
	}
	return Record{columns: r.columns, fields: fields}, nil
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}

// decode sniffs the file content and returns a UTF-8 reader: BOM stripped,
// EUC-KR transcoded when the bytes are not valid UTF-8.
func decode(f *os.File) (io.Reader, error) {
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return bytes.NewReader(data), nil
	}
	decoded, _, err := transform.Bytes(korean.EUCKR.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode CSV as UTF-8 or EUC-KR: %w", err)
	}
	return bytes.NewReader(decoded), nil
}
