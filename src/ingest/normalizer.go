package ingest

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// RawRow maps a lower-cased, trimmed header name to the raw field value
// from one input line.
type RawRow map[string]string

// Normalizer turns delimited text into a stream of RawRow. The first line
// is the header; its names are trimmed and lower-cased so downstream code
// is case-insensitive. Quoting follows RFC 4180 (double-quote).
type Normalizer struct {
	Comma rune // field delimiter, ',' when zero
}

var utf8bom = []byte{0xEF, 0xBB, 0xBF}

// stripBOM drops a UTF-8 byte order mark from the start of the stream.
func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	head, err := br.Peek(3)
	if err == nil && head[0] == utf8bom[0] && head[1] == utf8bom[1] && head[2] == utf8bom[2] {
		br.Discard(3)
	}
	return br
}

// Stream parses r and sends one RawRow per data line to out. Rows whose
// field count differs from the header are kept as a best-effort mapping
// rather than aborting the parse. Returns the number of data rows sent
// and a *ParseError when the syntax is unrecoverable; everything sent
// before that point stays sent. Errors from the underlying reader (a
// broken network stream) pass through untouched. Stream does not close
// out.
func (n Normalizer) Stream(ctx context.Context, r io.Reader, out chan<- RawRow) (int, error) {
	csvr := csv.NewReader(stripBOM(r))
	if n.Comma != 0 {
		csvr.Comma = n.Comma
	}
	csvr.TrimLeadingSpace = true
	csvr.FieldsPerRecord = -1 // tolerate short and long rows

	header, err := csvr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil // empty file, nothing to do
		}
		return 0, wrapParse(err)
	}
	for i, h := range header {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	sent := 0
	for {
		if err := ctx.Err(); err != nil {
			return sent, err
		}

		fields, err := csvr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return sent, nil
			}
			return sent, wrapParse(err)
		}

		row := make(RawRow, len(header))
		for i, h := range header {
			if i < len(fields) {
				row[h] = strings.TrimSpace(fields[i])
			}
		}

		select {
		case out <- row:
			sent++
		case <-ctx.Done():
			return sent, ctx.Err()
		}
	}
}

// wrapParse marks CSV syntax errors as ParseError; anything else came
// from the underlying reader and is left for the caller to classify.
func wrapParse(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{Line: pe.Line, Err: err}
	}
	return err
}
