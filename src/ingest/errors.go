package ingest

import (
	"fmt"
	"strings"
)

// RejectReason is the validator's verdict on a semantically invalid row.
type RejectReason string

const (
	MissingDate       RejectReason = "MissingDate"
	InvalidDateFormat RejectReason = "InvalidDateFormat"
	MissingUsage      RejectReason = "MissingUsage"
	InvalidUsageValue RejectReason = "InvalidUsageValue"
)

// SourceError means the fetch never started or the stream broke mid-read.
// Always terminal for the run.
type SourceError struct {
	URL string
	Err error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source unavailable: %s: %v", e.URL, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// ParseError means the CSV was syntactically broken at Line. Rows parsed
// before that point have already been forwarded. Always terminal.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Rejection is a semantically invalid row. Terminal only under Abort.
type Rejection struct {
	Reason RejectReason
	Row    RawRow
	Line   int
}

func (e *Rejection) Error() string {
	return fmt.Sprintf("row %d rejected: %s (date=%q usage=%q)", e.Line, e.Reason, e.Row[fieldDate], e.Row[fieldUsage])
}

// PersistError means a store write failed. Terminal, never retried here;
// the whole run is safe to re-run because upserts are idempotent by id.
type PersistError struct {
	Ids []string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist failed for %d records (%s): %v", len(e.Ids), strings.Join(e.Ids, ","), e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }
