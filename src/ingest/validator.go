package ingest

import (
	"math"
	"regexp"
	"strconv"
	"time"
)

const (
	fieldDate  = "date"
	fieldUsage = "usage(kwh)"
)

// date must look like yyyy-m-d before it is parsed; ISO variants with a
// time component are rejected outright.
var validDateRegex = regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}$`)

// Candidate is a validated (date, usage) pair. Owner, id and created-at
// are filled in by the pipeline, which alone knows the owning identity.
type Candidate struct {
	EntryDate time.Time
	Usage     float64
}

// ValidateRow applies the domain rules to one normalized row. On failure
// the returned Rejection names the exact reason; Line is left for the
// caller to fill in.
func ValidateRow(row RawRow) (Candidate, *Rejection) {
	date, ok := row[fieldDate]
	if !ok || date == "" {
		return Candidate{}, &Rejection{Reason: MissingDate, Row: row}
	}
	if !validDateRegex.MatchString(date) {
		return Candidate{}, &Rejection{Reason: InvalidDateFormat, Row: row}
	}
	entryDate, err := time.ParseInLocation("2006-1-2", date, time.UTC)
	if err != nil {
		// shape matched but not a real calendar date, e.g. 2024-13-45
		return Candidate{}, &Rejection{Reason: InvalidDateFormat, Row: row}
	}

	usage, ok := row[fieldUsage]
	if !ok || usage == "" {
		return Candidate{}, &Rejection{Reason: MissingUsage, Row: row}
	}
	val, err := strconv.ParseFloat(usage, 64)
	if err != nil || math.IsNaN(val) || math.IsInf(val, 0) {
		return Candidate{}, &Rejection{Reason: InvalidUsageValue, Row: row}
	}

	return Candidate{EntryDate: entryDate, Usage: val}, nil
}
