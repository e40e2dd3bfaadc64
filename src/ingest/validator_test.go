package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRowAccepts(t *testing.T) {
	tests := []struct {
		name  string
		row   RawRow
		date  time.Time
		usage float64
	}{
		{
			name:  "padded date",
			row:   RawRow{"date": "2024-01-01", "usage(kwh)": "100"},
			date:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			usage: 100,
		},
		{
			name:  "single digit month and day",
			row:   RawRow{"date": "2024-1-5", "usage(kwh)": "0.5"},
			date:  time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			usage: 0.5,
		},
		{
			name:  "negative usage parses",
			row:   RawRow{"date": "2023-12-31", "usage(kwh)": "-3.25"},
			date:  time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
			usage: -3.25,
		},
		{
			name:  "scientific notation",
			row:   RawRow{"date": "2024-6-15", "usage(kwh)": "1e2"},
			date:  time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
			usage: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand, rej := ValidateRow(tt.row)

			require.Nil(t, rej)
			assert.Equal(t, tt.date, cand.EntryDate)
			assert.Equal(t, tt.usage, cand.Usage)
		})
	}
}

func TestValidateRowRejects(t *testing.T) {
	tests := []struct {
		name   string
		row    RawRow
		reason RejectReason
	}{
		{"no date column", RawRow{"usage(kwh)": "100"}, MissingDate},
		{"empty date", RawRow{"date": "", "usage(kwh)": "100"}, MissingDate},
		{"date with time component", RawRow{"date": "2024-01-01T00:00:00Z", "usage(kwh)": "100"}, InvalidDateFormat},
		{"slash separated date", RawRow{"date": "2024/01/01", "usage(kwh)": "100"}, InvalidDateFormat},
		{"two digit year", RawRow{"date": "24-01-01", "usage(kwh)": "100"}, InvalidDateFormat},
		{"not a date at all", RawRow{"date": "notadate", "usage(kwh)": "100"}, InvalidDateFormat},
		{"impossible calendar date", RawRow{"date": "2024-13-45", "usage(kwh)": "100"}, InvalidDateFormat},
		{"no usage column", RawRow{"date": "2024-01-01"}, MissingUsage},
		{"empty usage", RawRow{"date": "2024-01-01", "usage(kwh)": ""}, MissingUsage},
		{"non numeric usage", RawRow{"date": "2024-01-01", "usage(kwh)": "abc"}, InvalidUsageValue},
		{"NaN usage", RawRow{"date": "2024-01-01", "usage(kwh)": "NaN"}, InvalidUsageValue},
		{"infinite usage", RawRow{"date": "2024-01-01", "usage(kwh)": "+Inf"}, InvalidUsageValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, rej := ValidateRow(tt.row)

			require.NotNil(t, rej)
			assert.Equal(t, tt.reason, rej.Reason)
		})
	}
}

func TestValidateRowDateBeforeUsage(t *testing.T) {
	// both fields invalid: the date verdict wins
	_, rej := ValidateRow(RawRow{"date": "bad", "usage(kwh)": "worse"})

	require.NotNil(t, rej)
	assert.Equal(t, InvalidDateFormat, rej.Reason)
}
