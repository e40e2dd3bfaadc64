package config

import (
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"gorm.io/gorm"
)

var dbCircuitBreaker *gobreaker.CircuitBreaker

func init() {
	settings := gobreaker.Settings{
		Name:        "DBCircuitBreaker",
		MaxRequests: 5,
		Interval:    30 * time.Second,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
	}
	dbCircuitBreaker = gobreaker.NewCircuitBreaker(settings)
}

// DBWithCircuitBreaker wraps a DB call so repeated transient failures open
// the breaker and shed load off the store. Permanent (bad data) errors are
// returned without tripping it.
func DBWithCircuitBreaker(db *gorm.DB, fn func(*gorm.DB) error) error {
	var fnErr error
	_, cbErr := dbCircuitBreaker.Execute(func() (interface{}, error) {
		fnErr = fn(db)
		if IsPermanentError(fnErr) {
			// permanent error, don't trip CB
			return nil, nil
		}
		return nil, fnErr
	})
	if cbErr != nil {
		return cbErr
	}
	return fnErr
}

func IsPermanentError(err error) bool {
	if err == nil {
		return false
	}

	msg := err.Error()
	// error patterns that indicate bad data rather than a sick store
	if strings.Contains(msg, "Data too long") ||
		strings.Contains(msg, "invalid") ||
		strings.Contains(msg, "cannot be null") {
		return true
	}

	// Otherwise assume transient (connection, deadlock, timeout, etc.)
	return false
}
