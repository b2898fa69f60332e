package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownPeriodKind is returned when a request names a granularity
// that is not daily, monthly or yearly.
var ErrUnknownPeriodKind = errors.New("unknown period kind")

// DataError reports a row that cannot be trusted: a missing or
// non-numeric profit value after column alias resolution. Computation
// for the request is aborted, no partial report is produced.
type DataError struct {
	Table     string
	PeriodKey string
	Field     string
	Reason    string
}

func (e *DataError) Error() string {
	if e.PeriodKey == "" {
		return fmt.Sprintf("data error in %s: %s (%s)", e.Table, e.Field, e.Reason)
	}
	return fmt.Sprintf("data error in %s at period %s: %s (%s)", e.Table, e.PeriodKey, e.Field, e.Reason)
}

// SourceUnavailableError reports that the storage backing a summary
// table could not be reached or read.
type SourceUnavailableError struct {
	Table string
	Err   error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("source unavailable for %s: %v", e.Table, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}
