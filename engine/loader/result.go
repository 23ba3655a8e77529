package loader

import "errors"

// Status is the outcome of a candidate search.
type Status int

const (
	// StatusUnknown is the zero value; a Result that was never filled in is not a success.
	StatusUnknown Status = iota
	// StatusLoaded means a candidate loaded and Result.Asset is set.
	StatusLoaded
	// StatusExhausted means every candidate failed or the search was cancelled.
	StatusExhausted
)

func (s Status) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	case StatusExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// ErrNoResult is reported by a zero Result.
var ErrNoResult = errors.New("no load result")

// Result is the single value delivered by LoadFirst and LoadAsync.
type Result struct {
	Status Status
	// Asset is the loaded model when Status is StatusLoaded.
	Asset Model
	// Path is the candidate that loaded.
	Path string
	// Errs holds one error per failed attempt, plus the context error on cancellation.
	Errs []error
}

// Err joins the attempt errors, or returns nil for a loaded result.
func (r Result) Err() error {
	switch r.Status {
	case StatusLoaded:
		return nil
	case StatusUnknown:
		return ErrNoResult
	}
	return errors.Join(r.Errs...)
}
