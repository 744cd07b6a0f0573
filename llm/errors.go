package llm

import "errors"

// classifiedError tags a model call failure as retryable or permanent. The
// retry loop keys off the classification, never the concrete error.
type classifiedError struct {
	err       error
	retryable bool
}

func (e *classifiedError) Error() string { return e.err.Error() }
func (e *classifiedError) Unwrap() error { return e.err }

// NewTransientError marks an error as retryable.
func NewTransientError(err error) error {
	return &classifiedError{err: err, retryable: true}
}

// NewFatalError marks an error as permanent; the retry loop gives up on it
// immediately.
func NewFatalError(err error) error {
	return &classifiedError{err: err}
}

// IsTransient reports whether the error was marked retryable.
func IsTransient(err error) bool {
	var ce *classifiedError
	return errors.As(err, &ce) && ce.retryable
}

// IsFatal reports whether the error was marked permanent. Unclassified
// errors are neither transient nor fatal.
func IsFatal(err error) bool {
	var ce *classifiedError
	return errors.As(err, &ce) && !ce.retryable
}
