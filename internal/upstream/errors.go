package upstream

import (
	"errors"
	"fmt"
)

// ConflictError is the backend refusing a mutation because the resource is no
// longer available (room already let, tenant already bound, code taken). It is
// a normal rejection: the caller refetches the candidate lists and retries
// from clean state.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("backend conflict: %s", e.Reason)
}

// RequestError is any other 4xx the backend returns for a submitted payload.
type RequestError struct {
	Status int
	Reason string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("backend rejected request (%d): %s", e.Status, e.Reason)
}

// IsConflict reports whether err is an availability conflict.
func IsConflict(err error) bool {
	var conflict *ConflictError
	return errors.As(err, &conflict)
}

// IsRequestError reports whether err is a non-conflict 4xx rejection.
func IsRequestError(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr)
}
