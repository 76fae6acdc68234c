package photosearch

import (
	"errors"
	"fmt"
)

var (
	// ErrQueryMissing is returned when a search is invoked with a blank
	// query string.
	ErrQueryMissing = errors.New("missing search query")
)

// UpstreamError indicates a failing external collaborator (recognition,
// language understanding, object storage or the search store).
//
// The original underlying error can be accessed via errors.Unwrap.
type UpstreamError struct {
	Service string
	cause   error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Service, e.cause)
}

func (e *UpstreamError) Unwrap() error { return e.cause }

// upstream tags err with the collaborator it came from. A nil err stays nil.
func upstream(service string, err error) error {
	if err == nil {
		return nil
	}
	return &UpstreamError{Service: service, cause: err}
}
