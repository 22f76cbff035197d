package loader

import "errors"

var (
	// ErrInvalidURL is returned for URLs that are not absolute http or https.
	ErrInvalidURL = errors.New("url must be absolute http or https")

	// ErrTooManyRedirects is returned when a fetch exceeds the redirect limit.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrBadStatus is returned when the server answers with a non-200 status.
	ErrBadStatus = errors.New("unexpected http status")
)
