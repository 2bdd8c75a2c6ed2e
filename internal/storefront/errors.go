package storefront

import (
	"errors"
	"fmt"
)

// ErrTransport matches every failure of a cart call: the request could not be
// sent, the platform answered with a non-2xx status, or the body was not JSON.
var ErrTransport = errors.New("cart transport failure")

var errInvalidJSON = errors.New("response body is not valid JSON")

const maxErrorBody = 512

type TransportError struct {
	Op         string
	Endpoint   string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("%s %s: status %d: %v", e.Op, e.Endpoint, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s %s: status %d: %s", e.Op, e.Endpoint, e.StatusCode, e.Body)
	default:
		return fmt.Sprintf("%s %s: %v", e.Op, e.Endpoint, e.Err)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

func truncateBody(body []byte) string {
	if len(body) > maxErrorBody {
		return string(body[:maxErrorBody])
	}
	return string(body)
}
