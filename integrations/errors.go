package integrations

import "fmt"

// RemoteError is returned when a remote service call does not succeed:
// either the request itself failed or the response status was non-2xx.
// Status and body are kept so the caller can log what the remote said.
type RemoteError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *RemoteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: remote returned status %d: %s", e.Op, e.StatusCode, e.Body)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// DecodeError is returned when the remote answered 2xx but the body could
// not be decoded. Kept distinct from RemoteError so callers can tell a
// failing service from a misbehaving one.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: failed to decode response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
